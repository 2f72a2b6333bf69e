// Package catalogsvc - Test khớp selection với biến thể: toggle, resolve,
// tính khả dụng option và dựng trạng thái chọn trả cho client.
package catalogsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	catalogdto "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/dto"
	models "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/models"
)

func TestToggleSelection(t *testing.T) {
	current := models.Selection{"Màu sắc": "Đỏ"}

	// Bấm giá trị mới ở nhóm khác: thêm vào selection
	next := ToggleSelection(current, "Kích cỡ", "S")
	assert.Equal(t, models.Selection{"Màu sắc": "Đỏ", "Kích cỡ": "S"}, next)

	// Bấm giá trị khác trong cùng nhóm: thay thế
	next = ToggleSelection(current, "Màu sắc", "Xanh")
	assert.Equal(t, models.Selection{"Màu sắc": "Xanh"}, next)

	// Bấm lại giá trị đang chọn: bỏ chọn nhóm đó
	next = ToggleSelection(current, "Màu sắc", "Đỏ")
	assert.Empty(t, next)

	// Selection đầu vào không bị sửa
	assert.Equal(t, models.Selection{"Màu sắc": "Đỏ"}, current)
}

func TestToggleSelection_NilVanDungDuoc(t *testing.T) {
	next := ToggleSelection(nil, "Màu sắc", "Đỏ")
	assert.Equal(t, models.Selection{"Màu sắc": "Đỏ"}, next)
}

func TestResolveSelection(t *testing.T) {
	variations := colorSizeVariations()
	groups := BuildPropertyGraph(variations, nil)

	// Thiếu nhóm chưa chọn: chưa xác định được biến thể
	resolved, outcome := ResolveSelection(variations, groups, models.Selection{"Màu sắc": "Đỏ"})
	assert.Nil(t, resolved)
	assert.Equal(t, ResolveUnresolved, outcome)

	// Chọn đủ mọi nhóm: khớp đúng một biến thể
	resolved, outcome = ResolveSelection(variations, groups, models.Selection{"Màu sắc": "Xanh", "Kích cỡ": "M"})
	assert.Equal(t, ResolveMatched, outcome)
	if assert.NotNil(t, resolved) {
		assert.Equal(t, "blue-m", resolved.VariationID)
	}
}

func TestResolveSelection_ToHopKhongTonTai(t *testing.T) {
	// Bỏ blue-m khỏi danh sách: selection (Xanh, M) đầy đủ nhưng không biến thể nào khớp
	variations := colorSizeVariations()[:3]
	groups := BuildPropertyGraph(colorSizeVariations(), nil)

	resolved, outcome := ResolveSelection(variations, groups, models.Selection{"Màu sắc": "Xanh", "Kích cỡ": "M"})
	assert.Nil(t, resolved)
	assert.Equal(t, ResolveNoMatch, outcome)
}

func TestIsOptionAvailable_DoSHetHang(t *testing.T) {
	variations := colorSizeVariations()
	selection := models.Selection{"Màu sắc": "Đỏ"}

	// Đỏ-S hết hàng nên chọn Đỏ xong thì S không bấm được nữa
	assert.False(t, IsOptionAvailable(variations, selection, "Kích cỡ", "S"))
	// Đỏ-M vẫn còn hàng
	assert.True(t, IsOptionAvailable(variations, selection, "Kích cỡ", "M"))

	// Chưa chọn gì thì S vẫn bấm được nhờ Xanh-S còn hàng
	assert.True(t, IsOptionAvailable(variations, models.Selection{}, "Kích cỡ", "S"))
}

func TestIsOptionAvailable_BoQuaGiaTriCungNhom(t *testing.T) {
	variations := colorSizeVariations()

	// Đang chọn (Đỏ, S): đổi sang Xanh phải bấm được vì Xanh-S còn hàng,
	// giá trị Đỏ đang chọn của chính nhóm màu không được tính vào điều kiện
	selection := models.Selection{"Màu sắc": "Đỏ", "Kích cỡ": "S"}
	assert.True(t, IsOptionAvailable(variations, selection, "Màu sắc", "Xanh"))
}

func TestBuildSelectionState_CheDoProperties(t *testing.T) {
	variations := colorSizeVariations()
	groups := BuildPropertyGraph(variations, nil)
	product := &models.CatalogProduct{ProductID: "prod-1", Image: "product.jpg"}

	// Chưa chọn gì: outcome unresolved, ảnh hiển thị là ảnh sản phẩm
	state := BuildSelectionState(product, variations, groups, catalogdto.SelectRequest{})
	assert.Equal(t, ModeProperties, state.Mode)
	assert.Equal(t, string(ResolveUnresolved), state.Outcome)
	assert.Nil(t, state.Resolved)
	assert.Equal(t, "product.jpg", state.DisplayImage)
	assert.Len(t, state.Groups, 2)

	// Bấm đủ hai nhóm: khớp biến thể, ảnh hiển thị đổi theo biến thể
	state = BuildSelectionState(product, variations, groups, catalogdto.SelectRequest{
		Selection: map[string]string{"Màu sắc": "Xanh"},
		Toggle:    &catalogdto.SelectionToggle{Group: "Kích cỡ", Value: "S"},
	})
	assert.Equal(t, string(ResolveMatched), state.Outcome)
	if assert.NotNil(t, state.Resolved) {
		assert.Equal(t, "blue-s", state.Resolved.VariationID)
	}
	assert.Equal(t, "blue.jpg", state.DisplayImage)

	// Cờ selected phản ánh selection sau toggle
	for _, g := range state.Groups {
		for _, opt := range g.Options {
			wantSelected := (g.Name == "Màu sắc" && opt.Value == "Xanh") ||
				(g.Name == "Kích cỡ" && opt.Value == "S")
			assert.Equal(t, wantSelected, opt.Selected, "nhóm %s option %s", g.Name, opt.Value)
		}
	}
}

func TestBuildSelectionState_MotSKUTuKhop(t *testing.T) {
	product := &models.CatalogProduct{ProductID: "prod-1", Image: "product.jpg"}
	variations := []models.CatalogVariation{
		{VariationID: "only", Sku: "SKU-1", Image: "only.jpg", Quantity: i64p(4), RetailPrice: 99},
	}

	state := BuildSelectionState(product, variations, nil, catalogdto.SelectRequest{})

	assert.Equal(t, ModeSingle, state.Mode)
	assert.Equal(t, string(ResolveMatched), state.Outcome)
	if assert.NotNil(t, state.Resolved) {
		assert.Equal(t, "only", state.Resolved.VariationID)
	}
	assert.Equal(t, "only.jpg", state.DisplayImage)
}

func TestBuildSelectionState_CheDoCards(t *testing.T) {
	product := &models.CatalogProduct{ProductID: "prod-1", Image: "product.jpg"}
	variations := []models.CatalogVariation{
		{VariationID: "v-het", Sku: "SKU-1", Quantity: i64p(0)},
		{VariationID: "v-con", Sku: "SKU-2", Image: "v2.jpg", Quantity: i64p(5)},
		{VariationID: "v-nil", Sku: "SKU-3"},
	}

	// Không truyền variationId: thẻ còn hàng đầu tiên được chọn sẵn
	state := BuildSelectionState(product, variations, nil, catalogdto.SelectRequest{})
	assert.Equal(t, ModeCards, state.Mode)
	assert.Len(t, state.Cards, 3)
	assert.False(t, state.Cards[0].Selected)
	assert.True(t, state.Cards[1].Selected)
	assert.False(t, state.Cards[0].Available, "tồn kho 0 không còn chọn được")
	assert.False(t, state.Cards[2].Available, "tồn kho nil coi như hết hàng")
	assert.Equal(t, string(ResolveMatched), state.Outcome)
	if assert.NotNil(t, state.Resolved) {
		assert.Equal(t, "v-con", state.Resolved.VariationID)
	}

	// Khách chọn thẻ cụ thể thì tôn trọng lựa chọn đó
	state = BuildSelectionState(product, variations, nil, catalogdto.SelectRequest{VariationID: "v-het"})
	assert.True(t, state.Cards[0].Selected)
	assert.False(t, state.Cards[1].Selected)
}
