// Package catalogsvc - Test dựng property graph từ snapshot biến thể: gom nhóm,
// tra ảnh option, cờ visual và thứ tự nhóm.
package catalogsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	models "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/models"
)

func i64p(v int64) *int64 { return &v }

// colorSizeVariations dựng bộ biến thể 2 màu x 2 cỡ quen thuộc:
// Đỏ-S hết hàng, các tổ hợp còn lại còn hàng.
func colorSizeVariations() []models.CatalogVariation {
	color := func(valueID, value string) models.VariationProperty {
		return models.VariationProperty{PropertyID: "p-color", Name: "Màu sắc", ValueID: valueID, Value: value}
	}
	size := func(valueID, value string) models.VariationProperty {
		return models.VariationProperty{PropertyID: "p-size", Name: "Kích cỡ", ValueID: valueID, Value: value}
	}

	return []models.CatalogVariation{
		{VariationID: "red-s", ProductID: "prod-1", Image: "red.jpg", Quantity: i64p(0), RetailPrice: 100,
			Properties: []models.VariationProperty{color("c-red", "Đỏ"), size("s-s", "S")}},
		{VariationID: "red-m", ProductID: "prod-1", Image: "red.jpg", Quantity: i64p(3), RetailPrice: 100,
			Properties: []models.VariationProperty{color("c-red", "Đỏ"), size("s-m", "M")}},
		{VariationID: "blue-s", ProductID: "prod-1", Image: "blue.jpg", Quantity: i64p(2), RetailPrice: 110,
			Properties: []models.VariationProperty{color("c-blue", "Xanh"), size("s-s", "S")}},
		{VariationID: "blue-m", ProductID: "prod-1", Image: "blue.jpg", Quantity: i64p(1), RetailPrice: 110,
			Properties: []models.VariationProperty{color("c-blue", "Xanh"), size("s-m", "M")}},
	}
}

func TestBuildPropertyGraph_GomNhomVaTichLuyBienThe(t *testing.T) {
	groups := BuildPropertyGraph(colorSizeVariations(), nil)

	assert.Len(t, groups, 2)

	mau := groups[0]
	assert.Equal(t, "Màu sắc", mau.Name)
	assert.Equal(t, "p-color", mau.PropertyID)
	assert.Len(t, mau.Options, 2)
	assert.Equal(t, "Đỏ", mau.Options[0].Value)
	assert.Equal(t, []string{"red-s", "red-m"}, mau.Options[0].VariationIDs)
	assert.Equal(t, "Xanh", mau.Options[1].Value)
	assert.Equal(t, []string{"blue-s", "blue-m"}, mau.Options[1].VariationIDs)

	coSize := groups[1]
	assert.Equal(t, "Kích cỡ", coSize.Name)
	assert.Equal(t, []string{"red-s", "blue-s"}, coSize.Options[0].VariationIDs)
	assert.Equal(t, []string{"red-m", "blue-m"}, coSize.Options[1].VariationIDs)
}

func TestBuildPropertyGraph_CoVisualTheoAnhPhanBiet(t *testing.T) {
	groups := BuildPropertyGraph(colorSizeVariations(), nil)

	// Hai màu mang hai ảnh khác nhau nên nhóm màu render dạng thumbnail
	assert.True(t, groups[0].Visual)
	assert.Equal(t, "red.jpg", groups[0].Options[0].Image)
	assert.Equal(t, "blue.jpg", groups[0].Options[1].Image)

	// Cả hai cỡ đều tra về ảnh của biến thể đầu tiên mang giá trị đó (red.jpg)
	// nên không đủ hai ảnh phân biệt
	assert.False(t, groups[1].Visual)
}

func TestBuildPropertyGraph_MappingDonThuocTinhThangAnhBienThe(t *testing.T) {
	mappings := []models.ImageMapping{
		{Properties: []models.PropertyKey{{PropertyID: "p-color", ValueID: "c-red"}}, Image: "mapped-red.jpg"},
	}

	groups := BuildPropertyGraph(colorSizeVariations(), mappings)

	assert.Equal(t, "mapped-red.jpg", groups[0].Options[0].Image)
	// Màu không có mapping vẫn rơi về ảnh biến thể
	assert.Equal(t, "blue.jpg", groups[0].Options[1].Image)
}

func TestBuildPropertyGraph_NhomItOptionHienTruoc(t *testing.T) {
	// Kích cỡ xuất hiện trước trong từng biến thể nhưng có 3 option,
	// nhóm màu chỉ có 2 option nên phải đứng trước sau khi sắp xếp
	prop := func(pid, name, vid, value string) models.VariationProperty {
		return models.VariationProperty{PropertyID: pid, Name: name, ValueID: vid, Value: value}
	}
	variations := []models.CatalogVariation{
		{VariationID: "v1", Properties: []models.VariationProperty{prop("p-size", "Kích cỡ", "s1", "S"), prop("p-color", "Màu sắc", "c1", "Đỏ")}},
		{VariationID: "v2", Properties: []models.VariationProperty{prop("p-size", "Kích cỡ", "s2", "M"), prop("p-color", "Màu sắc", "c1", "Đỏ")}},
		{VariationID: "v3", Properties: []models.VariationProperty{prop("p-size", "Kích cỡ", "s3", "L"), prop("p-color", "Màu sắc", "c2", "Xanh")}},
	}

	groups := BuildPropertyGraph(variations, nil)

	assert.Len(t, groups, 2)
	assert.Equal(t, "Màu sắc", groups[0].Name)
	assert.Equal(t, "Kích cỡ", groups[1].Name)
}

func TestBuildPropertyGraph_DuLieuKhuyetChoDanhSachRong(t *testing.T) {
	groups := BuildPropertyGraph(nil, nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)

	// Biến thể không mang thuộc tính nào cũng không tạo nhóm
	groups = BuildPropertyGraph([]models.CatalogVariation{{VariationID: "v1"}}, nil)
	assert.Empty(t, groups)
}

func TestBuildImageLookup(t *testing.T) {
	mappings := []models.ImageMapping{
		{Properties: []models.PropertyKey{{PropertyID: "p1", ValueID: "a"}}, Image: "first.jpg"},
		{Properties: []models.PropertyKey{{PropertyID: "p1", ValueID: "a"}}, Image: "second.jpg"},
		{Properties: []models.PropertyKey{
			{PropertyID: "p1", ValueID: "b"},
			{PropertyID: "p2", ValueID: "x"},
		}, Image: "combo.jpg"},
		{Properties: []models.PropertyKey{{PropertyID: "p2", ValueID: "x"}}, Image: "single-x.jpg"},
	}

	lookup := BuildImageLookup(mappings)

	// Entry đơn đầu tiên cho mỗi khóa thắng
	assert.Equal(t, "first.jpg", lookup["p1:a"])
	// Entry đơn được ưu tiên hơn entry tổ hợp dù tổ hợp đứng trước
	assert.Equal(t, "single-x.jpg", lookup["p2:x"])
	// Tổ hợp chỉ lấp chỗ cho khóa chưa có entry đơn
	assert.Equal(t, "combo.jpg", lookup["p1:b"])
}
