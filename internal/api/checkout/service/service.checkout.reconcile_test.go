// Package checkoutsvc - Test các hàm thuần của bước đối soát: phân loại verdict,
// dựng payload gửi sàn, dựng kết quả đối soát và kẹp điều chỉnh số lượng.
package checkoutsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	models "github.com/tykealy/taobao-ui-prototype/internal/api/checkout/models"
	"github.com/tykealy/taobao-ui-prototype/internal/marketplace"
)

func i64p(v int64) *int64     { return &v }
func f64p(v float64) *float64 { return &v }

func TestClassifyVerdict(t *testing.T) {
	tests := []struct {
		name      string
		requested int64
		available *int64
		want      string
	}{
		{"đáp ứng đủ đúng số lượng", 5, i64p(5), models.VerdictAvailable},
		{"đáp ứng dư", 5, i64p(7), models.VerdictAvailable},
		{"đáp ứng một phần", 5, i64p(3), models.VerdictInsufficient},
		{"đáp ứng bằng 0", 5, i64p(0), models.VerdictUnavailable},
		{"sàn không báo số lượng", 5, nil, models.VerdictUnavailable},
		{"số lượng âm", 5, i64p(-1), models.VerdictUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyVerdict(tt.requested, tt.available))
		})
	}
}

func TestSubmitLines_BoQuaDongSoLuongKhong(t *testing.T) {
	lines := []models.SessionLine{
		{VariationID: "v1", Quantity: 2},
		{VariationID: "v2", Quantity: 0},
		{VariationID: "v3", Quantity: 1},
	}

	out := SubmitLines(lines)

	assert.Len(t, out, 2)
	assert.Equal(t, "v1", out[0].VariationID)
	assert.Equal(t, int64(2), out[0].Quantity)
	assert.Equal(t, "v3", out[1].VariationID)
}

func TestSubmitLines_RongTraSliceKhongNil(t *testing.T) {
	out := SubmitLines(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestBuildResult_ChiaDungBucketVaTinhTong(t *testing.T) {
	submitted := []models.SessionLine{
		{VariationID: "v-du", Quantity: 2},
		{VariationID: "v-thieu", Quantity: 3},
		{VariationID: "v-het", Quantity: 1},
	}
	resp := &marketplace.RenderOrderResponse{
		Lines: []marketplace.RenderedLine{
			{VariationID: "v-du", AvailableQuantity: i64p(2), UnitPrice: 100},
			{VariationID: "v-thieu", AvailableQuantity: i64p(1), UnitPrice: 50},
			{VariationID: "v-het", AvailableQuantity: i64p(0), UnitPrice: 10},
		},
		ShippingFees: []marketplace.ShippingFee{{Name: "Shop A", Amount: 25}},
	}

	result := BuildResult(submitted, resp)

	assert.Len(t, result.Available, 1)
	assert.Len(t, result.Insufficient, 1)
	assert.Len(t, result.Unavailable, 1)
	assert.Equal(t, "v-du", result.Available[0].VariationID)
	assert.Equal(t, models.VerdictAvailable, result.Available[0].Verdict)
	assert.Equal(t, "v-thieu", result.Insufficient[0].VariationID)
	assert.Equal(t, models.VerdictInsufficient, result.Insufficient[0].Verdict)
	assert.Equal(t, "v-het", result.Unavailable[0].VariationID)
	assert.Equal(t, models.VerdictUnavailable, result.Unavailable[0].Verdict)

	// Tổng = thành tiền dòng available (2 x 100) + phí vận chuyển,
	// dòng thiếu hàng và hết hàng không được tính
	assert.Equal(t, float64(225), result.Total)
	assert.Len(t, result.ShippingFees, 1)
	assert.Equal(t, "Shop A", result.ShippingFees[0].Name)
	assert.NotZero(t, result.ValidatedAt)
}

func TestBuildResult_DongSanKhongTraVeLaUnavailable(t *testing.T) {
	submitted := []models.SessionLine{{VariationID: "v-mat", Quantity: 2}}
	resp := &marketplace.RenderOrderResponse{}

	result := BuildResult(submitted, resp)

	assert.Empty(t, result.Available)
	assert.Empty(t, result.Insufficient)
	assert.Len(t, result.Unavailable, 1)
	assert.Equal(t, models.VerdictUnavailable, result.Unavailable[0].Verdict)
	assert.Nil(t, result.Unavailable[0].AvailableQuantity)
	assert.Equal(t, int64(2), result.Unavailable[0].RequestedQuantity)
}

func TestBuildResult_GiaKhuyenMaiDuocUuTien(t *testing.T) {
	submitted := []models.SessionLine{{VariationID: "v1", Quantity: 3}}
	resp := &marketplace.RenderOrderResponse{
		Lines: []marketplace.RenderedLine{
			{VariationID: "v1", AvailableQuantity: i64p(5), UnitPrice: 100, PromotionPrice: f64p(80)},
		},
	}

	result := BuildResult(submitted, resp)

	assert.Equal(t, float64(240), result.Total)
}

func TestNextLines_GiuAvailableVaInsufficientLoaiUnavailable(t *testing.T) {
	lines := []models.SessionLine{
		{VariationID: "v-du", Quantity: 2},
		{VariationID: "v-thieu", Quantity: 3},
		{VariationID: "v-het", Quantity: 1},
	}
	result := &models.ReconciliationResult{
		Available:    []models.ReconciledLine{{VariationID: "v-du"}},
		Insufficient: []models.ReconciledLine{{VariationID: "v-thieu"}},
		Unavailable:  []models.ReconciledLine{{VariationID: "v-het"}},
	}

	next := NextLines(lines, result)

	assert.Len(t, next, 2)
	assert.Equal(t, "v-du", next[0].VariationID)
	assert.Equal(t, "v-thieu", next[1].VariationID)
}

func TestClampAdjustment(t *testing.T) {
	line := &models.ReconciledLine{AvailableQuantity: i64p(4)}

	assert.Equal(t, int64(0), ClampAdjustment(-2, line), "số âm kẹp về 0")
	assert.Equal(t, int64(0), ClampAdjustment(0, line), "0 giữ nguyên, nghĩa là bỏ dòng khỏi payload")
	assert.Equal(t, int64(3), ClampAdjustment(3, line), "trong khoảng thì giữ nguyên")
	assert.Equal(t, int64(4), ClampAdjustment(9, line), "vượt trần kẹp về số sàn đáp ứng được")
}

func TestClampAdjustment_KhongCoTranKhiSanKhongBao(t *testing.T) {
	line := &models.ReconciledLine{}
	assert.Equal(t, int64(7), ClampAdjustment(7, line))
	assert.Equal(t, int64(0), ClampAdjustment(-1, line))
}

// Mô phỏng một vòng checkout hoàn chỉnh trên các hàm thuần: dòng A đủ hàng,
// dòng B chỉ còn 1/3, khách chỉnh B về 1 rồi đối soát lại đến khi đặt được đơn.
func TestVongDoiSoat_DieuChinhRoiDatDuoc(t *testing.T) {
	lines := []models.SessionLine{
		{VariationID: "A", Quantity: 2},
		{VariationID: "B", Quantity: 3},
	}

	// Lần đối soát đầu: B thiếu hàng nên chưa đặt được
	first := BuildResult(lines, &marketplace.RenderOrderResponse{
		Lines: []marketplace.RenderedLine{
			{VariationID: "A", AvailableQuantity: i64p(2), UnitPrice: 10},
			{VariationID: "B", AvailableQuantity: i64p(1), UnitPrice: 20},
		},
	})
	assert.False(t, first.Committable())

	// Khách chỉnh dòng thiếu về đúng số sàn đáp ứng được
	insufficient := first.FindInsufficient("B")
	assert.NotNil(t, insufficient)
	lines = NextLines(lines, first)
	lines[1].Quantity = ClampAdjustment(1, insufficient)

	submit := SubmitLines(lines)
	assert.Len(t, submit, 2)
	assert.Equal(t, int64(1), submit[1].Quantity)

	// Lần đối soát thứ hai: cả hai dòng đủ hàng, kết quả đủ điều kiện đặt đơn
	second := BuildResult(lines, &marketplace.RenderOrderResponse{
		Lines: []marketplace.RenderedLine{
			{VariationID: "A", AvailableQuantity: i64p(2), UnitPrice: 10},
			{VariationID: "B", AvailableQuantity: i64p(1), UnitPrice: 20},
		},
	})
	assert.True(t, second.Committable())
	assert.Equal(t, float64(40), second.Total)
}
