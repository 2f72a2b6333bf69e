// Package models - Test điều kiện đặt đơn và cách tính tiền của kết quả đối soát.
package models

import "testing"

func TestCommittable(t *testing.T) {
	line := ReconciledLine{VariationID: "v1"}

	tests := []struct {
		name   string
		result ReconciliationResult
		want   bool
	}{
		{"chỉ còn dòng đủ hàng", ReconciliationResult{Available: []ReconciledLine{line}}, true},
		{"còn dòng thiếu hàng", ReconciliationResult{Available: []ReconciledLine{line}, Insufficient: []ReconciledLine{line}}, false},
		{"còn dòng hết hàng", ReconciliationResult{Available: []ReconciledLine{line}, Unavailable: []ReconciledLine{line}}, false},
		{"không còn dòng nào mua được", ReconciliationResult{}, false},
	}

	for _, tt := range tests {
		if got := tt.result.Committable(); got != tt.want {
			t.Errorf("%s: Committable() = %v, muốn %v", tt.name, got, tt.want)
		}
	}
}

func TestEffectivePriceVaSubtotal(t *testing.T) {
	promo := 80.0
	line := ReconciledLine{RequestedQuantity: 3, UnitPrice: 100}

	if got := line.EffectivePrice(); got != 100 {
		t.Errorf("không có khuyến mãi phải dùng đơn giá, got %v", got)
	}
	if got := line.Subtotal(); got != 300 {
		t.Errorf("Subtotal = %v, muốn 300", got)
	}

	line.PromotionPrice = &promo
	if got := line.EffectivePrice(); got != 80 {
		t.Errorf("có khuyến mãi phải dùng giá khuyến mãi, got %v", got)
	}
	if got := line.Subtotal(); got != 240 {
		t.Errorf("Subtotal với khuyến mãi = %v, muốn 240", got)
	}
}

func TestFindInsufficient(t *testing.T) {
	result := ReconciliationResult{
		Insufficient: []ReconciledLine{
			{VariationID: "v1", RequestedQuantity: 5},
			{VariationID: "v2", RequestedQuantity: 3},
		},
	}

	line := result.FindInsufficient("v2")
	if line == nil {
		t.Fatal("FindInsufficient không tìm thấy dòng v2")
	}
	if line.RequestedQuantity != 3 {
		t.Errorf("FindInsufficient trả dòng sai, requestedQuantity = %d, muốn 3", line.RequestedQuantity)
	}

	if result.FindInsufficient("v9") != nil {
		t.Error("FindInsufficient phải trả nil cho biến thể không nằm trong bucket thiếu hàng")
	}
}
