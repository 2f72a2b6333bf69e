package models

// Verdict phân loại từng dòng sau một lần đối soát với sàn.
const (
	VerdictAvailable    = "available"    // đáp ứng đủ số lượng yêu cầu
	VerdictInsufficient = "insufficient" // chỉ đáp ứng được một phần, khách cần điều chỉnh
	VerdictUnavailable  = "unavailable"  // hết hàng hoặc không còn tồn tại
)

// ReconciledLine là một dòng sau đối soát, kèm verdict và snapshot giá tại thời điểm đó.
type ReconciledLine struct {
	VariationID       string   `json:"variationId" bson:"variationId"`                       // ID biến thể trên sàn
	Name              string   `json:"name" bson:"name"`                                     // Tên hiển thị sàn trả về lúc đối soát
	Image             string   `json:"image" bson:"image"`                                   // Ảnh hiển thị sàn trả về lúc đối soát
	RequestedQuantity int64    `json:"requestedQuantity" bson:"requestedQuantity"`           // Số lượng đã gửi đối soát
	AvailableQuantity *int64   `json:"availableQuantity" bson:"availableQuantity,omitempty"` // Số lượng sàn đáp ứng được, nil coi như hết hàng
	UnitPrice         float64  `json:"unitPrice" bson:"unitPrice"`                           // Đơn giá niêm yết tại thời điểm đối soát
	PromotionPrice    *float64 `json:"promotionPrice" bson:"promotionPrice,omitempty"`       // Giá khuyến mãi nếu có
	Verdict           string   `json:"verdict" bson:"verdict"`                               // available / insufficient / unavailable
}

// EffectivePrice trả về giá dùng để tính tiền: giá khuyến mãi nếu có, ngược lại đơn giá.
func (l *ReconciledLine) EffectivePrice() float64 {
	if l.PromotionPrice != nil {
		return *l.PromotionPrice
	}
	return l.UnitPrice
}

// Subtotal trả về thành tiền của dòng theo số lượng đã yêu cầu.
func (l *ReconciledLine) Subtotal() float64 {
	return l.EffectivePrice() * float64(l.RequestedQuantity)
}

// ShippingFee là một khoản phí vận chuyển sàn báo về (một khoản mỗi nhóm người bán).
type ShippingFee struct {
	Name   string  `json:"name" bson:"name"`     // Tên khoản phí / nhóm người bán
	Amount float64 `json:"amount" bson:"amount"` // Số tiền
}

// ReconciliationResult là kết quả một lần đối soát: các dòng chia theo verdict,
// snapshot phí vận chuyển và tổng tạm tính. Mỗi lần đối soát tạo kết quả mới
// thay thế hoàn toàn kết quả cũ.
type ReconciliationResult struct {
	Available    []ReconciledLine `json:"available" bson:"available"`       // Các dòng đáp ứng đủ
	Insufficient []ReconciledLine `json:"insufficient" bson:"insufficient"` // Các dòng thiếu hàng
	Unavailable  []ReconciledLine `json:"unavailable" bson:"unavailable"`   // Các dòng hết hàng
	ShippingFees []ShippingFee    `json:"shippingFees" bson:"shippingFees"` // Phí vận chuyển cho các dòng đáp ứng đủ
	Total        float64          `json:"total" bson:"total"`               // Tổng thành tiền các dòng đáp ứng đủ + phí vận chuyển
	ValidatedAt  int64            `json:"validatedAt" bson:"validatedAt"`   // Thời điểm đối soát (UnixMilli)
}

// Committable cho biết kết quả này đã đủ điều kiện đặt đơn chưa:
// không còn dòng thiếu hàng, không còn dòng hết hàng, và có ít nhất một dòng mua được.
func (r *ReconciliationResult) Committable() bool {
	return len(r.Insufficient) == 0 && len(r.Unavailable) == 0 && len(r.Available) > 0
}

// FindInsufficient tìm dòng thiếu hàng theo ID biến thể, trả về nil nếu không có.
func (r *ReconciliationResult) FindInsufficient(variationID string) *ReconciledLine {
	for i := range r.Insufficient {
		if r.Insufficient[i].VariationID == variationID {
			return &r.Insufficient[i]
		}
	}
	return nil
}
