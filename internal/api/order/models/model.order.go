package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderLine là một dòng hàng trong đơn đã đặt, snapshot tại thời điểm commit.
// Giá và tên giữ nguyên như lúc đối soát cuối cùng, không đổi theo catalog về sau.
type OrderLine struct {
	VariationID    string   `json:"variationId" bson:"variationId"`                 // ID biến thể trên sàn
	Name           string   `json:"name" bson:"name"`                               // Tên hiển thị lúc đặt đơn
	Quantity       int64    `json:"quantity" bson:"quantity"`                       // Số lượng đã đặt
	UnitPrice      float64  `json:"unitPrice" bson:"unitPrice"`                     // Đơn giá niêm yết lúc đặt
	PromotionPrice *float64 `json:"promotionPrice" bson:"promotionPrice,omitempty"` // Giá khuyến mãi nếu có
	Subtotal       float64  `json:"subtotal" bson:"subtotal"`                       // Thành tiền của dòng
}

// OrderShippingFee là một khoản phí vận chuyển trong đơn, snapshot lúc commit.
type OrderShippingFee struct {
	Name   string  `json:"name" bson:"name"`     // Tên khoản phí / nhóm người bán
	Amount float64 `json:"amount" bson:"amount"` // Số tiền
}

// Order là bản ghi local của một đơn đã đặt thành công trên sàn.
// Sàn là nơi giữ trạng thái đơn thật; bản ghi này phục vụ tra cứu lịch sử
// của khách trên storefront nên chỉ đọc sau khi tạo.
type Order struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`                            // ID của đơn trong MongoDB
	CustomerID         string             `json:"customerId" bson:"customerId" index:"single:1"`                // ID khách hàng đặt đơn
	MarketplaceOrderID string             `json:"marketplaceOrderId" bson:"marketplaceOrderId" index:"unique"`  // ID đơn trên sàn
	OrderNumber        string             `json:"orderNumber" bson:"orderNumber"`                               // Mã đơn hiển thị sàn cấp
	Status             string             `json:"status" bson:"status"`                                         // Trạng thái sàn trả về lúc tạo
	Lines              []OrderLine        `json:"lines" bson:"lines"`                                           // Các dòng hàng trong đơn
	ShippingFees       []OrderShippingFee `json:"shippingFees" bson:"shippingFees"`                             // Phí vận chuyển đã chốt
	Total              float64            `json:"total" bson:"total"`                                           // Tổng tiền đã chốt

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
