package orderdto

import (
	models "github.com/tykealy/taobao-ui-prototype/internal/api/order/models"
)

// Đơn hàng chỉ được tạo qua checkout commit, API /orders là read-only.
// Hai DTO dưới đây tồn tại để thỏa type params của BaseHandler, không có
// route nào dùng tới.

// OrderCreateInput dữ liệu đầu vào khi tạo đơn (không mở qua API)
type OrderCreateInput struct {
	CustomerID         string                    `json:"customerId" validate:"required"`         // ID khách hàng đặt đơn
	MarketplaceOrderID string                    `json:"marketplaceOrderId" validate:"required"` // ID đơn trên sàn
	OrderNumber        string                    `json:"orderNumber" validate:"required"`        // Mã đơn hiển thị
	Status             string                    `json:"status"`                                 // Trạng thái lúc tạo
	Lines              []models.OrderLine        `json:"lines" validate:"required,min=1"`        // Các dòng hàng
	ShippingFees       []models.OrderShippingFee `json:"shippingFees"`                           // Phí vận chuyển
	Total              float64                   `json:"total" validate:"gte=0"`                 // Tổng tiền
}

// OrderUpdateInput dữ liệu đầu vào khi cập nhật đơn (không mở qua API)
type OrderUpdateInput struct {
	Status string `json:"status,omitempty"` // Trạng thái mới
}
