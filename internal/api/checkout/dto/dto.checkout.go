package checkoutdto

import (
	models "github.com/tykealy/taobao-ui-prototype/internal/api/checkout/models"
)

// CheckoutStartInput dữ liệu đầu vào khi bắt đầu phiên checkout:
// danh sách ID dòng giỏ hàng khách muốn mua, ít nhất một dòng.
type CheckoutStartInput struct {
	CartItemIDs []string `json:"cartItemIds" validate:"required,min=1,dive,object_id"` // ID các dòng giỏ hàng đã chọn
}

// CheckoutAdjustInput dữ liệu đầu vào khi điều chỉnh số lượng một dòng thiếu hàng.
// Quantity sẽ bị kẹp về [0, số lượng sàn đáp ứng được]; 0 nghĩa là bỏ dòng
// khỏi lần đối soát kế tiếp.
type CheckoutAdjustInput struct {
	Quantity int64 `json:"quantity" validate:"gte=0"` // Số lượng mới cho lần đối soát kế tiếp
}

// SessionResponse là trạng thái phiên checkout trả về client sau mỗi thao tác.
type SessionResponse struct {
	Session     *models.CheckoutSession `json:"session"`     // Phiên hiện tại, nil khi đã về idle
	Committable bool                    `json:"committable"` // Kết quả hiện tại đã đủ điều kiện đặt đơn chưa
}

// DropUnavailableResponse kết quả của thao tác bỏ toàn bộ dòng hết hàng.
type DropUnavailableResponse struct {
	Session      *models.CheckoutSession `json:"session"`      // Phiên sau khi bỏ
	DroppedCount int64                   `json:"droppedCount"` // Số dòng đã xóa khỏi giỏ hàng
}
