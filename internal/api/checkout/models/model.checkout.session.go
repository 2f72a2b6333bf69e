package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của phiên checkout. Idle không có document: phiên chưa bắt đầu
// hoặc đã kết thúc đều là "không tồn tại" trong checkout_sessions.
const (
	StateIdle       = "idle"       // không có phiên
	StateValidating = "validating" // đang chờ sàn đối soát, chặn đối soát chồng
	StateReviewing  = "reviewing"  // có kết quả đối soát, khách đang xem và điều chỉnh
	StateCommitting = "committing" // đang đặt đơn trên sàn
)

// CanTransitionTo kiểm tra máy trạng thái checkout có cho phép chuyển
// từ current sang next hay không. Mọi chuyển trạng thái trong service
// đều phải qua hàm này trước khi ghi xuống database.
func CanTransitionTo(current, next string) bool {
	switch current {
	case StateIdle:
		return next == StateValidating
	case StateValidating:
		// Đối soát xong sang reviewing; thất bại ở lần đầu quay về idle,
		// thất bại giữa vòng lặp quay về reviewing với kết quả cũ
		return next == StateReviewing || next == StateIdle
	case StateReviewing:
		return next == StateValidating || next == StateCommitting || next == StateIdle
	case StateCommitting:
		// Đặt đơn thất bại giữ nguyên kết quả cũ ở reviewing, thành công thì xóa phiên
		return next == StateReviewing || next == StateIdle
	}
	return false
}

// SessionLine là một dòng (biến thể, số lượng) trong payload đối soát.
// Quantity ở đây là số lượng sẽ gửi sàn ở lần đối soát kế tiếp, khách điều
// chỉnh dòng thiếu hàng sẽ sửa giá trị này chứ không sửa giỏ hàng.
type SessionLine struct {
	CartItemID  primitive.ObjectID `json:"cartItemId" bson:"cartItemId"`   // Dòng giỏ hàng gốc
	VariationID string             `json:"variationId" bson:"variationId"` // ID biến thể trên sàn
	Quantity    int64              `json:"quantity" bson:"quantity"`       // Số lượng cho lần đối soát kế tiếp, 0 = loại khỏi payload
}

// CheckoutSession là phiên checkout đang hoạt động của một khách.
// Mỗi khách tối đa một phiên (unique index theo customerId).
type CheckoutSession struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`            // ID của phiên trong MongoDB
	CustomerID string             `json:"customerId" bson:"customerId" index:"unique"`  // ID khách hàng sở hữu phiên
	State      string             `json:"state" bson:"state"`                           // Trạng thái máy trạng thái
	Lines      []SessionLine      `json:"lines" bson:"lines"`                           // Payload cho lần đối soát hiện tại/kế tiếp

	// Result chỉ tồn tại từ reviewing trở đi. PriorResult là điểm hoàn tác
	// khi một lần đối soát lại thất bại giữa chừng: validating giữ kết quả
	// ổn định trước đó ở đây thay vì ở Result.
	Result      *ReconciliationResult `json:"result,omitempty" bson:"result,omitempty"`
	PriorResult *ReconciliationResult `json:"-" bson:"priorResult,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

// ValidatePayload kiểm tra bất biến giữa trạng thái và dữ liệu đi kèm:
// reviewing/committing bắt buộc có Result, validating không được có.
func (s *CheckoutSession) ValidatePayload() bool {
	switch s.State {
	case StateValidating:
		return s.Result == nil
	case StateReviewing, StateCommitting:
		return s.Result != nil
	}
	return false
}

// LineByVariation tìm dòng payload theo ID biến thể, trả về nil nếu không có.
func (s *CheckoutSession) LineByVariation(variationID string) *SessionLine {
	for i := range s.Lines {
		if s.Lines[i].VariationID == variationID {
			return &s.Lines[i]
		}
	}
	return nil
}
