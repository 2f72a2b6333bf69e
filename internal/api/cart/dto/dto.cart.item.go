package cartdto

// CartItemAddInput dữ liệu đầu vào khi thêm một biến thể vào giỏ
type CartItemAddInput struct {
	VariationID string `json:"variationId" validate:"required"`      // ID biến thể trên sàn
	Quantity    int64  `json:"quantity" validate:"required,gte=1"`   // Số lượng muốn thêm, cộng dồn nếu dòng đã tồn tại
}

// CartItemSetQuantityInput dữ liệu đầu vào khi ghi đè số lượng một dòng giỏ hàng
type CartItemSetQuantityInput struct {
	Quantity int64 `json:"quantity" validate:"required,gte=1"` // Số lượng mới, ghi đè số lượng cũ
}

// CartItemIncrementInput dữ liệu đầu vào khi tăng/giảm số lượng một dòng giỏ hàng.
// Delta âm để giảm, kết quả luôn được kẹp về tối thiểu 1, không tự xóa dòng.
type CartItemIncrementInput struct {
	Delta int64 `json:"delta" validate:"required"` // Lượng thay đổi, khác 0
}
