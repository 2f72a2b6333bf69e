package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem là một dòng trong giỏ hàng: khách nào, biến thể nào, số lượng bao nhiêu.
// Mỗi khách chỉ có một dòng cho mỗi biến thể (compound unique index),
// thêm lại cùng biến thể sẽ cộng dồn số lượng thay vì tạo dòng mới.
type CartItem struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`                                                   // ID của dòng giỏ hàng trong MongoDB
	CustomerID  string             `json:"customerId" bson:"customerId" index:"single:1;compound:customerId_variationId_unique"` // ID khách hàng sở hữu dòng
	VariationID string             `json:"variationId" bson:"variationId" index:"compound:customerId_variationId_unique"`        // ID biến thể trên sàn
	Quantity    int64              `json:"quantity" bson:"quantity"`                                                            // Số lượng, luôn >= 1

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
