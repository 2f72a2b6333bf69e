package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PropertyKey định danh một cặp (thuộc tính, giá trị) trong bảng mapping ảnh của sản phẩm
type PropertyKey struct {
	PropertyID string `json:"propertyId" bson:"propertyId"` // ID thuộc tính trên sàn
	ValueID    string `json:"valueId" bson:"valueId"`       // ID giá trị thuộc tính trên sàn
}

// ImageMapping gắn một ảnh với một hoặc nhiều cặp (thuộc tính, giá trị).
// Sàn trả về cả entry đơn thuộc tính lẫn entry tổ hợp nhiều thuộc tính.
type ImageMapping struct {
	Properties []PropertyKey `json:"properties" bson:"properties"` // Các cặp (thuộc tính, giá trị) dùng chung ảnh này
	Image      string        `json:"image" bson:"image"`           // URL ảnh
}

// CatalogProduct lưu snapshot thông tin chung của một sản phẩm đồng bộ từ sàn
type CatalogProduct struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`             // ID của sản phẩm trong MongoDB
	ProductID     string             `json:"productId" bson:"productId" index:"unique"`     // ID sản phẩm trên sàn
	Name          string             `json:"name" bson:"name" index:"text"`                 // Tên sản phẩm
	Description   string             `json:"description" bson:"description"`                // Mô tả sản phẩm
	Image         string             `json:"image" bson:"image"`                            // Ảnh đại diện mặc định
	ImageMappings []ImageMapping     `json:"imageMappings" bson:"imageMappings"`            // Bảng tra ảnh theo (thuộc tính, giá trị)
	SyncedAt      int64              `json:"syncedAt" bson:"syncedAt"`                      // Thời điểm đồng bộ gần nhất từ sàn

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
