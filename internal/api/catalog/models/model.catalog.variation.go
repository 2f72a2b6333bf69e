package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VariationProperty là một cặp (thuộc tính, giá trị) của biến thể, kèm tên hiển thị.
// Thứ tự các cặp giữ nguyên như sàn trả về.
type VariationProperty struct {
	PropertyID string `json:"propertyId" bson:"propertyId"` // ID thuộc tính trên sàn
	Name       string `json:"name" bson:"name"`             // Tên thuộc tính (vd: "Màu sắc")
	ValueID    string `json:"valueId" bson:"valueId"`       // ID giá trị trên sàn
	Value      string `json:"value" bson:"value"`           // Tên giá trị (vd: "Đỏ")
}

// CatalogVariation lưu snapshot một biến thể (SKU) của sản phẩm đồng bộ từ sàn
type CatalogVariation struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`              // ID của biến thể trong MongoDB
	VariationID    string              `json:"variationId" bson:"variationId" index:"unique"`  // ID biến thể trên sàn
	ProductID      string              `json:"productId" bson:"productId" index:"single:1"`    // ID sản phẩm cha trên sàn
	Sku            string              `json:"sku" bson:"sku"`                                 // Mã SKU hiển thị
	Properties     []VariationProperty `json:"properties" bson:"properties"`                   // Các cặp (thuộc tính, giá trị) của biến thể
	Image          string              `json:"image" bson:"image"`                             // Ảnh riêng của biến thể, có thể rỗng
	RetailPrice    float64             `json:"retailPrice" bson:"retailPrice"`                 // Giá niêm yết
	PromotionPrice *float64            `json:"promotionPrice" bson:"promotionPrice,omitempty"` // Giá khuyến mãi, nil nếu không có
	Quantity       *int64              `json:"quantity" bson:"quantity,omitempty"`             // Tồn kho, nil nếu sàn không báo
	SyncedAt       int64               `json:"syncedAt" bson:"syncedAt"`                       // Thời điểm đồng bộ gần nhất từ sàn

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

// InStock trả về true khi biến thể còn hàng. Quantity nil coi như hết hàng.
func (v *CatalogVariation) InStock() bool {
	return v.Quantity != nil && *v.Quantity > 0
}

// HasValue kiểm tra biến thể có mang giá trị value cho nhóm thuộc tính name không.
func (v *CatalogVariation) HasValue(name, value string) bool {
	for _, p := range v.Properties {
		if p.Name == name && p.Value == value {
			return true
		}
	}
	return false
}

// CurrentPrice trả về giá bán hiện hành: giá khuyến mãi nếu có, ngược lại giá niêm yết.
func (v *CatalogVariation) CurrentPrice() float64 {
	if v.PromotionPrice != nil {
		return *v.PromotionPrice
	}
	return v.RetailPrice
}
