package catalogdto

import (
	models "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/models"
)

// CatalogVariationCreateInput dữ liệu đầu vào khi tạo snapshot biến thể
type CatalogVariationCreateInput struct {
	VariationID    string                     `json:"variationId" validate:"required"` // ID biến thể trên sàn
	ProductID      string                     `json:"productId" validate:"required"`   // ID sản phẩm cha trên sàn
	Sku            string                     `json:"sku"`                             // Mã SKU hiển thị
	Properties     []models.VariationProperty `json:"properties"`                      // Các cặp (thuộc tính, giá trị)
	Image          string                     `json:"image"`                           // Ảnh riêng của biến thể
	RetailPrice    float64                    `json:"retailPrice" validate:"gte=0"`    // Giá niêm yết
	PromotionPrice *float64                   `json:"promotionPrice,omitempty"`        // Giá khuyến mãi
	Quantity       *int64                     `json:"quantity,omitempty"`              // Tồn kho, nil nếu sàn không báo
}

// CatalogVariationUpdateInput dữ liệu đầu vào khi cập nhật snapshot biến thể
type CatalogVariationUpdateInput struct {
	Sku            string                     `json:"sku,omitempty"`            // Mã SKU hiển thị
	Properties     []models.VariationProperty `json:"properties,omitempty"`     // Các cặp (thuộc tính, giá trị)
	Image          string                     `json:"image,omitempty"`          // Ảnh riêng của biến thể
	RetailPrice    float64                    `json:"retailPrice,omitempty"`    // Giá niêm yết
	PromotionPrice *float64                   `json:"promotionPrice,omitempty"` // Giá khuyến mãi
	Quantity       *int64                     `json:"quantity,omitempty"`       // Tồn kho
}
