package catalogdto

import (
	models "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/models"
)

// CatalogProductCreateInput dữ liệu đầu vào khi tạo snapshot sản phẩm
type CatalogProductCreateInput struct {
	ProductID     string                `json:"productId" validate:"required"` // ID sản phẩm trên sàn
	Name          string                `json:"name" validate:"required"`      // Tên sản phẩm
	Description   string                `json:"description"`                   // Mô tả sản phẩm
	Image         string                `json:"image"`                         // Ảnh đại diện mặc định
	ImageMappings []models.ImageMapping `json:"imageMappings"`                 // Bảng tra ảnh theo (thuộc tính, giá trị)
}

// CatalogProductUpdateInput dữ liệu đầu vào khi cập nhật snapshot sản phẩm
type CatalogProductUpdateInput struct {
	Name          string                `json:"name,omitempty"`          // Tên sản phẩm
	Description   string                `json:"description,omitempty"`   // Mô tả sản phẩm
	Image         string                `json:"image,omitempty"`         // Ảnh đại diện mặc định
	ImageMappings []models.ImageMapping `json:"imageMappings,omitempty"` // Bảng tra ảnh theo (thuộc tính, giá trị)
}
