package cataloghdl

import (
	"fmt"

	basehdl "github.com/tykealy/taobao-ui-prototype/internal/api/base/handler"
	catalogdto "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/dto"
	models "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/models"
	catalogsvc "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/service"
)

// CatalogVariationHandler xử lý các yêu cầu liên quan đến snapshot biến thể
type CatalogVariationHandler struct {
	*basehdl.BaseHandler[models.CatalogVariation, catalogdto.CatalogVariationCreateInput, catalogdto.CatalogVariationUpdateInput]
	CatalogVariationService *catalogsvc.CatalogVariationService
}

// NewCatalogVariationHandler khởi tạo CatalogVariationHandler mới
func NewCatalogVariationHandler() (*CatalogVariationHandler, error) {
	service, err := catalogsvc.NewCatalogVariationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog variation service: %v", err)
	}
	hdl := &CatalogVariationHandler{CatalogVariationService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.CatalogVariation, catalogdto.CatalogVariationCreateInput, catalogdto.CatalogVariationUpdateInput](service.BaseServiceMongoImpl)
	return hdl, nil
}
