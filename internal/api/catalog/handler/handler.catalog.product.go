package cataloghdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/tykealy/taobao-ui-prototype/internal/api/base/handler"
	catalogdto "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/dto"
	models "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/models"
	catalogsvc "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/service"
	"github.com/tykealy/taobao-ui-prototype/internal/common"
)

// CatalogProductHandler xử lý các yêu cầu liên quan đến snapshot sản phẩm
type CatalogProductHandler struct {
	*basehdl.BaseHandler[models.CatalogProduct, catalogdto.CatalogProductCreateInput, catalogdto.CatalogProductUpdateInput]
	CatalogProductService *catalogsvc.CatalogProductService
}

// NewCatalogProductHandler khởi tạo CatalogProductHandler mới
func NewCatalogProductHandler() (*CatalogProductHandler, error) {
	service, err := catalogsvc.NewCatalogProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog product service: %v", err)
	}
	hdl := &CatalogProductHandler{CatalogProductService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.CatalogProduct, catalogdto.CatalogProductCreateInput, catalogdto.CatalogProductUpdateInput](service.BaseServiceMongoImpl)
	return hdl, nil
}

// HandleDetail trả về chi tiết sản phẩm kèm property graph và trạng thái chọn ban đầu.
// Path param id là ID sản phẩm trên sàn, không phải ObjectID trong MongoDB.
func (h *CatalogProductHandler) HandleDetail(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		productID := c.Params("id")
		if productID == "" {
			h.HandleResponse(c, nil, common.ErrRequiredField)
			return nil
		}

		data, err := h.CatalogProductService.Detail(c.Context(), productID)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleSelect áp một thao tác chọn biến thể của khách và trả về trạng thái chọn mới.
func (h *CatalogProductHandler) HandleSelect(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		productID := c.Params("id")
		if productID == "" {
			h.HandleResponse(c, nil, common.ErrRequiredField)
			return nil
		}

		var req catalogdto.SelectRequest
		if err := h.ParseRequestBody(c, &req); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}
		if req.Toggle != nil {
			if err := h.ValidateInput(req.Toggle); err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
		}

		data, err := h.CatalogProductService.SelectState(c.Context(), productID, req)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleSync đồng bộ một sản phẩm từ sàn về snapshot.
func (h *CatalogProductHandler) HandleSync(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		productID := c.Params("id")
		if productID == "" {
			h.HandleResponse(c, nil, common.ErrRequiredField)
			return nil
		}

		data, err := h.CatalogProductService.SyncProduct(c.Context(), productID)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleSyncAll đồng bộ toàn bộ catalog từ sàn. Chạy đồng bộ trong request,
// catalog lớn nên gọi qua tooling thay vì để client đợi.
func (h *CatalogProductHandler) HandleSyncAll(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		data, err := h.CatalogProductService.SyncAll(c.Context())
		h.HandleResponse(c, data, err)
		return nil
	})
}
