package carthdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/tykealy/taobao-ui-prototype/internal/api/base/handler"
	cartdto "github.com/tykealy/taobao-ui-prototype/internal/api/cart/dto"
	models "github.com/tykealy/taobao-ui-prototype/internal/api/cart/models"
	cartsvc "github.com/tykealy/taobao-ui-prototype/internal/api/cart/service"
	"github.com/tykealy/taobao-ui-prototype/internal/common"
	"github.com/tykealy/taobao-ui-prototype/internal/logger"
	"github.com/tykealy/taobao-ui-prototype/internal/utility"
)

// CartItemHandler xử lý các yêu cầu giỏ hàng của khách.
// Mọi route đều đứng sau AuthMiddleware: customer_id và bearer_token
// lấy từ Locals, thao tác chỉ chạm tới dòng của chính khách đó.
type CartItemHandler struct {
	*basehdl.BaseHandler[models.CartItem, cartdto.CartItemAddInput, cartdto.CartItemSetQuantityInput]
	CartItemService *cartsvc.CartItemService
}

// NewCartItemHandler khởi tạo CartItemHandler mới
func NewCartItemHandler() (*CartItemHandler, error) {
	service, err := cartsvc.NewCartItemService()
	if err != nil {
		return nil, fmt.Errorf("failed to create cart item service: %v", err)
	}
	hdl := &CartItemHandler{CartItemService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.CartItem, cartdto.CartItemAddInput, cartdto.CartItemSetQuantityInput](service.BaseServiceMongoImpl)
	return hdl, nil
}

// requestScope lấy customer_id và bearer_token do AuthMiddleware đặt vào Locals.
func requestScope(c fiber.Ctx) (customerID, bearer string) {
	customerID, _ = c.Locals("customer_id").(string)
	bearer, _ = c.Locals("bearer_token").(string)
	return customerID, bearer
}

// parseItemID đọc và kiểm tra ID dòng giỏ hàng từ URL params.
func parseItemID(c fiber.Ctx) (primitive.ObjectID, error) {
	id := c.Params("id")
	if id == "" {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			"ID không được để trống trong URL params",
			common.StatusBadRequest,
			nil,
		)
	}
	if !primitive.IsValidObjectID(id) {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
			common.StatusBadRequest,
			nil,
		)
	}
	return utility.String2ObjectID(id), nil
}

// HandleList trả về toàn bộ dòng giỏ hàng của khách đang đăng nhập.
func (h *CartItemHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		customerID, _ := requestScope(c)
		data, err := h.CartItemService.ListByCustomer(c.Context(), customerID)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleAdd thêm một biến thể vào giỏ, cộng dồn nếu dòng đã tồn tại.
func (h *CartItemHandler) HandleAdd(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input cartdto.CartItemAddInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		customerID, bearer := requestScope(c)
		data, err := h.CartItemService.Add(c.Context(), bearer, customerID, input.VariationID, input.Quantity)
		if err == nil {
			logger.LogCart("add", c, map[string]interface{}{
				"variationId": input.VariationID,
				"quantity":    input.Quantity,
			})
		}
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleSetQuantity ghi đè số lượng một dòng giỏ hàng.
func (h *CartItemHandler) HandleSetQuantity(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		itemID, err := parseItemID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input cartdto.CartItemSetQuantityInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		customerID, bearer := requestScope(c)
		data, err := h.CartItemService.SetQuantity(c.Context(), bearer, customerID, itemID, input.Quantity)
		if err == nil {
			logger.LogCart("set_quantity", c, map[string]interface{}{
				"cartItemId": itemID.Hex(),
				"quantity":   input.Quantity,
			})
		}
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleIncrement cộng delta vào số lượng một dòng, kết quả kẹp về tối thiểu 1.
func (h *CartItemHandler) HandleIncrement(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		itemID, err := parseItemID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input cartdto.CartItemIncrementInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		customerID, bearer := requestScope(c)
		data, err := h.CartItemService.IncrementQuantity(c.Context(), bearer, customerID, itemID, input.Delta)
		if err == nil {
			logger.LogCart("increment", c, map[string]interface{}{
				"cartItemId": itemID.Hex(),
				"delta":      input.Delta,
				"quantity":   data.Quantity,
			})
		}
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleRemove xóa một dòng khỏi giỏ hàng.
func (h *CartItemHandler) HandleRemove(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		itemID, err := parseItemID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		customerID, bearer := requestScope(c)
		err = h.CartItemService.Remove(c.Context(), bearer, customerID, itemID)
		if err == nil {
			logger.LogCart("remove", c, map[string]interface{}{
				"cartItemId": itemID.Hex(),
			})
		}
		h.HandleResponse(c, fiber.Map{"id": itemID.Hex()}, err)
		return nil
	})
}
