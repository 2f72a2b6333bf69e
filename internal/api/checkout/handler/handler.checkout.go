package checkouthdl

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/tykealy/taobao-ui-prototype/internal/api/base/handler"
	checkoutdto "github.com/tykealy/taobao-ui-prototype/internal/api/checkout/dto"
	models "github.com/tykealy/taobao-ui-prototype/internal/api/checkout/models"
	checkoutsvc "github.com/tykealy/taobao-ui-prototype/internal/api/checkout/service"
	"github.com/tykealy/taobao-ui-prototype/internal/common"
	"github.com/tykealy/taobao-ui-prototype/internal/logger"
	"github.com/tykealy/taobao-ui-prototype/internal/utility"
)

// CheckoutHandler xử lý các bước của phiên checkout.
// Mọi route đều đứng sau AuthMiddleware: customer_id, customer_email và
// bearer_token lấy từ Locals, mỗi khách chỉ thấy phiên của chính mình.
type CheckoutHandler struct {
	*basehdl.BaseHandler[models.CheckoutSession, checkoutdto.CheckoutStartInput, checkoutdto.CheckoutAdjustInput]
	CheckoutSessionService *checkoutsvc.CheckoutSessionService
}

// NewCheckoutHandler khởi tạo CheckoutHandler mới
func NewCheckoutHandler() (*CheckoutHandler, error) {
	service, err := checkoutsvc.NewCheckoutSessionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session service: %v", err)
	}
	hdl := &CheckoutHandler{CheckoutSessionService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.CheckoutSession, checkoutdto.CheckoutStartInput, checkoutdto.CheckoutAdjustInput](service.BaseServiceMongoImpl)
	return hdl, nil
}

// requestScope lấy customer_id và bearer_token do AuthMiddleware đặt vào Locals.
func requestScope(c fiber.Ctx) (customerID, bearer string) {
	customerID, _ = c.Locals("customer_id").(string)
	bearer, _ = c.Locals("bearer_token").(string)
	return customerID, bearer
}

// customerEmail lấy email khách từ Locals, rỗng nếu token không mang email.
func customerEmail(c fiber.Ctx) string {
	email, _ := c.Locals("customer_email").(string)
	return email
}

// sessionResponse dựng response trạng thái phiên trả về client.
func sessionResponse(session models.CheckoutSession) checkoutdto.SessionResponse {
	return checkoutdto.SessionResponse{
		Session:     &session,
		Committable: session.Result != nil && session.Result.Committable(),
	}
}

// idleResponse là response khi khách không có phiên nào đang mở.
func idleResponse() checkoutdto.SessionResponse {
	return checkoutdto.SessionResponse{Session: nil, Committable: false}
}

// HandleSession trả về phiên checkout hiện tại của khách,
// session null khi không có phiên nào đang mở.
func (h *CheckoutHandler) HandleSession(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		customerID, _ := requestScope(c)
		session, err := h.CheckoutSessionService.Current(c.Context(), customerID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				h.HandleResponse(c, idleResponse(), nil)
				return nil
			}
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, sessionResponse(session), nil)
		return nil
	})
}

// HandleStart mở phiên checkout từ các dòng giỏ hàng đã chọn và đối soát ngay với sàn.
func (h *CheckoutHandler) HandleStart(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input checkoutdto.CheckoutStartInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		cartItemIDs := utility.StringArray2ObjectIDArray(input.CartItemIDs)

		customerID, bearer := requestScope(c)
		session, err := h.CheckoutSessionService.Start(c.Context(), bearer, customerID, cartItemIDs)
		if err == nil {
			logger.LogCheckout("start", c, map[string]interface{}{
				"session_id": session.ID.Hex(),
				"line_count": len(input.CartItemIDs),
			})
			h.HandleResponse(c, sessionResponse(session), nil)
			return nil
		}
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleRevalidate đối soát lại payload hiện tại của phiên với sàn.
func (h *CheckoutHandler) HandleRevalidate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		customerID, bearer := requestScope(c)
		session, err := h.CheckoutSessionService.Revalidate(c.Context(), bearer, customerID)
		if err == nil {
			logger.LogCheckout("revalidate", c, map[string]interface{}{
				"session_id":   session.ID.Hex(),
				"available":    len(session.Result.Available),
				"insufficient": len(session.Result.Insufficient),
				"unavailable":  len(session.Result.Unavailable),
			})
			h.HandleResponse(c, sessionResponse(session), nil)
			return nil
		}
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleAdjustLine đổi số lượng một dòng thiếu hàng cho lần đối soát kế tiếp.
func (h *CheckoutHandler) HandleAdjustLine(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		variationID := c.Params("variationId")
		if variationID == "" {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				"Variation ID không được để trống trong URL params",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		var input checkoutdto.CheckoutAdjustInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		customerID, _ := requestScope(c)
		session, err := h.CheckoutSessionService.AdjustLine(c.Context(), customerID, variationID, input.Quantity)
		if err == nil {
			logger.LogCheckout("adjust_line", c, map[string]interface{}{
				"variationId": variationID,
				"quantity":    input.Quantity,
			})
			h.HandleResponse(c, sessionResponse(session), nil)
			return nil
		}
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleDropUnavailable bỏ toàn bộ dòng hết hàng: xóa khỏi giỏ (đồng bộ sàn)
// và dọn bucket hết hàng của kết quả hiện tại.
func (h *CheckoutHandler) HandleDropUnavailable(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		customerID, bearer := requestScope(c)
		session, dropped, err := h.CheckoutSessionService.DropUnavailable(c.Context(), bearer, customerID)
		if err == nil {
			logger.LogCheckout("drop_unavailable", c, map[string]interface{}{
				"dropped": dropped,
			})
			h.HandleResponse(c, checkoutdto.DropUnavailableResponse{
				Session:      &session,
				DroppedCount: dropped,
			}, nil)
			return nil
		}
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleCommit đặt đơn trên sàn với kết quả đối soát hiện tại.
// Thành công trả về đơn hàng, phiên kết thúc và các dòng giỏ đã mua bị xóa.
func (h *CheckoutHandler) HandleCommit(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		customerID, bearer := requestScope(c)
		order, err := h.CheckoutSessionService.Commit(c.Context(), bearer, customerID, customerEmail(c))
		if err == nil {
			logger.LogCheckout("commit", c, map[string]interface{}{
				"order_number": order.OrderNumber,
				"total":        order.Total,
			})
			logger.LogOrder("place", c, map[string]interface{}{
				"order_id":             order.ID.Hex(),
				"marketplace_order_id": order.MarketplaceOrderID,
				"order_number":         order.OrderNumber,
				"total":                order.Total,
			})
			h.HandleResponse(c, order, nil)
			return nil
		}
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleAbandon hủy phiên checkout hiện tại, giỏ hàng không đổi.
func (h *CheckoutHandler) HandleAbandon(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		customerID, _ := requestScope(c)
		err := h.CheckoutSessionService.Abandon(c.Context(), customerID)
		if err == nil {
			logger.LogCheckout("abandon", c, nil)
			h.HandleResponse(c, idleResponse(), nil)
			return nil
		}
		h.HandleResponse(c, nil, err)
		return nil
	})
}
