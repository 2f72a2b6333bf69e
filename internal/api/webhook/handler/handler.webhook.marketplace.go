// Package webhookhdl - handler webhook từ sàn thương mại.
package webhookhdl

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/tykealy/taobao-ui-prototype/internal/api/base/handler"
	catalogsvc "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/service"
	webhookdto "github.com/tykealy/taobao-ui-prototype/internal/api/webhook/dto"
	webhookmodels "github.com/tykealy/taobao-ui-prototype/internal/api/webhook/models"
	webhooksvc "github.com/tykealy/taobao-ui-prototype/internal/api/webhook/service"
	"github.com/tykealy/taobao-ui-prototype/internal/common"
	"github.com/tykealy/taobao-ui-prototype/internal/logger"
)

// MarketplaceWebhookHandler nhận webhook catalog từ sàn: lưu log rồi áp thay
// đổi vào snapshot. Lỗi xử lý nằm trong log chứ không trả về sàn.
type MarketplaceWebhookHandler struct {
	webhookLogService *webhooksvc.WebhookLogService
	catalogService    *catalogsvc.CatalogProductService
}

// NewMarketplaceWebhookHandler tạo mới MarketplaceWebhookHandler
func NewMarketplaceWebhookHandler() (*MarketplaceWebhookHandler, error) {
	webhookLogService, err := webhooksvc.NewWebhookLogService()
	if err != nil {
		return nil, err
	}
	catalogService, err := catalogsvc.NewCatalogProductService()
	if err != nil {
		return nil, err
	}
	return &MarketplaceWebhookHandler{
		webhookLogService: webhookLogService,
		catalogService:    catalogService,
	}, nil
}

// HandleMarketplaceWebhook nhận webhook từ sàn, lưu log, áp vào snapshot catalog
// và luôn trả 200 để sàn không retry dồn dập. Payload hỏng hoặc xử lý lỗi đều
// ghi nhận trong webhook_logs.
func (h *MarketplaceWebhookHandler) HandleMarketplaceWebhook(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		log := logger.GetAppLogger()
		rawBody := string(c.Body())
		ctx := c.Context()

		var req webhookdto.MarketplaceWebhookRequest
		parseErr := c.Bind().Body(&req)

		webhookLog, logErr := h.saveWebhookLog(ctx, c, req, rawBody, parseErr)
		if logErr != nil {
			log.WithError(logErr).Warn("🔔 [MARKETPLACE WEBHOOK] Không thể lưu webhook log")
		}

		if parseErr == nil {
			procErr := h.process(ctx, req)
			if webhookLog != nil {
				if procErr != nil {
					log.WithError(procErr).WithField("eventType", req.EventType).
						Warn("🔔 [MARKETPLACE WEBHOOK] Xử lý webhook thất bại")
					_ = h.webhookLogService.UpdateProcessedStatus(ctx, webhookLog.ID, false, procErr.Error())
				} else {
					_ = h.webhookLogService.UpdateProcessedStatus(ctx, webhookLog.ID, true, "")
				}
			}
		}

		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": "Webhook đã được nhận và lưu log", "status": "success",
		})
		return nil
	})
}

// process áp một event catalog vào snapshot local.
func (h *MarketplaceWebhookHandler) process(ctx context.Context, req webhookdto.MarketplaceWebhookRequest) error {
	switch req.EventType {
	case webhookdto.EventProductUpdated:
		if req.Product == nil {
			return fmt.Errorf("event %s thiếu payload product", req.EventType)
		}
		_, _, err := h.catalogService.UpsertSnapshot(ctx, req.Product)
		return err
	case webhookdto.EventProductRemoved:
		if req.ProductID == "" {
			return fmt.Errorf("event %s thiếu productId", req.EventType)
		}
		_, err := h.catalogService.RemoveSnapshot(ctx, req.ProductID)
		return err
	default:
		return fmt.Errorf("loại event không hỗ trợ: %s", req.EventType)
	}
}

func (h *MarketplaceWebhookHandler) saveWebhookLog(ctx context.Context, c fiber.Ctx, req webhookdto.MarketplaceWebhookRequest, rawBody string, parseErr error) (*webhookmodels.WebhookLog, error) {
	now := time.Now().UnixMilli()

	requestHeaders := make(map[string]string)
	c.Request().Header.VisitAll(func(key, value []byte) {
		requestHeaders[string(key)] = string(value)
	})

	requestBody := make(map[string]interface{})
	if parseErr == nil {
		requestBody["eventType"] = req.EventType
		if req.Product != nil {
			requestBody["product"] = req.Product
		}
		if req.ProductID != "" {
			requestBody["productId"] = req.ProductID
		}
	} else {
		requestBody["raw"] = rawBody
		requestBody["parseError"] = parseErr.Error()
	}

	productID := req.ProductID
	if req.Product != nil {
		productID = req.Product.Product.ProductID
	}

	webhookLog := webhookmodels.WebhookLog{
		Source:         "marketplace",
		EventType:      req.EventType,
		ProductID:      productID,
		RequestHeaders: requestHeaders,
		RequestBody:    requestBody,
		RawBody:        rawBody,
		Processed:      false,
		ProcessError: func() string {
			if parseErr != nil {
				return "Parse error: " + parseErr.Error()
			}
			return ""
		}(),
		IPAddress:  c.IP(),
		UserAgent:  c.Get("User-Agent"),
		ReceivedAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return h.webhookLogService.CreateWebhookLog(ctx, webhookLog)
}
