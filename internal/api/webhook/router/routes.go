// Package router đăng ký các route thuộc domain Webhook: endpoint nhận webhook
// từ sàn (public) và tra cứu webhook log (cần đăng nhập, phục vụ debug).
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/tykealy/taobao-ui-prototype/internal/api/middleware"
	apirouter "github.com/tykealy/taobao-ui-prototype/internal/api/router"
	webhookhdl "github.com/tykealy/taobao-ui-prototype/internal/api/webhook/handler"
)

// Register đăng ký tất cả route webhook lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	marketplaceWebhookHandler, err := webhookhdl.NewMarketplaceWebhookHandler()
	if err != nil {
		return fmt.Errorf("create marketplace webhook handler: %w", err)
	}
	// Endpoint public: sàn gọi bằng API key riêng, không qua AuthMiddleware của khách
	v1.Post("/webhook/marketplace", marketplaceWebhookHandler.HandleMarketplaceWebhook)

	auth := []fiber.Handler{middleware.AuthMiddleware("")}
	webhookLogHandler, err := webhookhdl.NewWebhookLogHandler()
	if err != nil {
		return fmt.Errorf("create webhook log handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/webhook-logs", webhookLogHandler, apirouter.ReadOnlyConfig, auth)

	return nil
}
