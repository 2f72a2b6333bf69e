// Package webhookhdl chứa HTTP handler cho domain Webhook (log).
// File: handler.webhook.log.go
package webhookhdl

import (
	"fmt"

	basehdl "github.com/tykealy/taobao-ui-prototype/internal/api/base/handler"
	webhookdto "github.com/tykealy/taobao-ui-prototype/internal/api/webhook/dto"
	webhookmodels "github.com/tykealy/taobao-ui-prototype/internal/api/webhook/models"
	webhooksvc "github.com/tykealy/taobao-ui-prototype/internal/api/webhook/service"
)

// WebhookLogHandler xử lý các route tra cứu webhook log, phục vụ debug
type WebhookLogHandler struct {
	*basehdl.BaseHandler[webhookmodels.WebhookLog, webhookdto.WebhookLogCreateInput, webhookdto.WebhookLogUpdateInput]
}

// NewWebhookLogHandler tạo mới WebhookLogHandler
func NewWebhookLogHandler() (*WebhookLogHandler, error) {
	webhookLogService, err := webhooksvc.NewWebhookLogService()
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook log service: %w", err)
	}

	return &WebhookLogHandler{
		BaseHandler: basehdl.NewBaseHandler[webhookmodels.WebhookLog, webhookdto.WebhookLogCreateInput, webhookdto.WebhookLogUpdateInput](webhookLogService.BaseServiceMongoImpl),
	}, nil
}
