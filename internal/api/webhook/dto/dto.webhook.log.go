// Package webhookdto chứa DTO cho domain Webhook (log).
// File: dto.webhook.log.go
package webhookdto

// Webhook log chỉ được tạo bởi chính webhook handler, API /webhook-logs là
// read-only. Hai DTO dưới đây tồn tại để thỏa type params của BaseHandler.

// WebhookLogCreateInput là DTO cho tạo mới webhook log (không mở qua API)
type WebhookLogCreateInput struct {
	Source         string                 `json:"source" validate:"required"`      // Nguồn webhook
	EventType      string                 `json:"eventType" validate:"required"`   // Loại event
	ProductID      string                 `json:"productId,omitempty"`             // ID sản phẩm trong payload
	RequestHeaders map[string]string      `json:"requestHeaders,omitempty"`        // Headers của request
	RequestBody    map[string]interface{} `json:"requestBody" validate:"required"` // Body của request
	RawBody        string                 `json:"rawBody,omitempty"`               // Raw body string
	IPAddress      string                 `json:"ipAddress,omitempty"`             // IP address
	UserAgent      string                 `json:"userAgent,omitempty"`             // User agent
}

// WebhookLogUpdateInput là DTO cho cập nhật webhook log (không mở qua API)
type WebhookLogUpdateInput struct {
	Processed    *bool   `json:"processed,omitempty"`    // Đã xử lý thành công chưa
	ProcessError *string `json:"processError,omitempty"` // Lỗi nếu có
}
