// Package webhookdto chứa DTO cho domain Webhook.
package webhookdto

import (
	"github.com/tykealy/taobao-ui-prototype/internal/marketplace"
)

// Các loại event sàn gửi qua webhook khi catalog thay đổi.
const (
	EventProductUpdated = "product_updated" // Sản phẩm tạo mới hoặc thay đổi, kèm payload đầy đủ
	EventProductRemoved = "product_removed" // Sản phẩm ngừng bán, chỉ kèm productId
)

// MarketplaceWebhookRequest là payload sàn gửi khi catalog thay đổi.
// product_updated mang payload đầy đủ của sản phẩm, product_removed chỉ mang productId.
type MarketplaceWebhookRequest struct {
	EventType string                      `json:"eventType"`           // Loại event
	Product   *marketplace.ProductPayload `json:"product,omitempty"`   // Payload sản phẩm cho product_updated
	ProductID string                      `json:"productId,omitempty"` // ID sản phẩm cho product_removed
}
