package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// AuditAction mô tả một hành động cần audit của khách hàng.
type AuditAction struct {
	Action       string                 `json:"action"`        // Tên hành động (ví dụ: "cart_add", "checkout_commit")
	CustomerID   string                 `json:"customer_id"`   // ID khách hàng thực hiện
	ResourceID   string                 `json:"resource_id"`   // ID tài nguyên bị ảnh hưởng
	ResourceType string                 `json:"resource_type"` // Loại tài nguyên (ví dụ: "cart_item", "order")
	IP           string                 `json:"ip"`            // Địa chỉ IP
	UserAgent    string                 `json:"user_agent"`    // User agent
	Details      map[string]interface{} `json:"details"`       // Chi tiết bổ sung
	Timestamp    time.Time              `json:"timestamp"`     // Thời gian
}

// LogAction ghi một hành động audit vào audit logger.
func LogAction(action string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}

	audit := AuditAction{
		Action:    action,
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
		Details:   details,
		Timestamp: time.Now(),
	}

	// Customer ID do AuthMiddleware set vào Locals
	if customerID := c.Locals("customer_id"); customerID != nil {
		if cid, ok := customerID.(string); ok {
			audit.CustomerID = cid
		}
	}

	if requestID := c.Get("X-Request-ID"); requestID != "" {
		audit.Details["request_id"] = requestID
	}

	GetAuditLogger().WithFields(logrus.Fields{
		"action":        audit.Action,
		"customer_id":   audit.CustomerID,
		"resource_id":   audit.ResourceID,
		"resource_type": audit.ResourceType,
		"ip":            audit.IP,
		"user_agent":    audit.UserAgent,
		"details":       audit.Details,
		"timestamp":     audit.Timestamp,
	}).Info("Audit log")
}

// LogCart ghi audit cho các thao tác giỏ hàng.
func LogCart(operation string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["cart_operation"] = operation

	LogAction("cart_"+operation, c, details)
}

// LogCheckout ghi audit cho các bước của phiên checkout.
func LogCheckout(step string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["checkout_step"] = step

	LogAction("checkout_"+step, c, details)
}

// LogOrder ghi audit khi đơn hàng được tạo hoặc thay đổi.
func LogOrder(action string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["order_action"] = action

	LogAction("order_"+action, c, details)
}
