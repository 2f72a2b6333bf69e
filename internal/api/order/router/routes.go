// Package router đăng ký các route tra cứu đơn hàng của khách.
// Đơn chỉ được tạo qua checkout commit nên toàn bộ route là read-only.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/tykealy/taobao-ui-prototype/internal/api/middleware"
	orderhdl "github.com/tykealy/taobao-ui-prototype/internal/api/order/handler"
	apirouter "github.com/tykealy/taobao-ui-prototype/internal/api/router"
)

// Register đăng ký tất cả route order lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	auth := []fiber.Handler{middleware.AuthMiddleware("")}

	orderHandler, err := orderhdl.NewOrderHandler()
	if err != nil {
		return fmt.Errorf("create order handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/orders", orderHandler, apirouter.ReadOnlyConfig, auth)

	return nil
}
