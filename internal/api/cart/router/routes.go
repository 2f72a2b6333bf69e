// Package router đăng ký các route giỏ hàng, tất cả trong phạm vi khách đã đăng nhập.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	carthdl "github.com/tykealy/taobao-ui-prototype/internal/api/cart/handler"
	"github.com/tykealy/taobao-ui-prototype/internal/api/middleware"
	apirouter "github.com/tykealy/taobao-ui-prototype/internal/api/router"
)

// Register đăng ký tất cả route giỏ hàng lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	auth := []fiber.Handler{middleware.AuthMiddleware("")}

	cartHandler, err := carthdl.NewCartItemHandler()
	if err != nil {
		return fmt.Errorf("create cart item handler: %w", err)
	}

	apirouter.RegisterRouteWithMiddleware(v1, "/cart/items", "GET", "", auth, cartHandler.HandleList)
	apirouter.RegisterRouteWithMiddleware(v1, "/cart/items", "POST", "/add", auth, cartHandler.HandleAdd)
	apirouter.RegisterRouteWithMiddleware(v1, "/cart/items", "PUT", "/:id/quantity", auth, cartHandler.HandleSetQuantity)
	apirouter.RegisterRouteWithMiddleware(v1, "/cart/items", "PUT", "/:id/increment", auth, cartHandler.HandleIncrement)
	apirouter.RegisterRouteWithMiddleware(v1, "/cart/items", "DELETE", "/:id", auth, cartHandler.HandleRemove)

	return nil
}
