// Package router đăng ký các route của phiên checkout: mở phiên, xem phiên,
// điều chỉnh dòng thiếu hàng, bỏ dòng hết hàng, đối soát lại, đặt đơn và hủy phiên.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	checkouthdl "github.com/tykealy/taobao-ui-prototype/internal/api/checkout/handler"
	"github.com/tykealy/taobao-ui-prototype/internal/api/middleware"
	apirouter "github.com/tykealy/taobao-ui-prototype/internal/api/router"
)

// Register đăng ký tất cả route checkout lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	auth := []fiber.Handler{middleware.AuthMiddleware("")}

	checkoutHandler, err := checkouthdl.NewCheckoutHandler()
	if err != nil {
		return fmt.Errorf("create checkout handler: %w", err)
	}

	apirouter.RegisterRouteWithMiddleware(v1, "/checkout", "POST", "/start", auth, checkoutHandler.HandleStart)
	apirouter.RegisterRouteWithMiddleware(v1, "/checkout", "GET", "/session", auth, checkoutHandler.HandleSession)
	apirouter.RegisterRouteWithMiddleware(v1, "/checkout", "DELETE", "/session", auth, checkoutHandler.HandleAbandon)
	apirouter.RegisterRouteWithMiddleware(v1, "/checkout", "PUT", "/lines/:variationId/quantity", auth, checkoutHandler.HandleAdjustLine)
	apirouter.RegisterRouteWithMiddleware(v1, "/checkout", "DELETE", "/lines/unavailable", auth, checkoutHandler.HandleDropUnavailable)
	apirouter.RegisterRouteWithMiddleware(v1, "/checkout", "POST", "/revalidate", auth, checkoutHandler.HandleRevalidate)
	apirouter.RegisterRouteWithMiddleware(v1, "/checkout", "POST", "/commit", auth, checkoutHandler.HandleCommit)

	return nil
}
