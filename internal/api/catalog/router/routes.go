// Package router đăng ký các route thuộc domain catalog: CRUD snapshot sản phẩm và
// biến thể, chi tiết sản phẩm, chọn biến thể và đồng bộ từ sàn.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	cataloghdl "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/handler"
	"github.com/tykealy/taobao-ui-prototype/internal/api/middleware"
	apirouter "github.com/tykealy/taobao-ui-prototype/internal/api/router"
)

// Register đăng ký tất cả route catalog lên v1.
// Route đọc cho storefront chỉ cần token, route quản trị (CRUD snapshot, sync)
// yêu cầu token mang scope catalog.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	auth := []fiber.Handler{middleware.AuthMiddleware("")}
	adminAuth := []fiber.Handler{middleware.AuthMiddleware("catalog")}

	productHandler, err := cataloghdl.NewCatalogProductHandler()
	if err != nil {
		return fmt.Errorf("create catalog product handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/catalog/products", productHandler, apirouter.ReadWriteConfig, adminAuth)
	apirouter.RegisterRouteWithMiddleware(v1, "/catalog/products", "GET", "/:id/detail", auth, productHandler.HandleDetail)
	apirouter.RegisterRouteWithMiddleware(v1, "/catalog/products", "POST", "/:id/select", auth, productHandler.HandleSelect)
	apirouter.RegisterRouteWithMiddleware(v1, "/catalog/products", "POST", "/:id/sync", adminAuth, productHandler.HandleSync)
	apirouter.RegisterRouteWithMiddleware(v1, "/catalog", "POST", "/sync", adminAuth, productHandler.HandleSyncAll)

	variationHandler, err := cataloghdl.NewCatalogVariationHandler()
	if err != nil {
		return fmt.Errorf("create catalog variation handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/catalog/variations", variationHandler, apirouter.ReadWriteConfig, adminAuth)

	return nil
}
