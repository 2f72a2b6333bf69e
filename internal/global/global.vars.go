// Package global giữ các biến dùng chung toàn service: cấu hình, phiên MongoDB,
// validator và registry các collection.
package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tykealy/taobao-ui-prototype/config"
	"github.com/tykealy/taobao-ui-prototype/internal/registry"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	CatalogProducts   string // Tên collection cho snapshot sản phẩm từ sàn
	CatalogVariations string // Tên collection cho snapshot biến thể (SKU) từ sàn
	CartItems         string // Tên collection cho dòng giỏ hàng của khách
	CheckoutSessions  string // Tên collection cho phiên checkout đang mở
	Orders            string // Tên collection cho đơn hàng đã đặt thành công
	WebhookLogs       string // Tên collection cho log webhook nhận từ sàn
}

// Các biến toàn cục
var Validate *validator.Validate                                             // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                            // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                               // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName)   // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
