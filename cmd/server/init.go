package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tykealy/taobao-ui-prototype/config"
	cartmodels "github.com/tykealy/taobao-ui-prototype/internal/api/cart/models"
	catalogmodels "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/models"
	checkoutmodels "github.com/tykealy/taobao-ui-prototype/internal/api/checkout/models"
	ordermodels "github.com/tykealy/taobao-ui-prototype/internal/api/order/models"
	webhookmodels "github.com/tykealy/taobao-ui-prototype/internal/api/webhook/models"
	"github.com/tykealy/taobao-ui-prototype/internal/database"
	"github.com/tykealy/taobao-ui-prototype/internal/global"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	// Catalog: snapshot sản phẩm và biến thể đồng bộ từ sàn
	global.MongoDB_ColNames.CatalogProducts = "catalog_products"
	global.MongoDB_ColNames.CatalogVariations = "catalog_variations"

	// Giỏ hàng và phiên checkout của khách
	global.MongoDB_ColNames.CartItems = "cart_items"
	global.MongoDB_ColNames.CheckoutSessions = "checkout_sessions"

	// Đơn hàng đã đặt thành công trên sàn
	global.MongoDB_ColNames.Orders = "orders"

	// Webhook Logs Collection
	global.MongoDB_ColNames.WebhookLogs = "webhook_logs"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: no_xss, object_id, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các db và collections nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khơi tạo các index cho các collection
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.CatalogProducts), catalogmodels.CatalogProduct{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.CatalogVariations), catalogmodels.CatalogVariation{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.CartItems), cartmodels.CartItem{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.CheckoutSessions), checkoutmodels.CheckoutSession{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Orders), ordermodels.Order{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.WebhookLogs), webhookmodels.WebhookLog{})
}
