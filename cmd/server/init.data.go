package main

import (
	"context"

	catalogsvc "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/service"
	"github.com/tykealy/taobao-ui-prototype/internal/global"
	"github.com/tykealy/taobao-ui-prototype/internal/logger"
)

// InitDefaultData đồng bộ catalog từ sàn khi được bật qua config.
// Đồng bộ chạy nền để không chặn server khởi động, catalog cũng có thể
// được cập nhật sau qua webhook hoặc endpoint /catalog/sync.
func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	if !global.MongoDB_ServerConfig.CatalogSyncOnBoot {
		log.Info("🔄 [INIT] CATALOG_SYNC_ON_BOOT=false, bỏ qua đồng bộ catalog khi khởi động")
		return
	}

	productService, err := catalogsvc.NewCatalogProductService()
	if err != nil {
		log.WithError(err).Error("🔄 [INIT] Failed to create catalog product service, continuing without boot sync")
		return
	}

	// Chạy sync trong goroutine riêng với recover
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(map[string]interface{}{
					"panic": r,
				}).Error("🛒 [CATALOG] Boot sync goroutine panic")
			}
		}()

		log.Info("🛒 [CATALOG] Starting boot catalog sync...")
		result, err := productService.SyncAll(context.Background())
		if err != nil {
			log.WithError(err).Error("🛒 [CATALOG] Boot catalog sync failed")
			return
		}
		log.Infof("🛒 [CATALOG] Boot catalog sync completed: %d sản phẩm, %d biến thể", result.Products, result.Variations)
	}()

	log.Info("✅ [INIT] InitDefaultData completed successfully")
}
