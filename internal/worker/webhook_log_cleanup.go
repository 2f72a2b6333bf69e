package worker

import (
	"context"
	"time"

	webhooksvc "github.com/tykealy/taobao-ui-prototype/internal/api/webhook/service"
	"github.com/tykealy/taobao-ui-prototype/internal/logger"
)

// WebhookLogCleanupWorker worker dọn định kỳ các webhook log đã xử lý.
// Log chưa xử lý không bị xóa để còn truy vết và chạy lại bằng tay.
type WebhookLogCleanupWorker struct {
	logService *webhooksvc.WebhookLogService
	interval   time.Duration // Khoảng thời gian giữa các lần chạy
	retention  time.Duration // Khoảng thời gian giữ lại log đã xử lý
}

// NewWebhookLogCleanupWorker tạo mới WebhookLogCleanupWorker
// Tham số:
//   - interval: Khoảng thời gian giữa các lần chạy (mặc định: 6 giờ)
//   - retention: Khoảng thời gian giữ lại log đã xử lý (mặc định: 30 ngày)
//
// Trả về:
//   - *WebhookLogCleanupWorker: Instance mới của WebhookLogCleanupWorker
//   - error: Lỗi nếu có trong quá trình khởi tạo
func NewWebhookLogCleanupWorker(interval, retention time.Duration) (*WebhookLogCleanupWorker, error) {
	logService, err := webhooksvc.NewWebhookLogService()
	if err != nil {
		return nil, err
	}

	// Set defaults
	if interval < time.Hour {
		interval = 6 * time.Hour // Mặc định 6 giờ
	}
	if retention < 24*time.Hour {
		retention = 30 * 24 * time.Hour // Mặc định 30 ngày
	}

	return &WebhookLogCleanupWorker{
		logService: logService,
		interval:   interval,
		retention:  retention,
	}, nil
}

// Start bắt đầu background worker để dọn webhook log cũ
// Worker chạy định kỳ theo interval, mỗi lần xóa các log đã xử lý cũ hơn retention
func (w *WebhookLogCleanupWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval":  w.interval.String(),
		"retention": w.retention.String(),
	}).Info("🔔 [WEBHOOK_CLEANUP] Starting Webhook Log Cleanup Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🔔 [WEBHOOK_CLEANUP] Webhook Log Cleanup Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("🔔 [WEBHOOK_CLEANUP] Panic khi dọn webhook log, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				// Gọi service để xóa các log đã xử lý quá hạn giữ
				deletedCount, err := w.logService.PurgeOldLogs(ctx, w.retention)
				if err != nil {
					log.WithError(err).Error("🔔 [WEBHOOK_CLEANUP] Failed to purge old webhook logs")
					return
				}

				if deletedCount > 0 {
					log.WithFields(map[string]interface{}{
						"deletedCount": deletedCount,
						"retention":    w.retention.String(),
					}).Info("🔔 [WEBHOOK_CLEANUP] Purged old webhook logs")
				}
				// Nếu deletedCount = 0, không log (giảm log noise)
			}()
		}
	}
}
