// Package webhooksvc chứa service cho domain Webhook (log).
// File: service.webhook.log.go
package webhooksvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/tykealy/taobao-ui-prototype/internal/api/base/service"
	webhookmodels "github.com/tykealy/taobao-ui-prototype/internal/api/webhook/models"
	"github.com/tykealy/taobao-ui-prototype/internal/common"
	"github.com/tykealy/taobao-ui-prototype/internal/global"
)

// WebhookLogService là cấu trúc chứa các phương thức liên quan đến webhook logs
type WebhookLogService struct {
	*basesvc.BaseServiceMongoImpl[webhookmodels.WebhookLog]
}

// NewWebhookLogService tạo mới WebhookLogService
func NewWebhookLogService() (*WebhookLogService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.WebhookLogs)
	if !exist {
		return nil, fmt.Errorf("failed to get webhook_logs collection: %v", common.ErrNotFound)
	}

	return &WebhookLogService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[webhookmodels.WebhookLog](collection),
	}, nil
}

// CreateWebhookLog tạo mới webhook log
func (s *WebhookLogService) CreateWebhookLog(ctx context.Context, log webhookmodels.WebhookLog) (*webhookmodels.WebhookLog, error) {
	result, err := s.InsertOne(ctx, log)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// PurgeOldLogs xóa các webhook log đã xử lý có receivedAt cũ hơn khoảng thời gian giữ lại.
// Log chưa xử lý được giữ nguyên để còn truy vết và chạy lại bằng tay.
func (s *WebhookLogService) PurgeOldLogs(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).UnixMilli()
	result, err := s.Collection().DeleteMany(ctx, bson.M{
		"processed":  true,
		"receivedAt": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.DeletedCount, nil
}

// UpdateProcessedStatus cập nhật trạng thái đã xử lý của webhook log.
// Xử lý thành công thì gắn processedAt, thất bại thì lưu thông điệp lỗi.
func (s *WebhookLogService) UpdateProcessedStatus(ctx context.Context, logID primitive.ObjectID, processed bool, errorMsg string) error {
	set := bson.M{
		"processed":    processed,
		"processError": errorMsg,
		"updatedAt":    time.Now().UnixMilli(),
	}
	if processed {
		set["processedAt"] = time.Now().UnixMilli()
	}

	_, err := s.Collection().UpdateOne(ctx, bson.M{"_id": logID}, bson.M{"$set": set})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}
