// Package ordersvc quản lý đơn hàng đã đặt của khách trên storefront.
//
// Đơn thật nằm trên sàn; service này đặt đơn qua API sàn rồi lưu bản ghi
// local để khách tra cứu lịch sử. Bản ghi local chỉ đọc sau khi tạo.
package ordersvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/tykealy/taobao-ui-prototype/internal/api/base/service"
	models "github.com/tykealy/taobao-ui-prototype/internal/api/order/models"
	"github.com/tykealy/taobao-ui-prototype/internal/common"
	"github.com/tykealy/taobao-ui-prototype/internal/global"
	"github.com/tykealy/taobao-ui-prototype/internal/logger"
	"github.com/tykealy/taobao-ui-prototype/internal/marketplace"
	"github.com/tykealy/taobao-ui-prototype/internal/notification"
	"github.com/tykealy/taobao-ui-prototype/internal/utility"
)

// OrderService là cấu trúc chứa các phương thức liên quan đến đơn hàng
type OrderService struct {
	*basesvc.BaseServiceMongoImpl[models.Order]
	client *marketplace.Client
	mailer *notification.Mailer
}

// NewOrderService tạo mới OrderService.
func NewOrderService() (*OrderService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("failed to get orders collection: %v", common.ErrNotFound)
	}

	cfg := global.MongoDB_ServerConfig
	if cfg == nil {
		return nil, fmt.Errorf("chưa load cấu hình server")
	}
	client := marketplace.NewClient(cfg.Marketplace_BaseURL, cfg.Marketplace_ApiKey,
		time.Duration(cfg.Marketplace_Timeout)*time.Second)

	return &OrderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Order](collection),
		client:               client,
		mailer:               notification.NewMailerFromConfig(cfg),
	}, nil
}

// Place đặt đơn trên sàn với danh sách dòng đã chốt rồi lưu bản ghi local.
// Danh sách dòng phải là các dòng đã đối soát đủ hàng; service này không
// đối soát lại, sàn sẽ từ chối nếu tồn kho đổi sau lần đối soát cuối.
//
// Sàn đặt đơn thành công nhưng lưu local thất bại thì KHÔNG trả lỗi: đơn đã
// tồn tại trên sàn, caller retry sẽ đặt đơn lần nữa. Ghi log lỗi và trả về
// đơn dựng từ response của sàn.
func (s *OrderService) Place(ctx context.Context, bearer, customerID, customerEmail string, lines []models.OrderLine, fees []models.OrderShippingFee, total float64) (models.Order, error) {
	var zero models.Order

	if len(lines) == 0 {
		return zero, common.NewError(common.ErrCodeValidationInput, "Đơn hàng phải có ít nhất một dòng", common.StatusBadRequest, nil)
	}

	orderLines := make([]marketplace.OrderLine, 0, len(lines))
	for _, l := range lines {
		orderLines = append(orderLines, marketplace.OrderLine{VariationID: l.VariationID, Quantity: l.Quantity})
	}

	created, err := s.client.CreateOrder(ctx, bearer, orderLines)
	if err != nil {
		return zero, err
	}

	order := models.Order{
		CustomerID:         customerID,
		MarketplaceOrderID: created.OrderID,
		OrderNumber:        created.OrderNumber,
		Status:             created.Status,
		Lines:              lines,
		ShippingFees:       fees,
		Total:              total,
	}

	saved, err := s.InsertOne(ctx, order)
	if err != nil {
		logger.GetErrorLogger().WithError(err).WithFields(map[string]interface{}{
			"customer_id":          customerID,
			"marketplace_order_id": created.OrderID,
			"order_number":         created.OrderNumber,
		}).Error("❌ [ORDER] Đơn đã đặt trên sàn nhưng không lưu được bản ghi local")
		saved = order
	}

	s.sendConfirmation(customerEmail, saved)

	return saved, nil
}

// ListByCustomer trả về các đơn của một khách, mới nhất trước.
func (s *OrderService) ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, bson.M{"customerId": customerID}, opts)
}

// sendConfirmation gửi email xác nhận đơn bất đồng bộ, lỗi chỉ ghi log trong mailer.
func (s *OrderService) sendConfirmation(email string, order models.Order) {
	if !s.mailer.Enabled() || email == "" {
		return
	}

	conf := notification.OrderConfirmation{
		OrderNumber: order.OrderNumber,
		Total:       order.Total,
		Lines:       make([]notification.OrderConfirmationLine, 0, len(order.Lines)),
	}
	for _, l := range order.Lines {
		conf.Lines = append(conf.Lines, notification.OrderConfirmationLine{
			Name:     l.Name,
			Quantity: l.Quantity,
			Subtotal: l.Subtotal,
		})
	}

	go utility.GoProtect(func() {
		_ = s.mailer.SendOrderConfirmation(email, conf)
	})
}
