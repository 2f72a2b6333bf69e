// Package cartsvc quản lý giỏ hàng của khách trên storefront.
//
// Giỏ hàng local là bản chiếu của giỏ hàng trên sàn: mọi thao tác ghi đều
// lạc quan — sửa local trước, gọi sàn sau, lỗi gọi sàn thì hoàn tác local
// về snapshot trước đó để hai bên không lệch nhau.
package cartsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/tykealy/taobao-ui-prototype/internal/api/base/service"
	models "github.com/tykealy/taobao-ui-prototype/internal/api/cart/models"
	catalogsvc "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/service"
	"github.com/tykealy/taobao-ui-prototype/internal/common"
	"github.com/tykealy/taobao-ui-prototype/internal/global"
	"github.com/tykealy/taobao-ui-prototype/internal/logger"
	"github.com/tykealy/taobao-ui-prototype/internal/marketplace"
	"github.com/tykealy/taobao-ui-prototype/internal/utility"
)

// CartItemService là cấu trúc chứa các phương thức liên quan đến giỏ hàng
type CartItemService struct {
	*basesvc.BaseServiceMongoImpl[models.CartItem]
	variationService *catalogsvc.CatalogVariationService
	client           *marketplace.Client
}

// NewCartItemService tạo mới CartItemService.
func NewCartItemService() (*CartItemService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CartItems)
	if !exist {
		return nil, fmt.Errorf("failed to get cart_items collection: %v", common.ErrNotFound)
	}
	variationSvc, err := catalogsvc.NewCatalogVariationService()
	if err != nil {
		return nil, err
	}

	cfg := global.MongoDB_ServerConfig
	if cfg == nil {
		return nil, fmt.Errorf("chưa load cấu hình server")
	}
	client := marketplace.NewClient(cfg.Marketplace_BaseURL, cfg.Marketplace_ApiKey,
		time.Duration(cfg.Marketplace_Timeout)*time.Second)

	return &CartItemService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.CartItem](collection),
		variationService:     variationSvc,
		client:               client,
	}, nil
}

// ListByCustomer trả về toàn bộ dòng giỏ hàng của một khách, theo thứ tự thêm vào.
func (s *CartItemService) ListByCustomer(ctx context.Context, customerID string) ([]models.CartItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return s.Find(ctx, bson.M{"customerId": customerID}, opts)
}

// FindOwned tìm một dòng giỏ hàng theo ID, giới hạn trong phạm vi của khách.
// Dòng của khách khác coi như không tồn tại.
func (s *CartItemService) FindOwned(ctx context.Context, customerID string, itemID primitive.ObjectID) (models.CartItem, error) {
	return s.FindOne(ctx, bson.M{"_id": itemID, "customerId": customerID}, nil)
}

// FindOwnedByIds trả về các dòng giỏ hàng theo danh sách ID, giới hạn trong phạm vi
// của khách. Thiếu bất kỳ ID nào (không tồn tại hoặc của khách khác) trả về ErrNotFound.
func (s *CartItemService) FindOwnedByIds(ctx context.Context, customerID string, itemIDs []primitive.ObjectID) ([]models.CartItem, error) {
	unique := utility.Unique(itemIDs)
	if len(unique) == 0 {
		return []models.CartItem{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	items, err := s.Find(ctx, bson.M{"_id": bson.M{"$in": unique}, "customerId": customerID}, opts)
	if err != nil {
		return nil, err
	}
	if len(items) != len(unique) {
		return nil, common.ErrNotFound
	}
	return items, nil
}

// Add thêm một biến thể vào giỏ. Dòng (khách, biến thể) đã tồn tại thì cộng dồn
// số lượng, chưa có thì tạo mới. Biến thể phải có trong snapshot catalog.
// Lỗi gọi sàn sẽ hoàn tác thay đổi local và trả lỗi cho caller.
func (s *CartItemService) Add(ctx context.Context, bearer, customerID, variationID string, quantity int64) (models.CartItem, error) {
	var zero models.CartItem

	if _, err := s.variationService.FindByVariationID(ctx, variationID); err != nil {
		return zero, err
	}

	// Snapshot dòng hiện tại (nếu có) trước khi sửa
	existing, err := s.FindOne(ctx, bson.M{"customerId": customerID, "variationId": variationID}, nil)
	lineExists := err == nil
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return zero, err
	}

	var item models.CartItem
	if lineExists {
		item, err = s.UpdateById(ctx, existing.ID, bson.M{"quantity": existing.Quantity + quantity})
	} else {
		item, err = s.InsertOne(ctx, models.CartItem{
			CustomerID:  customerID,
			VariationID: variationID,
			Quantity:    quantity,
		})
	}
	if err != nil {
		return zero, err
	}

	if err := s.client.SyncCartAdd(ctx, bearer, variationID, quantity); err != nil {
		if lineExists {
			s.restoreQuantity(ctx, existing)
		} else {
			s.restoreAbsent(ctx, item.ID)
		}
		return zero, err
	}

	return item, nil
}

// SetQuantity ghi đè số lượng một dòng giỏ hàng. Dòng không tồn tại trả về ErrNotFound.
func (s *CartItemService) SetQuantity(ctx context.Context, bearer, customerID string, itemID primitive.ObjectID, quantity int64) (models.CartItem, error) {
	var zero models.CartItem

	snapshot, err := s.FindOwned(ctx, customerID, itemID)
	if err != nil {
		return zero, err
	}

	item, err := s.UpdateById(ctx, snapshot.ID, bson.M{"quantity": quantity})
	if err != nil {
		return zero, err
	}

	if err := s.client.SyncCartUpdate(ctx, bearer, snapshot.VariationID, quantity); err != nil {
		s.restoreQuantity(ctx, snapshot)
		return zero, err
	}

	return item, nil
}

// clampQuantity cộng delta vào số lượng hiện tại và kẹp kết quả về tối thiểu 1.
func clampQuantity(current, delta int64) int64 {
	next := current + delta
	if next < 1 {
		return 1
	}
	return next
}

// IncrementQuantity cộng delta vào số lượng một dòng, kết quả kẹp về tối thiểu 1.
// Giảm về 0 không tự xóa dòng, muốn xóa phải gọi Remove.
func (s *CartItemService) IncrementQuantity(ctx context.Context, bearer, customerID string, itemID primitive.ObjectID, delta int64) (models.CartItem, error) {
	var zero models.CartItem

	snapshot, err := s.FindOwned(ctx, customerID, itemID)
	if err != nil {
		return zero, err
	}

	newQuantity := clampQuantity(snapshot.Quantity, delta)
	// Delta bị kẹp hết thì khỏi gọi sàn
	if newQuantity == snapshot.Quantity {
		return snapshot, nil
	}

	item, err := s.UpdateById(ctx, snapshot.ID, bson.M{"quantity": newQuantity})
	if err != nil {
		return zero, err
	}

	if err := s.client.SyncCartUpdate(ctx, bearer, snapshot.VariationID, newQuantity); err != nil {
		s.restoreQuantity(ctx, snapshot)
		return zero, err
	}

	return item, nil
}

// Remove xóa một dòng khỏi giỏ. Dòng không tồn tại trả về ErrNotFound.
func (s *CartItemService) Remove(ctx context.Context, bearer, customerID string, itemID primitive.ObjectID) error {
	snapshot, err := s.FindOwned(ctx, customerID, itemID)
	if err != nil {
		return err
	}

	if err := s.DeleteById(ctx, snapshot.ID); err != nil {
		return err
	}

	if err := s.client.SyncCartRemove(ctx, bearer, []string{snapshot.VariationID}); err != nil {
		s.restoreDeleted(ctx, []models.CartItem{snapshot})
		return err
	}

	return nil
}

// RemoveManyByVariation xóa các dòng giỏ hàng của khách theo danh sách biến thể.
// Dùng khi checkout bỏ toàn bộ dòng hết hàng hoặc dọn giỏ sau khi đặt đơn thành công.
// Trả về số dòng đã xóa; biến thể không có trong giỏ được bỏ qua.
func (s *CartItemService) RemoveManyByVariation(ctx context.Context, bearer, customerID string, variationIDs []string) (int64, error) {
	if len(variationIDs) == 0 {
		return 0, nil
	}

	snapshot, err := s.Find(ctx, bson.M{"customerId": customerID, "variationId": bson.M{"$in": variationIDs}}, nil)
	if err != nil {
		return 0, err
	}
	if len(snapshot) == 0 {
		return 0, nil
	}

	removed := make([]string, 0, len(snapshot))
	for _, item := range snapshot {
		removed = append(removed, item.VariationID)
	}

	deleted, err := s.DeleteMany(ctx, bson.M{"customerId": customerID, "variationId": bson.M{"$in": removed}})
	if err != nil {
		return 0, err
	}

	if err := s.client.SyncCartRemove(ctx, bearer, removed); err != nil {
		s.restoreDeleted(ctx, snapshot)
		return 0, err
	}

	return deleted, nil
}

// ====================================
// HOÀN TÁC VỀ SNAPSHOT
// ====================================

// restoreQuantity trả số lượng và updatedAt của một dòng về giá trị trong snapshot.
// Ghi thẳng vào collection để không phát sinh event và không đổi updatedAt lần nữa.
func (s *CartItemService) restoreQuantity(ctx context.Context, snapshot models.CartItem) {
	_, err := s.Collection().UpdateOne(ctx,
		bson.M{"_id": snapshot.ID},
		bson.M{"$set": bson.M{"quantity": snapshot.Quantity, "updatedAt": snapshot.UpdatedAt}},
	)
	if err != nil {
		logger.GetErrorLogger().WithError(err).WithFields(map[string]interface{}{
			"cartItemId":  snapshot.ID.Hex(),
			"variationId": snapshot.VariationID,
		}).Error("❌ [CART] Không thể hoàn tác số lượng dòng giỏ hàng")
	}
}

// restoreAbsent xóa dòng vừa tạo khi lời gọi sàn thất bại, trả giỏ về trạng thái chưa thêm.
func (s *CartItemService) restoreAbsent(ctx context.Context, itemID primitive.ObjectID) {
	if _, err := s.Collection().DeleteOne(ctx, bson.M{"_id": itemID}); err != nil {
		logger.GetErrorLogger().WithError(err).WithFields(map[string]interface{}{
			"cartItemId": itemID.Hex(),
		}).Error("❌ [CART] Không thể hoàn tác dòng giỏ hàng vừa thêm")
	}
}

// restoreDeleted chèn lại nguyên văn các dòng đã xóa, giữ nguyên _id và timestamps.
func (s *CartItemService) restoreDeleted(ctx context.Context, snapshot []models.CartItem) {
	docs := make([]interface{}, 0, len(snapshot))
	for _, item := range snapshot {
		docs = append(docs, item)
	}
	if _, err := s.Collection().InsertMany(ctx, docs); err != nil {
		logger.GetErrorLogger().WithError(err).WithFields(map[string]interface{}{
			"count": len(snapshot),
		}).Error("❌ [CART] Không thể hoàn tác các dòng giỏ hàng đã xóa")
	}
}
