package catalogsvc

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "github.com/tykealy/taobao-ui-prototype/internal/api/base/service"
	catalogdto "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/dto"
	models "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/models"
	"github.com/tykealy/taobao-ui-prototype/internal/api/events"
	"github.com/tykealy/taobao-ui-prototype/internal/common"
	"github.com/tykealy/taobao-ui-prototype/internal/global"
	"github.com/tykealy/taobao-ui-prototype/internal/logger"
	"github.com/tykealy/taobao-ui-prototype/internal/marketplace"
	"github.com/tykealy/taobao-ui-prototype/internal/utility"
)

// Cache property graph theo productId, dùng chung cho mọi instance service.
// Invalidate qua event khi snapshot sản phẩm hoặc biến thể thay đổi.
var (
	graphCache     *utility.Cache
	graphCacheOnce sync.Once
)

func graphCacheKey(productID string) string {
	return "graph:" + productID
}

func getGraphCache() *utility.Cache {
	graphCacheOnce.Do(func() {
		graphCache = utility.NewCache(10*time.Minute, 15*time.Minute)
		events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
			if e.CollectionName != global.MongoDB_ColNames.CatalogProducts &&
				e.CollectionName != global.MongoDB_ColNames.CatalogVariations {
				return
			}
			if productID := events.GetStringField(e.Document, "ProductID"); productID != "" {
				graphCache.Delete(graphCacheKey(productID))
			}
		})
	})
	return graphCache
}

// CatalogProductService là cấu trúc chứa các phương thức liên quan đến snapshot sản phẩm
type CatalogProductService struct {
	*basesvc.BaseServiceMongoImpl[models.CatalogProduct]
	variationService *CatalogVariationService
	client           *marketplace.Client
}

// NewCatalogProductService tạo mới CatalogProductService.
func NewCatalogProductService() (*CatalogProductService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CatalogProducts)
	if !exist {
		return nil, fmt.Errorf("failed to get catalog_products collection: %v", common.ErrNotFound)
	}
	variationSvc, err := NewCatalogVariationService()
	if err != nil {
		return nil, err
	}

	cfg := global.MongoDB_ServerConfig
	if cfg == nil {
		return nil, fmt.Errorf("chưa load cấu hình server")
	}
	client := marketplace.NewClient(cfg.Marketplace_BaseURL, cfg.Marketplace_ApiKey,
		time.Duration(cfg.Marketplace_Timeout)*time.Second)

	return &CatalogProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.CatalogProduct](collection),
		variationService:     variationSvc,
		client:               client,
	}, nil
}

// FindByProductID tìm snapshot sản phẩm theo ID trên sàn.
func (s *CatalogProductService) FindByProductID(ctx context.Context, productID string) (models.CatalogProduct, error) {
	return s.FindOne(ctx, bson.M{"productId": productID}, nil)
}

// GroupsForProduct trả về property graph của sản phẩm, ưu tiên lấy từ cache.
// Cache miss thì dựng lại từ snapshot biến thể rồi ghi vào cache.
func (s *CatalogProductService) GroupsForProduct(product *models.CatalogProduct, variations []models.CatalogVariation) []models.PropertyGroup {
	cache := getGraphCache()
	key := graphCacheKey(product.ProductID)
	if cached, ok := cache.Get(key); ok {
		if groups, ok := cached.([]models.PropertyGroup); ok {
			return groups
		}
	}
	groups := BuildPropertyGraph(variations, product.ImageMappings)
	cache.Set(key, groups)
	return groups
}

// Detail trả về chi tiết sản phẩm kèm property graph và trạng thái chọn ban đầu.
func (s *CatalogProductService) Detail(ctx context.Context, productID string) (*catalogdto.ProductDetailResponse, error) {
	product, err := s.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	variations, err := s.variationService.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	groups := s.GroupsForProduct(&product, variations)
	state := BuildSelectionState(&product, variations, groups, catalogdto.SelectRequest{})

	return &catalogdto.ProductDetailResponse{
		Product:    product,
		Variations: variations,
		Groups:     groups,
		State:      state,
	}, nil
}

// SelectState áp một thao tác chọn của khách lên snapshot và trả về trạng thái chọn mới.
func (s *CatalogProductService) SelectState(ctx context.Context, productID string, req catalogdto.SelectRequest) (*catalogdto.SelectResponse, error) {
	product, err := s.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	variations, err := s.variationService.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	groups := s.GroupsForProduct(&product, variations)
	return BuildSelectionState(&product, variations, groups, req), nil
}

// UpsertSnapshot ghi đè snapshot một sản phẩm và toàn bộ biến thể từ payload của sàn.
// Biến thể không còn trong payload bị xóa. Trả về số biến thể đã ghi và đã xóa.
func (s *CatalogProductService) UpsertSnapshot(ctx context.Context, payload *marketplace.ProductPayload) (int64, int64, error) {
	if payload == nil || payload.Product.ProductID == "" {
		return 0, 0, common.ErrInvalidInput
	}

	now := time.Now().UnixMilli()
	productID := payload.Product.ProductID

	productSet := map[string]interface{}{
		"productId":     productID,
		"name":          payload.Product.Name,
		"description":   payload.Product.Description,
		"image":         payload.Product.Image,
		"imageMappings": mapImageMappings(payload.Product.ImageMappings),
		"syncedAt":      now,
	}
	if _, err := s.Upsert(ctx, bson.M{"productId": productID}, productSet); err != nil {
		return 0, 0, err
	}

	keepIDs := make([]string, 0, len(payload.Variations))
	var written int64
	for _, v := range payload.Variations {
		if v.VariationID == "" {
			continue
		}
		variationSet := map[string]interface{}{
			"variationId":    v.VariationID,
			"productId":      productID,
			"sku":            v.Sku,
			"properties":     mapProperties(v.Properties),
			"image":          v.Image,
			"retailPrice":    v.RetailPrice,
			"promotionPrice": v.PromotionPrice,
			"quantity":       v.Quantity,
			"syncedAt":       now,
		}
		if _, err := s.variationService.Upsert(ctx, bson.M{"variationId": v.VariationID}, variationSet); err != nil {
			return written, 0, err
		}
		written++
		keepIDs = append(keepIDs, v.VariationID)
	}

	removed, err := s.variationService.DeleteMany(ctx, bson.M{
		"productId":   productID,
		"variationId": bson.M{"$nin": keepIDs},
	})
	if err != nil {
		return written, 0, err
	}

	getGraphCache().Delete(graphCacheKey(productID))
	return written, removed, nil
}

// RemoveSnapshot xóa snapshot một sản phẩm và toàn bộ biến thể của nó, dùng khi
// sàn báo sản phẩm ngừng bán. Sản phẩm không có trong snapshot không coi là lỗi.
// Trả về số biến thể đã xóa.
func (s *CatalogProductService) RemoveSnapshot(ctx context.Context, productID string) (int64, error) {
	if productID == "" {
		return 0, common.ErrInvalidInput
	}

	removed, err := s.variationService.DeleteMany(ctx, bson.M{"productId": productID})
	if err != nil {
		return 0, err
	}

	if err := s.DeleteOne(ctx, bson.M{"productId": productID}); err != nil && !errors.Is(err, common.ErrNotFound) {
		return removed, err
	}

	getGraphCache().Delete(graphCacheKey(productID))
	return removed, nil
}

// SyncProduct kéo dữ liệu mới nhất của một sản phẩm từ sàn về snapshot.
func (s *CatalogProductService) SyncProduct(ctx context.Context, productID string) (*catalogdto.SyncResponse, error) {
	payload, err := s.client.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	written, removed, err := s.UpsertSnapshot(ctx, payload)
	if err != nil {
		return nil, err
	}

	logger.GetAppLogger().Infof("🛒 [CATALOG] Đã đồng bộ sản phẩm %s: %d biến thể, xóa %d biến thể cũ", productID, written, removed)
	return &catalogdto.SyncResponse{Products: 1, Variations: written, Removed: removed}, nil
}

// SyncAll kéo toàn bộ catalog từ sàn theo trang. Lỗi khi ghi một sản phẩm không
// chặn các sản phẩm còn lại, lỗi lấy trang từ sàn thì dừng và trả lỗi.
func (s *CatalogProductService) SyncAll(ctx context.Context) (*catalogdto.SyncResponse, error) {
	total := &catalogdto.SyncResponse{}
	page := 1
	for {
		resp, err := s.client.ListProducts(ctx, page, 50)
		if err != nil {
			return total, err
		}
		for i := range resp.Products {
			payload := resp.Products[i]
			written, removed, err := s.UpsertSnapshot(ctx, &payload)
			if err != nil {
				logger.GetAppLogger().WithError(err).Errorf("🛒 [CATALOG] Lỗi đồng bộ sản phẩm %s, bỏ qua", payload.Product.ProductID)
				continue
			}
			total.Products++
			total.Variations += written
			total.Removed += removed
		}
		if page >= resp.TotalPages || len(resp.Products) == 0 {
			break
		}
		page++
	}

	logger.GetAppLogger().Infof("🛒 [CATALOG] Đồng bộ toàn bộ catalog xong: %d sản phẩm, %d biến thể", total.Products, total.Variations)
	return total, nil
}

func mapImageMappings(in []marketplace.ImageMapping) []models.ImageMapping {
	out := make([]models.ImageMapping, 0, len(in))
	for _, m := range in {
		props := make([]models.PropertyKey, 0, len(m.Properties))
		for _, p := range m.Properties {
			props = append(props, models.PropertyKey{PropertyID: p.PropertyID, ValueID: p.ValueID})
		}
		out = append(out, models.ImageMapping{Properties: props, Image: m.Image})
	}
	return out
}

func mapProperties(in []marketplace.PropertyPair) []models.VariationProperty {
	out := make([]models.VariationProperty, 0, len(in))
	for _, p := range in {
		out = append(out, models.VariationProperty{
			PropertyID: p.PropertyID,
			Name:       p.Name,
			ValueID:    p.ValueID,
			Value:      p.Value,
		})
	}
	return out
}
