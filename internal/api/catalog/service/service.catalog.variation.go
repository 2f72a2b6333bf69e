package catalogsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/tykealy/taobao-ui-prototype/internal/api/base/service"
	models "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/models"
	"github.com/tykealy/taobao-ui-prototype/internal/common"
	"github.com/tykealy/taobao-ui-prototype/internal/global"
)

// CatalogVariationService là cấu trúc chứa các phương thức liên quan đến snapshot biến thể
type CatalogVariationService struct {
	*basesvc.BaseServiceMongoImpl[models.CatalogVariation]
}

// NewCatalogVariationService tạo mới CatalogVariationService.
func NewCatalogVariationService() (*CatalogVariationService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CatalogVariations)
	if !exist {
		return nil, fmt.Errorf("failed to get catalog_variations collection: %v", common.ErrNotFound)
	}
	return &CatalogVariationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.CatalogVariation](collection),
	}, nil
}

// FindByProductID trả về toàn bộ biến thể của một sản phẩm.
// Sắp xếp theo _id để thứ tự ổn định giữa các lần gọi, property graph
// dựng từ danh sách này cần thứ tự không đổi.
func (s *CatalogVariationService) FindByProductID(ctx context.Context, productID string) ([]models.CatalogVariation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return s.Find(ctx, bson.M{"productId": productID}, opts)
}

// FindByVariationID tìm một biến thể theo ID trên sàn.
func (s *CatalogVariationService) FindByVariationID(ctx context.Context, variationID string) (models.CatalogVariation, error) {
	return s.FindOne(ctx, bson.M{"variationId": variationID}, nil)
}

// FindByVariationIDs trả về các biến thể có ID trên sàn nằm trong danh sách.
// Kết quả không đảm bảo thứ tự theo danh sách đầu vào.
func (s *CatalogVariationService) FindByVariationIDs(ctx context.Context, variationIDs []string) ([]models.CatalogVariation, error) {
	if len(variationIDs) == 0 {
		return []models.CatalogVariation{}, nil
	}
	return s.Find(ctx, bson.M{"variationId": bson.M{"$in": variationIDs}}, nil)
}
