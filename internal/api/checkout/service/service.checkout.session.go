// Package checkoutsvc điều phối phiên checkout của khách: đối soát các dòng
// giỏ hàng đã chọn với sàn, cho khách điều chỉnh dòng thiếu hàng và đặt đơn
// khi kết quả đã đủ điều kiện.
//
// Mỗi khách tối đa một phiên. Phiên là máy trạng thái:
//
//	idle ──start──▶ validating ──render ok──▶ reviewing ──commit──▶ committing ──▶ idle
//	                    │                        │  ▲                   │
//	                    └──render lỗi──▶ idle    │  └──render lỗi───────┘
//	                                             └──revalidate──▶ validating
//
// idle không có document trong checkout_sessions. Mọi chuyển trạng thái giữa
// hai document đều claim nguyên tử bằng filter theo trạng thái hiện tại để hai
// request song song của cùng một khách không giẫm lên nhau.
package checkoutsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/tykealy/taobao-ui-prototype/internal/api/base/service"
	cartsvc "github.com/tykealy/taobao-ui-prototype/internal/api/cart/service"
	models "github.com/tykealy/taobao-ui-prototype/internal/api/checkout/models"
	ordermodels "github.com/tykealy/taobao-ui-prototype/internal/api/order/models"
	ordersvc "github.com/tykealy/taobao-ui-prototype/internal/api/order/service"
	"github.com/tykealy/taobao-ui-prototype/internal/common"
	"github.com/tykealy/taobao-ui-prototype/internal/global"
	"github.com/tykealy/taobao-ui-prototype/internal/logger"
	"github.com/tykealy/taobao-ui-prototype/internal/marketplace"
)

// CheckoutSessionService là cấu trúc chứa các phương thức liên quan đến phiên checkout
type CheckoutSessionService struct {
	*basesvc.BaseServiceMongoImpl[models.CheckoutSession]
	cartService  *cartsvc.CartItemService
	orderService *ordersvc.OrderService
	client       *marketplace.Client
}

// NewCheckoutSessionService tạo mới CheckoutSessionService.
func NewCheckoutSessionService() (*CheckoutSessionService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CheckoutSessions)
	if !exist {
		return nil, fmt.Errorf("failed to get checkout_sessions collection: %v", common.ErrNotFound)
	}

	cartService, err := cartsvc.NewCartItemService()
	if err != nil {
		return nil, err
	}
	orderService, err := ordersvc.NewOrderService()
	if err != nil {
		return nil, err
	}

	cfg := global.MongoDB_ServerConfig
	if cfg == nil {
		return nil, fmt.Errorf("chưa load cấu hình server")
	}
	client := marketplace.NewClient(cfg.Marketplace_BaseURL, cfg.Marketplace_ApiKey,
		time.Duration(cfg.Marketplace_Timeout)*time.Second)

	return &CheckoutSessionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.CheckoutSession](collection),
		cartService:          cartService,
		orderService:         orderService,
		client:               client,
	}, nil
}

// Current trả về phiên checkout đang mở của khách, ErrNotFound khi không có (idle).
func (s *CheckoutSessionService) Current(ctx context.Context, customerID string) (models.CheckoutSession, error) {
	return s.FindOne(ctx, bson.M{"customerId": customerID}, nil)
}

// Start mở phiên checkout mới từ các dòng giỏ hàng khách đã chọn rồi đối soát
// ngay với sàn. Thành công phiên sang reviewing kèm kết quả; sàn lỗi thì phiên
// bị xóa (về idle) và lỗi trả cho caller, giỏ hàng không đổi.
//
// Khách đang có phiên mở thì trả lỗi conflict, kể cả khi phiên đó đang kẹt ở
// validating; khách có thể hủy phiên cũ bằng Abandon rồi bắt đầu lại.
func (s *CheckoutSessionService) Start(ctx context.Context, bearer, customerID string, cartItemIDs []primitive.ObjectID) (models.CheckoutSession, error) {
	var zero models.CheckoutSession

	if len(cartItemIDs) == 0 {
		return zero, common.NewError(common.ErrCodeValidationInput, "Phải chọn ít nhất một dòng giỏ hàng", common.StatusBadRequest, nil)
	}

	if _, err := s.Current(ctx, customerID); err == nil {
		return zero, errSessionOpen()
	} else if !errors.Is(err, common.ErrNotFound) {
		return zero, err
	}

	items, err := s.cartService.FindOwnedByIds(ctx, customerID, cartItemIDs)
	if err != nil {
		return zero, err
	}

	lines := make([]models.SessionLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, models.SessionLine{
			CartItemID:  item.ID,
			VariationID: item.VariationID,
			Quantity:    item.Quantity,
		})
	}

	// Insert là bước chuyển idle → validating; unique index theo customerId
	// chặn hai Start song song của cùng một khách.
	session, err := s.InsertOne(ctx, models.CheckoutSession{
		CustomerID: customerID,
		State:      models.StateValidating,
		Lines:      lines,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicate) {
			return zero, errSessionOpen()
		}
		return zero, err
	}

	resp, err := s.client.RenderOrder(ctx, bearer, SubmitLines(lines))
	if err != nil {
		// Đối soát đầu tiên thất bại: không có kết quả ổn định nào để giữ, về idle
		s.discard(ctx, session.ID)
		return zero, err
	}

	result := BuildResult(lines, resp)
	updated, err := s.claimState(ctx, customerID, models.StateValidating, models.StateReviewing, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"result": result,
			"lines":  NextLines(lines, result),
		},
	})
	if err != nil {
		return zero, err
	}
	return updated, nil
}

// Revalidate đối soát lại payload hiện tại của phiên với sàn. Kết quả cũ được
// giữ làm điểm hoàn tác trong lúc chờ sàn: sàn lỗi thì phiên quay về reviewing
// với kết quả ổn định trước đó, thành công thì kết quả mới thay thế hoàn toàn.
func (s *CheckoutSessionService) Revalidate(ctx context.Context, bearer, customerID string) (models.CheckoutSession, error) {
	var zero models.CheckoutSession

	session, err := s.Current(ctx, customerID)
	if err != nil {
		return zero, err
	}
	if session.State != models.StateReviewing {
		return zero, common.ErrInvalidState
	}

	submit := SubmitLines(session.Lines)
	if len(submit) == 0 {
		return zero, common.NewError(common.ErrCodeValidationInput,
			"Không còn dòng nào để đối soát, điều chỉnh lại số lượng hoặc hủy phiên", common.StatusBadRequest, nil)
	}

	// Claim reviewing → validating, chuyển kết quả hiện tại sang điểm hoàn tác
	claimed, err := s.claimState(ctx, customerID, models.StateReviewing, models.StateValidating, &basesvc.UpdateData{
		Set:   map[string]interface{}{"priorResult": session.Result},
		Unset: map[string]interface{}{"result": ""},
	})
	if err != nil {
		return zero, err
	}

	resp, err := s.client.RenderOrder(ctx, bearer, submit)
	if err != nil {
		// Hoàn tác về reviewing với kết quả ổn định trước đó
		if _, restoreErr := s.claimState(ctx, customerID, models.StateValidating, models.StateReviewing, &basesvc.UpdateData{
			Set:   map[string]interface{}{"result": claimed.PriorResult},
			Unset: map[string]interface{}{"priorResult": ""},
		}); restoreErr != nil {
			logger.GetErrorLogger().WithError(restoreErr).WithFields(map[string]interface{}{
				"customer_id": customerID,
				"session_id":  claimed.ID.Hex(),
			}).Error("❌ [CHECKOUT] Không thể hoàn tác phiên về reviewing sau lỗi đối soát")
		}
		return zero, err
	}

	result := BuildResult(claimed.Lines, resp)
	updated, err := s.claimState(ctx, customerID, models.StateValidating, models.StateReviewing, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"result": result,
			"lines":  NextLines(claimed.Lines, result),
		},
		Unset: map[string]interface{}{"priorResult": ""},
	})
	if err != nil {
		return zero, err
	}
	return updated, nil
}

// AdjustLine đổi số lượng một dòng thiếu hàng cho lần đối soát kế tiếp. Số
// lượng bị kẹp về [0, số sàn đáp ứng được]; 0 nghĩa là bỏ dòng khỏi payload.
// Chỉ dòng trong bucket thiếu hàng của kết quả hiện tại mới điều chỉnh được.
func (s *CheckoutSessionService) AdjustLine(ctx context.Context, customerID, variationID string, quantity int64) (models.CheckoutSession, error) {
	var zero models.CheckoutSession

	session, err := s.Current(ctx, customerID)
	if err != nil {
		return zero, err
	}
	if session.State != models.StateReviewing || session.Result == nil {
		return zero, common.ErrInvalidState
	}

	insufficient := session.Result.FindInsufficient(variationID)
	if insufficient == nil {
		if resultContains(session.Result.Available, variationID) || resultContains(session.Result.Unavailable, variationID) {
			return zero, common.NewError(common.ErrCodeValidationInput,
				"Chỉ điều chỉnh được dòng thiếu hàng", common.StatusBadRequest, nil)
		}
		return zero, common.ErrNotFound
	}

	line := session.LineByVariation(variationID)
	if line == nil {
		return zero, common.ErrNotFound
	}
	line.Quantity = ClampAdjustment(quantity, insufficient)

	updated, err := s.claimState(ctx, customerID, models.StateReviewing, models.StateReviewing, &basesvc.UpdateData{
		Set: map[string]interface{}{"lines": session.Lines},
	})
	if err != nil {
		return zero, err
	}
	return updated, nil
}

// DropUnavailable xóa toàn bộ dòng hết hàng của kết quả hiện tại khỏi giỏ hàng
// (đồng bộ cả sàn) rồi dọn bucket hết hàng của phiên. Không có dòng hết hàng
// thì không làm gì. Trả về phiên sau thao tác và số dòng giỏ đã xóa.
func (s *CheckoutSessionService) DropUnavailable(ctx context.Context, bearer, customerID string) (models.CheckoutSession, int64, error) {
	var zero models.CheckoutSession

	session, err := s.Current(ctx, customerID)
	if err != nil {
		return zero, 0, err
	}
	if session.State != models.StateReviewing || session.Result == nil {
		return zero, 0, common.ErrInvalidState
	}

	if len(session.Result.Unavailable) == 0 {
		return session, 0, nil
	}

	variationIDs := make([]string, 0, len(session.Result.Unavailable))
	for _, l := range session.Result.Unavailable {
		variationIDs = append(variationIDs, l.VariationID)
	}

	dropped, err := s.cartService.RemoveManyByVariation(ctx, bearer, customerID, variationIDs)
	if err != nil {
		return zero, 0, err
	}

	updated, err := s.claimState(ctx, customerID, models.StateReviewing, models.StateReviewing, &basesvc.UpdateData{
		Set: map[string]interface{}{"result.unavailable": []models.ReconciledLine{}},
	})
	if err != nil {
		return zero, 0, err
	}
	return updated, dropped, nil
}

// Commit đặt đơn trên sàn với các dòng đủ hàng của kết quả hiện tại. Kết quả
// phải committable: không còn dòng thiếu hàng hay hết hàng và có ít nhất một
// dòng mua được.
//
// Thành công: các dòng giỏ đã mua bị xóa (đồng bộ cả sàn), phiên bị xóa (về
// idle) và đơn được trả về. Sàn từ chối đặt đơn: phiên quay về reviewing với
// kết quả hiện tại, khách đối soát lại rồi thử lần nữa.
func (s *CheckoutSessionService) Commit(ctx context.Context, bearer, customerID, customerEmail string) (ordermodels.Order, error) {
	var zero ordermodels.Order

	session, err := s.Current(ctx, customerID)
	if err != nil {
		return zero, err
	}
	if session.State != models.StateReviewing || session.Result == nil {
		return zero, common.ErrInvalidState
	}
	if !session.Result.Committable() {
		return zero, common.NewError(common.ErrCodeInvalidState,
			"Kết quả đối soát chưa đủ điều kiện đặt đơn: còn dòng thiếu hàng hoặc hết hàng", common.StatusConflict, nil)
	}

	claimed, err := s.claimState(ctx, customerID, models.StateReviewing, models.StateCommitting, nil)
	if err != nil {
		return zero, err
	}

	lines := make([]ordermodels.OrderLine, 0, len(claimed.Result.Available))
	purchased := make([]string, 0, len(claimed.Result.Available))
	for i := range claimed.Result.Available {
		l := &claimed.Result.Available[i]
		lines = append(lines, ordermodels.OrderLine{
			VariationID:    l.VariationID,
			Name:           l.Name,
			Quantity:       l.RequestedQuantity,
			UnitPrice:      l.UnitPrice,
			PromotionPrice: l.PromotionPrice,
			Subtotal:       l.Subtotal(),
		})
		purchased = append(purchased, l.VariationID)
	}
	fees := make([]ordermodels.OrderShippingFee, 0, len(claimed.Result.ShippingFees))
	for _, f := range claimed.Result.ShippingFees {
		fees = append(fees, ordermodels.OrderShippingFee{Name: f.Name, Amount: f.Amount})
	}

	order, err := s.orderService.Place(ctx, bearer, customerID, customerEmail, lines, fees, claimed.Result.Total)
	if err != nil {
		// Đặt đơn thất bại: quay về reviewing, kết quả hiện tại vẫn còn trong phiên
		if _, restoreErr := s.claimState(ctx, customerID, models.StateCommitting, models.StateReviewing, nil); restoreErr != nil {
			logger.GetErrorLogger().WithError(restoreErr).WithFields(map[string]interface{}{
				"customer_id": customerID,
				"session_id":  claimed.ID.Hex(),
			}).Error("❌ [CHECKOUT] Không thể hoàn tác phiên về reviewing sau lỗi đặt đơn")
		}
		return zero, err
	}

	// Đơn đã tồn tại trên sàn, từ đây chỉ dọn dẹp: lỗi ghi log chứ không trả về
	if _, err := s.cartService.RemoveManyByVariation(ctx, bearer, customerID, purchased); err != nil {
		logger.GetAppLogger().WithError(err).WithFields(map[string]interface{}{
			"customer_id":  customerID,
			"order_number": order.OrderNumber,
		}).Warn("⚠️ [CHECKOUT] Đặt đơn thành công nhưng chưa dọn được các dòng giỏ đã mua")
	}

	s.discard(ctx, claimed.ID)

	return order, nil
}

// Abandon hủy phiên checkout của khách ở bất kỳ trạng thái nào, kể cả phiên
// kẹt ở validating sau sự cố. Giỏ hàng không đổi. Không có phiên trả ErrNotFound.
func (s *CheckoutSessionService) Abandon(ctx context.Context, customerID string) error {
	session, err := s.Current(ctx, customerID)
	if err != nil {
		return err
	}
	return s.DeleteById(ctx, session.ID)
}

// ====================================
// HELPERS
// ====================================

// claimState chuyển phiên của khách từ trạng thái from sang to một cách nguyên
// tử, kèm các trường cập nhật trong update. Phiên đang ở trạng thái khác trả
// ErrInvalidState, không có phiên trả ErrNotFound.
func (s *CheckoutSessionService) claimState(ctx context.Context, customerID, from, to string, update *basesvc.UpdateData) (models.CheckoutSession, error) {
	var zero models.CheckoutSession

	if from != to && !models.CanTransitionTo(from, to) {
		return zero, common.ErrInvalidState
	}

	if update == nil {
		update = &basesvc.UpdateData{}
	}
	if update.Set == nil {
		update.Set = make(map[string]interface{})
	}
	update.Set["state"] = to

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	session, err := s.FindOneAndUpdate(ctx, bson.M{"customerId": customerID, "state": from}, update, opts)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return zero, err
	}

	// Phân biệt không có phiên với phiên đang ở trạng thái khác
	if _, findErr := s.Current(ctx, customerID); findErr == nil {
		return zero, common.ErrInvalidState
	}
	return zero, common.ErrNotFound
}

// discard xóa phiên, dùng ở các bước chuyển về idle. Phiên đã bị xóa trước đó
// (Abandon chạy song song) không coi là lỗi.
func (s *CheckoutSessionService) discard(ctx context.Context, sessionID primitive.ObjectID) {
	if err := s.DeleteById(ctx, sessionID); err != nil && !errors.Is(err, common.ErrNotFound) {
		logger.GetErrorLogger().WithError(err).WithFields(map[string]interface{}{
			"session_id": sessionID.Hex(),
		}).Error("❌ [CHECKOUT] Không thể xóa phiên checkout")
	}
}

// errSessionOpen là lỗi trả về khi khách bắt đầu phiên mới trong lúc đang có phiên mở.
func errSessionOpen() error {
	return common.NewError(common.ErrCodeInvalidState,
		"Đã có phiên checkout đang mở, hoàn tất hoặc hủy phiên đó trước khi bắt đầu phiên mới", common.StatusConflict, nil)
}

// resultContains kiểm tra một bucket kết quả có chứa biến thể không.
func resultContains(lines []models.ReconciledLine, variationID string) bool {
	for i := range lines {
		if lines[i].VariationID == variationID {
			return true
		}
	}
	return false
}
