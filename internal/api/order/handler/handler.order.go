package orderhdl

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basehdl "github.com/tykealy/taobao-ui-prototype/internal/api/base/handler"
	orderdto "github.com/tykealy/taobao-ui-prototype/internal/api/order/dto"
	models "github.com/tykealy/taobao-ui-prototype/internal/api/order/models"
	ordersvc "github.com/tykealy/taobao-ui-prototype/internal/api/order/service"
	"github.com/tykealy/taobao-ui-prototype/internal/common"
	"github.com/tykealy/taobao-ui-prototype/internal/utility"
)

// OrderHandler xử lý các yêu cầu tra cứu đơn hàng của khách.
//
// Đơn chỉ được tạo qua checkout commit nên API /orders là read-only. Mọi
// phương thức đọc đều ghi đè customerId từ token vào filter: khách chỉ thấy
// đơn của chính mình, kể cả khi filter gửi lên cố tình ghi customerId khác.
type OrderHandler struct {
	*basehdl.BaseHandler[models.Order, orderdto.OrderCreateInput, orderdto.OrderUpdateInput]
	OrderService *ordersvc.OrderService
}

// NewOrderHandler khởi tạo OrderHandler mới
func NewOrderHandler() (*OrderHandler, error) {
	service, err := ordersvc.NewOrderService()
	if err != nil {
		return nil, fmt.Errorf("failed to create order service: %v", err)
	}
	hdl := &OrderHandler{OrderService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.Order, orderdto.OrderCreateInput, orderdto.OrderUpdateInput](service.BaseServiceMongoImpl)
	return hdl, nil
}

// customerScope lấy customer ID từ Locals do AuthMiddleware set.
func (h *OrderHandler) customerScope(c fiber.Ctx) string {
	if v, ok := c.Locals("customer_id").(string); ok {
		return v
	}
	return ""
}

// scopedFilter parse filter từ query string rồi ghi đè customerId của khách.
func (h *OrderHandler) scopedFilter(c fiber.Ctx) (map[string]interface{}, error) {
	filter, err := h.ProcessFilter(c)
	if err != nil {
		return nil, err
	}
	filter["customerId"] = h.customerScope(c)
	return filter, nil
}

// Find trả về các đơn của khách theo filter, mới nhất trước.
func (h *OrderHandler) Find(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.scopedFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		data, err := h.BaseService.Find(c.Context(), filter, opts)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if data == nil {
			data = []models.Order{}
		}

		h.HandleResponse(c, data, nil)
		return nil
	})
}

// FindOne tìm một đơn của khách theo filter.
func (h *OrderHandler) FindOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.scopedFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.FindOne(c.Context(), filter, nil)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// FindOneById tìm một đơn theo ID, giới hạn trong phạm vi của khách.
// Đơn của khách khác trả về not found như không tồn tại.
func (h *OrderHandler) FindOneById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := c.Params("id")
		if id == "" {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				"ID không được để trống trong URL params",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		filter := bson.M{"_id": utility.String2ObjectID(id), "customerId": h.customerScope(c)}
		data, err := h.BaseService.FindOne(c.Context(), filter, nil)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// FindManyByIds tìm nhiều đơn theo danh sách ID, giới hạn trong phạm vi của khách.
func (h *OrderHandler) FindManyByIds(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var ids []string
		idsStr := c.Query("ids", "[]")
		if err := json.Unmarshal([]byte(idsStr), &ids); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Danh sách ID phải là một mảng JSON. Giá trị nhận được: %s. Chi tiết lỗi: %v", idsStr, err),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		objectIds := make([]primitive.ObjectID, len(ids))
		for i, id := range ids {
			if !primitive.IsValidObjectID(id) {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("ID '%s' tại vị trí %d không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id, i),
					common.StatusBadRequest,
					nil,
				))
				return nil
			}
			objectIds[i] = utility.String2ObjectID(id)
		}

		filter := bson.M{"_id": bson.M{"$in": objectIds}, "customerId": h.customerScope(c)}
		data, err := h.BaseService.Find(c.Context(), filter, nil)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// FindWithPagination trả về các đơn của khách theo trang, mới nhất trước.
func (h *OrderHandler) FindWithPagination(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.scopedFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
		if err != nil || page < 1 {
			page = 1
		}
		limit, err := strconv.ParseInt(c.Query("limit", "10"), 10, 64)
		if err != nil || limit <= 0 {
			limit = 10
		}

		opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		data, err := h.BaseService.FindWithPagination(c.Context(), filter, page, limit, opts)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// CountDocuments đếm số đơn của khách theo filter.
func (h *OrderHandler) CountDocuments(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.scopedFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		count, err := h.BaseService.CountDocuments(c.Context(), filter)
		h.HandleResponse(c, count, err)
		return nil
	})
}

// Distinct lấy danh sách giá trị duy nhất của một trường trong các đơn của khách.
func (h *OrderHandler) Distinct(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		field := c.Params("field")
		if field == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Tên trường không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}

		filter, err := h.scopedFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.Distinct(c.Context(), field, filter)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// DocumentExists kiểm tra khách có đơn thỏa mãn filter không.
func (h *OrderHandler) DocumentExists(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.scopedFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		exists, err := h.BaseService.DocumentExists(c.Context(), filter)
		h.HandleResponse(c, exists, err)
		return nil
	})
}
