// Package marketplace là client gọi API của sàn thương mại: đọc catalog,
// đồng bộ giỏ hàng, render đơn (đối soát tồn kho + giá) và đặt đơn.
//
// Mọi lỗi trả về từ package này thuộc nhóm UPS trong common, các tầng trên
// dựa vào đó để hoàn tác về trạng thái ổn định trước khi gọi.
package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tykealy/taobao-ui-prototype/internal/common"
	"github.com/tykealy/taobao-ui-prototype/internal/logger"
)

// Client gọi API sàn thương mại. Request nào thuộc phạm vi khách hàng
// (giỏ hàng, đơn hàng) phải kèm bearer token của khách.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient tạo client với base URL, API key cấp cho storefront và timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// doRequest thực hiện một request tới sàn, encode body JSON nếu có và decode
// kết quả vào out nếu out khác nil. Lỗi trả về luôn thuộc nhóm UPS.
func (c *Client) doRequest(ctx context.Context, method, path, bearer string, body interface{}, out interface{}) error {
	log := logger.GetAppLogger()
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return common.NewError(common.ErrCodeUpstreamDecode, "Không thể encode request gửi sàn", common.StatusInternalServerError, err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return common.NewError(common.ErrCodeUpstreamTransport, common.MsgUpstreamError, common.StatusBadGateway, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			log.WithError(err).WithFields(map[string]interface{}{
				"method": method,
				"url":    url,
			}).Error("🛒 [MARKETPLACE] Sàn không phản hồi kịp")
			return common.ErrUpstreamTimeout
		}
		log.WithError(err).WithFields(map[string]interface{}{
			"method": method,
			"url":    url,
		}).Error("🛒 [MARKETPLACE] Lỗi kết nối tới sàn")
		return common.NewError(common.ErrCodeUpstreamTransport, common.MsgUpstreamError, common.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return common.NewError(common.ErrCodeUpstreamTransport, common.MsgUpstreamError, common.StatusBadGateway, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithFields(map[string]interface{}{
			"method": method,
			"url":    url,
			"status": resp.StatusCode,
			"body":   truncate(string(respBody), 500),
		}).Error("🛒 [MARKETPLACE] Sàn trả về lỗi")
		return common.NewError(
			common.ErrCodeUpstreamTransport,
			common.MsgUpstreamError,
			common.StatusBadGateway,
			fmt.Sprintf("upstream status %d", resp.StatusCode),
		)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"method": method,
				"url":    url,
			}).Error("🛒 [MARKETPLACE] Response của sàn sai định dạng")
			return common.NewError(common.ErrCodeUpstreamDecode, "Response của sàn sai định dạng", common.StatusBadGateway, err)
		}
	}

	return nil
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	var t timeout
	if errors.As(err, &t) {
		return t.Timeout()
	}
	return false
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// ====================================
// CATALOG
// ====================================

// GetProduct lấy payload đầy đủ của một sản phẩm (thông tin chung + biến thể).
func (c *Client) GetProduct(ctx context.Context, productID string) (*ProductPayload, error) {
	var payload ProductPayload
	path := fmt.Sprintf("/api/products/%s", productID)
	if err := c.doRequest(ctx, http.MethodGet, path, "", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ListProducts liệt kê sản phẩm theo trang, dùng khi đồng bộ catalog.
func (c *Client) ListProducts(ctx context.Context, page, pageSize int) (*ProductListResponse, error) {
	var result ProductListResponse
	path := fmt.Sprintf("/api/products?page=%d&page_size=%d", page, pageSize)
	if err := c.doRequest(ctx, http.MethodGet, path, "", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ====================================
// CART (phạm vi khách hàng, cần bearer)
// ====================================

// SyncCartAdd báo sàn thêm một dòng vào giỏ của khách.
func (c *Client) SyncCartAdd(ctx context.Context, bearer, variationID string, quantity int64) error {
	body := map[string]interface{}{
		"variationId": variationID,
		"quantity":    quantity,
	}
	return c.doRequest(ctx, http.MethodPost, "/api/cart/items", bearer, body, nil)
}

// SyncCartUpdate báo sàn đổi số lượng một dòng trong giỏ của khách.
func (c *Client) SyncCartUpdate(ctx context.Context, bearer, variationID string, quantity int64) error {
	body := map[string]interface{}{
		"quantity": quantity,
	}
	path := fmt.Sprintf("/api/cart/items/%s", variationID)
	return c.doRequest(ctx, http.MethodPut, path, bearer, body, nil)
}

// SyncCartRemove báo sàn xóa các dòng khỏi giỏ của khách.
func (c *Client) SyncCartRemove(ctx context.Context, bearer string, variationIDs []string) error {
	body := map[string]interface{}{
		"variationIds": variationIDs,
	}
	return c.doRequest(ctx, http.MethodDelete, "/api/cart/items", bearer, body, nil)
}

// ====================================
// ORDER (phạm vi khách hàng, cần bearer)
// ====================================

// RenderOrder gửi danh sách dòng lên sàn để đối soát tồn kho, giá và phí vận chuyển.
// Không tạo đơn, không giữ hàng.
func (c *Client) RenderOrder(ctx context.Context, bearer string, lines []OrderLine) (*RenderOrderResponse, error) {
	body := map[string]interface{}{
		"lines": lines,
	}
	var result RenderOrderResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/orders/render", bearer, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateOrder đặt đơn trên sàn với đúng danh sách dòng đã đối soát.
func (c *Client) CreateOrder(ctx context.Context, bearer string, lines []OrderLine) (*CreateOrderResponse, error) {
	body := map[string]interface{}{
		"lines": lines,
	}
	var result CreateOrderResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/orders", bearer, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
