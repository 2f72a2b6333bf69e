// Package marketplace - Test client gọi sàn qua httptest: header xác thực,
// phân loại lỗi UPS (transport / timeout / decode) và decode response.
package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tykealy/taobao-ui-prototype/internal/common"
)

func TestClient_GuiDungHeaderVaBody(t *testing.T) {
	var gotMethod, gotPath, gotApiKey, gotAuth, gotContentType string
	var gotBody struct {
		Lines []OrderLine `json:"lines"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotApiKey = r.Header.Get("X-Api-Key")
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		decodeJSONBody(t, r, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"lines": [
				{"variationId": "v1", "name": "Áo thun đỏ", "requestedQuantity": 2, "availableQuantity": 2, "unitPrice": 100}
			],
			"shippingFees": [
				{"name": "Giao tiêu chuẩn", "amount": 25}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key-abc", 5*time.Second)
	result, err := client.RenderOrder(context.Background(), "tok-123", []OrderLine{
		{VariationID: "v1", Quantity: 2},
	})

	assert.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/orders/render", gotPath)
	assert.Equal(t, "key-abc", gotApiKey)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Len(t, gotBody.Lines, 1)
	assert.Equal(t, "v1", gotBody.Lines[0].VariationID)
	assert.Equal(t, int64(2), gotBody.Lines[0].Quantity)

	assert.Len(t, result.Lines, 1)
	assert.Equal(t, "Áo thun đỏ", result.Lines[0].Name)
	assert.Equal(t, int64(2), *result.Lines[0].AvailableQuantity)
	assert.Len(t, result.ShippingFees, 1)
	assert.Equal(t, float64(25), result.ShippingFees[0].Amount)
}

func TestClient_GetProduct_KhongKemBearer(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{
			"product": {"productId": "p1", "name": "Áo thun"},
			"variations": [{"variationId": "v1", "sku": "SKU-1", "retailPrice": 100, "quantity": 3}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key-abc", 5*time.Second)
	payload, err := client.GetProduct(context.Background(), "p1")

	assert.NoError(t, err)
	assert.Empty(t, gotAuth, "request catalog không được kèm Authorization")
	assert.Equal(t, "p1", payload.Product.ProductID)
	assert.Len(t, payload.Variations, 1)
	assert.Equal(t, int64(3), *payload.Variations[0].Quantity)
}

func TestClient_SyncCartRemove_GuiDanhSachID(t *testing.T) {
	var gotMethod string
	var gotBody struct {
		VariationIDs []string `json:"variationIds"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		decodeJSONBody(t, r, &gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key-abc", 5*time.Second)
	err := client.SyncCartRemove(context.Background(), "tok-123", []string{"v1", "v2"})

	assert.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, []string{"v1", "v2"}, gotBody.VariationIDs)
}

func TestClient_SanTraLoiThuocNhomUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "internal"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key-abc", 5*time.Second)
	_, err := client.RenderOrder(context.Background(), "tok-123", []OrderLine{{VariationID: "v1", Quantity: 1}})

	assert.Error(t, err)
	assert.True(t, common.IsUpstreamError(err), "lỗi từ sàn phải thuộc nhóm UPS")
	assert.False(t, errors.Is(err, common.ErrNotFound))

	var customErr *common.Error
	assert.True(t, errors.As(err, &customErr))
	assert.Equal(t, common.ErrCodeUpstreamTransport.Code, customErr.Code.Code)
	assert.Equal(t, common.StatusBadGateway, customErr.StatusCode)
}

func TestClient_ResponseSaiDinhDangLaLoiDecode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`đây không phải JSON`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key-abc", 5*time.Second)
	_, err := client.GetProduct(context.Background(), "p1")

	assert.Error(t, err)
	assert.True(t, common.IsUpstreamError(err))

	var customErr *common.Error
	assert.True(t, errors.As(err, &customErr))
	assert.Equal(t, common.ErrCodeUpstreamDecode.Code, customErr.Code.Code)
}

func TestClient_TimeoutTraVeSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key-abc", 30*time.Millisecond)
	err := client.SyncCartAdd(context.Background(), "tok-123", "v1", 1)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUpstreamTimeout), "timeout phải trả về đúng sentinel để tầng trên phân nhánh")
	assert.True(t, common.IsUpstreamError(err))
}

// decodeJSONBody đọc body request trong handler test, fail test nếu sai định dạng.
func decodeJSONBody(t *testing.T, r *http.Request, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		t.Fatalf("Body request sai định dạng JSON: %v", err)
	}
}
