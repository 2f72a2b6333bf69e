package common

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestErrorIs_SoSanhTheoMaLoi(t *testing.T) {
	err := NewError(ErrCodeDatabaseNotFound, "không thấy giỏ hàng", StatusNotFound, nil)

	if !errors.Is(err, ErrNotFound) {
		t.Error("Hai Error cùng mã DB_002 phải khớp qua errors.Is")
	}
	if errors.Is(err, ErrDuplicate) {
		t.Error("Error mã DB_002 không được khớp với DB_003")
	}

	wrapped := fmt.Errorf("tầng service: %w", err)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("errors.Is phải xuyên qua lớp wrap của fmt.Errorf")
	}
}

func TestIsUpstreamError_ChiNhanNhomUPS(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"lỗi transport", ErrUpstreamUnavailable, true},
		{"lỗi timeout", ErrUpstreamTimeout, true},
		{"lỗi decode", NewError(ErrCodeUpstreamDecode, "sai định dạng", StatusBadGateway, nil), true},
		{"lỗi database", ErrNotFound, false},
		{"lỗi thường", errors.New("lỗi bất kỳ"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		if got := IsUpstreamError(tt.err); got != tt.want {
			t.Errorf("IsUpstreamError(%s) = %v, muốn %v", tt.name, got, tt.want)
		}
	}
}

func TestConvertMongoError(t *testing.T) {
	if got := ConvertMongoError(nil); got != nil {
		t.Errorf("nil phải đi qua nguyên vẹn, nhận %v", got)
	}

	if got := ConvertMongoError(mongo.ErrNoDocuments); !errors.Is(got, ErrNotFound) {
		t.Errorf("ErrNoDocuments phải chuyển thành ErrNotFound, nhận %v", got)
	}

	// Lỗi đã chuẩn hóa không được bọc thêm lần nữa
	already := NewError(ErrCodeBusiness, "vi phạm nghiệp vụ", StatusUnprocessable, nil)
	if got := ConvertMongoError(already); got != already {
		t.Errorf("Error đã chuẩn hóa phải giữ nguyên, nhận %v", got)
	}

	dup := errors.New("E11000 duplicate key error collection: storefront.cart_items")
	if got := ConvertMongoError(dup); !errors.Is(got, ErrDuplicate) {
		t.Errorf("Lỗi E11000 phải chuyển thành ErrDuplicate, nhận %v", got)
	}

	other := errors.New("lỗi không phân loại được")
	got := ConvertMongoError(other)
	var customErr *Error
	if !errors.As(got, &customErr) {
		t.Fatalf("Lỗi thô phải được bọc thành *Error, nhận %T", got)
	}
	if customErr.Code.Code != ErrCodeDatabase.Code {
		t.Errorf("Lỗi thô phải mang mã DB_001, nhận %s", customErr.Code.Code)
	}
}
