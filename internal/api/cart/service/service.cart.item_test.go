// Package cartsvc - Test kẹp số lượng khi tăng/giảm dòng giỏ hàng.
package cartsvc

import "testing"

func TestClampQuantity(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		delta   int64
		want    int64
	}{
		{"tăng bình thường", 2, 3, 5},
		{"giảm bình thường", 5, -2, 3},
		{"giảm chạm đáy", 3, -2, 1},
		{"giảm quá đáy kẹp về 1", 2, -5, 1},
		{"giảm về 0 vẫn giữ 1, không tự xóa dòng", 1, -1, 1},
		{"delta 0 giữ nguyên", 4, 0, 4},
	}

	for _, tt := range tests {
		if got := clampQuantity(tt.current, tt.delta); got != tt.want {
			t.Errorf("%s: clampQuantity(%d, %d) = %d, muốn %d", tt.name, tt.current, tt.delta, got, tt.want)
		}
	}
}
