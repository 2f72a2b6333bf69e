// Package notification - Test render nội dung email xác nhận đơn và hành vi
// no-op khi mailer chưa được cấu hình.
package notification

import (
	"strings"
	"testing"
)

func TestRenderOrderConfirmation(t *testing.T) {
	html := renderOrderConfirmation(OrderConfirmation{
		OrderNumber: "SO-2024-001",
		Total:       325.5,
		Lines: []OrderConfirmationLine{
			{Name: "Áo thun Đỏ / M", Quantity: 2, Subtotal: 200},
			{Name: "Quần jeans Xanh / 32", Quantity: 1, Subtotal: 125.5},
		},
	})

	for _, want := range []string{"SO-2024-001", "Áo thun Đỏ / M", "Quần jeans Xanh / 32", "325.50"} {
		if !strings.Contains(html, want) {
			t.Errorf("email thiếu nội dung %q", want)
		}
	}
	if strings.Count(html, "<tr>") != 2 {
		t.Errorf("email phải có đúng 2 dòng hàng, đếm được %d", strings.Count(html, "<tr>"))
	}
}

func TestSendOrderConfirmation_TatThiKhongGui(t *testing.T) {
	// Không cấu hình SMTP_HOST: gửi phải là no-op, không lỗi
	var disabled *Mailer
	if disabled.Enabled() {
		t.Error("mailer nil không được coi là enabled")
	}
	if err := disabled.SendOrderConfirmation("khach@example.com", OrderConfirmation{}); err != nil {
		t.Errorf("mailer nil gửi phải trả nil, got %v", err)
	}

	empty := &Mailer{}
	if empty.Enabled() {
		t.Error("mailer không có host không được coi là enabled")
	}
	if err := empty.SendOrderConfirmation("khach@example.com", OrderConfirmation{}); err != nil {
		t.Errorf("mailer tắt gửi phải trả nil, got %v", err)
	}
}

func TestSendOrderConfirmation_ThieuNguoiNhanThiBoQua(t *testing.T) {
	m := &Mailer{host: "smtp.example.com", port: 587}
	if err := m.SendOrderConfirmation("", OrderConfirmation{}); err != nil {
		t.Errorf("không có địa chỉ nhận phải bỏ qua không lỗi, got %v", err)
	}
}

func TestSendOrderConfirmation_EmailSaiDinhDangThiBoQua(t *testing.T) {
	// Email sai định dạng: bỏ qua không gửi, cũng không coi là lỗi
	m := &Mailer{host: "smtp.example.com", port: 587}
	for _, to := range []string{"khong-phai-email", "thieu-domain@", "@thieu-local.com"} {
		if err := m.SendOrderConfirmation(to, OrderConfirmation{OrderNumber: "SO-2024-002"}); err != nil {
			t.Errorf("email %q sai định dạng phải bỏ qua không lỗi, got %v", to, err)
		}
	}
}
