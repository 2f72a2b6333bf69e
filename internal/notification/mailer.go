// Package notification gửi email giao dịch cho khách hàng qua SMTP.
// Hiện tại chỉ có một loại email: xác nhận đơn hàng sau khi đặt thành công.
package notification

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/tykealy/taobao-ui-prototype/config"
	"github.com/tykealy/taobao-ui-prototype/internal/logger"
	"github.com/tykealy/taobao-ui-prototype/internal/utility"
)

// OrderConfirmationLine là một dòng hàng trong email xác nhận đơn.
type OrderConfirmationLine struct {
	Name     string  // Tên hiển thị của biến thể
	Quantity int64   // Số lượng đã đặt
	Subtotal float64 // Thành tiền của dòng
}

// OrderConfirmation là dữ liệu dựng email xác nhận đơn hàng.
type OrderConfirmation struct {
	OrderNumber string                  // Mã đơn hàng sàn cấp
	Total       float64                 // Tổng tiền đơn hàng
	Lines       []OrderConfirmationLine // Các dòng hàng trong đơn
}

// Mailer gửi email qua SMTP. Không cấu hình SMTP_HOST thì mailer tắt,
// mọi lời gọi gửi trở thành no-op để môi trường dev không cần SMTP server.
type Mailer struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewMailerFromConfig tạo mailer từ cấu hình server.
func NewMailerFromConfig(cfg *config.Configuration) *Mailer {
	return &Mailer{
		host:      cfg.SMTP_Host,
		port:      cfg.SMTP_Port,
		username:  cfg.SMTP_Username,
		password:  cfg.SMTP_Password,
		fromName:  cfg.SMTP_FromName,
		fromEmail: cfg.SMTP_FromEmail,
	}
}

// Enabled cho biết mailer có được cấu hình để gửi thật hay không.
func (m *Mailer) Enabled() bool {
	return m != nil && m.host != ""
}

// SendOrderConfirmation gửi email xác nhận đơn hàng cho khách.
// Mailer tắt, khách không có email hoặc email sai định dạng thì bỏ qua, không coi là lỗi.
func (m *Mailer) SendOrderConfirmation(to string, conf OrderConfirmation) error {
	if !m.Enabled() || to == "" {
		return nil
	}

	if err := utility.ValidateEmail(to); err != nil {
		logger.GetAppLogger().WithField("order_number", conf.OrderNumber).
			Warn("📧 [MAIL] Email người nhận sai định dạng, bỏ qua không gửi")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Xác nhận đơn hàng %s", conf.OrderNumber))
	msg.SetBody("text/html", renderOrderConfirmation(conf))

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		logger.GetAppLogger().WithError(err).WithField("order_number", conf.OrderNumber).
			Error("📧 [MAIL] Gửi email xác nhận đơn thất bại")
		return err
	}
	return nil
}

// renderOrderConfirmation dựng nội dung HTML của email xác nhận đơn.
func renderOrderConfirmation(conf OrderConfirmation) string {
	var rows strings.Builder
	for _, line := range conf.Lines {
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding:6px 12px;border-bottom:1px solid #eee;">%s</td><td style="padding:6px 12px;border-bottom:1px solid #eee;text-align:center;">%d</td><td style="padding:6px 12px;border-bottom:1px solid #eee;text-align:right;">%.2f</td></tr>`,
			line.Name, line.Quantity, line.Subtotal))
	}

	return fmt.Sprintf(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;">
<h2 style="color:#333;">Cảm ơn bạn đã đặt hàng!</h2>
<p>Đơn hàng <strong>%s</strong> của bạn đã được ghi nhận trên sàn.</p>
<table style="width:100%%;border-collapse:collapse;margin:16px 0;">
<thead><tr style="background:#f5f5f5;"><th style="padding:8px 12px;text-align:left;">Sản phẩm</th><th style="padding:8px 12px;text-align:center;">Số lượng</th><th style="padding:8px 12px;text-align:right;">Thành tiền</th></tr></thead>
<tbody>%s</tbody>
</table>
<p style="font-size:16px;text-align:right;">Tổng cộng: <strong>%.2f</strong></p>
<p style="color:#888;font-size:12px;">Email này được gửi tự động, vui lòng không trả lời.</p>
</div>`, conf.OrderNumber, rows.String(), conf.Total)
}
