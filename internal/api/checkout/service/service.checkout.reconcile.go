package checkoutsvc

import (
	"time"

	models "github.com/tykealy/taobao-ui-prototype/internal/api/checkout/models"
	"github.com/tykealy/taobao-ui-prototype/internal/marketplace"
)

// Các hàm trong file này là hàm thuần: dựng kết quả đối soát và payload kế tiếp
// từ dữ liệu vào, không đụng database hay network. Service gọi chúng sau mỗi
// lần nhận response render từ sàn.

// ClassifyVerdict phân loại một dòng theo số lượng sàn đáp ứng được:
// đáp ứng đủ (>= yêu cầu) là available, đáp ứng một phần nhỏ hơn yêu cầu là
// insufficient, bằng 0 hoặc sàn không báo là unavailable.
func ClassifyVerdict(requested int64, available *int64) string {
	if available == nil || *available <= 0 {
		return models.VerdictUnavailable
	}
	if *available >= requested {
		return models.VerdictAvailable
	}
	return models.VerdictInsufficient
}

// SubmitLines chuyển payload phiên thành danh sách dòng gửi sàn.
// Dòng số lượng 0 (khách đã chỉnh về bỏ) không được gửi.
func SubmitLines(lines []models.SessionLine) []marketplace.OrderLine {
	out := make([]marketplace.OrderLine, 0, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		out = append(out, marketplace.OrderLine{VariationID: l.VariationID, Quantity: l.Quantity})
	}
	return out
}

// BuildResult dựng kết quả đối soát từ payload đã gửi và response render của sàn.
// Mỗi dòng đã gửi được phân vào đúng một bucket theo verdict; dòng sàn không trả
// về coi như không còn bán. Tổng tạm tính = thành tiền các dòng available + phí
// vận chuyển.
func BuildResult(submitted []models.SessionLine, resp *marketplace.RenderOrderResponse) *models.ReconciliationResult {
	rendered := make(map[string]marketplace.RenderedLine, len(resp.Lines))
	for _, l := range resp.Lines {
		rendered[l.VariationID] = l
	}

	result := &models.ReconciliationResult{
		Available:    []models.ReconciledLine{},
		Insufficient: []models.ReconciledLine{},
		Unavailable:  []models.ReconciledLine{},
		ShippingFees: []models.ShippingFee{},
		ValidatedAt:  time.Now().UnixMilli(),
	}

	for _, s := range submitted {
		if s.Quantity <= 0 {
			continue
		}
		line := models.ReconciledLine{
			VariationID:       s.VariationID,
			RequestedQuantity: s.Quantity,
		}
		if r, ok := rendered[s.VariationID]; ok {
			line.Name = r.Name
			line.Image = r.Image
			line.AvailableQuantity = r.AvailableQuantity
			line.UnitPrice = r.UnitPrice
			line.PromotionPrice = r.PromotionPrice
		}
		line.Verdict = ClassifyVerdict(line.RequestedQuantity, line.AvailableQuantity)

		switch line.Verdict {
		case models.VerdictAvailable:
			result.Available = append(result.Available, line)
		case models.VerdictInsufficient:
			result.Insufficient = append(result.Insufficient, line)
		default:
			result.Unavailable = append(result.Unavailable, line)
		}
	}

	var total float64
	for i := range result.Available {
		total += result.Available[i].Subtotal()
	}
	for _, fee := range resp.ShippingFees {
		result.ShippingFees = append(result.ShippingFees, models.ShippingFee{Name: fee.Name, Amount: fee.Amount})
		total += fee.Amount
	}
	result.Total = total

	return result
}

// NextLines dựng payload cho lần đối soát kế tiếp: giữ các dòng available và
// insufficient với số lượng hiện tại, loại các dòng unavailable. Dòng bị loại
// vẫn nằm trong giỏ hàng cho tới khi khách chủ động bỏ.
func NextLines(lines []models.SessionLine, result *models.ReconciliationResult) []models.SessionLine {
	keep := make(map[string]struct{}, len(result.Available)+len(result.Insufficient))
	for i := range result.Available {
		keep[result.Available[i].VariationID] = struct{}{}
	}
	for i := range result.Insufficient {
		keep[result.Insufficient[i].VariationID] = struct{}{}
	}

	next := make([]models.SessionLine, 0, len(lines))
	for _, l := range lines {
		if _, ok := keep[l.VariationID]; ok {
			next = append(next, l)
		}
	}
	return next
}

// ClampAdjustment kẹp số lượng khách muốn chỉnh cho một dòng thiếu hàng về
// khoảng [0, số lượng sàn đáp ứng được].
func ClampAdjustment(quantity int64, line *models.ReconciledLine) int64 {
	if quantity < 0 {
		return 0
	}
	if line.AvailableQuantity != nil && quantity > *line.AvailableQuantity {
		return *line.AvailableQuantity
	}
	return quantity
}
