package catalogsvc

import (
	catalogdto "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/dto"
	models "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/models"
)

// ResolveOutcome cho biết kết quả khớp selection với danh sách biến thể.
type ResolveOutcome string

const (
	ResolveMatched    ResolveOutcome = "matched"    // Selection đầy đủ và khớp đúng một biến thể
	ResolveUnresolved ResolveOutcome = "unresolved" // Còn nhóm thuộc tính chưa chọn
	ResolveNoMatch    ResolveOutcome = "no_match"   // Selection đầy đủ nhưng không biến thể nào khớp
)

// Các chế độ hiển thị chọn biến thể.
const (
	ModeProperties = "properties" // Chọn theo nhóm thuộc tính
	ModeCards      = "cards"      // Chọn trực tiếp SKU dạng thẻ, khi SKU không mang thuộc tính
	ModeSingle     = "single"     // Sản phẩm chỉ có một SKU, tự khớp luôn
)

// ToggleSelection áp một thao tác bấm lên selection và trả về selection mới.
// Bấm lại giá trị đang chọn thì bỏ chọn nhóm đó, bấm giá trị khác thì thay thế.
// Các nhóm khác giữ nguyên. Selection đầu vào không bị sửa.
func ToggleSelection(current models.Selection, group, value string) models.Selection {
	next := current.Clone()
	if next == nil {
		next = models.Selection{}
	}
	if next[group] == value {
		delete(next, group)
	} else {
		next[group] = value
	}
	return next
}

// ResolveSelection tìm biến thể duy nhất có tập thuộc tính trùng khớp hoàn toàn
// với selection. Chỉ khớp khi selection đã phủ đủ mọi nhóm, thiếu nhóm nào trả
// về ResolveUnresolved. Selection đầy đủ mà không biến thể nào khớp trả về
// ResolveNoMatch, trường hợp này chỉ xảy ra khi dữ liệu sàn không nhất quán.
// Hàm thuần: cùng selection trên cùng danh sách biến thể luôn cho cùng kết quả.
func ResolveSelection(variations []models.CatalogVariation, groups []models.PropertyGroup, selection models.Selection) (*models.CatalogVariation, ResolveOutcome) {
	for _, g := range groups {
		if _, ok := selection[g.Name]; !ok {
			return nil, ResolveUnresolved
		}
	}

	for i := range variations {
		v := variations[i]
		if len(v.Properties) != len(groups) {
			continue
		}
		matched := true
		for _, g := range groups {
			if !v.HasValue(g.Name, selection[g.Name]) {
				matched = false
				break
			}
		}
		if matched {
			out := v
			return &out, ResolveMatched
		}
	}

	return nil, ResolveNoMatch
}

// IsOptionAvailable kiểm tra một option còn bấm được với selection hiện tại không.
// Option bấm được khi tồn tại ít nhất một biến thể mang giá trị đó, khớp giá trị
// đã chọn của mọi nhóm KHÁC và còn hàng. Giá trị đang chọn của chính nhóm đang
// xét không tính, để khách có thể đổi sang giá trị khác trong cùng nhóm.
func IsOptionAvailable(variations []models.CatalogVariation, selection models.Selection, group, value string) bool {
	for i := range variations {
		v := &variations[i]
		if !v.HasValue(group, value) {
			continue
		}
		matched := true
		for g, val := range selection {
			if g == group {
				continue
			}
			if !v.HasValue(g, val) {
				matched = false
				break
			}
		}
		if matched && v.InStock() {
			return true
		}
	}
	return false
}

// BuildSelectionState dựng trạng thái chọn đầy đủ trả cho client: áp toggle nếu có,
// tính khả dụng từng option, khớp biến thể và chọn ảnh hiển thị. Hàm thuần trên
// snapshot và request, không đọc ghi dữ liệu ngoài.
func BuildSelectionState(product *models.CatalogProduct, variations []models.CatalogVariation, groups []models.PropertyGroup, req catalogdto.SelectRequest) *catalogdto.SelectResponse {
	if len(groups) == 0 {
		return buildSingleTierState(product, variations, req)
	}

	selection := models.Selection(req.Selection)
	if req.Toggle != nil {
		selection = ToggleSelection(selection, req.Toggle.Group, req.Toggle.Value)
	} else {
		selection = selection.Clone()
		if selection == nil {
			selection = models.Selection{}
		}
	}

	resolved, outcome := ResolveSelection(variations, groups, selection)

	resp := &catalogdto.SelectResponse{
		Mode:         ModeProperties,
		Selection:    selection,
		Groups:       make([]catalogdto.GroupState, 0, len(groups)),
		Outcome:      string(outcome),
		DisplayImage: product.Image,
	}
	if resolved != nil {
		resp.Resolved = summarizeVariation(resolved)
		if resolved.Image != "" {
			resp.DisplayImage = resolved.Image
		}
	}

	for _, g := range groups {
		state := catalogdto.GroupState{
			PropertyID: g.PropertyID,
			Name:       g.Name,
			Visual:     g.Visual,
			Options:    make([]catalogdto.OptionState, 0, len(g.Options)),
		}
		for _, opt := range g.Options {
			state.Options = append(state.Options, catalogdto.OptionState{
				ValueID:   opt.ValueID,
				Value:     opt.Value,
				Image:     opt.Image,
				Selected:  selection[g.Name] == opt.Value,
				Available: IsOptionAvailable(variations, selection, g.Name, opt.Value),
			})
		}
		resp.Groups = append(resp.Groups, state)
	}

	return resp
}

// buildSingleTierState xử lý sản phẩm không có nhóm thuộc tính nào.
// Một SKU duy nhất thì tự khớp luôn, nhiều SKU thì hiển thị dạng thẻ và
// ưu tiên chọn sẵn thẻ còn hàng đầu tiên.
func buildSingleTierState(product *models.CatalogProduct, variations []models.CatalogVariation, req catalogdto.SelectRequest) *catalogdto.SelectResponse {
	resp := &catalogdto.SelectResponse{
		Selection:    map[string]string{},
		Outcome:      string(ResolveUnresolved),
		DisplayImage: product.Image,
	}

	if len(variations) == 1 {
		v := variations[0]
		resp.Mode = ModeSingle
		resp.Resolved = summarizeVariation(&v)
		resp.Outcome = string(ResolveMatched)
		if v.Image != "" {
			resp.DisplayImage = v.Image
		}
		return resp
	}

	resp.Mode = ModeCards
	resp.Cards = make([]catalogdto.VariationCard, 0, len(variations))

	selectedID := req.VariationID
	if selectedID == "" {
		for i := range variations {
			if variations[i].InStock() {
				selectedID = variations[i].VariationID
				break
			}
		}
	}

	for i := range variations {
		v := variations[i]
		card := catalogdto.VariationCard{
			VariationID:    v.VariationID,
			Sku:            v.Sku,
			Image:          v.Image,
			RetailPrice:    v.RetailPrice,
			PromotionPrice: v.PromotionPrice,
			Quantity:       v.Quantity,
			Available:      v.InStock(),
			Selected:       v.VariationID == selectedID && selectedID != "",
		}
		if card.Selected {
			resp.Resolved = summarizeVariation(&v)
			resp.Outcome = string(ResolveMatched)
			if v.Image != "" {
				resp.DisplayImage = v.Image
			}
		}
		resp.Cards = append(resp.Cards, card)
	}

	return resp
}

// summarizeVariation rút gọn một biến thể thành dạng trả cho client.
func summarizeVariation(v *models.CatalogVariation) *catalogdto.VariationSummary {
	return &catalogdto.VariationSummary{
		VariationID:    v.VariationID,
		Sku:            v.Sku,
		Image:          v.Image,
		RetailPrice:    v.RetailPrice,
		PromotionPrice: v.PromotionPrice,
		Quantity:       v.Quantity,
	}
}
