package catalogsvc

import (
	"fmt"
	"sort"

	models "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/models"
	"github.com/tykealy/taobao-ui-prototype/internal/utility"
)

// imageKey tạo khóa tra ảnh chuẩn từ cặp (thuộc tính, giá trị).
func imageKey(propertyID, valueID string) string {
	return fmt.Sprintf("%s:%s", propertyID, valueID)
}

// BuildImageLookup dựng bảng tra ảnh từ các mapping của sản phẩm.
// Entry đơn thuộc tính được ưu tiên, entry đầu tiên cho mỗi khóa thắng.
// Entry tổ hợp nhiều thuộc tính chỉ dùng lấp chỗ cho khóa chưa có ảnh.
func BuildImageLookup(mappings []models.ImageMapping) map[string]string {
	lookup := make(map[string]string)

	for _, m := range mappings {
		if len(m.Properties) != 1 || m.Image == "" {
			continue
		}
		key := imageKey(m.Properties[0].PropertyID, m.Properties[0].ValueID)
		if _, exists := lookup[key]; !exists {
			lookup[key] = m.Image
		}
	}

	for _, m := range mappings {
		if len(m.Properties) < 2 || m.Image == "" {
			continue
		}
		for _, p := range m.Properties {
			key := imageKey(p.PropertyID, p.ValueID)
			if _, exists := lookup[key]; !exists {
				lookup[key] = m.Image
			}
		}
	}

	return lookup
}

// BuildPropertyGraph dựng danh sách nhóm thuộc tính từ snapshot biến thể của một sản phẩm.
// Hàm thuần, không đụng tới dữ liệu ngoài tham số. Dữ liệu khuyết cho ra danh sách rỗng,
// không bao giờ lỗi.
//
// Quy trình:
//  1. Duyệt từng biến thể theo thứ tự, gom cặp (thuộc tính, giá trị) vào nhóm theo tên
//     thuộc tính, trong nhóm gom option theo tên giá trị và tích lũy danh sách biến thể.
//  2. Ảnh option: tra bảng mapping theo khóa (propertyId, valueId) trước, không có thì
//     lấy ảnh của một biến thể mang giá trị đó.
//  3. Nhóm được đánh dấu Visual khi có ít nhất hai option mang ảnh khác nhau.
//  4. Các nhóm sắp xếp tăng dần theo số option để nhóm ít lựa chọn hiện trước.
func BuildPropertyGraph(variations []models.CatalogVariation, mappings []models.ImageMapping) []models.PropertyGroup {
	lookup := BuildImageLookup(mappings)

	groups := make([]models.PropertyGroup, 0)
	groupIndex := make(map[string]int)

	for _, v := range variations {
		for _, p := range v.Properties {
			if p.Name == "" {
				continue
			}

			gi, ok := groupIndex[p.Name]
			if !ok {
				groups = append(groups, models.PropertyGroup{
					PropertyID: p.PropertyID,
					Name:       p.Name,
				})
				gi = len(groups) - 1
				groupIndex[p.Name] = gi
			}
			group := &groups[gi]

			oi := -1
			for i := range group.Options {
				if group.Options[i].Value == p.Value {
					oi = i
					break
				}
			}
			if oi < 0 {
				group.Options = append(group.Options, models.PropertyOption{
					ValueID: p.ValueID,
					Value:   p.Value,
					Image:   lookup[imageKey(p.PropertyID, p.ValueID)],
				})
				oi = len(group.Options) - 1
			}

			if !utility.Contains(group.Options[oi].VariationIDs, v.VariationID) {
				group.Options[oi].VariationIDs = append(group.Options[oi].VariationIDs, v.VariationID)
			}
		}
	}

	imageByVariation := make(map[string]string, len(variations))
	for _, v := range variations {
		imageByVariation[v.VariationID] = v.Image
	}

	for gi := range groups {
		for oi := range groups[gi].Options {
			opt := &groups[gi].Options[oi]
			if opt.Image != "" {
				continue
			}
			for _, vid := range opt.VariationIDs {
				if img := imageByVariation[vid]; img != "" {
					opt.Image = img
					break
				}
			}
		}

		distinct := make(map[string]struct{})
		for _, opt := range groups[gi].Options {
			if opt.Image != "" {
				distinct[opt.Image] = struct{}{}
			}
		}
		groups[gi].Visual = len(distinct) >= 2
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].Options) < len(groups[j].Options)
	})

	return groups
}
