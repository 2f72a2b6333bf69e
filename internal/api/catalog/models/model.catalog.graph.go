package models

// Các cấu trúc trong file này được dẫn xuất từ snapshot biến thể mỗi lần cần,
// không lưu vào MongoDB.

// PropertyOption là một giá trị chọn được trong một nhóm thuộc tính
type PropertyOption struct {
	ValueID      string   `json:"valueId"`         // ID giá trị trên sàn, lấy từ biến thể đầu tiên mang giá trị này
	Value        string   `json:"value"`           // Tên giá trị hiển thị
	Image        string   `json:"image,omitempty"` // Ảnh minh họa, rỗng nếu không tra được
	VariationIDs []string `json:"variationIds"`    // Các biến thể mang giá trị này, theo thứ tự xuất hiện
}

// PropertyGroup là một nhóm thuộc tính của sản phẩm (vd: "Màu sắc", "Kích cỡ")
type PropertyGroup struct {
	PropertyID string           `json:"propertyId"` // ID thuộc tính trên sàn, lấy từ biến thể đầu tiên
	Name       string           `json:"name"`       // Tên nhóm thuộc tính
	Visual     bool             `json:"visual"`     // true khi nhóm nên render dạng thumbnail thay vì nhãn chữ
	Options    []PropertyOption `json:"options"`    // Các giá trị chọn được trong nhóm
}

// Selection ánh xạ tên nhóm thuộc tính sang tên giá trị khách đang chọn.
// Selection có thể khuyết nhóm khi khách mới chọn một phần.
type Selection map[string]string

// Clone trả về bản sao độc lập của Selection.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
