package catalogdto

import (
	models "github.com/tykealy/taobao-ui-prototype/internal/api/catalog/models"
)

// SelectionToggle là một thao tác bấm chọn của khách trên một option
type SelectionToggle struct {
	Group string `json:"group" validate:"required"` // Tên nhóm thuộc tính
	Value string `json:"value" validate:"required"` // Tên giá trị được bấm
}

// SelectRequest là trạng thái chọn hiện tại của khách kèm thao tác bấm mới nếu có
type SelectRequest struct {
	Selection   map[string]string `json:"selection"`             // Các giá trị đang chọn, tên nhóm -> tên giá trị
	Toggle      *SelectionToggle  `json:"toggle,omitempty"`      // Thao tác bấm mới, nil khi chỉ cần tính lại trạng thái
	VariationID string            `json:"variationId,omitempty"` // Biến thể khách chọn trực tiếp, chỉ dùng ở chế độ cards
}

// OptionState trạng thái hiển thị của một option sau khi áp selection hiện tại
type OptionState struct {
	ValueID   string `json:"valueId"`         // ID giá trị trên sàn
	Value     string `json:"value"`           // Tên giá trị hiển thị
	Image     string `json:"image,omitempty"` // Ảnh minh họa
	Selected  bool   `json:"selected"`        // Khách đang chọn giá trị này
	Available bool   `json:"available"`       // Còn bấm được với selection hiện tại
}

// GroupState trạng thái hiển thị của một nhóm thuộc tính
type GroupState struct {
	PropertyID string        `json:"propertyId"` // ID thuộc tính trên sàn
	Name       string        `json:"name"`       // Tên nhóm thuộc tính
	Visual     bool          `json:"visual"`     // Render dạng thumbnail hay nhãn chữ
	Options    []OptionState `json:"options"`    // Các option trong nhóm
}

// VariationSummary thông tin rút gọn của một biến thể trả cho client
type VariationSummary struct {
	VariationID    string   `json:"variationId"`              // ID biến thể trên sàn
	Sku            string   `json:"sku"`                      // Mã SKU hiển thị
	Image          string   `json:"image,omitempty"`          // Ảnh riêng của biến thể
	RetailPrice    float64  `json:"retailPrice"`              // Giá niêm yết
	PromotionPrice *float64 `json:"promotionPrice,omitempty"` // Giá khuyến mãi
	Quantity       *int64   `json:"quantity,omitempty"`       // Tồn kho
}

// VariationCard một SKU hiển thị dạng thẻ khi sản phẩm không có nhóm thuộc tính
type VariationCard struct {
	VariationID    string   `json:"variationId"`              // ID biến thể trên sàn
	Sku            string   `json:"sku"`                      // Mã SKU hiển thị
	Image          string   `json:"image,omitempty"`          // Ảnh riêng của biến thể
	RetailPrice    float64  `json:"retailPrice"`              // Giá niêm yết
	PromotionPrice *float64 `json:"promotionPrice,omitempty"` // Giá khuyến mãi
	Quantity       *int64   `json:"quantity,omitempty"`       // Tồn kho
	Available      bool     `json:"available"`                // Còn hàng để chọn
	Selected       bool     `json:"selected"`                 // Thẻ đang được chọn
}

// SelectResponse trạng thái chọn đầy đủ trả về cho client sau mỗi thao tác
type SelectResponse struct {
	Mode         string            `json:"mode"`                   // properties, cards hoặc single
	Selection    map[string]string `json:"selection"`              // Selection sau khi áp toggle
	Groups       []GroupState      `json:"groups,omitempty"`       // Chỉ có ở chế độ properties
	Cards        []VariationCard   `json:"cards,omitempty"`        // Chỉ có ở chế độ cards
	Resolved     *VariationSummary `json:"resolved,omitempty"`     // Biến thể khớp selection, nil khi chưa xác định
	Outcome      string            `json:"outcome"`                // matched, unresolved hoặc no_match
	DisplayImage string            `json:"displayImage,omitempty"` // Ảnh sản phẩm đang hiển thị
}

// ProductDetailResponse chi tiết sản phẩm kèm trạng thái chọn ban đầu
type ProductDetailResponse struct {
	Product    models.CatalogProduct     `json:"product"`    // Snapshot sản phẩm
	Variations []models.CatalogVariation `json:"variations"` // Snapshot các biến thể
	Groups     []models.PropertyGroup    `json:"groups"`     // Các nhóm thuộc tính đã dựng
	State      *SelectResponse           `json:"state"`      // Trạng thái chọn khi chưa chọn gì
}

// SyncResponse kết quả một lần đồng bộ catalog từ sàn
type SyncResponse struct {
	Products   int64 `json:"products"`   // Số sản phẩm đã đồng bộ
	Variations int64 `json:"variations"` // Số biến thể đã đồng bộ
	Removed    int64 `json:"removed"`    // Số biến thể cũ bị xóa vì không còn trên sàn
}
