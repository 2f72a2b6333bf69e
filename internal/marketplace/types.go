package marketplace

// PropertyKey định danh một cặp (thuộc tính, giá trị) trong mapping ảnh.
type PropertyKey struct {
	PropertyID string `json:"propertyId"`
	ValueID    string `json:"valueId"`
}

// PropertyPair là một thuộc tính của SKU kèm tên hiển thị.
// Thứ tự các cặp trong mảng là thứ tự sàn trả về, giữ nguyên khi lưu snapshot.
type PropertyPair struct {
	PropertyID string `json:"propertyId"`
	Name       string `json:"name"`
	ValueID    string `json:"valueId"`
	Value      string `json:"value"`
}

// ImageMapping gắn một ảnh với một hoặc nhiều cặp (thuộc tính, giá trị).
type ImageMapping struct {
	Properties []PropertyKey `json:"properties"`
	Image      string        `json:"image"`
}

// ProductData là dữ liệu sản phẩm từ API sàn.
type ProductData struct {
	ProductID     string         `json:"productId"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Image         string         `json:"image"`
	ImageMappings []ImageMapping `json:"imageMappings"`
}

// VariationData là dữ liệu một biến thể (SKU) từ API sàn.
// Quantity nil nghĩa là sàn không báo tồn kho cho SKU này.
type VariationData struct {
	VariationID    string         `json:"variationId"`
	Sku            string         `json:"sku"`
	Properties     []PropertyPair `json:"properties"`
	Image          string         `json:"image"`
	RetailPrice    float64        `json:"retailPrice"`
	PromotionPrice *float64       `json:"promotionPrice"`
	Quantity       *int64         `json:"quantity"`
}

// ProductPayload là payload đầy đủ của một sản phẩm: thông tin chung + các biến thể.
type ProductPayload struct {
	Product    ProductData     `json:"product"`
	Variations []VariationData `json:"variations"`
}

// ProductListResponse là trang kết quả khi liệt kê sản phẩm.
type ProductListResponse struct {
	Products   []ProductPayload `json:"products"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}

// OrderLine là một dòng (SKU, số lượng) gửi lên sàn khi render hoặc đặt đơn.
type OrderLine struct {
	VariationID string `json:"variationId"`
	Quantity    int64  `json:"quantity"`
}

// RenderedLine là kết quả đối soát của sàn cho một dòng đã gửi.
// AvailableQuantity nil nghĩa là sàn không còn bán SKU này.
type RenderedLine struct {
	VariationID       string   `json:"variationId"`
	Name              string   `json:"name"`
	Image             string   `json:"image"`
	RequestedQuantity int64    `json:"requestedQuantity"`
	AvailableQuantity *int64   `json:"availableQuantity"`
	UnitPrice         float64  `json:"unitPrice"`
	PromotionPrice    *float64 `json:"promotionPrice"`
}

// ShippingFee là một khoản phí vận chuyển trong kết quả render.
type ShippingFee struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// RenderOrderResponse là kết quả của phép render đơn: đối soát tồn kho,
// giá hiện tại và phí vận chuyển cho danh sách dòng đã gửi.
type RenderOrderResponse struct {
	Lines        []RenderedLine `json:"lines"`
	ShippingFees []ShippingFee  `json:"shippingFees"`
}

// CreateOrderResponse là kết quả đặt đơn thành công trên sàn.
type CreateOrderResponse struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
}
