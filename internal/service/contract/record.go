package contract

// Record 업로드된 가격표의 한 행입니다.
type Record struct {
	SKU            string  `json:"sku"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Category       string  `json:"category,omitempty"`
	Vendor         string  `json:"vendor,omitempty"`
	PackSize       string  `json:"packSize,omitempty"`
	InventoryLevel *int    `json:"inventoryLevel,omitempty"`
}

// CatalogRecord 커머스 플랫폼 카탈로그의 한 변형(variant)입니다.
type CatalogRecord struct {
	SKU             string `json:"sku"`
	ProductID       string `json:"productId"`
	VariantID       string `json:"variantId"`
	InventoryItemID string `json:"inventoryItemId,omitempty"`
	InventoryLevel  *int   `json:"inventoryLevel,omitempty"`
}
