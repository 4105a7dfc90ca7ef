package models

// Cart models for Redis session-based storage

// CartItem is keyed by product code plus variant so the stock guard can
// count the exact variant already in the cart.
type CartItem struct {
	ProductID   string  `json:"product_id" redis:"product_id"`
	Code        string  `json:"code" redis:"code"`
	ProductName string  `json:"product_name" redis:"product_name"`
	VariantKey  string  `json:"variant_key" redis:"variant_key"` // ring size, empty for scalar stock
	Material    string  `json:"material" redis:"material"`
	Price       float64 `json:"price" redis:"price"`
	AppliedTier string  `json:"applied_tier" redis:"applied_tier"`
	Quantity    int     `json:"quantity" redis:"quantity"`
	Subtotal    float64 `json:"subtotal" redis:"subtotal"`
	VaultItem   bool    `json:"vault_item" redis:"vault_item"`
	AddedAt     string  `json:"added_at" redis:"added_at"`
}

// LineKey identifies a cart line: same product in a different size or
// material is a separate line.
func (ci *CartItem) LineKey() string {
	key := ci.Code
	if ci.VariantKey != "" {
		key += ":" + ci.VariantKey
	}
	if ci.Material != "" {
		key += ":" + ci.Material
	}
	return key
}

type Cart struct {
	SessionID   string               `json:"session_id"`
	Currency    string               `json:"currency"`
	Items       map[string]*CartItem `json:"items"` // keyed by LineKey
	Subtotal    float64              `json:"subtotal"`
	ItemCount   int                  `json:"item_count"`
	LastUpdated string               `json:"last_updated"`
	ExpiresAt   string               `json:"expires_at"`
}

// QuantityOf returns the units of the given product+variant already in
// the cart, across materials.
func (c *Cart) QuantityOf(code, variantKey string) int {
	total := 0
	for _, item := range c.Items {
		if item.Code == code && item.VariantKey == variantKey {
			total += item.Quantity
		}
	}
	return total
}

type AddToCartRequest struct {
	Code       string `json:"code" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	VariantKey string `json:"variant_key"`
	Material   string `json:"material"`
	CustomerID string `json:"customer_id"`
	Currency   string `json:"currency"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}
