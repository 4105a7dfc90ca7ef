package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	redisclient "github.com/redis/go-redis/v9"

	"github.com/spoilme-vintage/store-api/pkg/models"
)

const cartTTL = 1 * time.Hour

func AddProductsToCache(ctx context.Context, products []*models.Product) error {
	for _, product := range products {
		if err := CacheSingleProduct(ctx, product); err != nil {
			return fmt.Errorf("failed to cache product %s: %w", product.Code, err)
		}
	}

	return nil
}

func GetProductFromCache(ctx context.Context, code string) (*models.Product, error) {
	client := RedisClient()
	defer client.Close()

	productKey := fmt.Sprintf("product:%s", code)
	productJSON, err := client.Get(ctx, productKey).Result()
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal([]byte(productJSON), &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	return &product, nil
}

// RemoveProductFromCache removes a product and its related cache entries.
// Call after any write that changes pricing or stock so the storefront
// never serves a stale quote basis.
func RemoveProductFromCache(ctx context.Context, product *models.Product) error {
	client := RedisClient()
	defer client.Close()

	pipe := client.TxPipeline()

	productKey := fmt.Sprintf("product:%s", product.Code)
	pipe.Del(ctx, productKey)

	slugKey := fmt.Sprintf("slug:%s", product.Slug)
	pipe.Del(ctx, slugKey)

	typeKey := fmt.Sprintf("type:%s", product.Type)
	pipe.LRem(ctx, typeKey, 0, product.Code)

	pipe.LRem(ctx, "products:recent", 0, product.Code)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove product from Redis cache: %w", err)
	}

	return nil
}

// CacheSingleProduct stores a product in Redis keyed by code, with a slug
// mapping for the storefront's pretty URLs.
func CacheSingleProduct(ctx context.Context, product *models.Product) error {
	client := RedisClient()
	defer client.Close()

	productJSON, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product %s: %w", product.Code, err)
	}

	pipe := client.TxPipeline()

	productKey := fmt.Sprintf("product:%s", product.Code)
	pipe.Set(ctx, productKey, productJSON, 24*time.Hour)

	slugKey := fmt.Sprintf("slug:%s", product.Slug)
	pipe.Set(ctx, slugKey, product.Code, 24*time.Hour)

	typeKey := fmt.Sprintf("type:%s", product.Type)
	pipe.LPush(ctx, typeKey, product.Code)
	pipe.Expire(ctx, typeKey, 24*time.Hour)

	pipe.LPush(ctx, "products:recent", product.Code)
	pipe.LTrim(ctx, "products:recent", 0, 99)
	pipe.Expire(ctx, "products:recent", 24*time.Hour)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to execute Redis pipeline for product %s: %w", product.Code, err)
	}

	return nil
}

func GetProductBySlugFromCache(ctx context.Context, slug string) (*models.Product, error) {
	client := RedisClient()
	defer client.Close()

	slugKey := fmt.Sprintf("slug:%s", slug)
	code, err := client.Get(ctx, slugKey).Result()
	if err != nil {
		return nil, err
	}

	return GetProductFromCache(ctx, code)
}

// Cart operations using Redis Hashes. Lines are keyed by the item's
// LineKey so the same product in a different size or material stays a
// separate line.

// GetCart retrieves a cart by session ID
func GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	client := RedisClient()
	defer client.Close()

	cartKey := fmt.Sprintf("cart:%s", sessionID)

	exists, err := client.Exists(ctx, cartKey).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return createEmptyCart(sessionID), nil
	}

	cartData, err := client.HGetAll(ctx, cartKey).Result()
	if err != nil {
		return nil, err
	}

	itemPattern := fmt.Sprintf("cart:%s:item:*", sessionID)
	itemKeys, err := client.Keys(ctx, itemPattern).Result()
	if err != nil {
		return nil, err
	}

	items := make(map[string]*models.CartItem)
	for _, itemKey := range itemKeys {
		itemData, err := client.HGetAll(ctx, itemKey).Result()
		if err != nil {
			continue
		}

		item := parseCartItem(itemData)
		items[item.LineKey()] = item
	}

	cart := &models.Cart{
		SessionID: sessionID,
		Items:     items,
	}

	if currency, ok := cartData["currency"]; ok {
		cart.Currency = currency
	}
	if subtotalStr, ok := cartData["subtotal"]; ok {
		if subtotal, err := strconv.ParseFloat(subtotalStr, 64); err == nil {
			cart.Subtotal = subtotal
		}
	}
	if itemCountStr, ok := cartData["item_count"]; ok {
		if itemCount, err := strconv.Atoi(itemCountStr); err == nil {
			cart.ItemCount = itemCount
		}
	}
	if lastUpdated, ok := cartData["last_updated"]; ok {
		cart.LastUpdated = lastUpdated
	}
	if expiresAt, ok := cartData["expires_at"]; ok {
		cart.ExpiresAt = expiresAt
	}

	return cart, nil
}

func parseCartItem(itemData map[string]string) *models.CartItem {
	item := &models.CartItem{}
	item.ProductID = itemData["product_id"]
	item.Code = itemData["code"]
	item.ProductName = itemData["product_name"]
	item.VariantKey = itemData["variant_key"]
	item.Material = itemData["material"]
	item.AppliedTier = itemData["applied_tier"]
	item.AddedAt = itemData["added_at"]
	if priceStr, ok := itemData["price"]; ok {
		if price, err := strconv.ParseFloat(priceStr, 64); err == nil {
			item.Price = price
		}
	}
	if qtyStr, ok := itemData["quantity"]; ok {
		if qty, err := strconv.Atoi(qtyStr); err == nil {
			item.Quantity = qty
		}
	}
	if subtotalStr, ok := itemData["subtotal"]; ok {
		if subtotal, err := strconv.ParseFloat(subtotalStr, 64); err == nil {
			item.Subtotal = subtotal
		}
	}
	if vaultStr, ok := itemData["vault_item"]; ok {
		item.VaultItem = vaultStr == "true"
	}
	return item
}

// AddToCart adds an engine-priced line to the cart. The caller resolves
// the unit price before calling; the cart never re-prices on read.
func AddToCart(ctx context.Context, sessionID, currency string, newItem *models.CartItem) (*models.Cart, error) {
	client := RedisClient()
	defer client.Close()

	cart, err := GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if currency != "" {
		cart.Currency = currency
	}

	now := time.Now().UTC().Format(time.RFC3339)
	lineKey := newItem.LineKey()

	if existingItem, exists := cart.Items[lineKey]; exists {
		existingItem.Quantity += newItem.Quantity
		existingItem.Price = newItem.Price
		existingItem.AppliedTier = newItem.AppliedTier
		existingItem.Subtotal = float64(existingItem.Quantity) * existingItem.Price
	} else {
		newItem.Subtotal = float64(newItem.Quantity) * newItem.Price
		newItem.AddedAt = now
		cart.Items[lineKey] = newItem
	}

	calculateCartTotals(cart)
	cart.LastUpdated = now
	cart.ExpiresAt = time.Now().Add(cartTTL).UTC().Format(time.RFC3339)

	if err := saveCartToRedis(ctx, client, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// UpdateCartItem updates the quantity of a cart line; zero removes it.
func UpdateCartItem(ctx context.Context, sessionID, lineKey string, quantity int) (*models.Cart, error) {
	client := RedisClient()
	defer client.Close()

	cart, err := GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	item, exists := cart.Items[lineKey]
	if !exists {
		return nil, fmt.Errorf("item not found in cart")
	}

	if quantity == 0 {
		delete(cart.Items, lineKey)
		itemKey := fmt.Sprintf("cart:%s:item:%s", sessionID, lineKey)
		client.Del(ctx, itemKey)
	} else {
		item.Quantity = quantity
		item.Subtotal = float64(quantity) * item.Price
	}

	calculateCartTotals(cart)
	cart.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	cart.ExpiresAt = time.Now().Add(cartTTL).UTC().Format(time.RFC3339)

	if err := saveCartToRedis(ctx, client, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// RemoveFromCart removes a line from the cart
func RemoveFromCart(ctx context.Context, sessionID, lineKey string) (*models.Cart, error) {
	return UpdateCartItem(ctx, sessionID, lineKey, 0)
}

// ClearCart removes all items from the cart
func ClearCart(ctx context.Context, sessionID string) error {
	client := RedisClient()
	defer client.Close()

	cartPattern := fmt.Sprintf("cart:%s*", sessionID)
	keys, err := client.Keys(ctx, cartPattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return client.Del(ctx, keys...).Err()
	}

	return nil
}

func createEmptyCart(sessionID string) *models.Cart {
	now := time.Now().UTC().Format(time.RFC3339)
	return &models.Cart{
		SessionID:   sessionID,
		Items:       make(map[string]*models.CartItem),
		Subtotal:    0,
		ItemCount:   0,
		LastUpdated: now,
		ExpiresAt:   time.Now().Add(cartTTL).UTC().Format(time.RFC3339),
	}
}

func calculateCartTotals(cart *models.Cart) {
	cart.Subtotal = 0
	cart.ItemCount = 0

	for _, item := range cart.Items {
		cart.Subtotal += item.Subtotal
		cart.ItemCount += item.Quantity
	}
}

func saveCartToRedis(ctx context.Context, client *redisclient.Client, cart *models.Cart) error {
	cartKey := fmt.Sprintf("cart:%s", cart.SessionID)

	cartData := map[string]interface{}{
		"currency":     cart.Currency,
		"subtotal":     fmt.Sprintf("%.2f", cart.Subtotal),
		"item_count":   fmt.Sprintf("%d", cart.ItemCount),
		"last_updated": cart.LastUpdated,
		"expires_at":   cart.ExpiresAt,
	}

	if err := client.HSet(ctx, cartKey, cartData).Err(); err != nil {
		return err
	}

	client.Expire(ctx, cartKey, cartTTL)

	for lineKey, item := range cart.Items {
		itemKey := fmt.Sprintf("cart:%s:item:%s", cart.SessionID, lineKey)
		itemData := map[string]interface{}{
			"product_id":   item.ProductID,
			"code":         item.Code,
			"product_name": item.ProductName,
			"variant_key":  item.VariantKey,
			"material":     item.Material,
			"price":        fmt.Sprintf("%.2f", item.Price),
			"applied_tier": item.AppliedTier,
			"quantity":     fmt.Sprintf("%d", item.Quantity),
			"subtotal":     fmt.Sprintf("%.2f", item.Subtotal),
			"vault_item":   strconv.FormatBool(item.VaultItem),
			"added_at":     item.AddedAt,
		}

		if err := client.HSet(ctx, itemKey, itemData).Err(); err != nil {
			return err
		}

		client.Expire(ctx, itemKey, cartTTL)
	}

	return nil
}
