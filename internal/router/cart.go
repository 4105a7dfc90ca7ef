package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/models"
	"github.com/spoilme-vintage/store-api/pkg/mongo"
	"github.com/spoilme-vintage/store-api/pkg/pricing"
	"github.com/spoilme-vintage/store-api/pkg/redis"
	"github.com/spoilme-vintage/store-api/pkg/stock"
)

func GetCart(c *gin.Context) {
	sessionID := c.Param("sessionId")

	cart, err := redis.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

// AddToCart guards stock, resolves the live price and appends the line.
// The resolved unit price is frozen on the line; checkout charges what
// the cart shows.
func AddToCart(c *gin.Context) {
	sessionID := c.Param("sessionId")

	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	ctx := c.Request.Context()

	product, err := mongo.GetProductByCode(ctx, req.Code)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	cart, err := redis.GetCart(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get cart", nil))
		return
	}

	// Guard one unit at a time so the in-cart quantity counts against
	// available stock.
	inCart := cart.QuantityOf(req.Code, req.VariantKey)
	for i := 0; i < req.Quantity; i++ {
		if err := stock.CanAddUnit(product, req.VariantKey, inCart+i); err != nil {
			respondEngineError(c, err)
			return
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = models.CurrencyZAR
	}

	var membership models.MembershipState
	if req.CustomerID != "" {
		objectID, err := bson.ObjectIDFromHex(req.CustomerID)
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid customer ID format", []global.ValidationError{
				{Field: "customer_id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
			}))
			return
		}
		customer, err := mongo.GetCustomerByID(ctx, objectID)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		membership = customer.Membership
	}

	quote, err := pricing.Resolve(pricing.Context{
		Product:    product,
		Currency:   currency,
		Now:        time.Now(),
		Membership: membership,
		Material:   req.Material,
	}, engineCfg)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	item := &models.CartItem{
		ProductID:   product.ID.Hex(),
		Code:        product.Code,
		ProductName: product.Name,
		VariantKey:  req.VariantKey,
		Material:    req.Material,
		Price:       quote.UnitPrice,
		AppliedTier: quote.AppliedTier,
		Quantity:    req.Quantity,
	}

	cart, err = redis.AddToCart(ctx, sessionID, currency, item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to add item to cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func UpdateCartItem(c *gin.Context) {
	sessionID := c.Param("sessionId")
	lineKey := c.Param("lineKey")

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	ctx := c.Request.Context()

	// Raising the quantity re-runs the stock guard for the extra units.
	if req.Quantity > 0 {
		cart, err := redis.GetCart(ctx, sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get cart", nil))
			return
		}
		if item, exists := cart.Items[lineKey]; exists && req.Quantity > item.Quantity {
			product, err := mongo.GetProductByCode(ctx, item.Code)
			if err != nil {
				respondEngineError(c, err)
				return
			}
			inCart := cart.QuantityOf(item.Code, item.VariantKey)
			for extra := 0; extra < req.Quantity-item.Quantity; extra++ {
				if err := stock.CanAddUnit(product, item.VariantKey, inCart+extra); err != nil {
					respondEngineError(c, err)
					return
				}
			}
		}
	}

	cart, err := redis.UpdateCartItem(ctx, sessionID, lineKey, req.Quantity)
	if err != nil {
		if err.Error() == "item not found in cart" {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Item not found in cart", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update cart item", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func RemoveFromCart(c *gin.Context) {
	sessionID := c.Param("sessionId")
	lineKey := c.Param("lineKey")

	cart, err := redis.RemoveFromCart(c.Request.Context(), sessionID, lineKey)
	if err != nil {
		if err.Error() == "item not found in cart" {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Item not found in cart", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to remove cart item", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func ClearCart(c *gin.Context) {
	sessionID := c.Param("sessionId")

	if err := redis.ClearCart(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to clear cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"message": "Cart cleared"}))
}
