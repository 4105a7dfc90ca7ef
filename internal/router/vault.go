package router

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/models"
	"github.com/spoilme-vintage/store-api/pkg/mongo"
	"github.com/spoilme-vintage/store-api/pkg/redis"
	"github.com/spoilme-vintage/store-api/pkg/vault"
)

// GetVaultItems lists the active vault catalog. Deluxe members only; a
// lapsed deluxe account is denied, not capped.
func GetVaultItems(c *gin.Context) {
	customerID := c.MustGet("customer_id").(bson.ObjectID)
	ctx := c.Request.Context()

	customer, err := mongo.GetCustomerByID(ctx, customerID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	if !customer.Membership.IsDeluxe() {
		c.JSON(http.StatusForbidden, global.ErrorResponseWithMeta(
			"Vault access requires an active deluxe membership", nil,
			map[string]interface{}{"upsell_tier": "deluxe"}))
		return
	}

	items, err := mongo.GetActiveVaultItems(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch vault items", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(items))
}

// GetVaultStatus reports the caller's monthly cap, usage and remaining
// allowance for the current calendar month.
func GetVaultStatus(c *gin.Context) {
	customerID := c.MustGet("customer_id").(bson.ObjectID)
	ctx := c.Request.Context()

	customer, err := mongo.GetCustomerByID(ctx, customerID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	monthKey := models.MonthKey(time.Now())
	ledger, err := mongo.GetVaultLedgerEntry(ctx, customerID.Hex(), monthKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch vault ledger", nil))
		return
	}

	decision, err := vault.Check(customer.Membership, ledger.Count, engineCfg)
	if err != nil && !errors.Is(err, global.ErrLimitExceeded) {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"month_key": monthKey,
		"used":      ledger.Count,
		"cap":       decision.Cap,
		"remaining": decision.Remaining,
		"unlimited": decision.Unlimited,
		"allowed":   decision.Allowed,
	}))
}

type vaultPurchaseRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Currency  string `json:"currency" binding:"omitempty,oneof=ZAR USD"`
	// OpKey makes retries idempotent; a missing key gets a fresh one.
	OpKey string `json:"op_key"`
}

// PurchaseVaultItem records a vault purchase against the monthly ledger
// and drops the item into the session cart at the vault price. The ledger
// write is a filtered upsert, so concurrent purchases cannot push a user
// past their cap.
func PurchaseVaultItem(c *gin.Context) {
	customerID := c.MustGet("customer_id").(bson.ObjectID)

	itemID, err := bson.ObjectIDFromHex(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid vault item ID format", []global.ValidationError{
			{Field: "itemId", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	var req vaultPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	ctx := c.Request.Context()

	customer, err := mongo.GetCustomerByID(ctx, customerID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	monthKey := models.MonthKey(time.Now())
	ledger, err := mongo.GetVaultLedgerEntry(ctx, customerID.Hex(), monthKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch vault ledger", nil))
		return
	}

	decision, err := vault.Check(customer.Membership, ledger.Count, engineCfg)
	if err != nil {
		if errors.Is(err, global.ErrLimitExceeded) {
			c.JSON(http.StatusUnprocessableEntity, global.ErrorResponseWithMeta(
				"Monthly vault limit reached", nil, map[string]interface{}{
					"cap":       decision.Cap,
					"remaining": decision.Remaining,
					"month_key": monthKey,
				}))
			return
		}
		respondEngineError(c, err)
		return
	}

	item, err := mongo.GetVaultItemByID(ctx, itemID)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	if !item.IsActive {
		c.JSON(http.StatusConflict, global.ErrorResponse("Vault item is no longer active", nil))
		return
	}

	opKey := req.OpKey
	if opKey == "" {
		opKey = uuid.NewString()
	}

	if err := mongo.RecordVaultPurchase(ctx, customerID.Hex(), monthKey, itemID.Hex(), opKey, decision.Cap); err != nil {
		if errors.Is(err, global.ErrLimitExceeded) {
			c.JSON(http.StatusUnprocessableEntity, global.ErrorResponseWithMeta(
				"Monthly vault limit reached", nil, map[string]interface{}{
					"cap":       decision.Cap,
					"month_key": monthKey,
				}))
			return
		}
		respondEngineError(c, err)
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = customer.Currency
	}

	line := &models.CartItem{
		ProductID:   item.ID.Hex(),
		Code:        "VAULT-" + item.ID.Hex()[:8],
		ProductName: item.ProductName,
		Price:       item.PriceIn(currency),
		AppliedTier: models.TierDeluxe,
		Quantity:    1,
		VaultItem:   true,
	}

	cart, err := redis.AddToCart(ctx, req.SessionID, currency, line)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to add vault item to cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"cart":      cart,
		"op_key":    opKey,
		"month_key": monthKey,
		"remaining": decision.Remaining - 1,
	}))
}
