package router

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/loyalty"
	"github.com/spoilme-vintage/store-api/pkg/models"
	"github.com/spoilme-vintage/store-api/pkg/mongo"
	"github.com/spoilme-vintage/store-api/pkg/redis"
)

func GetLoyaltyBalance(c *gin.Context) {
	customerID := c.MustGet("customer_id").(bson.ObjectID)

	customer, err := mongo.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"balance":      customer.LoyaltyPoints,
		"is_member":    customer.Membership.IsMember,
		"tier":         customer.Membership.Tier,
		"block_points": engineCfg.RedeemBlockPoints,
	}))
}

// PreviewRedemption answers "what would these points be worth at
// checkout" without spending anything. Leaving points unset previews the
// maximum the account can redeem right now.
func PreviewRedemption(c *gin.Context) {
	customerID := c.MustGet("customer_id").(bson.ObjectID)
	ctx := c.Request.Context()

	customer, err := mongo.GetCustomerByID(ctx, customerID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	currency := c.DefaultQuery("currency", customer.Currency)
	if currency == "" {
		currency = models.CurrencyZAR
	}

	requested := customer.LoyaltyPoints
	if pointsStr := c.Query("points"); pointsStr != "" {
		requested, err = strconv.Atoi(pointsStr)
		if err != nil || requested < 0 {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid points value", []global.ValidationError{
				{Field: "points", Message: "Must be a non-negative integer", Code: "invalid_format"},
			}))
			return
		}
	}

	redeemable, err := loyalty.MaxRedeemable(customer.Membership, customer.LoyaltyPoints, requested, engineCfg)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	discount, err := loyalty.DiscountFor(redeemable, currency, engineCfg)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"balance":    customer.LoyaltyPoints,
		"redeemable": redeemable,
		"discount":   discount,
		"currency":   currency,
	}))
}

type shareBonusRequest struct {
	ProductCode string `json:"product_code" binding:"required"`
}

// ClaimShareBonus awards the social-share bonus, at most once per product
// inside the cooldown window. The Redis claim is atomic, so double-taps
// and racing tabs cannot double-award.
func ClaimShareBonus(c *gin.Context) {
	customerID := c.MustGet("customer_id").(bson.ObjectID)

	var req shareBonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	ctx := c.Request.Context()

	if _, err := mongo.GetProductByCode(ctx, req.ProductCode); err != nil {
		respondEngineError(c, err)
		return
	}

	cooldown := time.Duration(engineCfg.ShareCooldownMinutes) * time.Minute
	if err := redis.ClaimShareBonus(ctx, customerID.Hex(), req.ProductCode, cooldown); err != nil {
		if errors.Is(err, global.ErrAlreadyClaimed) {
			remaining, ttlErr := redis.ShareCooldownRemaining(ctx, customerID.Hex(), req.ProductCode)
			meta := map[string]interface{}{}
			if ttlErr == nil {
				meta["retry_after_seconds"] = int(remaining.Seconds())
			}
			c.JSON(http.StatusTooManyRequests, global.ErrorResponseWithMeta(
				"Share bonus already claimed for this product", nil, meta))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to claim share bonus", nil))
		return
	}

	points := loyalty.SharePoints(engineCfg)
	err := mongo.AccruePoints(ctx, mongo.LoyaltyLogEntry{
		CustomerID: customerID,
		Reason:     loyalty.ReasonShare,
		Points:     points,
		ProductID:  req.ProductCode,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to award share bonus", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"points_awarded":   points,
		"cooldown_minutes": engineCfg.ShareCooldownMinutes,
	}))
}
