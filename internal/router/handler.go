package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/models"
	"github.com/spoilme-vintage/store-api/pkg/mongo"
)

// upsellTier picks the membership tier to suggest when an entitlement
// gate denies a request. The vault requires deluxe; the loyalty caps are
// lifted by any paid tier, so those denials suggest basic.
func upsellTier(c *gin.Context) string {
	if strings.HasPrefix(c.FullPath(), "/api/vault") {
		return models.TierDeluxe
	}
	return models.TierBasic
}

func HealthCheck(c *gin.Context) {
	db := mongo.GetDatabase()
	if err := db.Client().Ping(c, nil); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Database connection failed", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK", "database": "Connected"}))
}

// respondEngineError maps the engine's sentinel errors onto HTTP statuses.
// Unknown errors are logged and surfaced as a 500 without internals.
func respondEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, global.ErrNotFound):
		c.JSON(http.StatusNotFound, global.ErrorResponse(err.Error(), nil))
	case errors.Is(err, global.ErrInvalidInput), errors.Is(err, global.ErrInvalidCurrency):
		c.JSON(http.StatusBadRequest, global.ErrorResponse(err.Error(), nil))
	case errors.Is(err, global.ErrEntitlementDenied):
		c.JSON(http.StatusForbidden, global.ErrorResponseWithMeta(err.Error(), nil,
			map[string]interface{}{"upsell_tier": upsellTier(c)}))
	case errors.Is(err, global.ErrLimitExceeded), errors.Is(err, global.ErrInsufficientPoints):
		c.JSON(http.StatusUnprocessableEntity, global.ErrorResponse(err.Error(), nil))
	case errors.Is(err, global.ErrSizeNotSelected), errors.Is(err, global.ErrOutOfStock):
		c.JSON(http.StatusConflict, global.ErrorResponse(err.Error(), nil))
	case errors.Is(err, global.ErrAlreadyClaimed):
		c.JSON(http.StatusTooManyRequests, global.ErrorResponse(err.Error(), nil))
	case errors.Is(err, global.ErrConcurrencyConflict):
		c.JSON(http.StatusConflict, global.ErrorResponse(err.Error(), nil))
	default:
		logrus.WithError(err).Error("unhandled engine error")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Internal server error", nil))
	}
}
