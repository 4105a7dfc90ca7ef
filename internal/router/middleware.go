package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/spoilme-vintage/store-api/pkg/global"
)

// CustomerMiddleware requires a customer_id query parameter and parses it,
// so the vault and loyalty handlers always act on a known account.
func CustomerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.Request.URL.Query().Get("customer_id")
		if customerID == "" {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("customer_id query parameter required", []global.ValidationError{
				{Field: "customer_id", Message: "customer_id query parameter is required", Code: "required"},
			}))
			c.Abort()
			return
		}

		objectID, err := bson.ObjectIDFromHex(customerID)
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid customer ID format", []global.ValidationError{
				{Field: "customer_id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
			}))
			c.Abort()
			return
		}

		c.Set("customer_id", objectID)
		c.Next()
	}
}
