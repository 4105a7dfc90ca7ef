package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/models"
	"github.com/spoilme-vintage/store-api/pkg/mongo"
	"github.com/spoilme-vintage/store-api/pkg/pricing"
	"github.com/spoilme-vintage/store-api/pkg/redis"
)

func GetAllProducts(c *gin.Context) {
	products, err := mongo.GetPublishedProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get products", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

// GetProductByCode retrieves a product by code with Redis caching
func GetProductByCode(c *gin.Context) {
	code := c.Param("code")

	if len(code) < 3 || len(code) > 50 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product code format", []global.ValidationError{
			{Field: "code", Message: "Code must be between 3 and 50 characters", Code: "invalid_format"},
		}))
		return
	}

	ctx := c.Request.Context()

	product, err := redis.GetProductFromCache(ctx, code)
	if err == nil {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, global.SuccessResponse(product))
		return
	}

	product, err = mongo.GetProductByCode(ctx, code)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	if cacheErr := redis.CacheSingleProduct(ctx, product); cacheErr != nil {
		logrus.WithError(cacheErr).Warn("failed to cache product in Redis")
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

func GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")
	ctx := c.Request.Context()

	product, err := redis.GetProductBySlugFromCache(ctx, slug)
	if err == nil {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, global.SuccessResponse(product))
		return
	}

	product, err = mongo.GetProductBySlug(ctx, slug)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	if cacheErr := redis.CacheSingleProduct(ctx, product); cacheErr != nil {
		logrus.WithError(cacheErr).Warn("failed to cache product in Redis")
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

// GetProductQuote resolves the live price for a product as one viewer
// sees it: currency, membership tier and material option all factor in.
func GetProductQuote(c *gin.Context) {
	code := c.Param("code")
	ctx := c.Request.Context()

	product, err := mongo.GetProductByCode(ctx, code)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	currency := c.DefaultQuery("currency", models.CurrencyZAR)
	material := c.Query("material")

	var membership models.MembershipState
	if customerID := c.Query("customer_id"); customerID != "" {
		objectID, err := bson.ObjectIDFromHex(customerID)
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
		Material:   material,
	}, engineCfg)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(quote))
}

func CreateNewProducts(c *gin.Context) {
	var req []models.CreateProductRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	if len(req) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("No products provided", []global.ValidationError{
			{Field: "products", Message: "At least one product is required", Code: "empty_array"},
		}))
		return
	}

	ctx := c.Request.Context()

	products := make([]*models.Product, len(req))
	for i := range req {
		seq, err := mongo.NextProductSequence(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to allocate product code", nil))
			return
		}
		products[i] = req[i].ToProduct(seq)
	}

	createdProducts, err := mongo.CreateProducts(ctx, products)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create products", nil))
		return
	}

	if err := redis.AddProductsToCache(ctx, createdProducts); err != nil {
		logrus.WithError(err).Warn("failed to cache products in Redis")
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(map[string]interface{}{
		"products": createdProducts,
		"count":    len(createdProducts),
	}))
}

// EditProductByCode updates specific fields of a product by code
func EditProductByCode(c *gin.Context) {
	code := c.Param("code")
	ctx := c.Request.Context()

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid JSON format", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}

	// Immutable fields are silently dropped rather than rejected.
	immutableFields := []string{"_id", "id", "code", "slug", "created_at"}
	for _, field := range immutableFields {
		delete(updates, field)
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("No valid updates provided", []global.ValidationError{
			{Field: "body", Message: "Request body must contain at least one mutable field", Code: "empty_updates"},
		}))
		return
	}

	updatedProduct, err := mongo.UpdateProductByCode(ctx, code, updates)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	if cacheErr := redis.CacheSingleProduct(ctx, updatedProduct); cacheErr != nil {
		logrus.WithError(cacheErr).Warn("failed to refresh product cache in Redis")
	}

	c.Header("X-Cache", "REFRESHED")
	c.JSON(http.StatusOK, global.SuccessResponse(updatedProduct))
}

// DeleteProductByCode deletes a product from both database and cache
func DeleteProductByCode(c *gin.Context) {
	code := c.Param("code")
	ctx := c.Request.Context()

	deletedProduct, err := mongo.DeleteProductByCode(ctx, code)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	if cacheErr := redis.RemoveProductFromCache(ctx, deletedProduct); cacheErr != nil {
		logrus.WithError(cacheErr).Warn("failed to remove product from Redis cache")
	}

	c.Header("X-Cache", "DELETED")
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"deleted_product": deletedProduct,
		"message":         "Product successfully deleted",
	}))
}
