package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/loyalty"
	"github.com/spoilme-vintage/store-api/pkg/models"
	"github.com/spoilme-vintage/store-api/pkg/mongo"
)

func GetProductReviews(c *gin.Context) {
	code := c.Param("code")
	ctx := c.Request.Context()

	product, err := mongo.GetProductByCode(ctx, code)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	reviews, err := mongo.GetProductReviews(ctx, product.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch reviews", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(reviews))
}

type createReviewRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	Rating     int    `json:"rating" binding:"required,gte=1,lte=5"`
	Title      string `json:"title" binding:"required,min=2,max=200"`
	Comment    string `json:"comment" binding:"max=2000"`
}

// CreateProductReview stores a review, once per customer per product.
// A prior purchase marks the review verified, and only verified reviews
// earn the loyalty bonus.
func CreateProductReview(c *gin.Context) {
	code := c.Param("code")

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	customerID, err := bson.ObjectIDFromHex(req.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid customer ID format", []global.ValidationError{
			{Field: "customer_id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	ctx := c.Request.Context()

	product, err := mongo.GetProductByCode(ctx, code)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	if _, err := mongo.GetCustomerByID(ctx, customerID); err != nil {
		respondEngineError(c, err)
		return
	}

	alreadyReviewed, err := mongo.HasReviewed(ctx, customerID, product.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to check existing reviews", nil))
		return
	}
	if alreadyReviewed {
		c.JSON(http.StatusConflict, global.ErrorResponse("Product already reviewed by this customer", nil))
		return
	}

	verified, err := mongo.HasPurchased(ctx, customerID, product.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to verify purchase history", nil))
		return
	}

	points := loyalty.ReviewAward(verified, engineCfg)
	review := &models.Review{
		ProductID:        product.ID,
		CustomerID:       customerID,
		Rating:           req.Rating,
		Title:            req.Title,
		Comment:          req.Comment,
		VerifiedPurchase: verified,
		PointsAwarded:    points,
	}

	createdReview, err := mongo.CreateReview(ctx, review)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create review", nil))
		return
	}

	if points > 0 {
		if err := mongo.AccruePoints(ctx, mongo.LoyaltyLogEntry{
			CustomerID: customerID,
			Reason:     loyalty.ReasonReview,
			Points:     points,
			ProductID:  product.Code,
			CreatedAt:  time.Now(),
		}); err != nil {
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to award review bonus", nil))
			return
		}
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(createdReview))
}
