package router

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/models"
	"github.com/spoilme-vintage/store-api/pkg/mongo"
)

func CreateCustomer(c *gin.Context) {
	var req models.CreateCustomerRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to process password", nil))
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = models.CurrencyZAR
	}

	customer := &models.Customer{
		Email:     req.Email,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Currency:  currency,
		Membership: models.MembershipState{
			IsMember: false,
			Tier:     models.TierNone,
		},
		LoyaltyPoints: 0,
		AccountStatus: "active",
		TotalOrders:   0,
		TotalSpent:    0.0,
	}
	customer.SetTimestamps()

	createdCustomer, err := mongo.CreateCustomer(c.Request.Context(), customer)
	if err != nil {
		if errors.Is(err, global.ErrInvalidInput) {
			c.JSON(http.StatusConflict, global.ErrorResponse("Email already registered", []global.ValidationError{
				{Field: "email", Message: "This email is already in use", Code: "duplicate_email"},
			}))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create customer", nil))
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(createdCustomer))
}

func GetCustomerByID(c *gin.Context) {
	objectID, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid customer ID format", []global.ValidationError{
			{Field: "id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	// In production this would be restricted to the customer themselves or staff.

	customer, err := mongo.GetCustomerByID(c.Request.Context(), objectID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(customer))
}

func GetCustomerOrders(c *gin.Context) {
	objectID, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid customer ID format", []global.ValidationError{
			{Field: "id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	orders, err := mongo.GetCustomerOrders(c.Request.Context(), objectID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch customer orders", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"orders": orders,
		"page":   page,
		"limit":  limit,
	}))
}

type membershipEventRequest struct {
	Tier string `json:"tier" binding:"omitempty,oneof=basic premium deluxe"`
}

// RenewMembership records a successful membership billing cycle. A renewal
// inside the grace window heals a pending lapse; otherwise the vault
// ladder's month counter restarts from scratch.
func RenewMembership(c *gin.Context) {
	objectID, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid customer ID format", []global.ValidationError{
			{Field: "id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	var req membershipEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	ctx := c.Request.Context()
	customer, err := mongo.GetCustomerByID(ctx, objectID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	membership := customer.Membership
	membership.RecordRenewal(engineCfg, time.Now())
	if req.Tier != "" {
		membership.Tier = req.Tier
	} else if membership.Tier == models.TierNone || membership.Tier == "" {
		membership.Tier = models.TierBasic
	}

	if err := mongo.UpdateMembership(ctx, objectID, membership); err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(membership))
}

// LapseMembership records a missed billing cycle or cancellation.
func LapseMembership(c *gin.Context) {
	objectID, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid customer ID format", []global.ValidationError{
			{Field: "id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	ctx := c.Request.Context()
	customer, err := mongo.GetCustomerByID(ctx, objectID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	membership := customer.Membership
	membership.RecordLapse(engineCfg, time.Now())

	if err := mongo.UpdateMembership(ctx, objectID, membership); err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(membership))
}
