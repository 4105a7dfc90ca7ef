package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/loyalty"
	"github.com/spoilme-vintage/store-api/pkg/models"
	"github.com/spoilme-vintage/store-api/pkg/mongo"
	"github.com/spoilme-vintage/store-api/pkg/pricing"
	"github.com/spoilme-vintage/store-api/pkg/redis"
)

// Checkout converts the session cart into an order. Points redemption is
// a compare-and-swap against the live balance, so two checkouts racing on
// the same account cannot both spend the same points.
func Checkout(c *gin.Context) {
	sessionID := c.Param("sessionId")

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	ctx := c.Request.Context()

	cart, err := redis.GetCart(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get cart", nil))
		return
	}
	if len(cart.Items) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Cart is empty", []global.ValidationError{
			{Field: "cart", Message: "Cannot check out an empty cart", Code: "empty_cart"},
		}))
		return
	}

	customer, err := mongo.GetCustomerByID(ctx, req.CustomerID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = customer.Currency
	}
	if !models.ValidCurrency(currency) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Unsupported currency", []global.ValidationError{
			{Field: "currency", Message: "Currency must be ZAR or USD", Code: "invalid_currency"},
		}))
		return
	}

	orderNumber := models.GenerateOrderNumber()

	var discount float64
	if req.RedeemPoints > 0 {
		if err := loyalty.ValidateRedemption(customer.Membership, customer.LoyaltyPoints, req.RedeemPoints, engineCfg); err != nil {
			respondEngineError(c, err)
			return
		}
		discount, err = loyalty.DiscountFor(req.RedeemPoints, currency, engineCfg)
		if err != nil {
			respondEngineError(c, err)
			return
		}
	}

	// Catalog lines are re-resolved at order time so a promo that lapsed
	// while the cart sat idle cannot be charged. Vault lines keep their
	// ledger-recorded price.
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		unitPrice := line.Price
		appliedTier := line.AppliedTier
		promoActive := false
		if !line.VaultItem {
			product, err := mongo.GetProductByCode(ctx, line.Code)
			if err != nil {
				respondEngineError(c, err)
				return
			}
			quote, err := pricing.Resolve(pricing.Context{
				Product:    product,
				Currency:   currency,
				Now:        time.Now(),
				Membership: customer.Membership,
				Material:   line.Material,
			}, engineCfg)
			if err != nil {
				respondEngineError(c, err)
				return
			}
			unitPrice = quote.UnitPrice
			appliedTier = quote.AppliedTier
			promoActive = quote.IsPromoActive
		}
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			Code:        line.Code,
			Name:        line.ProductName,
			VariantKey:  line.VariantKey,
			Material:    line.Material,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
			AppliedTier: appliedTier,
			PromoActive: promoActive,
			VaultItem:   line.VaultItem,
		})
	}

	// Burn the points last thing before the order write; the CAS against
	// the live balance closes the double-spend race, and the loyalty log
	// carries the order number for reconciliation. If the order write
	// fails afterwards the burn is reversed below.
	if req.RedeemPoints > 0 {
		if err := mongo.RedeemPoints(ctx, customer.ID, req.RedeemPoints, orderNumber); err != nil {
			respondEngineError(c, err)
			return
		}
	}

	order := &models.Order{
		OrderNumber: orderNumber,
		CustomerID:  customer.ID,
		Currency:    currency,
		Status:      "pending",
		Items:       items,
		Notes:       req.Notes,
	}
	order.CalculateTotals(discount, req.RedeemPoints)

	accrued, err := loyalty.PurchasePoints(order.Totals.GrandTotal, currency, engineCfg)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	order.PointsAccrued = accrued

	order.Payment = models.PaymentInitiation{
		Processor: req.PaymentMethod,
		Amount:    order.Totals.GrandTotal,
		Currency:  currency,
		Status:    "initiated",
	}

	createdOrder, err := mongo.CreateOrder(ctx, order)
	if err != nil {
		// The points were already burned; re-credit them under the same
		// order number so a failed order write never strands a redemption.
		if req.RedeemPoints > 0 {
			if reErr := mongo.AccruePoints(ctx, mongo.LoyaltyLogEntry{
				CustomerID: customer.ID,
				Reason:     loyalty.ReasonReversal,
				Points:     req.RedeemPoints,
				OrderID:    orderNumber,
				CreatedAt:  time.Now(),
			}); reErr != nil {
				logrus.WithError(reErr).WithField("order_number", orderNumber).
					Error("failed to re-credit redeemed points after order write failure")
			}
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create order", nil))
		return
	}

	if accrued > 0 {
		err := mongo.AccruePoints(ctx, mongo.LoyaltyLogEntry{
			CustomerID: customer.ID,
			Reason:     loyalty.ReasonPurchase,
			Points:     accrued,
			OrderID:    orderNumber,
			CreatedAt:  time.Now(),
		})
		if err != nil {
			logrus.WithError(err).Error("failed to accrue purchase points")
		}
	}

	if err := mongo.UpdateOrderStats(ctx, customer.ID, order.Totals.GrandTotal); err != nil {
		logrus.WithError(err).Error("failed to update customer order stats")
	}

	if err := redis.ClearCart(ctx, sessionID); err != nil {
		logrus.WithError(err).Warn("failed to clear cart after checkout")
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(createdOrder))
}

func GetOrderByNumber(c *gin.Context) {
	orderNumber := c.Param("orderNumber")

	order, err := mongo.GetOrderByNumber(c.Request.Context(), orderNumber)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(order))
}
