package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/spoilme-vintage/store-api/pkg/config"
	"github.com/spoilme-vintage/store-api/pkg/global"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engineCfg = config.Default()

	r := gin.New()
	return r
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) global.APIResponse {
	t.Helper()
	var resp global.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	return resp
}

func TestCustomerMiddlewareMissingID(t *testing.T) {
	r := newTestRouter(t)
	r.GET("/guarded", CustomerMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	resp := decodeResponse(t, w)
	if resp.Success {
		t.Error("expected success=false")
	}
	if len(resp.Errors) == 0 || resp.Errors[0].Field != "customer_id" {
		t.Errorf("expected customer_id validation error, got %+v", resp.Errors)
	}
}

func TestCustomerMiddlewareMalformedID(t *testing.T) {
	r := newTestRouter(t)
	r.GET("/guarded", CustomerMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded?customer_id=not-an-objectid", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCustomerMiddlewarePassesValidID(t *testing.T) {
	r := newTestRouter(t)
	var sawID bool
	r.GET("/guarded", CustomerMiddleware(), func(c *gin.Context) {
		_, sawID = c.Get("customer_id")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded?customer_id=65faf1d34cbb1a7f0c6d2a19", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !sawID {
		t.Error("customer_id was not set on the context")
	}
}

func TestGetProductByCodeRejectsShortCode(t *testing.T) {
	r := newTestRouter(t)
	r.GET("/products/:code", GetProductByCode)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/ab", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAddToCartRejectsInvalidBody(t *testing.T) {
	r := newTestRouter(t)
	r.POST("/cart/:sessionId/items", AddToCart)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/sess-1/items",
		strings.NewReader(`{"quantity": 0}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestEntitlementDenialUpsellTier(t *testing.T) {
	r := newTestRouter(t)
	deny := func(c *gin.Context) {
		respondEngineError(c, fmt.Errorf("%w: gated", global.ErrEntitlementDenied))
	}
	r.GET("/api/vault/", deny)
	r.GET("/api/loyalty/redemption-preview", deny)

	cases := []struct {
		path string
		tier string
	}{
		{"/api/vault/", "deluxe"},
		{"/api/loyalty/redemption-preview", "basic"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("%s: status = %d, want %d", tc.path, w.Code, http.StatusForbidden)
		}
		resp := decodeResponse(t, w)
		if got := resp.Meta["upsell_tier"]; got != tc.tier {
			t.Errorf("%s: upsell_tier = %v, want %q", tc.path, got, tc.tier)
		}
	}
}

func TestPurchaseVaultItemRejectsMalformedItemID(t *testing.T) {
	r := newTestRouter(t)
	r.POST("/vault/:itemId/purchase", CustomerMiddleware(), PurchaseVaultItem)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/vault/bogus/purchase?customer_id=65faf1d34cbb1a7f0c6d2a19",
		strings.NewReader(`{"session_id":"sess-1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
