package stock

import (
	"errors"
	"testing"

	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/models"
)

func TestScalarStock(t *testing.T) {
	p := &models.Product{Code: "SPV-020", Type: "Stud", Stock: 3}

	if err := CanAddUnit(p, "", 2); err != nil {
		t.Errorf("2 of 3 in cart should allow one more: %v", err)
	}
	if err := CanAddUnit(p, "", 3); !errors.Is(err, global.ErrOutOfStock) {
		t.Errorf("cart at stock level: expected ErrOutOfStock, got %v", err)
	}
}

func TestRingSizeSelection(t *testing.T) {
	p := &models.Product{
		Code:      "SPV-021",
		Type:      "Ring",
		Stock:     10, // scalar stock is ignored for rings
		RingStock: models.RingStock{"6": 2, "7": 0},
	}

	if err := CanAddUnit(p, "", 0); !errors.Is(err, global.ErrSizeNotSelected) {
		t.Errorf("no size selected: expected ErrSizeNotSelected, got %v", err)
	}
	if err := CanAddUnit(p, "9", 0); !errors.Is(err, global.ErrSizeNotSelected) {
		t.Errorf("unknown size: expected ErrSizeNotSelected, got %v", err)
	}
	if err := CanAddUnit(p, "6", 1); err != nil {
		t.Errorf("size 6 has stock: %v", err)
	}
	if err := CanAddUnit(p, "6", 2); !errors.Is(err, global.ErrOutOfStock) {
		t.Errorf("size 6 exhausted in cart: expected ErrOutOfStock, got %v", err)
	}
	if err := CanAddUnit(p, "7", 0); !errors.Is(err, global.ErrOutOfStock) {
		t.Errorf("size 7 has zero stock: expected ErrOutOfStock, got %v", err)
	}
}

func TestSoldOutOverrideWins(t *testing.T) {
	p := &models.Product{Code: "SPV-022", Type: "Stud", Stock: 50, SoldOut: true}
	if err := CanAddUnit(p, "", 0); !errors.Is(err, global.ErrOutOfStock) {
		t.Errorf("sold-out override: expected ErrOutOfStock, got %v", err)
	}
}

func TestGuardInputValidation(t *testing.T) {
	if err := CanAddUnit(nil, "", 0); !errors.Is(err, global.ErrInvalidInput) {
		t.Errorf("nil product: got %v", err)
	}
	p := &models.Product{Code: "SPV-023", Stock: 1}
	if err := CanAddUnit(p, "", -1); !errors.Is(err, global.ErrInvalidInput) {
		t.Errorf("negative quantity: got %v", err)
	}
}
