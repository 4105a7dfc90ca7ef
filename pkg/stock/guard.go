package stock

import (
	"fmt"

	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/models"
)

// CanAddUnit decides whether one more unit of the product (and exact
// variant, for ring sizes) may join the cart. A nil return means allowed.
//
// "Select a size" is a distinct condition from "out of stock": ring
// products with no selected or unknown size return ErrSizeNotSelected so
// the UI can prompt instead of showing a stock message. The admin
// sold-out override beats any numeric stock.
func CanAddUnit(p *models.Product, variantKey string, quantityAlreadyInCart int) error {
	if p == nil {
		return fmt.Errorf("%w: product is required", global.ErrInvalidInput)
	}
	if quantityAlreadyInCart < 0 {
		return fmt.Errorf("%w: negative cart quantity", global.ErrInvalidInput)
	}
	if p.SoldOut {
		return fmt.Errorf("%w: %s is marked sold out", global.ErrOutOfStock, p.Code)
	}

	available := p.Stock
	if p.IsRing() {
		if variantKey == "" {
			return fmt.Errorf("%w: ring size required for %s", global.ErrSizeNotSelected, p.Code)
		}
		qty, ok := p.RingStock[variantKey]
		if !ok {
			return fmt.Errorf("%w: size %q not offered for %s", global.ErrSizeNotSelected, variantKey, p.Code)
		}
		available = qty
	}

	if quantityAlreadyInCart >= available {
		return fmt.Errorf("%w: %s has %d available", global.ErrOutOfStock, p.Code, available)
	}
	return nil
}
