// Package pricing holds the pure catalog rules: offer validity, final
// price computation, and stock arithmetic. Nothing here touches the
// database, so every rule is trivially testable.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/motordesk/backend/pkg/db/models"
	"github.com/motordesk/backend/pkg/enums"
)

var oneHundred = decimal.NewFromInt(100)

// IsOfferCurrentlyValid reports whether the offer applies right now.
// A nil ValidUntil means the offer never expires.
func IsOfferCurrentlyValid(offer models.Offer, now time.Time) bool {
	if !offer.IsActive {
		return false
	}
	if offer.ValidUntil == nil {
		return true
	}
	return offer.ValidUntil.After(now)
}

// HasUsageRemaining reports whether the offer's usage cap has room
// left. The cap is advisory: redemption is recorded elsewhere and an
// exhausted offer is surfaced, not blocked.
func HasUsageRemaining(offer models.Offer) bool {
	if offer.MaxUsage == nil {
		return true
	}
	return offer.UsedCount < *offer.MaxUsage
}

// FirstValidOffer returns the first currently-valid offer in the given
// order, or nil when none applies. Callers pass offers in creation
// order so the oldest valid offer wins.
func FirstValidOffer(offers []models.Offer, now time.Time) *models.Offer {
	for i := range offers {
		if IsOfferCurrentlyValid(offers[i], now) {
			return &offers[i]
		}
	}
	return nil
}

// ComputeFinalPrice applies the offer to the base price. Percentage
// offers subtract discount_value percent, fixed amount offers subtract
// discount_value outright, and buy-one-get-one offers leave the price
// untouched. The result never drops below zero.
func ComputeFinalPrice(basePrice decimal.Decimal, offer *models.Offer) decimal.Decimal {
	if offer == nil {
		return basePrice
	}

	var final decimal.Decimal
	switch offer.OfferType {
	case enums.OfferTypePercentage:
		discount := basePrice.Mul(offer.DiscountValue).Div(oneHundred)
		final = basePrice.Sub(discount)
	case enums.OfferTypeFixedAmount:
		final = basePrice.Sub(offer.DiscountValue)
	default:
		return basePrice
	}

	if final.IsNegative() {
		return decimal.Zero
	}
	return final.Round(2)
}

// Savings is the amount saved against the base price.
func Savings(basePrice, finalPrice decimal.Decimal) decimal.Decimal {
	savings := basePrice.Sub(finalPrice)
	if savings.IsNegative() {
		return decimal.Zero
	}
	return savings.Round(2)
}

// AvailableStock derives the sellable quantity. Stored quantities are
// taken as-is; an over-reserved vehicle simply shows zero availability.
func AvailableStock(stockQuantity, reservedQuantity int) int {
	available := stockQuantity - reservedQuantity
	if available < 0 {
		return 0
	}
	return available
}

// InventoryConsistent reports whether the stored quantities make sense
// on their own. Callers log a warning when this fails; the stored
// values are never rewritten.
func InventoryConsistent(stockQuantity, reservedQuantity int) bool {
	if stockQuantity < 0 || reservedQuantity < 0 {
		return false
	}
	return reservedQuantity <= stockQuantity
}
