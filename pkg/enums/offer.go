package enums

import (
	"fmt"
	"strings"
)

// OfferType determines how an offer affects the displayed price.
// Percentage and fixed-amount offers change the final price; a
// buy-one-get-one offer is a display-only tag.
type OfferType string

const (
	OfferTypePercentage   OfferType = "percentage"
	OfferTypeFixedAmount  OfferType = "fixed_amount"
	OfferTypeBuyOneGetOne OfferType = "buy_one_get_one"
)

func (t OfferType) String() string {
	return string(t)
}

func (t OfferType) IsValid() bool {
	switch t {
	case OfferTypePercentage, OfferTypeFixedAmount, OfferTypeBuyOneGetOne:
		return true
	}
	return false
}

// AffectsPrice reports whether the offer type changes the computed
// final price rather than only tagging the listing.
func (t OfferType) AffectsPrice() bool {
	return t == OfferTypePercentage || t == OfferTypeFixedAmount
}

func ParseOfferType(value string) (OfferType, error) {
	offerType := OfferType(strings.ToLower(strings.TrimSpace(value)))
	if !offerType.IsValid() {
		return "", fmt.Errorf("invalid offer type: %q", value)
	}
	return offerType, nil
}
