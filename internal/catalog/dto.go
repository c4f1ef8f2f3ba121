package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/motordesk/backend/internal/offers"
	"github.com/motordesk/backend/internal/pricing"
	"github.com/motordesk/backend/internal/vehicles"
	"github.com/motordesk/backend/pkg/db/models"
)

// StorefrontVehicle is a catalog listing with the winning offer
// applied. FinalPrice equals the base price when no offer prices the
// listing; buy-one-get-one offers surface as a promo tag only.
type StorefrontVehicle struct {
	vehicles.VehicleDTO
	FinalPrice  decimal.Decimal  `json:"final_price"`
	Savings     decimal.Decimal  `json:"savings"`
	ActiveOffer *offers.OfferDTO `json:"active_offer,omitempty"`
	PromoTag    *string          `json:"promo_tag,omitempty"`
}

// OfferHighlight is an offer enriched with its listing. VehicleName is
// nil when the listing has since been removed.
type OfferHighlight struct {
	offers.OfferDTO
	VehicleName *string          `json:"vehicle_name,omitempty"`
	FinalPrice  *decimal.Decimal `json:"final_price,omitempty"`
}

// Snapshot is the cached public storefront payload.
type Snapshot struct {
	Vehicles         []StorefrontVehicle `json:"vehicles"`
	FeaturedVehicles []StorefrontVehicle `json:"featured_vehicles"`
	FeaturedOffers   []OfferHighlight    `json:"featured_offers"`
	GeneratedAt      time.Time           `json:"generated_at"`
}

// NewStorefrontVehicle prices a listing against its offers. Offers are
// expected in creation order; the first currently valid one wins.
func NewStorefrontVehicle(vehicle *models.Vehicle, vehicleOffers []models.Offer, now time.Time) *StorefrontVehicle {
	entry := &StorefrontVehicle{
		VehicleDTO: *vehicles.NewVehicleDTO(vehicle),
		FinalPrice: vehicle.Price.Round(2),
		Savings:    decimal.Zero,
	}

	winner := pricing.FirstValidOffer(vehicleOffers, now)
	if winner == nil {
		return entry
	}

	entry.ActiveOffer = offers.NewOfferDTO(winner, now)
	entry.FinalPrice = pricing.ComputeFinalPrice(vehicle.Price, winner)
	entry.Savings = pricing.Savings(vehicle.Price, entry.FinalPrice)
	if !winner.OfferType.AffectsPrice() {
		tag := winner.Title
		entry.PromoTag = &tag
	}
	return entry
}
