package vehicles

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motordesk/backend/internal/pricing"
	"github.com/motordesk/backend/pkg/db/models"
)

// VehicleDTO is the catalog listing payload returned to clients.
// AvailableStock is derived on read; the stored quantities are exposed
// untouched alongside it.
type VehicleDTO struct {
	ID               uuid.UUID         `json:"id"`
	Name             string            `json:"name"`
	Brand            string            `json:"brand"`
	Model            string            `json:"model"`
	Year             int               `json:"year"`
	Category         string            `json:"category"`
	Price            decimal.Decimal   `json:"price"`
	Description      *string           `json:"description,omitempty"`
	Colors           []string          `json:"colors"`
	StockQuantity    int               `json:"stock_quantity"`
	ReservedQuantity int               `json:"reserved_quantity"`
	AvailableStock   int               `json:"available_stock"`
	InventoryStatus  string            `json:"inventory_status"`
	IsActive         bool              `json:"is_active"`
	IsFeatured       bool              `json:"is_featured"`
	Images           []VehicleImageDTO `json:"images,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// VehicleImageDTO captures one gallery entry.
type VehicleImageDTO struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	AltText   *string   `json:"alt_text,omitempty"`
	Color     *string   `json:"color,omitempty"`
	Position  int       `json:"position"`
	IsPrimary bool      `json:"is_primary"`
}

// NewVehicleDTO builds a DTO from the persisted model.
func NewVehicleDTO(vehicle *models.Vehicle) *VehicleDTO {
	dto := &VehicleDTO{
		ID:               vehicle.ID,
		Name:             vehicle.Name,
		Brand:            vehicle.Brand,
		Model:            vehicle.Model,
		Year:             vehicle.Year,
		Category:         vehicle.Category.String(),
		Price:            vehicle.Price,
		Description:      vehicle.Description,
		Colors:           append([]string{}, vehicle.Colors...),
		StockQuantity:    vehicle.StockQuantity,
		ReservedQuantity: vehicle.ReservedQuantity,
		AvailableStock:   pricing.AvailableStock(vehicle.StockQuantity, vehicle.ReservedQuantity),
		InventoryStatus:  vehicle.InventoryStatus.String(),
		IsActive:         vehicle.IsActive,
		IsFeatured:       vehicle.IsFeatured,
		CreatedAt:        vehicle.CreatedAt,
		UpdatedAt:        vehicle.UpdatedAt,
	}

	if len(vehicle.Images) > 0 {
		dto.Images = make([]VehicleImageDTO, len(vehicle.Images))
		for i, image := range vehicle.Images {
			dto.Images[i] = VehicleImageDTO{
				ID:        image.ID,
				URL:       image.URL,
				AltText:   image.AltText,
				Color:     image.Color,
				Position:  image.Position,
				IsPrimary: image.IsPrimary,
			}
		}
	}

	return dto
}
