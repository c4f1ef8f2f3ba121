package vehicles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/motordesk/backend/internal/pricing"
	"github.com/motordesk/backend/pkg/db"
	"github.com/motordesk/backend/pkg/db/models"
	"github.com/motordesk/backend/pkg/enums"
	pkgerrors "github.com/motordesk/backend/pkg/errors"
	"github.com/motordesk/backend/pkg/logger"
	"github.com/motordesk/backend/pkg/pagination"
)

// Service exposes catalog vehicle management operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*VehicleDTO, error)
	Update(ctx context.Context, vehicleID uuid.UUID, input UpdateInput) (*VehicleDTO, error)
	Delete(ctx context.Context, vehicleID uuid.UUID) error
	Get(ctx context.Context, vehicleID uuid.UUID) (*VehicleDTO, error)
	List(ctx context.Context, input ListInput) (*ListResult, error)
	ReplaceInventory(ctx context.Context, vehicleID uuid.UUID, input InventoryInput) (*VehicleDTO, error)
}

// CreateInput holds the validated payload to create a vehicle.
type CreateInput struct {
	Name             string
	Brand            string
	Model            string
	Year             int
	Category         enums.VehicleCategory
	Price            decimal.Decimal
	Description      *string
	Colors           []string
	StockQuantity    int
	ReservedQuantity int
	InventoryStatus  enums.InventoryStatus
	IsActive         *bool
	IsFeatured       bool
	Images           []ImageInput
}

// ImageInput describes one gallery entry; position follows input order.
// Color ties the image to one of the vehicle's color variants; nil
// means the image belongs to the shared gallery.
type ImageInput struct {
	URL       string
	AltText   *string
	Color     *string
	IsPrimary bool
}

// UpdateInput holds optional mutation values for a vehicle. Inventory
// quantities are not patched here; ReplaceInventory owns those.
type UpdateInput struct {
	Name        *string
	Brand       *string
	Model       *string
	Year        *int
	Category    *enums.VehicleCategory
	Price       *decimal.Decimal
	Description *string
	Colors      *[]string
	IsActive    *bool
	IsFeatured  *bool
	Images      *[]ImageInput
}

// InventoryInput is the full replacement set for a vehicle's inventory
// sub-record. Status is always set by staff, never derived from the
// quantities.
type InventoryInput struct {
	StockQuantity    int
	ReservedQuantity int
	Status           enums.InventoryStatus
}

type service struct {
	repo     Repository
	dbClient *db.Client
	logg     *logger.Logger
	now      func() time.Time
}

// NewService constructs a vehicle service instance.
func NewService(repo Repository, dbClient *db.Client, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vehicle repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, dbClient: dbClient, logg: logg, now: time.Now}, nil
}

// Create inserts the vehicle with its image gallery.
func (s *service) Create(ctx context.Context, input CreateInput) (*VehicleDTO, error) {
	if err := s.validateYear(input.Year); err != nil {
		return nil, err
	}
	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}
	if err := validateQuantities(input.StockQuantity, input.ReservedQuantity); err != nil {
		return nil, err
	}
	if err := validateImages(input.Images); err != nil {
		return nil, err
	}

	if !pricing.InventoryConsistent(input.StockQuantity, input.ReservedQuantity) {
		warnCtx := s.logg.WithFields(ctx, map[string]any{
			"stock_quantity":    input.StockQuantity,
			"reserved_quantity": input.ReservedQuantity,
		})
		s.logg.Warn(warnCtx, "vehicle created with reserved quantity above stock")
	}

	// New listings are live unless the caller says otherwise.
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	vehicle := &models.Vehicle{
		Name:             strings.TrimSpace(input.Name),
		Brand:            strings.TrimSpace(input.Brand),
		Model:            strings.TrimSpace(input.Model),
		Year:             input.Year,
		Category:         input.Category,
		Price:            input.Price,
		Description:      input.Description,
		Colors:           append([]string{}, input.Colors...),
		StockQuantity:    input.StockQuantity,
		ReservedQuantity: input.ReservedQuantity,
		InventoryStatus:  input.InventoryStatus,
		IsActive:         isActive,
		IsFeatured:       input.IsFeatured,
	}

	var createdID uuid.UUID
	if err := s.withTx(ctx, func(txRepo Repository) error {
		created, err := txRepo.Create(ctx, vehicle)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert vehicle")
		}
		createdID = created.ID

		if len(input.Images) > 0 {
			if err := txRepo.ReplaceImages(ctx, created.ID, buildImageRows(created.ID, input.Images)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace vehicle images")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vehicle")
	}

	return s.loadDTO(ctx, createdID)
}

// Update patches the vehicle; only provided fields change.
func (s *service) Update(ctx context.Context, vehicleID uuid.UUID, input UpdateInput) (*VehicleDTO, error) {
	if input.Year != nil {
		if err := s.validateYear(*input.Year); err != nil {
			return nil, err
		}
	}
	if input.Price != nil {
		if err := validatePrice(*input.Price); err != nil {
			return nil, err
		}
	}
	if input.Images != nil {
		if err := validateImages(*input.Images); err != nil {
			return nil, err
		}
	}

	vehicle, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}

	if err := s.withTx(ctx, func(txRepo Repository) error {
		applyUpdateToVehicle(vehicle, input)
		if _, err := txRepo.Update(ctx, vehicle); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update vehicle")
		}

		if input.Images != nil {
			if err := txRepo.ReplaceImages(ctx, vehicle.ID, buildImageRows(vehicle.ID, *input.Images)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace vehicle images")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vehicle")
	}

	return s.loadDTO(ctx, vehicle.ID)
}

// Delete removes a vehicle and relies on FK cascades for related rows.
func (s *service) Delete(ctx context.Context, vehicleID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, vehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}
	if err := s.repo.Delete(ctx, vehicleID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete vehicle")
	}
	return nil
}

func (s *service) Get(ctx context.Context, vehicleID uuid.UUID) (*VehicleDTO, error) {
	return s.loadDTO(ctx, vehicleID)
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if !input.Sort.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown sort column or direction")
	}
	rows, total, err := s.repo.List(ctx, ListQuery(input))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vehicles")
	}

	dtos := make([]VehicleDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewVehicleDTO(&rows[i])
	}
	return &ListResult{
		Vehicles: dtos,
		Page:     pagination.Build(input.Pagination, total),
	}, nil
}

// ReplaceInventory overwrites the inventory sub-record in one shot.
// Concurrent admin writes race freely; the last write wins.
func (s *service) ReplaceInventory(ctx context.Context, vehicleID uuid.UUID, input InventoryInput) (*VehicleDTO, error) {
	if err := validateQuantities(input.StockQuantity, input.ReservedQuantity); err != nil {
		return nil, err
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid inventory status")
	}

	if !pricing.InventoryConsistent(input.StockQuantity, input.ReservedQuantity) {
		warnCtx := s.logg.WithFields(ctx, map[string]any{
			"vehicle_id":        vehicleID.String(),
			"stock_quantity":    input.StockQuantity,
			"reserved_quantity": input.ReservedQuantity,
		})
		s.logg.Warn(warnCtx, "inventory stored with reserved quantity above stock")
	}

	err := s.repo.UpdateInventory(ctx, vehicleID, map[string]any{
		"stock_quantity":    input.StockQuantity,
		"reserved_quantity": input.ReservedQuantity,
		"inventory_status":  input.Status.String(),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inventory")
	}

	return s.loadDTO(ctx, vehicleID)
}

func (s *service) loadDTO(ctx context.Context, vehicleID uuid.UUID) (*VehicleDTO, error) {
	vehicle, err := s.repo.FindDetail(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle detail")
	}
	return NewVehicleDTO(vehicle), nil
}

// withTx runs fn transactionally when a db client is wired; unit tests
// stub the repository and skip the transaction.
func (s *service) withTx(ctx context.Context, fn func(txRepo Repository) error) error {
	if s.dbClient == nil {
		return fn(s.repo)
	}
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return fn(s.repo.WithTx(tx))
	})
}

func applyUpdateToVehicle(vehicle *models.Vehicle, input UpdateInput) {
	if input.Name != nil {
		vehicle.Name = strings.TrimSpace(*input.Name)
	}
	if input.Brand != nil {
		vehicle.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.Model != nil {
		vehicle.Model = strings.TrimSpace(*input.Model)
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.Category != nil {
		vehicle.Category = *input.Category
	}
	if input.Price != nil {
		vehicle.Price = *input.Price
	}
	if input.Description != nil {
		vehicle.Description = input.Description
	}
	if input.Colors != nil {
		vehicle.Colors = append([]string(nil), *input.Colors...)
	}
	if input.IsActive != nil {
		vehicle.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		vehicle.IsFeatured = *input.IsFeatured
	}
}

func buildImageRows(vehicleID uuid.UUID, images []ImageInput) []models.VehicleImage {
	rows := make([]models.VehicleImage, len(images))
	for i, image := range images {
		rows[i] = models.VehicleImage{
			VehicleID: vehicleID,
			URL:       strings.TrimSpace(image.URL),
			AltText:   image.AltText,
			Color:     image.Color,
			Position:  i,
			IsPrimary: image.IsPrimary,
		}
	}
	return rows
}

// validateYear allows model years up to two years ahead of the clock;
// manufacturers announce next-year models early.
func (s *service) validateYear(year int) error {
	maxYear := s.now().Year() + 2
	if year < 1900 || year > maxYear {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("year must be between 1900 and %d", maxYear))
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	return nil
}

func validateQuantities(stock, reserved int) error {
	if stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock_quantity must be non-negative")
	}
	if reserved < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "reserved_quantity must be non-negative")
	}
	return nil
}

// validateImages enforces at most one primary image per color variant.
// Images without a color share one bucket.
func validateImages(images []ImageInput) error {
	primaries := make(map[string]int)
	for _, image := range images {
		if strings.TrimSpace(image.URL) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "image url is required")
		}
		if !image.IsPrimary {
			continue
		}
		key := ""
		if image.Color != nil {
			key = strings.ToLower(strings.TrimSpace(*image.Color))
		}
		primaries[key]++
		if primaries[key] > 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "at most one image can be primary per color")
		}
	}
	return nil
}
