package offers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/motordesk/backend/pkg/db/models"
)

// Repository defines persistence operations for vehicle offers.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, offer *models.Offer) (*models.Offer, error)
	Update(ctx context.Context, offer *models.Offer) (*models.Offer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Offer, error)
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]models.Offer, error)
	List(ctx context.Context, query ListQuery) ([]models.Offer, int64, error)
	ListAll(ctx context.Context) ([]models.Offer, error)
	IncrementUsage(ctx context.Context, id uuid.UUID) error
	DeactivateExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// vehicleReader is the slice of the vehicle repository the offer
// service needs.
type vehicleReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
}
