package vehicles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/motordesk/backend/pkg/db/models"
)

// Repository defines persistence operations for the vehicle catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	Update(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	List(ctx context.Context, query ListQuery) ([]models.Vehicle, int64, error)
	ListFeatured(ctx context.Context, limit int) ([]models.Vehicle, error)
	ListAll(ctx context.Context) ([]models.Vehicle, error)
	ReplaceImages(ctx context.Context, vehicleID uuid.UUID, images []models.VehicleImage) error
	UpdateInventory(ctx context.Context, id uuid.UUID, updates map[string]any) error
}
