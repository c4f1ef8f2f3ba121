package customers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/motordesk/backend/pkg/db/models"
)

// Repository defines persistence operations for CRM records. Purchase
// and test drive history are append-only child rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	List(ctx context.Context, query ListQuery) ([]models.Customer, int64, error)
	AddPurchase(ctx context.Context, record *models.PurchaseRecord) (*models.PurchaseRecord, error)
	AddTestDrive(ctx context.Context, drive *models.TestDrive) (*models.TestDrive, error)
	FindTestDrive(ctx context.Context, id uuid.UUID) (*models.TestDrive, error)
	UpdateTestDrive(ctx context.Context, drive *models.TestDrive) (*models.TestDrive, error)
}

// vehicleReader is the slice of the vehicle repository the customer
// service needs.
type vehicleReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
}
