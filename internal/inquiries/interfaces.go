package inquiries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/motordesk/backend/pkg/db/models"
)

// Repository defines persistence operations for the inquiry queue.
// Responses are an append-only thread under the parent inquiry.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, inquiry *models.Inquiry) (*models.Inquiry, error)
	Update(ctx context.Context, inquiry *models.Inquiry) (*models.Inquiry, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Inquiry, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*models.Inquiry, error)
	List(ctx context.Context, query ListQuery) ([]models.Inquiry, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddResponse(ctx context.Context, response *models.InquiryResponse) (*models.InquiryResponse, error)
	CountOpen(ctx context.Context) (int64, error)
}

// vehicleReader is the slice of the vehicle repository the inquiry
// service needs to verify listing references.
type vehicleReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
}
