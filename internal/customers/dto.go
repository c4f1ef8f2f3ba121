package customers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motordesk/backend/pkg/db/models"
)

// CustomerDTO is the CRM payload returned to staff clients.
type CustomerDTO struct {
	ID            uuid.UUID       `json:"id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Email         string          `json:"email"`
	Phone         *string         `json:"phone,omitempty"`
	Address       *string         `json:"address,omitempty"`
	Preferences   []string        `json:"preferences"`
	Purchases     []PurchaseDTO   `json:"purchases,omitempty"`
	TestDrives    []TestDriveDTO  `json:"test_drives,omitempty"`
	PurchaseCount int             `json:"purchase_count"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// PurchaseDTO is one completed sale in the history.
type PurchaseDTO struct {
	ID          uuid.UUID       `json:"id"`
	VehicleID   uuid.UUID       `json:"vehicle_id"`
	OfferID     *uuid.UUID      `json:"offer_id,omitempty"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	PurchasedAt time.Time       `json:"purchased_at"`
	Notes       *string         `json:"notes,omitempty"`
}

// TestDriveDTO is one appointment in the history.
type TestDriveDTO struct {
	ID          uuid.UUID `json:"id"`
	VehicleID   uuid.UUID `json:"vehicle_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	Notes       *string   `json:"notes,omitempty"`
}

// NewCustomerDTO builds a DTO from the persisted model, summing the
// purchase history into the headline stats.
func NewCustomerDTO(customer *models.Customer) *CustomerDTO {
	dto := &CustomerDTO{
		ID:          customer.ID,
		FirstName:   customer.FirstName,
		LastName:    customer.LastName,
		Email:       customer.Email,
		Phone:       customer.Phone,
		Address:     customer.Address,
		Preferences: append([]string{}, customer.Preferences...),
		TotalSpent:  decimal.Zero,
		CreatedAt:   customer.CreatedAt,
		UpdatedAt:   customer.UpdatedAt,
	}

	if len(customer.Purchases) > 0 {
		dto.Purchases = make([]PurchaseDTO, len(customer.Purchases))
		for i, record := range customer.Purchases {
			dto.Purchases[i] = PurchaseDTO{
				ID:          record.ID,
				VehicleID:   record.VehicleID,
				OfferID:     record.OfferID,
				SalePrice:   record.SalePrice,
				PurchasedAt: record.PurchasedAt,
				Notes:       record.Notes,
			}
			dto.TotalSpent = dto.TotalSpent.Add(record.SalePrice)
		}
	}
	dto.PurchaseCount = len(customer.Purchases)

	if len(customer.TestDrives) > 0 {
		dto.TestDrives = make([]TestDriveDTO, len(customer.TestDrives))
		for i, drive := range customer.TestDrives {
			dto.TestDrives[i] = TestDriveDTO{
				ID:          drive.ID,
				VehicleID:   drive.VehicleID,
				ScheduledAt: drive.ScheduledAt,
				Status:      drive.Status.String(),
				Notes:       drive.Notes,
			}
		}
	}

	return dto
}

// NewTestDriveDTO builds the appointment payload.
func NewTestDriveDTO(drive *models.TestDrive) *TestDriveDTO {
	return &TestDriveDTO{
		ID:          drive.ID,
		VehicleID:   drive.VehicleID,
		ScheduledAt: drive.ScheduledAt,
		Status:      drive.Status.String(),
		Notes:       drive.Notes,
	}
}
