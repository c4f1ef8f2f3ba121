package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Customer is a CRM record. Purchases and test drives live in
// append-only child tables so concurrent appends never clobber the
// parent row.
type Customer struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName   string           `gorm:"column:first_name;not null"`
	LastName    string           `gorm:"column:last_name;not null"`
	Email       string           `gorm:"column:email;not null;uniqueIndex:idx_customers_email"`
	Phone       *string          `gorm:"column:phone"`
	Address     *string          `gorm:"column:address"`
	Preferences pq.StringArray   `gorm:"column:preferences;type:text[];not null;default:ARRAY[]::text[]"`
	Purchases   []PurchaseRecord `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	TestDrives  []TestDrive      `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
