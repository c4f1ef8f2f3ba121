package customers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/motordesk/backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a customer repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *repository) Update(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Save(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Customer{}).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindDetail loads the customer with purchase and test drive history.
func (r *repository) FindDetail(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Preload("Purchases", func(db *gorm.DB) *gorm.DB {
			return db.Order("purchased_at DESC")
		}).
		Preload("TestDrives", func(db *gorm.DB) *gorm.DB {
			return db.Order("scheduled_at DESC")
		}).
		First(&customer, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&customer).
		Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]models.Customer, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Customer{})
	if query.Filters.Search != nil {
		needle := "%" + strings.ToLower(strings.TrimSpace(*query.Filters.Search)) + "%"
		base = base.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", needle, needle, needle)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := query.Pagination.Normalize()
	var rows []models.Customer
	err := base.
		Order("created_at ASC").
		Offset(query.Pagination.Offset()).
		Limit(params.PageSize).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) AddPurchase(ctx context.Context, record *models.PurchaseRecord) (*models.PurchaseRecord, error) {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *repository) AddTestDrive(ctx context.Context, drive *models.TestDrive) (*models.TestDrive, error) {
	if err := r.db.WithContext(ctx).Create(drive).Error; err != nil {
		return nil, err
	}
	return drive, nil
}

func (r *repository) FindTestDrive(ctx context.Context, id uuid.UUID) (*models.TestDrive, error) {
	var drive models.TestDrive
	if err := r.db.WithContext(ctx).First(&drive, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &drive, nil
}

func (r *repository) UpdateTestDrive(ctx context.Context, drive *models.TestDrive) (*models.TestDrive, error) {
	if err := r.db.WithContext(ctx).Save(drive).Error; err != nil {
		return nil, err
	}
	return drive, nil
}
