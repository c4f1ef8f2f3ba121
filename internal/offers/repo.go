package offers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/motordesk/backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an offer repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, offer *models.Offer) (*models.Offer, error) {
	if err := r.db.WithContext(ctx).Create(offer).Error; err != nil {
		return nil, err
	}
	return offer, nil
}

func (r *repository) Update(ctx context.Context, offer *models.Offer) (*models.Offer, error) {
	if err := r.db.WithContext(ctx).Save(offer).Error; err != nil {
		return nil, err
	}
	return offer, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Offer{}).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	var offer models.Offer
	if err := r.db.WithContext(ctx).First(&offer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// ListByVehicle returns the vehicle's offers in creation order; the
// oldest valid offer is the one that applies.
func (r *repository) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]models.Offer, error) {
	var rows []models.Offer
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]models.Offer, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Offer{})
	if query.Filters.VehicleID != nil {
		base = base.Where("vehicle_id = ?", *query.Filters.VehicleID)
	}
	if query.Filters.OfferType != nil {
		base = base.Where("offer_type = ?", query.Filters.OfferType.String())
	}
	if query.Filters.IsActive != nil {
		base = base.Where("is_active = ?", *query.Filters.IsActive)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := query.Pagination.Normalize()
	var rows []models.Offer
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

// ListAll returns every offer in creation order, used by snapshot builds.
func (r *repository) ListAll(ctx context.Context) ([]models.Offer, error) {
	var rows []models.Offer
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeactivateExpired flips is_active off for offers whose validity
// window ended at or before cutoff. Returns the number of rows swept.
func (r *repository) DeactivateExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Offer{}).
		Where("is_active = ? AND valid_until IS NOT NULL AND valid_until <= ?", true, cutoff).
		UpdateColumn("is_active", false)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// IncrementUsage bumps used_count atomically in the database.
func (r *repository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Offer{}).
		Where("id = ?", id).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
