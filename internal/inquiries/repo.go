package inquiries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/motordesk/backend/pkg/db/models"
	"github.com/motordesk/backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an inquiry repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, inquiry *models.Inquiry) (*models.Inquiry, error) {
	if err := r.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		return nil, err
	}
	return inquiry, nil
}

func (r *repository) Update(ctx context.Context, inquiry *models.Inquiry) (*models.Inquiry, error) {
	if err := r.db.WithContext(ctx).Save(inquiry).Error; err != nil {
		return nil, err
	}
	return inquiry, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := r.db.WithContext(ctx).First(&inquiry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// FindDetail loads the inquiry with its response thread oldest-first.
func (r *repository) FindDetail(ctx context.Context, id uuid.UUID) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := r.db.WithContext(ctx).
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&inquiry, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]models.Inquiry, int64, error) {
	base := r.applyFilters(r.db.WithContext(ctx).Model(&models.Inquiry{}), query.Filters)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := query.Pagination.Normalize()
	var rows []models.Inquiry
	err := base.
		Order("created_at DESC").
		Offset(query.Pagination.Offset()).
		Limit(params.PageSize).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Inquiry{}, "id = ?", id).Error
}

func (r *repository) AddResponse(ctx context.Context, response *models.InquiryResponse) (*models.InquiryResponse, error) {
	if err := r.db.WithContext(ctx).Create(response).Error; err != nil {
		return nil, err
	}
	return response, nil
}

// CountOpen counts inquiries still waiting on staff.
func (r *repository) CountOpen(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Inquiry{}).
		Where("status IN ?", []string{enums.InquiryStatusNew.String(), enums.InquiryStatusInProgress.String()}).
		Count(&total).
		Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repository) applyFilters(base *gorm.DB, filters Filters) *gorm.DB {
	if filters.Status != nil {
		base = base.Where("status = ?", filters.Status.String())
	}
	if filters.Priority != nil {
		base = base.Where("priority = ?", filters.Priority.String())
	}
	if filters.Type != nil {
		base = base.Where("inquiry_type = ?", filters.Type.String())
	}
	if filters.VehicleID != nil {
		base = base.Where("vehicle_id = ?", *filters.VehicleID)
	}
	if filters.Assignee != nil {
		base = base.Where("assigned_to = ?", *filters.Assignee)
	}
	return base
}
