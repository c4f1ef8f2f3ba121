package vehicles

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

// NewRepository builds a vehicle repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	if err := r.db.WithContext(ctx).Create(vehicle).Error; err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (r *repository) Update(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	if err := r.db.WithContext(ctx).Save(vehicle).Error; err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Vehicle{}).Error
}

// FindByID loads the vehicle without associations.
func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// FindDetail loads the vehicle with its image gallery.
func (r *repository) FindDetail(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&vehicle, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]models.Vehicle, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Vehicle{})
	base = applyFilters(base, query.Filters)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := query.Pagination.Normalize()
	var rows []models.Vehicle
	err := applySort(base, query.Sort).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Offset(query.Pagination.Offset()).
		Limit(params.PageSize).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) ListFeatured(ctx context.Context, limit int) ([]models.Vehicle, error) {
	var rows []models.Vehicle
	tx := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("is_featured = ?", true).
		Order("created_at ASC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll returns every vehicle with images, used by snapshot builds.
func (r *repository) ListAll(ctx context.Context) ([]models.Vehicle, error) {
	var rows []models.Vehicle
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ReplaceImages swaps the full image gallery for the vehicle.
func (r *repository) ReplaceImages(ctx context.Context, vehicleID uuid.UUID, images []models.VehicleImage) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("vehicle_id = ?", vehicleID).Delete(&models.VehicleImage{}).Error; err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}
	return tx.Create(&images).Error
}

// UpdateInventory writes the inventory columns directly. The caller
// supplies the full replacement set so the last write wins.
func (r *repository) UpdateInventory(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&models.Vehicle{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// applySort translates the sort request into ORDER BY clauses. String
// columns compare lowercased; creation order breaks ties.
func applySort(tx *gorm.DB, s Sort) *gorm.DB {
	direction := "ASC"
	if s.Direction == "desc" {
		direction = "DESC"
	}
	switch s.By {
	case "name", "brand":
		return tx.Order("LOWER(" + s.By + ") " + direction).Order("created_at ASC")
	case "price", "year":
		return tx.Order(s.By + " " + direction).Order("created_at ASC")
	default:
		return tx.Order("created_at ASC")
	}
}

func applyFilters(tx *gorm.DB, filters Filters) *gorm.DB {
	if filters.Category != nil {
		tx = tx.Where("category = ?", filters.Category.String())
	}
	if filters.Brand != nil {
		tx = tx.Where("LOWER(brand) = ?", strings.ToLower(*filters.Brand))
	}
	if filters.InventoryStatus != nil {
		tx = tx.Where("inventory_status = ?", filters.InventoryStatus.String())
	}
	if filters.IsActive != nil {
		tx = tx.Where("is_active = ?", *filters.IsActive)
	}
	if filters.IsFeatured != nil {
		tx = tx.Where("is_featured = ?", *filters.IsFeatured)
	}
	if filters.MinPrice != nil {
		tx = tx.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		tx = tx.Where("price <= ?", *filters.MaxPrice)
	}
	if filters.Search != nil {
		needle := "%" + strings.ToLower(strings.TrimSpace(*filters.Search)) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(model) LIKE ?", needle, needle, needle)
	}
	return tx
}
