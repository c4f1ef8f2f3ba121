package vehicles

import (
	"github.com/shopspring/decimal"

	"github.com/motordesk/backend/pkg/enums"
	"github.com/motordesk/backend/pkg/pagination"
)

// Filters narrows the vehicle list to matching rows. Nil fields are
// ignored.
type Filters struct {
	Category        *enums.VehicleCategory
	Brand           *string
	InventoryStatus *enums.InventoryStatus
	IsActive        *bool
	IsFeatured      *bool
	MinPrice        *decimal.Decimal
	MaxPrice        *decimal.Decimal
	Search          *string
}

// Sort orders the vehicle list. The zero value keeps creation order.
// String columns compare case-insensitively; ties fall back to
// creation order so the sort stays stable.
type Sort struct {
	By        string
	Direction string
}

// SortColumns lists the accepted Sort.By values.
var SortColumns = []string{"name", "brand", "price", "year"}

// Valid reports whether the sort names a known column and direction.
func (s Sort) Valid() bool {
	if s.By == "" {
		return s.Direction == ""
	}
	known := false
	for _, column := range SortColumns {
		if s.By == column {
			known = true
			break
		}
	}
	if !known {
		return false
	}
	switch s.Direction {
	case "", "asc", "desc":
		return true
	}
	return false
}

// ListQuery is the repository-level list request.
type ListQuery struct {
	Pagination pagination.Params
	Filters    Filters
	Sort       Sort
}

// ListInput is the service-level list request.
type ListInput struct {
	Pagination pagination.Params
	Filters    Filters
	Sort       Sort
}

// ListResult is one page of vehicles plus the page envelope.
type ListResult struct {
	Vehicles []VehicleDTO    `json:"vehicles"`
	Page     pagination.Page `json:"page"`
}
