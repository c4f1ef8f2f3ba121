package offers

import (
	"github.com/google/uuid"

	"github.com/motordesk/backend/pkg/enums"
	"github.com/motordesk/backend/pkg/pagination"
)

// Filters narrows the offer list. Nil fields are ignored.
type Filters struct {
	VehicleID *uuid.UUID
	OfferType *enums.OfferType
	IsActive  *bool
}

// ListQuery is the repository-level list request.
type ListQuery struct {
	Pagination pagination.Params
	Filters    Filters
}

// ListInput is the service-level list request.
type ListInput struct {
	Pagination pagination.Params
	Filters    Filters
}

// ListResult is one page of offers plus the page envelope.
type ListResult struct {
	Offers []OfferDTO      `json:"offers"`
	Page   pagination.Page `json:"page"`
}
