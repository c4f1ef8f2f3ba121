package inquiries

import (
	"github.com/google/uuid"

	"github.com/motordesk/backend/pkg/enums"
	"github.com/motordesk/backend/pkg/pagination"
)

// Filters narrows the inquiry queue. Nil fields are ignored.
type Filters struct {
	Status    *enums.InquiryStatus
	Priority  *enums.InquiryPriority
	Type      *enums.InquiryType
	VehicleID *uuid.UUID
	Assignee  *string
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

// ListResult is one page of inquiries plus the page envelope.
type ListResult struct {
	Inquiries []InquiryDTO    `json:"inquiries"`
	Page      pagination.Page `json:"page"`
}
