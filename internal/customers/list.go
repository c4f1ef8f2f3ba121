package customers

import "github.com/motordesk/backend/pkg/pagination"

// Filters narrows the customer list. Nil fields are ignored.
type Filters struct {
	Search *string
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

// ListResult is one page of customers plus the page envelope.
type ListResult struct {
	Customers []CustomerDTO   `json:"customers"`
	Page      pagination.Page `json:"page"`
}
