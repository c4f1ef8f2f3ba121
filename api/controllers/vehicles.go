package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/motordesk/backend/api/responses"
	"github.com/motordesk/backend/api/validators"
	vehiclesvc "github.com/motordesk/backend/internal/vehicles"
	"github.com/motordesk/backend/pkg/enums"
	pkgerrors "github.com/motordesk/backend/pkg/errors"
	"github.com/motordesk/backend/pkg/logger"
)

// CreateVehicle handles catalog vehicle creation.
func CreateVehicle(svc vehiclesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		var payload createVehicleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicle, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, vehicle)
	}
}

// UpdateVehicle patches an existing vehicle.
func UpdateVehicle(svc vehiclesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		vehicleID, err := validators.ParseUUIDParam(r, "vehicleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateVehicleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicle, err := svc.Update(r.Context(), vehicleID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vehicle)
	}
}

// DeleteVehicle removes a vehicle and its dependent rows.
func DeleteVehicle(svc vehiclesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		vehicleID, err := validators.ParseUUIDParam(r, "vehicleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), vehicleID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// GetVehicle returns one vehicle with its image gallery.
func GetVehicle(svc vehiclesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		vehicleID, err := validators.ParseUUIDParam(r, "vehicleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicle, err := svc.Get(r.Context(), vehicleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vehicle)
	}
}

// ListVehicles returns a filtered catalog page.
func ListVehicles(svc vehiclesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		input, err := parseVehicleListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// BrowseVehicles is the public catalog list. It accepts the same
// filters and sorting as ListVehicles but only ever serves live
// listings.
func BrowseVehicles(svc vehiclesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		input, err := parseVehicleListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		active := true
		input.Filters.IsActive = &active

		result, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ReplaceVehicleInventory overwrites the inventory sub-record.
func ReplaceVehicleInventory(svc vehiclesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		vehicleID, err := validators.ParseUUIDParam(r, "vehicleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload replaceInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInventoryInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicle, err := svc.ReplaceInventory(r.Context(), vehicleID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vehicle)
	}
}

type createVehicleRequest struct {
	Name             string                `json:"name" validate:"required"`
	Brand            string                `json:"brand" validate:"required"`
	Model            string                `json:"model" validate:"required"`
	Year             int                   `json:"year" validate:"required"`
	Category         string                `json:"category" validate:"required"`
	Price            decimal.Decimal       `json:"price" validate:"required"`
	Description      *string               `json:"description,omitempty"`
	Colors           []string              `json:"colors,omitempty"`
	StockQuantity    int                   `json:"stock_quantity" validate:"omitempty,min=0"`
	ReservedQuantity int                   `json:"reserved_quantity" validate:"omitempty,min=0"`
	InventoryStatus  *string               `json:"inventory_status,omitempty"`
	IsActive         *bool                 `json:"is_active,omitempty"`
	IsFeatured       *bool                 `json:"is_featured,omitempty"`
	Images           []vehicleImageRequest `json:"images,omitempty"`
}

type vehicleImageRequest struct {
	URL       string  `json:"url" validate:"required,url"`
	AltText   *string `json:"alt_text,omitempty"`
	Color     *string `json:"color,omitempty"`
	IsPrimary bool    `json:"is_primary,omitempty"`
}

type updateVehicleRequest struct {
	Name        *string                `json:"name,omitempty"`
	Brand       *string                `json:"brand,omitempty"`
	Model       *string                `json:"model,omitempty"`
	Year        *int                   `json:"year,omitempty"`
	Category    *string                `json:"category,omitempty"`
	Price       *decimal.Decimal       `json:"price,omitempty"`
	Description *string                `json:"description,omitempty"`
	Colors      *[]string              `json:"colors,omitempty"`
	IsActive    *bool                  `json:"is_active,omitempty"`
	IsFeatured  *bool                  `json:"is_featured,omitempty"`
	Images      *[]vehicleImageRequest `json:"images,omitempty"`
}

type replaceInventoryRequest struct {
	StockQuantity    int    `json:"stock_quantity" validate:"min=0"`
	ReservedQuantity int    `json:"reserved_quantity" validate:"omitempty,min=0"`
	Status           string `json:"status" validate:"required"`
}

func (r createVehicleRequest) toCreateInput() (vehiclesvc.CreateInput, error) {
	category, err := enums.ParseVehicleCategory(strings.TrimSpace(r.Category))
	if err != nil {
		return vehiclesvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}

	status := enums.InventoryStatusAvailable
	if r.InventoryStatus != nil {
		parsed, err := enums.ParseInventoryStatus(strings.TrimSpace(*r.InventoryStatus))
		if err != nil {
			return vehiclesvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid inventory status")
		}
		status = parsed
	}

	isFeatured := false
	if r.IsFeatured != nil {
		isFeatured = *r.IsFeatured
	}

	return vehiclesvc.CreateInput{
		Name:             strings.TrimSpace(r.Name),
		Brand:            strings.TrimSpace(r.Brand),
		Model:            strings.TrimSpace(r.Model),
		Year:             r.Year,
		Category:         category,
		Price:            r.Price,
		Description:      r.Description,
		Colors:           r.Colors,
		StockQuantity:    r.StockQuantity,
		ReservedQuantity: r.ReservedQuantity,
		InventoryStatus:  status,
		IsActive:         r.IsActive,
		IsFeatured:       isFeatured,
		Images:           toImageInputs(r.Images),
	}, nil
}

func (r updateVehicleRequest) toUpdateInput() (vehiclesvc.UpdateInput, error) {
	input := vehiclesvc.UpdateInput{
		Name:        r.Name,
		Brand:       r.Brand,
		Model:       r.Model,
		Year:        r.Year,
		Price:       r.Price,
		Description: r.Description,
		Colors:      r.Colors,
		IsActive:    r.IsActive,
		IsFeatured:  r.IsFeatured,
	}

	if r.Category != nil {
		category, err := enums.ParseVehicleCategory(strings.TrimSpace(*r.Category))
		if err != nil {
			return vehiclesvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		input.Category = &category
	}
	if r.Images != nil {
		images := toImageInputs(*r.Images)
		input.Images = &images
	}
	return input, nil
}

func (r replaceInventoryRequest) toInventoryInput() (vehiclesvc.InventoryInput, error) {
	status, err := enums.ParseInventoryStatus(strings.TrimSpace(r.Status))
	if err != nil {
		return vehiclesvc.InventoryInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid inventory status")
	}
	return vehiclesvc.InventoryInput{
		StockQuantity:    r.StockQuantity,
		ReservedQuantity: r.ReservedQuantity,
		Status:           status,
	}, nil
}

func toImageInputs(images []vehicleImageRequest) []vehiclesvc.ImageInput {
	result := make([]vehiclesvc.ImageInput, len(images))
	for i, image := range images {
		result[i] = vehiclesvc.ImageInput{
			URL:       strings.TrimSpace(image.URL),
			AltText:   image.AltText,
			Color:     image.Color,
			IsPrimary: image.IsPrimary,
		}
	}
	return result
}

func parseVehicleListInput(r *http.Request) (vehiclesvc.ListInput, error) {
	params, err := validators.ParsePagination(r)
	if err != nil {
		return vehiclesvc.ListInput{}, err
	}

	filters := vehiclesvc.Filters{
		Brand:  validators.ParseQueryString(r, "brand"),
		Search: validators.ParseQueryString(r, "search"),
	}

	if raw := validators.ParseQueryString(r, "category"); raw != nil {
		category, err := enums.ParseVehicleCategory(*raw)
		if err != nil {
			return vehiclesvc.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		filters.Category = &category
	}
	if raw := validators.ParseQueryString(r, "inventory_status"); raw != nil {
		status, err := enums.ParseInventoryStatus(*raw)
		if err != nil {
			return vehiclesvc.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid inventory status")
		}
		filters.InventoryStatus = &status
	}

	active, err := validators.ParseQueryBool(r, "is_active")
	if err != nil {
		return vehiclesvc.ListInput{}, err
	}
	filters.IsActive = active

	featured, err := validators.ParseQueryBool(r, "is_featured")
	if err != nil {
		return vehiclesvc.ListInput{}, err
	}
	filters.IsFeatured = featured

	minPrice, err := parseDecimalQuery(r, "min_price")
	if err != nil {
		return vehiclesvc.ListInput{}, err
	}
	filters.MinPrice = minPrice

	maxPrice, err := parseDecimalQuery(r, "max_price")
	if err != nil {
		return vehiclesvc.ListInput{}, err
	}
	filters.MaxPrice = maxPrice

	sort, err := parseVehicleSort(r)
	if err != nil {
		return vehiclesvc.ListInput{}, err
	}

	return vehiclesvc.ListInput{Pagination: params, Filters: filters, Sort: sort}, nil
}

func parseVehicleSort(r *http.Request) (vehiclesvc.Sort, error) {
	sort := vehiclesvc.Sort{}
	if raw := validators.ParseQueryString(r, "sort_by"); raw != nil {
		sort.By = strings.ToLower(strings.TrimSpace(*raw))
	}
	if raw := validators.ParseQueryString(r, "sort_dir"); raw != nil {
		sort.Direction = strings.ToLower(strings.TrimSpace(*raw))
	}
	if !sort.Valid() {
		return vehiclesvc.Sort{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown sort column or direction").
			WithDetails(map[string]any{"sort_by": sort.By, "sort_dir": sort.Direction})
	}
	return sort, nil
}

func parseDecimalQuery(r *http.Request, key string) (*decimal.Decimal, error) {
	raw := validators.ParseQueryString(r, key)
	if raw == nil {
		return nil, nil
	}
	value, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a decimal").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}
