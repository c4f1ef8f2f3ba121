package enums

import (
	"fmt"
	"strings"
)

// VehicleCategory is the top-level classification of a catalog vehicle.
type VehicleCategory string

const (
	VehicleCategoryScooter    VehicleCategory = "scooter"
	VehicleCategoryMotorcycle VehicleCategory = "motorcycle"
	VehicleCategoryCar        VehicleCategory = "car"
	VehicleCategoryBike       VehicleCategory = "bike"
)

func (c VehicleCategory) String() string {
	return string(c)
}

func (c VehicleCategory) IsValid() bool {
	switch c {
	case VehicleCategoryScooter, VehicleCategoryMotorcycle, VehicleCategoryCar, VehicleCategoryBike:
		return true
	}
	return false
}

func ParseVehicleCategory(value string) (VehicleCategory, error) {
	category := VehicleCategory(strings.ToLower(strings.TrimSpace(value)))
	if !category.IsValid() {
		return "", fmt.Errorf("invalid vehicle category: %q", value)
	}
	return category, nil
}

// InventoryStatus is the admin-assigned availability state of a vehicle.
// It is never derived from stock counts.
type InventoryStatus string

const (
	InventoryStatusAvailable    InventoryStatus = "available"
	InventoryStatusOutOfStock   InventoryStatus = "out_of_stock"
	InventoryStatusDiscontinued InventoryStatus = "discontinued"
)

func (s InventoryStatus) String() string {
	return string(s)
}

func (s InventoryStatus) IsValid() bool {
	switch s {
	case InventoryStatusAvailable, InventoryStatusOutOfStock, InventoryStatusDiscontinued:
		return true
	}
	return false
}

func ParseInventoryStatus(value string) (InventoryStatus, error) {
	status := InventoryStatus(strings.ToLower(strings.TrimSpace(value)))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid inventory status: %q", value)
	}
	return status, nil
}
