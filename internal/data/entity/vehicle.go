package entity

import "github.com/google/uuid"

type VehicleStatus string

const (
	VehicleStatusActive      VehicleStatus = "active"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusInactive    VehicleStatus = "inactive"
)

type Vehicle struct {
	Base
	Brand             string        `db:"brand"`
	Model             string        `db:"model"`
	PlateNumber       *string       `db:"plate_number"`
	CategoryID        *uuid.UUID    `db:"category_id"`
	PassengerCapacity int           `db:"passenger_capacity"`
	LuggageCapacity   int           `db:"luggage_capacity"`
	ImageURL          *string       `db:"image_url"`
	Status            VehicleStatus `db:"status"`
}

// VehicleFilter narrows vehicle listings. Search matches brand, model and
// plate number.
type VehicleFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

func (v *Vehicle) DisplayName() string {
	return v.Brand + " " + v.Model
}

type VehicleCategory struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

type Driver struct {
	Base
	FirstName string  `db:"first_name"`
	LastName  string  `db:"last_name"`
	Email     string  `db:"email"`
	Phone     *string `db:"phone"`
}

func (d *Driver) FullName() string {
	return d.FirstName + " " + d.LastName
}

type DriverFilter struct {
	Search string
	Limit  int
	Offset int
}
