package entity

import (
	"time"

	"github.com/google/uuid"
)

type MaintenancePriority string

const (
	PriorityLow    MaintenancePriority = "low"
	PriorityMedium MaintenancePriority = "medium"
	PriorityHigh   MaintenancePriority = "high"
)

type MaintenanceStatus string

const (
	MaintenanceScheduled  MaintenanceStatus = "scheduled"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
)

// MaintenanceTask is a piece of work planned against a vehicle. Tasks raised
// from a failed inspection item keep the inspection id.
type MaintenanceTask struct {
	Base
	VehicleID         uuid.UUID           `db:"vehicle_id"`
	InspectionID      *uuid.UUID          `db:"inspection_id"`
	Title             string              `db:"title"`
	Description       *string             `db:"description"`
	DueDate           time.Time           `db:"due_date"`
	Priority          MaintenancePriority `db:"priority"`
	Status            MaintenanceStatus   `db:"status"`
	EstimatedDuration *float64            `db:"estimated_duration"`
	Cost              *float64            `db:"cost"`
	StartedAt         *time.Time          `db:"started_at"`
	CompletedAt       *time.Time          `db:"completed_at"`
	CreatedBy         *uuid.UUID          `db:"created_by"`
}

// Overdue reports an unfinished task whose due date is before today. Both
// are calendar dates at UTC midnight.
func (t *MaintenanceTask) Overdue(today time.Time) bool {
	return t.Status != MaintenanceCompleted && t.DueDate.Before(today)
}

// MaintenanceFilter narrows task listings. Search matches title and
// description.
type MaintenanceFilter struct {
	Status    string
	Search    string
	VehicleID *uuid.UUID
	Limit     int
	Offset    int
}

type InspectionStatus string

const (
	InspectionScheduled  InspectionStatus = "scheduled"
	InspectionInProgress InspectionStatus = "in_progress"
	InspectionCompleted  InspectionStatus = "completed"
)

type InspectionResult string

const (
	ResultPass InspectionResult = "pass"
	ResultFail InspectionResult = "fail"
)

type Inspection struct {
	Base
	VehicleID   uuid.UUID        `db:"vehicle_id"`
	Type        string           `db:"type"`
	Date        time.Time        `db:"date"`
	Status      InspectionStatus `db:"status"`
	InspectorID *uuid.UUID       `db:"inspector_id"`
	Notes       *string          `db:"notes"`
	CompletedAt *time.Time       `db:"completed_at"`
	CreatedBy   *uuid.UUID       `db:"created_by"`

	Items []InspectionItem `db:"-"`
}

func (i *Inspection) Failed() []InspectionItem {
	var out []InspectionItem
	for _, it := range i.Items {
		if it.Result == ResultFail {
			out = append(out, it)
		}
	}
	return out
}

type InspectionItem struct {
	ID           uuid.UUID        `db:"id"`
	InspectionID uuid.UUID        `db:"inspection_id"`
	Category     string           `db:"category"`
	Name         string           `db:"name"`
	Result       InspectionResult `db:"result"`
	Notes        *string          `db:"notes"`
	SortOrder    int              `db:"sort_order"`
}

type InspectionFilter struct {
	Status    string
	VehicleID *uuid.UUID
	Limit     int
	Offset    int
}
