package request

type ListVehiclesRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=all active maintenance inactive"`
	Search string `json:"search"`
}

type ListDriversRequest struct {
	PaginatedRequest
	Search string `json:"search"`
}

type ListMaintenanceRequest struct {
	PaginatedRequest
	Status    string `json:"status" validate:"omitempty,oneof=all scheduled in_progress completed"`
	Search    string `json:"search"`
	VehicleID string `json:"vehicle_id" validate:"omitempty,uuid"`
}

type CreateMaintenanceRequest struct {
	VehicleID         string   `json:"vehicle_id" validate:"required,uuid"`
	InspectionID      *string  `json:"inspection_id,omitempty" validate:"omitempty,uuid"`
	Title             string   `json:"title" validate:"required,max=200"`
	Description       *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	DueDate           string   `json:"due_date" validate:"required,isodate"`
	Priority          string   `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	EstimatedDuration *float64 `json:"estimated_duration,omitempty" validate:"omitempty,gt=0"`
	Cost              *float64 `json:"cost,omitempty" validate:"omitempty,gte=0"`
}

// UpdateMaintenanceRequest only touches the fields that are present. Status
// moves through UpdateMaintenanceStatusRequest.
type UpdateMaintenanceRequest struct {
	Title             *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description       *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	DueDate           *string  `json:"due_date,omitempty" validate:"omitempty,isodate"`
	Priority          *string  `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	EstimatedDuration *float64 `json:"estimated_duration,omitempty" validate:"omitempty,gt=0"`
	Cost              *float64 `json:"cost,omitempty" validate:"omitempty,gte=0"`
}

type UpdateMaintenanceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled in_progress completed"`
}

type ListInspectionsRequest struct {
	PaginatedRequest
	Status    string `json:"status" validate:"omitempty,oneof=all scheduled in_progress completed"`
	VehicleID string `json:"vehicle_id" validate:"omitempty,uuid"`
}

type CreateInspectionRequest struct {
	VehicleID   string  `json:"vehicle_id" validate:"required,uuid"`
	Type        string  `json:"type" validate:"required,max=100"`
	Date        string  `json:"date" validate:"required,isodate"`
	InspectorID *string `json:"inspector_id,omitempty" validate:"omitempty,uuid"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateInspectionStatusRequest cannot complete an inspection; completion
// happens by saving results.
type UpdateInspectionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled in_progress"`
}

type InspectionItemRequest struct {
	Category string  `json:"category" validate:"omitempty,max=100"`
	Name     string  `json:"name" validate:"required,max=200"`
	Result   string  `json:"result" validate:"required,oneof=pass fail"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type SaveInspectionResultsRequest struct {
	Items []InspectionItemRequest `json:"items" validate:"required,min=1,dive"`
	// CreateRepairTasks opens a high priority maintenance task per failed item.
	CreateRepairTasks bool `json:"create_repair_tasks"`
}
