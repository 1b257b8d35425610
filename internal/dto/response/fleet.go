package response

import (
	"time"

	"fleet-dispatch/internal/data/entity"
)

type VehicleResponse struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	Brand             string               `json:"brand"`
	Model             string               `json:"model"`
	PlateNumber       *string              `json:"plate_number,omitempty"`
	CategoryID        *string              `json:"category_id,omitempty"`
	Category          *string              `json:"category,omitempty"`
	PassengerCapacity int                  `json:"passenger_capacity"`
	LuggageCapacity   int                  `json:"luggage_capacity"`
	ImageURL          *string              `json:"image_url,omitempty"`
	Status            entity.VehicleStatus `json:"status"`
	CreatedAt         time.Time            `json:"created_at"`
}

// VehicleDetailResponse adds the open maintenance work on the vehicle.
type VehicleDetailResponse struct {
	VehicleResponse
	OpenTasks []MaintenanceTaskResponse `json:"open_tasks"`
}

func VehicleToResponse(v *entity.Vehicle) VehicleResponse {
	resp := VehicleResponse{
		ID:                v.ID.String(),
		Name:              v.DisplayName(),
		Brand:             v.Brand,
		Model:             v.Model,
		PlateNumber:       v.PlateNumber,
		PassengerCapacity: v.PassengerCapacity,
		LuggageCapacity:   v.LuggageCapacity,
		ImageURL:          v.ImageURL,
		Status:            v.Status,
		CreatedAt:         v.CreatedAt,
	}
	if v.CategoryID != nil {
		resp.CategoryID = uuidString(v.CategoryID)
	}
	return resp
}

func VehiclesToResponse(vehicles []*entity.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, VehicleToResponse(v))
	}
	return out
}

type DriverResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func DriverToResponse(d *entity.Driver) DriverResponse {
	return DriverResponse{
		ID:        d.ID.String(),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		FullName:  d.FullName(),
		Email:     d.Email,
		Phone:     d.Phone,
		CreatedAt: d.CreatedAt,
	}
}

func DriversToResponse(drivers []*entity.Driver) []DriverResponse {
	out := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, DriverToResponse(d))
	}
	return out
}

type MaintenanceTaskResponse struct {
	ID                string                     `json:"id"`
	VehicleID         string                     `json:"vehicle_id"`
	InspectionID      *string                    `json:"inspection_id,omitempty"`
	Title             string                     `json:"title"`
	Description       *string                    `json:"description,omitempty"`
	DueDate           string                     `json:"due_date"`
	Priority          entity.MaintenancePriority `json:"priority"`
	Status            entity.MaintenanceStatus   `json:"status"`
	Overdue           bool                       `json:"overdue"`
	EstimatedDuration *float64                   `json:"estimated_duration,omitempty"`
	Cost              *float64                   `json:"cost,omitempty"`
	StartedAt         *time.Time                 `json:"started_at,omitempty"`
	CompletedAt       *time.Time                 `json:"completed_at,omitempty"`
	CreatedAt         time.Time                  `json:"created_at"`
	UpdatedAt         time.Time                  `json:"updated_at"`
}

// MaintenanceTaskToResponse needs today to flag overdue tasks.
func MaintenanceTaskToResponse(t *entity.MaintenanceTask, today time.Time) MaintenanceTaskResponse {
	resp := MaintenanceTaskResponse{
		ID:                t.ID.String(),
		VehicleID:         t.VehicleID.String(),
		Title:             t.Title,
		Description:       t.Description,
		DueDate:           t.DueDate.Format(time.DateOnly),
		Priority:          t.Priority,
		Status:            t.Status,
		Overdue:           t.Overdue(today),
		EstimatedDuration: t.EstimatedDuration,
		Cost:              t.Cost,
		StartedAt:         t.StartedAt,
		CompletedAt:       t.CompletedAt,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
	if t.InspectionID != nil {
		resp.InspectionID = uuidString(t.InspectionID)
	}
	return resp
}

func MaintenanceTasksToResponse(tasks []*entity.MaintenanceTask, today time.Time) []MaintenanceTaskResponse {
	out := make([]MaintenanceTaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, MaintenanceTaskToResponse(t, today))
	}
	return out
}

type InspectionItemResponse struct {
	ID       string                  `json:"id"`
	Category string                  `json:"category"`
	Name     string                  `json:"name"`
	Result   entity.InspectionResult `json:"result"`
	Notes    *string                 `json:"notes,omitempty"`
}

type InspectionResponse struct {
	ID          string                   `json:"id"`
	VehicleID   string                   `json:"vehicle_id"`
	Type        string                   `json:"type"`
	Date        string                   `json:"date"`
	Status      entity.InspectionStatus  `json:"status"`
	InspectorID *string                  `json:"inspector_id,omitempty"`
	Notes       *string                  `json:"notes,omitempty"`
	CompletedAt *time.Time               `json:"completed_at,omitempty"`
	Passed      int                      `json:"passed"`
	Failed      int                      `json:"failed"`
	Items       []InspectionItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

// InspectionResultResponse is returned after saving results. RepairTasks
// lists the maintenance tasks opened for failed items.
type InspectionResultResponse struct {
	InspectionResponse
	RepairTasks []MaintenanceTaskResponse `json:"repair_tasks,omitempty"`
}

func InspectionToResponse(i *entity.Inspection) InspectionResponse {
	resp := InspectionResponse{
		ID:          i.ID.String(),
		VehicleID:   i.VehicleID.String(),
		Type:        i.Type,
		Date:        i.Date.Format(time.DateOnly),
		Status:      i.Status,
		Notes:       i.Notes,
		CompletedAt: i.CompletedAt,
		CreatedAt:   i.CreatedAt,
	}
	if i.InspectorID != nil {
		resp.InspectorID = uuidString(i.InspectorID)
	}
	for _, it := range i.Items {
		if it.Result == entity.ResultFail {
			resp.Failed++
		} else {
			resp.Passed++
		}
		resp.Items = append(resp.Items, InspectionItemResponse{
			ID:       it.ID.String(),
			Category: it.Category,
			Name:     it.Name,
			Result:   it.Result,
			Notes:    it.Notes,
		})
	}
	return resp
}

func InspectionsToResponse(inspections []*entity.Inspection) []InspectionResponse {
	out := make([]InspectionResponse, 0, len(inspections))
	for _, i := range inspections {
		out = append(out, InspectionToResponse(i))
	}
	return out
}
