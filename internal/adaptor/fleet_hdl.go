package adaptor

import (
	"net/http"

	"fleet-dispatch/internal/dto/request"
	"fleet-dispatch/internal/usecase"
	"fleet-dispatch/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FleetHandler struct {
	fleet       usecase.FleetService
	maintenance usecase.MaintenanceService
	log         *zap.Logger
}

func NewFleetHandler(fleet usecase.FleetService, maintenance usecase.MaintenanceService, log *zap.Logger) *FleetHandler {
	return &FleetHandler{
		fleet:       fleet,
		maintenance: maintenance,
		log:         log.With(zap.String("handler", "fleet")),
	}
}

func pageFromQuery(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}

// ListVehicles handles GET /api/vehicles
func (h *FleetHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	req := &request.ListVehiclesRequest{
		PaginatedRequest: pageFromQuery(r),
		Status:           r.URL.Query().Get("status"),
		Search:           r.URL.Query().Get("search"),
	}

	resp, err := h.fleet.ListVehicles(r.Context(), req)
	if err != nil {
		respondError(w, h.log, err, "list vehicles")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// GetVehicle handles GET /api/vehicles/{id}
func (h *FleetHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.fleet.GetVehicle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, err, "get vehicle")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// ListVehicleMaintenance handles GET /api/vehicles/{id}/maintenance
func (h *FleetHandler) ListVehicleMaintenance(w http.ResponseWriter, r *http.Request) {
	req := &request.ListMaintenanceRequest{
		PaginatedRequest: pageFromQuery(r),
		Status:           r.URL.Query().Get("status"),
		VehicleID:        chi.URLParam(r, "id"),
	}

	resp, err := h.maintenance.ListTasks(r.Context(), req)
	if err != nil {
		respondError(w, h.log, err, "list vehicle maintenance")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// ListVehicleInspections handles GET /api/vehicles/{id}/inspections
func (h *FleetHandler) ListVehicleInspections(w http.ResponseWriter, r *http.Request) {
	req := &request.ListInspectionsRequest{
		PaginatedRequest: pageFromQuery(r),
		Status:           r.URL.Query().Get("status"),
		VehicleID:        chi.URLParam(r, "id"),
	}

	resp, err := h.maintenance.ListInspections(r.Context(), req)
	if err != nil {
		respondError(w, h.log, err, "list vehicle inspections")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// ListDrivers handles GET /api/drivers
func (h *FleetHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	req := &request.ListDriversRequest{
		PaginatedRequest: pageFromQuery(r),
		Search:           r.URL.Query().Get("search"),
	}

	resp, err := h.fleet.ListDrivers(r.Context(), req)
	if err != nil {
		respondError(w, h.log, err, "list drivers")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// GetDriver handles GET /api/drivers/{id}
func (h *FleetHandler) GetDriver(w http.ResponseWriter, r *http.Request) {
	resp, err := h.fleet.GetDriver(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, err, "get driver")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// ListMaintenance handles GET /api/maintenance
func (h *FleetHandler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListMaintenanceRequest{
		PaginatedRequest: pageFromQuery(r),
		Status:           query.Get("status"),
		Search:           query.Get("search"),
		VehicleID:        query.Get("vehicle_id"),
	}

	resp, err := h.maintenance.ListTasks(r.Context(), req)
	if err != nil {
		respondError(w, h.log, err, "list maintenance tasks")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// GetMaintenance handles GET /api/maintenance/{id}
func (h *FleetHandler) GetMaintenance(w http.ResponseWriter, r *http.Request) {
	resp, err := h.maintenance.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, err, "get maintenance task")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// CreateMaintenance handles POST /api/maintenance
func (h *FleetHandler) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMaintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.maintenance.CreateTask(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create maintenance task")
		return
	}

	utils.ResponseCreated(w, "Maintenance task created successfully", resp)
}

// UpdateMaintenance handles PUT /api/maintenance/{id}
func (h *FleetHandler) UpdateMaintenance(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateMaintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.maintenance.UpdateTask(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondError(w, h.log, err, "update maintenance task")
		return
	}

	utils.ResponseSuccess(w, "Maintenance task updated successfully", resp)
}

// UpdateMaintenanceStatus handles PATCH /api/maintenance/{id}/status
func (h *FleetHandler) UpdateMaintenanceStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateMaintenanceStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.maintenance.UpdateTaskStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondError(w, h.log, err, "update maintenance status")
		return
	}

	utils.ResponseSuccess(w, "Maintenance status updated successfully", resp)
}

// DeleteMaintenance handles DELETE /api/maintenance/{id}
func (h *FleetHandler) DeleteMaintenance(w http.ResponseWriter, r *http.Request) {
	if err := h.maintenance.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.log, err, "delete maintenance task")
		return
	}

	utils.ResponseSuccess(w, "Maintenance task deleted successfully", nil)
}

// ListInspections handles GET /api/inspections
func (h *FleetHandler) ListInspections(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListInspectionsRequest{
		PaginatedRequest: pageFromQuery(r),
		Status:           query.Get("status"),
		VehicleID:        query.Get("vehicle_id"),
	}

	resp, err := h.maintenance.ListInspections(r.Context(), req)
	if err != nil {
		respondError(w, h.log, err, "list inspections")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// GetInspection handles GET /api/inspections/{id}
func (h *FleetHandler) GetInspection(w http.ResponseWriter, r *http.Request) {
	resp, err := h.maintenance.GetInspection(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, err, "get inspection")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// CreateInspection handles POST /api/inspections
func (h *FleetHandler) CreateInspection(w http.ResponseWriter, r *http.Request) {
	var req request.CreateInspectionRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.maintenance.CreateInspection(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create inspection")
		return
	}

	utils.ResponseCreated(w, "Inspection scheduled successfully", resp)
}

// UpdateInspectionStatus handles PATCH /api/inspections/{id}/status
func (h *FleetHandler) UpdateInspectionStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateInspectionStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.maintenance.UpdateInspectionStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondError(w, h.log, err, "update inspection status")
		return
	}

	utils.ResponseSuccess(w, "Inspection status updated successfully", resp)
}

// SaveInspectionResults handles POST /api/inspections/{id}/results
func (h *FleetHandler) SaveInspectionResults(w http.ResponseWriter, r *http.Request) {
	var req request.SaveInspectionResultsRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.maintenance.SaveInspectionResults(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondError(w, h.log, err, "save inspection results")
		return
	}

	utils.ResponseSuccess(w, "Inspection completed successfully", resp)
}
