package usecase

import (
	"context"
	"strings"
	"time"

	"fleet-dispatch/internal/data/entity"
	"fleet-dispatch/internal/data/repository"
	"fleet-dispatch/internal/dto/request"
	"fleet-dispatch/internal/dto/response"
	"fleet-dispatch/pkg/apperr"
	"fleet-dispatch/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MaintenanceService interface {
	ListTasks(ctx context.Context, req *request.ListMaintenanceRequest) (*response.PaginatedResponse[response.MaintenanceTaskResponse], error)
	GetTask(ctx context.Context, id string) (*response.MaintenanceTaskResponse, error)
	CreateTask(ctx context.Context, req *request.CreateMaintenanceRequest) (*response.MaintenanceTaskResponse, error)
	UpdateTask(ctx context.Context, id string, req *request.UpdateMaintenanceRequest) (*response.MaintenanceTaskResponse, error)
	UpdateTaskStatus(ctx context.Context, id string, req *request.UpdateMaintenanceStatusRequest) (*response.MaintenanceTaskResponse, error)
	DeleteTask(ctx context.Context, id string) error

	ListInspections(ctx context.Context, req *request.ListInspectionsRequest) (*response.PaginatedResponse[response.InspectionResponse], error)
	GetInspection(ctx context.Context, id string) (*response.InspectionResponse, error)
	CreateInspection(ctx context.Context, req *request.CreateInspectionRequest) (*response.InspectionResponse, error)
	UpdateInspectionStatus(ctx context.Context, id string, req *request.UpdateInspectionStatusRequest) (*response.InspectionResponse, error)
	SaveInspectionResults(ctx context.Context, id string, req *request.SaveInspectionResultsRequest) (*response.InspectionResultResponse, error)
}

type maintenanceService struct {
	repo *repository.Repository
	now  func() time.Time
	loc  *time.Location
	log  *zap.Logger
}

func NewMaintenanceService(repo *repository.Repository, loc *time.Location, log *zap.Logger) MaintenanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &maintenanceService{
		repo: repo,
		now:  time.Now,
		loc:  loc,
		log:  log.With(zap.String("service", "maintenance")),
	}
}

func (s *maintenanceService) today() time.Time {
	return calendarDay(s.now(), s.loc)
}

// ==================== TASKS ====================

func (s *maintenanceService) ListTasks(ctx context.Context, req *request.ListMaintenanceRequest) (*response.PaginatedResponse[response.MaintenanceTaskResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	vehicleID, err := parseOptionalID(&req.VehicleID, "vehicle id")
	if err != nil {
		return nil, err
	}

	filter := entity.MaintenanceFilter{
		Status:    req.Status,
		Search:    strings.TrimSpace(req.Search),
		VehicleID: vehicleID,
		Limit:     req.Limit(),
		Offset:    req.Offset(),
	}

	tasks, err := s.repo.Maintenance.FindAll(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list maintenance tasks")
	}
	total, err := s.repo.Maintenance.CountAll(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err, "failed to count maintenance tasks")
	}

	data := response.MaintenanceTasksToResponse(tasks, s.today())
	return response.NewPaginatedResponse(data, req.CurrentPage(), req.Limit(), total), nil
}

func (s *maintenanceService) loadTask(ctx context.Context, id string) (*entity.MaintenanceTask, error) {
	tid, err := parseID(id, "task id")
	if err != nil {
		return nil, err
	}
	task, err := s.repo.Maintenance.FindByID(ctx, tid)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load maintenance task")
	}
	if task == nil {
		return nil, apperr.NotFound("Maintenance task not found")
	}
	return task, nil
}

func (s *maintenanceService) toResponse(task *entity.MaintenanceTask) *response.MaintenanceTaskResponse {
	resp := response.MaintenanceTaskToResponse(task, s.today())
	return &resp
}

func (s *maintenanceService) GetTask(ctx context.Context, id string) (*response.MaintenanceTaskResponse, error) {
	task, err := s.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(task), nil
}

func (s *maintenanceService) CreateTask(ctx context.Context, req *request.CreateMaintenanceRequest) (*response.MaintenanceTaskResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Maintenance validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	// 2. Vehicle and linked inspection
	vehicle, err := s.loadVehicle(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	inspectionID, err := parseOptionalID(req.InspectionID, "inspection id")
	if err != nil {
		return nil, err
	}
	if inspectionID != nil {
		inspection, err := s.repo.Inspection.FindByID(ctx, *inspectionID)
		if err != nil {
			return nil, apperr.Internal(err, "failed to load inspection")
		}
		if inspection == nil {
			return nil, apperr.NotFound("Inspection not found")
		}
		if inspection.VehicleID != vehicle.ID {
			return nil, apperr.Validation("inspection belongs to another vehicle").
				WithDetails(map[string]string{"inspection_id": "Inspection belongs to another vehicle"})
		}
	}

	due, err := utils.ParseDate(req.DueDate)
	if err != nil {
		return nil, apperr.BadRequest("invalid due date: %s", req.DueDate)
	}

	priority := entity.PriorityMedium
	if req.Priority != "" {
		priority = entity.MaintenancePriority(req.Priority)
	}

	// 3. Store
	now := s.now()
	task := &entity.MaintenanceTask{
		Base:              entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		VehicleID:         vehicle.ID,
		InspectionID:      inspectionID,
		Title:             strings.TrimSpace(req.Title),
		Description:       req.Description,
		DueDate:           due,
		Priority:          priority,
		Status:            entity.MaintenanceScheduled,
		EstimatedDuration: req.EstimatedDuration,
		Cost:              req.Cost,
		CreatedBy:         utils.ActorFromContext(ctx),
	}

	if err := s.repo.Maintenance.Create(ctx, task); err != nil {
		return nil, apperr.Internal(err, "failed to create maintenance task")
	}

	s.log.Info("Maintenance task created",
		zap.String("task_id", task.ID.String()),
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("priority", string(priority)))

	return s.toResponse(task), nil
}

func (s *maintenanceService) UpdateTask(ctx context.Context, id string, req *request.UpdateMaintenanceRequest) (*response.MaintenanceTaskResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	task, err := s.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.DueDate != nil {
		due, err := utils.ParseDate(*req.DueDate)
		if err != nil {
			return nil, apperr.BadRequest("invalid due date: %s", *req.DueDate)
		}
		task.DueDate = due
	}
	if req.Priority != nil {
		task.Priority = entity.MaintenancePriority(*req.Priority)
	}
	if req.EstimatedDuration != nil {
		task.EstimatedDuration = req.EstimatedDuration
	}
	if req.Cost != nil {
		task.Cost = req.Cost
	}
	task.UpdatedAt = s.now()

	if err := s.repo.Maintenance.Update(ctx, task); err != nil {
		if isRowMissing(err) {
			return nil, apperr.NotFound("Maintenance task not found")
		}
		return nil, apperr.Internal(err, "failed to update maintenance task")
	}

	return s.toResponse(task), nil
}

// UpdateTaskStatus moves a task and keeps the vehicle status in step: a
// started task takes the vehicle off the road, and the last task to stop
// puts it back.
func (s *maintenanceService) UpdateTaskStatus(ctx context.Context, id string, req *request.UpdateMaintenanceStatusRequest) (*response.MaintenanceTaskResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	task, err := s.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}

	next := entity.MaintenanceStatus(req.Status)
	if next == task.Status {
		return s.toResponse(task), nil
	}
	if task.Status == entity.MaintenanceCompleted {
		return nil, apperr.Conflict("completed maintenance tasks cannot be reopened")
	}

	now := s.now()
	switch next {
	case entity.MaintenanceScheduled:
		task.StartedAt = nil
	case entity.MaintenanceInProgress:
		if task.StartedAt == nil {
			task.StartedAt = &now
		}
	case entity.MaintenanceCompleted:
		if task.StartedAt == nil {
			task.StartedAt = &now
		}
		task.CompletedAt = &now
	}
	task.Status = next
	task.UpdatedAt = now

	if err := s.repo.Maintenance.Update(ctx, task); err != nil {
		if isRowMissing(err) {
			return nil, apperr.NotFound("Maintenance task not found")
		}
		return nil, apperr.Internal(err, "failed to update maintenance status")
	}

	s.log.Info("Maintenance status changed",
		zap.String("task_id", task.ID.String()),
		zap.String("status", string(next)))

	s.syncVehicleStatus(ctx, task.VehicleID)
	return s.toResponse(task), nil
}

func (s *maintenanceService) DeleteTask(ctx context.Context, id string) error {
	task, err := s.loadTask(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Maintenance.Delete(ctx, task.ID); err != nil {
		if isRowMissing(err) {
			return apperr.NotFound("Maintenance task not found")
		}
		return apperr.Internal(err, "failed to delete maintenance task")
	}

	s.log.Info("Maintenance task deleted", zap.String("task_id", task.ID.String()))

	if task.Status == entity.MaintenanceInProgress {
		s.syncVehicleStatus(ctx, task.VehicleID)
	}
	return nil
}

// syncVehicleStatus flips an active vehicle to maintenance while it has
// work in progress and back when none is left. Inactive vehicles are left
// alone. Failures are logged; the task change has already been stored.
func (s *maintenanceService) syncVehicleStatus(ctx context.Context, vehicleID uuid.UUID) {
	log := s.log.With(zap.String("vehicle_id", vehicleID.String()))

	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil || vehicle == nil || vehicle.Status == entity.VehicleStatusInactive {
		if err != nil {
			log.Warn("Failed to load vehicle for status sync", zap.Error(err))
		}
		return
	}

	open, err := s.repo.Maintenance.CountInProgress(ctx, vehicleID)
	if err != nil {
		log.Warn("Failed to count open maintenance", zap.Error(err))
		return
	}

	want := entity.VehicleStatusActive
	if open > 0 {
		want = entity.VehicleStatusMaintenance
	}
	if vehicle.Status == want {
		return
	}

	if err := s.repo.Vehicle.UpdateStatus(ctx, vehicleID, want); err != nil {
		log.Warn("Failed to update vehicle status", zap.Error(err), zap.String("status", string(want)))
		return
	}
	log.Info("Vehicle status changed", zap.String("status", string(want)))
}

func (s *maintenanceService) loadVehicle(ctx context.Context, id string) (*entity.Vehicle, error) {
	vid, err := parseID(id, "vehicle id")
	if err != nil {
		return nil, err
	}
	vehicle, err := s.repo.Vehicle.FindByID(ctx, vid)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load vehicle")
	}
	if vehicle == nil {
		return nil, apperr.NotFound("Vehicle not found")
	}
	return vehicle, nil
}

// ==================== INSPECTIONS ====================

func (s *maintenanceService) ListInspections(ctx context.Context, req *request.ListInspectionsRequest) (*response.PaginatedResponse[response.InspectionResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	vehicleID, err := parseOptionalID(&req.VehicleID, "vehicle id")
	if err != nil {
		return nil, err
	}

	filter := entity.InspectionFilter{
		Status:    req.Status,
		VehicleID: vehicleID,
		Limit:     req.Limit(),
		Offset:    req.Offset(),
	}

	inspections, err := s.repo.Inspection.FindAll(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list inspections")
	}
	total, err := s.repo.Inspection.CountAll(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err, "failed to count inspections")
	}

	data := response.InspectionsToResponse(inspections)
	return response.NewPaginatedResponse(data, req.CurrentPage(), req.Limit(), total), nil
}

func (s *maintenanceService) loadInspection(ctx context.Context, id string) (*entity.Inspection, error) {
	iid, err := parseID(id, "inspection id")
	if err != nil {
		return nil, err
	}
	inspection, err := s.repo.Inspection.FindByID(ctx, iid)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load inspection")
	}
	if inspection == nil {
		return nil, apperr.NotFound("Inspection not found")
	}
	return inspection, nil
}

func (s *maintenanceService) GetInspection(ctx context.Context, id string) (*response.InspectionResponse, error) {
	inspection, err := s.loadInspection(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.InspectionToResponse(inspection)
	return &resp, nil
}

func (s *maintenanceService) CreateInspection(ctx context.Context, req *request.CreateInspectionRequest) (*response.InspectionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	vehicle, err := s.loadVehicle(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	inspectorID, err := parseOptionalID(req.InspectorID, "inspector id")
	if err != nil {
		return nil, err
	}
	if inspectorID != nil {
		driver, err := s.repo.Driver.FindByID(ctx, *inspectorID)
		if err != nil {
			return nil, apperr.Internal(err, "failed to load inspector")
		}
		if driver == nil {
			return nil, apperr.NotFound("Inspector not found")
		}
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, apperr.BadRequest("invalid date: %s", req.Date)
	}

	now := s.now()
	inspection := &entity.Inspection{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		VehicleID:   vehicle.ID,
		Type:        strings.TrimSpace(req.Type),
		Date:        date,
		Status:      entity.InspectionScheduled,
		InspectorID: inspectorID,
		Notes:       req.Notes,
		CreatedBy:   utils.ActorFromContext(ctx),
	}

	if err := s.repo.Inspection.Create(ctx, inspection); err != nil {
		return nil, apperr.Internal(err, "failed to create inspection")
	}

	s.log.Info("Inspection scheduled",
		zap.String("inspection_id", inspection.ID.String()),
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("date", req.Date))

	resp := response.InspectionToResponse(inspection)
	return &resp, nil
}

func (s *maintenanceService) UpdateInspectionStatus(ctx context.Context, id string, req *request.UpdateInspectionStatusRequest) (*response.InspectionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	inspection, err := s.loadInspection(ctx, id)
	if err != nil {
		return nil, err
	}
	if inspection.Status == entity.InspectionCompleted {
		return nil, apperr.Conflict("inspection is already completed")
	}

	next := entity.InspectionStatus(req.Status)
	if err := s.repo.Inspection.UpdateStatus(ctx, inspection.ID, next, nil); err != nil {
		if isRowMissing(err) {
			return nil, apperr.NotFound("Inspection not found")
		}
		return nil, apperr.Internal(err, "failed to update inspection status")
	}
	inspection.Status = next

	resp := response.InspectionToResponse(inspection)
	return &resp, nil
}

// SaveInspectionResults records the checklist, completes the inspection and
// optionally opens a repair task per failed item.
func (s *maintenanceService) SaveInspectionResults(ctx context.Context, id string, req *request.SaveInspectionResultsRequest) (*response.InspectionResultResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Inspection results validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	inspection, err := s.loadInspection(ctx, id)
	if err != nil {
		return nil, err
	}
	if inspection.Status == entity.InspectionCompleted {
		return nil, apperr.Conflict("inspection is already completed")
	}

	// 2. Results
	items := make([]entity.InspectionItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = entity.InspectionItem{
			Category:  strings.TrimSpace(it.Category),
			Name:      strings.TrimSpace(it.Name),
			Result:    entity.InspectionResult(it.Result),
			Notes:     it.Notes,
			SortOrder: i,
		}
	}

	now := s.now()
	if err := s.repo.Inspection.SaveResults(ctx, inspection.ID, items, now); err != nil {
		if isRowMissing(err) {
			return nil, apperr.NotFound("Inspection not found")
		}
		return nil, apperr.Internal(err, "failed to save inspection results")
	}
	inspection.Items = items
	inspection.Status = entity.InspectionCompleted
	inspection.CompletedAt = &now

	resp := &response.InspectionResultResponse{InspectionResponse: response.InspectionToResponse(inspection)}

	// 3. Repair tasks
	if req.CreateRepairTasks {
		today := s.today()
		for _, failed := range inspection.Failed() {
			task := &entity.MaintenanceTask{
				Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
				VehicleID:    inspection.VehicleID,
				InspectionID: &inspection.ID,
				Title:        "Repair: " + failed.Name,
				Description:  failed.Notes,
				DueDate:      today,
				Priority:     entity.PriorityHigh,
				Status:       entity.MaintenanceScheduled,
				CreatedBy:    utils.ActorFromContext(ctx),
			}
			if err := s.repo.Maintenance.Create(ctx, task); err != nil {
				return nil, apperr.Internal(err, "failed to create repair task")
			}
			resp.RepairTasks = append(resp.RepairTasks, response.MaintenanceTaskToResponse(task, today))
		}
	}

	s.log.Info("Inspection completed",
		zap.String("inspection_id", inspection.ID.String()),
		zap.Int("passed", resp.Passed),
		zap.Int("failed", resp.Failed),
		zap.Int("repair_tasks", len(resp.RepairTasks)))

	return resp, nil
}
