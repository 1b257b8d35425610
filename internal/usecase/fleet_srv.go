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

	"go.uber.org/zap"
)

// openTaskLimit caps the open maintenance shown on a vehicle detail page.
const openTaskLimit = 20

type FleetService interface {
	ListVehicles(ctx context.Context, req *request.ListVehiclesRequest) (*response.PaginatedResponse[response.VehicleResponse], error)
	GetVehicle(ctx context.Context, id string) (*response.VehicleDetailResponse, error)
	ListDrivers(ctx context.Context, req *request.ListDriversRequest) (*response.PaginatedResponse[response.DriverResponse], error)
	GetDriver(ctx context.Context, id string) (*response.DriverResponse, error)
}

type fleetService struct {
	repo *repository.Repository
	now  func() time.Time
	loc  *time.Location
	log  *zap.Logger
}

func NewFleetService(repo *repository.Repository, loc *time.Location, log *zap.Logger) FleetService {
	if loc == nil {
		loc = time.UTC
	}
	return &fleetService{
		repo: repo,
		now:  time.Now,
		loc:  loc,
		log:  log.With(zap.String("service", "fleet")),
	}
}

func (s *fleetService) ListVehicles(ctx context.Context, req *request.ListVehiclesRequest) (*response.PaginatedResponse[response.VehicleResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	filter := entity.VehicleFilter{
		Status: req.Status,
		Search: strings.TrimSpace(req.Search),
		Limit:  req.Limit(),
		Offset: req.Offset(),
	}

	vehicles, err := s.repo.Vehicle.FindAll(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list vehicles")
	}
	total, err := s.repo.Vehicle.CountAll(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err, "failed to count vehicles")
	}

	data := response.VehiclesToResponse(vehicles)
	return response.NewPaginatedResponse(data, req.CurrentPage(), req.Limit(), total), nil
}

func (s *fleetService) GetVehicle(ctx context.Context, id string) (*response.VehicleDetailResponse, error) {
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

	resp := &response.VehicleDetailResponse{VehicleResponse: response.VehicleToResponse(vehicle)}

	if vehicle.CategoryID != nil {
		category, err := s.repo.Vehicle.FindCategoryByID(ctx, *vehicle.CategoryID)
		if err != nil {
			s.log.Warn("Failed to load vehicle category", zap.Error(err), zap.String("vehicle_id", id))
		} else if category != nil {
			resp.Category = &category.Name
		}
	}

	var open []*entity.MaintenanceTask
	for _, status := range []entity.MaintenanceStatus{entity.MaintenanceInProgress, entity.MaintenanceScheduled} {
		tasks, err := s.repo.Maintenance.FindAll(ctx, entity.MaintenanceFilter{
			Status:    string(status),
			VehicleID: &vid,
			Limit:     openTaskLimit,
		})
		if err != nil {
			return nil, apperr.Internal(err, "failed to load vehicle maintenance")
		}
		open = append(open, tasks...)
	}
	if len(open) > openTaskLimit {
		open = open[:openTaskLimit]
	}
	resp.OpenTasks = response.MaintenanceTasksToResponse(open, calendarDay(s.now(), s.loc))

	return resp, nil
}

func (s *fleetService) ListDrivers(ctx context.Context, req *request.ListDriversRequest) (*response.PaginatedResponse[response.DriverResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	filter := entity.DriverFilter{
		Search: strings.TrimSpace(req.Search),
		Limit:  req.Limit(),
		Offset: req.Offset(),
	}

	drivers, err := s.repo.Driver.FindAll(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list drivers")
	}
	total, err := s.repo.Driver.CountAll(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err, "failed to count drivers")
	}

	data := response.DriversToResponse(drivers)
	return response.NewPaginatedResponse(data, req.CurrentPage(), req.Limit(), total), nil
}

func (s *fleetService) GetDriver(ctx context.Context, id string) (*response.DriverResponse, error) {
	did, err := parseID(id, "driver id")
	if err != nil {
		return nil, err
	}

	driver, err := s.repo.Driver.FindByID(ctx, did)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load driver")
	}
	if driver == nil {
		return nil, apperr.NotFound("Driver not found")
	}

	resp := response.DriverToResponse(driver)
	return &resp, nil
}
