package adaptor

import (
	"context"
	"net/http"
	"testing"

	"fleet-dispatch/internal/dto/request"
	"fleet-dispatch/internal/dto/response"
	"fleet-dispatch/internal/usecase"
	"fleet-dispatch/pkg/apperr"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubMaintenance struct {
	usecase.MaintenanceService
	listReq    *request.ListMaintenanceRequest
	resultsReq *request.SaveInspectionResultsRequest
	resultsErr error
}

func (s *stubMaintenance) ListTasks(_ context.Context, req *request.ListMaintenanceRequest) (*response.PaginatedResponse[response.MaintenanceTaskResponse], error) {
	s.listReq = req
	return response.NewPaginatedResponse[response.MaintenanceTaskResponse](nil, req.CurrentPage(), req.Limit(), 0), nil
}

func (s *stubMaintenance) SaveInspectionResults(_ context.Context, id string, req *request.SaveInspectionResultsRequest) (*response.InspectionResultResponse, error) {
	s.resultsReq = req
	if s.resultsErr != nil {
		return nil, s.resultsErr
	}
	return &response.InspectionResultResponse{InspectionResponse: response.InspectionResponse{ID: id}}, nil
}

func newFleetRouter(m usecase.MaintenanceService) http.Handler {
	h := NewFleetHandler(nil, m, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/api/vehicles/{id}/maintenance", h.ListVehicleMaintenance)
	r.Post("/api/inspections/{id}/results", h.SaveInspectionResults)
	return r
}

func TestListVehicleMaintenanceUsesPathID(t *testing.T) {
	m := &stubMaintenance{}
	router := newFleetRouter(m)

	code, resp := serve(t, router, http.MethodGet, "/api/vehicles/abc/maintenance?status=scheduled&per_page=5", "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Status)

	require.NotNil(t, m.listReq)
	assert.Equal(t, "abc", m.listReq.VehicleID)
	assert.Equal(t, "scheduled", m.listReq.Status)
	assert.Equal(t, 5, m.listReq.PerPage)
}

func TestSaveInspectionResultsHandler(t *testing.T) {
	m := &stubMaintenance{}
	router := newFleetRouter(m)

	code, resp := serve(t, router, http.MethodPost, "/api/inspections/i-1/results",
		`{"items":[{"name":"Lights","result":"pass"}],"create_repair_tasks":true}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Inspection completed successfully", resp.Message)
	require.Len(t, m.resultsReq.Items, 1)
	assert.True(t, m.resultsReq.CreateRepairTasks)

	code, resp = serve(t, router, http.MethodPost, "/api/inspections/i-1/results", `{"items":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid request body", resp.Message)

	m.resultsErr = apperr.Conflict("inspection is already completed")
	code, resp = serve(t, router, http.MethodPost, "/api/inspections/i-1/results", `{"items":[{"name":"Lights","result":"pass"}]}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "inspection is already completed", resp.Message)
}
