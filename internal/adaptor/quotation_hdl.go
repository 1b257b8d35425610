package adaptor

import (
	"net/http"

	"fleet-dispatch/internal/dto/request"
	"fleet-dispatch/internal/usecase"
	"fleet-dispatch/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type QuotationHandler struct {
	service usecase.QuotationService
	log     *zap.Logger
}

func NewQuotationHandler(service usecase.QuotationService, log *zap.Logger) *QuotationHandler {
	return &QuotationHandler{
		service: service,
		log:     log.With(zap.String("handler", "quotation")),
	}
}

// ListQuotations handles GET /api/quotations
func (h *QuotationHandler) ListQuotations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListQuotationsRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		Status: query.Get("status"),
		Search: query.Get("search"),
	}

	resp, err := h.service.ListQuotations(r.Context(), req)
	if err != nil {
		respondError(w, h.log, err, "list quotations")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// GetQuotation handles GET /api/quotations/{id}
func (h *QuotationHandler) GetQuotation(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetQuotation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, err, "get quotation")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// CreateQuotation handles POST /api/quotations
func (h *QuotationHandler) CreateQuotation(w http.ResponseWriter, r *http.Request) {
	var req request.SaveQuotationRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.CreateQuotation(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create quotation")
		return
	}

	utils.ResponseCreated(w, "Quotation created successfully", resp)
}

// UpdateQuotation handles PUT /api/quotations/{id}
func (h *QuotationHandler) UpdateQuotation(w http.ResponseWriter, r *http.Request) {
	var req request.SaveQuotationRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateQuotation(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondError(w, h.log, err, "update quotation")
		return
	}

	utils.ResponseSuccess(w, "Quotation updated successfully", resp)
}

// PreviewQuotation handles POST /api/quotations/preview
func (h *QuotationHandler) PreviewQuotation(w http.ResponseWriter, r *http.Request) {
	var req request.SaveQuotationRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.PreviewQuotation(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "preview quotation")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// SendQuotation handles POST /api/quotations/{id}/send
func (h *QuotationHandler) SendQuotation(w http.ResponseWriter, r *http.Request) {
	var req request.SendQuotationRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.SendQuotation(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondError(w, h.log, err, "send quotation")
		return
	}

	utils.ResponseSuccess(w, "Quotation sent successfully", resp)
}

// UpdateQuotationStatus handles PATCH /api/quotations/{id}/status
func (h *QuotationHandler) UpdateQuotationStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateQuotationStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateQuotationStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondError(w, h.log, err, "update quotation status")
		return
	}

	utils.ResponseSuccess(w, "Quotation status updated", resp)
}
