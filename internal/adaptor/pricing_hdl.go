package adaptor

import (
	"net/http"

	"fleet-dispatch/internal/dto/request"
	"fleet-dispatch/internal/usecase"
	"fleet-dispatch/pkg/utils"

	"go.uber.org/zap"
)

type PricingHandler struct {
	service usecase.PricingService
	log     *zap.Logger
}

func NewPricingHandler(service usecase.PricingService, log *zap.Logger) *PricingHandler {
	return &PricingHandler{
		service: service,
		log:     log.With(zap.String("handler", "pricing")),
	}
}

// CalculatePrice handles POST /api/pricing/calculate
func (h *PricingHandler) CalculatePrice(w http.ResponseWriter, r *http.Request) {
	var req request.CalculatePriceRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.CalculatePrice(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "calculate price")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// ValidatePromotion handles POST /api/pricing/promotions/validate. A rejected
// code is still a 200; Valid tells the caller.
func (h *PricingHandler) ValidatePromotion(w http.ResponseWriter, r *http.Request) {
	var req request.ValidatePromotionRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.ValidatePromotion(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "validate promotion")
		return
	}

	utils.ResponseSuccess(w, resp.Message, resp)
}

// EvaluateTimeRule handles POST /api/pricing/time-rules/evaluate
func (h *PricingHandler) EvaluateTimeRule(w http.ResponseWriter, r *http.Request) {
	var req request.EvaluateTimeRuleRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.EvaluateTimeRule(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "evaluate time rule")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// ListPackages handles GET /api/pricing/packages
func (h *PricingHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListPackages(r.Context())
	if err != nil {
		respondError(w, h.log, err, "list packages")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// ListPromotions handles GET /api/pricing/promotions
func (h *PricingHandler) ListPromotions(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListPromotions(r.Context())
	if err != nil {
		respondError(w, h.log, err, "list promotions")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// ListTimeRules handles GET /api/pricing/time-rules
func (h *PricingHandler) ListTimeRules(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListTimeRules(r.Context())
	if err != nil {
		respondError(w, h.log, err, "list time rules")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}
