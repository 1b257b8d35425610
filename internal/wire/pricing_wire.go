package wire

import (
	"fleet-dispatch/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePricing(r chi.Router, pricingHandler *adaptor.PricingHandler) {
	r.Route("/pricing", func(r chi.Router) {
		r.Post("/calculate", pricingHandler.CalculatePrice)
		r.Post("/promotions/validate", pricingHandler.ValidatePromotion)
		r.Post("/time-rules/evaluate", pricingHandler.EvaluateTimeRule)
		r.Get("/packages", pricingHandler.ListPackages)
		r.Get("/promotions", pricingHandler.ListPromotions)
		r.Get("/time-rules", pricingHandler.ListTimeRules)
	})
}
