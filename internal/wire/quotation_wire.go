package wire

import (
	"fleet-dispatch/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireQuotation(r chi.Router, quotationHandler *adaptor.QuotationHandler) {
	r.Route("/quotations", func(r chi.Router) {
		r.Get("/", quotationHandler.ListQuotations)
		r.Post("/", quotationHandler.CreateQuotation)
		r.Post("/preview", quotationHandler.PreviewQuotation)
		r.Get("/{id}", quotationHandler.GetQuotation)
		r.Put("/{id}", quotationHandler.UpdateQuotation)
		r.Post("/{id}/send", quotationHandler.SendQuotation)
		r.Patch("/{id}/status", quotationHandler.UpdateQuotationStatus)
	})
}
