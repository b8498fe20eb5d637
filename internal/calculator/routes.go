package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/calculator", func(r chi.Router) {
		r.Get("/power", h.PowerState)
		r.Post("/power/on", h.TurnOn)
		r.Post("/power/off", h.TurnOff)

		r.Post("/add", h.Add)
		r.Post("/subtract", h.Subtract)
		r.Post("/multiply", h.Multiply)
		r.Post("/divide", h.Divide)
		r.Post("/power", h.Power)
		r.Post("/sqrt", h.Sqrt)
		r.Post("/chain", h.Chain)

		r.Get("/history", h.History)
		r.Delete("/history", h.ClearHistory)
		r.Get("/history/last", h.LastResult)
	})
}
