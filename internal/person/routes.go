package person

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the people endpoints under /people.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/people", func(r chi.Router) {
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/age", h.SetAge)
			r.Post("/friends/{friendID}", h.AddFriend)
			r.Delete("/friends/{friendID}", h.RemoveFriend)
			r.Post("/hobbies", h.AddHobby)
			r.Delete("/hobbies/{hobby}", h.RemoveHobby)
			r.Get("/greet/{otherID}", h.Greet)
			r.Get("/introduction", h.Introduce)
		})
	})
}
