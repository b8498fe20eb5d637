package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"stateful-calculator/internal/calculator"
	"stateful-calculator/internal/handlers"
	"stateful-calculator/internal/observability"
	"stateful-calculator/internal/person"
)

// Deps holds the shared domain state served by the router.
type Deps struct {
	Calculator *calculator.Calculator
	People     *person.Directory
}

func NewRouter(deps Deps) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	calculator.RegisterRoutes(r, calculator.NewHandler(deps.Calculator))
	person.RegisterRoutes(r, person.NewHandler(deps.People))

	return r
}
