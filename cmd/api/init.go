package main

import (
	"context"
	"errors"

	"stateful-calculator/internal/calculator"
	"stateful-calculator/internal/config"
	"stateful-calculator/internal/observability"
	"stateful-calculator/internal/person"
)

type shutdownFunc func(context.Context) error

// initTelemetry wires OTLP export of traces, metrics and logs when enabled
// and registers the domain instruments either way. Without export the global
// no-op providers stay in place. The returned function shuts the providers
// down in reverse order.
func initTelemetry(ctx context.Context, cfg config.Config) (shutdownFunc, error) {
	var shutdowns []shutdownFunc
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if cfg.ExportTelemetry {
		for _, start := range []func(context.Context, string) (func(context.Context) error, error){
			observability.InitTracing,
			observability.InitMetrics,
			observability.InitLogging,
		} {
			fn, err := start(ctx, cfg.ServiceName)
			if err != nil {
				return nil, errors.Join(err, shutdown(ctx))
			}
			shutdowns = append(shutdowns, fn)
		}
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, errors.Join(err, shutdown(ctx))
	}
	if err := person.InitMetrics(); err != nil {
		return nil, errors.Join(err, shutdown(ctx))
	}

	return shutdown, nil
}
