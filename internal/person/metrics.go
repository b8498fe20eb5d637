package person

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	createdCounter metric.Int64Counter
	changeCounter  metric.Int64Counter
	errorCounter   metric.Int64Counter
)

// InitMetrics registers the person domain instruments. Call it once at startup.
func InitMetrics() error {
	meter := otel.Meter("person")

	var err error

	createdCounter, err = meter.Int64Counter("person.created.total",
		metric.WithDescription("Total number of people registered"),
		metric.WithUnit("{person}"),
	)
	if err != nil {
		return fmt.Errorf("creating created counter: %w", err)
	}

	changeCounter, err = meter.Int64Counter("person.changes.total",
		metric.WithDescription("Total number of changes to ages, friends and hobbies"),
		metric.WithUnit("{change}"),
	)
	if err != nil {
		return fmt.Errorf("creating change counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("person.errors.total",
		metric.WithDescription("Total number of rejected person requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	return nil
}
