package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	LoginAttemptsTotal metric.Int64Counter
	DbErrorsTotal      metric.Int64Counter
}

var appMetrics = &AppMetrics{}

// Metrics returns the instruments initialized by Init. Before Init the
// instruments are nil and the record helpers are no-ops.
func Metrics() *AppMetrics {
	return appMetrics
}

func initAppMetrics() error {
	meter := otel.GetMeterProvider().Meter(serviceName)

	var err error
	appMetrics.LoginAttemptsTotal, err = meter.Int64Counter(
		"login_attempts_total",
		metric.WithDescription("Total number of login attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return err
	}

	appMetrics.DbErrorsTotal, err = meter.Int64Counter(
		"db_errors_total",
		metric.WithDescription("Total number of database errors surfaced as 500s"),
		metric.WithUnit("{error}"),
	)
	return err
}

// RecordLoginAttempt counts a login attempt, labelled by outcome.
func (m *AppMetrics) RecordLoginAttempt(ctx context.Context, success bool) {
	if m.LoginAttemptsTotal == nil {
		return
	}
	m.LoginAttemptsTotal.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
}

// RecordDbError counts a database failure, labelled by operation.
func (m *AppMetrics) RecordDbError(ctx context.Context, operation string) {
	if m.DbErrorsTotal == nil {
		return
	}
	m.DbErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}
