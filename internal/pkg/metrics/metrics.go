package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metrics groups the collectors the service records into.
type Metrics struct {
	Database  *DatabaseMetrics
	HTTP      *HTTPMetrics
	Messaging *MessagingMetrics
	meter     metric.Meter
}

// New builds collectors on the global meter provider.
func New(serviceName string) (*Metrics, error) {
	return NewWithMeter(otel.Meter(serviceName))
}

// NewWithMeter builds collectors on an explicit meter.
func NewWithMeter(meter metric.Meter) (*Metrics, error) {
	database, err := NewDatabaseMetrics(meter)
	if err != nil {
		return nil, err
	}

	httpMetrics, err := NewHTTPMetrics(meter)
	if err != nil {
		return nil, err
	}

	messaging, err := NewMessagingMetrics(meter)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		Database:  database,
		HTTP:      httpMetrics,
		Messaging: messaging,
		meter:     meter,
	}, nil
}

// Meter returns the meter the collectors were created on.
func (m *Metrics) Meter() metric.Meter {
	return m.meter
}

// NewMock creates a no-op Metrics instance for testing.
// All Record* calls are safely ignored.
func NewMock() *Metrics {
	return &Metrics{
		Database:  &DatabaseMetrics{},
		HTTP:      &HTTPMetrics{},
		Messaging: &MessagingMetrics{},
	}
}
