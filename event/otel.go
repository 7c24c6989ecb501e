package event

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// meter returns the package meter from the global provider. Returns a no-op
// meter when no provider is configured.
func meter() metric.Meter {
	return otel.GetMeterProvider().Meter("github.com/corvel/shipfall/event")
}
