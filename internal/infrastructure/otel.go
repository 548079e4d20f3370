package infrastructure

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "paldata.pipeline"

// NewMeterProvider builds an SDK meter provider with the given readers and
// installs it as the global provider. Exporter wiring (Prometheus, stdout)
// belongs to the serving layer, which supplies its own reader.
func NewMeterProvider(readers ...sdkmetric.Reader) *sdkmetric.MeterProvider {
	opts := make([]sdkmetric.Option, 0, len(readers))
	for _, r := range readers {
		opts = append(opts, sdkmetric.WithReader(r))
	}
	provider := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(provider)
	return provider
}

// Meter returns the pipeline meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(meterName)
}
