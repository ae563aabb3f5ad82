package observability

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Sources reported by CountExtraction.
const (
	SourceGenerator = "generator"
	SourceHeuristic = "heuristic"
	SourceFallback  = "fallback"
)

var (
	instrumentsOnce       sync.Once
	extractionCounter     metric.Int64Counter
	generatorErrorCounter metric.Int64Counter
)

// Instruments come from the global meter, which forwards to the real
// provider once InitTelemetry has run and is a no-op before that.
func instruments() {
	instrumentsOnce.Do(func() {
		meter := otel.Meter(tracerName)
		extractionCounter, _ = meter.Int64Counter(
			"note_extractions_total",
			metric.WithDescription("Clinical note summaries produced, by source"),
			metric.WithUnit("{summary}"),
		)
		generatorErrorCounter, _ = meter.Int64Counter(
			"generator_errors_total",
			metric.WithDescription("Failed calls to the generative backend, by component"),
			metric.WithUnit("{error}"),
		)
	})
}

func CountExtraction(ctx context.Context, source string) {
	instruments()
	if extractionCounter != nil {
		extractionCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
	}
}

func CountGeneratorError(ctx context.Context, component string) {
	instruments()
	if generatorErrorCounter != nil {
		generatorErrorCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("component", component)))
	}
}
