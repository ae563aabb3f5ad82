package observability

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/health_companion/config"
)

func TestFromCentralConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Environment = "staging"
	cfg.Observability.ServiceName = "svc"
	cfg.Observability.Tracing.Enabled = true
	cfg.Observability.Tracing.SamplingRate = 0.5

	got := FromCentralConfig(cfg)
	assert.Equal(t, "svc", got.ServiceName)
	assert.Equal(t, "staging", got.Environment)
	assert.True(t, got.Tracing)
	assert.Equal(t, 0.5, got.SamplingRate)
}

func TestSampler(t *testing.T) {
	assert.Contains(t, sampler(Config{}).Description(), "AlwaysOffSampler")
	assert.Contains(t, sampler(Config{Tracing: true}).Description(), "root:AlwaysOnSampler")
	assert.Contains(t, sampler(Config{Tracing: true, SamplingRate: 1}).Description(), "root:AlwaysOnSampler")
	assert.Contains(t, sampler(Config{Tracing: true, SamplingRate: 3}).Description(), "root:AlwaysOnSampler")
	assert.Contains(t, sampler(Config{Tracing: true, SamplingRate: 0.25}).Description(), "root:TraceIDRatioBased{0.25}")
}

func TestInitTelemetryWithoutExporter(t *testing.T) {
	p, err := InitTelemetry(context.Background(), Config{ServiceName: "test", Environment: "test"})
	require.NoError(t, err)
	require.NotNil(t, p.PrometheusExporter)

	CountExtraction(context.Background(), SourceHeuristic)
	CountGeneratorError(context.Background(), "chatbot")

	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestFiberMiddlewareSkipsPaths(t *testing.T) {
	app := fiber.New()
	app.Use(FiberMiddleware("/metrics"))
	app.Get("/metrics", func(c fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/boom", func(c fiber.Ctx) error { return fiber.ErrTeapot })

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
}
