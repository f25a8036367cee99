package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/config"
)

func TestSetup_RecordsSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tel, err := Setup(context.Background(), config.TelemetryConfig{ServiceName: "test"},
		WithSpanProcessor(rec), WithoutGlobal())
	require.NoError(t, err)

	_, span := tel.TracerProvider().Tracer("test").Start(context.Background(), "work")
	span.End()

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "work", spans[0].Name())
	name, ok := spans[0].Resource().Set().Value("service.name")
	require.True(t, ok)
	assert.Equal(t, "test", name.AsString())
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestSetup_WithExporter(t *testing.T) {
	tel, err := Setup(context.Background(), config.TelemetryConfig{
		ServiceName:  "test",
		OTLPEndpoint: "localhost:4318",
	}, WithoutGlobal())
	require.NoError(t, err)
	assert.NotNil(t, tel.TracerProvider())
}
