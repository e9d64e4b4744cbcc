package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	require.NoError(t, InitWithExporter("ossim", "test", exporter))
	require.NoError(t, InitWithExporter("ossim", "ignored", nil))

	ctx, parent := StartSpan(context.Background(), "schedule", "SERVER")
	parent.WithAttributes(map[string]string{"algorithm": "fcfs"}).WithInt("processes", 3)

	_, child := StartSpan(ctx, "simulate", "INTERNAL")
	child.WithFloat("average_waiting_time", 3.33)
	EndSpan(child, errors.New("boom"))
	EndSpan(parent, nil)
	EndSpan(nil, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	assert.Equal(t, "simulate", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	assert.Contains(t, spans[0].Attributes, attribute.Float64("average_waiting_time", 3.33))

	assert.Equal(t, "schedule", spans[1].Name)
	assert.Equal(t, codes.Ok, spans[1].Status.Code)
	assert.Contains(t, spans[1].Attributes, attribute.String("algorithm", "fcfs"))
	assert.Contains(t, spans[1].Attributes, attribute.Int("processes", 3))

	require.NoError(t, Shutdown(context.Background()))
}

func TestInitFileOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spans.json")
	require.NoError(t, Init("ossim", "test", path))
	require.NotNil(t, output)
	kept := output

	require.NoError(t, Init("ossim", "test", filepath.Join(dir, "ignored.json")))
	assert.Same(t, kept, output)

	_, span := StartSpan(context.Background(), "memory.simulate", "SERVER")
	EndSpan(span, nil)
	require.NoError(t, Shutdown(context.Background()))
	assert.Nil(t, output)
	require.NoError(t, Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Name":"memory.simulate"`)
}
