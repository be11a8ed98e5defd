package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/familyllc/recipe-manager/backend/internal/logger"
)

func TestInitOTelDisabled(t *testing.T) {
	shutdown := InitOTel(context.Background(), logger.NewNop(), OtelConfig{})
	assert.NoError(t, shutdown(context.Background()))
}

func TestSampleRatio(t *testing.T) {
	for raw, want := range map[string]float64{"": 1, "0.25": 0.25, "-3": 0, "7": 1, "x": 1} {
		t.Setenv("OTEL_SAMPLER_RATIO", raw)
		assert.Equal(t, want, sampleRatio(), raw)
	}
}
