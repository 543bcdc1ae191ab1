package chronatrix

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coality/chronatrix/pkg/chronatrix/value"
)

func TestEvaluateCondition(t *testing.T) {
	snapshot := snapshotFixture()

	tests := []struct {
		condition string
		want      bool
	}{
		{"is_evening", true},
		{"current_hour >= 18 and is_evening", true},
		{"location_name == 'paris'", true},
		{"temperature is null", true},
		{"temperature < 5", false},
		{"current_hour < 12 or is_evening", true},
		// Hostile and malformed input is simply false.
		{"__import__('os')", false},
		{"x = 1", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.condition, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateCondition(tt.condition, snapshot))
		})
	}
}

func TestConditionEvaluator_MatchesEvaluateCondition(t *testing.T) {
	snapshot := snapshotFixture()
	e := NewConditionEvaluator()
	ctx := context.Background()

	for _, condition := range []string{
		"is_evening",
		"current_hour == 20",
		"temperature > 0",
		"not a condition ((",
	} {
		assert.Equal(t, EvaluateCondition(condition, snapshot),
			e.Evaluate(ctx, condition, snapshot), "condition %q", condition)
	}
}

func TestConditionEvaluator_LogsRejections(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	e := NewConditionEvaluator(WithEvaluatorLogger(logger))

	snapshot := snapshotFixture()
	result := e.Evaluate(context.Background(), "x = 1", snapshot)

	assert.False(t, result)
	assert.Contains(t, buf.String(), "condition rejected")
}

func TestConditionEvaluator_OverridesFlowThrough(t *testing.T) {
	snapshot := snapshotFixture().WithOverrides(map[string]value.Value{
		"current_hour": value.Int(5),
	})
	e := NewConditionEvaluator()

	require.True(t, e.Evaluate(context.Background(), "current_hour == 5", snapshot))
	assert.False(t, e.Evaluate(context.Background(), "current_hour == 20", snapshot))
}
