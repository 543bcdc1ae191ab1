package chronatrix

import (
	"context"
	"log/slog"

	"github.com/coality/chronatrix/pkg/chronatrix/expr"
	"github.com/coality/chronatrix/pkg/chronatrix/observability"
)

// EvaluateCondition evaluates a condition string against a context
// snapshot. It is a total, pure function: rejected syntax, unresolved
// names, type mismatches, and non-boolean results all yield false.
func EvaluateCondition(condition string, c *Context) bool {
	return expr.Eval(condition, c)
}

// ConditionEvaluator wraps expression evaluation with diagnostics:
// rejected conditions and outcomes are logged and counted. Evaluation
// results are identical to EvaluateCondition.
type ConditionEvaluator struct {
	inner   *expr.Evaluator
	logger  *slog.Logger
	metrics observability.MetricsRecorder
}

// EvaluatorOption configures a ConditionEvaluator.
type EvaluatorOption func(*ConditionEvaluator)

// WithEvaluatorLogger sets the diagnostics logger.
func WithEvaluatorLogger(logger *slog.Logger) EvaluatorOption {
	return func(e *ConditionEvaluator) { e.logger = logger }
}

// WithEvaluatorMetrics sets the metrics recorder.
func WithEvaluatorMetrics(m observability.MetricsRecorder) EvaluatorOption {
	return func(e *ConditionEvaluator) { e.metrics = m }
}

// NewConditionEvaluator creates a ConditionEvaluator.
func NewConditionEvaluator(opts ...EvaluatorOption) *ConditionEvaluator {
	e := &ConditionEvaluator{
		metrics: observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.inner = expr.New(expr.WithLogger(e.logger))
	return e
}

// Evaluate evaluates condition against the snapshot, recording the
// outcome. The ctx carries metric/trace scope only; evaluation itself
// never blocks.
func (e *ConditionEvaluator) Evaluate(ctx context.Context, condition string, c *Context) bool {
	tree, err := expr.Parse(condition)
	if err != nil {
		observability.LogConditionRejected(e.logger, condition, err)
		e.metrics.RecordEvaluation(ctx, false, true)
		return false
	}

	result := e.inner.EvaluateTree(tree, c)
	observability.LogConditionEvaluated(e.logger, condition, result)
	e.metrics.RecordEvaluation(ctx, result, false)
	return result
}
