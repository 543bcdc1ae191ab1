package expr

import (
	"log/slog"

	"github.com/coality/chronatrix/pkg/chronatrix/value"
)

// Resolver supplies values for variable references. A context snapshot
// implements it; tests can use MapResolver.
type Resolver interface {
	// Resolve returns the value bound to name, or ok=false when the
	// name is unbound. Unbound names evaluate to null.
	Resolve(name string) (value.Value, bool)
}

// MapResolver adapts a plain map to the Resolver interface.
type MapResolver map[string]value.Value

// Resolve implements Resolver.
func (m MapResolver) Resolve(name string) (value.Value, bool) {
	v, ok := m[name]
	return v, ok
}

// Evaluator evaluates condition strings. The zero value is usable; the
// only configuration is an optional diagnostics logger.
type Evaluator struct {
	logger *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets a logger for rejected conditions and type errors.
// Evaluation results are unaffected; logging is purely diagnostic.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// New creates a new Evaluator with the given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Eval is a convenience function that evaluates a condition using the
// default evaluator (no logging).
func Eval(text string, vars Resolver) bool {
	return New().Evaluate(text, vars)
}

// Evaluate parses and evaluates a condition against vars. It is total:
// rejected syntax, unresolved names, type mismatches, and non-boolean
// results all yield false. It never panics and mutates nothing.
func (e *Evaluator) Evaluate(text string, vars Resolver) bool {
	tree, err := Parse(text)
	if err != nil {
		if e.logger != nil {
			e.logger.Debug("condition rejected",
				slog.String("condition", text),
				slog.String("reason", err.Error()),
			)
		}
		return false
	}
	return e.EvaluateTree(tree, vars)
}

// EvaluateTree evaluates an already-parsed tree against vars and
// coerces the result to boolean. Non-boolean results are false.
func (e *Evaluator) EvaluateTree(tree Node, vars Resolver) (result bool) {
	// A condition must not raise past this boundary, whatever it
	// contains.
	defer func() {
		if r := recover(); r != nil {
			if e.logger != nil {
				e.logger.Error("condition evaluation panicked",
					slog.Any("panic", r),
				)
			}
			result = false
		}
	}()

	v := eval(tree, vars)
	b, ok := v.BoolVal()
	if !ok {
		if e.logger != nil {
			e.logger.Debug("condition result is not boolean",
				slog.String("kind", v.Kind().String()),
			)
		}
		return false
	}
	return b
}

// eval walks the tree. It returns a Value; anything undefined along the
// way becomes the invalid sentinel, which the caller collapses to
// false.
func eval(n Node, vars Resolver) value.Value {
	switch node := n.(type) {
	case *Literal:
		return node.Val

	case *Variable:
		if vars == nil {
			return value.Null()
		}
		v, ok := vars.Resolve(node.Name)
		if !ok {
			return value.Null()
		}
		return v

	case *Unary:
		return eval(node.Operand, vars).Neg()

	case *Binary:
		return value.Arith(node.Op, eval(node.Left, vars), eval(node.Right, vars))

	case *Comparison:
		return compare(node.Op, eval(node.Left, vars), eval(node.Right, vars))

	case *IsNull:
		v := eval(node.Operand, vars)
		if v.IsInvalid() {
			return value.Bool(false)
		}
		if node.Negate {
			return value.Bool(!v.IsNull())
		}
		return value.Bool(v.IsNull())

	case *Logical:
		left, ok := eval(node.Left, vars).BoolVal()
		if !ok {
			return value.Invalid()
		}
		// Short-circuit before touching the right operand.
		if node.Op == "and" && !left {
			return value.Bool(false)
		}
		if node.Op == "or" && left {
			return value.Bool(true)
		}
		right, ok := eval(node.Right, vars).BoolVal()
		if !ok {
			return value.Invalid()
		}
		return value.Bool(right)

	case *Not:
		b, ok := eval(node.Operand, vars).BoolVal()
		if !ok {
			return value.Invalid()
		}
		return value.Bool(!b)

	case *Call:
		return call(node, vars)
	}
	return value.Invalid()
}

// compare applies a comparison operator. Incompatible kinds (including
// null on either side) yield false, never an error.
func compare(op string, left, right value.Value) value.Value {
	cmp, ok := value.Compare(left, right)
	if !ok {
		return value.Bool(false)
	}
	switch op {
	case "==":
		return value.Bool(cmp == 0)
	case "!=":
		return value.Bool(cmp != 0)
	case "<":
		return value.Bool(cmp < 0)
	case "<=":
		return value.Bool(cmp <= 0)
	case ">":
		return value.Bool(cmp > 0)
	case ">=":
		return value.Bool(cmp >= 0)
	}
	return value.Invalid()
}

// call applies one of the allow-listed functions. Arity was checked at
// parse time; argument kinds are checked here.
func call(node *Call, vars Resolver) value.Value {
	switch node.Name {
	case "abs":
		v := eval(node.Args[0], vars)
		if i, ok := v.IntVal(); ok {
			if i < 0 {
				return value.Int(-i)
			}
			return value.Int(i)
		}
		f, ok := v.Number()
		if !ok {
			return value.Invalid()
		}
		if f < 0 {
			return value.Float(-f)
		}
		return value.Float(f)

	case "min", "max":
		a := eval(node.Args[0], vars)
		b := eval(node.Args[1], vars)
		if _, ok := a.Number(); !ok {
			return value.Invalid()
		}
		if _, ok := b.Number(); !ok {
			return value.Invalid()
		}
		cmp, _ := value.Compare(a, b)
		if node.Name == "min" {
			if cmp <= 0 {
				return a
			}
			return b
		}
		if cmp >= 0 {
			return a
		}
		return b
	}
	return value.Invalid()
}
