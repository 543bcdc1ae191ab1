package expr

import (
	"testing"

	"github.com/coality/chronatrix/pkg/chronatrix/value"
)

func TestEval_Comparisons(t *testing.T) {
	tests := []struct {
		name string
		expr string
		vars MapResolver
		want bool
	}{
		{
			name: "numeric greater or equal",
			expr: "current_hour >= 18",
			vars: MapResolver{"current_hour": value.Int(20)},
			want: true,
		},
		{
			name: "numeric greater or equal false",
			expr: "current_hour >= 18",
			vars: MapResolver{"current_hour": value.Int(9)},
			want: false,
		},
		{
			name: "int compared against float",
			expr: "temperature < 12.5",
			vars: MapResolver{"temperature": value.Int(12)},
			want: true,
		},
		{
			name: "string equality",
			expr: "current_season == 'winter'",
			vars: MapResolver{"current_season": value.String("winter")},
			want: true,
		},
		{
			name: "string inequality",
			expr: "current_season != 'summer'",
			vars: MapResolver{"current_season": value.String("winter")},
			want: true,
		},
		{
			name: "boolean equality",
			expr: "is_weekend == false",
			vars: MapResolver{"is_weekend": value.Bool(false)},
			want: true,
		},
		{
			name: "time of day ordering",
			expr: "current_time < sunset_time",
			vars: MapResolver{
				"current_time": value.TimeOfDay(14, 0, 0),
				"sunset_time":  value.TimeOfDay(20, 41, 0),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Eval(tt.expr, tt.vars); got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEval_IncompatibleComparisonsAreFalse(t *testing.T) {
	tests := []struct {
		name string
		expr string
		vars MapResolver
	}{
		{
			name: "null never satisfies numeric comparison",
			expr: "temperature < 5",
			vars: MapResolver{"temperature": value.Null()},
		},
		{
			name: "null never satisfies equality",
			expr: "temperature == 0",
			vars: MapResolver{"temperature": value.Null()},
		},
		{
			name: "null not-equal is still false",
			expr: "temperature != 0",
			vars: MapResolver{"temperature": value.Null()},
		},
		{
			name: "string against number",
			expr: "current_season > 3",
			vars: MapResolver{"current_season": value.String("winter")},
		},
		{
			name: "unresolved name resolves to null",
			expr: "no_such_key == 0",
			vars: MapResolver{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Eval(tt.expr, tt.vars) {
				t.Errorf("Eval(%q) = true, want false", tt.expr)
			}
		})
	}
}

func TestEval_NullChecks(t *testing.T) {
	vars := MapResolver{
		"temperature": value.Null(),
		"sunset_time": value.TimeOfDay(20, 41, 0),
	}

	tests := []struct {
		expr string
		want bool
	}{
		{"temperature is null", true},
		{"temperature is not null", false},
		{"sunset_time is null", false},
		{"sunset_time is not null", true},
		{"missing_key is null", true},
		{"missing_key is not null", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := Eval(tt.expr, vars); got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEval_Arithmetic(t *testing.T) {
	vars := MapResolver{
		"temperature": value.Float(12.4),
		"count":       value.Int(3),
	}

	tests := []struct {
		expr string
		want bool
	}{
		{"temperature + 5 > 17", true},
		{"temperature - 2.4 == 10", true},
		{"count * 2 == 6", true},
		{"count / 2 == 1.5", true},
		{"-count == -3", true},
		{"abs(-count) == 3", true},
		{"min(count, 10) == 3", true},
		{"max(count, 10) == 10", true},
		{"min(temperature, count) == count", true},
		// Division by zero is invalid, and invalid never compares true.
		{"count / 0 == 0", false},
		{"count / 0 != 0", false},
		// Arithmetic over non-numerics is invalid.
		{"missing_key + 1 == 1", false},
		{"abs(missing_key) == 0", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := Eval(tt.expr, vars); got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEval_BooleanCombinators(t *testing.T) {
	vars := MapResolver{
		"is_weekend": value.Bool(false),
		"is_evening": value.Bool(true),
		"hour":       value.Int(20),
	}

	tests := []struct {
		expr string
		want bool
	}{
		{"hour >= 18 and is_weekend", false},
		{"hour >= 18 and not is_weekend", true},
		{"is_weekend or is_evening", true},
		{"not is_weekend and is_evening", true},
		{"not (is_weekend or not is_evening)", true},
		{"true and true and is_evening", true},
		{"false or false or is_weekend", false},
		// Combinator operands must be boolean.
		{"hour and is_evening", false},
		{"is_evening and hour", false},
		{"hour or is_evening", false},
		{"not hour", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := Eval(tt.expr, vars); got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEval_ShortCircuit(t *testing.T) {
	// The right operand of a short-circuited combinator is never
	// evaluated, so its type errors cannot surface.
	vars := MapResolver{"hour": value.Int(20)}

	if Eval("false and hour", vars) {
		t.Error("false and <non-bool> should short-circuit to false")
	}
	if !Eval("true or hour", vars) {
		t.Error("true or <non-bool> should short-circuit to true")
	}
	// Without short-circuiting the same operand poisons the result.
	if Eval("true and hour", vars) {
		t.Error("true and <non-bool> should be false")
	}
}

func TestEval_NonBooleanResultIsFalse(t *testing.T) {
	vars := MapResolver{
		"hour": value.Int(20),
		"name": value.String("paris"),
	}

	tests := []string{
		"hour",
		"hour + 1",
		"name",
		"'paris'",
		"42",
		"null",
	}

	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			if Eval(expr, vars) {
				t.Errorf("Eval(%q) = true, want false for non-boolean result", expr)
			}
		})
	}

	// A bare boolean is the one bare value that can hold.
	if !Eval("true", vars) {
		t.Error("Eval(true) = false, want true")
	}
	if !Eval("is_x or true", MapResolver{"is_x": value.Bool(false)}) {
		t.Error("boolean expression should hold")
	}
}

func TestEval_HostileInputIsFalse(t *testing.T) {
	tests := []string{
		"__import__('os')",
		"x = 1",
		"open('/etc/passwd')",
		"a.b.c",
		"exec('print(1)')",
		"eval('1')",
		"(lambda: 1)()",
		"[1][0]",
		"{'a': 1}",
	}

	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			if Eval(expr, MapResolver{}) {
				t.Errorf("Eval(%q) = true, want false", expr)
			}
		})
	}
}

func TestEvaluate_Pure(t *testing.T) {
	vars := MapResolver{"hour": value.Int(20)}
	e := New()
	for i := 0; i < 10; i++ {
		if !e.Evaluate("hour == 20", vars) {
			t.Fatal("identical inputs must yield identical results")
		}
	}
}
