// Package value defines the tagged value union shared by the context
// model and the expression evaluator.
//
// A Value is one of: null, string, int, float, bool, date, time-of-day,
// or date-time. An extra invalid kind exists as the absorbing result of
// undefined arithmetic; it never appears in a built context.
package value

import (
	"fmt"
	"strconv"
	"time"
)

// Kind identifies which member of the union a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindDate
	KindTimeOfDay
	KindDateTime
	KindInvalid
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindTimeOfDay:
		return "time"
	case KindDateTime:
		return "datetime"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Value is an immutable tagged union. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
	b    bool
	t    time.Time // date (midnight) and datetime kinds
	sec  int       // time-of-day as seconds since midnight
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Invalid returns the invalid sentinel.
func Invalid() Value { return Value{kind: KindInvalid} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Date returns a calendar-date value. The time-of-day portion of t is
// discarded.
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// TimeOfDay returns a clock-time value.
func TimeOfDay(hour, min, sec int) Value {
	return Value{kind: KindTimeOfDay, sec: hour*3600 + min*60 + sec}
}

// TimeOfDayFrom returns the clock-time portion of t.
func TimeOfDayFrom(t time.Time) Value {
	return TimeOfDay(t.Hour(), t.Minute(), t.Second())
}

// DateTime returns a date-time value carrying t's offset.
func DateTime(t time.Time) Value { return Value{kind: KindDateTime, t: t} }

// FromAny converts a native Go value. Supported inputs: nil, string,
// bool, all int/float widths, time.Time (becomes a date-time), and
// Value itself. Anything else reports ok=false.
func FromAny(v any) (Value, bool) {
	switch x := v.(type) {
	case nil:
		return Null(), true
	case Value:
		return x, true
	case string:
		return String(x), true
	case bool:
		return Bool(x), true
	case int:
		return Int(int64(x)), true
	case int32:
		return Int(int64(x)), true
	case int64:
		return Int(x), true
	case float32:
		return Float(float64(x)), true
	case float64:
		return Float(x), true
	case time.Time:
		return DateTime(x), true
	}
	return Value{}, false
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsInvalid reports whether the value is the invalid sentinel.
func (v Value) IsInvalid() bool { return v.kind == KindInvalid }

// Str returns the string member. Only meaningful for KindString.
func (v Value) Str() string { return v.str }

// BoolVal returns the boolean member and whether the value is a bool.
func (v Value) BoolVal() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// IntVal returns the integer member and whether the value is an int.
func (v Value) IntVal() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Number returns the value as float64 for numeric operations.
// Only int and float kinds are numeric.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	}
	return 0, false
}

// Time returns the underlying time for date and date-time kinds.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindDate && v.kind != KindDateTime {
		return time.Time{}, false
	}
	return v.t, true
}

// ClockSeconds returns seconds since midnight for time-of-day kinds.
func (v Value) ClockSeconds() (int, bool) {
	if v.kind != KindTimeOfDay {
		return 0, false
	}
	return v.sec, true
}

// orderable reports whether two values may be ordered against each
// other: both numeric, or both the same non-numeric kind. Null and
// invalid are never orderable.
func orderable(a, b Value) bool {
	if a.kind == KindNull || b.kind == KindNull ||
		a.kind == KindInvalid || b.kind == KindInvalid {
		return false
	}
	if isNumeric(a.kind) && isNumeric(b.kind) {
		return true
	}
	return a.kind == b.kind
}

func isNumeric(k Kind) bool { return k == KindInt || k == KindFloat }

// Compare orders a against b, returning -1, 0, or 1. ok is false when
// the kinds are incompatible, in which case the caller must treat the
// comparison as failed rather than equal.
func Compare(a, b Value) (int, bool) {
	if !orderable(a, b) {
		return 0, false
	}
	switch {
	case isNumeric(a.kind):
		af, _ := a.Number()
		bf, _ := b.Number()
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		}
		return 0, true
	case a.kind == KindString:
		switch {
		case a.str < b.str:
			return -1, true
		case a.str > b.str:
			return 1, true
		}
		return 0, true
	case a.kind == KindBool:
		// false < true, mirrors the numeric interpretation.
		switch {
		case !a.b && b.b:
			return -1, true
		case a.b && !b.b:
			return 1, true
		}
		return 0, true
	case a.kind == KindTimeOfDay:
		switch {
		case a.sec < b.sec:
			return -1, true
		case a.sec > b.sec:
			return 1, true
		}
		return 0, true
	case a.kind == KindDate || a.kind == KindDateTime:
		switch {
		case a.t.Before(b.t):
			return -1, true
		case a.t.After(b.t):
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// Equal reports strict value equality: same kind (int and float are
// distinct here) and same member. Used for context equality, not for
// expression comparison.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull, KindInvalid:
		return true
	case KindString:
		return a.str == b.str
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return a.f == b.f
	case KindBool:
		return a.b == b.b
	case KindTimeOfDay:
		return a.sec == b.sec
	case KindDate, KindDateTime:
		return a.t.Equal(b.t)
	}
	return false
}

// Arith applies a binary arithmetic operator. Both operands must be
// numeric; division by zero and every non-numeric operand produce the
// invalid sentinel. The result is an int when both operands are ints
// and the operation stays exact (division always yields a float).
func Arith(op byte, a, b Value) Value {
	af, aok := a.Number()
	bf, bok := b.Number()
	if !aok || !bok {
		return Invalid()
	}
	if a.kind == KindInt && b.kind == KindInt && op != '/' {
		switch op {
		case '+':
			return Int(a.i + b.i)
		case '-':
			return Int(a.i - b.i)
		case '*':
			return Int(a.i * b.i)
		}
		return Invalid()
	}
	switch op {
	case '+':
		return Float(af + bf)
	case '-':
		return Float(af - bf)
	case '*':
		return Float(af * bf)
	case '/':
		if bf == 0 {
			return Invalid()
		}
		return Float(af / bf)
	}
	return Invalid()
}

// Neg negates a numeric value; non-numeric operands yield invalid.
func (v Value) Neg() Value {
	switch v.kind {
	case KindInt:
		return Int(-v.i)
	case KindFloat:
		return Float(-v.f)
	}
	return Invalid()
}

// Native returns the value as a plain Go value suitable for JSON
// encoding, with temporal kinds rendered as ISO 8601 strings.
func (v Value) Native() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindDate:
		return v.t.Format("2006-01-02")
	case KindTimeOfDay:
		return fmt.Sprintf("%02d:%02d:%02d", v.sec/3600, v.sec/60%60, v.sec%60)
	case KindDateTime:
		return v.t.Format(time.RFC3339)
	}
	return nil
}

// String renders the value for logs and error messages.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindInvalid:
		return "invalid"
	case KindString:
		return strconv.Quote(v.str)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return fmt.Sprintf("%v", v.Native())
}
