package doubles

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/Backland-Labs/quack/internal/capability"
)

// ErrDivisionByZero is the cause of a numeric call whose divisor is zero.
var ErrDivisionByZero = errors.New("division by zero")

// number is the counter shared by the numeric doubles.
type number struct {
	v float64
}

func newNumber() number {
	return number{v: 1.0}
}

// divide leaves the counter untouched when d is zero.
func (n *number) divide(d float64) error {
	if d == 0 {
		return capability.Wrap(capability.KindOutOfRange, capability.OpCall, ErrDivisionByZero)
	}
	n.v /= d
	return nil
}

// Value returns the counter without touching it.
func (n *number) Value() float64 {
	return n.v
}

// Integer multiplies its counter by 4 on each integer coercion.
type Integer struct {
	number
}

// NewInteger returns an Integer with its counter at 1.0.
func NewInteger() *Integer {
	return &Integer{number: newNumber()}
}

// Int scales the counter by 4 and returns its truncation. The counter keeps
// the scaled value even when it no longer fits in an int64.
func (d *Integer) Int() (int64, error) {
	d.v *= 4
	if math.IsNaN(d.v) || d.v < math.MinInt64 || d.v >= math.MaxInt64 {
		return 0, capability.Errorf(capability.KindOutOfRange, capability.OpInt, "counter %g does not fit in an int64", d.v)
	}
	return int64(d.v), nil
}

// CallableInteger is an Integer whose counter can be divided.
type CallableInteger struct {
	Integer
}

// NewCallableInteger returns a CallableInteger with its counter at 1.0.
func NewCallableInteger() *CallableInteger {
	return &CallableInteger{Integer: *NewInteger()}
}

// Call divides the counter by arg.
func (d *CallableInteger) Call(arg any) error {
	f, err := toFloat(arg)
	if err != nil {
		return err
	}
	return d.divide(f)
}

// Floating doubles its counter on each float coercion.
type Floating struct {
	number
}

// NewFloating returns a Floating with its counter at 1.0.
func NewFloating() *Floating {
	return &Floating{number: newNumber()}
}

// Float scales the counter by 2 and returns it.
func (d *Floating) Float() (float64, error) {
	d.v *= 2
	return d.v, nil
}

// CallableFloating is a Floating whose counter can be divided. It divides by
// arg+1 so a test can tell its call path from CallableInteger's.
type CallableFloating struct {
	Floating
}

// NewCallableFloating returns a CallableFloating with its counter at 1.0.
func NewCallableFloating() *CallableFloating {
	return &CallableFloating{Floating: *NewFloating()}
}

// Call divides the counter by arg+1.
func (d *CallableFloating) Call(arg any) error {
	f, err := toFloat(arg)
	if err != nil {
		return err
	}
	return d.divide(f + 1)
}

func toFloat(arg any) (float64, error) {
	switch v := arg.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, capability.Errorf(capability.KindInvalidValue, capability.OpCall, "expected a finite number, got %v", v)
		}
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, capability.Wrap(capability.KindInvalidValue, capability.OpCall, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, capability.Errorf(capability.KindInvalidValue, capability.OpCall, "expected a finite number, got %q", v)
		}
		return f, nil
	default:
		return 0, capability.Errorf(capability.KindInvalidValue, capability.OpCall, "expected a number, got %T", arg)
	}
}

var (
	_ capability.IntCoercer   = (*Integer)(nil)
	_ capability.Caller       = (*CallableInteger)(nil)
	_ capability.FloatCoercer = (*Floating)(nil)
	_ capability.Caller       = (*CallableFloating)(nil)
)
