package doubles

import (
	"math"
	"strconv"
	"strings"

	"github.com/Backland-Labs/quack/internal/capability"
)

// Stringable counts how many times it has been stringified.
type Stringable struct {
	n int64
}

// NewStringable returns a Stringable with its counter at 0.
func NewStringable() *Stringable {
	return &Stringable{}
}

// String increments the counter and returns it in decimal.
func (s *Stringable) String() (string, error) {
	s.n++
	return strconv.FormatInt(s.n, 10), nil
}

// CallableStringable is a Stringable whose counter can be wound back.
type CallableStringable struct {
	Stringable
}

// NewCallableStringable returns a CallableStringable with its counter at 0.
func NewCallableStringable() *CallableStringable {
	return &CallableStringable{}
}

// Call decrements the counter by arg, read as an integer magnitude.
func (s *CallableStringable) Call(arg any) error {
	n, err := toInt(arg)
	if err != nil {
		return err
	}
	s.n -= n
	return nil
}

func toInt(arg any) (int64, error) {
	switch v := arg.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
			return int64(v), nil
		}
		return 0, capability.Errorf(capability.KindInvalidValue, capability.OpCall, "expected an integer, got %v", v)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, capability.Wrap(capability.KindInvalidValue, capability.OpCall, err)
		}
		return n, nil
	default:
		return 0, capability.Errorf(capability.KindInvalidValue, capability.OpCall, "expected an integer, got %T", arg)
	}
}

var (
	_ capability.Stringer = (*Stringable)(nil)
	_ capability.Caller   = (*CallableStringable)(nil)
)
