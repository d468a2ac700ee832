// Package faulty provides doubles whose designated capabilities always fail,
// or succeed with values that fail later, to check that a consumer
// propagates the exact error kind it was given.
//
// A failing call never touches any state.
package faulty

import (
	"iter"

	"github.com/Backland-Labs/quack/internal/capability"
	"github.com/Backland-Labs/quack/internal/doubles"
)

// Mapping fails on every mapping capability, each with a different kind.
type Mapping struct{}

// Get always fails with an internal error.
func (Mapping) Get(string) (any, error) {
	return nil, capability.Errorf(capability.KindInternal, capability.OpGet, "unexpected failure")
}

// Set reports a signature mismatch: its write handler accepts only the key.
func (Mapping) Set(key string, _ any) error {
	return capability.Errorf(capability.KindInvalidSignature, capability.OpSet,
		"handler takes 1 argument (key), 2 given for %q", key)
}

// Iter is not supported.
func (Mapping) Iter() (iter.Seq[any], error) {
	return nil, capability.Errorf(capability.KindUnsupported, capability.OpIter, "not implemented")
}

// Keys always fails with an invalid value.
func (Mapping) Keys() ([]string, error) {
	return nil, capability.Errorf(capability.KindInvalidValue, capability.OpKeys, "keys unavailable")
}

// Stringer cannot be stringified or called.
type Stringer struct{}

func (Stringer) String() (string, error) {
	return "", capability.Errorf(capability.KindUnsupported, capability.OpString, "not implemented")
}

func (Stringer) Call(any) error {
	return capability.Errorf(capability.KindMissingKey, capability.OpCall, "no such target")
}

// DeferredValueMapping reads successfully, but every value is a Stringer, so
// the failure only shows once the consumer stringifies it. Its iteration
// yields a numeric key.
type DeferredValueMapping struct{}

func (DeferredValueMapping) Get(string) (any, error) {
	return Stringer{}, nil
}

func (DeferredValueMapping) Iter() (iter.Seq[any], error) {
	return single(0), nil
}

// DeferredKeyMapping reads every key as absent and iterates over a single
// key that cannot be stringified.
type DeferredKeyMapping struct{}

func (DeferredKeyMapping) Get(string) (any, error) {
	return nil, nil
}

func (DeferredKeyMapping) Iter() (iter.Seq[any], error) {
	return single(Stringer{}), nil
}

// Number fails on both coercions and on call, each with its own kind.
type Number struct{}

func (Number) Int() (int64, error) {
	return 0, capability.Errorf(capability.KindOutOfRange, capability.OpInt, "integer coercion refused")
}

func (Number) Float() (float64, error) {
	return 0, capability.Errorf(capability.KindMissingKey, capability.OpFloat, "float coercion refused")
}

func (Number) Call(any) error {
	return capability.Errorf(capability.KindInvalidValue, capability.OpCall, "assignment refused")
}

// Sequence has a working Index but fails on Len and Call.
type Sequence struct {
	doubles.Sequence
}

// NewSequence returns a Sequence with an empty history.
func NewSequence() *Sequence {
	return &Sequence{}
}

func (s *Sequence) Len() (int, error) {
	return 0, capability.Errorf(capability.KindUnsupported, capability.OpLen, "not implemented")
}

func (s *Sequence) Call(any) error {
	return capability.Errorf(capability.KindOutOfRange, capability.OpCall, "bulk write refused")
}

func single(v any) iter.Seq[any] {
	return func(yield func(any) bool) {
		yield(v)
	}
}

var (
	_ capability.Mapping   = Mapping{}
	_ capability.KeyLister = Mapping{}
	_ capability.Setter    = Mapping{}
	_ capability.Iterable  = Mapping{}
	_ capability.Stringer  = Stringer{}
	_ capability.Caller    = Stringer{}
	_ capability.Mapping   = DeferredValueMapping{}
	_ capability.Iterable  = DeferredValueMapping{}
	_ capability.Mapping   = DeferredKeyMapping{}
	_ capability.Iterable  = DeferredKeyMapping{}

	_ capability.IntCoercer   = Number{}
	_ capability.FloatCoercer = Number{}
	_ capability.Caller       = Number{}
	_ capability.Sequence     = (*Sequence)(nil)
	_ capability.Caller       = (*Sequence)(nil)
)
