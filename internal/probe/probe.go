// Package probe is a reference consumer of the capability contract.
//
// It discovers capabilities by type assertion in a fixed preference order
// and reads or assigns values the way a shell parameter backed by an
// arbitrary object would: scalars are stringified, numbers coerced,
// sequences read element by element and mappings read key by key. Errors
// raised by the object are returned unmodified.
package probe

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/Backland-Labs/quack/internal/capability"
)

// Kinds reported by Kind, in preference order.
const (
	KindString   = "str"
	KindInt      = "int"
	KindFloat    = "float"
	KindSequence = "sequence"
	KindMapping  = "mapping"
)

// Detect lists the capabilities obj exposes, in preference order.
func Detect(obj any) []string {
	var ops []string
	if _, ok := obj.(capability.Caller); ok {
		ops = append(ops, capability.OpCall)
	}
	if _, ok := obj.(capability.Stringer); ok {
		ops = append(ops, capability.OpString)
	}
	if _, ok := obj.(capability.IntCoercer); ok {
		ops = append(ops, capability.OpInt)
	}
	if _, ok := obj.(capability.FloatCoercer); ok {
		ops = append(ops, capability.OpFloat)
	}
	if _, ok := obj.(capability.Sequence); ok {
		ops = append(ops, capability.OpLen, capability.OpIndex)
	}
	if _, ok := obj.(capability.Mapping); ok {
		ops = append(ops, capability.OpGet)
	}
	if _, ok := obj.(capability.KeyLister); ok {
		ops = append(ops, capability.OpKeys)
	}
	if _, ok := obj.(capability.Setter); ok {
		ops = append(ops, capability.OpSet)
	}
	if _, ok := obj.(capability.Deleter); ok {
		ops = append(ops, capability.OpDelete)
	}
	if _, ok := obj.(capability.Container); ok {
		ops = append(ops, capability.OpContains)
	}
	if _, ok := obj.(capability.Iterable); ok {
		ops = append(ops, capability.OpIter)
	}
	return ops
}

// Kind returns how obj is read: the first of str, int, float, sequence and
// mapping it supports, or "" for none.
func Kind(obj any) string {
	switch obj.(type) {
	case capability.Stringer:
		return KindString
	case capability.IntCoercer:
		return KindInt
	case capability.FloatCoercer:
		return KindFloat
	case capability.Sequence:
		return KindSequence
	case capability.Mapping:
		return KindMapping
	}
	return ""
}

// Value reads obj through its preferred capability and renders the result.
func Value(obj any) (string, error) {
	switch Kind(obj) {
	case KindString:
		return Scalar(obj)
	case KindInt:
		n, err := Integer(obj)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(n, 10), nil
	case KindFloat:
		f, err := Float(obj)
		if err != nil {
			return "", err
		}
		return formatFloat(f), nil
	case KindSequence:
		elems, err := Array(obj)
		if err != nil {
			return "", err
		}
		return strings.Join(elems, " "), nil
	case KindMapping:
		keys, err := HashKeys(obj)
		if err != nil {
			return "", err
		}
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			v, err := HashValue(obj, k)
			if err != nil {
				return "", err
			}
			pairs = append(pairs, k+"="+v)
		}
		return strings.Join(pairs, " "), nil
	}
	return "", capability.Errorf(capability.KindUnsupported, "", "%T exposes no readable capability", obj)
}

// Scalar stringifies obj.
func Scalar(obj any) (string, error) {
	s, ok := obj.(capability.Stringer)
	if !ok {
		return "", unsupported(capability.OpString, obj)
	}
	return s.String()
}

// Integer coerces obj to an integer.
func Integer(obj any) (int64, error) {
	c, ok := obj.(capability.IntCoercer)
	if !ok {
		return 0, unsupported(capability.OpInt, obj)
	}
	return c.Int()
}

// Float coerces obj to a float.
func Float(obj any) (float64, error) {
	c, ok := obj.(capability.FloatCoercer)
	if !ok {
		return 0, unsupported(capability.OpFloat, obj)
	}
	return c.Float()
}

// Array reads the length once and then every element. Elements must be
// strings.
func Array(obj any) ([]string, error) {
	seq, ok := obj.(capability.Sequence)
	if !ok {
		return nil, unsupported(capability.OpLen, obj)
	}
	n, err := seq.Len()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		v, err := seq.Index(i)
		if err != nil {
			return nil, err
		}
		s, ok := v.(string)
		if !ok {
			return nil, capability.Errorf(capability.KindInvalidValue, capability.OpIndex, "element %d is %T, not a string", i, v)
		}
		out = append(out, s)
	}
	return out, nil
}

// HashValue reads key from obj. An absent or missing key reads as "".
// Values are rendered, so a value that fails to stringify fails here.
func HashValue(obj any, key string) (string, error) {
	m, ok := obj.(capability.Mapping)
	if !ok {
		return "", unsupported(capability.OpGet, obj)
	}
	v, err := m.Get(key)
	if err != nil {
		if errors.Is(err, capability.ErrMissingKey) {
			return "", nil
		}
		return "", err
	}
	return Render(v)
}

// HashKeys iterates obj and renders every key.
func HashKeys(obj any) ([]string, error) {
	it, ok := obj.(capability.Iterable)
	if !ok {
		return nil, unsupported(capability.OpIter, obj)
	}
	seq, err := it.Iter()
	if err != nil {
		return nil, err
	}
	var keys []string
	if seq == nil {
		return keys, nil
	}
	for k := range seq {
		s, err := Render(k)
		if err != nil {
			return nil, err
		}
		keys = append(keys, s)
	}
	return keys, nil
}

// ReplaceHash deletes every key of obj, then sets entries in key order.
func ReplaceHash(obj any, entries map[string]string) error {
	lister, ok := obj.(capability.KeyLister)
	if !ok {
		return unsupported(capability.OpKeys, obj)
	}
	deleter, ok := obj.(capability.Deleter)
	if !ok {
		return unsupported(capability.OpDelete, obj)
	}
	setter, ok := obj.(capability.Setter)
	if !ok {
		return unsupported(capability.OpSet, obj)
	}

	keys, err := lister.Keys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := deleter.Delete(k); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(entries))
	for k := range entries {
		names = append(names, k)
	}
	slices.Sort(names)
	for _, k := range names {
		if err := setter.Set(k, entries[k]); err != nil {
			return err
		}
	}
	return nil
}

// Assign hands value back to obj. Objects without Call are read-only.
func Assign(obj any, value any) error {
	c, ok := obj.(capability.Caller)
	if !ok {
		return capability.Errorf(capability.KindUnsupported, capability.OpCall, "%T is read-only", obj)
	}
	return c.Call(value)
}

// Render turns a value returned by a capability into a string. Values that
// are themselves stringable are stringified.
func Render(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case capability.Stringer:
		return x.String()
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return formatFloat(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	case []string:
		return strings.Join(x, " "), nil
	case []any:
		parts := make([]string, 0, len(x))
		for _, e := range x {
			s, err := Render(e)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, " "), nil
	}
	return "", capability.Errorf(capability.KindInvalidValue, "", "cannot render %T", v)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func unsupported(op string, obj any) error {
	return capability.Errorf(capability.KindUnsupported, op, "%T does not implement it", obj)
}
