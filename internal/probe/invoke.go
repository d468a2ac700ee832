package probe

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Backland-Labs/quack/internal/capability"
	"github.com/Backland-Labs/quack/internal/logger"
)

// Invoke calls the capability named op on obj. The number of args must match
// capability.Arity exactly. Results of iter are collected into a []any
// without rendering them.
func Invoke(obj any, op string, args ...any) (any, error) {
	want, known := capability.Arity[op]
	if !known {
		return nil, capability.Errorf(capability.KindUnsupported, op, "unknown capability")
	}
	if len(args) != want {
		return nil, capability.Errorf(capability.KindInvalidSignature, op, "takes %d argument(s), %d given", want, len(args))
	}

	logger.WithFields(map[string]interface{}{
		"op":     op,
		"target": fmt.Sprintf("%T", obj),
		"args":   len(args),
	}).Debug("invoking capability")

	switch op {
	case capability.OpString:
		return Scalar(obj)
	case capability.OpInt:
		return Integer(obj)
	case capability.OpFloat:
		return Float(obj)
	case capability.OpCall:
		c, ok := obj.(capability.Caller)
		if !ok {
			return nil, unsupported(op, obj)
		}
		return nil, c.Call(args[0])
	case capability.OpLen:
		s, ok := obj.(capability.Sequence)
		if !ok {
			return nil, unsupported(op, obj)
		}
		return s.Len()
	case capability.OpIndex:
		s, ok := obj.(capability.Sequence)
		if !ok {
			return nil, unsupported(op, obj)
		}
		i, err := toIndex(args[0])
		if err != nil {
			return nil, err
		}
		return s.Index(i)
	case capability.OpKeys:
		l, ok := obj.(capability.KeyLister)
		if !ok {
			return nil, unsupported(op, obj)
		}
		return l.Keys()
	case capability.OpGet:
		m, ok := obj.(capability.Mapping)
		if !ok {
			return nil, unsupported(op, obj)
		}
		key, err := toKey(op, args[0])
		if err != nil {
			return nil, err
		}
		return m.Get(key)
	case capability.OpSet:
		s, ok := obj.(capability.Setter)
		if !ok {
			return nil, unsupported(op, obj)
		}
		key, err := toKey(op, args[0])
		if err != nil {
			return nil, err
		}
		return nil, s.Set(key, args[1])
	case capability.OpDelete:
		d, ok := obj.(capability.Deleter)
		if !ok {
			return nil, unsupported(op, obj)
		}
		key, err := toKey(op, args[0])
		if err != nil {
			return nil, err
		}
		return nil, d.Delete(key)
	case capability.OpContains:
		c, ok := obj.(capability.Container)
		if !ok {
			return nil, unsupported(op, obj)
		}
		key, err := toKey(op, args[0])
		if err != nil {
			return nil, err
		}
		return c.Contains(key)
	case capability.OpIter:
		it, ok := obj.(capability.Iterable)
		if !ok {
			return nil, unsupported(op, obj)
		}
		seq, err := it.Iter()
		if err != nil {
			return nil, err
		}
		items := []any{}
		if seq != nil {
			for v := range seq {
				items = append(items, v)
			}
		}
		return items, nil
	}
	return nil, capability.Errorf(capability.KindInternal, op, "no dispatch for known capability")
}

func toIndex(arg any) (int, error) {
	switch v := arg.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == math.Trunc(v) {
			return int(v), nil
		}
	case string:
		i, err := strconv.Atoi(v)
		if err == nil {
			return i, nil
		}
	}
	return 0, capability.Errorf(capability.KindInvalidValue, capability.OpIndex, "index must be an integer, got %v", arg)
}

func toKey(op string, arg any) (string, error) {
	s, ok := arg.(string)
	if !ok {
		return "", capability.Errorf(capability.KindInvalidValue, op, "key must be a string, got %T", arg)
	}
	return s, nil
}
