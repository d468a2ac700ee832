package doubles

import (
	"iter"
	"slices"

	"github.com/Backland-Labs/quack/internal/accesslog"
	"github.com/Backland-Labs/quack/internal/capability"
)

// ReservedKey reads back the access log of a Mapping.
const ReservedKey = "acc"

// Mapping is a small string table that logs every access before serving it.
// Reading ReservedKey returns the rendered log, including the read itself.
type Mapping struct {
	log  accesslog.Log
	data map[string]string
}

// NewMapping returns a Mapping seeded with {"a": "b"} and an empty log.
func NewMapping() *Mapping {
	return &Mapping{data: map[string]string{"a": "b"}}
}

// Keys records "k" and returns the backing keys in sorted order.
func (m *Mapping) Keys() ([]string, error) {
	m.log.Append("k")
	return m.sortedKeys(), nil
}

// Get records "[key]". It returns nil for an absent key.
func (m *Mapping) Get(key string) (any, error) {
	m.log.Append("[" + key + "]")
	if key == ReservedKey {
		return m.log.String(), nil
	}
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}

// Set records "[key]=value" and stores value, which must be a string.
func (m *Mapping) Set(key string, value any) error {
	s, ok := value.(string)
	if !ok {
		return capability.Errorf(capability.KindInvalidValue, capability.OpSet, "value for %q must be a string, got %T", key, value)
	}
	m.log.Append("[" + key + "]=" + s)
	m.data[key] = s
	return nil
}

// Delete records "![key]" and removes key. The record is kept when the key
// is absent.
func (m *Mapping) Delete(key string) error {
	m.log.Append("![" + key + "]")
	if _, ok := m.data[key]; !ok {
		return capability.Errorf(capability.KindMissingKey, capability.OpDelete, "%q", key)
	}
	delete(m.data, key)
	return nil
}

// Contains records "?[key]". ReservedKey is always present.
func (m *Mapping) Contains(key string) (bool, error) {
	m.log.Append("?[" + key + "]")
	if key == ReservedKey {
		return true, nil
	}
	_, ok := m.data[key]
	return ok, nil
}

// Iter records "i" and returns a one-shot sequence of ReservedKey followed by
// the keys present at the time of the call.
func (m *Mapping) Iter() (iter.Seq[any], error) {
	m.log.Append("i")
	keys := append([]string{ReservedKey}, m.sortedKeys()...)
	used := false
	return func(yield func(any) bool) {
		if used {
			return
		}
		used = true
		for _, k := range keys {
			if !yield(k) {
				return
			}
		}
	}, nil
}

// Log returns the recorded entries.
func (m *Mapping) Log() []accesslog.Entry {
	return m.log.Entries()
}

func (m *Mapping) sortedKeys() []string {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

var (
	_ capability.Mapping   = (*Mapping)(nil)
	_ capability.KeyLister = (*Mapping)(nil)
	_ capability.Setter    = (*Mapping)(nil)
	_ capability.Deleter   = (*Mapping)(nil)
	_ capability.Container = (*Mapping)(nil)
	_ capability.Iterable  = (*Mapping)(nil)
)
