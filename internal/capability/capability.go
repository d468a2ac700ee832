// Package capability defines the structural calling contract between a
// consumer and the objects it is handed.
//
// Every capability is a small interface. An object exposes any subset of
// them and a consumer discovers which ones by type assertion, in the
// preference order given by Order.
package capability

import "iter"

// Capability names, used by name-based dispatch and in error reports.
const (
	OpString   = "str"
	OpInt      = "int"
	OpFloat    = "float"
	OpCall     = "call"
	OpLen      = "len"
	OpIndex    = "index"
	OpKeys     = "keys"
	OpGet      = "get"
	OpSet      = "set"
	OpDelete   = "delete"
	OpContains = "contains"
	OpIter     = "iter"
)

// Arity is the exact number of arguments each capability takes.
var Arity = map[string]int{
	OpString:   0,
	OpInt:      0,
	OpFloat:    0,
	OpCall:     1,
	OpLen:      0,
	OpIndex:    1,
	OpKeys:     0,
	OpGet:      1,
	OpSet:      2,
	OpDelete:   1,
	OpContains: 1,
	OpIter:     0,
}

// Stringer produces the string form of an object. Unlike fmt.Stringer it
// may fail.
type Stringer interface {
	String() (string, error)
}

// IntCoercer coerces an object to an integer.
type IntCoercer interface {
	Int() (int64, error)
}

// FloatCoercer coerces an object to a float.
type FloatCoercer interface {
	Float() (float64, error)
}

// Caller accepts exactly one argument. Consumers use it to hand a value
// back to the object.
type Caller interface {
	Call(arg any) error
}

// Sequence is indexed, length-aware access.
type Sequence interface {
	Len() (int, error)
	Index(i int) (any, error)
}

// Mapping is key-based read access. Get returns a nil value for an absent
// key.
type Mapping interface {
	Get(key string) (any, error)
}

// KeyLister enumerates the keys of a mapping.
type KeyLister interface {
	Keys() ([]string, error)
}

// Setter is subscripted write.
type Setter interface {
	Set(key string, value any) error
}

// Deleter is subscripted delete.
type Deleter interface {
	Delete(key string) error
}

// Container is a membership test.
type Container interface {
	Contains(key string) (bool, error)
}

// Iterable produces the keys of an object one at a time.
type Iterable interface {
	Iter() (iter.Seq[any], error)
}
