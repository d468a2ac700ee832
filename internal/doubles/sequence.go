package doubles

import (
	"strconv"
	"strings"

	"github.com/Backland-Labs/quack/internal/capability"
)

// Sequence answers length and index queries out of its own access history.
// Every access is recorded before it is answered, so Len returns the
// position of its own record and Index can return the record of the very
// call that produced it.
type Sequence struct {
	accesses []string
}

// NewSequence returns a Sequence with an empty history.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Len records "len:<n+1>" and returns the new length.
func (s *Sequence) Len() (int, error) {
	s.accesses = append(s.accesses, "len:"+strconv.Itoa(len(s.accesses)+1))
	return len(s.accesses), nil
}

// Index records "get:<i>" and returns the i-th recorded access.
func (s *Sequence) Index(i int) (any, error) {
	s.accesses = append(s.accesses, "get:"+strconv.Itoa(i))
	if i < 0 || i >= len(s.accesses) {
		return nil, capability.Errorf(capability.KindOutOfRange, capability.OpIndex,
			"index %d out of range [0,%d)", i, len(s.accesses))
	}
	return s.accesses[i], nil
}

// Accesses returns a copy of the recorded history.
func (s *Sequence) Accesses() []string {
	out := make([]string, len(s.accesses))
	copy(out, s.accesses)
	return out
}

// CallableSequence is a Sequence that also records bulk writes.
type CallableSequence struct {
	Sequence
}

// NewCallableSequence returns a CallableSequence with an empty history.
func NewCallableSequence() *CallableSequence {
	return &CallableSequence{}
}

// Call records "set:" followed by the elements of arg joined with "|". arg
// must be a []string.
func (s *CallableSequence) Call(arg any) error {
	elems, ok := arg.([]string)
	if !ok {
		return capability.Errorf(capability.KindInvalidValue, capability.OpCall, "expected []string, got %T", arg)
	}
	s.accesses = append(s.accesses, "set:"+strings.Join(elems, "|"))
	return nil
}

var (
	_ capability.Sequence = (*Sequence)(nil)
	_ capability.Caller   = (*CallableSequence)(nil)
)
