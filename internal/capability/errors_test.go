package capability

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := Errorf(KindMissingKey, OpDelete, "key %q not present", "x")

	assert.True(t, errors.Is(err, ErrMissingKey))
	assert.False(t, errors.Is(err, ErrOutOfRange))

	wrapped := fmt.Errorf("assigning hash: %w", err)
	assert.True(t, errors.Is(wrapped, ErrMissingKey))
	assert.Equal(t, KindMissingKey, KindOf(wrapped))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("division by zero")
	err := Wrap(KindOutOfRange, OpCall, cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.Equal(t, "call: out-of-range: division by zero", err.Error())
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "kind only",
			err:  &Error{Kind: KindInternal},
			want: "internal",
		},
		{
			name: "with op and message",
			err:  Errorf(KindInvalidSignature, OpSet, "takes %d argument", 1),
			want: "set: invalid-call-signature: takes 1 argument",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindUnsupported, KindInvalidValue, KindMissingKey, KindOutOfRange, KindInvalidSignature, KindInternal} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("no-such-kind")
	assert.Error(t, err)
}

func TestArityCoversEveryCapability(t *testing.T) {
	assert.Len(t, Arity, 12)
	assert.Equal(t, 2, Arity[OpSet])
	assert.Equal(t, 1, Arity[OpCall])
}
