package scenario

import "github.com/Backland-Labs/quack/internal/capability"

func want(op, result string, args ...any) Step {
	return Step{Op: op, Args: args, Want: &result}
}

func fails(op string, kind capability.Kind, args ...any) Step {
	return Step{Op: op, Args: args, WantError: kind.String()}
}

// Builtin returns the scenarios run by selftest. Together they pin down the
// observable behavior of every double.
func Builtin() []Scenario {
	return []Scenario{
		{
			Name:   "stringable counts stringifications",
			Double: "str",
			Steps: []Step{
				want(capability.OpString, "1"),
				want(capability.OpString, "2"),
				want(capability.OpString, "3"),
			},
		},
		{
			Name:   "callable stringable winds back",
			Double: "cstr",
			Steps: []Step{
				want(capability.OpString, "1"),
				want(capability.OpString, "2"),
				want(capability.OpString, "3"),
				want(capability.OpCall, "", 1),
				want(capability.OpString, "3"),
			},
		},
		{
			Name:   "integer scales by four",
			Double: "int",
			Steps: []Step{
				want(capability.OpInt, "4"),
				want(capability.OpInt, "16"),
			},
		},
		{
			Name:   "callable integer divides",
			Double: "cint",
			Steps: []Step{
				want(capability.OpInt, "4"),
				want(capability.OpCall, "", 2),
				want(capability.OpInt, "8"),
				fails(capability.OpCall, capability.KindOutOfRange, 0),
				want(capability.OpInt, "32"),
			},
		},
		{
			Name:   "floating doubles",
			Double: "float",
			Steps: []Step{
				want(capability.OpFloat, "2"),
				want(capability.OpFloat, "4"),
			},
		},
		{
			Name:   "callable floating divides by arg plus one",
			Double: "cfloat",
			Steps: []Step{
				want(capability.OpFloat, "2"),
				want(capability.OpCall, "", 1),
				want(capability.OpFloat, "2"),
				fails(capability.OpCall, capability.KindOutOfRange, -1),
			},
		},
		{
			Name:   "sequence answers from its history",
			Double: "array",
			Steps: []Step{
				want(capability.OpLen, "1"),
				want(capability.OpIndex, "len:1", 0),
				want(capability.OpLen, "3"),
				want(capability.OpIndex, "get:0", 1),
				fails(capability.OpIndex, capability.KindOutOfRange, 9),
				want(capability.OpIndex, "get:9", 4),
			},
		},
		{
			Name:   "callable sequence records bulk writes",
			Double: "carray",
			Steps: []Step{
				want(capability.OpCall, "", []string{"x", "y"}),
				want(capability.OpIndex, "set:x|y", 0),
				fails(capability.OpCall, capability.KindInvalidValue, "x"),
				want(capability.OpLen, "3"),
			},
		},
		{
			Name:   "mapping logs its own accesses",
			Double: "hash",
			Steps: []Step{
				want(capability.OpKeys, "a"),
				want(capability.OpGet, "k;[acc]", "acc"),
				want(capability.OpGet, "k;[acc]*2", "acc"),
			},
		},
		{
			Name:   "mapping writes and deletes",
			Double: "hash",
			Steps: []Step{
				want(capability.OpSet, "", "x", "1"),
				want(capability.OpGet, "1", "x"),
				want(capability.OpContains, "true", "x"),
				want(capability.OpDelete, "", "x"),
				fails(capability.OpDelete, capability.KindMissingKey, "x"),
				want(capability.OpGet, "", "x"),
				want(capability.OpGet, "[x]=1;[x];?[x];![x]*2;[x];[acc]", "acc"),
			},
		},
		{
			Name:   "mapping iteration is a snapshot",
			Double: "hash",
			Steps: []Step{
				want(capability.OpIter, "acc a"),
				fails(capability.OpSet, capability.KindInvalidValue, "n", 1),
				want(capability.OpGet, "i;[acc]", "acc"),
			},
		},
		{
			Name:   "faulty mapping",
			Double: "ehash",
			Steps: []Step{
				fails(capability.OpGet, capability.KindInternal, "a"),
				fails(capability.OpSet, capability.KindInvalidSignature, "a", "b"),
				fails(capability.OpIter, capability.KindUnsupported),
				fails(capability.OpKeys, capability.KindInvalidValue),
			},
		},
		{
			Name:   "faulty stringer",
			Double: "estr",
			Steps: []Step{
				fails(capability.OpString, capability.KindUnsupported),
				fails(capability.OpCall, capability.KindMissingKey, 1),
			},
		},
		{
			Name:   "deferred value failure",
			Double: "ehash2",
			Steps: []Step{
				fails(capability.OpGet, capability.KindUnsupported, "a"),
				want(capability.OpIter, "0"),
			},
		},
		{
			Name:   "deferred key failure",
			Double: "ehash3",
			Steps: []Step{
				want(capability.OpGet, "", "a"),
				fails(capability.OpIter, capability.KindUnsupported),
			},
		},
		{
			Name:   "faulty number",
			Double: "enum",
			Steps: []Step{
				fails(capability.OpInt, capability.KindOutOfRange),
				fails(capability.OpFloat, capability.KindMissingKey),
				fails(capability.OpCall, capability.KindInvalidValue, 1),
			},
		},
		{
			Name:   "faulty sequence",
			Double: "earray",
			Steps: []Step{
				fails(capability.OpLen, capability.KindUnsupported),
				fails(capability.OpCall, capability.KindOutOfRange, []string{"x"}),
				want(capability.OpIndex, "get:0", 0),
			},
		},
		{
			Name:   "arity is checked before dispatch",
			Double: "hash",
			Steps: []Step{
				fails(capability.OpGet, capability.KindInvalidSignature),
				fails("frobnicate", capability.KindUnsupported),
				want(capability.OpGet, "[acc]", "acc"),
			},
		},
	}
}
