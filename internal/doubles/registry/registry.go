// Package registry builds fresh doubles by name.
package registry

import (
	"slices"

	"github.com/Backland-Labs/quack/internal/capability"
	"github.com/Backland-Labs/quack/internal/doubles"
	"github.com/Backland-Labs/quack/internal/doubles/faulty"
)

type entry struct {
	build       func() any
	description string
}

var doublesByName = map[string]entry{
	"str":    {func() any { return doubles.NewStringable() }, "counts stringifications"},
	"cstr":   {func() any { return doubles.NewCallableStringable() }, "counts stringifications, call(n) winds the counter back by n"},
	"int":    {func() any { return doubles.NewInteger() }, "integer coercion scales a counter by 4"},
	"cint":   {func() any { return doubles.NewCallableInteger() }, "integer coercion scales by 4, call(n) divides by n"},
	"float":  {func() any { return doubles.NewFloating() }, "float coercion scales a counter by 2"},
	"cfloat": {func() any { return doubles.NewCallableFloating() }, "float coercion scales by 2, call(n) divides by n+1"},
	"array":  {func() any { return doubles.NewSequence() }, "len and index answer from the access history"},
	"carray": {func() any { return doubles.NewCallableSequence() }, "sequence whose call records bulk writes"},
	"hash":   {func() any { return doubles.NewMapping() }, "mapping that logs every access, readable via key acc"},
	"ehash":  {func() any { return faulty.Mapping{} }, "mapping failing on get, set, iter and keys"},
	"estr":   {func() any { return faulty.Stringer{} }, "stringification and call always fail"},
	"ehash2": {func() any { return faulty.DeferredValueMapping{} }, "values fail when stringified, iteration yields a number"},
	"ehash3": {func() any { return faulty.DeferredKeyMapping{} }, "values are absent, iteration yields an unstringifiable key"},
	"enum":   {func() any { return faulty.Number{} }, "coercions and call fail with distinct kinds"},
	"earray": {func() any { return faulty.NewSequence() }, "len and call fail, index works"},
}

// New returns a fresh double.
func New(name string) (any, error) {
	e, ok := doublesByName[name]
	if !ok {
		return nil, capability.Errorf(capability.KindMissingKey, "", "unknown double %q", name)
	}
	return e.build(), nil
}

// Names lists the known doubles in sorted order.
func Names() []string {
	names := make([]string, 0, len(doublesByName))
	for name := range doublesByName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Describe returns a one-line description of a double, or "" if unknown.
func Describe(name string) string {
	return doublesByName[name].description
}
