package collection

import (
	"cmp"
	"slices"
	"time"

	"github.com/abdul-hamid-achik/shapematch/packages/matcher"
)

// sortByField stably orders normalized documents by the value at field.
// Numbers sort numerically, dates chronologically, everything else by its
// canonical string form; documents missing the field sort last.
func sortByField(docs []any, field string) {
	path := matcher.ParsePath(field)
	slices.SortStableFunc(docs, func(a, b any) int {
		av, aok := matcher.Lookup(a, path)
		bv, bok := matcher.Lookup(b, path)
		return compareValues(av, aok && av != nil, bv, bok && bv != nil)
	})
}

func compareValues(a any, aok bool, b any, bok bool) int {
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}

	if c, ok := matcher.CompareNumbers(a, b); ok {
		return c
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}
	as, _ := matcher.Canonical(a)
	bs, _ := matcher.Canonical(b)
	return cmp.Compare(as, bs)
}
