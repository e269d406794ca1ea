package collection

import (
	"context"
	"fmt"
	"reflect"

	"github.com/abdul-hamid-achik/shapematch/packages/matcher"
)

// Store is the collection being verified.
type Store[D any] interface {
	FindAll(ctx context.Context) ([]D, error)
}

// StoreFunc adapts a function to a Store.
type StoreFunc[D any] func(ctx context.Context) ([]D, error)

// FindAll implements Store.
func (f StoreFunc[D]) FindAll(ctx context.Context) ([]D, error) {
	return f(ctx)
}

// Verifier checks collections with a given matcher.
type Verifier struct {
	matcher *matcher.Matcher
}

// NewVerifier creates a Verifier using m for comparisons.
func NewVerifier(m *matcher.Matcher) *Verifier {
	if m == nil {
		m = matcher.Default()
	}
	return &Verifier{matcher: m}
}

// Verify checks store against change using the default matcher.
func Verify[D any](ctx context.Context, store Store[D], change Change) error {
	return VerifyWith(ctx, NewVerifier(nil), store, change)
}

// VerifyWith checks that the documents currently in store equal the
// initial documents of change with the change applied. Errors wrapping
// ErrInvalidChange report an invalid call; a *matcher.AssertionError
// reports a collection that does not match. A nil v uses the default
// matcher.
func VerifyWith[D any](ctx context.Context, v *Verifier, store Store[D], change Change) error {
	if v == nil {
		v = NewVerifier(nil)
	}
	if store == nil || isNilStore(store) {
		return fmt.Errorf("%w: store is nil", ErrInvalidChange)
	}
	if err := change.Validate(); err != nil {
		return err
	}

	expected := v.expectedDocs(change)

	docs, err := store.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch collection: %w", err)
	}
	actual := make([]any, len(docs))
	for i, d := range docs {
		actual[i] = matcher.Normalize(d)
	}

	if change.SortField != "" {
		sortByField(actual, change.SortField)
		sortByField(expected, change.SortField)
	}

	if len(actual) != len(expected) {
		return &matcher.AssertionError{
			Message:  fmt.Sprintf("expected collection to hold %d documents, got %d", len(expected), len(actual)),
			Actual:   len(actual),
			Expected: len(expected),
		}
	}
	return v.matcher.Match(actual, expected)
}

// expectedDocs applies the change to a copy of the initial documents.
func (v *Verifier) expectedDocs(change Change) []any {
	docs, _ := matcher.Normalize(change.InitialDocs).([]any)
	if docs == nil {
		docs = []any{}
	}

	switch change.Type {
	case Created:
		docs = append(docs, matcher.Normalize(change.ChangedDoc))
	case Updated:
		changed, _ := matcher.Normalize(change.ChangedDoc).(map[string]any)
		if i := v.indexOf(docs, changed); i >= 0 {
			target := docs[i].(map[string]any)
			for k, val := range changed {
				target[k] = val
			}
		}
	case Deleted:
		changed, _ := matcher.Normalize(change.ChangedDoc).(map[string]any)
		kept := docs[:0]
		for _, d := range docs {
			if !v.sameID(d, changed) {
				kept = append(kept, d)
			}
		}
		docs = kept
	}
	return docs
}

func (v *Verifier) indexOf(docs []any, changed map[string]any) int {
	for i, d := range docs {
		if v.sameID(d, changed) {
			return i
		}
	}
	return -1
}

// sameID reports whether doc carries the identifier of changed.
func (v *Verifier) sameID(doc any, changed map[string]any) bool {
	m, ok := doc.(map[string]any)
	if !ok || changed == nil {
		return false
	}
	idField := v.matcher.Config().IDField
	want, ok := matcher.Canonical(changed[idField])
	if !ok {
		return false
	}
	got, ok := matcher.Canonical(m[idField])
	return ok && got == want
}

func isNilStore(store any) bool {
	rv := reflect.ValueOf(store)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
