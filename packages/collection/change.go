package collection

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/abdul-hamid-achik/shapematch/packages/matcher"
)

// ErrInvalidChange is wrapped by every error caused by an invalid call,
// as opposed to a collection that does not match.
var ErrInvalidChange = errors.New("invalid collection change")

// ChangeType is the kind of change applied to a collection.
type ChangeType string

const (
	Unchanged ChangeType = ""
	Created   ChangeType = "created"
	Updated   ChangeType = "updated"
	Deleted   ChangeType = "deleted"
)

// ParseChangeType converts s to a ChangeType.
func ParseChangeType(s string) (ChangeType, error) {
	switch ct := ChangeType(s); ct {
	case Unchanged, Created, Updated, Deleted:
		return ct, nil
	}
	return Unchanged, fmt.Errorf("%w: unknown change type %q", ErrInvalidChange, s)
}

// Change describes the expected difference between the initial documents
// of a collection and its current state.
type Change struct {
	// InitialDocs is a slice of the documents before the change.
	InitialDocs any
	// ChangedDoc is the created document, the updated fields including
	// the identifier, or a document holding the identifier of the
	// deleted one.
	ChangedDoc any
	// Type is the kind of change; Unchanged asserts nothing changed.
	Type ChangeType
	// SortField, when set, orders both sides by this field before the
	// comparison. Nested fields use path syntax (account.number).
	SortField string
}

// Validate reports configuration errors of the change.
func (c Change) Validate() error {
	if c.InitialDocs == nil {
		return fmt.Errorf("%w: initial docs are missing", ErrInvalidChange)
	}
	if k := reflect.TypeOf(c.InitialDocs).Kind(); k != reflect.Slice && k != reflect.Array {
		return fmt.Errorf("%w: initial docs must be a slice of documents, got %T", ErrInvalidChange, c.InitialDocs)
	}
	if c.Type == Unchanged {
		return nil
	}
	if _, err := ParseChangeType(string(c.Type)); err != nil {
		return err
	}
	if matcher.Normalize(c.ChangedDoc) == nil {
		return fmt.Errorf("%w: changed doc is required when the change type is %q", ErrInvalidChange, c.Type)
	}
	return nil
}
