package matcher

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Identity is implemented by values that have a canonical string identity.
type Identity interface {
	Identity() string
}

// ID is a 12 byte document identifier. Its canonical form is 24 lowercase
// hexadecimal characters; the first 4 bytes hold the creation time.
type ID [12]byte

// NilID is the zero identifier.
var NilID ID

var idSyntax = regexp.MustCompile(`^[a-z0-9]{24}$`)

// NewID generates a new identifier from the current time and random bytes.
func NewID() ID {
	var id ID
	binary.BigEndian.PutUint32(id[:4], uint32(time.Now().Unix()))
	u := uuid.New()
	copy(id[4:], u[:8])
	return id
}

// ParseID parses the 24 character hexadecimal form of an identifier.
func ParseID(s string) (ID, error) {
	var id ID
	if len(s) != 2*len(id) {
		return NilID, fmt.Errorf("invalid id %q: expected %d characters, got %d", s, 2*len(id), len(s))
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return NilID, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}

// MustParseID is like ParseID but panics on error.
func MustParseID(s string) ID {
	id, err := ParseID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsValidID reports whether s has the syntax of a generated identifier.
func IsValidID(s string) bool {
	return idSyntax.MatchString(s)
}

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// Identity implements Identity.
func (id ID) Identity() string {
	return id.String()
}

// IsZero reports whether id is NilID.
func (id ID) IsZero() bool {
	return id == NilID
}

// Time returns the creation time encoded in the identifier.
func (id ID) Time() time.Time {
	return time.Unix(int64(binary.BigEndian.Uint32(id[:4])), 0)
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := ParseID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// isIdentifier reports whether v is an identifier typed value.
func isIdentifier(v any) bool {
	switch v.(type) {
	case ID, *ID, uuid.UUID, Identity:
		return true
	}
	return false
}

// Canonical returns the canonical string form of v. The boolean is false
// when v is absent.
func Canonical(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case *ID:
		if x == nil {
			return "", false
		}
		return x.String(), true
	case Identity:
		return x.Identity(), true
	case string:
		return x, true
	case *regexp.Regexp:
		return "/" + x.String() + "/", true
	case time.Time:
		return x.Format(time.RFC3339Nano), true
	case fmt.Stringer:
		return x.String(), true
	}
	if isNil(v) {
		return "", false
	}
	return fmt.Sprint(v), true
}
