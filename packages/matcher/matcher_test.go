package matcher

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/abdul-hamid-achik/shapematch/packages/core/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct {
	ID    ID     `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	notes string
}

type userDoc struct {
	id    ID
	name  string
	email string
}

func (d *userDoc) Plain() map[string]any {
	return map[string]any{"_id": d.id, "name": d.name, "email": d.email}
}

func defaultActual(id ID) map[string]any {
	return map[string]any{
		"_id":       id,
		"__v":       2,
		"createdAt": time.Date(2017, 3, 20, 0, 0, 0, 0, time.UTC),
		"updatedAt": time.Date(2017, 3, 21, 0, 0, 0, 0, time.UTC),
		"name":      "John Smith",
	}
}

func TestMatch_ExpectedNil(t *testing.T) {
	tests := []struct {
		name   string
		actual any
		passed bool
	}{
		{"nil actual", nil, true},
		{"typed nil actual", (*user)(nil), true},
		{"zero number", 0, true},
		{"empty string", "", true},
		{"false", false, true},
		{"number", 1, false},
		{"empty map is present", map[string]any{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Match(tt.actual, nil)
			if tt.passed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}

	assert.EqualError(t, Match(1, nil), "expected 1 not to be truthy")
}

func TestMatch_ExpectedPrimitive(t *testing.T) {
	assert.NoError(t, Match(5, 5))
	assert.NoError(t, Match(int64(5), 5.0), "numbers compare by value")
	assert.NoError(t, Match("John", "John"))
	assert.NoError(t, Match(true, true))

	when := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.NoError(t, Match(when.In(time.FixedZone("X", 3600)), when))

	assert.EqualError(t, Match(1, 5), "expected 1 to equal 5")
	assert.EqualError(t, Match(map[string]any{"name": "John"}, 5), "expected map[name:John] to equal 5")
	assert.Error(t, Match("5", 5))
}

func TestMatch_LargeIntegers(t *testing.T) {
	tests := []struct {
		name     string
		actual   any
		expected any
		equal    bool
	}{
		{"int64 above 2^53", int64(9007199254740993), int64(9007199254740992), false},
		{"same int64", int64(9007199254740993), int64(9007199254740993), true},
		{"uint64 near max", uint64(math.MaxUint64), uint64(math.MaxUint64 - 1), false},
		{"int against uint", int64(42), uint8(42), true},
		{"negative against uint", int64(-1), uint64(math.MaxUint64), false},
		{"uint against int64 max", uint64(math.MaxInt64) + 1, int64(math.MaxInt64), false},
		{"json number integer", json.Number("9007199254740993"), int64(9007199254740992), false},
		{"json number matches int", json.Number("9007199254740993"), int64(9007199254740993), true},
		{"float against int", 3.0, int16(3), true},
		{"NaN", math.NaN(), math.NaN(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Match(tt.actual, tt.expected)
			nested := Match(map[string]any{"n": tt.actual}, map[string]any{"n": tt.expected})
			if tt.equal {
				assert.NoError(t, err)
				assert.NoError(t, nested)
				return
			}
			assert.Error(t, err)
			require.Error(t, nested)
			assert.Contains(t, nested.Error(), "at path n")
		})
	}
}

func TestCompareNumbers(t *testing.T) {
	c, ok := CompareNumbers(uint32(10), uint32(9))
	require.True(t, ok)
	assert.Equal(t, 1, c)

	c, ok = CompareNumbers(int64(-5), uint64(3))
	require.True(t, ok)
	assert.Equal(t, -1, c)

	c, ok = CompareNumbers(json.Number("2.5"), 2)
	require.True(t, ok)
	assert.Equal(t, 1, c)

	_, ok = CompareNumbers("10", 9)
	assert.False(t, ok)
}

func TestMatch_ExpectedArrayOfPrimitives(t *testing.T) {
	assert.NoError(t, Match([]int{1, 2, 3}, []any{1, 2, 3}))
	assert.NoError(t, Match([]string{"a", "b"}, []string{"a", "b"}))
	assert.NoError(t, Match([]any{}, []any{}))

	assert.EqualError(t, Match(1, []any{1, 2, 3}), "expected 1 to equal [1 2 3]")
	assert.EqualError(t, Match([]any{1, 2, 3}, []any{1, "a", 3}), `expected [1 2 3] to equal [1 a 3]`)
	assert.Error(t, Match([]int{1, 2, 3, 4}, []int{1, 2, 3}), "length must match exactly")
	assert.Error(t, Match([]int{1, 2}, []int{1, 2, 3}))
}

func TestMatch_Identifier(t *testing.T) {
	id := NewID()

	tests := []struct {
		name     string
		expected map[string]any
	}{
		{"string id", map[string]any{"_id": id.String()}},
		{"typed id", map[string]any{"_id": id}},
		{"pointer id", map[string]any{"_id": &id}},
		{"sentinel id", map[string]any{"_id": "_mock_"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, Match(defaultActual(id), tt.expected))
		})
	}

	t.Run("actual string, expected typed", func(t *testing.T) {
		actual := map[string]any{"_id": id.String()}
		assert.NoError(t, Match(actual, map[string]any{"_id": id}))
	})

	t.Run("identifier outside the id field", func(t *testing.T) {
		actual := map[string]any{"owner": id.String()}
		assert.NoError(t, Match(actual, map[string]any{"owner": id}))
	})

	t.Run("uuid identifier", func(t *testing.T) {
		u := uuid.New()
		actual := map[string]any{"ref": u.String()}
		assert.NoError(t, Match(actual, map[string]any{"ref": u}))
	})

	t.Run("uuid sentinel needs a uuid id pattern", func(t *testing.T) {
		actual := map[string]any{"_id": uuid.New()}
		expected := map[string]any{"_id": "_mock_"}

		err := Match(actual, expected)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "to be an identifier matching /^[a-z0-9]{24}$/ at path _id")

		m := New(WithConfig(&config.Config{
			IDPattern: `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`,
		}))
		assert.NoError(t, m.Match(actual, expected))
	})

	t.Run("different id", func(t *testing.T) {
		other := MustParseID("0123456789abcdef01234567")
		err := Match(defaultActual(id), map[string]any{"_id": other})
		require.Error(t, err)
		assert.True(t, strings.HasSuffix(err.Error(), " at path _id"), err.Error())
	})

	t.Run("sentinel rejects malformed id", func(t *testing.T) {
		err := Match(map[string]any{"_id": "not-an-id"}, map[string]any{"_id": "_mock_"})
		assert.Error(t, err)
	})

	t.Run("sentinel rejects missing id", func(t *testing.T) {
		err := Match(map[string]any{"name": "John"}, map[string]any{"_id": "_mock_"})
		assert.Error(t, err)
	})

	t.Run("top level identifier", func(t *testing.T) {
		assert.NoError(t, Match(id.String(), id))
		assert.Error(t, Match(NewID().String()+"x", id))
	})
}

func TestMatch_SpecialFields(t *testing.T) {
	id := NewID()

	t.Run("version and timestamps only check type", func(t *testing.T) {
		expected := map[string]any{
			"_id":       id,
			"__v":       "v",
			"createdAt": "date",
			"updatedAt": "date",
			"name":      "John Smith",
		}
		assert.NoError(t, Match(defaultActual(id), expected))
	})

	t.Run("version must be a number", func(t *testing.T) {
		actual := defaultActual(id)
		actual["__v"] = "2"
		err := Match(actual, map[string]any{"__v": 2})
		assert.EqualError(t, err, `expected "2" to be a number at path __v`)
	})

	t.Run("timestamp must be a date", func(t *testing.T) {
		actual := defaultActual(id)
		actual["updatedAt"] = 42
		err := Match(actual, map[string]any{"updatedAt": "_mock_"})
		assert.EqualError(t, err, "expected 42 to be a date at path updatedAt")
	})

	t.Run("RFC 3339 text counts as a date", func(t *testing.T) {
		actual := map[string]any{"createdAt": "2024-05-01T10:00:00Z"}
		assert.NoError(t, Match(actual, map[string]any{"createdAt": "_mock_"}))
	})
}

func TestMatch_Regex(t *testing.T) {
	expected := map[string]any{"name": regexp.MustCompile(`^John`)}

	assert.NoError(t, Match(map[string]any{"name": "John Smith"}, expected))
	assert.EqualError(t, Match(map[string]any{"name": "Jane"}, expected), `expected "Jane" to match /^John/ at path name`)
	assert.Error(t, Match(map[string]any{}, expected))

	numeric := map[string]any{"zip": regexp.MustCompile(`^\d{5}$`)}
	assert.NoError(t, Match(map[string]any{"zip": 12345}, numeric), "actual is coerced to a string")
}

func TestMatch_Sentinel(t *testing.T) {
	expected := map[string]any{"name": "_mock_"}

	assert.NoError(t, Match(map[string]any{"name": "anything"}, expected))
	assert.EqualError(t, Match(map[string]any{}, expected), "expected nil to be truthy at path name")
	assert.Error(t, Match(map[string]any{"name": ""}, expected))
}

func TestMatch_NestedStructures(t *testing.T) {
	id := NewID()
	actual := map[string]any{
		"_id":       id,
		"__v":       2,
		"createdAt": time.Now(),
		"updatedAt": time.Now(),
		"name":      "John Smith",
		"phones": []any{
			map[string]any{"type": "mobile", "number": 12345},
			map[string]any{"type": "work", "number": 67890},
		},
		"account": map[string]any{
			"accountNumber": "111111",
			"created":       time.Date(2010, 11, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	t.Run("pattern with sentinels", func(t *testing.T) {
		expected := map[string]any{
			"_id":       id.String(),
			"__v":       "v",
			"createdAt": "date",
			"updatedAt": "date",
			"name":      "John Smith",
			"phones": []any{
				map[string]any{"type": "mobile", "number": "_mock_"},
			},
			"account": map[string]any{
				"accountNumber": "111111",
				"created":       "_mock_",
			},
		}
		assert.NoError(t, Match(actual, expected))
	})

	t.Run("failure reports the leaf path", func(t *testing.T) {
		expected := map[string]any{
			"phones": []any{
				map[string]any{"type": "mobile"},
				map[string]any{"number": 99},
			},
		}
		assert.EqualError(t, Match(actual, expected), "expected 67890 to equal 99 at path phones[1].number")
	})

	t.Run("nested primitive array uses prefix semantics", func(t *testing.T) {
		a := map[string]any{"tags": []string{"a", "b", "c"}}
		assert.NoError(t, Match(a, map[string]any{"tags": []any{"a", "b"}}))
		assert.EqualError(t, Match(a, map[string]any{"tags": []any{"b"}}), `expected "a" to equal "b" at path tags[0]`)
	})

	t.Run("missing nested object", func(t *testing.T) {
		err := Match(map[string]any{}, map[string]any{"account": map[string]any{"accountNumber": "1"}})
		assert.EqualError(t, err, `expected nil to equal "1" at path account.accountNumber`)
	})
}

func TestMatch_NilLeaf(t *testing.T) {
	expected := map[string]any{"deletedAt": nil}

	assert.NoError(t, Match(map[string]any{"deletedAt": nil}, expected))
	assert.NoError(t, Match(map[string]any{}, expected))
	assert.EqualError(t, Match(map[string]any{"deletedAt": "yesterday"}, expected), `expected "yesterday" not to be truthy at path deletedAt`)
}

func TestMatch_EmptyPattern(t *testing.T) {
	assert.NoError(t, Match(map[string]any{"a": 1}, map[string]any{}))
	assert.NoError(t, Match([]any{map[string]any{"a": 1}}, []any{map[string]any{}}))
}

func TestMatch_FirstFailureIsDeterministic(t *testing.T) {
	actual := map[string]any{"a": 1, "b": 1, "c": 1}
	expected := map[string]any{"c": 2, "a": 2, "b": 2}

	for i := 0; i < 20; i++ {
		assert.EqualError(t, Match(actual, expected), "expected 1 to equal 2 at path a")
	}
}

func TestMatch_Structs(t *testing.T) {
	id := NewID()
	u := user{ID: id, Name: "John", notes: "private"}

	assert.NoError(t, Match(u, map[string]any{"_id": id.String(), "name": "John"}))
	assert.NoError(t, Match(&u, map[string]any{"name": regexp.MustCompile(`^Jo`)}))
	assert.NoError(t, MatchStrict(u, map[string]any{"_id": "_mock_", "name": "John"}), "omitempty fields are not paths")
}

func TestMatch_Documents(t *testing.T) {
	t.Run("single document", func(t *testing.T) {
		doc := &userDoc{id: NewID(), name: "John", email: "john@mail.com"}
		assert.NoError(t, Match(doc, map[string]any{"name": "John", "email": "john@mail.com"}))
	})

	t.Run("slice of documents against a shorter pattern", func(t *testing.T) {
		docs := []*userDoc{
			{id: NewID(), name: "John", email: "john@mail.com"},
			{id: NewID(), name: "Donald", email: "donald@mail.com"},
		}
		expected := []any{map[string]any{"name": "John", "email": "john@mail.com"}}
		assert.NoError(t, Match(docs, expected))
	})

	t.Run("round trip against own snapshot", func(t *testing.T) {
		doc := &userDoc{id: NewID(), name: "Ted", email: "ted@mail.com"}
		assert.NoError(t, Match(doc, doc.Plain()))
		assert.NoError(t, MatchStrict(doc, doc.Plain()))
	})
}

func TestMatchStrict(t *testing.T) {
	actual := []any{
		map[string]any{"name": "John", "email": "john@mail.com"},
		map[string]any{"name": "Donald", "email": "donald@mail.com"},
	}

	t.Run("extra actual paths fail", func(t *testing.T) {
		expected := []any{map[string]any{"name": "John", "email": "john@mail.com"}}
		err := MatchStrict(actual, expected)
		assert.EqualError(t, err, `expected paths ["[0].email", "[0].name", "[1].email", "[1].name"] to equal ["[0].email", "[0].name"]`)
		assert.NoError(t, Match(actual, expected))
	})

	t.Run("extra field fails", func(t *testing.T) {
		err := MatchStrict([]any{map[string]any{"a": 1, "b": 2}}, []any{map[string]any{"a": 1}})
		assert.Error(t, err)
	})

	t.Run("identical paths pass", func(t *testing.T) {
		assert.NoError(t, MatchStrict(actual, actual))
	})

	t.Run("values are still compared", func(t *testing.T) {
		err := MatchStrict(map[string]any{"a": 1}, map[string]any{"a": 2})
		assert.EqualError(t, err, "expected 1 to equal 2 at path a")
	})
}

func TestMatch_HTTPBodyExample(t *testing.T) {
	err := Match(map[string]any{"userId": 1}, map[string]any{"userId": 2})
	assert.EqualError(t, err, "expected 1 to equal 2 at path userId")

	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "userId", ae.Path)
	assert.Equal(t, 1, ae.Actual)
	assert.Equal(t, 2, ae.Expected)
	assert.True(t, IsMismatch(err))
}

func TestNew_Options(t *testing.T) {
	t.Run("custom id field", func(t *testing.T) {
		m := New(WithConfig(&config.Config{IDField: "id"}))
		id := NewID()
		assert.NoError(t, m.Match(map[string]any{"id": id}, map[string]any{"id": "_mock_"}))
		assert.Equal(t, "__v", m.Config().VersionField)
	})

	t.Run("id field option", func(t *testing.T) {
		m := New(WithIDField("key"))
		assert.NoError(t, m.Match(map[string]any{"key": NewID()}, map[string]any{"key": "_mock_"}))
	})

	t.Run("custom sentinel", func(t *testing.T) {
		m := New(WithSentinel("<any>"))
		assert.NoError(t, m.Match(map[string]any{"name": "x"}, map[string]any{"name": "<any>"}))
		assert.Error(t, m.Match(map[string]any{"name": "x"}, map[string]any{"name": "_mock_"}))
	})

	t.Run("custom rule runs first", func(t *testing.T) {
		m := New(WithRule(Rule{
			Name: "email",
			Applies: func(field string, _ *Node) bool {
				return field == "email"
			},
			Check: func(actual any, _ *Node) error {
				s, _ := actual.(string)
				if !strings.Contains(s, "@") {
					return fmt.Errorf("%q is not an email", s)
				}
				return nil
			},
		}))
		expected := map[string]any{"email": "ignored"}
		assert.NoError(t, m.Match(map[string]any{"email": "a@b.c"}, expected))
		assert.EqualError(t, m.Match(map[string]any{"email": "abc"}, expected), `"abc" is not an email at path email`)
	})
}

func TestPredicate(t *testing.T) {
	pred := Default().Predicate(map[string]any{"name": regexp.MustCompile(`^J`)})

	assert.NoError(t, pred(map[string]any{"name": "John"}))
	assert.Error(t, pred(map[string]any{"name": "Ted"}))
	assert.EqualError(t, Default().Predicate(10)(5), "expected 5 to equal 10")
}

type recordingT struct {
	errors []string
	failed bool
}

func (r *recordingT) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingT) FailNow() {
	r.failed = true
}

func TestAssertHelpers(t *testing.T) {
	t.Run("passing assertion", func(t *testing.T) {
		rec := &recordingT{}
		assert.True(t, Assert(rec, map[string]any{"a": 1}, map[string]any{"a": 1}))
		assert.Empty(t, rec.errors)
	})

	t.Run("failing assertion reports the path", func(t *testing.T) {
		rec := &recordingT{}
		assert.False(t, Assert(rec, map[string]any{"a": 1}, map[string]any{"a": 2}))
		require.Len(t, rec.errors, 1)
		assert.Contains(t, rec.errors[0], "expected 1 to equal 2 at path a")
	})

	t.Run("strict assertion", func(t *testing.T) {
		rec := &recordingT{}
		assert.False(t, AssertStrict(rec, map[string]any{"a": 1, "b": 2}, map[string]any{"a": 1}))
		assert.Len(t, rec.errors, 1)
	})

	t.Run("require stops the test", func(t *testing.T) {
		rec := &recordingT{}
		Require(rec, 1, 2)
		assert.True(t, rec.failed)

		rec = &recordingT{}
		Require(rec, 2, 2)
		assert.False(t, rec.failed)
	})

	t.Run("with testing.T", func(t *testing.T) {
		Assert(t, map[string]any{"name": "John"}, map[string]any{"name": "_mock_"})
	})
}
