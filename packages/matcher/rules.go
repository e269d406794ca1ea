package matcher

import (
	"fmt"
)

// Rule decides how a single leaf is compared. Applies receives the
// terminal field name of the leaf and its expected node; the first rule
// that applies runs Check against the actual value found at the leaf.
type Rule struct {
	Name    string
	Applies func(field string, expected *Node) bool
	Check   func(actual any, expected *Node) error
}

// defaultRules returns the built in rule table in precedence order.
func (m *Matcher) defaultRules() []Rule {
	return []Rule{
		{
			Name: "identifier",
			Applies: func(field string, expected *Node) bool {
				return field == m.cfg.IDField || expected.Kind == KindIdentifier
			},
			Check: m.checkIdentifier,
		},
		{
			Name: "version",
			Applies: func(field string, _ *Node) bool {
				return m.cfg.VersionField != "" && field == m.cfg.VersionField
			},
			Check: func(actual any, _ *Node) error {
				return m.checker.Number(actual)
			},
		},
		{
			Name: "timestamp",
			Applies: func(field string, _ *Node) bool {
				return m.cfg.IsTimestampField(field)
			},
			Check: func(actual any, _ *Node) error {
				return m.checker.Date(actual)
			},
		},
		{
			Name: "regex",
			Applies: func(_ string, expected *Node) bool {
				return expected.Kind == KindRegex
			},
			Check: func(actual any, expected *Node) error {
				return m.checker.Match(actual, expected.Regex)
			},
		},
		{
			Name: "mock",
			Applies: func(_ string, expected *Node) bool {
				return expected.Kind == KindMock
			},
			Check: func(actual any, _ *Node) error {
				return m.checker.Truthy(actual)
			},
		},
		{
			Name: "general",
			Applies: func(string, *Node) bool {
				return true
			},
			Check: func(actual any, expected *Node) error {
				return m.match(actual, expected.Value, false)
			},
		},
	}
}

// checkIdentifier compares identifiers by canonical string form. The
// sentinel accepts any value whose canonical form has identifier syntax.
func (m *Matcher) checkIdentifier(actual any, expected *Node) error {
	got, _ := Canonical(actual)
	if expected.Kind == KindMock {
		if err := m.checker.Match(got, m.idPattern); err != nil {
			return mismatch(fmt.Sprintf("expected %s to be an identifier matching /%s/", formatValue(actual), m.idPattern), actual, expected.Value)
		}
		return nil
	}

	want, present := Canonical(expected.Value)
	if expected.Kind == KindIdentifier {
		want, present = expected.Canonical, true
	}
	_, gotPresent := Canonical(actual)
	if got == want && gotPresent == present {
		return nil
	}
	return mismatch(fmt.Sprintf("expected identifier %s to equal %s", formatValue(actual), formatValue(expected.Value)), actual, expected.Value)
}

// rule returns the first rule applying to the leaf.
func (m *Matcher) rule(field string, expected *Node) Rule {
	for _, r := range m.rules {
		if r.Applies(field, expected) {
			return r
		}
	}
	// The general rule always applies.
	return m.rules[len(m.rules)-1]
}
