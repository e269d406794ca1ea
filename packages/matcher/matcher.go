package matcher

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/abdul-hamid-achik/shapematch/packages/core/config"
)

// Matcher compares actual values against expected patterns.
type Matcher struct {
	cfg       *config.Config
	checker   Checker
	idPattern *regexp.Regexp
	custom    []Rule
	rules     []Rule
}

// Option is a functional option for configuring a Matcher.
type Option func(*Matcher)

// WithConfig sets the field conventions used by the matcher.
func WithConfig(cfg *config.Config) Option {
	return func(m *Matcher) {
		m.cfg = config.DefaultConfig().Merge(cfg)
	}
}

// WithChecker replaces the primitive assertions.
func WithChecker(c Checker) Option {
	return func(m *Matcher) {
		m.checker = c
	}
}

// WithRule adds a rule evaluated before the built in ones. Rules added
// later take precedence over rules added earlier.
func WithRule(r Rule) Option {
	return func(m *Matcher) {
		m.custom = append([]Rule{r}, m.custom...)
	}
}

// WithIDField sets the name of the identifier field.
func WithIDField(field string) Option {
	return func(m *Matcher) {
		m.cfg = m.cfg.Merge(&config.Config{IDField: field})
	}
}

// WithSentinel sets the expected value meaning "any present value".
func WithSentinel(s string) Option {
	return func(m *Matcher) {
		m.cfg = m.cfg.Merge(&config.Config{Sentinel: s})
	}
}

// New creates a Matcher. It panics if the configured identifier pattern
// does not compile; use config.Config.Validate to check it beforehand.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		cfg:     config.DefaultConfig(),
		checker: DefaultChecker{},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.idPattern = regexp.MustCompile(m.cfg.IDPattern)
	m.rules = append(append([]Rule(nil), m.custom...), m.defaultRules()...)
	return m
}

var defaultMatcher = New()

// Default returns the matcher used by the package level functions.
func Default() *Matcher {
	return defaultMatcher
}

// Config returns the field conventions of the matcher.
func (m *Matcher) Config() *config.Config {
	return m.cfg
}

// Checker returns the primitive assertions of the matcher.
func (m *Matcher) Checker() Checker {
	return m.checker
}

// Match checks that actual satisfies the expected pattern. Sequences in
// actual may be longer than their pattern.
func (m *Matcher) Match(actual, expected any) error {
	return m.match(actual, expected, false)
}

// MatchStrict is like Match but additionally requires that actual has
// exactly the leaf paths of expected, no more and no fewer.
func (m *Matcher) MatchStrict(actual, expected any) error {
	return m.match(actual, expected, true)
}

// Equal checks plain deep equality of two values.
func (m *Matcher) Equal(actual, expected any) error {
	return m.checker.Equal(Normalize(actual), Normalize(expected))
}

// Predicate returns a reusable function reporting whether a value
// satisfies expected.
func (m *Matcher) Predicate(expected any) func(actual any) error {
	pattern := Normalize(expected)
	return func(actual any) error {
		return m.Match(actual, pattern)
	}
}

func (m *Matcher) match(actual, expected any, strict bool) error {
	expected = Normalize(expected)
	if expected == nil {
		return m.checker.Falsy(actual)
	}

	tree := compile(expected, m.cfg.Sentinel)
	switch {
	case tree.IsSimple():
		return m.checker.Equal(Normalize(actual), expected)
	case tree.Kind == KindIdentifier:
		return m.checkIdentifier(Normalize(actual), tree)
	case tree.Kind == KindSeq && allSimple(tree.Children):
		return m.checker.Equal(Normalize(actual), expected)
	}

	actual = Normalize(actual)
	leaves := tree.Leaves()

	if strict {
		actualPaths := compile(actual, m.cfg.Sentinel).Paths()
		expectedPaths := tree.Paths()
		sort.Strings(actualPaths)
		sort.Strings(expectedPaths)
		if err := m.checker.Equal(actualPaths, expectedPaths); err != nil {
			return mismatch(fmt.Sprintf("expected paths %s to equal %s", formatValue(actualPaths), formatValue(expectedPaths)), actualPaths, expectedPaths)
		}
	}

	for _, leaf := range leaves {
		actualVal, _ := Lookup(actual, leaf.Path)
		r := m.rule(leaf.Path.Field(), leaf.Node)
		if err := r.Check(actualVal, leaf.Node); err != nil {
			return atPath(err, leaf.Path.String())
		}
	}
	return nil
}

func allSimple(nodes []*Node) bool {
	for _, n := range nodes {
		if !n.IsSimple() {
			return false
		}
	}
	return true
}

// Match checks actual against expected using the default matcher.
func Match(actual, expected any) error {
	return defaultMatcher.Match(actual, expected)
}

// MatchStrict checks actual against expected using the default matcher,
// requiring identical leaf paths.
func MatchStrict(actual, expected any) error {
	return defaultMatcher.MatchStrict(actual, expected)
}
