// Package matcher provides structural comparison of runtime values against
// expected patterns for use inside test assertions.
//
// Expected patterns are nested maps and slices whose leaves may be:
//   - Literal values (compared by deep equality)
//   - Regular expressions (the actual value must match)
//   - The "_mock_" sentinel (the actual value must be present)
//   - Identifiers (compared by canonical string form)
//   - nil (the actual value must be absent or falsy)
//
// Fields named _id, __v, createdAt and updatedAt get dedicated rules.
//
// Identifiers are ID values, uuid.UUID values and anything implementing
// Identity. A "_mock_" identifier field only checks that the canonical form
// matches the configured id pattern, ^[a-z0-9]{24}$ by default, which fits
// ID. Collections keyed by UUIDs must set config.Config.IDPattern:
//
//	m := matcher.New(matcher.WithConfig(&config.Config{
//		IDPattern: `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`,
//	}))
// A failing comparison reports the path of the offending leaf, e.g.
// "expected 1 to equal 2 at path phones[0].number".
package matcher
