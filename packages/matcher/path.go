package matcher

import (
	"strconv"
	"strings"
)

// Segment is one step of a Path: a map key or a sequence index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Path addresses a value inside a nested structure. It renders as
// a.b[0].c: keys are joined with dots, indices are bracketed.
type Path []Segment

// Key returns a copy of p extended with a key segment.
func (p Path) Key(k string) Path {
	return p.append(Segment{Key: k})
}

// Index returns a copy of p extended with an index segment.
func (p Path) Index(i int) Path {
	return p.append(Segment{Index: i, IsIndex: true})
}

func (p Path) append(s Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// Field returns the terminal key of the path, or "" when the path ends
// with an index.
func (p Path) Field() string {
	if len(p) == 0 || p[len(p)-1].IsIndex {
		return ""
	}
	return p[len(p)-1].Key
}

func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		if s.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.Index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.Key)
	}
	return b.String()
}

// ParsePath parses the rendered form of a path. Both items[0].name and
// items.0.name are accepted; the latter yields a key segment that Lookup
// also applies to sequences.
func ParsePath(s string) Path {
	var p Path
	for _, part := range strings.Split(s, ".") {
		for part != "" {
			open := strings.IndexByte(part, '[')
			if open == -1 {
				p = append(p, Segment{Key: part})
				break
			}
			if open > 0 {
				p = append(p, Segment{Key: part[:open]})
			}
			end := strings.IndexByte(part[open:], ']')
			if end == -1 {
				p = append(p, Segment{Key: part[open:]})
				break
			}
			inner := part[open+1 : open+end]
			if i, err := strconv.Atoi(inner); err == nil {
				p = append(p, Segment{Index: i, IsIndex: true})
			} else {
				p = append(p, Segment{Key: inner})
			}
			part = part[open+end+1:]
		}
	}
	return p
}

// Lookup extracts the value addressed by p from a normalized value. The
// boolean is false when any step along the path is missing.
func Lookup(root any, p Path) (any, bool) {
	cur := root
	for _, s := range p {
		switch node := cur.(type) {
		case map[string]any:
			key := s.Key
			if s.IsIndex {
				key = strconv.Itoa(s.Index)
			}
			v, ok := node[key]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i := s.Index
			if !s.IsIndex {
				n, err := strconv.Atoi(s.Key)
				if err != nil {
					return nil, false
				}
				i = n
			}
			if i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}
