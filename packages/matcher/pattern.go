package matcher

import (
	"encoding/json"
	"regexp"
	"sort"
	"time"
)

// Kind identifies the variant of a pattern Node.
type Kind int

const (
	KindNil Kind = iota
	KindPrimitive
	KindRegex
	KindMock
	KindIdentifier
	KindMap
	KindSeq
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindPrimitive:
		return "primitive"
	case KindRegex:
		return "regex"
	case KindMock:
		return "mock"
	case KindIdentifier:
		return "identifier"
	case KindMap:
		return "map"
	case KindSeq:
		return "sequence"
	default:
		return "unknown"
	}
}

// Node is one node of a compiled pattern tree.
type Node struct {
	Kind Kind
	// Value is the normalized value the node was compiled from.
	Value any
	// Canonical is the canonical string form of an identifier leaf.
	Canonical string

	Regex *regexp.Regexp

	// Keys holds the sorted keys of a map node, Children its child nodes
	// in key or index order.
	Keys     []string
	Children []*Node
}

// IsLeaf reports whether the node is a scalar leaf.
func (n *Node) IsLeaf() bool {
	return n.Kind != KindMap && n.Kind != KindSeq
}

// IsSimple reports whether the node is a literal, regular expression or
// sentinel leaf.
func (n *Node) IsSimple() bool {
	switch n.Kind {
	case KindPrimitive, KindRegex, KindMock:
		return true
	}
	return false
}

// Compile builds the pattern tree of v. The value is normalized first;
// strings equal to sentinel become mock leaves.
func Compile(v any, sentinel string) *Node {
	return compile(Normalize(v), sentinel)
}

func compile(v any, sentinel string) *Node {
	switch x := v.(type) {
	case nil:
		return &Node{Kind: KindNil}
	case *regexp.Regexp:
		return &Node{Kind: KindRegex, Value: x, Regex: x}
	case string:
		if x == sentinel {
			return &Node{Kind: KindMock, Value: x}
		}
		return &Node{Kind: KindPrimitive, Value: x}
	case bool, time.Time, json.Number:
		return &Node{Kind: KindPrimitive, Value: x}
	case map[string]any:
		n := &Node{Kind: KindMap, Value: x, Keys: make([]string, 0, len(x))}
		for k := range x {
			n.Keys = append(n.Keys, k)
		}
		sort.Strings(n.Keys)
		n.Children = make([]*Node, len(n.Keys))
		for i, k := range n.Keys {
			n.Children[i] = compile(x[k], sentinel)
		}
		return n
	case []any:
		n := &Node{Kind: KindSeq, Value: x, Children: make([]*Node, len(x))}
		for i, item := range x {
			n.Children[i] = compile(item, sentinel)
		}
		return n
	}
	if isIdentifier(v) {
		c, _ := Canonical(v)
		return &Node{Kind: KindIdentifier, Value: v, Canonical: c}
	}
	return &Node{Kind: KindPrimitive, Value: v}
}

// Leaf is a scalar leaf of a pattern together with its address.
type Leaf struct {
	Path Path
	Node *Node
}

// Leaves enumerates every scalar leaf depth-first: map keys in sorted
// order, sequence elements by index. Container nodes are not emitted
// themselves, so empty maps and slices contribute nothing.
func (n *Node) Leaves() []Leaf {
	var leaves []Leaf
	n.walk(nil, &leaves)
	return leaves
}

func (n *Node) walk(prefix Path, leaves *[]Leaf) {
	if n.IsLeaf() {
		if len(prefix) > 0 {
			*leaves = append(*leaves, Leaf{Path: prefix, Node: n})
		}
		return
	}
	for i, child := range n.Children {
		if n.Kind == KindMap {
			child.walk(prefix.Key(n.Keys[i]), leaves)
		} else {
			child.walk(prefix.Index(i), leaves)
		}
	}
}

// Paths returns the rendered paths of every leaf.
func (n *Node) Paths() []string {
	leaves := n.Leaves()
	paths := make([]string, len(leaves))
	for i, l := range leaves {
		paths[i] = l.Path.String()
	}
	return paths
}
