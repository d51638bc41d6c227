package jsonb

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ============================================================
// Encode Tree
// ============================================================
//
// Encoding is two-phase: the traversal of the source value builds a
// mutable tree of nodes, and the finished root renders bottom-up into a
// single buffer. A node starts empty and commits to exactly one shape
// (scalar, keyed, unkeyed) on first use; requesting a conflicting shape
// afterwards is a programmer error and fails with a ShapeError.

type nodeKind uint8

const (
	nodeEmpty nodeKind = iota
	nodeScalar
	nodeKeyed
	nodeUnkeyed
)

func (k nodeKind) String() string {
	switch k {
	case nodeScalar:
		return "a scalar"
	case nodeKeyed:
		return "a keyed container"
	case nodeUnkeyed:
		return "an unkeyed container"
	default:
		return "nothing"
	}
}

// encNode is one slot in the encode tree. Each node is owned by exactly
// one parent (or the top-level encoder) and mutated only by the encoder
// operating at its path.
type encNode struct {
	kind    nodeKind
	raw     []byte // nodeScalar: complete header-wrapped element
	keyed   *orderedmap.OrderedMap[string, *encNode]
	unkeyed []*encNode
}

// setScalar stores an already header-wrapped element in the node.
func (n *encNode) setScalar(raw []byte, path *Path) error {
	if n.kind == nodeKeyed || n.kind == nodeUnkeyed {
		return &ShapeError{Path: path, Have: n.kind.String(), Want: "a scalar"}
	}
	n.kind = nodeScalar
	n.raw = raw
	return nil
}

// asKeyed commits the node to the keyed shape (create-or-fetch).
func (n *encNode) asKeyed(path *Path) error {
	switch n.kind {
	case nodeEmpty:
		n.kind = nodeKeyed
		n.keyed = orderedmap.New[string, *encNode]()
		return nil
	case nodeKeyed:
		return nil
	}
	return &ShapeError{Path: path, Have: n.kind.String(), Want: "a keyed container"}
}

// asUnkeyed commits the node to the unkeyed shape (create-or-fetch).
func (n *encNode) asUnkeyed(path *Path) error {
	switch n.kind {
	case nodeEmpty:
		n.kind = nodeUnkeyed
		return nil
	case nodeUnkeyed:
		return nil
	}
	return &ShapeError{Path: path, Have: n.kind.String(), Want: "an unkeyed container"}
}

// child returns the node stored under name, creating an empty one on
// first use. Insertion order is preserved for rendering. The node must
// already be keyed.
func (n *encNode) child(name string) *encNode {
	if c, ok := n.keyed.Get(name); ok {
		return c
	}
	c := &encNode{}
	n.keyed.Set(name, c)
	return c
}

// put replaces the node stored under name.
func (n *encNode) put(name string, c *encNode) {
	n.keyed.Set(name, c)
}

// reserve appends an empty slot to an unkeyed node and returns it. The
// caller holds the only handle and may fill the slot at any time before
// the root renders; a slot left empty renders as null.
func (n *encNode) reserve() *encNode {
	c := &encNode{}
	n.unkeyed = append(n.unkeyed, c)
	return c
}

// render appends the node's complete element to dst. Rendering never
// mutates the tree, so it is idempotent and the root may render more
// than once.
func (n *encNode) render(dst []byte, opts *EncodeOptions) []byte {
	switch n.kind {
	case nodeScalar:
		return append(dst, n.raw...)
	case nodeKeyed:
		var payload []byte
		for _, name := range n.memberNames(opts) {
			c, _ := n.keyed.Get(name)
			payload = appendElement(payload, textTagFor(name), []byte(name))
			payload = c.render(payload, opts)
		}
		return appendElement(dst, TagObject, payload)
	case nodeUnkeyed:
		var payload []byte
		for _, c := range n.unkeyed {
			payload = c.render(payload, opts)
		}
		return appendElement(dst, TagArray, payload)
	default:
		// an unfilled reserved slot encodes as null
		return append(dst, elemNull()...)
	}
}

// memberNames returns the keyed member names in the configured order.
func (n *encNode) memberNames(opts *EncodeOptions) []string {
	names := make([]string, 0, n.keyed.Len())
	for pair := n.keyed.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	if opts.SortKeys {
		sort.Strings(names)
	}
	return names
}
