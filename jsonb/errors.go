package jsonb

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// Path
// ============================================================

// Path locates a value inside a nested structure for error reporting.
// It is an immutable chain of key/index segments: appending returns a
// new Path sharing the parent's structure, so sibling containers can
// extend the same parent independently. A nil *Path is the root.
type Path struct {
	parent *Path
	key    string
	index  int
	named  bool
	depth  int
}

// Key returns p extended by an object member name.
func (p *Path) Key(name string) *Path {
	return &Path{parent: p, key: name, named: true, depth: p.Depth() + 1}
}

// Index returns p extended by an array position.
func (p *Path) Index(i int) *Path {
	return &Path{parent: p, index: i, depth: p.Depth() + 1}
}

// Depth returns the number of segments in the path.
func (p *Path) Depth() int {
	if p == nil {
		return 0
	}
	return p.depth
}

// Segments returns the path segments from root to leaf. Key segments
// are the member name, index segments the decimal position.
func (p *Path) Segments() []string {
	if p == nil {
		return nil
	}
	segs := make([]string, p.depth)
	for n := p; n != nil; n = n.parent {
		if n.named {
			segs[n.depth-1] = n.key
		} else {
			segs[n.depth-1] = strconv.Itoa(n.index)
		}
	}
	return segs
}

// String renders the path in a compact $.key[index] form.
func (p *Path) String() string {
	if p == nil {
		return "$"
	}
	var sb strings.Builder
	sb.WriteByte('$')
	writePath(&sb, p)
	return sb.String()
}

func writePath(sb *strings.Builder, p *Path) {
	if p == nil {
		return
	}
	writePath(sb, p.parent)
	if p.named {
		sb.WriteByte('.')
		sb.WriteString(p.key)
	} else {
		sb.WriteByte('[')
		sb.WriteString(strconv.Itoa(p.index))
		sb.WriteByte(']')
	}
}

// ============================================================
// Error taxonomy
// ============================================================

// ErrUnsupported is wrapped by encode/decode failures on Go types the
// codec has no representation for (channels, funcs, complex numbers).
var ErrUnsupported = errors.New("unsupported type")

// CorruptError reports a buffer that violates the JSONB format itself:
// a reserved type tag, a payload length past the end of the buffer, or
// trailing garbage. Decoding aborts immediately.
type CorruptError struct {
	Offset int    // byte offset of the offending element
	Reason string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("jsonb: malformed buffer at offset %d: %s", e.Offset, e.Reason)
}

// TypeError reports an element whose tag is not among the tags the
// requested target accepts.
type TypeError struct {
	Path *Path
	Got  Tag
	Want string // description of the accepted tags, e.g. "int"
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("jsonb: cannot decode %s as %s at %s", e.Got, e.Want, e.Path)
}

// MissingError reports a required object member that is absent, or an
// array read past the last element. Distinct from decoding a present
// null.
type MissingError struct {
	Path *Path // includes the missing segment
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("jsonb: missing value at %s", e.Path)
}

// ValueError reports a payload whose bytes are structurally fine but
// fail the target scalar's textual parse rule (bad UTF-8, bad base64,
// bad decimal, bad timestamp).
type ValueError struct {
	Path   *Path
	Tag    Tag
	Text   string // the payload text that failed to parse
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("jsonb: invalid %s payload %q at %s: %s", e.Tag, e.Text, e.Path, e.Reason)
}

// ShapeError reports an encode-side container conflict: a keyed
// container requested at a path already holding an unkeyed one, or vice
// versa. This is a programmer usage error, not a data error, and the
// encode aborts immediately.
type ShapeError struct {
	Path *Path
	Have string
	Want string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("jsonb: %s container requested at %s which already holds %s", e.Want, e.Path, e.Have)
}
