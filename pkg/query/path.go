package query

import "strings"

// SegmentKind tells the resolver which table a path segment may descend.
type SegmentKind int

const (
	// Arg segments name a called field or an argument; they walk Props.
	Arg SegmentKind = iota
	// Field segments name a selected field; they walk Returns.
	Field
)

// Segment is one step of a schema path.
type Segment struct {
	Name string
	Kind SegmentKind
}

// Path locates a position in the selection tree relative to a root
// operation or type name.
type Path []Segment

// ArgSegment returns an Arg segment.
func ArgSegment(name string) Segment {
	return Segment{Name: name, Kind: Arg}
}

// FieldSegment returns a Field segment.
func FieldSegment(name string) Segment {
	return Segment{Name: name, Kind: Field}
}

// Append returns a new path with s added; p is left untouched.
func (p Path) Append(s ...Segment) Path {
	out := make(Path, 0, len(p)+len(s))
	out = append(out, p...)
	return append(out, s...)
}

// String renders the path with field segments tagged, e.g.
// "field<>query|user|id".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		if s.Kind == Field {
			parts[i] = "field<>" + s.Name
		} else {
			parts[i] = s.Name
		}
	}
	return strings.Join(parts, Separator)
}

// Separator joins path segments in rendered paths and scalar path keys.
const Separator = "|"

func joinPath(parts []string) string {
	return strings.Join(parts, Separator)
}

func appendKey(parts []string, k string) []string {
	out := make([]string, 0, len(parts)+1)
	out = append(out, parts...)
	return append(out, k)
}
