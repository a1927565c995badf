package liquid2front

import (
	"fmt"
	"strconv"
	"strings"
)

// Query is an ordered sequence of Segments, rooted either explicitly
// (`$` or `@`) or implicitly (bracketed selection or bare member name with
// no leading root symbol — spec §4.3 "Implicit root"). Root is always one
// of '$' or '@'; Explicit records whether the source actually wrote it.
type Query struct {
	Span     Span
	Root     rune // '$' (document root) or '@' (current filter context)
	Explicit bool
	Segments []Segment

	// singular is computed once, right after parsing, by the post-parse
	// validation pass in singular.go; it is exported via IsSingular().
	singular bool
}

// IsSingular reports whether this query is provably restricted to at most
// one result node: every segment is a Child segment with exactly one
// Name or Index selector (spec §4.2 invariant, §4.3 "Singular-query
// detection").
func (q *Query) IsSingular() bool { return q.singular }

func (q *Query) String() string {
	var b strings.Builder
	b.WriteRune(q.Root)
	for _, s := range q.Segments {
		b.WriteString(s.String())
	}
	return b.String()
}

// SegmentKind discriminates a Query segment: a Child segment applies its
// selectors to the immediate children of the current node; a Recursive
// segment (`..`) applies them to every descendant.
type SegmentKind int

const (
	ChildSegment SegmentKind = iota
	RecursiveSegment
)

// Segment is one step of a Query: `.name`/`.*`/`[...]` (Child) or
// `..name`/`..*`/`..[...]` (Recursive).
type Segment struct {
	Span      Span
	Kind      SegmentKind
	Selectors []Selector
}

func (s Segment) String() string {
	var b strings.Builder
	if s.Kind == RecursiveSegment {
		b.WriteString("..")
	}
	if len(s.Selectors) == 1 {
		if ns, ok := s.Selectors[0].(NameSelector); ok && s.Kind == ChildSegment && isPlainShorthandName(ns.Name) {
			b.WriteByte('.')
			b.WriteString(ns.Name)
			return b.String()
		}
		if _, ok := s.Selectors[0].(WildSelector); ok {
			if s.Kind == ChildSegment {
				b.WriteByte('.')
			}
			b.WriteByte('*')
			return b.String()
		}
	}
	b.WriteByte('[')
	for i, sel := range s.Selectors {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(sel.String())
	}
	b.WriteByte(']')
	return b.String()
}

func isPlainShorthandName(s string) bool {
	if s == "" {
		return false
	}
	runes := []rune(s)
	if !isWordStart(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !isWordContinue(r) {
			return false
		}
	}
	return true
}

// SelectorKind discriminates the five (six, with the SingularQuery
// extension) forms a bracketed selection element may take.
type SelectorKind int

const (
	NameKind SelectorKind = iota
	IndexKind
	SliceKind
	WildKind
	FilterKind
	SingularQueryKind
)

// Selector is one element of a bracketed selection: a Name, Index, Slice,
// Wild, Filter, or (extension) SingularQuery selector.
type Selector interface {
	Kind() SelectorKind
	String() string
}

// NameSelector selects a single named child by key.
type NameSelector struct {
	Span Span
	Name string
}

func (NameSelector) Kind() SelectorKind { return NameKind }
func (s NameSelector) String() string   { return strconv.Quote(s.Name) }

// IndexSelector selects a single array element by (possibly negative) index.
type IndexSelector struct {
	Span  Span
	Index int64
}

func (IndexSelector) Kind() SelectorKind { return IndexKind }
func (s IndexSelector) String() string   { return fmt.Sprintf("%d", s.Index) }

// SliceSelector selects a range of array elements. Start/Stop/Step are nil
// when the bound was omitted from the source — absent, not zero (spec §4.3
// "Missing bounds are preserved as absent").
type SliceSelector struct {
	Span  Span
	Start *int64
	Stop  *int64
	Step  *int64
}

func (SliceSelector) Kind() SelectorKind { return SliceKind }
func (s SliceSelector) String() string {
	fmtOpt := func(v *int64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatInt(*v, 10)
	}
	step := int64(1)
	if s.Step != nil {
		step = *s.Step
	}
	return fmt.Sprintf("%s:%s:%d", fmtOpt(s.Start), fmtOpt(s.Stop), step)
}

// WildSelector selects every child of the current node.
type WildSelector struct {
	Span Span
}

func (WildSelector) Kind() SelectorKind { return WildKind }
func (WildSelector) String() string     { return "*" }

// FilterSelector selects every child for which Expr evaluates truthy.
type FilterSelector struct {
	Span Span
	Expr FilterExpression
}

func (FilterSelector) Kind() SelectorKind { return FilterKind }
func (s FilterSelector) String() string   { return "?" + s.Expr.String() }

// SingularQuerySelector is an extension beyond RFC 9535: a nested query,
// provably singular (spec §3 invariants), used as a dynamic key or index
// into the enclosing query — e.g. `a[a.b.c]`.
type SingularQuerySelector struct {
	Span  Span
	Query *Query
}

func (SingularQuerySelector) Kind() SelectorKind { return SingularQueryKind }
func (s SingularQuerySelector) String() string    { return s.Query.String() }
