package liquid2front

import (
	"fmt"
	"strconv"
	"strings"
)

// FilterExpressionKind discriminates the filter sub-grammar's node types
// (spec §3 FilterExpression sum).
type FilterExpressionKind int

const (
	FilterTrueKind FilterExpressionKind = iota
	FilterFalseKind
	FilterNullKind
	FilterIntKind
	FilterFloatKind
	FilterStringKind
	FilterNotKind
	FilterLogicalKind
	FilterComparisonKind
	FilterRelativeQueryKind
	FilterRootQueryKind
	FilterFunctionKind
)

// FilterExpression is the common interface implemented by every node in a
// filter selector's (`?...`) logical/comparison sub-grammar.
type FilterExpression interface {
	Kind() FilterExpressionKind
	String() string
}

type FilterTrue struct{ Span Span }

func (FilterTrue) Kind() FilterExpressionKind { return FilterTrueKind }
func (FilterTrue) String() string             { return "true" }

type FilterFalse struct{ Span Span }

func (FilterFalse) Kind() FilterExpressionKind { return FilterFalseKind }
func (FilterFalse) String() string             { return "false" }

type FilterNull struct{ Span Span }

func (FilterNull) Kind() FilterExpressionKind { return FilterNullKind }
func (FilterNull) String() string             { return "null" }

type FilterInt struct {
	Span  Span
	Value int64
}

func (FilterInt) Kind() FilterExpressionKind { return FilterIntKind }
func (e FilterInt) String() string           { return strconv.FormatInt(e.Value, 10) }

type FilterFloat struct {
	Span  Span
	Value float64
}

func (FilterFloat) Kind() FilterExpressionKind { return FilterFloatKind }
func (e FilterFloat) String() string           { return strconv.FormatFloat(e.Value, 'g', -1, 64) }

type FilterString struct {
	Span  Span
	Value string
}

func (FilterString) Kind() FilterExpressionKind { return FilterStringKind }
func (e FilterString) String() string           { return strconv.Quote(e.Value) }

// FilterNot is unary logical negation (`!expr`).
type FilterNot struct {
	Span Span
	Expr FilterExpression
}

func (FilterNot) Kind() FilterExpressionKind { return FilterNotKind }
func (e FilterNot) String() string           { return "!" + e.Expr.String() }

type LogicalOp int

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
)

func (op LogicalOp) String() string {
	if op == LogicalAnd {
		return "&&"
	}
	return "||"
}

// FilterLogical combines two filter expressions with `&&`/`||`. `&&`
// binds tighter than `||` (spec §4.3 precedence table).
type FilterLogical struct {
	Span        Span
	Left, Right FilterExpression
	Op          LogicalOp
}

func (FilterLogical) Kind() FilterExpressionKind { return FilterLogicalKind }
func (e FilterLogical) String() string {
	return fmt.Sprintf("%s%s%s", e.Left.String(), e.Op.String(), e.Right.String())
}

type ComparisonOp int

const (
	CompareEq ComparisonOp = iota
	CompareNe
	CompareGe
	CompareGt
	CompareLe
	CompareLt
)

func (op ComparisonOp) String() string {
	switch op {
	case CompareEq:
		return "=="
	case CompareNe:
		return "!="
	case CompareGe:
		return ">="
	case CompareGt:
		return ">"
	case CompareLe:
		return "<="
	default:
		return "<"
	}
}

// FilterComparison compares two operands. Cascaded comparisons
// (`a == b == c`) are rejected by the parser, not representable here.
type FilterComparison struct {
	Span        Span
	Left, Right FilterExpression
	Op          ComparisonOp
}

func (FilterComparison) Kind() FilterExpressionKind { return FilterComparisonKind }
func (e FilterComparison) String() string {
	return fmt.Sprintf("%s%s%s", e.Left.String(), e.Op.String(), e.Right.String())
}

// FilterRelativeQuery wraps a Query rooted at the current filter context
// (`@...`).
type FilterRelativeQuery struct {
	Span  Span
	Query *Query
}

func (FilterRelativeQuery) Kind() FilterExpressionKind { return FilterRelativeQueryKind }
func (e FilterRelativeQuery) String() string            { return e.Query.String() }

// FilterRootQuery wraps a Query rooted at the document root (`$...`) used
// from within a filter expression.
type FilterRootQuery struct {
	Span  Span
	Query *Query
}

func (FilterRootQuery) Kind() FilterExpressionKind { return FilterRootQueryKind }
func (e FilterRootQuery) String() string            { return e.Query.String() }

// FilterFunction is a function call `name(arg, ...)`. Name resolution is
// deferred to the downstream filter function registry; an unknown name is
// not a parse error (spec §4.3 Failures).
type FilterFunction struct {
	Span Span
	Name string
	Args []FilterExpression
}

func (FilterFunction) Kind() FilterExpressionKind { return FilterFunctionKind }
func (e FilterFunction) String() string {
	var b strings.Builder
	b.WriteString(e.Name)
	b.WriteByte('(')
	for i, a := range e.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}
