package liquid2front

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type parseQueryTest struct {
	name    string
	path    string
	want    *Query
	wantErr string
}

func child(selectors ...Selector) Segment {
	return Segment{Kind: ChildSegment, Selectors: selectors}
}

func recursive(selectors ...Selector) Segment {
	return Segment{Kind: RecursiveSegment, Selectors: selectors}
}

var parseQueryTests = []parseQueryTest{
	{
		name: "rootOnly",
		path: "$",
		want: &Query{Root: '$', Explicit: true},
	},
	{
		name: "dotName",
		path: "$.a.b",
		want: &Query{Root: '$', Explicit: true, Segments: []Segment{
			child(NameSelector{Name: "a"}),
			child(NameSelector{Name: "b"}),
		}},
	},
	{
		name: "implicitRootDotIndex",
		path: "a.b[0]",
		want: &Query{Root: '$', Explicit: false, Segments: []Segment{
			child(NameSelector{Name: "a"}),
			child(NameSelector{Name: "b"}),
			child(IndexSelector{Index: 0}),
		}},
	},
	{
		name: "negativeIndex",
		path: "$.a.b[-1]",
		want: &Query{Root: '$', Explicit: true, Segments: []Segment{
			child(NameSelector{Name: "a"}),
			child(NameSelector{Name: "b"}),
			child(IndexSelector{Index: -1}),
		}},
	},
	{
		name: "recursiveWild",
		path: "$..*",
		want: &Query{Root: '$', Explicit: true, Segments: []Segment{
			recursive(WildSelector{}),
		}},
	},
	{
		name: "slice",
		path: "$[0:10:2]",
		want: &Query{Root: '$', Explicit: true, Segments: []Segment{
			child(SliceSelector{Start: int64p(0), Stop: int64p(10), Step: int64p(2)}),
		}},
	},
	{
		name: "implicitBracketName",
		path: "['a b c']",
		want: &Query{Root: '$', Explicit: false, Segments: []Segment{
			child(NameSelector{Name: "a b c"}),
		}},
	},
	{
		name:    "sliceStepZero",
		path:    "$[::0]",
		wantErr: "slice step must not be zero",
	},
	{
		name:    "trailingInput",
		path:    "$.a extra",
		wantErr: "trailing input after query",
	},
	{
		name:    "emptySelectorList",
		path:    "$[]",
		wantErr: "empty selector list",
	},
}

func int64p(v int64) *int64 { return &v }

// clearSelectorSpan strips Span so equality checks focus on selector
// payload rather than exact source position.
func clearSelectorSpan(sel Selector) Selector {
	switch v := sel.(type) {
	case NameSelector:
		v.Span = Span{}
		return v
	case IndexSelector:
		v.Span = Span{}
		return v
	case SliceSelector:
		v.Span = Span{}
		return v
	case WildSelector:
		v.Span = Span{}
		return v
	default:
		return sel
	}
}

func TestParseQuery(t *testing.T) {
	for _, tt := range parseQueryTests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuery(tt.path)
			if tt.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want.Root, got.Root)
			require.Equal(t, tt.want.Explicit, got.Explicit)
			require.Equal(t, len(tt.want.Segments), len(got.Segments))
			for i, seg := range tt.want.Segments {
				require.Equal(t, seg.Kind, got.Segments[i].Kind, "segment %d kind", i)
				require.Equal(t, len(seg.Selectors), len(got.Segments[i].Selectors), "segment %d selector count", i)
				for j, wantSel := range seg.Selectors {
					require.Equal(t, clearSelectorSpan(wantSel), clearSelectorSpan(got.Segments[i].Selectors[j]), "segment %d selector %d", i, j)
				}
			}
		})
	}
}

func TestQuerySingularity(t *testing.T) {
	singular, err := ParseQuery("$.a.b[0]")
	require.NoError(t, err)
	require.True(t, singular.IsSingular())

	nonSingular, err := ParseQuery("$.a[*]")
	require.NoError(t, err)
	require.False(t, nonSingular.IsSingular())
}

func TestSingularQuerySelector(t *testing.T) {
	q, err := ParseQuery("a[a.b.c]")
	require.NoError(t, err)
	require.Len(t, q.Segments, 2)
	sel, ok := q.Segments[1].Selectors[0].(SingularQuerySelector)
	require.True(t, ok)
	require.True(t, sel.Query.IsSingular())
}

func TestSingularQuerySelectorRejectsNonSingular(t *testing.T) {
	_, err := ParseQuery("a[a[*]]")
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-singular query in singular context")
}

func TestParseJSONPathQueryStrictMode(t *testing.T) {
	_, err := ParseJSONPathQuery("a-b")
	require.Error(t, err, "strict mode must reject hyphenated shorthand names")

	_, err = ParseJSONPathQuery("$[a]")
	require.Error(t, err, "strict mode must reject unquoted name selectors")

	q, err := ParseJSONPathQuery(`$["a"]`)
	require.NoError(t, err)
	require.Equal(t, "a", q.Segments[0].Selectors[0].(NameSelector).Name)
}

func TestFilterSelectorComparison(t *testing.T) {
	q, err := ParseQuery("$[?@.x == 1]")
	require.NoError(t, err)
	sel, ok := q.Segments[0].Selectors[0].(FilterSelector)
	require.True(t, ok)
	cmp, ok := sel.Expr.(FilterComparison)
	require.True(t, ok)
	require.Equal(t, CompareEq, cmp.Op)
	rq, ok := cmp.Left.(FilterRelativeQuery)
	require.True(t, ok)
	require.Equal(t, "x", rq.Query.Segments[0].Selectors[0].(NameSelector).Name)
	require.Equal(t, int64(1), cmp.Right.(FilterInt).Value)
}

func TestFilterExpressionPrecedence(t *testing.T) {
	q, err := ParseQuery("$[?@.a == 1 || @.b == 2 && @.c == 3]")
	require.NoError(t, err)
	sel := q.Segments[0].Selectors[0].(FilterSelector)
	top, ok := sel.Expr.(FilterLogical)
	require.True(t, ok)
	require.Equal(t, LogicalOr, top.Op)
	right, ok := top.Right.(FilterLogical)
	require.True(t, ok, "&& must bind tighter than ||")
	require.Equal(t, LogicalAnd, right.Op)
}

func TestFilterNonSingularComparisonOperandRejected(t *testing.T) {
	_, err := ParseQuery("$[?@.a[*] == 1]")
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-singular query in singular context")
}

func TestFilterUnrequiredNonSingularQueryParses(t *testing.T) {
	_, err := ParseQuery("$[?@.x]")
	require.NoError(t, err, "a bare filter query need not be singular")

	_, err = ParseQuery("$[?@.x[*]]")
	require.NoError(t, err, "a bare non-singular filter query parses")
}

func TestFilterUnknownFunctionIsNotAParseError(t *testing.T) {
	_, err := ParseQuery("$[?totallyUnknownFn(@.x)]")
	require.NoError(t, err)
}
