package liquid2front

import (
	"fmt"
	"strings"
)

// Dump renders a human-readable tree of src's markup nodes, keyed by node
// kind and span. The format is advisory (spec §6 "Diagnostic/dump format")
// and intended for debugging this package in isolation, not as a stable
// contract.
func Dump(src string) string {
	nodes, err := Tokenize(src)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	var b strings.Builder
	for _, n := range nodes {
		dumpNode(&b, n, 0)
	}
	return b.String()
}

// DumpQuery renders a human-readable tree of a parsed query AST.
func DumpQuery(path string) string {
	q, err := ParseQuery(path)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	var b strings.Builder
	dumpQueryNode(&b, q, 0)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func dumpNode(b *strings.Builder, n MarkupNode, depth int) {
	indent(b, depth)
	switch v := n.(type) {
	case ContentNode:
		fmt.Fprintf(b, "Content@%d-%d %q\n", v.Span.Start, v.Span.End, v.Text)
	case RawNode:
		fmt.Fprintf(b, "Raw@%d-%d %q\n", v.Span.Start, v.Span.End, v.Body)
	case CommentNode:
		fmt.Fprintf(b, "Comment@%d-%d hashes=%d %q\n", v.Span.Start, v.Span.End, v.HashCount, v.Body)
	case OutputNode:
		fmt.Fprintf(b, "Output@%d-%d [%s]\n", v.Span.Start, v.Span.End, joinTokens(v.Tokens))
	case TagNode:
		fmt.Fprintf(b, "Tag(%s)@%d-%d [%s]\n", v.Name, v.Span.Start, v.Span.End, joinTokens(v.Tokens))
	case LinesNode:
		fmt.Fprintf(b, "Lines@%d-%d\n", v.Span.Start, v.Span.End)
		for _, s := range v.Statements {
			indent(b, depth+1)
			if s.Kind == LineCommentStatement {
				fmt.Fprintf(b, "# %s\n", s.CommentText)
			} else {
				fmt.Fprintf(b, "%s [%s]\n", s.Name, joinTokens(s.Tokens))
			}
		}
	case EOINode:
		fmt.Fprintf(b, "EOI@%d\n", v.Span.Start)
	}
}

func dumpQueryNode(b *strings.Builder, q *Query, depth int) {
	indent(b, depth)
	fmt.Fprintf(b, "Query root=%c singular=%v\n", q.Root, q.IsSingular())
	for _, seg := range q.Segments {
		indent(b, depth+1)
		kind := "child"
		if seg.Kind == RecursiveSegment {
			kind = "recursive"
		}
		fmt.Fprintf(b, "%s: %s\n", kind, seg.String())
	}
}
