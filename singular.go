package liquid2front

// computeSingular implements the post-parse validation pass spec §4.3
// describes: a query is singular iff every segment is a Child segment with
// exactly one selector, and that selector is a Name or Index. It is run
// once, right after a Query finishes parsing, so singular and general
// queries share one grammar (spec §9 DESIGN NOTES).
func computeSingular(q *Query) bool {
	for _, seg := range q.Segments {
		if seg.Kind != ChildSegment || len(seg.Selectors) != 1 {
			q.singular = false
			return false
		}
		switch seg.Selectors[0].(type) {
		case NameSelector, IndexSelector:
			// ok
		default:
			q.singular = false
			return false
		}
	}
	q.singular = true
	return true
}
