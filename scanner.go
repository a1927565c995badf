package liquid2front

import "github.com/sthielo/liquid2front/internal/trace"

// Tokenize segments src into an ordered list of markup nodes, ending in
// EOINode, per the recognition order of spec §4.1: raw, then comment, then
// the `liquid` line-oriented tag, then a plain tag, then output, and
// finally a content run extending up to the next `{{`, `{%`, or `{#`.
func Tokenize(src string) ([]MarkupNode, error) {
	r := newReader(src)
	var nodes []MarkupNode
	for {
		if r.atEOF() {
			nodes = append(nodes, EOINode{Span: Span{Start: r.pos, End: r.pos}})
			return nodes, nil
		}
		var (
			node MarkupNode
			err  error
		)
		pos := r.pos
		switch {
		case r.hasPrefix("{%"):
			switch peekTagName(r) {
			case "raw":
				node, err = parseRawNode(r)
			case "liquid":
				node, err = parseLinesNode(r)
			default:
				node, err = parseTagNode(r)
			}
		case r.hasPrefix("{#"):
			node, err = parseCommentNode(r)
		case r.hasPrefix("{{"):
			node, err = parseOutputNode(r)
		default:
			node = parseContentNode(r)
		}
		if err != nil {
			trace.Error("scanner", pos, err)
			return nil, err
		}
		if trace.Enabled() {
			trace.Parse("scanner", pos, "emitted %s", node.Kind())
		}
		nodes = append(nodes, node)
	}
}

// peekTagName looks past "{%", an optional whitespace-control marker, and
// leading whitespace to read the tag's name word, restoring the reader
// position before returning. An empty result means there is no well-formed
// name at this position; the caller's default tag parser will raise the
// appropriate syntax error.
func peekTagName(r *reader) string {
	save := *r
	defer func() { *r = save }()
	r.next()
	r.next()
	parseMarker(r)
	r.skipWhitespace()
	start := r.pos
	if !isWordStart(r.peek()) {
		return ""
	}
	r.next()
	for isWordContinue(r.peek()) {
		r.next()
	}
	return r.input[start:r.pos]
}

func parseMarker(r *reader) WhitespaceControlMarker {
	if wm, ok := whitespaceMarkerFor(r.peek()); ok {
		r.next()
		return wm
	}
	return WhitespaceDefault
}

// peekCloser reports whether an optional whitespace-control marker
// immediately followed by closer sits at the reader's current position,
// without consuming anything. Used by the `liquid` tag's per-statement
// loops, whose last statement has no trailing newline to terminate it —
// only the block's own closing delimiter does.
func peekCloser(r *reader, closer string) bool {
	save := *r
	parseMarker(r)
	ok := r.hasPrefix(closer)
	*r = save
	return ok
}

// tryConsumeCloser attempts to consume an optional whitespace-control
// marker immediately followed by closer, rewinding the reader if the
// sequence doesn't match.
func tryConsumeCloser(r *reader, closer string) (WhitespaceControlMarker, bool) {
	save := *r
	marker := WhitespaceDefault
	if wm, ok := whitespaceMarkerFor(r.peek()); ok {
		marker = wm
		r.next()
	}
	if r.hasPrefix(closer) {
		for range closer {
			r.next()
		}
		return marker, true
	}
	*r = save
	return WhitespaceDefault, false
}

func parseContentNode(r *reader) ContentNode {
	start := r.pos
	for !r.atEOF() && !r.hasPrefix("{{") && !r.hasPrefix("{%") && !r.hasPrefix("{#") {
		r.next()
	}
	r.mark()
	return ContentNode{Span: Span{Start: start, End: r.pos}, Text: r.input[start:r.pos]}
}

// scanExpressionBody tokenizes an output/tag body up to its closing
// delimiter. It cannot scan for the closer as a raw substring (a string
// literal token may itself contain the closer's text, e.g. `{{ '}}' }}`),
// so after each whitespace skip it first tries to consume the closer
// before lexing another token.
func scanExpressionBody(r *reader, parserName, closer string, openStart int) ([]ExpressionToken, WhitespaceControlMarker, error) {
	var tokens []ExpressionToken
	for {
		r.skipWhitespace()
		if marker, ok := tryConsumeCloser(r, closer); ok {
			return tokens, marker, nil
		}
		if r.atEOF() {
			return nil, WhitespaceDefault, SyntaxError{Parser: parserName, Input: r.input, Pos: openStart, Msg: "unterminated " + parserName}
		}
		tok, err := nextExpressionToken(r, false)
		if err != nil {
			return nil, WhitespaceDefault, err
		}
		tokens = append(tokens, tok)
	}
}

func parseOutputNode(r *reader) (OutputNode, error) {
	if err := r.enterDelimited("output"); err != nil {
		return OutputNode{}, err
	}
	defer r.leaveDelimited()
	start := r.pos
	r.next()
	r.next()
	openMarker := parseMarker(r)
	tokens, closeMarker, err := scanExpressionBody(r, "output", "}}", start)
	if err != nil {
		return OutputNode{}, err
	}
	r.mark()
	return OutputNode{Span: Span{Start: start, End: r.pos}, Tokens: tokens, OpenMarker: openMarker, CloseMarker: closeMarker}, nil
}

func parseTagNode(r *reader) (TagNode, error) {
	if err := r.enterDelimited("tag"); err != nil {
		return TagNode{}, err
	}
	defer r.leaveDelimited()
	start := r.pos
	r.next()
	r.next()
	openMarker := parseMarker(r)
	r.skipWhitespace()
	nameStart := r.pos
	if !isWordStart(r.peek()) {
		return TagNode{}, SyntaxError{Parser: "tag", Input: r.input, Pos: r.pos, Msg: "expected a tag name"}
	}
	r.next()
	for isWordContinue(r.peek()) {
		r.next()
	}
	name := r.input[nameStart:r.pos]
	nameSpan := Span{Start: nameStart, End: r.pos}
	r.mark()
	tokens, closeMarker, err := scanExpressionBody(r, "tag", "%}", start)
	if err != nil {
		return TagNode{}, err
	}
	return TagNode{
		Span: Span{Start: start, End: r.pos}, Name: name, NameSpan: nameSpan,
		Tokens: tokens, OpenMarker: openMarker, CloseMarker: closeMarker,
	}, nil
}

// parseRawNode scans `{% raw %}` ... `{% endraw %}`, capturing the body
// verbatim with no nested templating recognized inside it (spec §4.1
// "Raw body").
func parseRawNode(r *reader) (RawNode, error) {
	if err := r.enterDelimited("raw"); err != nil {
		return RawNode{}, err
	}
	defer r.leaveDelimited()
	start := r.pos
	r.next()
	r.next()
	openLeftMarker := parseMarker(r)
	r.skipWhitespace()
	for isWordContinue(r.peek()) { // "raw", already identified by peekTagName
		r.next()
	}
	r.skipWhitespace()
	openRightMarker := parseMarker(r)
	r.skipWhitespace()
	if !r.hasPrefix("%}") {
		return RawNode{}, SyntaxError{Parser: "raw", Input: r.input, Pos: r.pos, Msg: "expected '%}' to close raw tag"}
	}
	r.next()
	r.next()
	r.mark()
	bodyStart := r.pos

	for {
		if r.atEOF() {
			return RawNode{}, SyntaxError{Parser: "raw", Input: r.input, Pos: start, Msg: "unterminated raw block"}
		}
		if r.hasPrefix("{%") {
			save := *r
			r.next()
			r.next()
			closeLeftMarker := parseMarker(r)
			r.skipWhitespace()
			if r.hasPrefix("endraw") {
				for range "endraw" {
					r.next()
				}
				r.skipWhitespace()
				closeRightMarker := parseMarker(r)
				r.skipWhitespace()
				if r.hasPrefix("%}") {
					bodyEnd := save.pos
					r.next()
					r.next()
					r.mark()
					return RawNode{
						Span: Span{Start: start, End: r.pos}, Body: r.input[bodyStart:bodyEnd], BodySpan: Span{Start: bodyStart, End: bodyEnd},
						OpenLeftMarker: openLeftMarker, OpenRightMarker: openRightMarker,
						CloseLeftMarker: closeLeftMarker, CloseRightMarker: closeRightMarker,
					}, nil
				}
			}
			*r = save
		}
		r.next()
	}
}

// parseCommentNode scans a `{#H ... H#}` block using fence-length matching
// (spec §9 "Comment nesting vs. fences"): the body extends to the first
// occurrence of the same hash run H followed by an optional marker and '}',
// so a shorter inner fence never closes an outer comment.
func parseCommentNode(r *reader) (CommentNode, error) {
	if err := r.enterDelimited("comment"); err != nil {
		return CommentNode{}, err
	}
	defer r.leaveDelimited()
	start := r.pos
	r.next() // '{'
	hashStart := r.pos
	for r.peek() == '#' {
		r.next()
	}
	hashCount := r.pos - hashStart
	fence := r.input[hashStart:r.pos]
	openMarker := parseMarker(r)
	r.mark()
	bodyStart := r.pos

	for {
		if r.atEOF() {
			return CommentNode{}, SyntaxError{Parser: "comment", Input: r.input, Pos: start, Msg: "unterminated comment"}
		}
		if r.hasPrefix(fence) {
			save := *r
			for range fence {
				r.next()
			}
			closeMarker, hasMarker := whitespaceMarkerFor(r.peek())
			if hasMarker {
				r.next()
			} else {
				closeMarker = WhitespaceDefault
			}
			if r.peek() == '}' {
				bodyEnd := save.pos
				r.next()
				r.mark()
				return CommentNode{
					Span: Span{Start: start, End: r.pos}, HashCount: hashCount,
					Body: r.input[bodyStart:bodyEnd], BodySpan: Span{Start: bodyStart, End: bodyEnd},
					OpenMarker: openMarker, CloseMarker: closeMarker,
				}, nil
			}
			*r = save
		}
		r.next()
	}
}

func consumeNewline(r *reader) {
	if r.peek() == '\r' {
		r.next()
	}
	if r.peek() == '\n' {
		r.next()
	}
	r.mark()
}

// parseLinesNode scans the `{% liquid %}` block: a sequence of newline-
// separated statements, each either a line comment or a tag-shaped
// statement whose expression tokens are lexed with newline sensitivity
// (spec §4.1 "Liquid tag").
func parseLinesNode(r *reader) (LinesNode, error) {
	if err := r.enterDelimited("liquid"); err != nil {
		return LinesNode{}, err
	}
	defer r.leaveDelimited()
	start := r.pos
	r.next()
	r.next()
	openMarker := parseMarker(r)
	r.skipWhitespace()
	for isWordContinue(r.peek()) { // "liquid", already identified by peekTagName
		r.next()
	}
	r.mark()

	var stmts []LineStatement
	for {
		r.skipHorizontalWhitespace()
		if marker, ok := tryConsumeCloser(r, "%}"); ok {
			r.mark()
			return LinesNode{Span: Span{Start: start, End: r.pos}, Statements: stmts, OpenMarker: openMarker, CloseMarker: marker}, nil
		}
		if r.atEOF() {
			return LinesNode{}, SyntaxError{Parser: "liquid", Input: r.input, Pos: start, Msg: "unterminated liquid tag"}
		}
		if c := r.peek(); c == '\r' || c == '\n' {
			consumeNewline(r)
			continue
		}
		if r.peek() == '#' {
			markStart := r.pos
			r.next() // '#'
			cstart := r.pos
			for {
				c := r.peek()
				if c == '\r' || c == '\n' || c == eof || peekCloser(r, "%}") {
					break
				}
				r.next()
			}
			r.mark()
			stmts = append(stmts, LineStatement{Span: Span{Start: markStart, End: r.pos}, Kind: LineCommentStatement, CommentText: r.input[cstart:r.pos]})
			continue
		}

		nameStart := r.pos
		if !isWordStart(r.peek()) {
			return LinesNode{}, SyntaxError{Parser: "liquid", Input: r.input, Pos: r.pos, Msg: "expected a statement name"}
		}
		r.next()
		for isWordContinue(r.peek()) {
			r.next()
		}
		nameSpan := Span{Start: nameStart, End: r.pos}
		r.mark()
		tokens, err := tokenizeLineStatementBody(r, "%}")
		if err != nil {
			return LinesNode{}, err
		}
		r.mark()
		stmts = append(stmts, LineStatement{
			Span: Span{Start: nameStart, End: r.pos}, Kind: LineTagStatement,
			Name: r.input[nameStart:nameSpan.End], NameSpan: nameSpan, Tokens: tokens,
		})
	}
}

// tokenizeLineStatementBody lexes one `liquid` line statement's expression
// tokens directly on the shared reader, stopping before a newline, EOF, or
// the block's own closing delimiter — the last statement in a `{% liquid
// %}` block has no trailing newline, so only the closer terminates it.
func tokenizeLineStatementBody(r *reader, closer string) ([]ExpressionToken, error) {
	var tokens []ExpressionToken
	for {
		r.skipHorizontalWhitespace()
		if c := r.peek(); c == '\r' || c == '\n' || c == eof || peekCloser(r, closer) {
			return tokens, nil
		}
		tok, err := nextExpressionToken(r, true)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}
