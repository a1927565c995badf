package liquid2front

import (
	"fmt"
	"strconv"
)

// tokenizeExpression lexes a single tag/output (or `liquid` line statement)
// body starting at byte offset `start` and bounded by `end`, returning its
// ordered ExpressionToken list and the byte offset actually consumed.
//
// In lineSensitive mode (the `liquid` tag's per-line sub-statements) only
// horizontal whitespace (space/tab) separates tokens and the first
// unescaped CR/LF terminates the statement early, reporting that offset as
// consumed rather than `end` (spec §4.1 "Liquid tag").
func tokenizeExpression(src string, start, end int, lineSensitive bool) ([]ExpressionToken, int, error) {
	r := newBoundedReader(src, start, end)
	var tokens []ExpressionToken
	for {
		if lineSensitive {
			r.skipHorizontalWhitespace()
			if c := r.peek(); c == '\r' || c == '\n' || c == eof {
				break
			}
		} else {
			r.skipWhitespace()
			if r.atEOF() {
				break
			}
		}
		tok, err := nextExpressionToken(r, lineSensitive)
		if err != nil {
			return nil, 0, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, r.pos, nil
}

func exprErr(r *reader, pos int, format string, args ...interface{}) error {
	return SyntaxError{Parser: "expression", Input: r.input, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// nextExpressionToken applies the lexical priority order of spec §4.2: a
// quote starts a string, '(' is tried as a range literal before falling
// back to the LParen symbol, a leading digit (or '-digit') is a number, a
// bare '$'/'@'/'[' always starts a query, a word-start character is scanned
// as an identifier (reserved word, Word, or a query commitment on '.'/'['
// lookahead), and everything else falls through to symbol matching.
func nextExpressionToken(r *reader, lineSensitive bool) (ExpressionToken, error) {
	start := r.pos
	c := r.peek()
	switch {
	case c == '"' || c == '\'':
		return parseStringToken(r, !lineSensitive)
	case c == '(':
		if tok, ok, err := tryParseRangeLiteral(r); err != nil {
			return ExpressionToken{}, err
		} else if ok {
			return *tok, nil
		}
		r.next()
		r.mark()
		return ExpressionToken{Kind: TokenLParen, Span: Span{Start: start, End: r.pos}}, nil
	case c == '-' && isASCIIDigit(r.peekAt(1)):
		return parseNumberToken(r)
	case isASCIIDigit(c):
		return parseNumberToken(r)
	case c == '$' || c == '@' || c == '[':
		return parseEmbeddedQueryToken(r, start)
	case isWordStart(c):
		return scanIdentifierToken(r)
	default:
		return parseSymbolToken(r)
	}
}

func parseEmbeddedQueryToken(r *reader, start int) (ExpressionToken, error) {
	q, consumed, err := parseQueryBounded(r.input, r.pos, r.limit, false)
	if err != nil {
		return ExpressionToken{}, err
	}
	r.pos = consumed
	r.mark()
	return ExpressionToken{Kind: TokenQuery, Span: Span{Start: start, End: consumed}, Query: q}, nil
}

// scanIdentifierToken implements spec §4.2 rules 4 and 5: recognize a
// reserved word if the identifier matches one exactly, otherwise commit to
// an embedded query if the identifier is immediately followed by '.' or
// '[', otherwise emit a plain Word token.
func scanIdentifierToken(r *reader) (ExpressionToken, error) {
	start := r.pos
	r.next() // first character, already validated as a word-start rune
	for isWordContinue(r.peek()) {
		r.next()
	}
	text := r.input[start:r.pos]
	if kind, ok := reservedWordTokens[text]; ok {
		r.mark()
		return ExpressionToken{Kind: kind, Span: Span{Start: start, End: r.pos}, Text: text}, nil
	}
	if next := r.peek(); next == '.' || next == '[' {
		r.pos, r.start = start, start
		return parseEmbeddedQueryToken(r, start)
	}
	r.mark()
	return ExpressionToken{Kind: TokenWord, Span: Span{Start: start, End: r.pos}, Text: text}, nil
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

// parseNumberToken lexes spec §4.2 rule 2: optional '-', an integer part
// ('0' or a nonzero-leading digit run), an optional fractional part, and an
// optional exponent. No fractional/exponent part classifies as
// TokenInteger; otherwise TokenFloat (spec §9 Open Question: scientific
// integers like `1e2` lex as float, classified by value downstream).
func parseNumberToken(r *reader) (ExpressionToken, error) {
	start := r.pos
	if r.peek() == '-' {
		r.next()
	}
	switch {
	case r.peek() == '0':
		r.next()
	case isASCIIDigit(r.peek()):
		for isASCIIDigit(r.peek()) {
			r.next()
		}
	default:
		return ExpressionToken{}, exprErr(r, r.pos, "expected a digit in number literal")
	}

	isFloat := false
	if r.peek() == '.' && isASCIIDigit(r.peekAt(1)) {
		isFloat = true
		r.next()
		for isASCIIDigit(r.peek()) {
			r.next()
		}
	}
	if r.peek() == 'e' || r.peek() == 'E' {
		snapshotPos, snapshotStart := r.pos, r.start
		r.next()
		if r.peek() == '+' || r.peek() == '-' {
			r.next()
		}
		if isASCIIDigit(r.peek()) {
			isFloat = true
			for isASCIIDigit(r.peek()) {
				r.next()
			}
		} else {
			r.pos, r.start = snapshotPos, snapshotStart
		}
	}

	s := r.input[start:r.pos]
	r.mark()
	if isFloat {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ExpressionToken{}, exprErr(r, start, "invalid or overflowing float literal %q: %v", s, err)
		}
		return ExpressionToken{Kind: TokenFloat, Span: Span{Start: start, End: r.pos}, Float: f}, nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return ExpressionToken{}, exprErr(r, start, "invalid or overflowing integer literal %q: %v", s, err)
	}
	return ExpressionToken{Kind: TokenInteger, Span: Span{Start: start, End: r.pos}, Int: i}, nil
}

func parseStringToken(r *reader, allowNewlines bool) (ExpressionToken, error) {
	start := r.pos
	quote := r.next() // opening quote
	for {
		c := r.next()
		switch {
		case c == eof:
			return ExpressionToken{}, exprErr(r, start, "unterminated string literal")
		case (c == '\n' || c == '\r') && !allowNewlines:
			return ExpressionToken{}, exprErr(r, start, "newline not permitted inside this string literal")
		case c == '\\':
			if r.next() == eof {
				return ExpressionToken{}, exprErr(r, start, "unterminated escape sequence in string literal")
			}
		case c == quote:
			raw := r.input[start:r.pos]
			r.mark()
			cooked, err := UnescapeString(raw)
			if err != nil {
				return ExpressionToken{}, exprErr(r, start, "%v", err)
			}
			return ExpressionToken{Kind: TokenString, Span: Span{Start: start, End: r.pos}, Text: cooked}, nil
		}
	}
}

// twoCharOps lists the multi-character operator symbols, checked before
// their single-character prefixes (e.g. "==" before "=").
var twoCharOps = []struct {
	text string
	kind ExpressionTokenKind
}{
	{"==", TokenEq},
	{"!=", TokenNe},
	{"<>", TokenDiamond},
	{">=", TokenGe},
	{"<=", TokenLe},
	{"||", TokenDoublePipe},
}

var oneCharOps = map[rune]ExpressionTokenKind{
	'>': TokenGt,
	'<': TokenLt,
	'|': TokenPipe,
	':': TokenColon,
	',': TokenComma,
	')': TokenRParen,
	'=': TokenAssign,
}

func parseSymbolToken(r *reader) (ExpressionToken, error) {
	start := r.pos
	for _, op := range twoCharOps {
		if r.hasPrefix(op.text) {
			r.next()
			r.next()
			r.mark()
			return ExpressionToken{Kind: op.kind, Span: Span{Start: start, End: r.pos}}, nil
		}
	}
	if kind, ok := oneCharOps[r.peek()]; ok {
		r.next()
		r.mark()
		return ExpressionToken{Kind: kind, Span: Span{Start: start, End: r.pos}}, nil
	}
	return ExpressionToken{}, exprErr(r, start, "unexpected character %q", r.peek())
}

// tryParseRangeLiteral attempts spec §4.2 rule 3: `( arg .. arg )` with only
// horizontal whitespace between tokens. Returns ok=false (with the reader
// rewound) when the input at '(' isn't shaped like a range literal at all,
// so the caller can fall back to treating '(' as the grouping LParen
// symbol; returns a real error once `..` has been seen, since nothing else
// in the grammar produces that sequence inside parens.
func tryParseRangeLiteral(r *reader) (*ExpressionToken, bool, error) {
	start := r.pos
	snapshot := *r
	r.next() // consume '('
	r.mark()
	r.skipHorizontalWhitespace()

	startArg, ok, err := parseRangeArg(r)
	if err != nil || !ok {
		// Before ".." is seen this may still be a plain group (e.g. a
		// multiline string after '('); the caller's fallback re-lexes it and
		// reports any genuine error.
		*r = snapshot
		return nil, false, nil
	}
	r.skipHorizontalWhitespace()
	if !r.hasPrefix("..") {
		// Not shaped like a range after all — e.g. "(a and b)" where `a`
		// lexed fine as a Word. Let the caller fall back to a plain LParen.
		*r = snapshot
		return nil, false, nil
	}
	r.next()
	r.next()
	r.mark()
	r.skipHorizontalWhitespace()

	stopArg, ok, err := parseRangeArg(r)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, exprErr(r, r.pos, "expected a range literal end value after '..'")
	}
	r.skipHorizontalWhitespace()
	if r.peek() != ')' {
		return nil, false, exprErr(r, r.pos, "expected ')' to close range literal")
	}
	r.next()
	r.mark()

	// Only once "arg .. arg )" is unambiguously a range literal do we
	// enforce the endpoint type restriction (spec §3 invariant): nothing
	// else in the grammar produces "x .. y" inside parens.
	if !isRangeEndpointKind(startArg.Kind) {
		return nil, false, exprErr(r, start, "range literal endpoints must be integers, strings, or queries")
	}
	if !isRangeEndpointKind(stopArg.Kind) {
		return nil, false, exprErr(r, start, "range literal endpoints must be integers, strings, or queries")
	}
	tok := ExpressionToken{
		Span:       Span{Start: start, End: r.pos},
		Kind:       TokenRange,
		RangeStart: &startArg,
		RangeStop:  &stopArg,
	}
	return &tok, true, nil
}

// parseRangeArg lexes whatever token sits at the current position — a
// string, number, identifier/query, or nothing lexable at all — without
// judging whether it's a valid range endpoint. Only once the enclosing
// tryParseRangeLiteral has confirmed the ".." shape is present does
// isRangeEndpointKind get applied, since a lone word like `a` in `(a and
// b)` is perfectly valid and must not be rejected before we even know
// whether this paren is a range literal.
func parseRangeArg(r *reader) (ExpressionToken, bool, error) {
	switch c := r.peek(); {
	case c == '"' || c == '\'':
		tok, err := parseStringToken(r, false)
		return tok, true, err
	case c == '-' && isASCIIDigit(r.peekAt(1)), isASCIIDigit(c):
		tok, err := parseNumberToken(r)
		return tok, true, err
	case c == '$' || c == '@' || c == '[':
		tok, err := parseEmbeddedQueryToken(r, r.pos)
		return tok, true, err
	case isWordStart(c):
		tok, err := scanIdentifierToken(r)
		return tok, true, err
	default:
		return ExpressionToken{}, false, nil
	}
}

// isRangeEndpointKind reports whether a lexed token kind is an allowed
// range-literal endpoint per spec §3's invariant (integer, query, or
// string literal — notably excluding float, even though §4.2 rule 3's
// looser "number" wording would otherwise permit it).
func isRangeEndpointKind(k ExpressionTokenKind) bool {
	return k == TokenInteger || k == TokenString || k == TokenQuery
}
