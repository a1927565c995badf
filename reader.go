package liquid2front

import (
	"unicode/utf8"
)

// eof is returned by reader.peek/next once the cursor reaches the end of
// input, mirroring the teacher's innerParser sentinel.
const eof = -1

// maxNestingDepth bounds how many delimited constructs (raw/comment/tag/
// filter-expression/parentheses) may nest before a syntax error is raised.
// Spec §5 recommends 256; it exists to bound stack use, not to reject any
// realistic template.
const maxNestingDepth = 256

// reader is a cursor over UTF-8 source text, indexed by absolute byte
// offset. It is the shared primitive every parser in this package (markup
// scanner, expression tokenizer, query parser) is built on, generalizing the
// teacher's innerParser with nesting-depth bookkeeping and span helpers.
type reader struct {
	input string
	limit int // logical end of input (<=len(input)); lets a sub-parser like the expression tokenizer share the full source's byte offsets while staying bounded to one tag/output body

	start int // start of the pending token, for consume()
	pos   int // current cursor position
	width int // width in bytes of the last rune returned by next()

	depth int // current delimiter nesting depth
}

func newReader(input string) *reader {
	return &reader{input: input, limit: len(input)}
}

// newBoundedReader returns a reader over input, positioned at start, that
// treats end as EOF even though input may extend further (the markup
// scanner uses this to hand the expression tokenizer exactly one tag/output
// body while keeping spans absolute within the original source).
func newBoundedReader(input string, start, end int) *reader {
	return &reader{input: input, limit: end, pos: start, start: start}
}

func (r *reader) next() rune {
	if r.pos >= r.limit {
		r.width = 0
		return eof
	}
	ru, w := utf8.DecodeRuneInString(r.input[r.pos:r.limit])
	r.width = w
	r.pos += w
	return ru
}

func (r *reader) peek() rune {
	if r.pos >= r.limit {
		return eof
	}
	ru, _ := utf8.DecodeRuneInString(r.input[r.pos:r.limit])
	return ru
}

// peekAt looks ahead n runes without consuming, returning eof past the end.
func (r *reader) peekAt(n int) rune {
	pos := r.pos
	var ru rune
	for i := 0; i <= n; i++ {
		if pos >= r.limit {
			return eof
		}
		var w int
		ru, w = utf8.DecodeRuneInString(r.input[pos:r.limit])
		pos += w
	}
	return ru
}

// hasPrefix reports whether the unconsumed remainder starts with s.
func (r *reader) hasPrefix(s string) bool {
	if r.pos+len(s) > r.limit {
		return false
	}
	return hasPrefixAt(r.input, r.pos, s)
}

func hasPrefixAt(input string, pos int, s string) bool {
	if pos+len(s) > len(input) {
		return false
	}
	return input[pos:pos+len(s)] == s
}

// consume returns the bytes since the last consume/mark and advances start.
func (r *reader) consume() string {
	v := r.input[r.start:r.pos]
	r.start = r.pos
	return v
}

// mark resets start to the current position without returning anything,
// used when the caller wants to discard skipped bytes (e.g. whitespace).
func (r *reader) mark() { r.start = r.pos }

func (r *reader) consumeNext() rune {
	ru := r.next()
	r.mark()
	return ru
}

// skipHorizontalWhitespace advances over spaces and tabs only.
func (r *reader) skipHorizontalWhitespace() {
	for {
		switch r.peek() {
		case ' ', '\t':
			r.next()
		default:
			r.mark()
			return
		}
	}
}

// skipWhitespace advances over spaces, tabs, CR and LF.
func (r *reader) skipWhitespace() {
	for {
		switch r.peek() {
		case ' ', '\t', '\r', '\n':
			r.next()
		default:
			r.mark()
			return
		}
	}
}

func (r *reader) atEOF() bool { return r.pos >= r.limit }

// span returns the Span [start, pos) without consuming.
func (r *reader) span() Span { return Span{Start: r.start, End: r.pos} }

// enterDelimited increments the nesting depth counter, failing with a
// SyntaxError if the configured maximum is exceeded. Every delimited
// construct (raw, comment, tag, filter expression, parentheses) must call
// this on entry and leaveDelimited on every exit path.
func (r *reader) enterDelimited(parserName string) error {
	r.depth++
	if r.depth > maxNestingDepth {
		return SyntaxError{Parser: parserName, Msg: "maximum nesting depth exceeded", Input: r.input, Pos: r.pos}
	}
	return nil
}

func (r *reader) leaveDelimited() { r.depth-- }
