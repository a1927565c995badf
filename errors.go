package liquid2front

import (
	"fmt"
	"strings"
)

// SyntaxError reports a grammar violation found by the markup scanner,
// expression tokenizer, or query parser. Parsing fails fast on the first
// one encountered; this package never accumulates or recovers from errors
// (spec §7 propagation policy).
type SyntaxError struct {
	Parser string
	Msg    string
	Input  string
	Pos    int
}

func (e SyntaxError) Error() string {
	marker := strings.Repeat(" ", e.Pos) + "^"
	return fmt.Sprintf("%s: syntax error at byte %d: %s\n%q\n%s", e.Parser, e.Pos, e.Msg, e.Input, marker)
}

// LineCol computes the 1-based line/column of the error position within
// e.Input, the source the error was raised against.
func (e SyntaxError) LineCol() LineCol {
	return newLineIndex(e.Input).lineCol(e.Pos)
}

// TypeError, NameError, and ExtensionError are reserved for downstream
// collaborators (value coercion, filter function resolution). The front-end
// defines them so error-handling code can type-switch exhaustively, but it
// never constructs them.
type TypeError struct {
	Msg string
}

func (e TypeError) Error() string { return fmt.Sprintf("type error: %s", e.Msg) }

type NameError struct {
	Msg string
}

func (e NameError) Error() string { return fmt.Sprintf("name error: %s", e.Msg) }

type ExtensionError struct {
	Msg string
}

func (e ExtensionError) Error() string { return fmt.Sprintf("extension error: %s", e.Msg) }
