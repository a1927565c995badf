// package liquid2front is the scanner/parser front-end for a Liquid-style
// template language: it segments template source into markup (content, raw
// blocks, comments, output, tags, and the line-oriented `liquid` tag),
// tokenizes each tag/output body into an expression token stream, and parses
// the JSONPath-derived query sublanguage those expressions embed.
//
// It does not evaluate templates. Template evaluation, the filter function
// registry, value coercion, template loading, and whitespace stripping are
// all external collaborators that consume the token stream and ASTs this
// package produces.
package liquid2front // import "github.com/sthielo/liquid2front"
