package liquid2front

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tokenizeAll(t *testing.T, src string, lineSensitive bool) []ExpressionToken {
	t.Helper()
	tokens, _, err := tokenizeExpression(src, 0, len(src), lineSensitive)
	require.NoError(t, err)
	return tokens
}

func TestTokenizeExpressionLiterals(t *testing.T) {
	tokens := tokenizeAll(t, `'a' 1 1.5 true false nil null`, false)
	require.Len(t, tokens, 7)
	require.Equal(t, TokenString, tokens[0].Kind)
	require.Equal(t, "a", tokens[0].Text)
	require.Equal(t, TokenInteger, tokens[1].Kind)
	require.Equal(t, int64(1), tokens[1].Int)
	require.Equal(t, TokenFloat, tokens[2].Kind)
	require.InDelta(t, 1.5, tokens[2].Float, 0.0001)
	require.Equal(t, TokenTrue, tokens[3].Kind)
	require.Equal(t, TokenFalse, tokens[4].Kind)
	require.Equal(t, TokenNull, tokens[5].Kind)
	require.Equal(t, TokenNull, tokens[6].Kind)
}

func TestTokenizeExpressionScientificNotation(t *testing.T) {
	tokens := tokenizeAll(t, `1e2 1e+2 1e-2`, false)
	require.Len(t, tokens, 3)
	for _, tok := range tokens {
		require.Equal(t, TokenFloat, tok.Kind)
	}
	require.InDelta(t, 100, tokens[0].Float, 0.0001)
	require.InDelta(t, 100, tokens[1].Float, 0.0001)
	require.InDelta(t, 0.01, tokens[2].Float, 0.0001)
}

func TestTokenizeExpressionRangeLiteral(t *testing.T) {
	tokens := tokenizeAll(t, `(1..3)`, false)
	require.Len(t, tokens, 1)
	require.Equal(t, TokenRange, tokens[0].Kind)
	require.Equal(t, int64(1), tokens[0].RangeStart.Int)
	require.Equal(t, int64(3), tokens[0].RangeStop.Int)
}

func TestTokenizeExpressionRangeLiteralRejectsFloatEndpoint(t *testing.T) {
	_, _, err := tokenizeExpression(`(1.5..3)`, 0, len(`(1.5..3)`), false)
	require.Error(t, err)
}

func TestTokenizeExpressionPlainParenGroup(t *testing.T) {
	tokens := tokenizeAll(t, `(a and b)`, false)
	require.Equal(t, TokenLParen, tokens[0].Kind)
	require.Equal(t, TokenWord, tokens[1].Kind)
	require.Equal(t, TokenAnd, tokens[2].Kind)
	require.Equal(t, TokenWord, tokens[3].Kind)
	require.Equal(t, TokenRParen, tokens[4].Kind)
}

func TestTokenizeExpressionReservedWordVsWord(t *testing.T) {
	tokens := tokenizeAll(t, `iftrue if`, false)
	require.Len(t, tokens, 2)
	require.Equal(t, TokenWord, tokens[0].Kind)
	require.Equal(t, "iftrue", tokens[0].Text)
	require.Equal(t, TokenIf, tokens[1].Kind)
}

func TestTokenizeExpressionWordCommitsToQuery(t *testing.T) {
	tokens := tokenizeAll(t, `a.b[0]`, false)
	require.Len(t, tokens, 1)
	require.Equal(t, TokenQuery, tokens[0].Kind)
	require.Equal(t, "a", tokens[0].Query.Segments[0].Selectors[0].(NameSelector).Name)
}

func TestTokenizeExpressionBareWordNoDotNoBracket(t *testing.T) {
	tokens := tokenizeAll(t, `a`, false)
	require.Len(t, tokens, 1)
	require.Equal(t, TokenWord, tokens[0].Kind)
	require.Equal(t, "a", tokens[0].Text)
}

func TestTokenizeExpressionSymbols(t *testing.T) {
	tokens := tokenizeAll(t, `== != <> >= <= > < || | : , =`, false)
	want := []ExpressionTokenKind{
		TokenEq, TokenNe, TokenDiamond, TokenGe, TokenLe, TokenGt, TokenLt,
		TokenDoublePipe, TokenPipe, TokenColon, TokenComma, TokenAssign,
	}
	require.Len(t, tokens, len(want))
	for i, k := range want {
		require.Equal(t, k, tokens[i].Kind, "token %d", i)
	}
}

func TestTokenizeExpressionContains(t *testing.T) {
	tokens := tokenizeAll(t, `a contains 5`, false)
	require.Len(t, tokens, 3)
	require.Equal(t, TokenWord, tokens[0].Kind)
	require.Equal(t, TokenContains, tokens[1].Kind)
	require.Equal(t, TokenInteger, tokens[2].Kind)
}

func TestTokenizeExpressionLineSensitiveStopsAtNewline(t *testing.T) {
	src := "assign x = 1\necho x"
	tokens, consumed, err := tokenizeExpression(src, len("assign "), len(src), true)
	require.NoError(t, err)
	require.Equal(t, src[:len("assign x = 1")], src[:consumed])
	require.Len(t, tokens, 3)
	require.Equal(t, TokenWord, tokens[0].Kind)
	require.Equal(t, TokenAssign, tokens[1].Kind)
	require.Equal(t, TokenInteger, tokens[2].Kind)
}

func TestTokenizeExpressionLineSensitiveRejectsNewlineInString(t *testing.T) {
	src := "'a\nb'"
	_, _, err := tokenizeExpression(src, 0, len(src), true)
	require.Error(t, err)
}

func TestTokenizeExpressionMultilineStringAllowedOutsideLines(t *testing.T) {
	src := "'a\nb'"
	tokens, _, err := tokenizeExpression(src, 0, len(src), false)
	require.NoError(t, err)
	require.Equal(t, "a\nb", tokens[0].Text)
}

func TestTokenizeExpressionUnterminatedString(t *testing.T) {
	src := `'a`
	_, _, err := tokenizeExpression(src, 0, len(src), false)
	require.Error(t, err)
}

func TestTokenizeExpressionNumericOverflow(t *testing.T) {
	src := `99999999999999999999999999`
	_, _, err := tokenizeExpression(src, 0, len(src), false)
	require.Error(t, err)
}
