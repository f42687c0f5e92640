package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenKinds(tokens []token) []int {

	kinds := make([]int, len(tokens))
	for i, t := range tokens {
		kinds[i] = t.kind
	}

	return kinds
}

func TestTokenizeNegativeLiteral(t *testing.T) {

	tokens, err := tokenize("LET A=-1")
	require.NoError(t, err)

	assert.Equal(t, []int{tokKeyword, tokIdent, tokOperator, tokNumber, tokEOL},
		tokenKinds(tokens))
	assert.Equal(t, LET, tokens[0].keyword)
	assert.Equal(t, "A", tokens[1].text)
	assert.Equal(t, -1.0, tokens[3].num)
}

func TestTokenizeMinusAfterOperand(t *testing.T) {

	tokens, err := tokenize("A-1")
	require.NoError(t, err)

	assert.Equal(t, []int{tokIdent, tokOperator, tokNumber, tokEOL}, tokenKinds(tokens))
	assert.Equal(t, "-", tokens[1].text)
	assert.Equal(t, 1.0, tokens[2].num)

	tokens, err = tokenize("(2)-1")
	require.NoError(t, err)
	assert.Equal(t, tokOperator, tokens[3].kind)
}

func TestTokenizeNumbers(t *testing.T) {

	tests := []struct {
		src  string
		want float64
	}{
		{".4", 0.4},
		{"12", 12},
		{"1.5E3", 1500},
		{"0.25", 0.25},
	}

	for _, tt := range tests {
		tokens, err := tokenize(tt.src)
		require.NoError(t, err, tt.src)
		require.Len(t, tokens, 2, tt.src)
		assert.Equal(t, tokNumber, tokens[0].kind, tt.src)
		assert.InDelta(t, tt.want, tokens[0].num, 1e-12, tt.src)
	}
}

func TestTokenizeStringsAndIdents(t *testing.T) {

	tokens, err := tokenize(`PRINT "Hello; world", a$`)
	require.NoError(t, err)

	assert.Equal(t, []int{tokKeyword, tokString, tokPunct, tokIdent, tokEOL},
		tokenKinds(tokens))
	assert.Equal(t, "Hello; world", tokens[1].text)
	assert.Equal(t, "A$", tokens[3].text)
	assert.True(t, tokens[3].isStr)
}

func TestTokenizeKeywordsAnyCase(t *testing.T) {

	tokens, err := tokenize("print goto Gosub")
	require.NoError(t, err)

	assert.Equal(t, PRINT, tokens[0].keyword)
	assert.Equal(t, GOTO, tokens[1].keyword)
	assert.Equal(t, GOSUB, tokens[2].keyword)
}

func TestTokenizeRemKeepsRest(t *testing.T) {

	tokens, err := tokenize("REM  Hello, World: 1+1")
	require.NoError(t, err)

	require.Len(t, tokens, 3)
	assert.Equal(t, REM, tokens[0].keyword)
	assert.Equal(t, tokString, tokens[1].kind)
	assert.Equal(t, "  Hello, World: 1+1", tokens[1].text)
	assert.Equal(t, tokEOL, tokens[2].kind)
}

func TestTokenizeRelationalOperators(t *testing.T) {

	tokens, err := tokenize("A<>B<=C>=D<E>F=G")
	require.NoError(t, err)

	var ops []string
	for _, tok := range tokens {
		if tok.kind == tokOperator {
			ops = append(ops, tok.text)
		}
	}

	assert.Equal(t, []string{"<>", "<=", ">=", "<", ">", "="}, ops)
}

func TestTokenColumns(t *testing.T) {

	tokens, err := tokenize("A = 10")
	require.NoError(t, err)

	assert.Equal(t, 1, tokens[0].col)
	assert.Equal(t, 1, tokens[0].end)
	assert.Equal(t, 3, tokens[1].col)
	assert.Equal(t, 5, tokens[2].col)
	assert.Equal(t, 6, tokens[2].end)
}

func TestTokenizeErrors(t *testing.T) {

	tests := []struct {
		src  string
		want string
	}{
		{"PRINT @", `Unrecognized character "@"`},
		{`PRINT "abc`, "Unterminated string"},
		{"LET A$B = 1", `Malformed identifier "A$B"`},
		{strings.Repeat("A", maxLineLen+1), ELINETOOLONG},
	}

	for _, tt := range tests {
		_, err := tokenize(tt.src)
		require.Error(t, err, tt.src)
		assert.ErrorIs(t, err, errSyntax, tt.src)
		assert.Equal(t, "SYNTAX ERROR: "+tt.want, err.Error(), tt.src)
	}
}
