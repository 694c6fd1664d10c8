package scanner

import (
	"testing"

	"github.com/mna/wisp/lang/token"
	"github.com/stretchr/testify/require"
)

func scanAll(src string) []TokenAndValue {
	var s Scanner
	s.Init([]byte(src))
	var out []TokenAndValue
	for {
		tv := s.Scan()
		out = append(out, tv)
		if tv.Token == token.EOF {
			return out
		}
	}
}

func tokens(tvs []TokenAndValue) []token.Token {
	out := make([]token.Token, len(tvs))
	for i, tv := range tvs {
		out[i] = tv.Token
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	got := tokens(scanAll("(){},.-+;*/! != = == > >= < <="))
	want := []token.Token{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.COMMA,
		token.DOT, token.MINUS, token.PLUS, token.SEMI, token.STAR, token.SLASH,
		token.BANG, token.BANG_EQ, token.EQ, token.EQ_EQ, token.GT, token.GT_EQ,
		token.LT, token.LT_EQ, token.EOF,
	}
	require.Equal(t, want, got)
}

func TestScanKeywordsAndIdents(t *testing.T) {
	tvs := scanAll("var x = foo and bar")
	require.Equal(t, []token.Token{
		token.VAR, token.IDENT, token.EQ, token.IDENT, token.AND, token.IDENT, token.EOF,
	}, tokens(tvs))
	require.Equal(t, "x", tvs[1].Lit)
}

func TestScanNumber(t *testing.T) {
	tvs := scanAll("1 2.5 10")
	require.Equal(t, []token.Token{token.NUMBER, token.NUMBER, token.NUMBER, token.EOF}, tokens(tvs))
	require.Equal(t, "2.5", tvs[1].Lit)
}

func TestScanString(t *testing.T) {
	tvs := scanAll(`"hello world"`)
	require.Equal(t, token.STRING, tvs[0].Token)
	require.Equal(t, "hello world", tvs[0].Lit)
}

func TestScanUnterminatedString(t *testing.T) {
	tvs := scanAll(`"oops`)
	require.Equal(t, token.ILLEGAL, tvs[0].Token)
	require.Contains(t, tvs[0].Lit, "unterminated string")
}

func TestScanCommentsAndWhitespace(t *testing.T) {
	tvs := scanAll("// a comment\nvar a = 1; // trailing\n")
	require.Equal(t, []token.Token{
		token.VAR, token.IDENT, token.EQ, token.NUMBER, token.SEMI, token.EOF,
	}, tokens(tvs))
}

func TestScanLineTracking(t *testing.T) {
	tvs := scanAll("var a\n= 1;")
	// "=" is on line 2
	for _, tv := range tvs {
		if tv.Token == token.EQ {
			line, _ := tv.Pos.LineCol()
			require.Equal(t, 2, line)
			return
		}
	}
	t.Fatal("did not find EQ token")
}
