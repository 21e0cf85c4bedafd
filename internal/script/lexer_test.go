package script_test

import (
	"testing"

	"github.com/ostafen/lemdat/internal/script"
	"github.com/stretchr/testify/require"
)

func TestLexerTokenSequence(t *testing.T) {
	src := `Terrain "set1_terrain000.bmp" Mask "set1_terrain000_mask.bmp"`
	l := script.New(src)

	tok, err := l.NextToken()
	require.NoError(t, err)
	require.Equal(t, script.TokenIdent, tok.Kind)
	require.Equal(t, "Terrain", tok.Ident)

	s, err := l.GetStringLiteral()
	require.NoError(t, err)
	require.Equal(t, "set1_terrain000.bmp", s)

	require.NoError(t, l.ExpectIdent("Mask"))

	s, err = l.GetStringLiteral()
	require.NoError(t, err)
	require.Equal(t, "set1_terrain000_mask.bmp", s)
}

func TestLexerIntegersAndSigns(t *testing.T) {
	l := script.New(`-42 7 -0`)

	v, err := l.GetIntLiteral()
	require.NoError(t, err)
	require.EqualValues(t, -42, v)

	v, err = l.GetIntLiteral()
	require.NoError(t, err)
	require.EqualValues(t, 7, v)

	v, err = l.GetIntLiteral()
	require.NoError(t, err)
	require.EqualValues(t, 0, v)
}

func TestLexerSymbolsAndBraces(t *testing.T) {
	l := script.New(`{ x = 1, y = 2 }`)

	require.NoError(t, l.ExpectSymbol('{'))
	require.NoError(t, l.ExpectIdent("x"))
	require.NoError(t, l.ExpectSymbol('='))

	v, err := l.GetIntLiteral()
	require.NoError(t, err)
	require.EqualValues(t, 1, v)

	require.NoError(t, l.ExpectSymbol(','))
	require.NoError(t, l.ExpectIdent("y"))
	require.NoError(t, l.ExpectSymbol('='))

	v, err = l.GetIntLiteral()
	require.NoError(t, err)
	require.EqualValues(t, 2, v)

	require.NoError(t, l.ExpectSymbol('}'))
}

func TestPeekAndUnget(t *testing.T) {
	l := script.New(`Palettes = {}`)

	tok, err := l.PeekToken()
	require.NoError(t, err)
	require.Equal(t, "Palettes", tok.Ident)

	require.True(t, l.IsNextIdent("Palettes"))

	tok2, err := l.NextToken()
	require.NoError(t, err)
	require.Equal(t, tok, tok2)

	l.UngetToken(tok2)
	tok3, err := l.NextToken()
	require.NoError(t, err)
	require.Equal(t, tok2, tok3)
}

func TestUnterminatedStringFails(t *testing.T) {
	l := script.New(`"abc`)
	_, err := l.GetStringLiteral()
	require.Error(t, err)
}

func TestExpectIdentMismatch(t *testing.T) {
	l := script.New(`Object`)
	err := l.ExpectIdent("Terrain")
	require.Error(t, err)
}

func TestRoundTripTokenSequence(t *testing.T) {
	src := `HeaderFile "a.dat" DataFile "b.dat" Terrain "t.bmp"`
	l := script.New(src)

	var kinds []script.TokenKind
	var idents, strs []string
	for {
		tok, err := l.NextToken()
		if err != nil {
			break
		}
		kinds = append(kinds, tok.Kind)
		if tok.Kind == script.TokenIdent {
			idents = append(idents, tok.Ident)
		}
		if tok.Kind == script.TokenString {
			strs = append(strs, tok.Str)
		}
	}
	require.Equal(t, []string{"HeaderFile", "DataFile", "Terrain"}, idents)
	require.Equal(t, []string{"a.dat", "b.dat", "t.bmp"}, strs)
}
