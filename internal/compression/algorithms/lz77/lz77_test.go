package lz77_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adilg123/lz77-elias-codec/internal/compression/algorithms/lz77"
	"github.com/adilg123/lz77-elias-codec/internal/compression/codecerr"
)

func naiveZ(s []byte) []int {
	z := make([]int, len(s))
	for i := range s {
		for i+z[i] < len(s) && s[z[i]] == s[i+z[i]] {
			z[i]++
		}
	}
	return z
}

func TestZArrayKnown(t *testing.T) {
	require.Equal(t, []int{7, 1, 0, 0, 3, 1, 0}, lz77.ZArray([]byte("aabxaab"), nil))
	require.Equal(t, []int{5, 4, 3, 2, 1}, lz77.ZArray([]byte("aaaaa"), nil))
	require.Empty(t, lz77.ZArray(nil, nil))
	require.Equal(t, []int{1}, lz77.ZArray([]byte("x"), nil))
}

func TestZArrayMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var z []int
	for iter := 0; iter < 200; iter++ {
		s := make([]byte, rng.Intn(200))
		alphabet := rng.Intn(4) + 1
		for i := range s {
			s[i] = 'a' + byte(rng.Intn(alphabet))
		}
		z = lz77.ZArray(s, z)
		require.Equal(t, naiveZ(s), append([]int{}, z...), "input %q", s)
	}
}

func TestRepeatedByte(t *testing.T) {
	f, err := lz77.NewFinder(4, 4)
	require.NoError(t, err)
	tokens := f.Tokens([]byte("aaaa"))
	require.Equal(t, []lz77.Token{
		{Literal: 'a'},
		{Distance: 1, Length: 3, Terminal: true},
	}, tokens)

	out, err := lz77.Replay(tokens)
	require.NoError(t, err)
	require.Equal(t, "aaaa", string(out))
}

func TestRepeatedWord(t *testing.T) {
	f, err := lz77.NewFinder(6, 3)
	require.NoError(t, err)
	tokens := f.Tokens([]byte("abcabc"))
	require.Len(t, tokens, 4)
	for i, c := range "abc" {
		require.Equal(t, lz77.Token{Literal: byte(c)}, tokens[i])
	}
	require.Equal(t, 3, tokens[3].Distance)
	require.Equal(t, 3, tokens[3].Length)
}

func TestLiteralAfterMatch(t *testing.T) {
	f, err := lz77.NewFinder(16, 16)
	require.NoError(t, err)
	tokens := f.Tokens([]byte("abab!"))
	require.Equal(t, []lz77.Token{
		{Literal: 'a'},
		{Literal: 'b'},
		{Distance: 2, Length: 2, Literal: '!'},
	}, tokens)
}

func TestClosestDistanceWinsTies(t *testing.T) {
	f, err := lz77.NewFinder(16, 2)
	require.NoError(t, err)
	tokens := f.Tokens([]byte("xyQxyRxyS"))
	// "xy" at offset 6 matches both earlier copies; the nearer one is used.
	require.Equal(t, lz77.Token{Distance: 3, Length: 2, Literal: 'S'}, tokens[len(tokens)-1])
}

func TestWindowSlides(t *testing.T) {
	f, err := lz77.NewFinder(3, 8)
	require.NoError(t, err)
	tokens := f.Tokens([]byte("abcdefabc"))
	// "abc" is six bytes back, outside a window of three.
	for _, tok := range tokens {
		require.Zero(t, tok.Length)
	}
	out, err := lz77.Replay(tokens)
	require.NoError(t, err)
	require.Equal(t, "abcdefabc", string(out))
}

func TestLookaheadCapsLength(t *testing.T) {
	f, err := lz77.NewFinder(64, 5)
	require.NoError(t, err)
	data := bytes.Repeat([]byte("z"), 40)
	tokens := f.Tokens(data)
	for _, tok := range tokens[1:] {
		require.LessOrEqual(t, tok.Length, 5)
	}
	out, err := lz77.Replay(tokens)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestBoundsAndRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for iter := 0; iter < 100; iter++ {
		data := make([]byte, rng.Intn(2000))
		alphabet := rng.Intn(8) + 1
		for i := range data {
			data[i] = byte(rng.Intn(alphabet))
		}
		window := rng.Intn(300) + 1
		lookahead := rng.Intn(40) + 1
		f, err := lz77.NewFinder(window, lookahead)
		require.NoError(t, err)

		covered := 0
		tokens := f.Tokens(data)
		for i, tok := range tokens {
			require.LessOrEqual(t, tok.Distance, window)
			require.LessOrEqual(t, tok.Distance, covered)
			require.LessOrEqual(t, tok.Length, lookahead)
			require.Equal(t, tok.Distance == 0, tok.Length == 0)
			if tok.Terminal {
				require.Equal(t, len(tokens)-1, i)
			}
			covered += tok.Advance()
		}
		require.Equal(t, len(data), covered)

		out, err := lz77.Replay(tokens)
		require.NoError(t, err)
		require.Equal(t, string(data), string(out))
	}
}

func TestProgressCoversInput(t *testing.T) {
	f, err := lz77.NewFinder(32, 8)
	require.NoError(t, err)
	total := 0
	f.Progress = func(n int) { total += n }
	data := []byte("the quick brown fox jumps over the lazy dog the end")
	f.Tokens(data)
	require.Equal(t, len(data), total)
}

func TestEmptyInput(t *testing.T) {
	f, err := lz77.NewFinder(1, 1)
	require.NoError(t, err)
	require.Empty(t, f.Tokens(nil))
}

func TestInvalidLimits(t *testing.T) {
	_, err := lz77.NewFinder(0, 4)
	require.ErrorIs(t, err, codecerr.ErrInvalidParameter)
	_, err = lz77.NewFinder(4, -1)
	require.ErrorIs(t, err, codecerr.ErrInvalidParameter)
}

func TestCopyMatchRejectsBadReferences(t *testing.T) {
	_, err := lz77.CopyMatch([]byte("ab"), 3, 1)
	require.ErrorIs(t, err, codecerr.ErrCorruptStream)
	_, err = lz77.CopyMatch([]byte("ab"), 0, 1)
	require.ErrorIs(t, err, codecerr.ErrCorruptStream)
	_, err = lz77.CopyMatch([]byte("ab"), 1, 0)
	require.ErrorIs(t, err, codecerr.ErrCorruptStream)

	out, err := lz77.CopyMatch([]byte("ab"), 2, 5)
	require.NoError(t, err)
	require.Equal(t, "abababa", string(out))
}
