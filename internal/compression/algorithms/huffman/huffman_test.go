package huffman

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adilg123/lz77-elias-codec/internal/compression/algorithms/bitstream"
	"github.com/adilg123/lz77-elias-codec/internal/compression/codecerr"
)

func TestCountFrequencies(t *testing.T) {
	freq := CountFrequencies([]byte("abracadabra"))
	require.Equal(t, uint64(5), freq['a'])
	require.Equal(t, uint64(2), freq['b'])
	require.Equal(t, uint64(1), freq['d'])
	require.Equal(t, 5, freq.Distinct())
	require.Equal(t, uint64(11), freq.Total())
}

func TestEmptyAlphabet(t *testing.T) {
	table := BuildCodeTable(FrequencyTable{})
	require.Equal(t, 0, table.Len())
	require.Empty(t, table.Symbols())
}

func TestSingleSymbolGetsOneBit(t *testing.T) {
	table := BuildCodeTable(CountFrequencies(bytes.Repeat([]byte{'z'}, 40)))
	code, ok := table.Code('z')
	require.True(t, ok)
	require.Equal(t, "0", code.String())
}

func TestTwoSymbols(t *testing.T) {
	table := BuildCodeTable(CountFrequencies([]byte("aaab")))
	a, _ := table.Code('a')
	b, _ := table.Code('b')
	// 'b' is rarer, so it is popped first and gets the 0 branch.
	require.Equal(t, "1", a.String())
	require.Equal(t, "0", b.String())
}

func TestKnownTable(t *testing.T) {
	var freq FrequencyTable
	freq['a'] = 45
	freq['b'] = 13
	freq['c'] = 12
	freq['d'] = 16
	freq['e'] = 9
	freq['f'] = 5
	table := BuildCodeTable(freq)

	want := map[byte]int{'a': 1, 'b': 3, 'c': 3, 'd': 3, 'e': 4, 'f': 4}
	for s, l := range want {
		code, ok := table.Code(s)
		require.True(t, ok)
		require.Equal(t, l, code.Len(), "symbol %c", s)
	}
	require.True(t, table.IsPrefixFree())
	require.Equal(t, uint64(224), table.EncodedBits(freq))
	require.Equal(t, 4, table.MaxLen())
}

func TestSizeTieBreak(t *testing.T) {
	// After merging d and c into a node of weight 2, three nodes of weight 2
	// remain. The two single-symbol ones must merge first.
	var freq FrequencyTable
	freq['a'] = 2
	freq['b'] = 2
	freq['c'] = 1
	freq['d'] = 1
	table := BuildCodeTable(freq)
	for _, s := range []byte("abcd") {
		code, _ := table.Code(s)
		require.Equal(t, 2, code.Len(), "symbol %c", s)
	}
}

func TestCodeLengthsMatchTreeDepths(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 20; iter++ {
		var freq FrequencyTable
		for s := 0; s < 256; s++ {
			if rng.Intn(3) == 0 {
				freq[s] = uint64(rng.Intn(1000) + 1)
			}
		}
		if freq.Distinct() < 2 {
			continue
		}
		table, h := buildTree(freq)
		root := heapRoot(h)
		depths := h.depths(root)
		require.Len(t, depths, freq.Distinct())
		for s, d := range depths {
			code, ok := table.Code(s)
			require.True(t, ok)
			require.Equal(t, d, code.Len())
		}
		require.True(t, table.IsPrefixFree())
	}
}

func heapRoot(h *nodeHeap) int32 {
	return h.items[0]
}

func TestRandomTablesArePrefixFree(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 50; iter++ {
		data := make([]byte, rng.Intn(4096)+1)
		alphabet := rng.Intn(256) + 1
		for i := range data {
			data[i] = byte(rng.Intn(alphabet))
		}
		table := BuildCodeTable(CountFrequencies(data))
		require.True(t, table.IsPrefixFree())
		freq := CountFrequencies(data)
		require.Equal(t, freq.Distinct(), table.Len())
	}
}

func TestEncodeDecodeThroughTrie(t *testing.T) {
	data := []byte("she sells sea shells by the sea shore")
	table := BuildCodeTable(CountFrequencies(data))
	trie, err := FromTable(table)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := bitstream.NewWriter(&buf)
	for _, b := range data {
		require.NoError(t, table.Encode(w, b))
	}
	require.NoError(t, w.Close())

	r := bitstream.NewReader(bytes.NewReader(buf.Bytes()))
	var out []byte
	for range data {
		s, err := trie.Decode(r)
		require.NoError(t, err)
		out = append(out, s)
	}
	require.Equal(t, data, out)
}

func TestEncodeAbsentSymbol(t *testing.T) {
	table := BuildCodeTable(CountFrequencies([]byte("ab")))
	err := table.Encode(bitstream.NewWriter(&bytes.Buffer{}), 'q')
	require.ErrorIs(t, err, codecerr.ErrInvalidParameter)
}

func TestTrieRejectsDuplicateCode(t *testing.T) {
	trie := NewDecodeTrie()
	require.NoError(t, trie.Insert('a', bitstream.MustFromString("01")))
	err := trie.Insert('b', bitstream.MustFromString("01"))
	require.ErrorIs(t, err, codecerr.ErrMalformedTree)
}

func TestTrieRejectsPrefixCodes(t *testing.T) {
	trie := NewDecodeTrie()
	require.NoError(t, trie.Insert('a', bitstream.MustFromString("01")))
	require.ErrorIs(t, trie.Insert('b', bitstream.MustFromString("011")), codecerr.ErrMalformedTree)

	trie = NewDecodeTrie()
	require.NoError(t, trie.Insert('a', bitstream.MustFromString("011")))
	require.ErrorIs(t, trie.Insert('b', bitstream.MustFromString("01")), codecerr.ErrMalformedTree)

	require.ErrorIs(t, trie.Insert('c', bitstream.Bits{}), codecerr.ErrMalformedTree)
}

func TestTrieMissingBranch(t *testing.T) {
	trie := NewDecodeTrie()
	require.NoError(t, trie.Insert('a', bitstream.MustFromString("0")))
	require.Equal(t, 2, trie.Size())
	r := bitstream.NewReader(bytes.NewReader([]byte{0b10000000}))
	_, err := trie.Decode(r)
	require.ErrorIs(t, err, codecerr.ErrMalformedTree)
}

func TestTrieUnderrun(t *testing.T) {
	trie := NewDecodeTrie()
	require.NoError(t, trie.Insert('a', bitstream.MustFromString("000000000")))
	r := bitstream.NewReader(bytes.NewReader([]byte{0}))
	_, err := trie.Decode(r)
	require.ErrorIs(t, err, codecerr.ErrStreamUnderrun)
}

func TestTableSet(t *testing.T) {
	table := NewCodeTable()
	require.NoError(t, table.Set('x', bitstream.MustFromString("10")))
	require.ErrorIs(t, table.Set('x', bitstream.MustFromString("11")), codecerr.ErrMalformedTree)
	require.ErrorIs(t, table.Set('y', bitstream.Bits{}), codecerr.ErrMalformedTree)
	require.Equal(t, []byte{'x'}, table.Symbols())
}
