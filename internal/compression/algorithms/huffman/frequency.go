package huffman

// FrequencyTable counts occurrences of each byte value. Zero entries are
// absent symbols.
type FrequencyTable [256]uint64

// CountFrequencies builds the histogram of data.
func CountFrequencies(data []byte) FrequencyTable {
	var freq FrequencyTable
	for _, b := range data {
		freq[b]++
	}
	return freq
}

// Distinct returns the number of symbols with a non-zero count.
func (f *FrequencyTable) Distinct() int {
	n := 0
	for _, c := range f {
		if c > 0 {
			n++
		}
	}
	return n
}

// Total returns the sum of all counts.
func (f *FrequencyTable) Total() uint64 {
	var n uint64
	for _, c := range f {
		n += c
	}
	return n
}
