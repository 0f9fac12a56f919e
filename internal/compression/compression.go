package compression

import (
	"fmt"
	"io"

	"github.com/adilg123/lz77-elias-codec/internal/compression/algorithms/container"
)

// Default match-finder limits, used when Options leaves them at zero.
const (
	DefaultWindowLimit    = 4096
	DefaultLookaheadLimit = 64
)

// SupportedAlgorithms contains all supported compression algorithms
var SupportedAlgorithms = []string{
	"lz77",
}

// Options contains compression/decompression options
type Options struct {
	Algorithm      string
	Name           string // source name stored in the container
	WindowLimit    int
	LookaheadLimit int
	MaxOutputSize  int64 // caps the declared size when decompressing; 0 means no cap
	Progress       func(advanced int)
}

// Stats contains compression statistics
type Stats struct {
	OriginalSize     int
	ProcessedSize    int
	CompressionRatio float64
	Algorithm        string
	Name             string
	DistinctSymbols  int
}

// AlgorithmFactory defines the interface for compression algorithms
type AlgorithmFactory interface {
	NewCompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser)
	NewDecompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser)
}

// headerSource is implemented by readers that know the container header
// once processing has finished.
type headerSource interface {
	Header() *container.Header
}

// factoryMap maps algorithm names to their factories
var factoryMap = map[string]AlgorithmFactory{
	"lz77": &LZ77Factory{},
}

// LZ77Factory builds reader/writer pairs for the LZ77 + Huffman + Elias-gamma container.
type LZ77Factory struct{}

func (f *LZ77Factory) NewCompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser) {
	window, lookahead := options.WindowLimit, options.LookaheadLimit
	if window == 0 {
		window = DefaultWindowLimit
	}
	if lookahead == 0 {
		lookahead = DefaultLookaheadLimit
	}
	return container.NewCompressionReaderAndWriter(options.Name, container.Options{
		WindowLimit:    window,
		LookaheadLimit: lookahead,
		Progress:       options.Progress,
	})
}

func (f *LZ77Factory) NewDecompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser) {
	return container.NewDecompressionReaderAndWriter(options.MaxOutputSize)
}

// IsValidAlgorithm checks if the provided algorithm is supported
func IsValidAlgorithm(algorithm string) bool {
	_, exists := factoryMap[algorithm]
	return exists
}

// GetSupportedAlgorithms returns a list of supported algorithms
func GetSupportedAlgorithms() []string {
	return append([]string{}, SupportedAlgorithms...)
}

// Compress compresses data using the specified algorithm
func Compress(data []byte, options Options) ([]byte, *Stats, error) {
	if !IsValidAlgorithm(options.Algorithm) {
		return nil, nil, fmt.Errorf("unsupported algorithm: %s", options.Algorithm)
	}

	factory := factoryMap[options.Algorithm]
	reader, writer := factory.NewCompressionReaderAndWriter(options)

	compressedData, err := processData(data, reader, writer)
	if err != nil {
		return nil, nil, fmt.Errorf("compression failed: %w", err)
	}

	stats := newStats(options.Algorithm, len(data), len(compressedData), reader)
	if len(data) > 0 {
		stats.CompressionRatio = float64(len(compressedData)) / float64(len(data)) * 100
	}

	return compressedData, stats, nil
}

// Decompress decompresses data using the specified algorithm
func Decompress(data []byte, options Options) ([]byte, *Stats, error) {
	if !IsValidAlgorithm(options.Algorithm) {
		return nil, nil, fmt.Errorf("unsupported algorithm: %s", options.Algorithm)
	}

	factory := factoryMap[options.Algorithm]
	reader, writer := factory.NewDecompressionReaderAndWriter(options)

	decompressedData, err := processData(data, reader, writer)
	if err != nil {
		return nil, nil, fmt.Errorf("decompression failed: %w", err)
	}

	stats := newStats(options.Algorithm, len(data), len(decompressedData), reader)
	if len(decompressedData) > 0 {
		stats.CompressionRatio = float64(len(data)) / float64(len(decompressedData)) * 100
	}

	return decompressedData, stats, nil
}

func newStats(algorithm string, original, processed int, reader io.Reader) *Stats {
	stats := &Stats{
		OriginalSize:  original,
		ProcessedSize: processed,
		Algorithm:     algorithm,
	}
	if hs, ok := reader.(headerSource); ok {
		if h := hs.Header(); h != nil {
			stats.Name = h.Name
			stats.DistinctSymbols = h.Distinct()
		}
	}
	return stats
}

// processData writes the whole input, closes the writer to trigger processing,
// then drains the reader.
func processData(inputData []byte, reader io.ReadCloser, writer io.WriteCloser) ([]byte, error) {
	defer reader.Close()

	if _, err := writer.Write(inputData); err != nil {
		return nil, fmt.Errorf("failed to write data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	return io.ReadAll(reader)
}
