package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	pb "github.com/cheggaaa/pb/v3"

	"github.com/adilg123/lz77-elias-codec/internal/compression"
	"github.com/adilg123/lz77-elias-codec/internal/compression/algorithms/container"
	"github.com/adilg123/lz77-elias-codec/internal/config"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(progName+" "+name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

func runCompress(cfg *config.Config, args []string, stdout io.Writer) error {
	fs := newFlagSet("compress")
	out := fs.String("o", "", "output path (default <input>.bin)")
	progress := fs.Bool("progress", false, "show a progress bar")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) != 1 && len(rest) != 3 {
		return fmt.Errorf("%w: compress takes an input path and optionally both limits", errUsage)
	}
	inputPath := rest[0]
	window, lookahead := cfg.WindowLimit, cfg.LookaheadLimit
	if len(rest) == 3 {
		var err error
		if window, err = parseLimit("windowLimit", rest[1]); err != nil {
			return err
		}
		if lookahead, err = parseLimit("lookaheadLimit", rest[2]); err != nil {
			return err
		}
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	options := compression.Options{
		Algorithm:      "lz77",
		Name:           filepath.Base(inputPath),
		WindowLimit:    window,
		LookaheadLimit: lookahead,
	}
	var bar *pb.ProgressBar
	if *progress {
		bar = pb.New(len(data))
		bar.Set(pb.Bytes, true)
		bar.Start()
		options.Progress = func(advanced int) { bar.Add(advanced) }
	}
	packed, stats, err := compression.Compress(data, options)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	outPath := *out
	if outPath == "" {
		outPath = inputPath + ".bin"
	}
	if err := os.WriteFile(outPath, packed, 0o644); err != nil {
		return err
	}
	log.Infof("compressed %s (window %d, lookahead %d)", inputPath, window, lookahead)
	fmt.Fprintf(stdout, "%s: %d -> %d bytes (%.1f%%), %d distinct symbols\n",
		outPath, stats.OriginalSize, stats.ProcessedSize, stats.CompressionRatio, stats.DistinctSymbols)
	return nil
}

func runDecompress(cfg *config.Config, args []string, stdout io.Writer) error {
	fs := newFlagSet("decompress")
	out := fs.String("o", "", "output path (default: stored name next to the container)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: decompress takes exactly one container path", errUsage)
	}
	binPath := fs.Arg(0)

	src, err := os.ReadFile(binPath)
	if err != nil {
		return err
	}
	data, stats, err := compression.Decompress(src, compression.Options{Algorithm: "lz77"})
	if err != nil {
		return err
	}

	outPath := *out
	if outPath == "" {
		outPath = filepath.Join(filepath.Dir(binPath), storedBase(stats.Name, binPath))
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}
	log.Infof("decompressed %s", binPath)
	fmt.Fprintf(stdout, "%s: %d bytes\n", outPath, len(data))
	return nil
}

// storedBase reduces a stored name to a plain file name. Names that carry no
// usable base fall back to the container path without its .bin suffix.
func storedBase(stored, binPath string) string {
	base := filepath.Base(filepath.FromSlash(stored))
	switch base {
	case "", ".", "..", string(filepath.Separator):
		base = strings.TrimSuffix(filepath.Base(binPath), ".bin") + ".out"
	}
	return base
}

func runInspect(args []string, stdout io.Writer) error {
	fs := newFlagSet("inspect")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: inspect takes exactly one container path", errUsage)
	}
	src, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	header, err := container.Inspect(src)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "name:     %q\n", header.Name)
	fmt.Fprintf(stdout, "symbols:  %d\n", header.TotalSymbols)
	fmt.Fprintf(stdout, "distinct: %d\n", header.Distinct())
	for _, s := range header.Table.Symbols() {
		code, _ := header.Table.Code(s)
		fmt.Fprintf(stdout, "  0x%02x %-6q %s\n", s, rune(s), code)
	}
	return nil
}

func parseLimit(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", errUsage, name, s)
	}
	return v, nil
}
