package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adilg123/lz77-elias-codec/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{WindowLimit: 4096, LookaheadLimit: 64, MaxFileSize: 1 << 20, LogLevel: "ERROR"}
}

func TestCompressDecompressFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "poem.txt")
	content := strings.Repeat("so much depends upon a red wheel barrow\n", 40)
	require.NoError(t, os.WriteFile(input, []byte(content), 0o644))

	var stdout bytes.Buffer
	require.NoError(t, run(testConfig(), []string{"compress", input, "256", "16"}, &stdout))
	require.Contains(t, stdout.String(), "poem.txt.bin")

	// Remove the original so decompress has to recreate it from the stored name.
	require.NoError(t, os.Remove(input))
	stdout.Reset()
	require.NoError(t, run(testConfig(), []string{"decompress", input + ".bin"}, &stdout))
	got, err := os.ReadFile(input)
	require.NoError(t, err)
	require.Equal(t, content, string(got))

	stdout.Reset()
	require.NoError(t, run(testConfig(), []string{"inspect", input + ".bin"}, &stdout))
	require.Contains(t, stdout.String(), `name:     "poem.txt"`)
	require.Contains(t, stdout.String(), "symbols:  1600")
}

func TestCompressOutputFlag(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.dat")
	require.NoError(t, os.WriteFile(input, []byte("abcabcabc"), 0o644))
	packed := filepath.Join(dir, "custom.lz")
	restored := filepath.Join(dir, "restored.dat")

	var stdout bytes.Buffer
	require.NoError(t, run(testConfig(), []string{"compress", "-o", packed, input}, &stdout))
	require.NoError(t, run(testConfig(), []string{"decompress", "-o", restored, packed}, &stdout))
	got, err := os.ReadFile(restored)
	require.NoError(t, err)
	require.Equal(t, "abcabcabc", string(got))
}

func TestUsageErrors(t *testing.T) {
	var stdout bytes.Buffer
	for _, args := range [][]string{
		nil,
		{"explode"},
		{"compress"},
		{"compress", "x", "10"},
		{"compress", "x", "0", "4"},
		{"compress", "x", "4", "many"},
		{"decompress"},
		{"inspect", "a", "b"},
		{"compress", "-bogus", "x"},
	} {
		err := run(testConfig(), args, &stdout)
		require.ErrorIs(t, err, errUsage, "args %q", args)
	}
}

func TestInspectRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "junk.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x00}, 0o644))
	err := run(testConfig(), []string{"inspect", path}, &bytes.Buffer{})
	require.Error(t, err)
	require.NotErrorIs(t, err, errUsage)
}

func TestStoredBase(t *testing.T) {
	require.Equal(t, "notes.txt", storedBase("../../etc/notes.txt", "a.bin"))
	require.Equal(t, "a.out", storedBase("", "dir/a.bin"))
	require.Equal(t, "a.out", storedBase("..", "a.bin"))
}
