package tailr

import (
	"bytes"
	"compress/gzip"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ustclug/tailr/pkg/tail"
	"github.com/ustclug/tailr/pkg/take"
	testutils "github.com/ustclug/tailr/test/utils"
)

const ten = "one\ntwo\nthree\nfour\nfive\nsix\nseven\neight\nnine\nten\n"

type output struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func runWith(t *testing.T, cfg *Config, stdin io.Reader) (*output, error) {
	t.Helper()
	var out output
	opts := []Option{
		WithOutput(&out.stdout, &out.stderr),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	if stdin != nil {
		opts = append(opts, WithStdin(stdin))
	}
	err := New(cfg, opts...).Run()
	return &out, err
}

func TestRunSingle(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "ten.txt")
	testutils.WriteFile(t, name, ten)

	out, err := runWith(t, &Config{
		Files: []string{name},
		Unit:  tail.Lines,
		Take:  take.Count(-3),
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "eight\nnine\nten\n", out.stdout.String())
	require.Empty(t, out.stderr.String())
}

func TestRunHeaders(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	testutils.WriteFile(t, a, "a1\na2\n")
	testutils.WriteFile(t, b, "b1\nb2\n")

	cfg := &Config{
		Files: []string{a, b},
		Unit:  tail.Lines,
		Take:  take.Count(-1),
	}
	out, err := runWith(t, cfg, nil)
	require.NoError(t, err)
	require.Equal(t, "==> "+a+" <==\na2\n\n==> "+b+" <==\nb2\n", out.stdout.String())

	cfg.Quiet = true
	out, err = runWith(t, cfg, nil)
	require.NoError(t, err)
	require.Equal(t, "a2\nb2\n", out.stdout.String())
}

func TestRunHeadersColor(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	testutils.WriteFile(t, a, "a1\n")
	testutils.WriteFile(t, b, "b1\n")

	cfg := &Config{
		Files: []string{a, b},
		Unit:  tail.Lines,
		Take:  take.Count(-1),
		Color: "always",
	}
	out, err := runWith(t, cfg, nil)
	require.NoError(t, err)
	require.Contains(t, out.stdout.String(), "\x1b[1m==> "+a+" <==")

	cfg.Color = "never"
	out, err = runWith(t, cfg, nil)
	require.NoError(t, err)
	require.NotContains(t, out.stdout.String(), "\x1b[")
}

func TestRunContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	missing := filepath.Join(dir, "missing.txt")
	testutils.WriteFile(t, good, ten)

	out, err := runWith(t, &Config{
		Files: []string{missing, dir, good},
		Unit:  tail.Bytes,
		Take:  take.Count(-4),
		Quiet: true,
	}, nil)
	require.ErrorIs(t, err, ErrFailed)
	require.Equal(t, "ten\n", out.stdout.String())

	lines := strings.Split(strings.TrimSpace(out.stderr.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, missing+": no such file or directory", lines[0])
	require.Equal(t, dir+": is a directory", lines[1])
}

func TestRunStdin(t *testing.T) {
	out, err := runWith(t, &Config{
		Files: []string{Stdin},
		Unit:  tail.Lines,
		Take:  take.Count(8),
	}, strings.NewReader(ten))
	require.NoError(t, err)
	require.Equal(t, "eight\nnine\nten\n", out.stdout.String())

	out, err = runWith(t, &Config{
		Files: []string{Stdin},
		Unit:  tail.Bytes,
		Take:  take.FromStart(),
	}, strings.NewReader(ten))
	require.NoError(t, err)
	require.Equal(t, ten, out.stdout.String())
}

func TestRunDecompress(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "ten.txt.gz")
	f, err := os.Create(name)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	_, err = gw.Write([]byte(ten))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	cfg := &Config{
		Files:      []string{name},
		Unit:       tail.Lines,
		Take:       take.Count(-2),
		Decompress: true,
	}
	out, err := runWith(t, cfg, nil)
	require.NoError(t, err)
	require.Equal(t, "nine\nten\n", out.stdout.String())

	// Without decompression the compressed bytes are passed through.
	cfg.Decompress = false
	cfg.Unit = tail.Bytes
	cfg.Take = take.FromStart()
	out, err = runWith(t, cfg, nil)
	require.NoError(t, err)
	raw, err := os.ReadFile(name)
	require.NoError(t, err)
	require.Equal(t, raw, out.stdout.Bytes())
}

func TestRunSpoolRemovesTempFile(t *testing.T) {
	src, err := spool(strings.NewReader(ten))
	require.NoError(t, err)
	name := src.Name()
	_, err = os.Stat(name)
	require.NoError(t, err)
	require.NoError(t, src.Close())
	_, err = os.Stat(name)
	require.True(t, os.IsNotExist(err))
}
