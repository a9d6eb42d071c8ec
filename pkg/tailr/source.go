package tailr

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var errIsDir = errors.New("is a directory")

// Stdin is the file name standing for the standard input.
const Stdin = "-"

// source is an opened input. Inputs that cannot seek are spooled into a
// temporary file first, which close removes.
type source struct {
	*os.File
	spooled bool
}

func (s *source) Close() error {
	err := s.File.Close()
	if s.spooled {
		_ = os.Remove(s.File.Name())
	}
	return err
}

func spool(content io.Reader) (*source, error) {
	tmpfile, err := os.CreateTemp("", ".tailr")
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	src := &source{File: tmpfile, spooled: true}
	if _, err = io.Copy(tmpfile, content); err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("copy: %w", err)
	}
	if _, err = tmpfile.Seek(0, io.SeekStart); err != nil {
		_ = src.Close()
		return nil, err
	}
	return src, nil
}

func decompressGzip(content io.Reader) (*source, error) {
	gr, err := gzip.NewReader(content)
	if err != nil {
		return nil, fmt.Errorf("read gzip: %w", err)
	}
	defer gr.Close()
	return spool(gr)
}

func (r *Runner) open(name string) (*source, error) {
	if name == Stdin {
		return spool(r.stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if fi.IsDir() {
		_ = f.Close()
		return nil, errIsDir
	}
	if r.config.Decompress && filepath.Ext(name) == ".gz" {
		defer f.Close()
		return decompressGzip(f)
	}
	if !fi.Mode().IsRegular() {
		defer f.Close()
		return spool(f)
	}
	return &source{File: f}, nil
}
