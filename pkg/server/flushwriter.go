package server

import (
	"io"
)

type flusher interface {
	io.Writer
	Flush()
}

// flushWriter flushes after every write so that a long tail reaches the
// client while it is still being produced.
type flushWriter struct {
	w flusher
}

func (f *flushWriter) Write(p []byte) (n int, err error) {
	n, err = f.w.Write(p)
	f.w.Flush()
	return n, err
}

func newFlushWriter(w flusher) io.Writer {
	return &flushWriter{w}
}
