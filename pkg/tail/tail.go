// Package tail provides support for outputing the selected suffix of a ReadSeeker.
package tail

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ustclug/tailr/pkg/take"
)

const blockSize = 32 * 1024

var eol = []byte("\n")

var ErrIO = errors.New("i/o error")

// IOError records a failed read, seek or stat on a source.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

// Unwrap returns both ErrIO and the underlying cause.
func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }

func ioErr(op string, err error) error {
	return &IOError{Op: op, Err: err}
}

// Unit is what a take specification counts.
type Unit uint8

const (
	Lines Unit = iota
	Bytes
)

func (u Unit) String() string {
	if u == Bytes {
		return "bytes"
	}
	return "lines"
}

// Totals describes the extent of a source as of one read pass.
type Totals struct {
	Lines int64
	Bytes int64
}

// Size returns the size of s in bytes without reading its content.
// Regular files are asked via Stat, other seekers are sought to the end and back.
func Size(s io.Seeker) (int64, error) {
	if st, ok := s.(interface{ Stat() (os.FileInfo, error) }); ok {
		fi, err := st.Stat()
		if err != nil {
			return 0, ioErr("stat", err)
		}
		if fi.Mode().IsRegular() {
			return fi.Size(), nil
		}
	}
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, ioErr("seek", err)
	}
	size, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, ioErr("seek", err)
	}
	if _, err = s.Seek(cur, io.SeekStart); err != nil {
		return 0, ioErr("seek", err)
	}
	return size, nil
}

// CountLines counts the lines left in r. A final line without a terminator
// still counts as a line.
func CountLines(r io.Reader) (int64, error) {
	var (
		n    int64
		last byte
		seen bool
	)
	buf := make([]byte, blockSize)
	for {
		m, err := r.Read(buf)
		if m > 0 {
			n += int64(bytes.Count(buf[:m], eol))
			last = buf[m-1]
			seen = true
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, ioErr("read", err)
		}
	}
	if seen && last != eol[0] {
		n++
	}
	return n, nil
}

// Count computes the line and byte totals of rs from its beginning and
// leaves rs positioned at the end.
func Count(rs io.ReadSeeker) (Totals, error) {
	size, err := Size(rs)
	if err != nil {
		return Totals{}, err
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return Totals{}, ioErr("seek", err)
	}
	lines, err := CountLines(rs)
	if err != nil {
		return Totals{}, err
	}
	return Totals{Lines: lines, Bytes: size}, nil
}

// Tail writes the part of a source selected by a take value.
type Tail struct {
	r    io.ReadSeeker
	unit Unit
	v    take.Value
}

// New returns an instance of Tail.
func New(r io.ReadSeeker, unit Unit, v take.Value) *Tail {
	return &Tail{r: r, unit: unit, v: v}
}

// WriteTo writes the selected suffix to the Writer.
func (t *Tail) WriteTo(w io.Writer) (n int64, err error) {
	if t.unit == Bytes {
		return t.writeBytes(w)
	}
	return t.writeLines(w)
}

func (t *Tail) writeBytes(w io.Writer) (int64, error) {
	total, err := Size(t.r)
	if err != nil {
		return 0, err
	}
	start, ok := t.v.Resolve(total)
	if !ok {
		return 0, nil
	}
	if _, err := t.r.Seek(start, io.SeekStart); err != nil {
		return 0, ioErr("seek", err)
	}
	// The source may have shrunk since it was measured.
	n, err := io.CopyN(sink{w}, t.r, total-start)
	var werr *writeError
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return n, nil
	case errors.As(err, &werr):
		return n, fmt.Errorf("write: %w", werr.err)
	case errors.Is(err, io.ErrShortWrite):
		return n, fmt.Errorf("write: %w", err)
	default:
		return n, ioErr("read", err)
	}
}

// writeError marks failures of the destination so they are not taken for
// failures of the source.
type writeError struct {
	err error
}

func (e *writeError) Error() string { return e.err.Error() }

type sink struct {
	w io.Writer
}

func (s sink) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	if err != nil {
		return n, &writeError{err: err}
	}
	return n, nil
}

func (t *Tail) writeLines(w io.Writer) (int64, error) {
	if _, err := t.r.Seek(0, io.SeekStart); err != nil {
		return 0, ioErr("seek", err)
	}
	total, err := CountLines(t.r)
	if err != nil {
		return 0, err
	}
	if _, err := t.r.Seek(0, io.SeekStart); err != nil {
		return 0, ioErr("seek", err)
	}
	start, ok := t.v.Resolve(total)
	if !ok {
		if _, err := io.Copy(io.Discard, t.r); err != nil {
			return 0, ioErr("read", err)
		}
		return 0, nil
	}

	br := bufio.NewReaderSize(t.r, blockSize)
	for i := int64(0); i < start; i++ {
		if _, done, err := copyLine(io.Discard, br); err != nil || done {
			return 0, err
		}
	}

	// Emit at most what was counted, even if the source grew in between.
	var n int64
	for i := start; i < total; i++ {
		written, done, err := copyLine(w, br)
		n += written
		if err != nil || done {
			return n, err
		}
	}
	return n, nil
}

// copyLine copies one line, terminator included, from br to w.
// done is true when br hit EOF before any byte of the line was read.
func copyLine(w io.Writer, br *bufio.Reader) (n int64, done bool, err error) {
	for {
		chunk, rerr := br.ReadSlice(eol[0])
		if len(chunk) > 0 {
			written, werr := w.Write(chunk)
			n += int64(written)
			if werr != nil {
				return n, false, fmt.Errorf("write: %w", werr)
			}
		}
		switch {
		case rerr == nil:
			return n, false, nil
		case errors.Is(rerr, bufio.ErrBufferFull):
			continue
		case errors.Is(rerr, io.EOF):
			return n, len(chunk) == 0 && n == 0, nil
		default:
			return n, false, ioErr("read", rerr)
		}
	}
}
