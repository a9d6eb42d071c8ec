package tabwriter

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const (
	minWidth = 6
	tabWidth = 4
	padding  = 3
	padChar  = ' '

	// placeholder is printed for empty cells so that columns stay aligned.
	placeholder = "-"
)

// Writer buffers rows and renders them as an aligned table with an upper-cased header.
type Writer struct {
	delegate *tabwriter.Writer

	header []string
	rows   bytes.Buffer
}

func New(out io.Writer, header ...string) *Writer {
	w := &Writer{
		delegate: tabwriter.NewWriter(out, minWidth, tabWidth, padding, padChar, 0),
	}
	w.header = make([]string, len(header))
	for i, col := range header {
		w.header[i] = strings.ToUpper(col)
	}
	return w
}

func (w *Writer) Append(cells ...string) {
	row := make([]string, len(cells))
	for i, c := range cells {
		c = strings.TrimSpace(c)
		if len(c) == 0 {
			c = placeholder
		}
		row[i] = c
	}
	_, _ = fmt.Fprintln(&w.rows, strings.Join(row, "\t"))
}

func (w *Writer) Render() error {
	if len(w.header) > 0 {
		_, err := fmt.Fprintln(w.delegate, strings.Join(w.header, "\t"))
		if err != nil {
			return err
		}
	}
	_, err := w.rows.WriteTo(w.delegate)
	if err != nil {
		return err
	}
	return w.delegate.Flush()
}
