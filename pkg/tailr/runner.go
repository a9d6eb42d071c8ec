// Package tailr prints the selected tail of every given source, one after
// another, the way tail(1) does.
package tailr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/docker/go-units"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/ustclug/tailr/pkg/tail"
	"github.com/ustclug/tailr/pkg/utils"
)

// ErrFailed is returned by Run when at least one source could not be processed.
var ErrFailed = errors.New("one or more sources failed")

type Runner struct {
	config *Config
	logger *slog.Logger
	header *color.Color

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Option customizes a Runner.
type Option func(r *Runner)

func WithStdin(in io.Reader) Option {
	return func(r *Runner) {
		r.stdin = in
	}
}

func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

func New(cfg *Config, options ...Option) *Runner {
	r := &Runner{
		config: cfg,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, op := range options {
		op(r)
	}
	if r.logger == nil {
		r.logger = utils.NewSlogger(r.stderr, cfg.LogLevel == slog.LevelDebug, cfg.LogLevel)
	}
	r.header = color.New(color.Bold)
	if r.colorEnabled() {
		r.header.EnableColor()
	} else {
		r.header.DisableColor()
	}
	return r
}

func (r *Runner) colorEnabled() bool {
	switch r.config.Color {
	case "always":
		return true
	case "never":
		return false
	}
	if len(os.Getenv("NO_COLOR")) > 0 {
		return false
	}
	f, ok := r.stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run processes every configured source in order. Failures are reported on
// stderr and do not stop the remaining sources.
func (r *Runner) Run() error {
	files := r.config.Files
	showHeaders := !r.config.Quiet && len(files) > 1
	failed := false
	for i, name := range files {
		l := r.logger.With(slog.String("file", name))
		src, err := r.open(name)
		if err != nil {
			r.report(name, err)
			failed = true
			continue
		}
		if showHeaders {
			_, _ = fmt.Fprintln(r.stdout, r.header.Sprintf("==> %s <==", displayName(name)))
		}
		err = r.extract(l, src)
		_ = src.Close()
		if err != nil {
			r.report(name, err)
			failed = true
		}
		if showHeaders && i < len(files)-1 {
			_, _ = fmt.Fprintln(r.stdout)
		}
	}
	if failed {
		return ErrFailed
	}
	return nil
}

func (r *Runner) extract(l *slog.Logger, src *source) error {
	if l.Enabled(context.Background(), slog.LevelDebug) {
		totals, err := tail.Count(src)
		if err != nil {
			return err
		}
		l.Debug("Extracting",
			slog.String("unit", r.config.Unit.String()),
			slog.String("take", r.config.Take.String()),
			slog.Int64("lines", totals.Lines),
			slog.String("size", units.BytesSize(float64(totals.Bytes))),
		)
	}
	n, err := tail.New(src, r.config.Unit, r.config.Take).WriteTo(r.stdout)
	if err != nil {
		return err
	}
	l.Debug("Done", slog.Int64("written", n))
	return nil
}

func (r *Runner) report(name string, err error) {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	_, _ = fmt.Fprintf(r.stderr, "%s: %s\n", displayName(name), err)
}

func displayName(name string) string {
	if name == Stdin {
		return "standard input"
	}
	return name
}
