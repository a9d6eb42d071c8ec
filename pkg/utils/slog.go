package utils

import (
	"io"
	"log/slog"
	"strings"
)

// NewSlogger returns a text logger. Source file paths are trimmed to the
// part below the module directory.
func NewSlogger(writer io.Writer, addSource bool, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		AddSource: addSource,
		Level:     level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Taken from https://gist.github.com/HalCanary/6bd335057c65f3b803088cc55b9ebd2b
			if a.Key == slog.SourceKey {
				source, _ := a.Value.Any().(*slog.Source)
				if source != nil {
					_, after, _ := strings.Cut(source.File, "tailr")
					source.File = after
				}
			}
			return a
		},
	}))
}

func SlogErrAttr(err error) slog.Attr {
	return slog.Any("err", err)
}
