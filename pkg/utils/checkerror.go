package utils

import (
	"errors"
	"fmt"
	"os"
)

// CheckError exits with status 1 if err is not nil. The error is printed to
// stderr unless it wraps one of reported, which the caller has already
// told the user about.
func CheckError(err error, reported ...error) {
	if err == nil {
		return
	}
	for _, r := range reported {
		if errors.Is(err, r) {
			os.Exit(1)
		}
	}
	_, _ = fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
