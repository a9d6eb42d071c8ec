// Package utils provides some helper functions.
package utils

import "os"

// MissingDirs returns the elements of paths that are not existing directories.
func MissingDirs(paths ...string) []string {
	var missing []string
	for _, p := range paths {
		stat, err := os.Stat(p)
		if err != nil || !stat.IsDir() {
			missing = append(missing, p)
		}
	}
	return missing
}
