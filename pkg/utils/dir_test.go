package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMissingDirs(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	gone := filepath.Join(dir, "gone")

	require.Equal(t, []string{file, gone}, MissingDirs(dir, file, gone))
	require.Nil(t, MissingDirs(dir))
}
