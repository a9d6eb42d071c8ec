package tabwriter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, "name", "path")
	w.Append("nginx", "/var/log/nginx/access.log")
	w.Append("syslog", "")
	require.NoError(t, w.Render())

	expected := "NAME     PATH\n" +
		"nginx    /var/log/nginx/access.log\n" +
		"syslog   -\n"
	require.Equal(t, expected, buf.String())
}

func TestRenderNoRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, "name").Render())
	require.Equal(t, "NAME\n", buf.String())
}
