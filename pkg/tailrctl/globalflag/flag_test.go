package globalflag

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) *FlagSet {
	t.Helper()
	f := New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.AddFlags(fs)
	require.NoError(t, fs.Parse(args))
	return f
}

func TestMakeURL(t *testing.T) {
	t.Setenv(envRemote, "")
	u, err := parse(t).MakeURL("api/v1")
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:9998/api/v1", u.String())

	u, err = parse(t, "-r", "https://logs.example.com/tailrd/").MakeURL("api/v1")
	require.NoError(t, err)
	require.Equal(t, "https://logs.example.com/tailrd/api/v1", u.String())

	_, err = parse(t, "--remote", "127.0.0.1:9998").MakeURL("api/v1")
	require.Error(t, err)
}

func TestRemoteFromEnv(t *testing.T) {
	t.Setenv(envRemote, "http://10.0.0.2:9998")
	u, err := parse(t).MakeURL("api/v1")
	require.NoError(t, err)
	require.Equal(t, "http://10.0.0.2:9998/api/v1", u.String())
}
