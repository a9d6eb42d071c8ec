package globalflag

import (
	"fmt"
	"net/url"
	"os"
	"path"

	"github.com/spf13/pflag"
)

const (
	envRemote     = "TAILRD_REMOTE"
	defaultRemote = "http://127.0.0.1:9998/"
)

type FlagSet struct {
	remote string
}

// MakeURL joins p onto the path of the remote address.
func (f *FlagSet) MakeURL(p string) (*url.URL, error) {
	u, err := url.Parse(f.remote)
	if err != nil {
		return nil, fmt.Errorf("invalid remote: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid remote: unsupported scheme %q", u.Scheme)
	}
	u.Path = path.Join(u.Path, p)
	return u, nil
}

func (f *FlagSet) AddFlags(flags *pflag.FlagSet) {
	remote := os.Getenv(envRemote)
	if len(remote) == 0 {
		remote = defaultRemote
	}
	flags.StringVarP(&f.remote, "remote", "r", remote, "Remote address of tailrd (env "+envRemote+")")
}

func New() *FlagSet {
	return &FlagSet{}
}
