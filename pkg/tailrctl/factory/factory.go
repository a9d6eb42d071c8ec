package factory

import (
	"encoding/json"
	"io"

	"github.com/go-resty/resty/v2"
)

type Factory interface {
	// RESTClient returns a client whose base URL points at the api/v1 root of tailrd.
	RESTClient() (*resty.Client, error)
	JSONEncoder(w io.Writer) *json.Encoder
}
