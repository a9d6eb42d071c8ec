package factory

import (
	"encoding/json"
	"io"

	"github.com/go-resty/resty/v2"

	"github.com/ustclug/tailr/pkg/tailrctl/globalflag"
)

type factoryImpl struct {
	*globalflag.FlagSet
}

func (f *factoryImpl) RESTClient() (*resty.Client, error) {
	u, err := f.MakeURL("api/v1")
	if err != nil {
		return nil, err
	}
	return resty.New().SetBaseURL(u.String()), nil
}

func (f *factoryImpl) JSONEncoder(w io.Writer) *json.Encoder {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder
}

func New(flags *globalflag.FlagSet) Factory {
	s := factoryImpl{
		FlagSet: flags,
	}
	return &s
}
