package pinata

import (
	"errors"

	"github.com/x-xyz/nfttransfer/base/ctx"
)

var ErrRequestFailed = errors.New("request failed")

type CidVersion uint8

const (
	CidV0 CidVersion = 0
	CidV1 CidVersion = 1
)

// Metadata is shown in the pinata dashboard, it is not part of the pinned document
type Metadata struct {
	Name string `json:"name,omitempty"`
	// values can only be string, bool or number
	KeyValues map[string]interface{} `json:"keyvalues,omitempty"`
}

type pinataOptions struct {
	CidVersion CidVersion `json:"cidVersion"`
}

// PinRequest is the pinJSONToIPFS request body
type PinRequest struct {
	Metadata *Metadata      `json:"pinataMetadata,omitempty"`
	Options  *pinataOptions `json:"pinataOptions,omitempty"`
	Content  interface{}    `json:"pinataContent"`
}

type Option func(*PinRequest)

// NewPinRequest applies opts to a request pinning content
func NewPinRequest(content interface{}, opts ...Option) *PinRequest {
	r := &PinRequest{Content: content}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func WithName(name string) Option {
	return func(r *PinRequest) {
		if r.Metadata == nil {
			r.Metadata = &Metadata{}
		}
		r.Metadata.Name = name
	}
}

func WithKeyValue(key string, value interface{}) Option {
	return func(r *PinRequest) {
		if r.Metadata == nil {
			r.Metadata = &Metadata{}
		}
		if r.Metadata.KeyValues == nil {
			r.Metadata.KeyValues = map[string]interface{}{}
		}
		r.Metadata.KeyValues[key] = value
	}
}

func WithCidVersion(v CidVersion) Option {
	return func(r *PinRequest) {
		r.Options = &pinataOptions{CidVersion: v}
	}
}

type Service interface {
	// PinJson pins value as a JSON document and returns its ipfs hash
	PinJson(c ctx.Ctx, value interface{}, opts ...Option) (string, error)
}
