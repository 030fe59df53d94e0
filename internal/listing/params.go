package listing

import (
	"net/url"

	"github.com/creasty/defaults"
	"github.com/gorilla/schema"
)

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	// dashboards append throwaway params like _t as cache breakers
	d.IgnoreUnknownKeys(true)
	return d
}

// Params is the pagination half of every list request.
type Params struct {
	Page  int `schema:"page" default:"1"`
	Limit int `schema:"limit" default:"20"`
}

// ParseParams decodes page/limit from a query string and clamps them
// into a valid range. Garbage input degrades to the defaults.
func ParseParams(values url.Values) Params {
	var p Params
	_ = defaults.Set(&p)
	_ = decoder.Decode(&p, values)
	p.Clamp()
	return p
}

func (p *Params) Clamp() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// DecodeFilters fills an endpoint-specific filter struct from the query
// string using its schema tags. Empty values stay empty, which every
// builder below treats as "unset".
func DecodeFilters(dst any, values url.Values) error {
	return decoder.Decode(dst, values)
}
