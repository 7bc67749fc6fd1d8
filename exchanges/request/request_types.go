package request

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Const vars for rate limiter and request handling
const (
	// MaxRequestJobs caps the number of in flight requests per Requester
	MaxRequestJobs = 50

	userAgent      = "User-Agent"
	contentType    = "Content-Type"
	defaultTimeout = time.Second * 15
)

// Requester struct for the request client
type Requester struct {
	HTTPClient *http.Client
	Name       string
	UserAgent  string
	limiter    *rate.Limiter
	jobs       int32
}

// RequesterOption is a function option that can be applied to configure a
// Requester when creating it.
type RequesterOption func(*Requester)

// Item is a temp item for requests
type Item struct {
	Method        string
	Path          string
	Headers       map[string]string
	Body          []byte
	Verbose       bool
	HTTPDebugging bool
}

// Generate defines a closure for functionality outside of the requester to
// build the request after any client side throttling has elapsed, so that
// time sensitive fields such as signatures are always fresh.
type Generate func() (*Item, error)

// Response is the raw outcome of a single HTTP exchange. A non 2xx status is
// not treated as an error at this layer.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// IsSuccessStatus reports whether the HTTP status code is in the 2xx range
func (r *Response) IsSuccessStatus() bool {
	return r != nil && r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}
