package request

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"strings"
	"sync/atomic"

	"github.com/basis-arb/ftxclient/log"
)

var (
	errRequestSystemIsNil   = errors.New("request system is nil")
	errMaxRequestJobs       = errors.New("max request jobs reached")
	errRequestFunctionIsNil = errors.New("request function is nil")
	errServiceNameUnset     = errors.New("service name unset")
	errRequestItemNil       = errors.New("request item is nil")
	errInvalidPath          = errors.New("invalid path")
	errInvalidMethod        = errors.New("invalid method")
)

// New returns a new Requester. When httpRequester is nil a client with the
// default timeout is used.
func New(name string, httpRequester *http.Client, opts ...RequesterOption) (*Requester, error) {
	if name == "" {
		return nil, errServiceNameUnset
	}
	if httpRequester == nil {
		httpRequester = &http.Client{Timeout: defaultTimeout}
	}
	r := &Requester{
		HTTPClient: httpRequester,
		Name:       name,
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// SendPayload performs exactly one HTTP exchange. Any failure to complete the
// exchange is returned as a *TransportError; a completed exchange is returned
// whatever its status code so that the caller can interpret the body.
func (r *Requester) SendPayload(ctx context.Context, newRequest Generate) (*Response, error) {
	if r == nil {
		return nil, errRequestSystemIsNil
	}
	if newRequest == nil {
		return nil, errRequestFunctionIsNil
	}
	if atomic.LoadInt32(&r.jobs) >= MaxRequestJobs {
		return nil, errMaxRequestJobs
	}
	atomic.AddInt32(&r.jobs, 1)
	defer atomic.AddInt32(&r.jobs, -1)
	return r.doRequest(ctx, newRequest)
}

// validateRequest validates the requester item fields
func (i *Item) validateRequest(ctx context.Context, r *Requester) (*http.Request, error) {
	if i == nil {
		return nil, errRequestItemNil
	}
	if i.Path == "" {
		return nil, errInvalidPath
	}
	switch i.Method {
	case http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodPut:
	default:
		return nil, fmt.Errorf("%w: %q", errInvalidMethod, i.Method)
	}

	var body io.Reader
	if len(i.Body) > 0 {
		body = bytes.NewReader(i.Body)
	}
	req, err := http.NewRequestWithContext(ctx, i.Method, i.Path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPath, err)
	}

	for k, v := range i.Headers {
		req.Header.Add(k, v)
	}
	if r.UserAgent != "" && req.Header.Get(userAgent) == "" {
		req.Header.Add(userAgent, r.UserAgent)
	}

	if i.HTTPDebugging {
		// Err not evaluated due to validation check above
		dump, _ := httputil.DumpRequestOut(req, true)
		log.Debugf(log.RequestSys, "DumpRequest:\n%s", dump)
	}
	return req, nil
}

func (r *Requester) doRequest(ctx context.Context, newRequest Generate) (*Response, error) {
	if err := r.initiateRateLimit(ctx); err != nil {
		return nil, &TransportError{Name: r.Name, Err: err}
	}

	p, err := newRequest()
	if err != nil {
		return nil, err
	}

	req, err := p.validateRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	verbose := IsVerbose(ctx, p.Verbose)
	if verbose {
		log.Debugf(log.RequestSys, "%s request path: %s", r.Name, p.Path)
		for k, d := range req.Header {
			log.Debugf(log.RequestSys, "%s request header [%s]: %s", r.Name, k, redactHeader(k, d))
		}
		log.Debugf(log.RequestSys, "%s request type: %s", r.Name, p.Method)
		if len(p.Body) > 0 {
			log.Debugf(log.RequestSys, "%s request body: %s", r.Name, p.Body)
		}
	}

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Name: r.Name, Method: p.Method, Path: p.Path, Err: err}
	}
	defer resp.Body.Close()

	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Name: r.Name, Method: p.Method, Path: p.Path, Err: err}
	}

	if p.HTTPDebugging {
		dump, err := httputil.DumpResponse(resp, false)
		if err != nil {
			log.Errorf(log.RequestSys, "DumpResponse invalid response: %v:", err)
		}
		log.Debugf(log.RequestSys, "DumpResponse Headers (%v):\n%s", p.Path, dump)
		log.Debugf(log.RequestSys, "DumpResponse Body (%v):\n %s", p.Path, contents)
	}

	if verbose {
		log.Debugf(log.RequestSys, "HTTP status: %s, Code: %v", resp.Status, resp.StatusCode)
		if !p.HTTPDebugging {
			log.Debugf(log.RequestSys, "%s raw response: %s", r.Name, contents)
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       contents,
	}, nil
}

// redactHeader keeps credential material out of verbose logs
func redactHeader(key string, values []string) []string {
	k := strings.ToUpper(key)
	if strings.HasSuffix(k, "-KEY") || strings.HasSuffix(k, "-SIGN") {
		return []string{"[redacted]"}
	}
	return values
}
