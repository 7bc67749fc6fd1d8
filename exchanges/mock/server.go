package mock

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/gorilla/mux"
)

// RecordedRequest is a copy of an inbound request as seen by the server
type RecordedRequest struct {
	Method   string
	Path     string
	RawPath  string
	RawQuery string
	Query    url.Values
	Header   http.Header
	Body     []byte
}

// Server is a routed test server which records every request it receives,
// matched or not
type Server struct {
	*httptest.Server
	Router *mux.Router

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewServer starts a new recording server. Callers must Close it.
func NewServer() *Server {
	s := &Server{Router: mux.NewRouter()}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	_ = r.Body.Close()
	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawPath:  r.URL.EscapedPath(),
		RawQuery: r.URL.RawQuery,
		Query:    r.URL.Query(),
		Header:   r.Header.Clone(),
		Body:     body,
	})
	s.mu.Unlock()
	r.Body = io.NopCloser(bytes.NewReader(body))
	s.Router.ServeHTTP(w, r)
}

// Handle registers a handler for the method and mux path template, e.g.
// "/api/markets/{market}/trades"
func (s *Server) Handle(method, path string, h http.HandlerFunc) {
	s.Router.HandleFunc(path, h).Methods(method)
}

// HandleJSON registers a fixed JSON response
func (s *Server) HandleJSON(method, path string, status int, body []byte) {
	s.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	})
}

// HandleSequence registers responses served in order, repeating the last one
// once exhausted
func (s *Server) HandleSequence(method, path string, bodies ...[]byte) {
	var (
		mu sync.Mutex
		i  int
	)
	s.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		body := bodies[i]
		if i < len(bodies)-1 {
			i++
		}
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})
}

// Requests returns a copy of every request received so far
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestCount returns the number of requests received so far
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// LastRequest returns the most recent request and false when none arrived
func (s *Server) LastRequest() (RecordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}
