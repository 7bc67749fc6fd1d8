package mock

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, u string) (int, string) {
	t.Helper()
	resp, err := http.Get(u) //nolint:gosec,noctx // test server url
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestServerRecordsAndRoutes(t *testing.T) {
	t.Parallel()
	s := NewServer()
	defer s.Close()

	s.Handle(http.MethodPost, "/api/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_, _ = w.Write([]byte(mux.Vars(r)["id"] + ":" + string(b)))
	})
	s.HandleJSON(http.MethodGet, "/api/markets", http.StatusOK, RawEnvelope(`[]`))

	code, body := get(t, s.URL+"/api/markets?depth=5")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"success":true,"result":[]}`, body)

	resp, err := http.Post(s.URL+"/api/orders/42", "application/json", strings.NewReader(`{"size":1}`)) //nolint:gosec,noctx // test server url
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, `42:{"size":1}`, string(b), "handlers should still be able to read the recorded body")

	code, _ = get(t, s.URL+"/api/unrouted")
	assert.Equal(t, http.StatusNotFound, code)

	require.Equal(t, 3, s.RequestCount(), "unmatched requests should be recorded too")
	reqs := s.Requests()
	assert.Equal(t, "/api/markets", reqs[0].Path)
	assert.Equal(t, "depth=5", reqs[0].RawQuery)
	assert.Equal(t, "5", reqs[0].Query.Get("depth"))
	assert.Equal(t, `{"size":1}`, string(reqs[1].Body))
	last, ok := s.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "/api/unrouted", last.Path)
}

func TestServerHandleSequence(t *testing.T) {
	t.Parallel()
	s := NewServer()
	defer s.Close()
	_, ok := s.LastRequest()
	assert.False(t, ok)

	s.HandleSequence(http.MethodGet, "/seq", []byte(`1`), []byte(`2`))
	_, first := get(t, s.URL+"/seq")
	_, second := get(t, s.URL+"/seq")
	_, third := get(t, s.URL+"/seq")
	assert.Equal(t, "1", first)
	assert.Equal(t, "2", second)
	assert.Equal(t, "2", third, "last response should repeat")
}
