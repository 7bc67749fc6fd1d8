package request

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testURL string

var errGenerate = errors.New("generate failure")

func TestMain(m *testing.M) {
	sm := http.NewServeMux()
	sm.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"result":[]}`)
	})
	sm.HandleFunc("/echo", func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		w.Header().Set("X-Method", req.Method)
		w.Header().Set("X-Agent", req.Header.Get(userAgent))
		w.Header().Set("X-Test", req.Header.Get("X-Test"))
		_, _ = w.Write(body)
	})
	sm.HandleFunc("/error", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `<html>oops</html>`)
	})
	sm.HandleFunc("/timeout", func(w http.ResponseWriter, req *http.Request) {
		time.Sleep(time.Millisecond * 200)
		w.WriteHeader(http.StatusGatewayTimeout)
	})
	server := httptest.NewServer(sm)
	testURL = server.URL
	issues := m.Run()
	server.Close()
	os.Exit(issues)
}

func TestNew(t *testing.T) {
	t.Parallel()
	_, err := New("", nil)
	assert.ErrorIs(t, err, errServiceNameUnset)

	r, err := New("test", nil, WithUserAgent("bot"))
	require.NoError(t, err)
	require.NotNil(t, r.HTTPClient, "a default client should be set")
	assert.Equal(t, defaultTimeout, r.HTTPClient.Timeout)
	assert.Equal(t, "bot", r.UserAgent)
}

func TestSendPayloadValidation(t *testing.T) {
	t.Parallel()
	var nilRequester *Requester
	_, err := nilRequester.SendPayload(context.Background(), nil)
	assert.ErrorIs(t, err, errRequestSystemIsNil)

	r, err := New("test", http.DefaultClient)
	require.NoError(t, err)
	_, err = r.SendPayload(context.Background(), nil)
	assert.ErrorIs(t, err, errRequestFunctionIsNil)

	_, err = r.SendPayload(context.Background(), func() (*Item, error) { return nil, errGenerate })
	assert.ErrorIs(t, err, errGenerate)

	_, err = r.SendPayload(context.Background(), func() (*Item, error) { return nil, nil })
	assert.ErrorIs(t, err, errRequestItemNil)

	_, err = r.SendPayload(context.Background(), func() (*Item, error) { return &Item{Method: http.MethodGet}, nil })
	assert.ErrorIs(t, err, errInvalidPath)

	_, err = r.SendPayload(context.Background(), func() (*Item, error) {
		return &Item{Method: "TRACE", Path: testURL}, nil
	})
	assert.ErrorIs(t, err, errInvalidMethod)
}

func TestSendPayload(t *testing.T) {
	t.Parallel()
	r, err := New("test", http.DefaultClient, WithUserAgent("ftxclient"))
	require.NoError(t, err)

	resp, err := r.SendPayload(context.Background(), func() (*Item, error) {
		return &Item{Method: http.MethodGet, Path: testURL, Verbose: true, HTTPDebugging: true}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, resp.IsSuccessStatus())
	assert.JSONEq(t, `{"success":true,"result":[]}`, string(resp.Body))

	resp, err = r.SendPayload(WithVerbose(context.Background()), func() (*Item, error) {
		return &Item{
			Method:  http.MethodPost,
			Path:    testURL + "/echo",
			Headers: map[string]string{"X-Test": "1", "FTX-KEY": "hidden"},
			Body:    []byte(`{"market":"BTC-PERP"}`),
		}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, `{"market":"BTC-PERP"}`, string(resp.Body), "body bytes should be sent verbatim")
	assert.Equal(t, http.MethodPost, resp.Header.Get("X-Method"))
	assert.Equal(t, "ftxclient", resp.Header.Get("X-Agent"))
	assert.Equal(t, "1", resp.Header.Get("X-Test"))
}

func TestSendPayloadNonSuccessStatus(t *testing.T) {
	t.Parallel()
	r, err := New("test", http.DefaultClient)
	require.NoError(t, err)
	resp, err := r.SendPayload(context.Background(), func() (*Item, error) {
		return &Item{Method: http.MethodGet, Path: testURL + "/error"}, nil
	})
	require.NoError(t, err, "a completed exchange should not error at this layer")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, resp.IsSuccessStatus())
	assert.Equal(t, "<html>oops</html>", string(resp.Body))
}

func TestSendPayloadTransportError(t *testing.T) {
	t.Parallel()
	r, err := New("test", &http.Client{Timeout: time.Millisecond * 50})
	require.NoError(t, err)
	calls := 0
	_, err = r.SendPayload(context.Background(), func() (*Item, error) {
		calls++
		return &Item{Method: http.MethodGet, Path: testURL + "/timeout"}, nil
	})
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.MethodGet, transportErr.Method)
	assert.Equal(t, 1, calls, "failed requests must not be retried")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.SendPayload(ctx, func() (*Item, error) {
		return &Item{Method: http.MethodGet, Path: testURL}, nil
	})
	require.ErrorAs(t, err, &transportErr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMaxRequestJobs(t *testing.T) {
	t.Parallel()
	r, err := New("test", http.DefaultClient)
	require.NoError(t, err)
	r.jobs = MaxRequestJobs
	_, err = r.SendPayload(context.Background(), func() (*Item, error) {
		return &Item{Method: http.MethodGet, Path: testURL}, nil
	})
	assert.ErrorIs(t, err, errMaxRequestJobs)
}

func TestRedactHeader(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"[redacted]"}, redactHeader("Ftx-Key", []string{"abc"}))
	assert.Equal(t, []string{"[redacted]"}, redactHeader("FTX-SIGN", []string{"abc"}))
	assert.Equal(t, []string{"1"}, redactHeader("Ftx-Ts", []string{"1"}))
}

func TestTransportError(t *testing.T) {
	t.Parallel()
	err := &TransportError{Name: "FTX", Method: http.MethodGet, Path: "/x", Err: io.ErrUnexpectedEOF}
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "transport failure")
}
