package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfgpkg "github.com/rzbill/seqid/internal/config"
	"github.com/rzbill/seqid/internal/runtime"
	"github.com/rzbill/seqid/pkg/id"
	logpkg "github.com/rzbill/seqid/pkg/log"
)

const fixedMillis = 1734422400000

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := cfgpkg.Default()
	cfg.Checkpoint.Enabled = false
	cfg.TZOffsetMinutes = 9 * 60
	rt, err := runtime.Open(context.Background(), runtime.Options{
		Config: cfg,
		ClockFactory: func(u id.Unit) id.Clock {
			if u == id.Millisecond {
				return id.ClockFunc(func() int64 { return fixedMillis })
			}
			return id.ClockFunc(func() int64 { return fixedMillis * 1000 })
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })
	logger, err := logpkg.ApplyConfig(&logpkg.Config{Level: "error", Format: "text", Outputs: []string{"null"}})
	require.NoError(t, err)
	return New(rt, logger)
}

func do(t *testing.T, s *Server, method, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	var body map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestPingAndHealth(t *testing.T) {
	s := newTestServer(t)

	w, body := do(t, s, http.MethodGet, "/ping")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", body["message"])

	w, body = do(t, s, http.MethodGet, "/v1/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSchemes(t *testing.T) {
	s := newTestServer(t)
	w, body := do(t, s, http.MethodGet, "/v1/schemes")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "milli36", body["default"])

	schemes := body["schemes"].([]any)
	require.Len(t, schemes, 3)
	milli := schemes[1].(map[string]any)
	assert.Equal(t, "milli36", milli["name"])
	assert.Equal(t, float64(36), milli["base"])
	assert.Equal(t, "ms", milli["unit"])
	assert.Len(t, milli["layout"], 2)
	assert.NotContains(t, schemes[0].(map[string]any), "layout")
}

func TestGenerate(t *testing.T) {
	s := newTestServer(t)

	w, body := do(t, s, http.MethodPost, "/v1/ids/milli36/generate?count=3")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "milli36", body["scheme"])
	assert.Equal(t, []any{"v37mjt0ni80", "v37mjt0ni81", "v37mjt0ni82"}, body["ids"])

	w, body = do(t, s, http.MethodPost, "/v1/ids/micro26/generate")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["ids"], 1)

	for _, q := range []string{"0", "1001", "ten"} {
		w, body = do(t, s, http.MethodPost, "/v1/ids/milli36/generate?count="+q)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.Equal(t, "bad_request", body["code"])
	}

	w, _ = do(t, s, http.MethodGet, "/v1/ids/milli36/generate")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestEncodeDecode(t *testing.T) {
	s := newTestServer(t)

	w, body := do(t, s, http.MethodGet, "/v1/ids/micro15/encode?value=1734422400240900")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "d57b490c54aa0", body["id"])

	w, body = do(t, s, http.MethodGet, "/v1/ids/micro15/decode/d57b490c54aa0")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1734422400240900", body["value"])

	// wider than 64 bits round trips through the unbounded scheme
	w, body = do(t, s, http.MethodGet, "/v1/ids/micro26/encode?value=340282366920938463463374607431768211456")
	require.Equal(t, http.StatusOK, w.Code)
	enc := body["id"].(string)
	_, body = do(t, s, http.MethodGet, "/v1/ids/micro26/decode/"+enc)
	assert.Equal(t, "340282366920938463463374607431768211456", body["value"])

	w, body = do(t, s, http.MethodGet, "/v1/ids/micro15/encode?value=-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad_request", body["code"])
}

func TestErrorsMapToCodes(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		target string
		status int
		code   string
	}{
		{"/v1/ids/micro15/decode/g", http.StatusBadRequest, "invalid_character"},
		{"/v1/ids/micro26/decode/ABC", http.StatusBadRequest, "invalid_character"},
		{"/v1/ids/base64/decode/abc", http.StatusNotFound, "unknown_scheme"},
		{"/v1/readable/parse?s=20241217-170000", http.StatusBadRequest, "malformed_readable"},
		{"/v1/readable?ts=253402300800000000", http.StatusBadRequest, "timestamp_range"},
		{"/v1/ids/milli36/describe/v37mjt0ni87?tz=east", http.StatusBadRequest, "bad_request"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w, body := do(t, s, http.MethodGet, tt.target)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestDescribe(t *testing.T) {
	s := newTestServer(t)

	w, body := do(t, s, http.MethodGet, "/v1/ids/milli36/describe/v37mjt0ni87")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, float64(fixedMillis), body["timestamp"])
	assert.Equal(t, float64(7), body["offset"])
	assert.Equal(t, "20241217_170000000000+09", body["readable"])

	w, body = do(t, s, http.MethodGet, "/v1/ids/milli36/describe/v37mjt0ni87?tz=-300")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "20241217_030000000000-05", body["readable"])

	w, body = do(t, s, http.MethodGet, "/v1/ids/milli36/describe/v37-mjt")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["valid"])
	assert.Contains(t, body["error"], "not in the scheme alphabet")

	// 2^64-1: a legal milli36 value whose timestamp is past year 9999
	w, body = do(t, s, http.MethodGet, "/v1/ids/milli36/describe/3w5e11264sgsf")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["valid"])
	assert.Contains(t, body["error"], "displayable range")
	assert.NotContains(t, body, "readable")
}

func TestReadable(t *testing.T) {
	s := newTestServer(t)

	w, body := do(t, s, http.MethodGet, "/v1/readable?ts=1734422400240900")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "20241217_170000240900+09", body["readable"])

	_, body = do(t, s, http.MethodGet, "/v1/readable?ts=0&tz=-300")
	assert.Equal(t, "19691231_190000000000-05", body["readable"])

	_, body = do(t, s, http.MethodGet, "/v1/readable/parse?s=20241217_170000240900%2B09")
	assert.Equal(t, float64(1734422400240900), body["ts"])

	w, _ = do(t, s, http.MethodGet, "/v1/readable?ts=soon")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = do(t, s, http.MethodGet, "/v1/readable?ts=0&tz=east")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	w, _ := do(t, s, http.MethodOptions, "/v1/ids/milli36/generate")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/v1/ids/milli36/generate?count=2")
	do(t, s, http.MethodGet, "/v1/ids/micro15/decode/g")

	w, _ := do(t, s, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	out := w.Body.String()
	assert.Contains(t, out, `seqid_ids_generated_total{scheme="milli36"} 2`)
	assert.Contains(t, out, `seqid_http_requests_total{code="400",route="/v1/ids/{scheme}/decode/{id}"} 1`)
	assert.Contains(t, out, "go_goroutines")
}

func TestListenAndServe(t *testing.T) {
	s := newTestServer(t)
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, l) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/ping")
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "pong")
	assert.Equal(t, l.Addr().String(), s.Addr().String())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
