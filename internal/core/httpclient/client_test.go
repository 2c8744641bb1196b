package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"checkpoint-tracker/internal/core/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedTransport(gateway, apiKey string) (*GatewayTransport, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &GatewayTransport{Gateway: gateway, APIKey: apiKey, Log: zap.New(core)}, logs
}

// TestGatewayTransport verifies auth injection and the logged call fields.
func TestGatewayTransport(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	transport, logs := observedTransport("ledger", "secret")
	client := &http.Client{Transport: transport, Timeout: time.Second}

	req, err := http.NewRequestWithContext(WithShipmentID(context.Background(), "SHP-1"), http.MethodGet, ts.URL+"/anchors/SHP-1?x=1", nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The caller's request is left untouched.
	assert.Empty(t, req.Header.Get("Authorization"))

	entries := logs.FilterMessage("Gateway call completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "ledger", fields["gateway"])
	assert.Equal(t, "SHP-1", fields["shipment_id"])
	assert.Equal(t, "/anchors/SHP-1", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status_code"])

	for _, e := range logs.All() {
		for _, v := range e.ContextMap() {
			if s, ok := v.(string); ok {
				assert.NotContains(t, s, "secret")
			}
		}
	}
}

// TestGatewayTransport_ServerError verifies that 5xx answers are logged at warn level.
func TestGatewayTransport_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	transport, logs := observedTransport("interpreter", "")
	client := &http.Client{Transport: transport, Timeout: time.Second}

	resp, err := client.Get(ts.URL + "/interpret")
	require.NoError(t, err)
	resp.Body.Close()

	entries := logs.FilterMessage("Gateway returned server error").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	_, tagged := entries[0].ContextMap()["shipment_id"]
	assert.False(t, tagged)
}

// TestGatewayTransport_Error verifies that failed requests are returned as errors.
func TestGatewayTransport_Error(t *testing.T) {
	transport, logs := observedTransport("ledger", "")
	client := &http.Client{Transport: transport, Timeout: time.Second}

	_, err := client.Get("http://invalid-url-that-does-not-exist.local")
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("Gateway call failed").Len())
}

// TestNewGatewayClient verifies the client falls back to the global logger.
func TestNewGatewayClient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	logger.Init("development", "debug")

	client := NewGatewayClient("ledger", "", time.Second)
	resp, err := client.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

// TestJSONClient_Do verifies request encoding, auth header and response decoding.
func TestJSONClient_Do(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/echo", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]string
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&in)) {
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"echo": in["msg"]})
	}))
	defer ts.Close()

	c := NewJSONClient("test", ts.URL+"/", "secret", time.Second)

	var out map[string]string
	err := c.Do(context.Background(), http.MethodPost, "/echo", map[string]string{"msg": "hi"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "hi", out["echo"])
}

// TestJSONClient_StatusError verifies that non-2xx answers surface as StatusError.
func TestJSONClient_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer ts.Close()

	c := NewJSONClient("test", ts.URL, "", time.Second)
	err := c.Do(context.Background(), http.MethodGet, "/x", nil, nil)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "upstream down", statusErr.Body)
}
