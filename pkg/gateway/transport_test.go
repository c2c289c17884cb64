package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTransportPost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/payout/order", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"code":0}`))
	}))
	defer server.Close()

	transport := NewHTTPTransport(server.URL, nil)
	raw, err := transport.Post(context.Background(), pathPayoutOrder, []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, `{"code":0}`, string(raw))
}

func TestHTTPTransportGetWithQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "USDT", r.URL.Query().Get("symbol"))
		w.Write([]byte(`{"symbols":[]}`))
	}))
	defer server.Close()

	transport := NewHTTPTransport(server.URL, nil)
	query := url.Values{"symbol": []string{"USDT"}}
	_, err := transport.Get(context.Background(), pathSymbols, query)
	assert.NoError(t, err)
}

func TestHTTPTransportErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	transport := NewHTTPTransport(server.URL, nil)
	_, err := transport.Post(context.Background(), pathPayoutOrder, []byte(`{}`))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestHTTPTransportTrimsTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/symbols", r.URL.Path)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	transport := NewHTTPTransport(server.URL+"/", nil)
	_, err := transport.Get(context.Background(), pathSymbols, nil)
	assert.NoError(t, err)
}
