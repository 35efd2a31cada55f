package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallDecodesResult(t *testing.T) {
	var gotBody rpcRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/jsonrpc", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"result":  7,
		})
	}))
	defer srv.Close()

	rpc := NewRpc(2 * time.Second)

	var out int64
	err := rpc.Call(context.Background(), srv.URL, "common", "authenticate",
		[]interface{}{"db", "user", "pass", map[string]interface{}{}}, &out)
	require.NoError(t, err)
	assert.Equal(t, int64(7), out)

	assert.Equal(t, "2.0", gotBody.JSONRPC)
	assert.Equal(t, "call", gotBody.Method)
	assert.Equal(t, "common", gotBody.Params.Service)
	assert.Equal(t, "authenticate", gotBody.Params.Method)
}

func TestCallRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"error":   map[string]interface{}{"code": 200, "message": "Odoo Server Error"},
		})
	}))
	defer srv.Close()

	rpc := NewRpc(2 * time.Second)
	err := rpc.Call(context.Background(), srv.URL, "object", "execute_kw", nil, nil)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, 200, remoteErr.Code)
	assert.Contains(t, remoteErr.Message, "Odoo Server Error")
}

func TestCallNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	rpc := NewRpc(2 * time.Second)
	err := rpc.Call(context.Background(), srv.URL, "common", "version", nil, nil)

	var connErr *ConnectivityError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, srv.URL, connErr.Endpoint)
}

func TestCallUnreachableEndpoint(t *testing.T) {
	rpc := NewRpc(500 * time.Millisecond)
	err := rpc.Call(context.Background(), "http://127.0.0.1:1", "common", "version", nil, nil)

	var connErr *ConnectivityError
	require.ErrorAs(t, err, &connErr)
}

func TestCallMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("bukan json"))
	}))
	defer srv.Close()

	rpc := NewRpc(2 * time.Second)
	err := rpc.Call(context.Background(), srv.URL, "common", "version", nil, nil)

	var connErr *ConnectivityError
	require.ErrorAs(t, err, &connErr)
}
