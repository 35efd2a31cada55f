package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ConnectivityError: endpoint tidak bisa dihubungi / response rusak.
type ConnectivityError struct {
	Endpoint string
	Err      error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("ERP tidak dapat dihubungi (%s): %v", e.Endpoint, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// RemoteError: server ERP menjawab, tapi dengan payload error JSON-RPC.
type RemoteError struct {
	Code    int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("ERP menolak request (code %d): %s", e.Code, e.Message)
}

// =======================
// JSON-RPC 2.0 TRANSPORT
// =======================

type rpcParams struct {
	Service string        `json:"service"`
	Method  string        `json:"method"`
	Args    []interface{} `json:"args"`
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      int64     `json:"id"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Rpc adalah transport JSON-RPC stateless ke endpoint ERP (Odoo-style:
// POST {endpoint}/jsonrpc, method "call", params {service, method, args}).
type Rpc struct {
	httpClient *http.Client
}

func NewRpc(timeout time.Duration) *Rpc {
	return &Rpc{httpClient: &http.Client{Timeout: timeout}}
}

// Call mengirim satu panggilan dan decode result ke out (boleh nil).
func (r *Rpc) Call(ctx context.Context, endpoint, service, method string, args []interface{}, out interface{}) error {
	payload := rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params:  rpcParams{Service: service, Method: method, Args: args},
		ID:      time.Now().UnixNano(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return &ConnectivityError{Endpoint: endpoint, Err: err}
	}

	url := strings.TrimRight(endpoint, "/") + "/jsonrpc"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &ConnectivityError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return &ConnectivityError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ConnectivityError{Endpoint: endpoint, Err: fmt.Errorf("HTTP status %d", resp.StatusCode)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ConnectivityError{Endpoint: endpoint, Err: err}
	}

	var decoded rpcResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return &ConnectivityError{Endpoint: endpoint, Err: fmt.Errorf("payload bukan JSON-RPC valid: %w", err)}
	}
	if decoded.Error != nil {
		return &RemoteError{Code: decoded.Error.Code, Message: decoded.Error.Message}
	}

	if out != nil && len(decoded.Result) > 0 {
		if err := json.Unmarshal(decoded.Result, out); err != nil {
			return &ConnectivityError{Endpoint: endpoint, Err: fmt.Errorf("result tidak sesuai: %w", err)}
		}
	}
	return nil
}
