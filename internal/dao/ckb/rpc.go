package ckb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/ratelimit"
)

// ErrNotFound is returned when the node answers a lookup with a null result.
var ErrNotFound = errors.New("not found")

// RPCError is an error object returned by the node.
type RPCError struct {
	Code    int64           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcRequest struct {
	ID      uint64 `json:"id"`
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

var nullResult = []byte("null")

// rpcClient posts JSON-RPC 2.0 requests, one rate-limit token per call.
type rpcClient struct {
	url     string
	http    *resty.Client
	limiter ratelimit.Limiter
	metrics RPCMetrics
	nextID  atomic.Uint64
}

func newRPCClient(url string, timeout time.Duration, rps int, metrics RPCMetrics) *rpcClient {
	limiter := ratelimit.NewUnlimited()
	if rps > 0 {
		limiter = ratelimit.New(rps)
	}
	return &rpcClient{
		url: url,
		http: resty.New().
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
		limiter: limiter,
		metrics: metrics,
	}
}

func (c *rpcClient) call(ctx context.Context, method string, result any, params ...any) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe(method, err, started)
	}()

	if params == nil {
		params = []any{}
	}
	c.limiter.Take()

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(rpcRequest{ID: c.nextID.Add(1), JSONRPC: "2.0", Method: method, Params: params}).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}
	if res.IsError() {
		return fmt.Errorf("call %s: http status %s", method, res.Status())
	}

	var resp rpcResponse
	if err := json.Unmarshal(res.Body(), &resp); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if resp.Error != nil {
		return fmt.Errorf("call %s: %w", method, resp.Error)
	}
	if len(resp.Result) == 0 || bytes.Equal(resp.Result, nullResult) {
		return fmt.Errorf("call %s: %w", method, ErrNotFound)
	}
	if err := json.Unmarshal(resp.Result, result); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}
