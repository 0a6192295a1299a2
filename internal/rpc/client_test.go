package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goran-ethernal/SwapIndexor/internal/common"
	"github.com/goran-ethernal/SwapIndexor/internal/logger"
	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
	"github.com/goran-ethernal/SwapIndexor/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nodeRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type nodeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type nodeResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result"`
	Error   *nodeError      `json:"error,omitempty"`
}

// fakeNode answers node JSON-RPC calls from a handler table.
type fakeNode struct {
	t        *testing.T
	mu       sync.Mutex
	handlers map[string]func(params []json.RawMessage) (any, *nodeError)
	calls    map[string]int
	auth     string
	failures int
}

func newFakeNode(t *testing.T) (*fakeNode, *httptest.Server) {
	n := &fakeNode{
		t:        t,
		handlers: make(map[string]func([]json.RawMessage) (any, *nodeError)),
		calls:    make(map[string]int),
	}
	srv := httptest.NewServer(http.HandlerFunc(n.serve))
	t.Cleanup(srv.Close)
	return n, srv
}

func (n *fakeNode) handle(method string, fn func(params []json.RawMessage) (any, *nodeError)) {
	n.handlers[method] = fn
}

func (n *fakeNode) serve(w http.ResponseWriter, r *http.Request) {
	n.mu.Lock()
	n.auth = r.Header.Get("Authorization")
	if n.failures > 0 {
		n.failures--
		n.mu.Unlock()
		http.Error(w, "busy", http.StatusServiceUnavailable)
		return
	}
	n.mu.Unlock()

	body, err := io.ReadAll(r.Body)
	require.NoError(n.t, err)

	w.Header().Set("Content-Type", "application/json")
	if strings.HasPrefix(strings.TrimSpace(string(body)), "[") {
		var reqs []nodeRequest
		require.NoError(n.t, json.Unmarshal(body, &reqs))
		resps := make([]nodeResponse, len(reqs))
		for i, req := range reqs {
			resps[i] = n.answer(req)
		}
		_ = json.NewEncoder(w).Encode(resps)
		return
	}

	var req nodeRequest
	require.NoError(n.t, json.Unmarshal(body, &req))
	_ = json.NewEncoder(w).Encode(n.answer(req))
}

func (n *fakeNode) answer(req nodeRequest) nodeResponse {
	n.mu.Lock()
	n.calls[req.Method]++
	n.mu.Unlock()

	resp := nodeResponse{JSONRPC: "2.0", ID: req.ID}
	fn, ok := n.handlers[req.Method]
	if !ok {
		resp.Error = &nodeError{Code: -32601, Message: "Method not found"}
		return resp
	}
	resp.Result, resp.Error = fn(req.Params)
	return resp
}

func (n *fakeNode) callCount(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[method]
}

func testRetryConfig() *config.RetryConfig {
	return &config.RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    common.NewDuration(time.Millisecond),
		MaxBackoff:        common.NewDuration(5 * time.Millisecond),
		BackoffMultiplier: 2,
	}
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(context.Background(), url, testRetryConfig(), logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func param[T any](t *testing.T, raw json.RawMessage) T {
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

// chainOf serves a linear chain of tip+1 blocks from a fake node.
func chainOf(t *testing.T, n *fakeNode, tip uint64) {
	hashOf := func(h uint64) string { return fmt.Sprintf("%064x", h+1) }

	n.handle("getblockcount", func([]json.RawMessage) (any, *nodeError) {
		return tip, nil
	})
	n.handle("getblockhash", func(p []json.RawMessage) (any, *nodeError) {
		h := param[uint64](t, p[0])
		if h > tip {
			return nil, &nodeError{Code: -8, Message: "Block height out of range"}
		}
		return hashOf(h), nil
	})
	n.handle("getblock", func(p []json.RawMessage) (any, *nodeError) {
		hash := param[string](t, p[0])
		verbosity := param[int](t, p[1])

		var h uint64
		if _, err := fmt.Sscanf(hash, "%x", &h); err != nil || h == 0 || h-1 > tip {
			return nil, &nodeError{Code: -5, Message: "Block not found"}
		}
		h--

		block := map[string]any{
			"hash":       hash,
			"height":     json.Number(fmt.Sprintf("%d", h)),
			"time":       1_700_000_000 + h,
			"mediantime": 1_699_999_000 + h,
			"nTx":        2,
		}
		if h > 0 {
			block["previousblockhash"] = hashOf(h - 1)
		}
		if verbosity == 1 {
			block["tx"] = []string{"a", "b"}
			return block, nil
		}
		block["tx"] = []map[string]any{
			{
				"txid":   fmt.Sprintf("coinbase-%d", h),
				"weight": 700,
				"vout": []map[string]any{
					{"value": json.Number("2.00000000"), "n": 0, "scriptPubKey": map[string]any{"hex": "51"}},
				},
			},
			{
				"txid":   fmt.Sprintf("swap-%d", h),
				"weight": 1100,
				"vout": []map[string]any{
					{"value": json.Number("0"), "n": 0, "scriptPubKey": map[string]any{"hex": "6a05"}},
					{"value": json.Number("0.1"), "n": 1, "scriptPubKey": map[string]any{"hex": "0014aa"}},
				},
			},
		}
		return block, nil
	})
}

func TestClient_GetBlockByHeight(t *testing.T) {
	node, srv := newFakeNode(t)
	chainOf(t, node, 20)
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	height, err := c.GetChainHeight(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), height)

	b, err := c.GetBlockByHeight(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), b.Height)
	assert.Equal(t, fmt.Sprintf("%064x", 7), b.PreviousHash)
	assert.Equal(t, "1699999007", b.Timestamp())
	require.Len(t, b.Transactions, 2)

	swap := b.Transactions[1]
	assert.Equal(t, "swap-7", swap.TxID)
	assert.Equal(t, 1, swap.Order)
	assert.Equal(t, 1100, swap.Weight)
	assert.Equal(t, 2, swap.VoutCount)
	assert.Equal(t, "6a05", swap.Vouts[0].ScriptHex)
	assert.Equal(t, "0.1", swap.Vouts[1].Value)
}

func TestClient_HeightOutOfRange(t *testing.T) {
	node, srv := newFakeNode(t)
	chainOf(t, node, 5)
	c := newTestClient(t, srv.URL)

	_, err := c.GetBlockByHeight(context.Background(), 6)
	require.ErrorIs(t, err, chain.ErrHeightOutOfRange)
	assert.Equal(t, 1, node.callCount("getblockhash"), "out of range is not retried")
}

func TestClient_BlockNotFound(t *testing.T) {
	node, srv := newFakeNode(t)
	chainOf(t, node, 5)
	c := newTestClient(t, srv.URL)

	_, err := c.GetBlock(context.Background(), "ff")
	require.ErrorIs(t, err, chain.ErrNotFound)
}

func TestClient_ListBlocks(t *testing.T) {
	node, srv := newFakeNode(t)
	chainOf(t, node, 250)
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	blocks, err := c.ListBlocks(ctx, 100, 200)
	require.NoError(t, err)
	require.Len(t, blocks, 151)
	for i, b := range blocks {
		assert.Equal(t, uint64(100+i), b.Height)
		assert.Equal(t, 2, b.TxCount)
		assert.Empty(t, b.Transactions)
	}

	blocks, err = c.ListBlocks(ctx, 251, 10)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestClient_GetTransactions(t *testing.T) {
	node, srv := newFakeNode(t)
	chainOf(t, node, 3)
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	hash, err := c.GetBlockHash(ctx, 2)
	require.NoError(t, err)

	txs, err := c.GetTransactions(ctx, hash, 1, 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "swap-2", txs[0].TxID)
	assert.Equal(t, 1, txs[0].Order)

	txs, err = c.GetTransactions(ctx, hash, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestClient_GetVout(t *testing.T) {
	node, srv := newFakeNode(t)
	node.handle("getrawtransaction", func(p []json.RawMessage) (any, *nodeError) {
		if param[string](t, p[0]) != "abc" {
			return nil, &nodeError{Code: -5, Message: "No such mempool or blockchain transaction"}
		}
		return map[string]any{
			"txid": "abc",
			"vout": []map[string]any{
				{"value": json.Number("0"), "n": 0, "scriptPubKey": map[string]any{"hex": "6a"}},
				{"value": json.Number("1.5"), "n": 1, "scriptPubKey": map[string]any{"hex": "51"}, "tokenId": 2},
			},
		}, nil
	})
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	vout, err := c.GetVout(ctx, "abc", 1)
	require.NoError(t, err)
	assert.Equal(t, "51", vout.ScriptHex)
	assert.Equal(t, 2, vout.TokenID)

	_, err = c.GetVout(ctx, "abc", 4)
	require.ErrorIs(t, err, chain.ErrNotFound)

	_, err = c.GetVout(ctx, "missing", 0)
	require.ErrorIs(t, err, chain.ErrNotFound)
}

func TestClient_GetAccountHistory(t *testing.T) {
	node, srv := newFakeNode(t)
	node.handle("getaccounthistory", func(p []json.RawMessage) (any, *nodeError) {
		owner := param[string](t, p[0])
		if owner != "8owner" {
			return nil, &nodeError{Code: -8, Message: "Cannot find existing AccountHistory"}
		}
		return map[string]any{
			"owner":       owner,
			"blockHeight": json.Number(fmt.Sprintf("%d", param[uint64](t, p[1]))),
			"txn":         param[int](t, p[2]),
			"type":        "PoolSwap",
			"amounts":     []string{"-1.00000000@DFI", "0.00100000@BTC"},
		}, nil
	})
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	h, err := c.GetAccountHistory(ctx, "8owner", 1200, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(1200), h.BlockHeight)
	assert.Equal(t, 3, h.TxN)
	assert.Equal(t, []string{"-1.00000000@DFI", "0.00100000@BTC"}, h.Amounts)

	h, err = c.GetAccountHistory(ctx, "8other", 1200, 3)
	require.NoError(t, err)
	assert.Empty(t, h.Amounts)
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	node, srv := newFakeNode(t)
	chainOf(t, node, 5)
	node.failures = 2
	c := newTestClient(t, srv.URL)

	height, err := c.GetChainHeight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(5), height)
}

func TestClient_BasicAuthFromURL(t *testing.T) {
	node, srv := newFakeNode(t)
	chainOf(t, node, 1)

	url := strings.Replace(srv.URL, "http://", "http://user:secret@", 1)
	c := newTestClient(t, url)

	_, err := c.GetChainHeight(context.Background())
	require.NoError(t, err)

	node.mu.Lock()
	defer node.mu.Unlock()
	assert.Equal(t, "Basic dXNlcjpzZWNyZXQ=", node.auth)
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{
			name:   "height out of range",
			err:    &testRPCError{code: -8, msg: "Block height out of range"},
			target: chain.ErrHeightOutOfRange,
		},
		{
			name:   "invalid address or key",
			err:    &testRPCError{code: -5, msg: "Block not found"},
			target: chain.ErrNotFound,
		},
		{
			name:   "missing account history",
			err:    &testRPCError{code: -8, msg: "Cannot find existing AccountHistory"},
			target: chain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyError(tt.err)
			require.ErrorIs(t, err, tt.target)
			require.ErrorIs(t, err, tt.err)
			assert.False(t, retryableError(err))
		})
	}

	plain := &testRPCError{code: -1, msg: "boom"}
	assert.Same(t, plain, classifyError(plain))
	assert.True(t, retryableError(&testRPCError{code: -28, msg: "Loading block index..."}))
}

type testRPCError struct {
	code int
	msg  string
}

func (e *testRPCError) Error() string  { return e.msg }
func (e *testRPCError) ErrorCode() int { return e.code }
