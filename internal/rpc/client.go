package rpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/SwapIndexor/internal/common"
	"github.com/goran-ethernal/SwapIndexor/internal/logger"
	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
	"github.com/goran-ethernal/SwapIndexor/pkg/config"
)

// Compile-time check to ensure Client implements chain.Source.
var _ chain.Source = (*Client)(nil)

const maxBatch = 100

// Client talks to a node's JSON-RPC interface. It implements chain.Source.
type Client struct {
	rpc   *rpc.Client
	retry *config.RetryConfig
	log   *logger.Logger
}

// NewClient creates a new RPC client connected to the given endpoint. Credentials embedded in
// the URL are sent as HTTP basic auth.
func NewClient(ctx context.Context, endpoint string, retry *config.RetryConfig, log *logger.Logger) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid rpc url: %w", err)
	}

	var opts []rpc.ClientOption
	if u.User != nil {
		user := u.User.Username()
		pass, _ := u.User.Password()
		token := base64.StdEncoding.EncodeToString([]byte(user + ":" + pass))
		opts = append(opts, rpc.WithHTTPAuth(func(h http.Header) error {
			h.Set("Authorization", "Basic "+token)
			return nil
		}))
		u.User = nil
	}

	rpcClient, err := rpc.DialOptions(ctx, u.String(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", u.Redacted(), err)
	}

	return &Client{
		rpc:   rpcClient,
		retry: retry,
		log:   log,
	}, nil
}

// Close closes the RPC client connection.
func (c *Client) Close() {
	c.rpc.Close()
}

// call performs one JSON-RPC call with retries, metrics and error classification.
func (c *Client) call(ctx context.Context, result any, method string, args ...any) error {
	start := time.Now()
	err := retryWithBackoff(ctx, c.retry, method, func() error {
		return classifyError(c.rpc.CallContext(ctx, result, method, args...))
	})
	observeCall(method, start, err)
	return err
}

// batch performs a batch call with retries. The first element error is returned.
func (c *Client) batch(ctx context.Context, method string, elems []rpc.BatchElem) error {
	start := time.Now()
	err := retryWithBackoff(ctx, c.retry, method, func() error {
		if err := c.rpc.BatchCallContext(ctx, elems); err != nil {
			return err
		}
		for _, elem := range elems {
			if elem.Error != nil {
				return classifyError(elem.Error)
			}
		}
		return nil
	})
	observeCall(method, start, err)
	return err
}

// GetChainHeight returns the height of the node's best chain.
func (c *Client) GetChainHeight(ctx context.Context) (uint64, error) {
	var height json.Number
	if err := c.call(ctx, &height, "getblockcount"); err != nil {
		return 0, fmt.Errorf("getblockcount: %w", err)
	}
	return common.ParseHeight(height)
}

// GetBlockHash returns the hash of the canonical block at height.
func (c *Client) GetBlockHash(ctx context.Context, height uint64) (string, error) {
	var hash string
	if err := c.call(ctx, &hash, "getblockhash", height); err != nil {
		return "", fmt.Errorf("getblockhash %d: %w", height, err)
	}
	return hash, nil
}

// GetBlock returns the block with the given hash including transactions and outputs.
func (c *Client) GetBlock(ctx context.Context, hash string) (*chain.Block, error) {
	var raw rawBlock
	if err := c.call(ctx, &raw, "getblock", hash, 2); err != nil {
		return nil, fmt.Errorf("getblock %s: %w", hash, err)
	}
	return raw.toBlock()
}

// GetBlockByHeight returns the canonical block at height. Heights beyond the tip return
// chain.ErrHeightOutOfRange.
func (c *Client) GetBlockByHeight(ctx context.Context, height uint64) (*chain.Block, error) {
	hash, err := c.GetBlockHash(ctx, height)
	if err != nil {
		return nil, err
	}
	return c.GetBlock(ctx, hash)
}

// ListBlocks returns block headers from fromHeight upward, batching hash and header lookups.
func (c *Client) ListBlocks(ctx context.Context, fromHeight uint64, limit int) ([]*chain.Block, error) {
	tip, err := c.GetChainHeight(ctx)
	if err != nil {
		return nil, err
	}
	if fromHeight > tip || limit <= 0 {
		return nil, nil
	}
	count := min(uint64(limit), tip-fromHeight+1)

	blocks := make([]*chain.Block, 0, count)
	for offset := uint64(0); offset < count; offset += maxBatch {
		n := min(maxBatch, count-offset)

		hashes := make([]string, n)
		elems := make([]rpc.BatchElem, n)
		for i := range elems {
			elems[i] = rpc.BatchElem{
				Method: "getblockhash",
				Args:   []any{fromHeight + offset + uint64(i)},
				Result: &hashes[i],
			}
		}
		if err := c.batch(ctx, "getblockhash", elems); err != nil {
			// The tip moved backwards between calls; return what is canonical so far.
			if errors.Is(err, chain.ErrHeightOutOfRange) {
				break
			}
			return nil, fmt.Errorf("getblockhash batch from %d: %w", fromHeight+offset, err)
		}

		headers := make([]rawBlock, n)
		for i := range elems {
			elems[i] = rpc.BatchElem{
				Method: "getblock",
				Args:   []any{hashes[i], 1},
				Result: &headers[i],
			}
		}
		if err := c.batch(ctx, "getblock", elems); err != nil {
			return nil, fmt.Errorf("getblock batch from %d: %w", fromHeight+offset, err)
		}

		for _, h := range headers {
			h.Tx = nil
			b, err := h.toBlock()
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, b)
		}
	}

	return blocks, nil
}

// GetTransactions returns up to limit transactions of a block starting at offset.
func (c *Client) GetTransactions(ctx context.Context, blockHash string, offset, limit int) ([]chain.Transaction, error) {
	b, err := c.GetBlock(ctx, blockHash)
	if err != nil {
		return nil, err
	}
	if offset >= len(b.Transactions) {
		return nil, nil
	}
	end := min(offset+limit, len(b.Transactions))
	return b.Transactions[offset:end], nil
}

// GetVout returns output n of transaction txid.
func (c *Client) GetVout(ctx context.Context, txid string, n int) (*chain.Vout, error) {
	var raw rawTx
	if err := c.call(ctx, &raw, "getrawtransaction", txid, true); err != nil {
		return nil, fmt.Errorf("getrawtransaction %s: %w", txid, err)
	}

	tx := raw.toTransaction(0)
	for i := range tx.Vouts {
		if tx.Vouts[i].N == n {
			return &tx.Vouts[i], nil
		}
	}
	return nil, fmt.Errorf("vout %d of %s: %w", n, txid, chain.ErrNotFound)
}

// GetAccountHistory returns the balance changes the transaction at (height, txn) caused for
// owner. A missing entry yields an empty history.
func (c *Client) GetAccountHistory(ctx context.Context, owner string, height uint64, txn int) (*chain.AccountHistory, error) {
	var raw rawAccountHistory
	err := c.call(ctx, &raw, "getaccounthistory", owner, height, txn)
	if errors.Is(err, chain.ErrNotFound) {
		return &chain.AccountHistory{Owner: owner, BlockHeight: height, TxN: txn}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getaccounthistory %s %d %d: %w", owner, height, txn, err)
	}
	return raw.toAccountHistory()
}
