package rpc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
)

// Node JSON-RPC error codes.
const (
	codeInvalidAddressOrKey = -5
	codeInvalidParameter    = -8
	codeInWarmup            = -28
)

// classifyError maps node errors onto the chain package sentinels so callers can test them
// with errors.Is. Other errors are returned unchanged.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var rpcErr rpc.Error
	if !errors.As(err, &rpcErr) {
		return err
	}

	msg := strings.ToLower(rpcErr.Error())
	switch {
	case rpcErr.ErrorCode() == codeInvalidParameter && strings.Contains(msg, "out of range"):
		return fmt.Errorf("%w: %w", chain.ErrHeightOutOfRange, err)
	case rpcErr.ErrorCode() == codeInvalidAddressOrKey,
		strings.Contains(msg, "not found"),
		strings.Contains(msg, "cannot find"):
		return fmt.Errorf("%w: %w", chain.ErrNotFound, err)
	default:
		return err
	}
}

// errorType labels an error for the rpc error metric.
func errorType(err error) string {
	switch {
	case errors.Is(err, chain.ErrHeightOutOfRange):
		return "height_out_of_range"
	case errors.Is(err, chain.ErrNotFound):
		return "not_found"
	case retryableError(err):
		return "transient"
	default:
		return "other"
	}
}
