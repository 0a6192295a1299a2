package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/SwapIndexor/internal/common"
	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
	"github.com/goran-ethernal/SwapIndexor/pkg/config"
)

// transientMarkers are lowercase fragments of transport errors worth retrying: timeouts,
// rate limiting, gateway failures and exhausted connection pools.
var transientMarkers = []string{
	"timeout",
	"deadline exceeded",
	"429",
	"too many requests",
	"rate limit",
	"502",
	"503",
	"504",
	"bad gateway",
	"service unavailable",
	"connection pool",
	"no available connection",
}

// retryableError reports whether a failed call may succeed when repeated. Answers from the
// node are final, except while it is still loading its block index.
func retryableError(err error) bool {
	if err == nil || errors.Is(err, chain.ErrHeightOutOfRange) || errors.Is(err, chain.ErrNotFound) {
		return false
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.ErrorCode() == codeInWarmup
	}

	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// calculateBackoff returns the wait before attempt. The first attempt never waits.
func calculateBackoff(attempt int, cfg *config.RetryConfig) time.Duration {
	return common.Backoff(attempt-1, cfg.InitialBackoff.Duration, cfg.MaxBackoff.Duration, cfg.BackoffMultiplier)
}

// retryWithBackoff calls fn until it succeeds, fails with a final error or runs out of
// attempts. A nil cfg means a single attempt.
func retryWithBackoff(ctx context.Context, cfg *config.RetryConfig, method string, fn func() error) error {
	if cfg == nil {
		return fn()
	}

	start := time.Now()
	var err error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if wait := calculateBackoff(attempt, cfg); wait > 0 {
			RPCRetryInc(method)
			select {
			case <-ctx.Done():
				return fmt.Errorf("%s: cancelled before attempt %d/%d: %w", method, attempt, cfg.MaxAttempts, ctx.Err())
			case <-time.After(wait):
			}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: cancelled before attempt %d/%d: %w", method, attempt, cfg.MaxAttempts, ctxErr)
		}

		if err = fn(); err == nil {
			return nil
		}
		if !retryableError(err) {
			return err
		}
	}

	return fmt.Errorf("%s: giving up after %d attempts in %v: %w", method, cfg.MaxAttempts, time.Since(start), err)
}
