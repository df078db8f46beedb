package rpc

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/credora/indexer/internal/retry"
	"github.com/credora/indexer/pkg/config"
	"github.com/ethereum/go-ethereum/rpc"
)

// retryableError checks if an error should trigger a retry.
func retryableError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, marker := range []string{
		// timeouts
		"timeout", "deadline exceeded",
		// rate limiting
		"429", "too many requests", "rate limit",
		// temporary server errors
		"502", "503", "504", "bad gateway", "service unavailable", "gateway timeout",
		// connection pool exhausted
		"connection pool", "no available connection",
	} {
		if strings.Contains(errStr, marker) {
			return true
		}
	}

	return false
}

// errorType buckets an RPC error for the errors metric. Errors the node answered with a
// JSON-RPC error object, such as a rejected eth_getLogs range, are "node_rejected".
func errorType(err error) string {
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	if retryableError(err) {
		return "transient"
	}

	var nodeErr rpc.Error
	if errors.As(err, &nodeErr) {
		return "node_rejected"
	}

	return "other"
}

// retryWithBackoff executes fn with exponential backoff on retryable errors.
// It respects context cancellation and deadlines.
func retryWithBackoff(ctx context.Context, cfg *config.RetryConfig, operation string, fn func() error) error {
	return retry.Do(ctx, cfg, retryableError, func(int, error) {
		RPCRetryInc(operation)
	}, fn)
}
