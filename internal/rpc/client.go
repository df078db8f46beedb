package rpc

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/credora/indexer/internal/logger"
	"github.com/credora/indexer/pkg/config"
	pkgrpc "github.com/credora/indexer/pkg/rpc"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/time/rate"
)

// Compile-time check to ensure Client implements pkgrpc.EthClient interface.
var _ pkgrpc.EthClient = (*Client)(nil)

const maxHeaderBatch = 100

// Client wraps the Ethereum RPC client. Every call is throttled by the configured
// rate limit, retried on transient failures and recorded in metrics.
type Client struct {
	eth     *ethclient.Client
	rpc     *rpc.Client
	limiter *rate.Limiter
	retry   *config.RetryConfig
	log     *logger.Logger
}

// NewClient creates a new RPC client connected to the endpoint in cfg.
func NewClient(ctx context.Context, cfg config.SourceConfig, log *logger.Logger) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", cfg.RPCURL, err)
	}

	return newClient(rpcClient, cfg, log), nil
}

func newClient(rpcClient *rpc.Client, cfg config.SourceConfig, log *logger.Logger) *Client {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(cfg.Burst, 1))
	}

	return &Client{
		eth:     ethclient.NewClient(rpcClient),
		rpc:     rpcClient,
		limiter: limiter,
		retry:   cfg.Retry,
		log:     log,
	}
}

// Close closes the RPC client connection.
func (c *Client) Close() {
	c.eth.Close()
}

// ChainID returns the chain id of the connected node.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	var id *big.Int
	err := c.call(ctx, "eth_chainId", func() (err error) {
		id, err = c.eth.ChainID(ctx)
		return err
	})

	return id, err
}

// GetLogs retrieves logs matching the given filter query.
// "Too many results" errors are returned as is so the caller can split the range.
func (c *Client) GetLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	var logs []types.Log
	err := c.call(ctx, "eth_getLogs", func() (err error) {
		logs, err = c.eth.FilterLogs(ctx, query)
		return err
	})

	return logs, err
}

// GetBlockHeader retrieves the header for a specific block number.
func (c *Client) GetBlockHeader(ctx context.Context, blockNum uint64) (*types.Header, error) {
	return c.headerByNumber(ctx, new(big.Int).SetUint64(blockNum))
}

// GetLatestBlockHeader retrieves the latest block header.
func (c *Client) GetLatestBlockHeader(ctx context.Context) (*types.Header, error) {
	return c.headerByNumber(ctx, nil)
}

// GetFinalizedBlockHeader retrieves the finalized block header.
func (c *Client) GetFinalizedBlockHeader(ctx context.Context) (*types.Header, error) {
	return c.headerByNumber(ctx, big.NewInt(int64(rpc.FinalizedBlockNumber)))
}

// GetSafeBlockHeader retrieves the safe block header.
func (c *Client) GetSafeBlockHeader(ctx context.Context) (*types.Header, error) {
	return c.headerByNumber(ctx, big.NewInt(int64(rpc.SafeBlockNumber)))
}

func (c *Client) headerByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	var header *types.Header
	err := c.call(ctx, "eth_getBlockByNumber", func() (err error) {
		header, err = c.eth.HeaderByNumber(ctx, number)
		return err
	})

	return header, err
}

// BatchGetBlockHeaders retrieves headers for multiple block numbers in batch calls of at most 100 blocks.
func (c *Client) BatchGetBlockHeaders(ctx context.Context, blockNums []uint64) ([]*types.Header, error) {
	headers := make([]*types.Header, 0, len(blockNums))

	for i := 0; i < len(blockNums); i += maxHeaderBatch {
		chunk := blockNums[i:min(i+maxHeaderBatch, len(blockNums))]

		batch := make([]rpc.BatchElem, len(chunk))
		results := make([]*types.Header, len(chunk))
		for j, blockNum := range chunk {
			batch[j] = rpc.BatchElem{
				Method: "eth_getBlockByNumber",
				Args:   []any{toBlockNumArg(blockNum), false},
				Result: &results[j],
			}
		}

		err := c.call(ctx, "batch_eth_getBlockByNumber", func() error {
			if err := c.rpc.BatchCallContext(ctx, batch); err != nil {
				return err
			}
			for _, elem := range batch {
				if elem.Error != nil {
					return elem.Error
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		for j, header := range results {
			if header == nil {
				return nil, fmt.Errorf("block %d not found", chunk[j])
			}
		}

		headers = append(headers, results...)
	}

	return headers, nil
}

// call runs fn under the rate limiter with retries and records metrics for method.
func (c *Client) call(ctx context.Context, method string, fn func() error) error {
	return retryWithBackoff(ctx, c.retry, method, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		RPCMethodInc(method)
		start := time.Now()
		err := fn()
		RPCMethodDuration(method, time.Since(start))

		if err != nil {
			RPCMethodError(method, errorType(err))
			c.log.Debugf("%s failed: %v", method, err)
		}

		return err
	})
}

// toBlockNumArg converts a block number to hex format.
func toBlockNumArg(blockNum uint64) string {
	return fmt.Sprintf("0x%x", blockNum)
}
