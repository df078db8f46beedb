// Package source implements the event sources consumed by the engine.
package source

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"time"

	"github.com/credora/indexer/internal/logger"
	"github.com/credora/indexer/pkg/events"
	"github.com/credora/indexer/pkg/rpc"
	"github.com/credora/indexer/pkg/source"
	"github.com/ethereum/go-ethereum"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Compile-time check to ensure LogSource implements source.EventSource interface.
var _ source.EventSource = (*LogSource)(nil)

// Decoder turns raw logs into typed events.
type Decoder interface {
	Addresses() []ethcommon.Address
	Topics() [][]ethcommon.Hash
	Decode(log types.Log, timestamp uint64) (events.Event, error)
}

// Config contains configuration for the LogSource.
type Config struct {
	// ChunkSize is the number of blocks to fetch per request
	ChunkSize uint64

	// Finality specifies the finality mode
	Finality source.Finality

	// FinalizedLag is blocks behind head to consider final (only for "latest" mode)
	FinalizedLag uint64

	// PollInterval is how long to wait for a new final block once caught up
	PollInterval time.Duration
}

// LogSource fetches Credora logs over JSON-RPC and decodes them into events.
type LogSource struct {
	cfg     Config
	rpc     rpc.EthClient
	decoder Decoder
	log     *logger.Logger
	mode    source.Mode
}

// NewLogSource creates a new LogSource instance.
func NewLogSource(cfg Config, log *logger.Logger, rpcClient rpc.EthClient, decoder Decoder) *LogSource {
	return &LogSource{
		cfg:     cfg,
		rpc:     rpcClient,
		decoder: decoder,
		log:     log,
		mode:    source.ModeBackfill,
	}
}

// Mode returns the current operating mode.
func (ls *LogSource) Mode() source.Mode {
	return ls.mode
}

func (ls *LogSource) setMode(mode source.Mode) {
	if ls.mode == mode {
		return
	}
	ls.log.Infof("switching fetch mode from %v to %v", ls.mode, mode)
	ls.mode = mode
}

// Next returns the events of the next chunk starting at fromBlock.
// When fromBlock is not final yet it polls until it is, or until ctx is done.
func (ls *LogSource) Next(ctx context.Context, fromBlock uint64) (*source.Batch, error) {
	head, err := ls.waitForFinal(ctx, fromBlock)
	if err != nil {
		return nil, err
	}

	toBlock := min(fromBlock+ls.cfg.ChunkSize-1, head)
	if toBlock == head {
		ls.setMode(source.ModeLive)
	} else {
		ls.setMode(source.ModeBackfill)
	}

	return ls.FetchRange(ctx, fromBlock, toBlock)
}

// waitForFinal blocks until fromBlock is at or below the finality head and returns the head.
func (ls *LogSource) waitForFinal(ctx context.Context, fromBlock uint64) (uint64, error) {
	for {
		head, ok, err := ls.finalizedHead(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to get finalized block: %w", err)
		}
		if ok {
			FinalizedBlockSet(head)
			if fromBlock <= head {
				return head, nil
			}
		}

		ls.log.Debugf("waiting for new blocks, next block: %d, finalized: %d", fromBlock, head)

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(ls.cfg.PollInterval):
		}
	}
}

// FetchRange fetches and decodes the logs of [fromBlock, toBlock].
// The returned batch may end before toBlock when the node limits the result size.
func (ls *LogSource) FetchRange(ctx context.Context, fromBlock, toBlock uint64) (*source.Batch, error) {
	logs, toBlock, err := ls.fetchLogsWithSplit(ctx, fromBlock, toBlock)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch logs: %w", err)
	}
	LogsFetchedInc(len(logs))

	blockNums := []uint64{toBlock}
	for _, l := range logs {
		blockNums = append(blockNums, l.BlockNumber)
	}
	slices.Sort(blockNums)
	blockNums = slices.Compact(blockNums)

	headers, err := ls.rpc.BatchGetBlockHeaders(ctx, blockNums)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch block headers: %w", err)
	}
	timestamps := make(map[uint64]uint64, len(headers))
	for _, h := range headers {
		timestamps[h.Number.Uint64()] = h.Time
	}

	evs := make([]events.Event, 0, len(logs))
	for _, l := range logs {
		if l.Removed {
			ls.log.Warnf("dropping removed log at block %d index %d tx %s", l.BlockNumber, l.Index, l.TxHash.Hex())
			LogsDroppedInc("removed")
			continue
		}

		ts, ok := timestamps[l.BlockNumber]
		if !ok {
			return nil, fmt.Errorf("missing header for block %d", l.BlockNumber)
		}

		ev, err := ls.decoder.Decode(l, ts)
		if err != nil {
			ls.log.Warnf("dropping undecodable log at block %d index %d tx %s: %v",
				l.BlockNumber, l.Index, l.TxHash.Hex(), err)
			LogsDroppedInc("undecodable")
			continue
		}
		evs = append(evs, ev)
	}

	slices.SortStableFunc(evs, func(a, b events.Event) int {
		return a.Position().Compare(b.Position())
	})

	ls.log.Infof("fetched range from %d to %d with %d events", fromBlock, toBlock, len(evs))

	return &source.Batch{
		FromBlock:   fromBlock,
		ToBlock:     toBlock,
		ToBlockHash: headers[len(headers)-1].Hash(),
		Events:      evs,
	}, nil
}

// finalizedHead returns the highest block considered final. It reports false when no block is final yet.
func (ls *LogSource) finalizedHead(ctx context.Context) (uint64, bool, error) {
	var (
		header *types.Header
		err    error
	)

	switch ls.cfg.Finality {
	case source.FinalityFinalized:
		header, err = ls.rpc.GetFinalizedBlockHeader(ctx)
	case source.FinalitySafe:
		header, err = ls.rpc.GetSafeBlockHeader(ctx)
	case source.FinalityLatest:
		header, err = ls.rpc.GetLatestBlockHeader(ctx)
		if err != nil {
			return 0, false, err
		}
		latest := header.Number.Uint64()
		if latest < ls.cfg.FinalizedLag {
			return 0, false, nil
		}
		return latest - ls.cfg.FinalizedLag, true, nil
	default:
		return 0, false, fmt.Errorf("invalid finality mode: %s", ls.cfg.Finality)
	}

	if err != nil {
		return 0, false, err
	}

	return header.Number.Uint64(), true, nil
}

// fetchLogsWithSplit fetches logs and retries with a smaller range if too many results are returned.
// It returns the logs and the last block they cover.
func (ls *LogSource) fetchLogsWithSplit(ctx context.Context, fromBlock, toBlock uint64) ([]types.Log, uint64, error) {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
		Addresses: ls.decoder.Addresses(),
		Topics:    ls.decoder.Topics(),
	}

	logs, err := ls.rpc.GetLogs(ctx, query)
	if err == nil {
		return logs, toBlock, nil
	}

	limit, ok := parseRangeLimit(err)
	if !ok {
		return nil, 0, err
	}
	RangeSplitInc()

	newTo, ok := ls.suggestedTo(limit, fromBlock, toBlock)
	if !ok {
		if fromBlock == toBlock {
			return nil, 0, errors.Join(err, fmt.Errorf("cannot split range further, single block %d has too many logs", fromBlock))
		}
		newTo = (fromBlock + toBlock) / 2
		ls.log.Infof("too many logs, retrying with smaller block range from %d to %d (original range %d to %d)",
			fromBlock, newTo, fromBlock, toBlock)
	}

	return ls.fetchLogsWithSplit(ctx, fromBlock, newTo)
}

// suggestedTo returns the end of the node's suggested range when it is a usable prefix of [fromBlock, toBlock].
func (ls *LogSource) suggestedTo(limit rangeLimit, fromBlock, toBlock uint64) (uint64, bool) {
	if !limit.suggested {
		return 0, false
	}
	if limit.from != fromBlock || limit.to >= toBlock {
		ls.log.Debugf("ignoring suggested block range from %d to %d for range %d to %d", limit.from, limit.to, fromBlock, toBlock)
		return 0, false
	}

	ls.log.Infof("too many logs, retrying with suggested block range from %d to %d (original range %d to %d)",
		limit.from, limit.to, fromBlock, toBlock)

	return limit.to, true
}
