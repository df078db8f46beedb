// Package engine drives events from a source through the aggregator into the entity store.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/credora/indexer/internal/aggregator"
	"github.com/credora/indexer/internal/db"
	"github.com/credora/indexer/internal/logger"
	"github.com/credora/indexer/internal/metrics"
	"github.com/credora/indexer/internal/retry"
	"github.com/credora/indexer/pkg/config"
	"github.com/credora/indexer/pkg/events"
	"github.com/credora/indexer/pkg/source"
	"github.com/credora/indexer/pkg/store"
)

// ErrStoreUnavailable is returned when an event could not be applied within the configured attempts.
var ErrStoreUnavailable = errors.New("entity store unavailable")

// Applier applies a single event inside a store transaction.
type Applier interface {
	Apply(tx store.Tx, ev events.Event) (warnings []error, err error)
}

// Config contains configuration for the Engine.
type Config struct {
	// StartBlock is the first block fetched on a fresh database
	StartBlock uint64

	// ChainID is checked against the database on startup (0 = skip the check)
	ChainID uint64

	// Retry bounds the attempts per event
	Retry config.RetryConfig

	// DBPath is used to report the database size after every batch (empty = skip)
	DBPath string
}

// Engine is the single writer of the entity store.
type Engine struct {
	cfg     Config
	source  source.EventSource
	store   store.Store
	applier Applier
	log     *logger.Logger
}

// New creates a new Engine instance.
func New(cfg Config, src source.EventSource, st store.Store, applier Applier, log *logger.Logger) (*Engine, error) {
	if src == nil {
		return nil, errors.New("event source is required")
	}
	if st == nil {
		return nil, errors.New("store is required")
	}
	if applier == nil {
		return nil, errors.New("applier is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}

	return &Engine{
		cfg:     cfg,
		source:  src,
		store:   st,
		applier: applier,
		log:     log,
	}, nil
}

// Run applies events until ctx is cancelled, the source is exhausted or an event cannot be applied.
// Cancellation is only observed between events, so it never interrupts a transaction.
func (e *Engine) Run(ctx context.Context) error {
	e.log.Info("starting engine")
	metrics.ComponentHealthSet("engine", true)

	if e.cfg.ChainID != 0 {
		if err := e.store.SetChainID(ctx, e.cfg.ChainID); err != nil {
			metrics.ComponentHealthSet("engine", false)
			return fmt.Errorf("failed to check chain id: %w", err)
		}
	}

	state, err := e.store.GetSyncState(ctx)
	if err != nil {
		metrics.ComponentHealthSet("engine", false)
		return fmt.Errorf("failed to get sync state: %w", err)
	}

	nextBlock := e.cfg.StartBlock
	if state.LastFetchedBlock != nil {
		nextBlock = *state.LastFetchedBlock + 1
		e.log.Infow("resuming from checkpoint", "last_fetched_block", *state.LastFetchedBlock)
	} else {
		e.log.Infow("starting fresh", "start_block", nextBlock)
	}
	if cursor, ok := state.Cursor(); ok {
		metrics.LastAppliedBlockSet(cursor.BlockNumber)
	}

	for {
		if ctx.Err() != nil {
			e.log.Info("engine stopped")
			return nil
		}

		batchStart := time.Now()

		batch, err := e.source.Next(ctx, nextBlock)
		if err != nil {
			if errors.Is(err, source.ErrExhausted) {
				e.log.Infow("event source exhausted", "next_block", nextBlock)
				return nil
			}
			if ctx.Err() != nil {
				e.log.Info("engine stopped")
				return nil
			}
			metrics.ErrorsInc("engine", "error")
			metrics.ComponentHealthSet("engine", false)
			e.log.Errorw("failed to fetch events", "error", err, "from_block", nextBlock)
			return fmt.Errorf("failed to fetch events: %w", err)
		}

		for _, ev := range batch.Events {
			if ctx.Err() != nil {
				e.log.Info("engine stopped")
				return nil
			}

			if err := e.applyEvent(ctx, ev); err != nil {
				if ctx.Err() != nil {
					e.log.Info("engine stopped")
					return nil
				}
				metrics.ErrorsInc("engine", "fatal")
				metrics.ComponentHealthSet("engine", false)
				return err
			}
		}

		mode := e.source.Mode()
		if err := e.store.SaveCheckpoint(ctx, store.Checkpoint{
			Block: batch.ToBlock,
			Hash:  batch.ToBlockHash,
			Mode:  mode.String(),
		}); err != nil {
			if ctx.Err() != nil {
				e.log.Info("engine stopped")
				return nil
			}
			metrics.ComponentHealthSet("engine", false)
			return fmt.Errorf("failed to save checkpoint: %w", err)
		}
		nextBlock = batch.ToBlock + 1

		e.recordBatch(batch, time.Since(batchStart))

		e.log.Infow("checkpoint saved",
			"block", batch.ToBlock,
			"block_hash", batch.ToBlockHash.Hex(),
			"mode", mode,
			"events_processed", len(batch.Events),
		)
	}
}

// applyEvent applies ev in its own transaction, retrying the whole transaction on failure.
func (e *Engine) applyEvent(ctx context.Context, ev events.Event) error {
	kind := ev.Kind().String()
	start := time.Now()

	var (
		applied  bool
		warnings []error
	)

	onRetry := func(attempt int, err error) {
		metrics.ApplyRetryInc(kind)
		e.log.Warnw("retrying event", "event", ev.String(), "attempt", attempt, "error", err)
	}

	// The transaction itself is not bound to ctx so a shutdown never aborts it halfway.
	txCtx := context.WithoutCancel(ctx)

	err := retry.Do(ctx, &e.cfg.Retry, retry.Always, onRetry, func() error {
		var err error
		applied, err = e.store.Apply(txCtx, ev.Position(), func(tx store.Tx) error {
			var applyErr error
			warnings, applyErr = e.applier.Apply(tx, ev)
			return applyErr
		})
		return err
	})
	if err != nil {
		e.log.Errorw("giving up on event", "event", ev.String(), "error", err)
		return fmt.Errorf("%w: event %s: %w", ErrStoreUnavailable, ev, err)
	}

	if !applied {
		metrics.EventSkippedInc()
		e.log.Debugw("skipping already applied event", "event", ev.String())
		return nil
	}

	for _, w := range warnings {
		metrics.HandlerWarningInc(kind, aggregator.Reason(w))
		e.log.Warnw("event applied with warning", "event", ev.String(), "warning", w)
	}

	metrics.EventAppliedInc(kind)
	metrics.EventApplyDuration(kind, time.Since(start))
	metrics.LastAppliedBlockSet(ev.BlockNumber)

	return nil
}

func (e *Engine) recordBatch(batch *source.Batch, elapsed time.Duration) {
	blocks := batch.ToBlock - batch.FromBlock + 1

	metrics.LastFetchedBlockSet(batch.ToBlock)
	metrics.BlocksProcessedInc(blocks)
	metrics.BatchProcessingTimeLog(elapsed)
	if elapsed > 0 {
		metrics.IndexingRateLog(float64(blocks) / elapsed.Seconds())
	}

	if e.cfg.DBPath != "" {
		if err := db.DBSizeLog(e.cfg.DBPath); err != nil {
			e.log.Warnw("failed to record database size", "error", err)
		}
	}
}
