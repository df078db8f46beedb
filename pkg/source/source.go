// Package source defines the ordered, finality-gated event stream consumed by the engine.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/credora/indexer/pkg/events"
	"github.com/ethereum/go-ethereum/common"
)

// ErrExhausted is returned by finite sources once every block has been delivered.
var ErrExhausted = errors.New("event source exhausted")

// Mode represents the operating mode of an event source.
type Mode string

const (
	// ModeBackfill fetches historical blocks in chunks
	ModeBackfill Mode = "backfill"
	// ModeLive tails new blocks as they become final
	ModeLive Mode = "live"
)

func (m Mode) String() string {
	return string(m)
}

// Finality selects which block is treated as final.
type Finality string

const (
	// FinalityFinalized uses the finalized block tag
	FinalityFinalized Finality = "finalized"
	// FinalitySafe uses the safe block tag
	FinalitySafe Finality = "safe"
	// FinalityLatest uses the latest block minus a configured lag
	FinalityLatest Finality = "latest"
)

func (f Finality) String() string {
	return string(f)
}

// ParseFinality parses a finality mode.
func ParseFinality(s string) (Finality, error) {
	switch f := Finality(s); f {
	case FinalityFinalized, FinalitySafe, FinalityLatest:
		return f, nil
	default:
		return "", fmt.Errorf("invalid block finality: %s (must be one of: finalized, safe, latest)", s)
	}
}

// Batch is a contiguous, fully fetched block range and the events it contains.
type Batch struct {
	FromBlock   uint64
	ToBlock     uint64
	ToBlockHash common.Hash
	// Events are sorted by (block number, log index).
	Events []events.Event
}

// EventSource delivers decoded events in chain order.
type EventSource interface {
	// Next returns the batch starting at fromBlock. It blocks until fromBlock is final.
	Next(ctx context.Context, fromBlock uint64) (*Batch, error)

	// Mode returns the current operating mode.
	Mode() Mode
}
