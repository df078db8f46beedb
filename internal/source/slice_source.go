package source

import (
	"context"
	"math/big"
	"slices"

	"github.com/credora/indexer/pkg/events"
	"github.com/credora/indexer/pkg/source"
	"github.com/ethereum/go-ethereum/common"
)

var _ source.EventSource = (*SliceSource)(nil)

// SliceSource replays a fixed list of events. It is used for replays and tests.
type SliceSource struct {
	events    []events.Event
	head      uint64
	chunkSize uint64
}

// NewSliceSource creates a source over evs that reports blocks up to head and then ErrExhausted.
func NewSliceSource(evs []events.Event, head, chunkSize uint64) *SliceSource {
	sorted := slices.Clone(evs)
	slices.SortStableFunc(sorted, func(a, b events.Event) int {
		return a.Position().Compare(b.Position())
	})

	return &SliceSource{
		events:    sorted,
		head:      head,
		chunkSize: max(chunkSize, 1),
	}
}

// Next returns the events of the chunk starting at fromBlock.
func (s *SliceSource) Next(ctx context.Context, fromBlock uint64) (*source.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fromBlock > s.head {
		return nil, source.ErrExhausted
	}

	toBlock := min(fromBlock+s.chunkSize-1, s.head)

	batch := &source.Batch{
		FromBlock:   fromBlock,
		ToBlock:     toBlock,
		ToBlockHash: common.BigToHash(new(big.Int).SetUint64(toBlock)),
	}
	for _, ev := range s.events {
		if ev.BlockNumber >= fromBlock && ev.BlockNumber <= toBlock {
			batch.Events = append(batch.Events, ev)
		}
	}

	return batch, nil
}

// Mode always reports backfill.
func (s *SliceSource) Mode() source.Mode {
	return source.ModeBackfill
}
