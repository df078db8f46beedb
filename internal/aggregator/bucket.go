package aggregator

import (
	"fmt"

	"github.com/credora/indexer/pkg/events"
	"github.com/credora/indexer/pkg/store"
)

// Counter names one DailyStats counter.
type Counter int

const (
	CounterMint Counter = iota
	CounterUpdate
	CounterGrant
	CounterRevoke
	CounterUsage
)

func (c Counter) String() string {
	switch c {
	case CounterMint:
		return "mint"
	case CounterUpdate:
		return "update"
	case CounterGrant:
		return "grant"
	case CounterRevoke:
		return "revoke"
	case CounterUsage:
		return "usage"
	default:
		return fmt.Sprintf("counter(%d)", int(c))
	}
}

// DayIndex returns the day bucket containing ts.
func DayIndex(ts uint64) int64 {
	return int64(ts / events.SecondsPerDay)
}

// IncrementDay adds one to counter c of the bucket containing ts, creating the bucket if needed.
func IncrementDay(tx store.Tx, ts uint64, c Counter) error {
	day := DayIndex(ts)

	ds, created, err := tx.GetOrCreateDailyStats(day)
	if err != nil {
		return err
	}
	if created {
		ds.Date = day * events.SecondsPerDay
	}

	switch c {
	case CounterMint:
		ds.MintCount++
	case CounterUpdate:
		ds.UpdateCount++
	case CounterGrant:
		ds.PermissionGrantCount++
	case CounterRevoke:
		ds.PermissionRevokeCount++
	case CounterUsage:
		ds.AccessUsageCount++
	default:
		return fmt.Errorf("unknown daily counter %s", c)
	}

	return tx.SaveDailyStats(ds)
}
