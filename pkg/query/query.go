// Package query defines the read-only projections served to the frontend and SDK.
package query

import (
	"context"

	"github.com/credora/indexer/pkg/store"
	"github.com/ethereum/go-ethereum/common"
)

// Reader serves point lookups and listings over the derived entities.
// Lookups return nil, nil when the entity does not exist.
// Results reflect the last fully applied event.
type Reader interface {
	GetUser(ctx context.Context, address common.Address) (*store.User, error)
	GetCreditScore(ctx context.Context, tokenID string) (*store.CreditScore, error)
	// GetScoreUpdates returns the owner's score history, newest first.
	GetScoreUpdates(ctx context.Context, owner common.Address, limit int) ([]*store.ScoreUpdate, error)
	GetPermission(ctx context.Context, owner, protocol common.Address) (*store.Permission, error)
	GetActivePermissions(ctx context.Context, owner common.Address) ([]*store.Permission, error)
	GetProtocolStats(ctx context.Context, protocol common.Address) (*store.ProtocolStats, error)
	GetOracle(ctx context.Context, address common.Address) (*store.Oracle, error)
	GetScoreRequest(ctx context.Context, requestID string) (*store.ScoreRequest, error)
	GetDailyStats(ctx context.Context, day int64) (*store.DailyStats, error)
	// ListDailyStats returns the buckets in [fromDay, toDay], oldest first.
	ListDailyStats(ctx context.Context, fromDay, toDay int64) ([]*store.DailyStats, error)
	GetSyncState(ctx context.Context) (*store.SyncState, error)
}
