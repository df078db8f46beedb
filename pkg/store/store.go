// Package store defines the entity store used by the aggregation handlers.
package store

import (
	"context"

	"github.com/credora/indexer/pkg/events"
	"github.com/ethereum/go-ethereum/common"
)

// Tx gives the aggregation handlers read-your-writes access to entities within one event.
// Get methods return nil when the entity does not exist.
// GetOrCreate methods return a zero-valued, unsaved entity and created=true when it does not exist.
type Tx interface {
	GetOrCreateUser(address common.Address) (*User, bool, error)
	SaveUser(u *User) error

	GetCreditScore(tokenID string) (*CreditScore, error)
	SaveCreditScore(cs *CreditScore) error

	InsertScoreUpdate(su *ScoreUpdate) error

	GetPermission(key string) (*Permission, error)
	SavePermission(p *Permission) error

	InsertPermissionUsage(pu *PermissionUsage) error

	GetOrCreateProtocolStats(protocol common.Address) (*ProtocolStats, bool, error)
	SaveProtocolStats(ps *ProtocolStats) error

	GetOrCreateOracle(address common.Address) (*Oracle, bool, error)
	SaveOracle(o *Oracle) error

	GetScoreRequest(requestID string) (*ScoreRequest, error)
	SaveScoreRequest(r *ScoreRequest) error
	// PendingScoreRequests returns the user's pending requests made at or before ts, oldest first.
	PendingScoreRequests(user common.Address, ts uint64) ([]*ScoreRequest, error)

	GetOrCreateDailyStats(day int64) (*DailyStats, bool, error)
	SaveDailyStats(ds *DailyStats) error
}

// Checkpoint records how far the event source has delivered.
type Checkpoint struct {
	Block uint64
	Hash  common.Hash
	Mode  string
}

// Store persists entities and the engine's progress.
type Store interface {
	// Apply runs fn in a single transaction and advances the applied cursor to pos.
	// Events at or before the cursor are not applied again and Apply reports false.
	// Any error rolls back every write made by fn.
	Apply(ctx context.Context, pos events.Position, fn func(tx Tx) error) (bool, error)

	// SaveCheckpoint stores the last block fully fetched from the source.
	SaveCheckpoint(ctx context.Context, cp Checkpoint) error

	// SetChainID records the chain the store was built from.
	SetChainID(ctx context.Context, chainID uint64) error

	// GetSyncState returns the engine bookkeeping.
	GetSyncState(ctx context.Context) (*SyncState, error)

	Close() error
}
