package store

import (
	"context"
	"fmt"

	"github.com/credora/indexer/pkg/store"
	"github.com/ethereum/go-ethereum/common"
	"github.com/russross/meddler"
)

func (s *SQLiteStore) GetUser(ctx context.Context, address common.Address) (*store.User, error) {
	var u store.User
	found, err := queryOne(s.db, &u, `SELECT * FROM users WHERE address = ?`, address.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &u, nil
}

func (s *SQLiteStore) GetCreditScore(ctx context.Context, tokenID string) (*store.CreditScore, error) {
	var cs store.CreditScore
	found, err := queryOne(s.db, &cs, `SELECT * FROM credit_scores WHERE token_id = ?`, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit score: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &cs, nil
}

// GetScoreUpdates returns at most limit score updates of owner, newest first.
// Updates within the same second keep their application order, reversed.
func (s *SQLiteStore) GetScoreUpdates(ctx context.Context, owner common.Address, limit int) ([]*store.ScoreUpdate, error) {
	const query = `
		SELECT * FROM score_updates
		WHERE owner = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`
	updates := []*store.ScoreUpdate{}
	if err := meddler.QueryAll(s.db, &updates, query, owner.Hex(), limit); err != nil {
		return nil, fmt.Errorf("failed to query score updates: %w", err)
	}

	return updates, nil
}

func (s *SQLiteStore) GetPermission(ctx context.Context, owner, protocol common.Address) (*store.Permission, error) {
	var p store.Permission
	found, err := queryOne(s.db, &p, `SELECT * FROM permissions WHERE permission_key = ?`,
		store.PermissionKey(owner, protocol))
	if err != nil {
		return nil, fmt.Errorf("failed to query permission: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &p, nil
}

// GetActivePermissions returns the owner's active permissions in grant order.
func (s *SQLiteStore) GetActivePermissions(ctx context.Context, owner common.Address) ([]*store.Permission, error) {
	const query = `
		SELECT * FROM permissions
		WHERE user = ? AND is_active = 1
		ORDER BY granted_at ASC, id ASC
	`
	permissions := []*store.Permission{}
	if err := meddler.QueryAll(s.db, &permissions, query, owner.Hex()); err != nil {
		return nil, fmt.Errorf("failed to query active permissions: %w", err)
	}

	return permissions, nil
}

func (s *SQLiteStore) GetProtocolStats(ctx context.Context, protocol common.Address) (*store.ProtocolStats, error) {
	var ps store.ProtocolStats
	found, err := queryOne(s.db, &ps, `SELECT * FROM protocol_stats WHERE protocol = ?`, protocol.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to query protocol stats: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &ps, nil
}

func (s *SQLiteStore) GetOracle(ctx context.Context, address common.Address) (*store.Oracle, error) {
	var o store.Oracle
	found, err := queryOne(s.db, &o, `SELECT * FROM oracles WHERE address = ?`, address.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to query oracle: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &o, nil
}

func (s *SQLiteStore) GetScoreRequest(ctx context.Context, requestID string) (*store.ScoreRequest, error) {
	var r store.ScoreRequest
	found, err := queryOne(s.db, &r, `SELECT * FROM score_requests WHERE request_id = ?`, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query score request: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &r, nil
}

func (s *SQLiteStore) GetDailyStats(ctx context.Context, day int64) (*store.DailyStats, error) {
	var ds store.DailyStats
	found, err := queryOne(s.db, &ds, `SELECT * FROM daily_stats WHERE day = ?`, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &ds, nil
}

func (s *SQLiteStore) ListDailyStats(ctx context.Context, fromDay, toDay int64) ([]*store.DailyStats, error) {
	const query = `
		SELECT * FROM daily_stats
		WHERE day >= ? AND day <= ?
		ORDER BY day ASC
	`
	stats := []*store.DailyStats{}
	if err := meddler.QueryAll(s.db, &stats, query, fromDay, toDay); err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}

	return stats, nil
}
