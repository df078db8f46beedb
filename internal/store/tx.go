package store

import (
	"database/sql"
	"fmt"

	"github.com/credora/indexer/pkg/store"
	"github.com/ethereum/go-ethereum/common"
	"github.com/russross/meddler"
)

// sqlTx exposes the entity tables to one event's handler.
type sqlTx struct {
	tx *sql.Tx
}

var _ store.Tx = (*sqlTx)(nil)

func (t *sqlTx) GetOrCreateUser(address common.Address) (*store.User, bool, error) {
	var u store.User
	found, err := queryOne(t.tx, &u, `SELECT * FROM users WHERE address = ?`, address.Hex())
	if err != nil {
		return nil, false, fmt.Errorf("failed to query user %s: %w", address.Hex(), err)
	}
	if !found {
		return &store.User{Address: address}, true, nil
	}

	return &u, false, nil
}

func (t *sqlTx) SaveUser(u *store.User) error {
	if err := meddler.Save(t.tx, "users", u); err != nil {
		return fmt.Errorf("failed to save user %s: %w", u.Address.Hex(), err)
	}

	return nil
}

func (t *sqlTx) GetCreditScore(tokenID string) (*store.CreditScore, error) {
	var cs store.CreditScore
	found, err := queryOne(t.tx, &cs, `SELECT * FROM credit_scores WHERE token_id = ?`, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit score %s: %w", tokenID, err)
	}
	if !found {
		return nil, nil
	}

	return &cs, nil
}

func (t *sqlTx) SaveCreditScore(cs *store.CreditScore) error {
	if err := meddler.Save(t.tx, "credit_scores", cs); err != nil {
		return fmt.Errorf("failed to save credit score %s: %w", cs.TokenID, err)
	}

	return nil
}

func (t *sqlTx) InsertScoreUpdate(su *store.ScoreUpdate) error {
	if err := meddler.Insert(t.tx, "score_updates", su); err != nil {
		return fmt.Errorf("failed to insert score update %s: %w", su.EventID, err)
	}

	return nil
}

func (t *sqlTx) GetPermission(key string) (*store.Permission, error) {
	var p store.Permission
	found, err := queryOne(t.tx, &p, `SELECT * FROM permissions WHERE permission_key = ?`, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query permission %s: %w", key, err)
	}
	if !found {
		return nil, nil
	}

	return &p, nil
}

func (t *sqlTx) SavePermission(p *store.Permission) error {
	if err := meddler.Save(t.tx, "permissions", p); err != nil {
		return fmt.Errorf("failed to save permission %s: %w", p.Key, err)
	}

	return nil
}

func (t *sqlTx) InsertPermissionUsage(pu *store.PermissionUsage) error {
	if err := meddler.Insert(t.tx, "permission_usages", pu); err != nil {
		return fmt.Errorf("failed to insert permission usage %s: %w", pu.EventID, err)
	}

	return nil
}

func (t *sqlTx) GetOrCreateProtocolStats(protocol common.Address) (*store.ProtocolStats, bool, error) {
	var ps store.ProtocolStats
	found, err := queryOne(t.tx, &ps, `SELECT * FROM protocol_stats WHERE protocol = ?`, protocol.Hex())
	if err != nil {
		return nil, false, fmt.Errorf("failed to query protocol stats %s: %w", protocol.Hex(), err)
	}
	if !found {
		return &store.ProtocolStats{Protocol: protocol}, true, nil
	}

	return &ps, false, nil
}

func (t *sqlTx) SaveProtocolStats(ps *store.ProtocolStats) error {
	if err := meddler.Save(t.tx, "protocol_stats", ps); err != nil {
		return fmt.Errorf("failed to save protocol stats %s: %w", ps.Protocol.Hex(), err)
	}

	return nil
}

func (t *sqlTx) GetOrCreateOracle(address common.Address) (*store.Oracle, bool, error) {
	var o store.Oracle
	found, err := queryOne(t.tx, &o, `SELECT * FROM oracles WHERE address = ?`, address.Hex())
	if err != nil {
		return nil, false, fmt.Errorf("failed to query oracle %s: %w", address.Hex(), err)
	}
	if !found {
		return &store.Oracle{Address: address}, true, nil
	}

	return &o, false, nil
}

func (t *sqlTx) SaveOracle(o *store.Oracle) error {
	if err := meddler.Save(t.tx, "oracles", o); err != nil {
		return fmt.Errorf("failed to save oracle %s: %w", o.Address.Hex(), err)
	}

	return nil
}

func (t *sqlTx) GetScoreRequest(requestID string) (*store.ScoreRequest, error) {
	var r store.ScoreRequest
	found, err := queryOne(t.tx, &r, `SELECT * FROM score_requests WHERE request_id = ?`, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query score request %s: %w", requestID, err)
	}
	if !found {
		return nil, nil
	}

	return &r, nil
}

func (t *sqlTx) SaveScoreRequest(r *store.ScoreRequest) error {
	if err := meddler.Save(t.tx, "score_requests", r); err != nil {
		return fmt.Errorf("failed to save score request %s: %w", r.RequestID, err)
	}

	return nil
}

func (t *sqlTx) PendingScoreRequests(user common.Address, ts uint64) ([]*store.ScoreRequest, error) {
	const query = `
		SELECT * FROM score_requests
		WHERE user = ? AND status = ? AND requested_at <= ?
		ORDER BY requested_at ASC, id ASC
	`
	var requests []*store.ScoreRequest
	if err := meddler.QueryAll(t.tx, &requests, query, user.Hex(), store.RequestPending, ts); err != nil {
		return nil, fmt.Errorf("failed to query pending score requests of %s: %w", user.Hex(), err)
	}

	return requests, nil
}

func (t *sqlTx) GetOrCreateDailyStats(day int64) (*store.DailyStats, bool, error) {
	var ds store.DailyStats
	found, err := queryOne(t.tx, &ds, `SELECT * FROM daily_stats WHERE day = ?`, day)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query daily stats %d: %w", day, err)
	}
	if !found {
		return &store.DailyStats{Day: day}, true, nil
	}

	return &ds, false, nil
}

func (t *sqlTx) SaveDailyStats(ds *store.DailyStats) error {
	if err := meddler.Save(t.tx, "daily_stats", ds); err != nil {
		return fmt.Errorf("failed to save daily stats %d: %w", ds.Day, err)
	}

	return nil
}
