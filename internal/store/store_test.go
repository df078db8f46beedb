package store

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/credora/indexer/internal/logger"
	"github.com/credora/indexer/internal/testutil"
	"github.com/credora/indexer/pkg/events"
	"github.com/credora/indexer/pkg/store"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

var (
	alice    = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob      = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	protocol = common.HexToAddress("0x00000000000000000000000000000000000d3f1a")
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	return New(testutil.NewTestDB(t, "store.sqlite"), logger.NewNopLogger())
}

func pos(block uint64, index uint) events.Position {
	return events.Position{BlockNumber: block, LogIndex: index}
}

func TestApply_AdvancesCursor(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	state, err := s.GetSyncState(ctx)
	require.NoError(t, err)
	_, ok := state.Cursor()
	require.False(t, ok)

	applied, err := s.Apply(ctx, pos(10, 2), func(tx store.Tx) error {
		u, created, err := tx.GetOrCreateUser(alice)
		require.NoError(t, err)
		require.True(t, created)
		u.Touch(1000)
		return tx.SaveUser(u)
	})
	require.NoError(t, err)
	require.True(t, applied)

	state, err = s.GetSyncState(ctx)
	require.NoError(t, err)
	cursor, ok := state.Cursor()
	require.True(t, ok)
	require.Equal(t, pos(10, 2), cursor)

	u, err := s.GetUser(ctx, alice)
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, alice, u.Address)
	require.Equal(t, uint64(1000), u.FirstActivityAt)
}

func TestApply_SkipsAtOrBeforeCursor(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Apply(ctx, pos(10, 2), func(store.Tx) error { return nil })
	require.NoError(t, err)

	tests := []struct {
		name    string
		pos     events.Position
		applied bool
	}{
		{name: "same position", pos: pos(10, 2), applied: false},
		{name: "earlier log in block", pos: pos(10, 1), applied: false},
		{name: "earlier block", pos: pos(9, 7), applied: false},
		{name: "later log in block", pos: pos(10, 3), applied: true},
	}

	for _, tt := range tests {
		called := false
		applied, err := s.Apply(ctx, tt.pos, func(store.Tx) error {
			called = true
			return nil
		})
		require.NoError(t, err, tt.name)
		require.Equal(t, tt.applied, applied, tt.name)
		require.Equal(t, tt.applied, called, tt.name)
	}
}

func TestApply_RollsBackOnError(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	applied, err := s.Apply(ctx, pos(5, 0), func(tx store.Tx) error {
		u, _, err := tx.GetOrCreateUser(alice)
		require.NoError(t, err)
		require.NoError(t, tx.SaveUser(u))

		ds, _, err := tx.GetOrCreateDailyStats(3)
		require.NoError(t, err)
		ds.MintCount++
		require.NoError(t, tx.SaveDailyStats(ds))

		return boom
	})
	require.ErrorIs(t, err, boom)
	require.False(t, applied)

	u, err := s.GetUser(ctx, alice)
	require.NoError(t, err)
	require.Nil(t, u)

	ds, err := s.GetDailyStats(ctx, 3)
	require.NoError(t, err)
	require.Nil(t, ds)

	state, err := s.GetSyncState(ctx)
	require.NoError(t, err)
	require.False(t, state.HasApplied)
}

func TestApply_ReadYourWrites(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Apply(ctx, pos(1, 0), func(tx store.Tx) error {
		ps, created, err := tx.GetOrCreateProtocolStats(protocol)
		require.NoError(t, err)
		require.True(t, created)
		ps.ActivePermissions = 1
		require.NoError(t, tx.SaveProtocolStats(ps))

		again, created, err := tx.GetOrCreateProtocolStats(protocol)
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, uint64(1), again.ActivePermissions)
		return nil
	})
	require.NoError(t, err)
}

func TestCreditScoreRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	initiated := uint64(77)

	_, err := s.Apply(ctx, pos(1, 0), func(tx store.Tx) error {
		missing, err := tx.GetCreditScore("1")
		require.NoError(t, err)
		require.Nil(t, missing)

		return tx.SaveCreditScore(&store.CreditScore{
			TokenID:             "1",
			Owner:               alice,
			Score:               uint256.NewInt(640),
			DataVersion:         uint256.NewInt(1),
			CreatedAt:           50,
			CreatedTx:           common.HexToHash("0xabc"),
			PendingRecoveryTo:   &bob,
			RecoveryInitiatedAt: &initiated,
		})
	})
	require.NoError(t, err)

	cs, err := s.GetCreditScore(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, cs)
	require.Equal(t, alice, cs.Owner)
	require.Equal(t, uint256.NewInt(640), cs.Score)
	require.Equal(t, uint256.NewInt(1), cs.DataVersion)
	require.Equal(t, common.Hash{}, cs.ScoreProof)
	require.Nil(t, cs.RecoveryAddress)
	require.NotNil(t, cs.PendingRecoveryTo)
	require.Equal(t, bob, *cs.PendingRecoveryTo)
	require.Equal(t, &initiated, cs.RecoveryInitiatedAt)
}

func scoreUpdate(id string, ts uint64) *store.ScoreUpdate {
	return &store.ScoreUpdate{
		EventID:     id,
		TokenID:     "1",
		Owner:       alice,
		OldScore:    uint256.NewInt(0),
		NewScore:    uint256.NewInt(ts),
		DataVersion: uint256.NewInt(1),
		Timestamp:   ts,
	}
}

func TestGetScoreUpdates_NewestFirst(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	updates := []struct {
		id string
		ts uint64
	}{
		{id: "a", ts: 100},
		{id: "b", ts: 300},
		{id: "c", ts: 200},
		{id: "d", ts: 300},
	}
	for i, u := range updates {
		_, err := s.Apply(ctx, pos(uint64(i+1), 0), func(tx store.Tx) error {
			return tx.InsertScoreUpdate(scoreUpdate(u.id, u.ts))
		})
		require.NoError(t, err)
	}

	got, err := s.GetScoreUpdates(ctx, alice, 10)
	require.NoError(t, err)
	ids := make([]string, 0, len(got))
	for _, u := range got {
		ids = append(ids, u.EventID)
	}
	require.Equal(t, []string{"d", "b", "c", "a"}, ids)

	got, err = s.GetScoreUpdates(ctx, alice, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = s.GetScoreUpdates(ctx, bob, 10)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestInsertScoreUpdate_DuplicateEventID(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Apply(ctx, pos(1, 0), func(tx store.Tx) error {
		return tx.InsertScoreUpdate(scoreUpdate("dup", 1))
	})
	require.NoError(t, err)

	_, err = s.Apply(ctx, pos(2, 0), func(tx store.Tx) error {
		return tx.InsertScoreUpdate(scoreUpdate("dup", 2))
	})
	require.Error(t, err)
}

func TestPermissions(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	other := common.HexToAddress("0x0000000000000000000000000000000000000042")

	_, err := s.Apply(ctx, pos(1, 0), func(tx store.Tx) error {
		for i, p := range []common.Address{protocol, other} {
			require.NoError(t, tx.SavePermission(&store.Permission{
				Key:          store.PermissionKey(alice, p),
				User:         alice,
				Protocol:     p,
				GrantedAt:    uint64(10 + i),
				ExpiresAt:    uint256.NewInt(1000),
				MaxRequests:  uint256.NewInt(5),
				UsedRequests: new(uint256.Int),
				IsActive:     true,
			}))
		}
		return nil
	})
	require.NoError(t, err)

	_, err = s.Apply(ctx, pos(2, 0), func(tx store.Tx) error {
		p, err := tx.GetPermission(store.PermissionKey(alice, other))
		require.NoError(t, err)
		require.NotNil(t, p)
		p.IsActive = false
		return tx.SavePermission(p)
	})
	require.NoError(t, err)

	active, err := s.GetActivePermissions(ctx, alice)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, protocol, active[0].Protocol)

	p, err := s.GetPermission(ctx, alice, other)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.False(t, p.IsActive)

	p, err = s.GetPermission(ctx, bob, protocol)
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestPermissionKey(t *testing.T) {
	t.Parallel()

	key := store.PermissionKey(alice, protocol)
	require.Equal(t,
		"0x00000000000000000000000000000000000a11ce-0x00000000000000000000000000000000000d3f1a", key)
}

func TestPendingScoreRequests(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Apply(ctx, pos(1, 0), func(tx store.Tx) error {
		for _, r := range []*store.ScoreRequest{
			{RequestID: "3", User: alice, RequestedAt: 30, Status: store.RequestPending},
			{RequestID: "1", User: alice, RequestedAt: 10, Status: store.RequestPending},
			{RequestID: "2", User: alice, RequestedAt: 20, Status: store.RequestFulfilled},
			{RequestID: "4", User: bob, RequestedAt: 10, Status: store.RequestPending},
		} {
			require.NoError(t, tx.SaveScoreRequest(r))
		}

		pending, err := tx.PendingScoreRequests(alice, 30)
		require.NoError(t, err)
		require.Len(t, pending, 2)
		require.Equal(t, "1", pending[0].RequestID)
		require.Equal(t, "3", pending[1].RequestID)

		pending, err = tx.PendingScoreRequests(alice, 29)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		return nil
	})
	require.NoError(t, err)

	r, err := s.GetScoreRequest(ctx, "2")
	require.NoError(t, err)
	require.Equal(t, store.RequestFulfilled, r.Status)
	require.Nil(t, r.FulfilledBy)
}

func TestListDailyStats(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Apply(ctx, pos(1, 0), func(tx store.Tx) error {
		for _, day := range []int64{19000, 19002, 19001, 19005} {
			ds, created, err := tx.GetOrCreateDailyStats(day)
			require.NoError(t, err)
			require.True(t, created)
			ds.Date = day * events.SecondsPerDay
			ds.MintCount = 1
			require.NoError(t, tx.SaveDailyStats(ds))
		}
		return nil
	})
	require.NoError(t, err)

	stats, err := s.ListDailyStats(ctx, 19001, 19004)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	require.Equal(t, int64(19001), stats[0].Day)
	require.Equal(t, int64(19002), stats[1].Day)

	stats, err = s.ListDailyStats(ctx, 20000, 20001)
	require.NoError(t, err)
	require.Empty(t, stats)
}

func TestOracleRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	removed := uint64(99)

	_, err := s.Apply(ctx, pos(1, 0), func(tx store.Tx) error {
		o, created, err := tx.GetOrCreateOracle(bob)
		require.NoError(t, err)
		require.True(t, created)
		o.AddedAt = 10
		o.RemovedAt = &removed
		return tx.SaveOracle(o)
	})
	require.NoError(t, err)

	o, err := s.GetOracle(ctx, bob)
	require.NoError(t, err)
	require.NotNil(t, o)
	require.False(t, o.IsActive)
	require.Equal(t, &removed, o.RemovedAt)

	o, err = s.GetOracle(ctx, alice)
	require.NoError(t, err)
	require.Nil(t, o)
}

func TestSaveCheckpoint(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	hash := common.HexToHash("0xbeef")
	require.NoError(t, s.SaveCheckpoint(ctx, store.Checkpoint{Block: 120, Hash: hash, Mode: "live"}))

	state, err := s.GetSyncState(ctx)
	require.NoError(t, err)
	require.NotNil(t, state.LastFetchedBlock)
	require.Equal(t, uint64(120), *state.LastFetchedBlock)
	require.Equal(t, hash, *state.LastFetchedHash)
	require.Equal(t, "live", state.Mode)
}

func TestSetChainID(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetChainID(ctx, 31337))
	require.NoError(t, s.SetChainID(ctx, 31337))

	err := s.SetChainID(ctx, 1)
	require.ErrorIs(t, err, ErrChainMismatch)

	state, err := s.GetSyncState(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(31337), state.ChainID)
}

type countingLocker struct {
	acquired int
	held     bool
}

func (l *countingLocker) AcquireOperationLock() func() {
	l.acquired++
	l.held = true
	return func() { l.held = false }
}

func TestWritesHoldOperationLock(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	locker := &countingLocker{}
	s.SetOperationLocker(locker)
	ctx := context.Background()

	applied, err := s.Apply(ctx, pos(1, 0), func(tx store.Tx) error {
		require.True(t, locker.held)
		_, _, err := tx.GetOrCreateUser(alice)
		return err
	})
	require.NoError(t, err)
	require.True(t, applied)
	require.False(t, locker.held)

	require.NoError(t, s.SaveCheckpoint(ctx, store.Checkpoint{Block: 1, Mode: "backfill"}))
	require.False(t, locker.held)

	require.Equal(t, 2, locker.acquired)
}

func TestPermission_WideQuantities(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	unlimited := new(uint256.Int).SetAllOne()
	expiresAt := new(uint256.Int).SetUint64(math.MaxUint64)
	used := uint256.NewInt(1 << 63)

	_, err := s.Apply(ctx, pos(1, 0), func(tx store.Tx) error {
		return tx.SavePermission(&store.Permission{
			Key:          store.PermissionKey(alice, protocol),
			User:         alice,
			Protocol:     protocol,
			ExpiresAt:    expiresAt,
			MaxRequests:  unlimited,
			UsedRequests: used,
			IsActive:     true,
		})
	})
	require.NoError(t, err)

	p, err := s.GetPermission(ctx, alice, protocol)
	require.NoError(t, err)
	require.Equal(t, unlimited, p.MaxRequests)
	require.Equal(t, expiresAt, p.ExpiresAt)
	require.Equal(t, used, p.UsedRequests)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	require.Contains(t, string(out), `"maxRequests":"`+unlimited.Dec()+`"`)
	require.Contains(t, string(out), `"expiresAt":"18446744073709551615"`)
}
