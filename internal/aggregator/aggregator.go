// Package aggregator applies decoded Credora events to the derived entities.
package aggregator

import (
	"errors"
	"fmt"

	"github.com/credora/indexer/internal/logger"
	"github.com/credora/indexer/pkg/events"
	"github.com/credora/indexer/pkg/store"
	"github.com/holiman/uint256"
)

var (
	// ErrMissingReferent is reported when an event refers to an entity that was never created.
	ErrMissingReferent = errors.New("missing referent")
	// ErrUnsupportedTransfer is reported for transfers between two non-zero addresses.
	ErrUnsupportedTransfer = errors.New("transfer between non-zero addresses")
	// ErrQuotaOverrun is reported when a usage event leaves more requests than were granted.
	ErrQuotaOverrun = errors.New("remaining requests exceed granted quota")
	// ErrDuplicateMint is reported when a token id is minted again.
	ErrDuplicateMint = errors.New("token minted more than once")
)

// Reason returns a short label for a warning returned by Apply.
func Reason(warning error) string {
	switch {
	case errors.Is(warning, ErrMissingReferent):
		return "missing_referent"
	case errors.Is(warning, ErrUnsupportedTransfer):
		return "unsupported_transfer"
	case errors.Is(warning, ErrQuotaOverrun):
		return "quota_overrun"
	case errors.Is(warning, ErrDuplicateMint):
		return "duplicate_mint"
	default:
		return "other"
	}
}

// Aggregator applies one event at a time inside the caller's transaction.
type Aggregator struct {
	log *logger.Logger
}

// New creates an Aggregator.
func New(log *logger.Logger) *Aggregator {
	return &Aggregator{log: log}
}

// Apply applies ev within tx.
// Warnings are anomalies in the event history that leave the event's other writes valid.
// A non-nil error means the transaction must be rolled back.
func (a *Aggregator) Apply(tx store.Tx, ev events.Event) (warnings []error, err error) {
	h := &handler{
		tx:   tx,
		meta: ev.Meta,
		log:  a.log,
	}

	switch p := ev.Payload.(type) {
	case events.ScoreMinted:
		err = h.scoreMinted(p)
	case events.ScoreUpdated:
		err = h.scoreUpdated(p)
	case events.Transfer:
		err = h.transfer(p)
	case events.RecoveryAddressSet:
		err = h.recoveryAddressSet(p)
	case events.RecoveryInitiated:
		err = h.recoveryInitiated(p)
	case events.RecoveryCompleted:
		err = h.recoveryCompleted(p)
	case events.AccessGranted:
		err = h.accessGranted(p)
	case events.AccessRevoked:
		err = h.accessRevoked(p)
	case events.AccessUsed:
		err = h.accessUsed(p)
	case events.ScoreUpdateRequested:
		err = h.scoreUpdateRequested(p)
	case events.OracleScoreSubmitted:
		err = h.oracleScoreSubmitted(p)
	case events.OracleAdded:
		err = h.oracleAdded(p)
	case events.OracleRemoved:
		err = h.oracleRemoved(p)
	default:
		return nil, fmt.Errorf("no handler for %T", ev.Payload)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to apply %s: %w", ev, err)
	}

	return h.warnings, nil
}

// handler carries the state of a single event application.
type handler struct {
	tx       store.Tx
	meta     events.Meta
	log      *logger.Logger
	warnings []error
}

func (h *handler) warn(err error, format string, args ...any) {
	h.warnings = append(h.warnings, fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...)))
}

func (h *handler) ts() uint64 {
	return h.meta.Timestamp
}

// decrement lowers *v by one, never below zero. It reports whether *v changed.
// quantity copies an on-chain amount, reading nil as zero.
func quantity(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v.Clone()
}

func decrement(v *uint64) bool {
	if *v == 0 {
		return false
	}
	*v--
	return true
}
