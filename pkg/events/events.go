// Package events defines the typed Credora contract events consumed by the engine.
package events

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// SecondsPerDay is the width of a DailyStats bucket.
const SecondsPerDay = 86400

// Kind identifies an event type.
type Kind string

const (
	KindScoreMinted          Kind = "ScoreMinted"
	KindScoreUpdated         Kind = "ScoreUpdated"
	KindTransfer             Kind = "Transfer"
	KindRecoveryAddressSet   Kind = "RecoveryAddressSet"
	KindRecoveryInitiated    Kind = "RecoveryInitiated"
	KindRecoveryCompleted    Kind = "RecoveryCompleted"
	KindAccessGranted        Kind = "AccessGranted"
	KindAccessRevoked        Kind = "AccessRevoked"
	KindAccessUsed           Kind = "AccessUsed"
	KindScoreUpdateRequested Kind = "ScoreUpdateRequested"
	KindOracleScoreSubmitted Kind = "OracleScoreSubmitted"
	KindOracleAdded          Kind = "OracleAdded"
	KindOracleRemoved        Kind = "OracleRemoved"
)

func (k Kind) String() string {
	return string(k)
}

// Position orders events within the chain.
type Position struct {
	BlockNumber uint64 `json:"blockNumber"`
	LogIndex    uint   `json:"logIndex"`
}

// Less reports whether p comes strictly before o.
func (p Position) Less(o Position) bool {
	if p.BlockNumber != o.BlockNumber {
		return p.BlockNumber < o.BlockNumber
	}
	return p.LogIndex < o.LogIndex
}

// Compare returns -1, 0 or +1 depending on whether p is before, equal to or after o.
func (p Position) Compare(o Position) int {
	switch {
	case p.Less(o):
		return -1
	case o.Less(p):
		return 1
	default:
		return 0
	}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.BlockNumber, p.LogIndex)
}

// Meta carries the immutable log fields every event has.
type Meta struct {
	Contract    common.Address
	BlockNumber uint64
	BlockHash   common.Hash
	LogIndex    uint
	TxHash      common.Hash
	Timestamp   uint64
}

// Position returns the canonical ordering key of the event.
func (m Meta) Position() Position {
	return Position{BlockNumber: m.BlockNumber, LogIndex: m.LogIndex}
}

// ID returns the append-only row key derived from the transaction hash and log index.
func (m Meta) ID() string {
	return fmt.Sprintf("%s-%d", m.TxHash.Hex(), m.LogIndex)
}

// DayIndex returns the day bucket the event falls into.
func (m Meta) DayIndex() int64 {
	return int64(m.Timestamp / SecondsPerDay)
}

// Payload is implemented by every typed event body.
type Payload interface {
	Kind() Kind
}

// Event is a decoded contract log.
type Event struct {
	Meta
	Payload Payload
}

// Kind returns the kind of the event payload.
func (e Event) Kind() Kind {
	return e.Payload.Kind()
}

func (e Event) String() string {
	return fmt.Sprintf("%s@%s(tx=%s)", e.Kind(), e.Position(), e.TxHash.Hex())
}

// ScoreMinted is emitted when a score SBT is minted to owner.
type ScoreMinted struct {
	Owner   common.Address
	TokenID string
}

func (ScoreMinted) Kind() Kind { return KindScoreMinted }

// ScoreUpdated is emitted by the SBT contract when a token's score changes.
type ScoreUpdated struct {
	TokenID     string
	OldScore    *uint256.Int
	NewScore    *uint256.Int
	DataVersion *uint256.Int
	UpdatedBy   common.Address
}

func (ScoreUpdated) Kind() Kind { return KindScoreUpdated }

// Transfer is the ERC-721 transfer event. Mints come from and burns go to the zero address.
type Transfer struct {
	From    common.Address
	To      common.Address
	TokenID string
}

func (Transfer) Kind() Kind { return KindTransfer }

// IsMint reports whether the transfer creates the token.
func (t Transfer) IsMint() bool { return t.From == (common.Address{}) }

// IsBurn reports whether the transfer destroys the token.
func (t Transfer) IsBurn() bool { return t.To == (common.Address{}) }

type RecoveryAddressSet struct {
	TokenID         string
	RecoveryAddress common.Address
}

func (RecoveryAddressSet) Kind() Kind { return KindRecoveryAddressSet }

type RecoveryInitiated struct {
	TokenID string
	From    common.Address
	To      common.Address
}

func (RecoveryInitiated) Kind() Kind { return KindRecoveryInitiated }

type RecoveryCompleted struct {
	TokenID  string
	NewOwner common.Address
}

func (RecoveryCompleted) Kind() Kind { return KindRecoveryCompleted }

// AccessGranted opens a quota and time bounded permission for protocol to read user's score.
type AccessGranted struct {
	User           common.Address
	Protocol       common.Address
	ExpiresAt      *uint256.Int
	MaxRequests    *uint256.Int
	PermissionHash common.Hash
}

func (AccessGranted) Kind() Kind { return KindAccessGranted }

type AccessRevoked struct {
	User           common.Address
	Protocol       common.Address
	PermissionHash common.Hash
}

func (AccessRevoked) Kind() Kind { return KindAccessRevoked }

// AccessUsed reports the quota left after protocol consumed one request.
type AccessUsed struct {
	User              common.Address
	Protocol          common.Address
	RemainingRequests *uint256.Int
}

func (AccessUsed) Kind() Kind { return KindAccessUsed }

type ScoreUpdateRequested struct {
	User      common.Address
	RequestID string
}

func (ScoreUpdateRequested) Kind() Kind { return KindScoreUpdateRequested }

// OracleScoreSubmitted is the oracle contract's ScoreUpdated event.
type OracleScoreSubmitted struct {
	User            common.Address
	Score           *uint256.Int
	CalculationHash common.Hash
	Oracle          common.Address
	Timestamp       *uint256.Int
}

func (OracleScoreSubmitted) Kind() Kind { return KindOracleScoreSubmitted }

type OracleAdded struct {
	Oracle common.Address
}

func (OracleAdded) Kind() Kind { return KindOracleAdded }

type OracleRemoved struct {
	Oracle common.Address
}

func (OracleRemoved) Kind() Kind { return KindOracleRemoved }
