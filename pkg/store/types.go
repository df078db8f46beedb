package store

import (
	"strings"

	"github.com/credora/indexer/pkg/events"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// RequestStatus is the lifecycle state of a ScoreRequest.
type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestFulfilled RequestStatus = "FULFILLED"
)

// User is the per-account aggregate.
type User struct {
	ID                      int64          `meddler:"id,pk" json:"-"`
	Address                 common.Address `meddler:"address,address" json:"id"`
	TokenID                 *string        `meddler:"token_id" json:"tokenId"`
	HasActiveSBT            bool           `meddler:"has_active_sbt" json:"hasActiveSBT"`
	CurrentScore            *uint256.Int   `meddler:"current_score,uint256" json:"currentScore" swaggertype:"string"`
	TotalScoreUpdates       uint64         `meddler:"total_score_updates" json:"totalScoreUpdates"`
	ActivePermissions       uint64         `meddler:"active_permissions" json:"activePermissions"`
	TotalPermissionsGranted uint64         `meddler:"total_permissions_granted" json:"totalPermissionsGranted"`
	FirstActivityAt         uint64         `meddler:"first_activity_at" json:"firstActivityAt"`
	LastActivityAt          uint64         `meddler:"last_activity_at" json:"lastActivityAt"`
}

// Touch records activity at ts. The first activity is only set once.
func (u *User) Touch(ts uint64) {
	if u.FirstActivityAt == 0 {
		u.FirstActivityAt = ts
	}
	u.LastActivityAt = ts
}

// ClearSBT detaches the user from its score token.
func (u *User) ClearSBT() {
	u.TokenID = nil
	u.HasActiveSBT = false
	u.CurrentScore = nil
}

// AttachSBT makes tokenID the user's active score token.
func (u *User) AttachSBT(tokenID string, score *uint256.Int) {
	u.TokenID = &tokenID
	u.HasActiveSBT = true
	u.CurrentScore = new(uint256.Int)
	if score != nil {
		u.CurrentScore.Set(score)
	}
}

// CreditScore is the state of one score SBT.
type CreditScore struct {
	ID                  int64           `meddler:"id,pk" json:"-"`
	TokenID             string          `meddler:"token_id" json:"id"`
	Owner               common.Address  `meddler:"owner,address" json:"owner"`
	Score               *uint256.Int    `meddler:"score,uint256" json:"score" swaggertype:"string"`
	LastUpdated         uint64          `meddler:"last_updated" json:"lastUpdated"`
	DataVersion         *uint256.Int    `meddler:"data_version,uint256" json:"dataVersion" swaggertype:"string"`
	ScoreProof          common.Hash     `meddler:"score_proof,hash" json:"scoreProof"`
	UpdateCount         uint64          `meddler:"update_count" json:"updateCount"`
	CreatedAt           uint64          `meddler:"created_at" json:"createdAt"`
	CreatedTx           common.Hash     `meddler:"created_tx,hash" json:"createdTx"`
	RecoveryAddress     *common.Address `meddler:"recovery_address,address" json:"recoveryAddress,omitempty"`
	PendingRecoveryTo   *common.Address `meddler:"pending_recovery_to,address" json:"pendingRecoveryTo,omitempty"`
	RecoveryInitiatedAt *uint64         `meddler:"recovery_initiated_at" json:"recoveryInitiatedAt,omitempty"`
}

// ScoreUpdate is one SBT score change. Immutable.
type ScoreUpdate struct {
	ID          int64          `meddler:"id,pk" json:"-"`
	EventID     string         `meddler:"event_id" json:"id"`
	TokenID     string         `meddler:"token_id" json:"tokenId"`
	Owner       common.Address `meddler:"owner,address" json:"owner"`
	OldScore    *uint256.Int   `meddler:"old_score,uint256" json:"oldScore" swaggertype:"string"`
	NewScore    *uint256.Int   `meddler:"new_score,uint256" json:"newScore" swaggertype:"string"`
	DataVersion *uint256.Int   `meddler:"data_version,uint256" json:"dataVersion" swaggertype:"string"`
	UpdatedBy   common.Address `meddler:"updated_by,address" json:"updatedBy"`
	Timestamp   uint64         `meddler:"timestamp" json:"timestamp"`
	BlockNumber uint64         `meddler:"block_number" json:"blockNumber"`
	TxHash      common.Hash    `meddler:"tx_hash,hash" json:"txHash"`
}

// Permission is the live grant between a user and a protocol.
type Permission struct {
	ID             int64          `meddler:"id,pk" json:"-"`
	Key            string         `meddler:"permission_key" json:"id"`
	User           common.Address `meddler:"user,address" json:"user"`
	Protocol       common.Address `meddler:"protocol,address" json:"protocol"`
	GrantedAt      uint64         `meddler:"granted_at" json:"grantedAt"`
	ExpiresAt      *uint256.Int   `meddler:"expires_at,uint256" json:"expiresAt" swaggertype:"string"`
	MaxRequests    *uint256.Int   `meddler:"max_requests,uint256" json:"maxRequests" swaggertype:"string"`
	UsedRequests   *uint256.Int   `meddler:"used_requests,uint256" json:"usedRequests" swaggertype:"string"`
	IsActive       bool           `meddler:"is_active" json:"isActive"`
	PermissionHash common.Hash    `meddler:"permission_hash,hash" json:"permissionHash"`
	CreatedTx      common.Hash    `meddler:"created_tx,hash" json:"createdTx"`
	RevokedAt      *uint64        `meddler:"revoked_at" json:"revokedAt,omitempty"`
}

// PermissionKey returns the key of the permission between user and protocol.
func PermissionKey(user, protocol common.Address) string {
	return strings.ToLower(user.Hex() + "-" + protocol.Hex())
}

// PermissionUsage is one consumed request. Append-only.
type PermissionUsage struct {
	ID                int64          `meddler:"id,pk" json:"-"`
	EventID           string         `meddler:"event_id" json:"id"`
	User              common.Address `meddler:"user,address" json:"user"`
	Protocol          common.Address `meddler:"protocol,address" json:"protocol"`
	RemainingRequests *uint256.Int   `meddler:"remaining_requests,uint256" json:"remainingRequests" swaggertype:"string"`
	Timestamp         uint64         `meddler:"timestamp" json:"timestamp"`
	BlockNumber       uint64         `meddler:"block_number" json:"blockNumber"`
	TxHash            common.Hash    `meddler:"tx_hash,hash" json:"txHash"`
}

// ProtocolStats aggregates the permissions received by a protocol.
type ProtocolStats struct {
	ID                       int64          `meddler:"id,pk" json:"-"`
	Protocol                 common.Address `meddler:"protocol,address" json:"id"`
	TotalPermissionsReceived uint64         `meddler:"total_permissions_received" json:"totalPermissionsReceived"`
	ActivePermissions        uint64         `meddler:"active_permissions" json:"activePermissions"`
	TotalAccessUsed          uint64         `meddler:"total_access_used" json:"totalAccessUsed"`
	FirstPermissionAt        uint64         `meddler:"first_permission_at" json:"firstPermissionAt"`
}

// Oracle is a registered score oracle.
type Oracle struct {
	ID               int64          `meddler:"id,pk" json:"-"`
	Address          common.Address `meddler:"address,address" json:"id"`
	IsActive         bool           `meddler:"is_active" json:"isActive"`
	AddedAt          uint64         `meddler:"added_at" json:"addedAt"`
	RemovedAt        *uint64        `meddler:"removed_at" json:"removedAt,omitempty"`
	UpdatesSubmitted uint64         `meddler:"updates_submitted" json:"updatesSubmitted"`
}

// ScoreRequest is an on-chain request for a score recalculation.
type ScoreRequest struct {
	ID          int64           `meddler:"id,pk" json:"-"`
	RequestID   string          `meddler:"request_id" json:"id"`
	User        common.Address  `meddler:"user,address" json:"user"`
	RequestedAt uint64          `meddler:"requested_at" json:"requestedAt"`
	Status      RequestStatus   `meddler:"status" json:"status"`
	RequestTx   common.Hash     `meddler:"request_tx,hash" json:"requestTx"`
	FulfilledAt *uint64         `meddler:"fulfilled_at" json:"fulfilledAt,omitempty"`
	FulfilledBy *common.Address `meddler:"fulfilled_by,address" json:"fulfilledBy,omitempty"`
}

// DailyStats holds the activity counters of one day bucket.
type DailyStats struct {
	ID                    int64  `meddler:"id,pk" json:"-"`
	Day                   int64  `meddler:"day" json:"id"`
	Date                  int64  `meddler:"date" json:"date"`
	MintCount             uint64 `meddler:"mint_count" json:"mintCount"`
	UpdateCount           uint64 `meddler:"update_count" json:"updateCount"`
	PermissionGrantCount  uint64 `meddler:"permission_grant_count" json:"permissionGrantCount"`
	PermissionRevokeCount uint64 `meddler:"permission_revoke_count" json:"permissionRevokeCount"`
	AccessUsageCount      uint64 `meddler:"access_usage_count" json:"accessUsageCount"`
}

// SyncState is the engine's bookkeeping: how far logs were fetched and which event was applied last.
type SyncState struct {
	ID               int64        `meddler:"id,pk" json:"-"`
	ChainID          uint64       `meddler:"chain_id" json:"chainId"`
	LastFetchedBlock *uint64      `meddler:"last_fetched_block" json:"lastFetchedBlock"`
	LastFetchedHash  *common.Hash `meddler:"last_fetched_hash,hash" json:"lastFetchedHash"`
	HasApplied       bool         `meddler:"has_applied" json:"hasApplied"`
	AppliedBlock     uint64       `meddler:"applied_block" json:"appliedBlock"`
	AppliedLogIndex  uint64       `meddler:"applied_log_index" json:"appliedLogIndex"`
	Mode             string       `meddler:"mode" json:"mode"`
	UpdatedAt        int64        `meddler:"updated_at" json:"updatedAt"`
}

// Cursor returns the position of the last applied event, if any.
func (s *SyncState) Cursor() (events.Position, bool) {
	return events.Position{BlockNumber: s.AppliedBlock, LogIndex: uint(s.AppliedLogIndex)}, s.HasApplied
}
