package api

import "time"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status    string      `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Sync      *SyncStatus `json:"sync,omitempty"`
}

// SyncStatus reports how far the entity store has caught up with the chain.
type SyncStatus struct {
	ChainID          uint64  `json:"chain_id"`
	LastFetchedBlock *uint64 `json:"last_fetched_block"`
	LastAppliedBlock *uint64 `json:"last_applied_block"`
	LastAppliedIndex *uint64 `json:"last_applied_log_index"`
	Mode             string  `json:"mode"`
	UpdatedAt        int64   `json:"updated_at"`
}
