package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	icommon "github.com/credora/indexer/internal/common"
	"github.com/credora/indexer/internal/logger"
	"github.com/credora/indexer/pkg/query"
	"github.com/ethereum/go-ethereum/common"
)

const defaultScoreUpdatesLimit = 50

// Handler handles HTTP requests for the API.
type Handler struct {
	reader      query.Reader
	log         *logger.Logger
	maxPageSize int
}

// NewHandler creates a new API handler.
func NewHandler(reader query.Reader, maxPageSize int, log *logger.Logger) *Handler {
	return &Handler{
		reader:      reader,
		log:         log,
		maxPageSize: maxPageSize,
	}
}

// Health returns the health status of the API and the sync progress of the store.
// @Summary Health check
// @Description Check the health status of the API and how far the indexer has synced
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "API health and sync status"
// @Failure 503 {object} HealthResponse "Store unavailable"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	}

	state, err := h.reader.GetSyncState(r.Context())
	if err != nil {
		h.log.Errorf("Failed to get sync state: %v", err)
		response.Status = "unavailable"
		respondJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	sync := &SyncStatus{
		ChainID:          state.ChainID,
		LastFetchedBlock: state.LastFetchedBlock,
		Mode:             state.Mode,
		UpdatedAt:        state.UpdatedAt,
	}
	if cursor, ok := state.Cursor(); ok {
		block, index := cursor.BlockNumber, uint64(cursor.LogIndex)
		sync.LastAppliedBlock = &block
		sync.LastAppliedIndex = &index
	}
	response.Sync = sync

	respondJSON(w, http.StatusOK, response)
}

// GetUser returns a user profile.
// @Summary Get user
// @Description Retrieve the aggregated profile of a user address
// @Tags Users
// @Produce json
// @Param address path string true "User address"
// @Success 200 {object} store.User "User profile"
// @Failure 400 {object} ErrorResponse "Invalid address"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/users/{address} [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	address, ok := pathAddress(w, r, "address")
	if !ok {
		return
	}

	user, err := h.reader.GetUser(r.Context(), address)
	if err != nil {
		h.log.Errorf("Failed to get user: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to get user")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("user '%s' not found", address.Hex()))
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// GetScoreUpdates returns the score history of a user.
// @Summary Get score updates
// @Description Retrieve the score updates of a user, newest first
// @Tags Users
// @Produce json
// @Param address path string true "User address"
// @Param limit query int false "Maximum number of updates to return" default(50)
// @Success 200 {array} store.ScoreUpdate "Score updates"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/users/{address}/score-updates [get]
func (h *Handler) GetScoreUpdates(w http.ResponseWriter, r *http.Request) {
	address, ok := pathAddress(w, r, "address")
	if !ok {
		return
	}

	limit := min(defaultScoreUpdatesLimit, h.maxPageSize)
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > h.maxPageSize {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit: must be between 1 and %d", h.maxPageSize))
			return
		}
		limit = parsed
	}

	updates, err := h.reader.GetScoreUpdates(r.Context(), address, limit)
	if err != nil {
		h.log.Errorf("Failed to get score updates: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to get score updates")
		return
	}

	respondJSON(w, http.StatusOK, updates)
}

// GetActivePermissions returns the active permissions a user has granted.
// @Summary Get active permissions
// @Description Retrieve the permissions a user has granted that are still active
// @Tags Users
// @Produce json
// @Param address path string true "User address"
// @Success 200 {array} store.Permission "Active permissions"
// @Failure 400 {object} ErrorResponse "Invalid address"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/users/{address}/permissions [get]
func (h *Handler) GetActivePermissions(w http.ResponseWriter, r *http.Request) {
	address, ok := pathAddress(w, r, "address")
	if !ok {
		return
	}

	permissions, err := h.reader.GetActivePermissions(r.Context(), address)
	if err != nil {
		h.log.Errorf("Failed to get active permissions: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to get active permissions")
		return
	}

	respondJSON(w, http.StatusOK, permissions)
}

// GetCreditScore returns a credit score token.
// @Summary Get credit score
// @Description Retrieve a credit score by token id (decimal or 0x-prefixed hex)
// @Tags Scores
// @Produce json
// @Param tokenId path string true "Token id"
// @Success 200 {object} store.CreditScore "Credit score"
// @Failure 400 {object} ErrorResponse "Invalid token id"
// @Failure 404 {object} ErrorResponse "Credit score not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/scores/{tokenId} [get]
func (h *Handler) GetCreditScore(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := pathID(w, r, "tokenId")
	if !ok {
		return
	}

	cs, err := h.reader.GetCreditScore(r.Context(), tokenID)
	if err != nil {
		h.log.Errorf("Failed to get credit score: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to get credit score")
		return
	}
	if cs == nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("credit score '%s' not found", tokenID))
		return
	}

	respondJSON(w, http.StatusOK, cs)
}

// GetPermission returns the permission a user granted to a protocol.
// @Summary Get permission
// @Description Retrieve the permission record between a user and a protocol
// @Tags Permissions
// @Produce json
// @Param owner path string true "User address"
// @Param protocol path string true "Protocol address"
// @Success 200 {object} store.Permission "Permission"
// @Failure 400 {object} ErrorResponse "Invalid address"
// @Failure 404 {object} ErrorResponse "Permission not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/permissions/{owner}/{protocol} [get]
func (h *Handler) GetPermission(w http.ResponseWriter, r *http.Request) {
	owner, ok := pathAddress(w, r, "owner")
	if !ok {
		return
	}
	protocol, ok := pathAddress(w, r, "protocol")
	if !ok {
		return
	}

	permission, err := h.reader.GetPermission(r.Context(), owner, protocol)
	if err != nil {
		h.log.Errorf("Failed to get permission: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to get permission")
		return
	}
	if permission == nil {
		respondError(w, http.StatusNotFound,
			fmt.Sprintf("permission from '%s' to '%s' not found", owner.Hex(), protocol.Hex()))
		return
	}

	respondJSON(w, http.StatusOK, permission)
}

// GetProtocolStats returns the aggregate counters of a protocol.
// @Summary Get protocol stats
// @Description Retrieve permission and usage counters of a protocol
// @Tags Protocols
// @Produce json
// @Param address path string true "Protocol address"
// @Success 200 {object} store.ProtocolStats "Protocol stats"
// @Failure 400 {object} ErrorResponse "Invalid address"
// @Failure 404 {object} ErrorResponse "Protocol not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/protocols/{address} [get]
func (h *Handler) GetProtocolStats(w http.ResponseWriter, r *http.Request) {
	address, ok := pathAddress(w, r, "address")
	if !ok {
		return
	}

	stats, err := h.reader.GetProtocolStats(r.Context(), address)
	if err != nil {
		h.log.Errorf("Failed to get protocol stats: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to get protocol stats")
		return
	}
	if stats == nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("protocol '%s' not found", address.Hex()))
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// GetOracle returns an oracle.
// @Summary Get oracle
// @Description Retrieve the registration state and activity of an oracle
// @Tags Oracles
// @Produce json
// @Param address path string true "Oracle address"
// @Success 200 {object} store.Oracle "Oracle"
// @Failure 400 {object} ErrorResponse "Invalid address"
// @Failure 404 {object} ErrorResponse "Oracle not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/oracles/{address} [get]
func (h *Handler) GetOracle(w http.ResponseWriter, r *http.Request) {
	address, ok := pathAddress(w, r, "address")
	if !ok {
		return
	}

	oracle, err := h.reader.GetOracle(r.Context(), address)
	if err != nil {
		h.log.Errorf("Failed to get oracle: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to get oracle")
		return
	}
	if oracle == nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("oracle '%s' not found", address.Hex()))
		return
	}

	respondJSON(w, http.StatusOK, oracle)
}

// GetScoreRequest returns a score update request.
// @Summary Get score request
// @Description Retrieve a score update request and whether an oracle fulfilled it
// @Tags Oracles
// @Produce json
// @Param requestId path string true "Request id"
// @Success 200 {object} store.ScoreRequest "Score request"
// @Failure 400 {object} ErrorResponse "Invalid request id"
// @Failure 404 {object} ErrorResponse "Score request not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/requests/{requestId} [get]
func (h *Handler) GetScoreRequest(w http.ResponseWriter, r *http.Request) {
	requestID, ok := pathID(w, r, "requestId")
	if !ok {
		return
	}

	request, err := h.reader.GetScoreRequest(r.Context(), requestID)
	if err != nil {
		h.log.Errorf("Failed to get score request: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to get score request")
		return
	}
	if request == nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("score request '%s' not found", requestID))
		return
	}

	respondJSON(w, http.StatusOK, request)
}

// GetDailyStats returns the activity counters of a single day.
// @Summary Get daily stats
// @Description Retrieve the activity counters of a day, given as days since the Unix epoch
// @Tags Stats
// @Produce json
// @Param day path integer true "Day index"
// @Success 200 {object} store.DailyStats "Daily stats"
// @Failure 400 {object} ErrorResponse "Invalid day"
// @Failure 404 {object} ErrorResponse "No activity on that day"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/daily-stats/{day} [get]
func (h *Handler) GetDailyStats(w http.ResponseWriter, r *http.Request) {
	day, err := parseDay(r.PathValue("day"))
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid day: %v", err))
		return
	}

	stats, err := h.reader.GetDailyStats(r.Context(), day)
	if err != nil {
		h.log.Errorf("Failed to get daily stats: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to get daily stats")
		return
	}
	if stats == nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("no stats for day %d", day))
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// ListDailyStats returns the activity counters of a range of days.
// @Summary List daily stats
// @Description Retrieve the activity counters of every day with activity in [from_day, to_day], oldest first
// @Tags Stats
// @Produce json
// @Param from_day query integer true "First day index"
// @Param to_day query integer true "Last day index"
// @Success 200 {array} store.DailyStats "Daily stats"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/daily-stats [get]
func (h *Handler) ListDailyStats(w http.ResponseWriter, r *http.Request) {
	fromDay, err := parseDay(r.URL.Query().Get("from_day"))
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid from_day: %v", err))
		return
	}
	toDay, err := parseDay(r.URL.Query().Get("to_day"))
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid to_day: %v", err))
		return
	}
	if fromDay > toDay {
		respondError(w, http.StatusBadRequest, "from_day cannot be greater than to_day")
		return
	}
	if toDay-fromDay >= int64(h.maxPageSize) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("range cannot span more than %d days", h.maxPageSize))
		return
	}

	stats, err := h.reader.ListDailyStats(r.Context(), fromDay, toDay)
	if err != nil {
		h.log.Errorf("Failed to list daily stats: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list daily stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// pathAddress parses the named path value as an address and writes a 400 response when it is not one.
func pathAddress(w http.ResponseWriter, r *http.Request, name string) (common.Address, bool) {
	value := r.PathValue(name)
	if !common.IsHexAddress(value) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s: '%s' is not an address", name, value))
		return common.Address{}, false
	}

	return common.HexToAddress(value), true
}

// pathID parses the named path value as a uint256 id and returns its decimal form.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id, err := icommon.NormalizeBigID(r.PathValue(name))
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s: %v", name, err))
		return "", false
	}

	return id, true
}

func parseDay(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("value is required")
	}

	day, err := strconv.ParseInt(s, 10, 64)
	if err != nil || day < 0 {
		return 0, fmt.Errorf("must be a non-negative integer")
	}

	return day, nil
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// Encode first so an encoding failure can still change the status
	encoded, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)

	// Headers are already sent, nothing useful to do on a failed write
	_, _ = w.Write(encoded)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}
	respondJSON(w, status, response)
}
