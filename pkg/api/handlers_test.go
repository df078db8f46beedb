package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/credora/indexer/internal/logger"
	"github.com/credora/indexer/pkg/config"
	querymocks "github.com/credora/indexer/pkg/query/mocks"
	"github.com/credora/indexer/pkg/store"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	alice    = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	protocol = common.HexToAddress("0x00000000000000000000000000000000000d3f1a")
)

// newTestAPI returns the fully wired handler chain backed by a mocked reader.
func newTestAPI(t *testing.T) (http.Handler, *querymocks.Reader) {
	t.Helper()

	reader := querymocks.NewReader(t)
	cfg := &config.APIConfig{Enabled: true, MaxPageSize: 100}
	cfg.ApplyDefaults()

	return NewServer(cfg, reader, logger.NewNopLogger()).Handler(), reader
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRespondJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		status         int
		data           any
		expectedBody   string
		expectedStatus int
	}{
		{
			name:           "success with simple data",
			status:         http.StatusOK,
			data:           map[string]string{"message": "success"},
			expectedBody:   `{"message":"success"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "success with empty slice",
			status:         http.StatusOK,
			data:           []*store.Permission{},
			expectedBody:   `[]`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "error status",
			status:         http.StatusBadRequest,
			data:           map[string]string{"error": "bad request"},
			expectedBody:   `{"error":"bad request"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			respondJSON(w, tt.status, tt.data)

			require.Equal(t, tt.expectedStatus, w.Code)
			require.Equal(t, "application/json", w.Header().Get("Content-Type"))
			require.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestRespondJSON_EncodingError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()

	// Channel cannot be JSON encoded
	respondJSON(w, http.StatusOK, make(chan int))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "Failed to encode response")
}

func TestRespondError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respondError(w, http.StatusNotFound, "resource not found")

	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeError(t, w)
	require.Equal(t, "Not Found", resp.Error)
	require.Equal(t, "resource not found", resp.Message)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	t.Run("reports sync progress", func(t *testing.T) {
		t.Parallel()

		h, reader := newTestAPI(t)
		fetched := uint64(120)
		reader.EXPECT().GetSyncState(mock.Anything).Return(&store.SyncState{
			ChainID:          31337,
			LastFetchedBlock: &fetched,
			HasApplied:       true,
			AppliedBlock:     118,
			AppliedLogIndex:  2,
			Mode:             "live",
		}, nil).Once()

		w := get(t, h, "/health")
		require.Equal(t, http.StatusOK, w.Code)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, "ok", resp.Status)
		require.NotNil(t, resp.Sync)
		require.Equal(t, uint64(31337), resp.Sync.ChainID)
		require.Equal(t, uint64(120), *resp.Sync.LastFetchedBlock)
		require.Equal(t, uint64(118), *resp.Sync.LastAppliedBlock)
		require.Equal(t, uint64(2), *resp.Sync.LastAppliedIndex)
		require.Equal(t, "live", resp.Sync.Mode)
	})

	t.Run("nothing applied yet", func(t *testing.T) {
		t.Parallel()

		h, reader := newTestAPI(t)
		reader.EXPECT().GetSyncState(mock.Anything).Return(&store.SyncState{Mode: "backfill"}, nil).Once()

		w := get(t, h, "/health")
		require.Equal(t, http.StatusOK, w.Code)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Nil(t, resp.Sync.LastAppliedBlock)
		require.Nil(t, resp.Sync.LastFetchedBlock)
	})

	t.Run("store unavailable", func(t *testing.T) {
		t.Parallel()

		h, reader := newTestAPI(t)
		reader.EXPECT().GetSyncState(mock.Anything).Return(nil, errors.New("database is locked")).Once()

		w := get(t, h, "/health")
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		require.Contains(t, w.Body.String(), `"status":"unavailable"`)
	})
}

func TestGetUser(t *testing.T) {
	t.Parallel()

	score := uint256.NewInt(720)
	tokenID := "1"

	tests := []struct {
		name           string
		path           string
		setupMock      func(m *querymocks.Reader)
		expectedStatus int
		validate       func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "found",
			path: "/api/v1/users/" + alice.Hex(),
			setupMock: func(m *querymocks.Reader) {
				m.EXPECT().GetUser(mock.Anything, alice).Return(&store.User{
					Address: alice, TokenID: &tokenID, HasActiveSBT: true, CurrentScore: score,
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()

				var u store.User
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
				require.Equal(t, alice, u.Address)
				require.True(t, u.HasActiveSBT)
				require.Equal(t, score, u.CurrentScore)
			},
		},
		{
			name: "lowercase address",
			path: "/api/v1/users/0x00000000000000000000000000000000000a11ce",
			setupMock: func(m *querymocks.Reader) {
				m.EXPECT().GetUser(mock.Anything, alice).Return(&store.User{Address: alice}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			path: "/api/v1/users/" + alice.Hex(),
			setupMock: func(m *querymocks.Reader) {
				m.EXPECT().GetUser(mock.Anything, alice).Return(nil, nil).Once()
			},
			expectedStatus: http.StatusNotFound,
			validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()

				require.Contains(t, decodeError(t, w).Message, "not found")
			},
		},
		{
			name:           "invalid address",
			path:           "/api/v1/users/not-an-address",
			setupMock:      func(m *querymocks.Reader) {},
			expectedStatus: http.StatusBadRequest,
			validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()

				require.Contains(t, decodeError(t, w).Message, "is not an address")
			},
		},
		{
			name: "store error",
			path: "/api/v1/users/" + alice.Hex(),
			setupMock: func(m *querymocks.Reader) {
				m.EXPECT().GetUser(mock.Anything, alice).Return(nil, errors.New("disk I/O error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()

				require.Equal(t, "failed to get user", decodeError(t, w).Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, reader := newTestAPI(t)
			tt.setupMock(reader)

			w := get(t, h, tt.path)
			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.validate != nil {
				tt.validate(t, w)
			}
		})
	}
}

func TestGetScoreUpdates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		query          string
		expectedLimit  int
		expectedStatus int
	}{
		{name: "default limit", query: "", expectedLimit: defaultScoreUpdatesLimit, expectedStatus: http.StatusOK},
		{name: "explicit limit", query: "?limit=5", expectedLimit: 5, expectedStatus: http.StatusOK},
		{name: "max limit", query: "?limit=100", expectedLimit: 100, expectedStatus: http.StatusOK},
		{name: "limit above max", query: "?limit=101", expectedStatus: http.StatusBadRequest},
		{name: "zero limit", query: "?limit=0", expectedStatus: http.StatusBadRequest},
		{name: "non-numeric limit", query: "?limit=abc", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, reader := newTestAPI(t)
			if tt.expectedStatus == http.StatusOK {
				reader.EXPECT().GetScoreUpdates(mock.Anything, alice, tt.expectedLimit).
					Return([]*store.ScoreUpdate{{EventID: "0xabc-0", TokenID: "1", Owner: alice, NewScore: uint256.NewInt(720)}}, nil).Once()
			}

			w := get(t, h, "/api/v1/users/"+alice.Hex()+"/score-updates"+tt.query)
			require.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var updates []store.ScoreUpdate
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updates))
				require.Len(t, updates, 1)
				require.Equal(t, "0xabc-0", updates[0].EventID)
			}
		})
	}
}

func TestGetActivePermissions(t *testing.T) {
	t.Parallel()

	h, reader := newTestAPI(t)
	reader.EXPECT().GetActivePermissions(mock.Anything, alice).Return([]*store.Permission{}, nil).Once()

	w := get(t, h, "/api/v1/users/"+alice.Hex()+"/permissions")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestGetCreditScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		tokenID        string
		expectedID     string
		found          bool
		expectedStatus int
	}{
		{name: "decimal id", tokenID: "42", expectedID: "42", found: true, expectedStatus: http.StatusOK},
		{name: "hex id", tokenID: "0x2a", expectedID: "42", found: true, expectedStatus: http.StatusOK},
		{name: "unknown id", tokenID: "7", expectedID: "7", expectedStatus: http.StatusNotFound},
		{name: "invalid id", tokenID: "forty-two", expectedStatus: http.StatusBadRequest},
		{name: "negative id", tokenID: "-1", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, reader := newTestAPI(t)
			if tt.expectedID != "" {
				var cs *store.CreditScore
				if tt.found {
					cs = &store.CreditScore{TokenID: tt.expectedID, Owner: alice, Score: uint256.NewInt(700)}
				}
				reader.EXPECT().GetCreditScore(mock.Anything, tt.expectedID).Return(cs, nil).Once()
			}

			w := get(t, h, "/api/v1/scores/"+tt.tokenID)
			require.Equal(t, tt.expectedStatus, w.Code)

			if tt.found {
				var cs store.CreditScore
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cs))
				require.Equal(t, tt.expectedID, cs.TokenID)
			}
		})
	}
}

func TestGetPermission(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		h, reader := newTestAPI(t)
		reader.EXPECT().GetPermission(mock.Anything, alice, protocol).Return(&store.Permission{
			Key:          store.PermissionKey(alice, protocol),
			User:         alice,
			Protocol:     protocol,
			MaxRequests:  new(uint256.Int).SetAllOne(),
			UsedRequests: uint256.NewInt(1),
			IsActive:     true,
		}, nil).Once()

		w := get(t, h, "/api/v1/permissions/"+alice.Hex()+"/"+protocol.Hex())
		require.Equal(t, http.StatusOK, w.Code)

		var p store.Permission
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		require.Equal(t, store.PermissionKey(alice, protocol), p.Key)
		require.Equal(t, uint256.NewInt(1), p.UsedRequests)
		require.Equal(t, new(uint256.Int).SetAllOne(), p.MaxRequests)
		require.Contains(t, w.Body.String(), `"maxRequests":"115792089237316195423570985008687907853269984665640564039457584007913129639935"`)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		h, reader := newTestAPI(t)
		reader.EXPECT().GetPermission(mock.Anything, alice, protocol).Return(nil, nil).Once()

		w := get(t, h, "/api/v1/permissions/"+alice.Hex()+"/"+protocol.Hex())
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid protocol", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestAPI(t)

		w := get(t, h, "/api/v1/permissions/"+alice.Hex()+"/0x123")
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Contains(t, decodeError(t, w).Message, "invalid protocol")
	})
}

func TestEntityLookups_NotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		setupMock func(m *querymocks.Reader)
	}{
		{
			name: "protocol",
			path: "/api/v1/protocols/" + protocol.Hex(),
			setupMock: func(m *querymocks.Reader) {
				m.EXPECT().GetProtocolStats(mock.Anything, protocol).Return(nil, nil).Once()
			},
		},
		{
			name: "oracle",
			path: "/api/v1/oracles/" + alice.Hex(),
			setupMock: func(m *querymocks.Reader) {
				m.EXPECT().GetOracle(mock.Anything, alice).Return(nil, nil).Once()
			},
		},
		{
			name: "score request",
			path: "/api/v1/requests/0x10",
			setupMock: func(m *querymocks.Reader) {
				m.EXPECT().GetScoreRequest(mock.Anything, "16").Return(nil, nil).Once()
			},
		},
		{
			name: "daily stats",
			path: "/api/v1/daily-stats/19675",
			setupMock: func(m *querymocks.Reader) {
				m.EXPECT().GetDailyStats(mock.Anything, int64(19675)).Return(nil, nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, reader := newTestAPI(t)
			tt.setupMock(reader)

			w := get(t, h, tt.path)
			require.Equal(t, http.StatusNotFound, w.Code)
			require.Equal(t, "Not Found", decodeError(t, w).Error)
		})
	}
}

func TestEntityLookups_Found(t *testing.T) {
	t.Parallel()

	fulfilledAt := uint64(1_700_000_100)

	tests := []struct {
		name      string
		path      string
		setupMock func(m *querymocks.Reader)
		expected  string
	}{
		{
			name: "protocol",
			path: "/api/v1/protocols/" + protocol.Hex(),
			setupMock: func(m *querymocks.Reader) {
				m.EXPECT().GetProtocolStats(mock.Anything, protocol).Return(&store.ProtocolStats{
					Protocol: protocol, TotalPermissionsReceived: 3, ActivePermissions: 1, TotalAccessUsed: 9,
				}, nil).Once()
			},
			expected: `"totalAccessUsed":9`,
		},
		{
			name: "oracle",
			path: "/api/v1/oracles/" + alice.Hex(),
			setupMock: func(m *querymocks.Reader) {
				m.EXPECT().GetOracle(mock.Anything, alice).Return(&store.Oracle{
					Address: alice, IsActive: true, UpdatesSubmitted: 4,
				}, nil).Once()
			},
			expected: `"updatesSubmitted":4`,
		},
		{
			name: "score request",
			path: "/api/v1/requests/16",
			setupMock: func(m *querymocks.Reader) {
				m.EXPECT().GetScoreRequest(mock.Anything, "16").Return(&store.ScoreRequest{
					RequestID: "16", User: alice, Status: store.RequestFulfilled, FulfilledAt: &fulfilledAt,
				}, nil).Once()
			},
			expected: `"status":"FULFILLED"`,
		},
		{
			name: "daily stats",
			path: "/api/v1/daily-stats/19675",
			setupMock: func(m *querymocks.Reader) {
				m.EXPECT().GetDailyStats(mock.Anything, int64(19675)).Return(&store.DailyStats{
					Day: 19675, Date: 19675 * 86400, MintCount: 2,
				}, nil).Once()
			},
			expected: `"mintCount":2`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, reader := newTestAPI(t)
			tt.setupMock(reader)

			w := get(t, h, tt.path)
			require.Equal(t, http.StatusOK, w.Code)
			require.Contains(t, w.Body.String(), tt.expected)
		})
	}
}

func TestListDailyStats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		query          string
		setupMock      func(m *querymocks.Reader)
		expectedStatus int
		errContains    string
	}{
		{
			name:  "valid range",
			query: "?from_day=10&to_day=12",
			setupMock: func(m *querymocks.Reader) {
				m.EXPECT().ListDailyStats(mock.Anything, int64(10), int64(12)).Return([]*store.DailyStats{
					{Day: 10, Date: 864000}, {Day: 12, Date: 1036800},
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "single day",
			query: "?from_day=10&to_day=10",
			setupMock: func(m *querymocks.Reader) {
				m.EXPECT().ListDailyStats(mock.Anything, int64(10), int64(10)).Return([]*store.DailyStats{}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{name: "missing from_day", query: "?to_day=12", expectedStatus: http.StatusBadRequest, errContains: "from_day"},
		{name: "missing to_day", query: "?from_day=12", expectedStatus: http.StatusBadRequest, errContains: "to_day"},
		{name: "negative day", query: "?from_day=-1&to_day=12", expectedStatus: http.StatusBadRequest, errContains: "non-negative"},
		{name: "inverted range", query: "?from_day=12&to_day=10", expectedStatus: http.StatusBadRequest, errContains: "greater"},
		{name: "range too wide", query: "?from_day=0&to_day=100", expectedStatus: http.StatusBadRequest, errContains: "span"},
		{
			name:  "store error",
			query: "?from_day=1&to_day=2",
			setupMock: func(m *querymocks.Reader) {
				m.EXPECT().ListDailyStats(mock.Anything, int64(1), int64(2)).Return(nil, errors.New("boom")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, reader := newTestAPI(t)
			if tt.setupMock != nil {
				tt.setupMock(reader)
			}

			w := get(t, h, "/api/v1/daily-stats"+tt.query)
			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.errContains != "" {
				require.Contains(t, decodeError(t, w).Message, tt.errContains)
			}
		})
	}
}

func TestGetDailyStats_InvalidDay(t *testing.T) {
	t.Parallel()

	h, _ := newTestAPI(t)

	w := get(t, h, "/api/v1/daily-stats/yesterday")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()

	h, _ := newTestAPI(t)

	w := get(t, h, "/api/v1/indexers")
	require.Equal(t, http.StatusNotFound, w.Code)
}
