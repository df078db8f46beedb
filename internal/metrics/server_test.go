package metrics

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/credora/indexer/internal/logger"
	"github.com/credora/indexer/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestServer_Disabled(t *testing.T) {
	t.Parallel()

	s := NewServer(&config.MetricsConfig{Enabled: false}, logger.NewNopLogger())
	require.NoError(t, s.Start(context.Background()))
	require.Nil(t, s.Addr())
	require.NoError(t, s.Stop(context.Background()))
}

func TestServer_ServesMetrics(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewServer(&config.MetricsConfig{
		Enabled:       true,
		ListenAddress: "127.0.0.1:0",
		Path:          "/metrics",
	}, logger.NewNopLogger())
	require.NoError(t, s.Start(ctx))
	defer func() {
		require.NoError(t, s.Stop(context.Background()))
	}()

	EventAppliedInc("ScoreMinted")
	HandlerWarningInc("ScoreUpdated", "missing_referent")

	resp, err := http.Get("http://" + s.Addr().String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `credora_indexer_events_applied_total{kind="ScoreMinted"}`)
	require.Contains(t, string(body), "credora_indexer_handler_warnings_total")
	require.Contains(t, string(body), "credora_indexer_uptime_seconds")

	resp, err = http.Get("http://" + s.Addr().String() + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
