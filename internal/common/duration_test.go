package common_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/credora/indexer/internal/common"
	"github.com/credora/indexer/pkg/config"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{input: "4s", expected: 4 * time.Second},
		{input: "500ms", expected: 500 * time.Millisecond},
		{input: "1h30m", expected: 90 * time.Minute},
		{input: "1d", expected: 24 * time.Hour},
		{input: "7d", expected: 7 * 24 * time.Hour},
		{input: "1d12h", expected: 36 * time.Hour},
		{input: "0d", expected: 0},
		{input: "24h0m0s", expected: 24 * time.Hour},
		{input: "", wantErr: true},
		{input: "30", wantErr: true},
		{input: "d", wantErr: true},
		{input: "1.5d", wantErr: true},
		{input: "-1d", wantErr: true},
		{input: "1d-1h", wantErr: true},
		{input: "1dx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := common.ParseDuration(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestDuration_ConfigFields(t *testing.T) {
	t.Parallel()

	yamlDoc := `
poll_interval: 4s
retry:
  initial_backoff: 250ms
  max_backoff: 1m
`
	var source config.SourceConfig
	require.NoError(t, yaml.Unmarshal([]byte(yamlDoc), &source))
	require.Equal(t, 4*time.Second, source.PollInterval.Duration)
	require.NotNil(t, source.Retry)
	require.Equal(t, 250*time.Millisecond, source.Retry.InitialBackoff.Duration)
	require.Equal(t, time.Minute, source.Retry.MaxBackoff.Duration)

	var engine config.EngineConfig
	require.NoError(t, json.Unmarshal([]byte(`{"retry": {"initial_backoff": "1s", "max_backoff": "30s"}}`), &engine))
	require.Equal(t, time.Second, engine.Retry.InitialBackoff.Duration)
	require.Equal(t, 30*time.Second, engine.Retry.MaxBackoff.Duration)

	var maintenance config.MaintenanceConfig
	_, err := toml.Decode(`check_interval = "1d"`, &maintenance)
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, maintenance.CheckInterval.Duration)
}

func TestDuration_ConfigFieldsRejectInvalid(t *testing.T) {
	t.Parallel()

	var source config.SourceConfig
	require.Error(t, yaml.Unmarshal([]byte("poll_interval: soon\n"), &source))

	var engine config.EngineConfig
	require.Error(t, json.Unmarshal([]byte(`{"retry": {"max_backoff": "30"}}`), &engine))

	var maintenance config.MaintenanceConfig
	_, err := toml.Decode(`check_interval = "daily"`, &maintenance)
	require.Error(t, err)
}

func TestDuration_MarshalRoundTrip(t *testing.T) {
	t.Parallel()

	in := config.MaintenanceConfig{Enabled: true, CheckInterval: common.NewDuration(36 * time.Hour)}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	require.Contains(t, string(data), `"check_interval":"36h0m0s"`)

	var out config.MaintenanceConfig
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, in.CheckInterval, out.CheckInterval)

	data, err = yaml.Marshal(in)
	require.NoError(t, err)

	out = config.MaintenanceConfig{}
	require.NoError(t, yaml.Unmarshal(data, &out))
	require.Equal(t, in.CheckInterval, out.CheckInterval)
}

func TestDuration_JSONSchema(t *testing.T) {
	t.Parallel()

	schema := common.Duration{}.JSONSchema()
	require.Equal(t, "string", schema.Type)
	require.Equal(t, "Duration", schema.Title)
	require.Contains(t, schema.Examples, "1d")

	for _, example := range schema.Examples {
		_, err := common.ParseDuration(example.(string))
		require.NoError(t, err, "schema example %v", example)
	}
}
