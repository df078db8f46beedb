package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/credora/indexer/pkg/config"
	"github.com/stretchr/testify/require"
)

const (
	validSBT        = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	validPermission = "0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9"
	validOracle     = "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0"
)

func TestLoadFromYAML(t *testing.T) {
	cfg, err := LoadFromYAML("../../config.example.yaml")
	if err != nil {
		t.Fatalf("failed to load YAML config: %v", err)
	}

	validateConfig(t, cfg, "YAML")
	require.NotNil(t, cfg.API.RateLimit)
	require.Equal(t, 100, cfg.API.RateLimit.Burst)
	require.Equal(t, "debug", cfg.Logging.GetComponentLevel("event-source"))
}

func TestLoadFromJSON(t *testing.T) {
	cfg, err := LoadFromJSON("../../config.example.json")
	if err != nil {
		t.Fatalf("failed to load JSON config: %v", err)
	}

	validateConfig(t, cfg, "JSON")
}

func TestLoadFromTOML(t *testing.T) {
	cfg, err := LoadFromTOML("../../config.example.toml")
	if err != nil {
		t.Fatalf("failed to load TOML config: %v", err)
	}

	validateConfig(t, cfg, "TOML")
}

func TestLoadFromFile_AllFormats(t *testing.T) {
	for _, path := range []string{
		"../../config.example.yaml",
		"../../config.example.json",
		"../../config.example.toml",
	} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			cfg, err := LoadFromFile(path)
			require.NoError(t, err)
			validateConfig(t, cfg, "auto-detected "+filepath.Ext(path))
		})
	}
}

func TestLoadFromFile_UnsupportedFormat(t *testing.T) {
	_, err := LoadFromFile("config.txt")
	require.ErrorContains(t, err, "unsupported config file format: .txt (supported: .json, .toml, .yaml, .yml)")
}

func TestLoadFromFile_EnvOverrides(t *testing.T) {
	const otherSBT = "0x0000000000000000000000000000000000005b70"

	t.Setenv(RPCURLEnv, "https://rpc.example.org/key")
	t.Setenv(DBPathEnv, "/var/lib/credora/indexer.db")
	t.Setenv(ScoreSBTEnv, otherSBT)
	t.Setenv(ScoreOracleEnv, "  ")

	cfg, err := LoadFromFile("../../config.example.toml")
	require.NoError(t, err)
	require.Equal(t, "https://rpc.example.org/key", cfg.Source.RPCURL)
	require.Equal(t, "/var/lib/credora/indexer.db", cfg.DB.Path)
	require.Equal(t, otherSBT, cfg.Contracts.ScoreSBT)
	require.Equal(t, validPermission, cfg.Contracts.PermissionManager)
	// blank values do not override
	require.Equal(t, validOracle, cfg.Contracts.ScoreOracle)
}

func TestLoadFromFile_EnvOverrideIsValidated(t *testing.T) {
	t.Setenv(PermissionManagerEnv, "0x1234")

	_, err := LoadFromFile("../../config.example.yaml")
	require.ErrorContains(t, err, "contracts.permission_manager")
}

func TestLoadFromFile_UnknownKeys(t *testing.T) {
	tests := []struct {
		file    string
		content string
		wantErr string
	}{
		{
			file:    "typo.yaml",
			content: "source:\n  rpc_url: http://x\n  poll_intervall: 4s\n",
			wantErr: "poll_intervall",
		},
		{
			file:    "typo.json",
			content: `{"source": {"rpc_url": "http://x"}, "contracts": {"score_sbtt": "` + validSBT + `"}}`,
			wantErr: "score_sbtt",
		},
		{
			file:    "typo.toml",
			content: "[db]\npath = \"a.db\"\n\n[db.maintenance]\ncheck_intervall = \"30m\"\n",
			wantErr: "db.maintenance.check_intervall",
		},
	}

	for _, tt := range tests {
		t.Run(filepath.Ext(tt.file), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := LoadFromFile(path)
			require.ErrorContains(t, err, "failed to parse")
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorContains(t, err, "failed to read config file")
}

func TestLoadFromFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source:\n  rpc_url: http://x\ndb:\n  path: a.db\n"), 0o600))

	_, err := LoadFromFile(path)
	require.ErrorContains(t, err, "invalid configuration")
	require.ErrorContains(t, err, "contracts.score_sbt")
}

// validateConfig checks that the loaded config has expected values
func validateConfig(t *testing.T, cfg *config.Config, format string) {
	t.Helper()

	require.NotEmpty(t, cfg.Source.RPCURL, "[%s] source.rpc_url should not be empty", format)
	require.Equal(t, uint64(2000), cfg.Source.ChunkSize, "[%s] source.chunk_size", format)
	require.Equal(t, "latest", cfg.Source.Finality, "[%s] source.finality", format)
	require.Equal(t, 4*time.Second, cfg.Source.PollInterval.Duration, "[%s] source.poll_interval", format)
	require.NotNil(t, cfg.Source.Retry, "[%s] source.retry", format)
	require.Equal(t, 500*time.Millisecond, cfg.Source.Retry.InitialBackoff.Duration, "[%s] retry backoff", format)

	require.Equal(t, validSBT, cfg.Contracts.ScoreSBT, "[%s] contracts.score_sbt", format)
	require.Equal(t, validPermission, cfg.Contracts.PermissionManager, "[%s] contracts.permission_manager", format)
	require.Equal(t, validOracle, cfg.Contracts.ScoreOracle, "[%s] contracts.score_oracle", format)

	require.NotEmpty(t, cfg.DB.Path, "[%s] db.path should not be empty", format)
	require.Equal(t, "WAL", cfg.DB.JournalMode, "[%s] db.journal_mode should have default value", format)
	require.Equal(t, "NORMAL", cfg.DB.Synchronous, "[%s] db.synchronous should have default value", format)
	require.NotNil(t, cfg.DB.Maintenance, "[%s] db.maintenance", format)
	require.True(t, cfg.DB.Maintenance.Enabled, "[%s] db.maintenance.enabled", format)
	require.Equal(t, 30*time.Minute, cfg.DB.Maintenance.CheckInterval.Duration, "[%s] db.maintenance.check_interval", format)
	require.Equal(t, "TRUNCATE", cfg.DB.Maintenance.WALCheckpointMode, "[%s] db.maintenance.wal_checkpoint_mode", format)

	require.Equal(t, 5, cfg.Engine.Retry.MaxAttempts, "[%s] engine.retry.max_attempts", format)

	require.NotNil(t, cfg.API, "[%s] api", format)
	require.True(t, cfg.API.Enabled, "[%s] api.enabled", format)
	require.Equal(t, 1000, cfg.API.MaxPageSize, "[%s] api.max_page_size default", format)

	require.NotNil(t, cfg.Logging, "[%s] logging", format)
	require.Equal(t, "info", cfg.Logging.GetDefaultLevel(), "[%s] logging.default_level", format)

	require.NotNil(t, cfg.Metrics, "[%s] metrics", format)
	require.Equal(t, "/metrics", cfg.Metrics.Path, "[%s] metrics.path", format)
}

func validConfig() *config.Config {
	return &config.Config{
		Source: config.SourceConfig{RPCURL: "https://test.com"},
		Contracts: config.ContractsConfig{
			ScoreSBT:          validSBT,
			PermissionManager: validPermission,
			ScoreOracle:       validOracle,
		},
		DB: config.DatabaseConfig{Path: "./test.db"},
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	require.Equal(t, uint64(5000), cfg.Source.ChunkSize)
	require.Equal(t, "finalized", cfg.Source.Finality)
	require.Equal(t, 12*time.Second, cfg.Source.PollInterval.Duration)
	require.Nil(t, cfg.Source.Retry)

	require.Equal(t, "WAL", cfg.DB.JournalMode)
	require.Equal(t, "NORMAL", cfg.DB.Synchronous)
	require.Equal(t, 5000, cfg.DB.BusyTimeout)
	require.Equal(t, 25, cfg.DB.MaxOpenConnections)

	require.Equal(t, 5, cfg.Engine.Retry.MaxAttempts)
	require.Equal(t, time.Second, cfg.Engine.Retry.InitialBackoff.Duration)
	require.Equal(t, 30*time.Second, cfg.Engine.Retry.MaxBackoff.Duration)

	require.NotNil(t, cfg.Logging)
	require.Equal(t, "info", cfg.Logging.DefaultLevel)
	require.Nil(t, cfg.API)
	require.Nil(t, cfg.Metrics)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(cfg *config.Config) {},
		},
		{
			name:    "missing rpc_url",
			mutate:  func(cfg *config.Config) { cfg.Source.RPCURL = "" },
			wantErr: "source: rpc_url is required",
		},
		{
			name:    "invalid finality",
			mutate:  func(cfg *config.Config) { cfg.Source.Finality = "invalid" },
			wantErr: "source: finality",
		},
		{
			name:    "invalid contract address",
			mutate:  func(cfg *config.Config) { cfg.Contracts.ScoreOracle = "0x1234" },
			wantErr: "contracts.score_oracle",
		},
		{
			name:    "missing db path",
			mutate:  func(cfg *config.Config) { cfg.DB.Path = "" },
			wantErr: "db: path is required",
		},
		{
			name:    "invalid journal mode",
			mutate:  func(cfg *config.Config) { cfg.DB.JournalMode = "FAST" },
			wantErr: "db: journal_mode",
		},
		{
			name: "invalid checkpoint mode",
			mutate: func(cfg *config.Config) {
				cfg.DB.Maintenance = &config.MaintenanceConfig{Enabled: true, WALCheckpointMode: "SOMETIMES"}
				cfg.DB.Maintenance.ApplyDefaults()
			},
			wantErr: "db: maintenance: wal_checkpoint_mode",
		},
		{
			name: "engine backoff inverted",
			mutate: func(cfg *config.Config) {
				cfg.Engine.Retry.MaxBackoff.Duration = time.Millisecond
			},
			wantErr: "engine.retry",
		},
		{
			name: "unknown logging component",
			mutate: func(cfg *config.Config) {
				cfg.Logging.ComponentLevels["reorg-detector"] = "debug"
			},
			wantErr: "unknown component",
		},
		{
			name: "metrics path without slash",
			mutate: func(cfg *config.Config) {
				cfg.Metrics = &config.MetricsConfig{Enabled: true, ListenAddress: ":9090", Path: "metrics"}
			},
			wantErr: "metrics: path must start with '/'",
		},
		{
			name: "api rate limit not positive",
			mutate: func(cfg *config.Config) {
				cfg.API = &config.APIConfig{Enabled: true, RateLimit: &config.RateLimitConfig{RequestsPerSecond: 0}}
				cfg.API.ApplyDefaults()
			},
			wantErr: "api: rate_limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.ApplyDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
