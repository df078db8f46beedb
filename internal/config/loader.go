package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	pkgconfig "github.com/credora/indexer/pkg/config"
	"gopkg.in/yaml.v3"
)

// Environment variables that take precedence over the config file. They keep
// deployment specific values such as keyed RPC endpoints out of versioned files.
const (
	RPCURLEnv            = "CREDORA_RPC_URL"
	DBPathEnv            = "CREDORA_DB_PATH"
	ScoreSBTEnv          = "CREDORA_SCORE_SBT"
	PermissionManagerEnv = "CREDORA_PERMISSION_MANAGER"
	ScoreOracleEnv       = "CREDORA_SCORE_ORACLE"
)

// decodeFunc decodes a config document strictly: keys that map to no field are an error,
// so a misspelled contract or maintenance key cannot silently fall back to a default.
type decodeFunc func(data []byte, cfg *pkgconfig.Config) error

var decoders = map[string]decodeFunc{
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".json": decodeJSON,
	".toml": decodeTOML,
}

// LoadFromFile loads configuration from a file, picking the decoder by extension.
func LoadFromFile(path string) (*pkgconfig.Config, error) {
	ext := strings.ToLower(filepath.Ext(path))

	decode, ok := decoders[ext]
	if !ok {
		supported := make([]string, 0, len(decoders))
		for e := range decoders {
			supported = append(supported, e)
		}
		slices.Sort(supported)

		return nil, fmt.Errorf("unsupported config file format: %s (supported: %s)", ext, strings.Join(supported, ", "))
	}

	return load(path, decode)
}

// LoadFromYAML loads configuration from a YAML file.
func LoadFromYAML(path string) (*pkgconfig.Config, error) {
	return load(path, decodeYAML)
}

// LoadFromJSON loads configuration from a JSON file.
func LoadFromJSON(path string) (*pkgconfig.Config, error) {
	return load(path, decodeJSON)
}

// LoadFromTOML loads configuration from a TOML file.
func LoadFromTOML(path string) (*pkgconfig.Config, error) {
	return load(path, decodeTOML)
}

func load(path string, decode decodeFunc) (*pkgconfig.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg pkgconfig.Config
	if err := decode(data, &cfg); err != nil {
		return nil, err
	}

	applyEnv(&cfg)
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func decodeYAML(data []byte, cfg *pkgconfig.Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return nil
}

func decodeJSON(data []byte, cfg *pkgconfig.Config) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse JSON config: %w", err)
	}
	return nil
}

func decodeTOML(data []byte, cfg *pkgconfig.Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("failed to parse TOML config: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("failed to parse TOML config: unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func applyEnv(cfg *pkgconfig.Config) {
	overrides := []struct {
		env    string
		target *string
	}{
		{env: RPCURLEnv, target: &cfg.Source.RPCURL},
		{env: DBPathEnv, target: &cfg.DB.Path},
		{env: ScoreSBTEnv, target: &cfg.Contracts.ScoreSBT},
		{env: PermissionManagerEnv, target: &cfg.Contracts.PermissionManager},
		{env: ScoreOracleEnv, target: &cfg.Contracts.ScoreOracle},
	}

	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.env)); v != "" {
			*o.target = v
		}
	}
}
