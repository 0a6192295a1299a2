package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/goran-ethernal/SwapIndexor/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile_ExampleConfigs(t *testing.T) {
	for _, path := range []string{
		"../../config.example.yaml",
		"../../config.example.json",
		"../../config.example.toml",
	} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			cfg, err := LoadFromFile(path)
			require.NoError(t, err)
			validateConfig(t, cfg, filepath.Ext(path))
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorContains(t, err, "failed to read config file")
}

func TestLoadFromFile_UnsupportedFormat(t *testing.T) {
	_, err := LoadFromFile("config.txt")
	require.Contains(t, err.Error(), "unsupported config file format")
}

func TestLoadFromFile_BlockCacheCountEnvOverride(t *testing.T) {
	t.Setenv("BLOCK_CACHE_COUNT_TESTNET", "42")

	cfg, err := LoadFromFile("../../config.example.yaml")
	require.NoError(t, err)

	testnet, ok := cfg.Network("testnet")
	require.True(t, ok)
	require.Equal(t, 42, testnet.BlockCacheCount)

	mainnet, ok := cfg.Network("mainnet")
	require.True(t, ok)
	require.Equal(t, 2000, mainnet.BlockCacheCount)
}

func TestLoadFromFile_InvalidEnvOverride(t *testing.T) {
	t.Setenv("BLOCK_CACHE_COUNT_MAINNET", "lots")

	_, err := LoadFromFile("../../config.example.yaml")
	require.ErrorContains(t, err, "BLOCK_CACHE_COUNT_MAINNET")
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		ext     string
		data    string
		wantErr string
	}{
		{
			name: "minimal yaml",
			ext:  ".yml",
			data: "networks:\n  - name: regtest\n    rpc_url: http://localhost:19554\n",
		},
		{
			name: "minimal json",
			ext:  ".json",
			data: `{"networks": [{"name": "Regtest ", "rpc_url": "http://localhost:19554"}]}`,
		},
		{
			name: "minimal toml",
			ext:  ".toml",
			data: "[[networks]]\nname = \"regtest\"\nrpc_url = \"http://localhost:19554\"\n",
		},
		{
			name:    "unknown network",
			ext:     ".yaml",
			data:    "networks:\n  - name: devnet\n    rpc_url: http://x\n",
			wantErr: "invalid configuration",
		},
		{
			name:    "malformed json",
			ext:     ".json",
			data:    `{"networks": [`,
			wantErr: "failed to parse json config",
		},
		{
			name:    "unsupported",
			ext:     ".ini",
			data:    "",
			wantErr: "unsupported config file format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load([]byte(tt.data), tt.ext)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Len(t, cfg.Networks, 1)
			require.Equal(t, "regtest", cfg.Networks[0].Name)
			require.Equal(t, 1000, cfg.Networks[0].BlockCacheCount)
			require.Equal(t, 50, cfg.Sync.FetchConcurrency)
		})
	}
}

// validateConfig checks that the loaded config has expected values
func validateConfig(t *testing.T, cfg *config.Config, format string) {
	t.Helper()

	require.Len(t, cfg.Networks, 2, "[%s] two networks expected", format)

	mainnet, ok := cfg.Network("mainnet")
	require.True(t, ok, "[%s] mainnet should be configured", format)
	require.NotEmpty(t, mainnet.RPCURL, "[%s] mainnet.rpc_url should not be empty", format)
	require.True(t, mainnet.ArchiveEnabled(), "[%s] mainnet archive should be enabled", format)
	require.Equal(t, "./data/mainnet.sqlite", mainnet.Archive.DB.Path, "[%s] archive db path", format)
	require.NotEmpty(t, mainnet.Archive.DB.JournalMode, "[%s] db.journal_mode should have default value", format)
	require.True(t, mainnet.Archive.RetentionPolicy.IsEnabled(), "[%s] retention should be enabled", format)

	testnet, ok := cfg.Network("testnet")
	require.True(t, ok, "[%s] testnet should be configured", format)
	require.False(t, testnet.ArchiveEnabled(), "[%s] testnet runs in memory", format)
	require.NotNil(t, testnet.Retry, "[%s] retry defaults should be applied", format)
	require.Equal(t, 5, testnet.Retry.MaxAttempts, "[%s] retry.max_attempts default", format)

	require.Equal(t, time.Second, cfg.Sync.PollInterval.Duration, "[%s] sync.poll_interval", format)
	require.Equal(t, 50, cfg.Sync.FetchConcurrency, "[%s] sync.fetch_concurrency", format)
	require.Equal(t, uint64(10), cfg.Sync.NearTipOffset, "[%s] sync.near_tip_offset", format)
	require.Equal(t, 30*time.Second, cfg.Sync.StopTimeout.Duration, "[%s] sync.stop_timeout", format)

	require.NotNil(t, cfg.API, "[%s] api should be configured", format)
	require.Equal(t, ":8080", cfg.API.ListenAddress, "[%s] api.listen_address", format)

	require.NotNil(t, cfg.Logging, "[%s] logging should be configured", format)
	require.Equal(t, "info", cfg.Logging.GetComponentLevel("synchronizer"), "[%s] synchronizer level", format)
}
