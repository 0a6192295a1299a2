package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goran-ethernal/SwapIndexor/internal/common"
	"github.com/goran-ethernal/SwapIndexor/internal/logger"
)

// BlockCacheCountEnvPrefix prefixes the per-network window capacity override,
// e.g. BLOCK_CACHE_COUNT_MAINNET=2000.
const BlockCacheCountEnvPrefix = "BLOCK_CACHE_COUNT_"

var validNetworks = []string{"mainnet", "testnet", "regtest"}

// Config represents the complete configuration for the SwapIndexor.
type Config struct {
	// Networks lists the chains to index. Each one gets its own synchronizer, window and index.
	Networks []NetworkConfig `yaml:"networks" json:"networks" toml:"networks"`

	// Sync contains the synchronizer loop settings shared by all networks
	Sync SyncConfig `yaml:"sync" json:"sync" toml:"sync"`

	// Pagination contains the swap history query settings
	Pagination PaginationConfig `yaml:"pagination" json:"pagination" toml:"pagination"`

	// API contains the HTTP API configuration
	API *APIConfig `yaml:"api,omitempty" json:"api,omitempty" toml:"api,omitempty"`

	// Logging contains logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" toml:"logging,omitempty"`

	// Metrics contains Prometheus metrics configuration
	Metrics *MetricsConfig `yaml:"metrics,omitempty" json:"metrics,omitempty" toml:"metrics,omitempty"`
}

// NetworkConfig represents one indexed chain.
type NetworkConfig struct {
	// Name selects the address encoding: "mainnet", "testnet" or "regtest"
	Name string `yaml:"name" json:"name" toml:"name"`

	// RPCURL is the node JSON-RPC endpoint URL (credentials may be embedded)
	RPCURL string `yaml:"rpc_url" json:"rpc_url" toml:"rpc_url"`

	// BlockCacheCount is the chain window capacity in blocks.
	// Overridden by BLOCK_CACHE_COUNT_<NAME> when set.
	BlockCacheCount int `yaml:"block_cache_count" json:"block_cache_count" toml:"block_cache_count"`

	// Retry contains RPC retry configuration with exponential backoff
	Retry *RetryConfig `yaml:"retry,omitempty" json:"retry,omitempty" toml:"retry,omitempty"`

	// Archive enables the persisted variant: blocks are copied into a local store and the
	// synchronizer and history queries read from it
	Archive *ArchiveConfig `yaml:"archive,omitempty" json:"archive,omitempty" toml:"archive,omitempty"`
}

// ApplyDefaults sets default values for optional network configuration fields.
func (n *NetworkConfig) ApplyDefaults() {
	n.Name = common.ToLowerWithTrim(n.Name)
	if n.BlockCacheCount == 0 {
		n.BlockCacheCount = 1000
	}
	if n.Retry == nil {
		n.Retry = &RetryConfig{}
	}
	n.Retry.ApplyDefaults()

	if n.Archive != nil {
		n.Archive.ApplyDefaults(n.Name)
	}
}

// ApplyEnv applies BLOCK_CACHE_COUNT_<NAME> if present.
func (n *NetworkConfig) ApplyEnv(lookup func(string) (string, bool)) error {
	key := BlockCacheCountEnvPrefix + strings.ToUpper(n.Name)
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}

	count, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	n.BlockCacheCount = count
	return nil
}

// Validate checks if the network configuration is valid.
func (n *NetworkConfig) Validate() error {
	if !slices.Contains(validNetworks, n.Name) {
		return fmt.Errorf("name: must be one of: %s", strings.Join(validNetworks, ", "))
	}
	if n.RPCURL == "" {
		return fmt.Errorf("rpc_url is required")
	}
	if n.BlockCacheCount < 1 {
		return fmt.Errorf("block_cache_count must be positive")
	}
	if n.Archive != nil {
		if err := n.Archive.Validate(); err != nil {
			return fmt.Errorf("archive: %w", err)
		}
	}
	return nil
}

// ArchiveEnabled reports whether the network runs the persisted variant.
func (n *NetworkConfig) ArchiveEnabled() bool {
	return n.Archive != nil && n.Archive.Enabled
}

// RetryConfig represents RPC retry configuration with exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial request)
	MaxAttempts int `yaml:"max_attempts" json:"max_attempts" toml:"max_attempts"`

	// InitialBackoff is the initial backoff duration before first retry
	InitialBackoff common.Duration `yaml:"initial_backoff" json:"initial_backoff" toml:"initial_backoff"`

	// MaxBackoff is the maximum backoff duration
	MaxBackoff common.Duration `yaml:"max_backoff" json:"max_backoff" toml:"max_backoff"`

	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64 `yaml:"backoff_multiplier" json:"backoff_multiplier" toml:"backoff_multiplier"`
}

// ApplyDefaults sets default values for retry configuration.
func (r *RetryConfig) ApplyDefaults() {
	if r.MaxAttempts == 0 {
		r.MaxAttempts = 5
	}
	if r.InitialBackoff.Duration == 0 {
		r.InitialBackoff = common.NewDuration(1 * time.Second)
	}
	if r.MaxBackoff.Duration == 0 {
		r.MaxBackoff = common.NewDuration(30 * time.Second) //nolint:mnd
	}
	if r.BackoffMultiplier == 0 {
		r.BackoffMultiplier = 2.0
	}
}

// SyncConfig configures the synchronizer loop.
type SyncConfig struct {
	// PollInterval is how often a synchronization cycle starts
	PollInterval common.Duration `yaml:"poll_interval" json:"poll_interval" toml:"poll_interval"`

	// FetchConcurrency caps the block fetches in flight during catch-up
	FetchConcurrency int `yaml:"fetch_concurrency" json:"fetch_concurrency" toml:"fetch_concurrency"`

	// NearTipOffset is how many blocks below the chain height catch-up stops
	NearTipOffset uint64 `yaml:"near_tip_offset" json:"near_tip_offset" toml:"near_tip_offset"`

	// CatchUpRetryBackoff is the first delay before re-fetching a failed catch-up block.
	// Delays grow up to CatchUpRetryMaxBackoff; attempts are unbounded.
	CatchUpRetryBackoff common.Duration `yaml:"catch_up_retry_backoff" json:"catch_up_retry_backoff" toml:"catch_up_retry_backoff"` //nolint:lll

	// CatchUpRetryMaxBackoff caps the catch-up retry delay
	CatchUpRetryMaxBackoff common.Duration `yaml:"catch_up_retry_max_backoff" json:"catch_up_retry_max_backoff" toml:"catch_up_retry_max_backoff"` //nolint:lll

	// StopTimeout bounds how long Stop waits for an in-flight cycle
	StopTimeout common.Duration `yaml:"stop_timeout" json:"stop_timeout" toml:"stop_timeout"`

	// StopPollInterval is how often Stop checks whether the cycle finished
	StopPollInterval common.Duration `yaml:"stop_poll_interval" json:"stop_poll_interval" toml:"stop_poll_interval"`
}

// ApplyDefaults sets default values for optional sync configuration fields.
func (s *SyncConfig) ApplyDefaults() {
	if s.PollInterval.Duration == 0 {
		s.PollInterval = common.NewDuration(time.Second)
	}
	if s.FetchConcurrency == 0 {
		s.FetchConcurrency = 50
	}
	if s.NearTipOffset == 0 {
		s.NearTipOffset = 10
	}
	if s.CatchUpRetryBackoff.Duration == 0 {
		s.CatchUpRetryBackoff = common.NewDuration(100 * time.Millisecond) //nolint:mnd
	}
	if s.CatchUpRetryMaxBackoff.Duration == 0 {
		s.CatchUpRetryMaxBackoff = common.NewDuration(5 * time.Second) //nolint:mnd
	}
	if s.StopTimeout.Duration == 0 {
		s.StopTimeout = common.NewDuration(30 * time.Second) //nolint:mnd
	}
	if s.StopPollInterval.Duration == 0 {
		s.StopPollInterval = common.NewDuration(time.Second)
	}
}

// Validate checks if the sync configuration is valid.
func (s *SyncConfig) Validate() error {
	if s.FetchConcurrency < 1 {
		return fmt.Errorf("fetch_concurrency must be positive")
	}
	if s.CatchUpRetryMaxBackoff.Duration < s.CatchUpRetryBackoff.Duration {
		return fmt.Errorf("catch_up_retry_max_backoff must not be lower than catch_up_retry_backoff")
	}
	return nil
}

// PaginationConfig configures the swap history query.
type PaginationConfig struct {
	// StartHeight is where a history scan without cursor begins
	StartHeight uint64 `yaml:"start_height" json:"start_height" toml:"start_height"`

	// DefaultLimit is the page size used when the request carries none
	DefaultLimit int `yaml:"default_limit" json:"default_limit" toml:"default_limit"`
}

// ApplyDefaults sets default values for optional pagination configuration fields.
func (p *PaginationConfig) ApplyDefaults() {
	if p.DefaultLimit == 0 {
		p.DefaultLimit = 20
	}
}

// ArchiveConfig configures the persisted block store of a network.
type ArchiveConfig struct {
	// Enabled turns the store and its archiver on
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// StartHeight is the first block archived. Zero starts block_cache_count blocks below the tip.
	StartHeight uint64 `yaml:"start_height" json:"start_height" toml:"start_height"`

	// BatchSize is the number of blocks archived per iteration
	BatchSize int `yaml:"batch_size" json:"batch_size" toml:"batch_size"`

	// PollInterval is how often the archiver checks for new blocks once caught up
	PollInterval common.Duration `yaml:"poll_interval" json:"poll_interval" toml:"poll_interval"`

	// DB contains database configuration for the store
	DB DatabaseConfig `yaml:"db" json:"db" toml:"db"`

	// RetentionPolicy contains optional database retention policy settings
	RetentionPolicy *RetentionPolicyConfig `yaml:"retention_policy,omitempty" json:"retention_policy,omitempty" toml:"retention_policy,omitempty"` //nolint:lll

	// Maintenance contains optional database maintenance settings
	Maintenance *MaintenanceConfig `yaml:"maintenance,omitempty" json:"maintenance,omitempty" toml:"maintenance,omitempty"`
}

// ApplyDefaults sets default values for optional archive configuration fields.
func (a *ArchiveConfig) ApplyDefaults(network string) {
	if a.BatchSize == 0 {
		a.BatchSize = 100
	}
	if a.PollInterval.Duration == 0 {
		a.PollInterval = common.NewDuration(time.Second)
	}
	if a.DB.Path == "" {
		a.DB.Path = fmt.Sprintf("./data/%s.sqlite", network)
	}
	a.DB.ApplyDefaults()

	if a.Maintenance != nil {
		a.Maintenance.ApplyDefaults()
	}
}

// Validate checks if the archive configuration is valid.
func (a *ArchiveConfig) Validate() error {
	if a.BatchSize < 1 {
		return fmt.Errorf("batch_size must be positive")
	}
	if err := a.DB.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if a.Maintenance != nil {
		if err := a.Maintenance.Validate(); err != nil {
			return fmt.Errorf("maintenance: %w", err)
		}
	}
	return nil
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	// Path is the file path to the SQLite database
	Path string `yaml:"path" json:"path" toml:"path"`

	// JournalMode sets the SQLite journal mode (e.g., "WAL", "DELETE")
	// WAL mode is recommended for better concurrency
	JournalMode string `yaml:"journal_mode" json:"journal_mode" toml:"journal_mode"`

	// Synchronous sets the synchronization level ("FULL", "NORMAL", "OFF")
	// NORMAL provides a good balance between safety and performance
	Synchronous string `yaml:"synchronous" json:"synchronous" toml:"synchronous"`

	// BusyTimeout is the time in milliseconds to wait when the database is locked
	BusyTimeout int `yaml:"busy_timeout" json:"busy_timeout" toml:"busy_timeout"`

	// CacheSize is the size of the page cache (negative = KB, positive = pages)
	CacheSize int `yaml:"cache_size" json:"cache_size" toml:"cache_size"`

	// MaxOpenConnections is the maximum number of open database connections
	MaxOpenConnections int `yaml:"max_open_connections" json:"max_open_connections" toml:"max_open_connections"`

	// MaxIdleConnections is the maximum number of idle connections in the pool
	MaxIdleConnections int `yaml:"max_idle_connections" json:"max_idle_connections" toml:"max_idle_connections"`

	// EnableForeignKeys enables foreign key constraint enforcement
	EnableForeignKeys bool `yaml:"enable_foreign_keys" json:"enable_foreign_keys" toml:"enable_foreign_keys"`
}

// ApplyDefaults sets default values for optional database configuration fields.
func (d *DatabaseConfig) ApplyDefaults() {
	if d.JournalMode == "" {
		d.JournalMode = "WAL"
	}
	if d.Synchronous == "" {
		d.Synchronous = "NORMAL"
	}
	if d.BusyTimeout == 0 {
		d.BusyTimeout = 5000
	}
	if d.CacheSize == 0 {
		d.CacheSize = 10000
	}
	if d.MaxOpenConnections == 0 {
		d.MaxOpenConnections = 25
	}
	if d.MaxIdleConnections == 0 {
		d.MaxIdleConnections = 5
	}
}

// Validate checks if the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	if d.Path == "" {
		return fmt.Errorf("path is required")
	}
	if d.JournalMode != "" &&
		!slices.Contains([]string{"WAL", "DELETE", "TRUNCATE", "PERSIST", "MEMORY"}, d.JournalMode) {
		return fmt.Errorf("journal_mode must be one of: WAL, DELETE, TRUNCATE, PERSIST, MEMORY")
	}
	if d.Synchronous != "" && !slices.Contains([]string{"FULL", "NORMAL", "OFF"}, d.Synchronous) {
		return fmt.Errorf("synchronous must be one of: FULL, NORMAL, OFF")
	}
	return nil
}

// RetentionPolicyConfig represents database retention policy settings.
type RetentionPolicyConfig struct {
	// MaxDBSizeMB is the maximum database size in megabytes (0 = unlimited)
	MaxDBSizeMB uint64 `yaml:"max_db_size_mb" json:"max_db_size_mb" toml:"max_db_size_mb"`

	// MaxBlocks is the maximum number of blocks to retain (0 = unlimited)
	MaxBlocks uint64 `yaml:"max_blocks" json:"max_blocks" toml:"max_blocks"`
}

// IsEnabled returns true if retention policy should be applied
func (r *RetentionPolicyConfig) IsEnabled() bool {
	return r != nil && (r.MaxDBSizeMB > 0 || r.MaxBlocks > 0)
}

// MaintenanceConfig configures database maintenance behavior.
type MaintenanceConfig struct {
	// Enabled controls whether background maintenance runs
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// CheckInterval is how often to run maintenance (e.g., "30m", "1h")
	CheckInterval common.Duration `yaml:"check_interval" json:"check_interval" toml:"check_interval"`

	// VacuumOnStartup runs maintenance immediately on startup
	VacuumOnStartup bool `yaml:"vacuum_on_startup" json:"vacuum_on_startup" toml:"vacuum_on_startup"`

	// WALCheckpointMode controls the WAL checkpoint aggressiveness
	// Options: PASSIVE, FULL, RESTART, TRUNCATE
	WALCheckpointMode string `yaml:"wal_checkpoint_mode" json:"wal_checkpoint_mode" toml:"wal_checkpoint_mode"`

	// VacuumAfterPrunedBlocks compacts the archive once retention pruned this many blocks
	// since the last run. Zero turns prune-triggered maintenance off.
	VacuumAfterPrunedBlocks uint64 `yaml:"vacuum_after_pruned_blocks" json:"vacuum_after_pruned_blocks" toml:"vacuum_after_pruned_blocks"` //nolint:lll
}

// ApplyDefaults sets default values for optional maintenance configuration fields.
func (m *MaintenanceConfig) ApplyDefaults() {
	if m.CheckInterval.Duration == 0 {
		m.CheckInterval = common.NewDuration(30 * time.Minute) //nolint:mnd
	}
	if m.WALCheckpointMode == "" {
		m.WALCheckpointMode = "TRUNCATE"
	}
}

// Validate checks if the maintenance configuration is valid.
func (m *MaintenanceConfig) Validate() error {
	if m.WALCheckpointMode != "" {
		validModes := []string{"PASSIVE", "FULL", "RESTART", "TRUNCATE"}
		if !slices.Contains(validModes, m.WALCheckpointMode) {
			return fmt.Errorf("wal_checkpoint_mode: must be one of: PASSIVE, FULL, RESTART, TRUNCATE")
		}
	}

	return nil
}

// APIConfig configures the HTTP API server.
type APIConfig struct {
	// Enabled controls whether the API server is started
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the API server to
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// ReadTimeout is the maximum duration for reading a request
	ReadTimeout common.Duration `yaml:"read_timeout" json:"read_timeout" toml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout common.Duration `yaml:"write_timeout" json:"write_timeout" toml:"write_timeout"`

	// IdleTimeout is the maximum time to wait for the next request on keep-alive connections
	IdleTimeout common.Duration `yaml:"idle_timeout" json:"idle_timeout" toml:"idle_timeout"`

	// CORS contains cross-origin settings
	CORS CORSConfig `yaml:"cors" json:"cors" toml:"cors"`
}

// CORSConfig configures cross-origin resource sharing.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled" json:"enabled" toml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins" toml:"allowed_origins"`
}

// ApplyDefaults sets default values for optional API configuration fields.
func (a *APIConfig) ApplyDefaults() {
	if a.ListenAddress == "" {
		a.ListenAddress = ":8080"
	}
	if a.ReadTimeout.Duration == 0 {
		a.ReadTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.WriteTimeout.Duration == 0 {
		a.WriteTimeout = common.NewDuration(60 * time.Second) //nolint:mnd
	}
	if a.IdleTimeout.Duration == 0 {
		a.IdleTimeout = common.NewDuration(60 * time.Second) //nolint:mnd
	}
	if a.CORS.Enabled && len(a.CORS.AllowedOrigins) == 0 {
		a.CORS.AllowedOrigins = []string{"*"}
	}
}

// Validate checks if the API configuration is valid.
func (a *APIConfig) Validate() error {
	if a.Enabled && a.ListenAddress == "" {
		return fmt.Errorf("listen_address is required when the API is enabled")
	}
	return nil
}

// LoggingConfig configures logging behavior with per-component log levels.
type LoggingConfig struct {
	// DefaultLevel is the default log level for all components
	// Options: "debug", "info", "warn", "error"
	DefaultLevel string `yaml:"default_level" json:"default_level" toml:"default_level"`

	// Development enables development mode (stack traces, console encoder)
	Development bool `yaml:"development" json:"development" toml:"development"`

	// ComponentLevels sets log levels for specific components
	// Available components:
	//   - synchronizer: Window synchronization and reorg repair
	//   - swap-detector: Swap classification
	//   - rpc: Node JSON-RPC client
	//   - store: Persisted block store
	//   - archiver: Store population
	//   - api: HTTP API
	//   - maintenance: Database maintenance
	ComponentLevels map[string]string `yaml:"component_levels,omitempty" json:"component_levels,omitempty" toml:"component_levels,omitempty"` //nolint:lll
}

// ApplyDefaults sets default values for optional logging configuration fields.
func (l *LoggingConfig) ApplyDefaults() {
	if l.DefaultLevel == "" {
		l.DefaultLevel = "info"
	}
	if l.ComponentLevels == nil {
		l.ComponentLevels = make(map[string]string)
	}
}

// Validate checks if the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	if l.DefaultLevel != "" {
		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(l.DefaultLevel)]; !valid {
			return fmt.Errorf("logging.default_level: must be one of: debug, info, warn, error")
		}
	}

	for component, level := range l.ComponentLevels {
		if _, validComponent := common.AllComponents[common.ToLowerWithTrim(component)]; !validComponent {
			return fmt.Errorf("logging.component_levels: unknown component '%s'", component)
		}

		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(level)]; !valid {
			return fmt.Errorf("logging.component_levels[%s]: must be one of: debug, info, warn, error", component)
		}
	}

	return nil
}

// GetComponentLevel returns the log level for a specific component.
// Falls back to DefaultLevel if no component-specific level is set.
func (l *LoggingConfig) GetComponentLevel(component string) string {
	if level, ok := l.ComponentLevels[component]; ok {
		return common.ToLowerWithTrim(level)
	}
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// GetDefaultLevel returns the default log level.
func (l *LoggingConfig) GetDefaultLevel() string {
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// IsDevelopment returns whether development mode is enabled.
func (l *LoggingConfig) IsDevelopment() bool {
	return l.Development
}

// MetricsConfig configures Prometheus metrics exposition.
type MetricsConfig struct {
	// Enabled controls whether metrics collection and HTTP endpoint are active
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the metrics HTTP server to
	// Format: "host:port" or ":port"
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// Path is the HTTP path where metrics are exposed
	Path string `yaml:"path" json:"path" toml:"path"`
}

// ApplyDefaults sets default values for optional metrics configuration fields.
func (m *MetricsConfig) ApplyDefaults() {
	if m.ListenAddress == "" {
		m.ListenAddress = ":9090"
	}
	if m.Path == "" {
		m.Path = "/metrics"
	}
}

// Validate checks if the metrics configuration is valid.
func (m *MetricsConfig) Validate() error {
	if m.Enabled {
		if m.ListenAddress == "" {
			return fmt.Errorf("listen_address is required when metrics are enabled")
		}
		if m.Path == "" {
			return fmt.Errorf("path is required when metrics are enabled")
		}
		if m.Path[0] != '/' {
			return fmt.Errorf("path must start with '/'")
		}
	}
	return nil
}

// ApplyDefaults sets default values for optional configuration fields.
func (c *Config) ApplyDefaults() {
	for i := range c.Networks {
		c.Networks[i].ApplyDefaults()
	}

	c.Sync.ApplyDefaults()
	c.Pagination.ApplyDefaults()

	if c.API != nil {
		c.API.ApplyDefaults()
	}

	if c.Logging == nil {
		c.Logging = &LoggingConfig{}
	}
	c.Logging.ApplyDefaults()

	if c.Metrics != nil {
		c.Metrics.ApplyDefaults()
	}
}

// ApplyEnv applies environment overrides using os.LookupEnv.
func (c *Config) ApplyEnv() error {
	return c.ApplyEnvFrom(os.LookupEnv)
}

// ApplyEnvFrom applies environment overrides read through lookup.
func (c *Config) ApplyEnvFrom(lookup func(string) (string, bool)) error {
	for i := range c.Networks {
		if err := c.Networks[i].ApplyEnv(lookup); err != nil {
			return fmt.Errorf("networks[%d] (%s): %w", i, c.Networks[i].Name, err)
		}
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Networks) == 0 {
		return fmt.Errorf("at least one network must be configured")
	}

	names := make(map[string]bool, len(c.Networks))
	for i := range c.Networks {
		network := &c.Networks[i]
		if err := network.Validate(); err != nil {
			return fmt.Errorf("networks[%d] (%s): %w", i, network.Name, err)
		}
		if names[network.Name] {
			return fmt.Errorf("networks[%d]: duplicate network '%s'", i, network.Name)
		}
		names[network.Name] = true
	}

	if err := c.Sync.Validate(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	if c.API != nil {
		if err := c.API.Validate(); err != nil {
			return fmt.Errorf("api: %w", err)
		}
	}

	if c.Logging != nil {
		if err := c.Logging.Validate(); err != nil {
			return err
		}
	}

	if c.Metrics != nil {
		if err := c.Metrics.Validate(); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	return nil
}

// Network returns the configuration of the named network.
func (c *Config) Network(name string) (*NetworkConfig, bool) {
	for i := range c.Networks {
		if c.Networks[i].Name == name {
			return &c.Networks[i], true
		}
	}
	return nil, false
}
