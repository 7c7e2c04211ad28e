package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SourceType identifies the card source backend
type SourceType string

const (
	SourceTypeAPI      SourceType = "api"
	SourceTypeScryfall SourceType = "scryfall"
	SourceTypeCatalog  SourceType = "catalog"
)

// Config holds all application configuration
type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Browse  BrowseConfig  `mapstructure:"browse"`
	Cache   CacheConfig   `mapstructure:"cache"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SourceConfig selects and configures where cards come from
type SourceConfig struct {
	Type                 SourceType `mapstructure:"type"`                   // "api", "scryfall" or "catalog"
	URL                  string     `mapstructure:"url"`                    // Listing service base URL (api only)
	MaxRetries           int        `mapstructure:"max_retries"`            // Retries on 5xx (api only)
	CatalogFile          string     `mapstructure:"catalog_file"`           // YAML/TOML/JSON card list (catalog only)
	Match                string     `mapstructure:"match"`                  // "substring" or "fuzzy" (catalog only)
	ScryfallDefaultQuery string     `mapstructure:"scryfall_default_query"` // Query used when search is empty
}

// BrowseConfig holds pagination and search behaviour
type BrowseConfig struct {
	Limit          int           `mapstructure:"limit"`
	Debounce       time.Duration `mapstructure:"debounce"`
	LoadMore       string        `mapstructure:"load_more"` // "replace" or "append"
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// CacheConfig holds the on-disk store configuration
type CacheConfig struct {
	Dir string        `mapstructure:"dir"` // Empty keeps everything in memory
	TTL time.Duration `mapstructure:"ttl"` // Zero disables page caching
}

// UIConfig holds UI configuration
type UIConfig struct {
	Columns int  `mapstructure:"columns"`
	Preview bool `mapstructure:"preview"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Type:                 SourceTypeAPI,
			URL:                  "http://localhost:3000",
			MaxRetries:           2,
			Match:                "substring",
			ScryfallDefaultQuery: "game:paper",
		},
		Browse: BrowseConfig{
			Limit:          10,
			Debounce:       300 * time.Millisecond,
			LoadMore:       "replace",
			RequestTimeout: 15 * time.Second,
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
			TTL: 5 * time.Minute,
		},
		UI: UIConfig{
			Columns: 3,
			Preview: true,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cardgrid", "cardgrid.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "cardgrid", "cardgrid.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cardgrid")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "cardgrid")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "cardgrid", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "cardgrid", "cache")
	}
}

// LoadConfig loads configuration from file and environment. An empty path
// searches the default config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides: CARDGRID_SOURCE_URL, CARDGRID_BROWSE_LIMIT, ...
	v.SetEnvPrefix("CARDGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	registerDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	cfg.Logging.File = expandHome(cfg.Logging.File)
	cfg.Source.CatalogFile = expandHome(cfg.Source.CatalogFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// registerDefaults makes every key known to viper so AutomaticEnv can
// override keys that are absent from the config file
func registerDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("source.type", string(cfg.Source.Type))
	v.SetDefault("source.url", cfg.Source.URL)
	v.SetDefault("source.max_retries", cfg.Source.MaxRetries)
	v.SetDefault("source.catalog_file", cfg.Source.CatalogFile)
	v.SetDefault("source.match", cfg.Source.Match)
	v.SetDefault("source.scryfall_default_query", cfg.Source.ScryfallDefaultQuery)

	v.SetDefault("browse.limit", cfg.Browse.Limit)
	v.SetDefault("browse.debounce", cfg.Browse.Debounce)
	v.SetDefault("browse.load_more", cfg.Browse.LoadMore)
	v.SetDefault("browse.request_timeout", cfg.Browse.RequestTimeout)

	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)

	v.SetDefault("ui.columns", cfg.UI.Columns)
	v.SetDefault("ui.preview", cfg.UI.Preview)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate checks values that would otherwise fail later in confusing ways
func (c *Config) Validate() error {
	switch c.Source.Type {
	case SourceTypeAPI:
		if c.Source.URL == "" {
			return fmt.Errorf("source.url is required for the api source")
		}
	case SourceTypeScryfall, SourceTypeCatalog:
	default:
		return fmt.Errorf("unknown source.type %q", c.Source.Type)
	}

	if c.Browse.Limit < 1 {
		return fmt.Errorf("browse.limit must be at least 1, got %d", c.Browse.Limit)
	}
	if c.Browse.Debounce < 0 {
		return fmt.Errorf("browse.debounce must not be negative")
	}
	if c.Browse.RequestTimeout <= 0 {
		return fmt.Errorf("browse.request_timeout must be positive, got %s", c.Browse.RequestTimeout)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	if c.UI.Columns < 1 {
		c.UI.Columns = 1
	}
	return nil
}

// SourceIdentity returns a string identifying the configured source, used to
// keep caches of different sources apart
func (c *Config) SourceIdentity() string {
	switch c.Source.Type {
	case SourceTypeAPI:
		return string(c.Source.Type) + ":" + c.Source.URL
	case SourceTypeCatalog:
		return string(c.Source.Type) + ":" + c.Source.CatalogFile
	default:
		return string(c.Source.Type)
	}
}

// ClearCache removes the configured cache directory with every stored
// location and page. Memory-only configurations have nothing to clear.
func (c *Config) ClearCache() error {
	if c.Cache.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(c.Cache.Dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
