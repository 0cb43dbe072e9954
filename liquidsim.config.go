package liquidsim

import (
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk engine configuration:
//
//	max_depth: 50
//	snippets:
//	  dir: ./snippets
//	  extension: .liquid
//	  cache_ttl: 5m
//	postgres:
//	  dsn: postgres://localhost/shop?sslmode=disable
//	  table: liquidsim_snippets
//	globals:
//	  shop: { name: Example }
//	exposed_globals: [shop]
type Config struct {
	MaxDepth       *int           `yaml:"max_depth"`
	Snippets       SnippetsConfig `yaml:"snippets"`
	Postgres       PostgresConfig `yaml:"postgres"`
	Globals        map[string]any `yaml:"globals"`
	ExposedGlobals []string       `yaml:"exposed_globals"`
}

// SnippetsConfig selects a snippets directory.
type SnippetsConfig struct {
	Dir       string        `yaml:"dir"`
	Extension string        `yaml:"extension"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

// PostgresConfig selects a snippets table.
type PostgresConfig struct {
	DSN         string `yaml:"dsn"`
	Table       string `yaml:"table"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError(ErrMsgConfigRead, path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses YAML config data. path is only used in errors.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, NewConfigError(ErrMsgConfigParse, path, err)
	}
	return &cfg, nil
}

// Options converts the config into engine options. The returned closer
// releases resolver resources (database connections) and is never nil.
// A configured Postgres DSN takes precedence over a snippets directory.
func (c *Config) Options(logger *zap.Logger) ([]Option, func() error, error) {
	opts := []Option{WithLogger(logger)}
	closer := func() error { return nil }

	if c.MaxDepth != nil {
		opts = append(opts, WithMaxDepth(*c.MaxDepth))
	}
	if len(c.Globals) > 0 {
		opts = append(opts, WithGlobals(c.Globals))
	}
	if len(c.ExposedGlobals) > 0 {
		opts = append(opts, WithExposedGlobals(c.ExposedGlobals...))
	}

	switch {
	case c.Postgres.DSN != StringValueEmpty:
		pgConfig := DefaultPostgresResolverConfig()
		pgConfig.ConnectionString = c.Postgres.DSN
		pgConfig.AutoMigrate = c.Postgres.AutoMigrate
		pgConfig.Logger = logger
		if c.Postgres.Table != StringValueEmpty {
			pgConfig.Table = c.Postgres.Table
		}
		resolver, err := NewPostgresResolver(pgConfig)
		if err != nil {
			return nil, closer, err
		}
		opts = append(opts, WithSnippetResolver(c.cached(resolver, logger)))
		closer = resolver.Close

	case c.Snippets.Dir != StringValueEmpty:
		resolver, err := NewFilesystemResolver(FilesystemResolverConfig{
			Root:      c.Snippets.Dir,
			Extension: c.Snippets.Extension,
			Logger:    logger,
		})
		if err != nil {
			return nil, closer, err
		}
		opts = append(opts, WithSnippetResolver(c.cached(resolver, logger)))
	}

	if logger != nil {
		logger.Debug(LogMsgConfigLoaded, zap.Int(LogFieldLength, len(opts)))
	}
	return opts, closer, nil
}

// cached wraps resolver in a CachingResolver when a cache TTL is set.
func (c *Config) cached(resolver SnippetResolver, logger *zap.Logger) SnippetResolver {
	if c.Snippets.CacheTTL <= 0 {
		return resolver
	}
	return NewCachingResolver(resolver, CacheConfig{TTL: c.Snippets.CacheTTL}, logger)
}
