package blogdex

import (
	"go.uber.org/zap"

	"github.com/kailas-cloud/blogdex/internal/config"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	source   config.SourceConfig
	articles []Article
	inMemory bool
	logger   *zap.Logger
}

// WithArticles serves the given articles, in order, without any store.
func WithArticles(articles ...Article) Option {
	return optionFunc(func(c *clientConfig) {
		c.articles = articles
		c.inMemory = true
	})
}

// WithSeed serves the built-in sample collection. This is the default.
func WithSeed() Option {
	return optionFunc(func(c *clientConfig) {
		c.source = config.SourceConfig{Driver: config.DriverSeed}
		c.inMemory = false
	})
}

// WithFile reads the collection from a YAML or JSON file.
func WithFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.source = config.SourceConfig{Driver: config.DriverFile, Path: path}
		c.inMemory = false
	})
}

// WithSQLite reads the collection from a SQLite database file.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.source = config.SourceConfig{Driver: config.DriverSQLite, Path: path}
		c.inMemory = false
	})
}

// WithRedis reads the collection from a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.source = kvSource(config.DriverRedis, addr, password, c.source.KeyPrefix)
		c.inMemory = false
	})
}

// WithValkey reads the collection from a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.source = kvSource(config.DriverValkey, addr, password, c.source.KeyPrefix)
		c.inMemory = false
	})
}

// WithKeyPrefix sets the Redis/Valkey key prefix. Defaults to "blogdex:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.source.KeyPrefix = prefix
	})
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

func kvSource(driver, addr, password, prefix string) config.SourceConfig {
	return config.SourceConfig{
		Driver:           driver,
		Addrs:            []string{addr},
		Password:         password,
		KeyPrefix:        prefix,
		ReadinessTimeout: 10,
	}
}
