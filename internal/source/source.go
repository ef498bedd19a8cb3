// Package source builds the article source selected by configuration and
// owns the connections behind it.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/blogdex/internal/config"
	dbRedis "github.com/kailas-cloud/blogdex/internal/db/redis"
	"github.com/kailas-cloud/blogdex/internal/db/sqlite"
	domarticle "github.com/kailas-cloud/blogdex/internal/domain/article"
	articlerepo "github.com/kailas-cloud/blogdex/internal/repository/article"
	"github.com/kailas-cloud/blogdex/internal/usecase/catalog"
)

// ErrNotPersistent is returned by Save on read-only sources (seed, file).
var ErrNotPersistent = errors.New("source is read-only")

// Saver writes a whole collection into a persistent source.
type Saver interface {
	Save(ctx context.Context, articles []domarticle.Article) error
}

// Handle is an opened source with its optional store.
type Handle struct {
	Driver string
	Source catalog.Source
	// Pinger is nil for sources without a backing store.
	Pinger catalog.Pinger
	saver  Saver
	close  func()
}

// Save writes articles into the source, or returns ErrNotPersistent.
func (h *Handle) Save(ctx context.Context, articles []domarticle.Article) error {
	if h.saver == nil {
		return fmt.Errorf("driver %s: %w", h.Driver, ErrNotPersistent)
	}
	return h.saver.Save(ctx, articles)
}

// Close releases the underlying connection, if any.
func (h *Handle) Close() {
	if h.close != nil {
		h.close()
	}
}

// Open builds the source for cfg. Network stores are waited on for up to
// cfg.ReadinessTimeout seconds.
func Open(ctx context.Context, cfg config.SourceConfig, logger *zap.Logger) (*Handle, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Driver {
	case config.DriverSeed, "":
		return &Handle{Driver: config.DriverSeed, Source: articlerepo.NewSeedSource()}, nil

	case config.DriverFile:
		return &Handle{Driver: cfg.Driver, Source: articlerepo.NewFileSource(cfg.Path)}, nil

	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite source: %w", err)
		}
		src := articlerepo.NewSQLSource(store.DB())
		logger.Info("Opened SQLite source", zap.String("path", cfg.Path))
		return &Handle{Driver: cfg.Driver, Source: src, Pinger: store, saver: src, close: store.Close}, nil

	case config.DriverRedis, config.DriverValkey:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
		}
		timeout := time.Duration(cfg.ReadinessTimeout) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		if err := store.WaitForReady(ctx, timeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
		}
		src := articlerepo.NewKVSource(store, cfg.KeyPrefix)
		logger.Info("Connected to database",
			zap.String("driver", cfg.Driver),
			zap.Strings("addrs", cfg.Addrs),
			zap.String("key", src.Key()),
		)
		return &Handle{Driver: cfg.Driver, Source: src, Pinger: src, saver: src, close: store.Close}, nil

	default:
		return nil, fmt.Errorf("unknown source driver %q", cfg.Driver)
	}
}
