// Package storage opens the repository backend selected in the configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/kutbudev/yaru/internal/config"
	"github.com/kutbudev/yaru/internal/domain/tag"
	"github.com/kutbudev/yaru/internal/domain/task"
	"github.com/kutbudev/yaru/internal/storage/jsonfile"
	"github.com/kutbudev/yaru/internal/storage/memory"
	"github.com/kutbudev/yaru/pkg/repository"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Backend is an open pair of repositories.
type Backend struct {
	Driver      string
	Location    string
	Tasks       task.Repository
	Tags        tag.Repository
	healthCheck func(context.Context) error
	closeFn     func() error
}

// Open connects to the configured backend. Callers must Close it.
func Open(cfg *config.Config, log *zap.Logger) (*Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := cfg.Storage
	b := &Backend{Driver: s.Driver}

	switch s.Driver {
	case config.DriverSQLite, config.DriverPostgres:
		cfg.ResolvePassword()
		db, err := repository.NewDatabase(&cfg.Storage, log, cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		b.Tasks = repository.NewTaskRepository(db.DB)
		b.Tags = repository.NewTagRepository(db.DB)
		b.healthCheck = db.Health
		b.closeFn = db.Close
		if s.Driver == config.DriverSQLite {
			b.Location = s.SQLiteFile()
		} else {
			b.Location = cfg.Redacted().Storage.PostgresDSN()
		}
	case config.DriverJSON:
		path, err := s.ResolvedJSONPath()
		if err != nil {
			return nil, err
		}
		store, err := jsonfile.Open(afero.NewOsFs(), path)
		if err != nil {
			return nil, err
		}
		b.Tasks = store.Tasks()
		b.Tags = store.Tags()
		b.Location = path
	case config.DriverMemory:
		b.Tasks = memory.NewTaskRepository()
		b.Tags = memory.NewTagRepository()
		b.Location = "memory"
	default:
		return nil, fmt.Errorf("unknown storage driver %q", s.Driver)
	}

	log.Debug("storage opened", zap.String("driver", b.Driver), zap.String("location", b.Location))
	return b, nil
}

// Health reports whether the backend is reachable.
func (b *Backend) Health(ctx context.Context) error {
	if b.healthCheck == nil {
		return nil
	}
	return b.healthCheck(ctx)
}

// Close releases the backend.
func (b *Backend) Close() error {
	if b.closeFn == nil {
		return nil
	}
	return b.closeFn()
}
