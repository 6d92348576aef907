package commands

import (
	"fmt"

	"github.com/kutbudev/yaru/internal/app"
	"github.com/kutbudev/yaru/internal/config"
	"github.com/kutbudev/yaru/internal/logger"
	"github.com/kutbudev/yaru/internal/storage"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// runtime holds what a command needs once configuration is loaded.
type runtime struct {
	cfg      *config.Config
	log      *zap.Logger
	backend  *storage.Backend
	services *app.Services
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.Bool("verbose") {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func openRuntime(c *cli.Context) (*runtime, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	backend, err := storage.Open(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}
	return &runtime{
		cfg:      cfg,
		log:      log,
		backend:  backend,
		services: app.New(backend.Tasks, backend.Tags, log, nil),
	}, nil
}

func (r *runtime) close() {
	if err := r.backend.Close(); err != nil {
		r.log.Warn("failed to close storage", zap.Error(err))
	}
	_ = r.log.Sync()
}

// withServices opens the runtime for the duration of fn.
func withServices(c *cli.Context, fn func(rt *runtime) error) error {
	rt, err := openRuntime(c)
	if err != nil {
		return err
	}
	defer rt.close()
	return fn(rt)
}
