package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/yaru/api"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand runs the REST API until interrupted.
func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Aliases: []string{"a"}, Usage: "Listen address (overrides server.addr)"},
			&cli.StringFlag{Name: "mode", Usage: "Gin mode: debug, release or test (overrides server.mode)"},
		},
		Action: func(c *cli.Context) error {
			return withServices(c, func(rt *runtime) error {
				addr := rt.cfg.Server.Addr
				if c.IsSet("addr") {
					addr = c.String("addr")
				}
				mode := rt.cfg.Server.Mode
				if c.IsSet("mode") {
					mode = c.String("mode")
				}
				gin.SetMode(mode)

				srv := &http.Server{
					Addr:              addr,
					Handler:           api.NewRouter(rt.services, rt.backend.Health, rt.log),
					ReadHeaderTimeout: 10 * time.Second,
					ReadTimeout:       30 * time.Second,
					WriteTimeout:      30 * time.Second,
				}

				ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				errCh := make(chan error, 1)
				go func() {
					errCh <- srv.ListenAndServe()
				}()
				fmt.Fprintf(c.App.Writer, "🚀 yaru API listening on http://%s (storage: %s)\n", addr, rt.backend.Driver)

				select {
				case err := <-errCh:
					if err != nil && !errors.Is(err, http.ErrServerClosed) {
						return fmt.Errorf("failed to start server: %w", err)
					}
					return nil
				case <-ctx.Done():
				}

				rt.log.Info("shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					rt.log.Error("server forced to shutdown", zap.Error(err))
					return err
				}
				return nil
			})
		},
	}
}
