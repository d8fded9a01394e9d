package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"briefy/internal/server"
)

func serveCmd(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(root.configFile)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := app.startup(ctx, true); err != nil {
				return err
			}
			defer app.shutdown(context.Background())

			if addr == "" {
				addr = app.cfg.HTTP.Addr
			}
			srv := server.New(server.Config{
				Addr:        addr,
				Origins:     app.cfg.HTTP.Origins(),
				JWTSecret:   app.cfg.HTTP.JWTSecret,
				ServiceName: app.cfg.Telemetry.ServiceName,
				FontPath:    app.cfg.Export.FontPath,
			}, app.svc, app.gateway, app.log)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.Run(gctx)
			})
			g.Go(func() error {
				// Connectivity is only reported; the API serves regardless.
				if app.gateway.Validate() != nil {
					return nil
				}
				pingCtx, cancel := context.WithTimeout(gctx, 30*time.Second)
				defer cancel()
				if err := app.gateway.Ping(pingCtx); err != nil {
					app.log.Error("AI provider check failed", "provider", app.gateway.Provider(), "error", err)
					return nil
				}
				app.log.Info("AI provider reachable", "provider", app.gateway.Provider(), "model", app.gateway.Model())
				return nil
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from HTTP_ADDR)")
	return cmd
}
