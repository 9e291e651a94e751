package cli

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/divah21/stage-one-backend/internal/logger"
	"github.com/divah21/stage-one-backend/internal/observability"
	"github.com/divah21/stage-one-backend/internal/server"
	"github.com/divah21/stage-one-backend/internal/service"
	"github.com/divah21/stage-one-backend/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long:  "Run the HTTP server until SIGINT or SIGTERM. Stored strings live only as long as the process.",
		Args:  cobra.NoArgs,
		Run:   runServe,
	}

	cmd.Flags().String("host", "", "Listen host (overrides server.host)")
	cmd.Flags().IntP("port", "p", 0, "Listen port (overrides server.port)")
	cmd.Flags().StringP("backend", "b", "", "Store backend: memory or sqlite (overrides store.backend)")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	if cmd.Flags().Changed("host") {
		cfg.Server.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("backend") {
		cfg.Store.Backend, _ = cmd.Flags().GetString("backend")
	}
	defer logger.Cleanup()

	st, err := store.Open(cfg.Store.Backend)
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()
	logger.Logger.Infow("store opened", logger.FieldBackend, cfg.Store.Backend)

	svc := service.New(st, logger.Logger)

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.New(svc.Stats)
	}

	srv := server.New(server.Options{
		Service:     svc,
		Logger:      logger.Logger,
		Metrics:     metrics,
		MetricsPath: cfg.Metrics.Path,
		Mode:        cfg.Server.Mode,
	})

	ln, err := net.Listen("tcp", cfg.Server.Addr())
	if err != nil {
		exitErr("listen", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(ln)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		exitErr("serve", err)
	}
	logger.Logger.Infow("server stopped")
}
