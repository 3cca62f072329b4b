package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/todod/internal/db"
	"github.com/alexanderramin/todod/internal/httpapi"
	"github.com/alexanderramin/todod/internal/logging"
	"github.com/alexanderramin/todod/internal/service"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config

			logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}

			database, err := db.OpenDB(cfg.DB)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer database.Close()

			uow := db.NewSQLiteUnitOfWork(database)
			todos := service.NewTodoService(uow, service.NewLogUseCaseObserver(logger))

			handler, err := httpapi.NewHandler(todos, uow, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("starting server", "addr", cfg.Addr, "db", cfg.DB, "version", app.Version)
			srv := httpapi.NewServer(cfg.Addr, handler, logger, cfg.ShutdownTimeout)
			if err := srv.Run(ctx); err != nil {
				return err
			}
			logger.Info("server stopped")
			return nil
		},
	}
}
