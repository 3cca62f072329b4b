// Package cli implements the todod command line: the HTTP server and a
// thin client for the /tasks/ API.
package cli

import (
	"github.com/alexanderramin/todod/internal/config"
	"github.com/spf13/cobra"
)

// App carries state shared by all subcommands.
type App struct {
	// Version is reported by `todod version`.
	Version string

	// Config is populated before any subcommand runs.
	Config config.Config

	configPath string
}

// NewRootCmd creates the top-level "todod" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "todod",
		Short:         "To-do list HTTP service and client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(app.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			app.Config = cfg
			return nil
		},
	}

	def := config.Default()
	pf := root.PersistentFlags()
	pf.StringVar(&app.configPath, "config", "", "Path to a YAML config file")
	pf.String("db", def.DB, "SQLite database path")
	pf.String("addr", def.Addr, "HTTP listen address")
	pf.String("server", def.Server, "Base URL of the todod server")
	pf.String("log-level", def.Log.Level, "Log level (debug, info, warn, error)")
	pf.String("log-format", def.Log.Format, "Log format (auto, text, json)")

	root.AddCommand(
		newServeCmd(app),
		newTaskCmd(app),
		newVersionCmd(app),
	)

	return root
}
