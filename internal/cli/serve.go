package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/campus-explorer/internal/clock"
	"github.com/evcraddock/campus-explorer/internal/config"
	"github.com/evcraddock/campus-explorer/internal/logging"
	"github.com/evcraddock/campus-explorer/internal/web"
)

func newServeCmd() *cobra.Command {
	var (
		port    int
		devMode bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the JSON API server. Settings come from --config, CE_* environment variables and flags.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("dev") {
				cfg.Server.DevMode = devMode
			}
			if flagDB != "" {
				cfg.Database.Path = flagDB
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd, cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")
	cmd.Flags().BoolVar(&devMode, "dev", false, "human-readable debug logging")

	return cmd
}

func runServe(cmd *cobra.Command, cfg *config.Config) error {
	logging.Setup(cfg.Server.DevMode)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	database, err := openDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer closeDB(database)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := web.NewServer(database, clock.System{}, loc)
	return srv.ListenAndServe(ctx, cfg.Addr())
}
