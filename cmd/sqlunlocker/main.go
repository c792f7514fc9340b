package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/sqlunlocker/sqlunlocker/internal/config"
	"github.com/sqlunlocker/sqlunlocker/internal/oracle"
	"github.com/sqlunlocker/sqlunlocker/internal/workspace"
)

const name = "sqlunlocker"

var authors = []string{"sqlunlocker contributors"}

func main() {
	v := viper.New()
	var configFile string

	rootCmd := &cobra.Command{
		Use:   name,
		Short: "Merge all Oracle Workspace Manager workspaces into LIVE",
		Long: `sqlunlocker connects to an Oracle database and merges every Workspace
Manager workspace other than LIVE back into LIVE, releasing the locks
those workspaces hold.

If no Oracle Instant Client is installed, the client bundled into the
binary is extracted to a temporary directory for the duration of the run.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("%s %s by %s\n", name, config.Version, strings.Join(authors, ", "))
			if err := config.ReadFile(v, configFile); err != nil {
				workspace.PrintError(os.Stdout, err)
				return err
			}
			return run(cmd.Context(), config.Load(v))
		},
	}

	f := rootCmd.Flags()
	f.StringVar(&configFile, "config", "", "path to a config file (yaml, toml or json)")
	f.String("db-host", "", "database host")
	f.Int("db-port", 1521, "database listener port")
	f.String("db-service", "", "database service name")
	f.String("db-user", "", "database user")
	f.String("db-password", "", "database password")
	f.String("driver", oracle.DefaultDriver, "connection driver ("+strings.Join(oracle.Drivers(), ", ")+")")
	f.String("log-level", "info", "log level (debug, info, warn, error)")
	f.Bool("dry-run", false, "count workspaces without merging them")

	// Viper keys use underscores so they match the env var suffix after
	// stripping the SQLUNLOCKER_ prefix.
	for _, flag := range []string{"db-host", "db-port", "db-service", "db-user", "db-password", "driver", "log-level", "dry-run"} {
		_ = v.BindPFlag(strings.ReplaceAll(flag, "-", "_"), f.Lookup(flag))
	}
	config.BindEnv(v)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))

	driver, err := oracle.LookupDriver(cfg.Driver)
	if err != nil {
		workspace.PrintError(os.Stdout, err)
		return err
	}

	client := oracle.New(cfg.DBHost, cfg.DBPort, cfg.DBService, cfg.DBUser, cfg.DBPassword,
		oracle.WithDriver(driver),
		oracle.WithLogger(logger),
	)
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("cannot clean up extracted client", "err", err)
		}
	}()

	// A failed bootstrap is not fatal: the driver's connect error tells the
	// operator how to install the client by hand.
	if err := client.EnsureRuntime(); err != nil {
		logger.Warn("cannot stage bundled client", "err", err)
	}

	connect := func(ctx context.Context) (workspace.Conn, error) {
		conn, err := client.Connect(ctx)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
	return workspace.Run(ctx, connect, workspace.Options{DryRun: cfg.DryRun}, os.Stdout)
}
