package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwops/mwops/config/mwenv"
	"github.com/mwops/mwops/internal/logging"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mwops",
		Short:   "Platform deployment controller CLI",
		Long:    "mwops manages platform records and drives their deployment onto Kubernetes clusters.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultDB := os.Getenv(mwenv.DBURLEnvKey)
	if defaultDB == "" {
		defaultDB = "sqlite:./mwops.db"
	}
	cmd.PersistentFlags().String("db-url", defaultDB,
		"Database URL (env MWOPS_DB_URL) (sqlite:/path/to.db | postgres://)")
	cmd.PersistentFlags().String("log-format", "text", "Log format (text|json) (env MWOPS_LOG_FORMAT)")
	cmd.PersistentFlags().String("log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR) (env MWOPS_LOG_LEVEL)")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		format, _ := c.Flags().GetString("log-format")
		if env := os.Getenv(mwenv.LogFormatEnvKey); env != "" { // env overrides flag
			format = env
		}
		level, _ := c.Flags().GetString("log-level")
		if env := os.Getenv(mwenv.LogLevelEnvKey); env != "" {
			level = env
		}
		l, err := logging.New(format, parseLevel(level))
		if err != nil {
			return err
		}
		ctx := logging.WithLogger(c.Context(), l)
		c.SetContext(ctx)
		return nil
	}

	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdAdmin())
	cmd.AddCommand(newCmdPlatform())
	cmd.AddCommand(newCmdPoller())
	return cmd
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
		os.Exit(1)
	}
}
