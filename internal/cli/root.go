// Package cli implements the mailthread CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rcliao/mailthread/internal/config"
	"github.com/rcliao/mailthread/internal/logger"
	"github.com/rcliao/mailthread/internal/store"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	formatFlag string
	configPath string
	logLevel   string

	cfg = config.Defaults()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "mailthread",
	Short: "Thread email conversations",
	Long:  "Import mbox files into a local archive and arrange messages into conversation threads. SQLite-backed, single binary.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loaded, err := config.Load(configPath)
		if err != nil {
			exitErr("load config", err)
		}
		cfg = loaded

		level := cfg.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		if err := logger.Init(level, cfg.LogSink); err != nil {
			exitErr("init logger", err)
		}
		if cfg.Path != "" {
			logger.Log.Debug("loaded config", "path", cfg.Path)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $MAILTHREAD_DB or ~/.mailthread/mailthread.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $MAILTHREAD_CONFIG or ~/.mailthread/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $MAILTHREAD_LOG_LEVEL or warn)")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.DBPath
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

// mailboxFlag returns the --mailbox flag, falling back to the configured one.
func mailboxFlag(cmd *cobra.Command) string {
	mailbox, _ := cmd.Flags().GetString("mailbox")
	if mailbox == "" {
		return cfg.Mailbox
	}
	return mailbox
}

func textOutput() bool {
	return formatFlag == "text"
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
