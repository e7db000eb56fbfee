package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/openmined/foldersense/internal/app"
	"github.com/openmined/foldersense/internal/config"
	"github.com/openmined/foldersense/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "foldersense",
	Short:   "Generates AI folder descriptions for a OneDrive drive",
	Version: version.Detailed(),
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one pipeline pass and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		report, err := a.RunOnce(cmd.Context())
		if err != nil {
			return err
		}
		slog.Info("run complete",
			"changed_items", report.ChangedItems,
			"folders", report.AffectedFolders,
		)
		for _, path := range report.ProcessedFolders {
			slog.Info("regenerated description", "folder_path", path)
		}
		return nil
	},
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the pipeline on a schedule with a health endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		defer slog.Info("Bye!")
		return a.RunDaemon(cmd.Context())
	},
}

func newApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}

func main() {
	// .env is optional, for local development
	_ = godotenv.Load()

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
	slog.SetDefault(slog.New(handler))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(runCmd, daemonCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
