package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"taskboard/internal/app"
	"taskboard/internal/config"
	"taskboard/internal/core/domain"
)

var errSignedOut = errors.New("not signed in, run `taskctl signin` first")

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "taskctl",
	Short:         "Personal task board from the terminal",
	Long:          `Sign in, manage tasks, export the list and check upcoming deadlines. The session is kept in local storage between invocations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at info level")

	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(signinCmd)
	rootCmd.AddCommand(signoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(remindCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return cfg.Build()
}

// withApp builds the application, restores the stored session and runs fn.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	defer func() {
		_ = logger.Sync()
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Start(ctx); err != nil {
		logger.Warn("could not restore session", zap.Error(err))
	}
	return fn(ctx, a)
}

// withSignedIn is withApp for commands that need an identity and a fresh
// task list.
func withSignedIn(cmd *cobra.Command, fn func(ctx context.Context, a *app.App, identity domain.Identity) error) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		state := a.Sessions.Current()
		if state.Identity == nil {
			return errSignedOut
		}
		if err := a.Tasks.Refresh(ctx); err != nil {
			return err
		}
		return fn(ctx, a, *state.Identity)
	})
}
