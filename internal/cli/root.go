// Package cli is the uap command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/llehouerou/uap/internal/config"
	"github.com/llehouerou/uap/internal/errmsg"
	"github.com/llehouerou/uap/internal/log"
	"github.com/llehouerou/uap/internal/media"
	"github.com/llehouerou/uap/internal/state"
)

var (
	ErrInvalidOption = errors.New("invalid option")
	ErrInvalidFile   = errors.New("invalid file")
	ErrMissingPath   = errors.New("no file given and no file played before")
)

const recentLimit = 10

type options struct {
	volume  int
	verbose bool
	recent  bool
}

// NewRootCommand builds the uap command.
func NewRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "uap [file]",
		Short: "Terminal audiobook player",
		Long: "Plays an audiobook in the terminal and remembers where you stopped.\n" +
			"Without a file, the last played file is opened again.",
		Args:          maxOneArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.volume, "volume", 0, "initial volume, 0-100 (default from config)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")
	f.BoolVar(&opts.recent, "recent", false, "list recently played files and exit")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidOption, err)
	})
	return cmd
}

func maxOneArg(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: expected at most one file, got %d", ErrInvalidOption, len(args))
	}
	return nil
}

// Execute runs the command line. Usage errors print the help text.
func Execute() error {
	cmd := NewRootCommand()
	err := cmd.ExecuteContext(context.Background())
	if isUsageError(err) {
		cmd.SetOut(cmd.ErrOrStderr())
		_ = cmd.Help()
	}
	return err
}

func isUsageError(err error) bool {
	return errors.Is(err, ErrInvalidOption) ||
		errors.Is(err, ErrInvalidFile) ||
		errors.Is(err, ErrMissingPath)
}

func run(cmd *cobra.Command, args []string, opts options) error {
	if cmd.Flags().Changed("volume") && (opts.volume < 0 || opts.volume > 100) {
		return fmt.Errorf("%w: volume %d not in 0-100", ErrInvalidOption, opts.volume)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpLoadConfig, err)
	}
	if cmd.Flags().Changed("volume") {
		cfg.Volume = opts.volume
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}

	closeLog, err := setupLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := log.WithComponent("cli")

	var st state.Interface
	if m, err := state.Open(); err != nil {
		logger.Warn().Err(err).Msg(errmsg.Format(errmsg.OpOpenState, err))
	} else {
		st = m
		defer m.Close()
	}

	if opts.recent {
		if st == nil {
			return fmt.Errorf("%s: state database unavailable", errmsg.OpReadHistory)
		}
		return listRecent(cmd.OutOrStdout(), st, recentLimit)
	}

	path, err := resolvePath(args, st)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return play(ctx, cfg, path, st)
}

// resolvePath picks the file to play: the argument, else the last file.
func resolvePath(args []string, st state.Interface) (string, error) {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else if st != nil {
		last, err := st.LastFile()
		if err != nil {
			return "", fmt.Errorf("%s: %w", errmsg.OpReadHistory, err)
		}
		path = last
	}
	if path == "" {
		return "", ErrMissingPath
	}

	if err := media.Check(path); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	return abs, nil
}

// setupLog sends the log to the configured file. The returned func closes it.
func setupLog(cfg *config.Config) (func(), error) {
	path := cfg.LogFile
	if path == "" {
		p, err := log.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errmsg.OpOpenLog, err)
		}
		path = p
	}
	f, err := log.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errmsg.OpOpenLog, err)
	}
	log.Configure(log.Config{Level: cfg.LogLevel, Output: f})
	return func() { _ = f.Close() }, nil
}
