package cli

import (
	"context"
	"fmt"

	"github.com/llehouerou/uap/internal/config"
	"github.com/llehouerou/uap/internal/errmsg"
	"github.com/llehouerou/uap/internal/log"
	"github.com/llehouerou/uap/internal/mpris"
	"github.com/llehouerou/uap/internal/notify"
	"github.com/llehouerou/uap/internal/playback"
	"github.com/llehouerou/uap/internal/player"
	"github.com/llehouerou/uap/internal/runner"
	"github.com/llehouerou/uap/internal/session"
	"github.com/llehouerou/uap/internal/state"
	"github.com/llehouerou/uap/internal/stderr"
)

// play wires the engine and the desktop integrations, then runs the loops.
func play(ctx context.Context, cfg *config.Config, path string, st state.Interface) error {
	logger := log.WithComponent("cli")

	var lines <-chan string
	capture, err := stderr.Start()
	if err != nil {
		logger.Warn().Err(err).Msg("capture stderr")
	} else {
		defer capture.Stop()
		lines = capture.Lines()
	}

	engine, err := player.NewMPV(cfg.Volume)
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpStartAudio, err)
	}

	transport := playback.NewMailbox[mpris.Transport]()
	opts := runner.Options{
		Path:      path,
		Config:    cfg,
		Engine:    engine,
		Transport: transport,
		State:     st,
		Stderr:    lines,
	}

	if cfg.MPRIS {
		adapter, err := mpris.New(session.TransportSink(transport))
		if err != nil {
			logger.Warn().Err(err).Msg(errmsg.Format(errmsg.OpMediaSession, err))
		} else {
			opts.Binding = adapter
		}
	}

	if cfg.Notifications {
		n, err := notify.New()
		if err != nil {
			logger.Warn().Err(err).Msg(errmsg.Format(errmsg.OpNotify, err))
		} else {
			opts.Announcer = notify.NewChapters(n)
		}
	}

	return runner.Run(ctx, opts)
}
