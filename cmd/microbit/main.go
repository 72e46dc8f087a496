//go:build tinygo

// Firmware entry point for the micro:bit v2:
//
//	tinygo flash -target=microbit-v2 ./cmd/microbit
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/brensch/ledsnake/config"
	"github.com/brensch/ledsnake/device/microbit"
	"github.com/brensch/ledsnake/display"
	"github.com/brensch/ledsnake/logging"
	"github.com/brensch/ledsnake/loop"
)

func main() {
	logger := logging.New(os.Stdout, &logging.Options{Level: slog.LevelInfo})
	logger.Info("starting game")

	// Set up the hardware or fail
	board, err := microbit.Setup()
	if err != nil {
		logger.Error("board setup failed", "err", err)
		microbit.FailLoop()
	}

	cfg := config.Default(loop.ModeSnake)
	world, err := cfg.World()
	if err != nil {
		logger.Error("invalid starting layout", "err", err)
		microbit.FailLoop()
	}

	l, err := loop.New(cfg.Loop(), display.New(board, logger), world, board, logger)
	if err != nil {
		logger.Error("game setup failed", "err", err)
		microbit.FailLoop()
	}

	// Only a dead display gets us out of Run.
	err = l.Run(context.Background())
	logger.Error("game halted", "err", err)
	microbit.FailLoop()
}
