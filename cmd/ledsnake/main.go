package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/ledsnake/config"
	"github.com/brensch/ledsnake/device/headless"
	"github.com/brensch/ledsnake/device/terminal"
	"github.com/brensch/ledsnake/display"
	"github.com/brensch/ledsnake/logging"
	"github.com/brensch/ledsnake/loop"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	// Keep logs off the terminal UI's screen.
	logOut := io.Writer(os.Stderr)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logOut = f
	} else if cfg.Device == config.DeviceTerminal {
		logOut = io.Discard
	}
	logger := logging.New(logOut, &logging.Options{Level: cfg.LogLevel, Indent: cfg.LogIndent})

	world, err := cfg.World()
	if err != nil {
		log.Fatalf("Invalid starting layout: %v", err)
	}

	var presenter display.Presenter
	var buttons loop.Buttons

	switch cfg.Device {
	case config.DeviceHeadless:
		script, err := headless.ParseScript(cfg.Script)
		if err != nil {
			log.Fatalf("Invalid script: %v", err)
		}
		p := headless.NewPresenter(os.Stdout, logger)
		p.AfterPresent = func(n uint64) {
			script.Next()
			if cfg.Ticks > 0 && n >= uint64(cfg.Ticks) {
				cancel()
			}
		}
		presenter, buttons = p, script
	default:
		term := terminal.New(fmt.Sprintf("ledsnake · %s", cfg.Mode), tea.WithContext(ctx))
		term.Start(cancel)
		defer func() {
			term.Quit()
			<-term.Done()
		}()
		presenter, buttons = term, term
	}

	l, err := loop.New(cfg.Loop(), display.New(presenter, logger), world, buttons, logger)
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}

	err = l.Run(ctx)
	st := l.Stats()
	logger.Info("session finished", "ticks", st.Ticks, "moves", st.Moves, "blocked", st.Blocked, "eaten", st.Eaten)
	if err != nil && !errors.Is(err, context.Canceled) && ctx.Err() == nil {
		logger.Error("game halted", "err", err)
		log.Fatalf("Game halted: %v", err)
	}
	if cfg.Device == config.DeviceHeadless {
		fmt.Printf("ticks=%d moves=%d blocked=%d eaten=%d length=%d\n", st.Ticks, st.Moves, st.Blocked, st.Eaten, world.Actor.Len())
	}
}
