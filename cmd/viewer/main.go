package main

import (
	"bufio"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/oldtown-game/decor/internal/config"
	"github.com/oldtown-game/decor/internal/draw"
	"github.com/oldtown-game/decor/internal/viewer"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "viewer"})

	tuning, err := config.Load(config.GetEnv("DECOR_TUNING", "tuning.yaml"))
	if err != nil {
		logger.Fatal("bad tuning", "err", err)
	}
	seed := config.GetEnvInt64("DECOR_SEED", 42)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	opts := viewer.Options{
		SessionSeed: seed,
		Tuning:      tuning,
		TermSize:    draw.TerminalSize,
	}
	if err := viewer.Run(bufio.NewReader(os.Stdin), os.Stdout, opts); err != nil {
		_ = term.Restore(fd, oldState)
		logger.Fatal("viewer error", "err", err)
	}
}
