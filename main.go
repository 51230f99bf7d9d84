package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessgame/internal/config"
)

// Exit codes.
const (
	exitFailure = 1 // input closed, unreadable stdin, broken output
	exitConfig  = 2 // bad flags, env or config file
)

func main() {
	_ = godotenv.Load()

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, config.ErrInvalidConfig) {
		return exitConfig
	}
	return exitFailure
}

// setupLogger points the global logger at w (stderr in production) so the
// game transcript on stdout stays clean.
func setupLogger(w io.Writer, lvl zerolog.Level) {
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
}
