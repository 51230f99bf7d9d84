package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/guessgame/internal/config"
	"github.com/robalobadob/guessgame/internal/daily"
	"github.com/robalobadob/guessgame/internal/feedback"
	"github.com/robalobadob/guessgame/internal/game"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

type playOptions struct {
	configPath string
	logLevel   string
	lang       string
	daily      bool
	target     uint16
}

// newRootCommand builds the command tree. Running the root with no
// subcommand starts a game.
func newRootCommand() *cobra.Command {
	opts := &playOptions{}
	cmd := &cobra.Command{
		Use:   "guessgame",
		Short: "Guess the hidden number",
		Long: fmt.Sprintf(`guessgame hides a number between %d and %d and tells you after every
guess whether to aim higher or lower. Lines that are not numbers are ignored.`,
			game.MinTarget, game.MaxTarget),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts)
		},
	}

	// Unparseable flag values are configuration errors; subcommands inherit this.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	})

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (default $GUESS_CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	addPlayFlags(cmd, opts)

	cmd.AddCommand(newPlayCommand(opts))
	cmd.AddCommand(newVersionCommand())
	return cmd
}

// newPlayCommand creates the play command
func newPlayCommand(opts *playOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one session on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts)
		},
	}
	addPlayFlags(cmd, opts)
	return cmd
}

func addPlayFlags(cmd *cobra.Command, opts *playOptions) {
	f := cmd.Flags()
	f.StringVar(&opts.lang, "lang", "", "feedback language, e.g. en or pt-BR (default $GUESS_LANG, then $LANG)")
	f.BoolVar(&opts.daily, "daily", false, "play today's shared target")
	f.Uint16Var(&opts.target, "target", 0, "fix the hidden number")
	_ = f.MarkHidden("target")
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "guessgame %s\n", version)
		},
	}
}

// runPlay resolves configuration, wires the loop to the command's streams
// and plays until the target is hit or input runs out.
func runPlay(cmd *cobra.Command, opts *playOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("lang") {
		cfg.Lang = opts.lang
	}
	if flags.Changed("daily") {
		cfg.Daily = opts.daily
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	setupLogger(cmd.ErrOrStderr(), cfg.Level())

	cat, err := feedback.Load(cfg.MessagesFile)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	msgs := cat.For(cfg.Lang)

	var loopOpts []game.Option
	day := ""
	switch {
	case flags.Changed("target"):
		if opts.target < game.MinTarget || opts.target > game.MaxTarget {
			return fmt.Errorf("%w: --target must be between %d and %d",
				config.ErrInvalidConfig, game.MinTarget, game.MaxTarget)
		}
		loopOpts = append(loopOpts, game.WithTarget(opts.target))
	case cfg.Daily:
		src := daily.NewSource(time.Now(), cfg.DailySalt)
		day = src.Key()
		loopOpts = append(loopOpts, game.WithRand(src))
	}

	loop := game.NewLoop(game.NewReaderSource(cmd.InOrStdin()), cmd.OutOrStdout(), msgs, loopOpts...)
	logger := log.With().Str("session", loop.ID()).Logger()
	logger.Debug().
		Str("lang", msgs.Language().String()).
		Str("day", day).
		Msg("session started")

	if err := loop.Run(); err != nil {
		logger.Error().Err(err).Int("guesses", loop.Guesses()).Msg("session aborted")
		return err
	}
	logger.Debug().Int("guesses", loop.Guesses()).Msg("session finished")
	return nil
}
