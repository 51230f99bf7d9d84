// internal/game/loop.go
//
// Interactive driver for one session: prompt, read, parse, compare, respond.
// The loop owns its Game and never exposes the target. Input comes from a
// LineSource, text goes to an io.Writer, and the words come from Messages.

package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
)

// Messages renders the text a Loop writes.
type Messages interface {
	Prompt() string
	Echo(guess uint16) string
	Feedback(o Outcome) string
}

// Option configures a Loop at construction.
type Option func(*loopOptions)

type loopOptions struct {
	rnd    Rand
	target uint16
	fixed  bool
}

// WithRand sets the source used to draw the target.
func WithRand(r Rand) Option {
	return func(o *loopOptions) { o.rnd = r }
}

// WithTarget fixes the target, bypassing randomness.
func WithTarget(target uint16) Option {
	return func(o *loopOptions) {
		o.target = target
		o.fixed = true
	}
}

// Loop runs one guessing session.
type Loop struct {
	src   LineSource
	out   io.Writer
	msgs  Messages
	game  *Game
	state State
}

// NewLoop initializes a session: the target is drawn here, once.
func NewLoop(src LineSource, out io.Writer, msgs Messages, opts ...Option) *Loop {
	var o loopOptions
	for _, opt := range opts {
		opt(&o)
	}

	var g *Game
	switch {
	case o.fixed:
		g = New(o.target)
	case o.rnd != nil:
		g = NewRandom(o.rnd)
	default:
		g = NewRandom(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	}
	return &Loop{src: src, out: out, msgs: msgs, game: g, state: AwaitingInput}
}

// ID returns the session identifier.
func (l *Loop) ID() string { return l.game.ID }

// State returns the current state machine position.
func (l *Loop) State() State { return l.state }

// Guesses returns how many well-formed guesses were made.
func (l *Loop) Guesses() int { return len(l.game.Guesses) }

// RunIteration performs one prompt/read/respond cycle.
//
// Malformed input is dropped silently and yields Continue. A failing line
// source is fatal and returned as an error wrapping ErrInputClosed.
// A failed write is returned after the state has moved on, so a matched
// guess still ends in Terminated.
// Once the session is Terminated every call returns Done without reading.
func (l *Loop) RunIteration() (Signal, error) {
	if l.state == Terminated {
		return Done, nil
	}
	if err := l.say(l.msgs.Prompt()); err != nil {
		return Continue, err
	}

	line, err := l.src.ReadLine()
	if err != nil {
		return Continue, err
	}

	outcome, err := l.game.ApplyGuess(line)
	if errors.Is(err, ErrMalformedGuess) {
		return Continue, nil
	}
	if err != nil {
		return Continue, err
	}

	l.state = Evaluating
	err = l.respond(outcome)

	// The guess is already recorded, so the transition holds even if the
	// response could not be written.
	if outcome == Matched {
		l.state = Terminated
		return Done, err
	}
	l.state = AwaitingInput
	return Continue, err
}

func (l *Loop) respond(outcome Outcome) error {
	guess, _ := l.game.Last()
	if err := l.say(l.msgs.Echo(guess)); err != nil {
		return err
	}
	return l.say(l.msgs.Feedback(outcome))
}

// Run iterates until the target is hit or the input fails.
func (l *Loop) Run() error {
	for {
		sig, err := l.RunIteration()
		if err != nil {
			return err
		}
		if sig == Done {
			return nil
		}
	}
}

func (l *Loop) say(s string) error {
	if _, err := fmt.Fprintln(l.out, s); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
