// internal/game/engine.go
//
// Core game engine for a single guessing session.
// Responsibilities:
//   - Pick the hidden target from [MinTarget, MaxTarget] with an injected Rand.
//   - Parse raw input lines into uint16 guesses.
//   - Compare guesses to the target and track playing → won.
//
// Notes:
//   - Randomness is always passed in; the engine never touches a global source.
//   - Malformed input is reported as ErrMalformedGuess and leaves the game untouched.
package game

import (
	"cmp"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Inclusive bounds of the hidden target.
const (
	MinTarget = 1
	MaxTarget = 500
)

var (
	// ErrMalformedGuess marks input that is not an integer in [0, 65535].
	ErrMalformedGuess = errors.New("malformed guess")
	// ErrFinished is returned when guessing after the target was hit.
	ErrFinished = errors.New("game finished")
	// ErrInputClosed is returned when the line source has no more input.
	ErrInputClosed = errors.New("input closed")
)

// Rand is the randomness the engine needs. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// PickTarget draws a target uniformly from [MinTarget, MaxTarget].
func PickTarget(r Rand) uint16 {
	return uint16(MinTarget + r.IntN(MaxTarget-MinTarget+1))
}

// New constructs a game around a fixed target.
func New(target uint16) *Game {
	return &Game{
		ID:      uuid.NewString(),
		Guesses: []uint16{},
		target:  target,
	}
}

// NewRandom constructs a game whose target is drawn from r.
func NewRandom(r Rand) *Game {
	return New(PickTarget(r))
}

// ParseGuess trims surrounding whitespace and parses the rest as an
// unsigned 16-bit integer. A single leading '+' is accepted.
func ParseGuess(line string) (uint16, error) {
	s := strings.TrimPrefix(strings.TrimSpace(line), "+")
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, ErrMalformedGuess
	}
	return uint16(n), nil
}

// Compare reports where guess sits relative to target.
func Compare(guess, target uint16) Outcome {
	switch cmp.Compare(guess, target) {
	case -1:
		return BelowTarget
	case 1:
		return AboveTarget
	}
	return Matched
}

// ApplyGuess parses and scores one raw line, mutating the game state.
//
// Errors:
//   - ErrFinished if the target was already hit.
//   - ErrMalformedGuess if the line does not parse; nothing is recorded.
func (g *Game) ApplyGuess(line string) (Outcome, error) {
	if g.Finished {
		return "", ErrFinished
	}
	guess, err := ParseGuess(line)
	if err != nil {
		return "", err
	}
	g.Guesses = append(g.Guesses, guess)

	outcome := Compare(guess, g.target)
	if outcome == Matched {
		g.Finished = true
	}
	return outcome, nil
}

// Last returns the most recent accepted guess.
func (g *Game) Last() (uint16, bool) {
	if len(g.Guesses) == 0 {
		return 0, false
	}
	return g.Guesses[len(g.Guesses)-1], true
}

// State reports a coarse string representation of the session.
func (g *Game) State() string {
	if g.Finished {
		return "won"
	}
	return "playing"
}
