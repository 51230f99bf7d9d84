// internal/game/types.go
//
// Core type definitions for the guessing game engine.
// Defines:
//   - Outcome: three-way comparison of a guess against the target.
//   - Signal:  what the loop should do after one iteration.
//   - State:   the loop's position in its state machine.
//   - Game:    state for a single in-progress or finished session.

package game

// Outcome is the result of comparing a guess to the target.
//   - "below":   guess is smaller than the target (aim higher).
//   - "above":   guess is larger than the target (aim lower).
//   - "matched": guess equals the target.
type Outcome string

const (
	BelowTarget Outcome = "below"
	AboveTarget Outcome = "above"
	Matched     Outcome = "matched"
)

// Signal tells the driver of a Loop whether to keep iterating.
type Signal int

const (
	Continue Signal = iota
	Done
)

// State is a position in the loop's state machine.
//
//	AwaitingInput --parse failure--> AwaitingInput
//	AwaitingInput --parse success--> Evaluating
//	Evaluating    --not matched----> AwaitingInput
//	Evaluating    --matched--------> Terminated
type State int

const (
	AwaitingInput State = iota
	Evaluating
	Terminated
)

func (s State) String() string {
	switch s {
	case AwaitingInput:
		return "awaiting_input"
	case Evaluating:
		return "evaluating"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

// Game holds the state of a single guessing session.
type Game struct {
	ID       string   // Unique session identifier (uuid).
	Guesses  []uint16 // Accepted guesses, in order.
	Finished bool     // True once the target was hit.

	target uint16 // Fixed at construction, never exposed.
}
