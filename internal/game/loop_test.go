package game

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainMessages struct{}

func (plainMessages) Prompt() string { return "guess?" }
func (plainMessages) Echo(g uint16) string { return fmt.Sprintf("echo %d", g) }
func (plainMessages) Feedback(o Outcome) string { return "feedback " + string(o) }

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestLoopScenario(t *testing.T) {
	var out bytes.Buffer
	l := NewLoop(Script("17", "abc", "100", "42", "7"), &out, plainMessages{}, WithTarget(42))

	require.NoError(t, l.Run())
	assert.Equal(t, Terminated, l.State())
	assert.Equal(t, 3, l.Guesses())
	assert.Equal(t, []string{
		"guess?",
		"echo 17",
		"feedback below",
		"guess?",
		"guess?",
		"echo 100",
		"feedback above",
		"guess?",
		"echo 42",
		"feedback matched",
	}, lines(&out))
	assert.Equal(t, 4, strings.Count(out.String(), "guess?"))
}

func TestLoopMatchesEveryTarget(t *testing.T) {
	for target := MinTarget; target <= MaxTarget; target++ {
		var out bytes.Buffer
		l := NewLoop(Script(fmt.Sprint(target)), &out, plainMessages{}, WithTarget(uint16(target)))

		sig, err := l.RunIteration()
		require.NoError(t, err)
		require.Equal(t, Done, sig, "target %d", target)
		require.Equal(t, Terminated, l.State())
		require.Equal(t, 1, strings.Count(out.String(), "feedback matched"))
	}
}

func TestLoopFeedbackKeepsAwaiting(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"below", "10", "feedback below"},
		{"above", "400", "feedback above"},
		{"zero", "0", "feedback below"},
		{"max", "65535", "feedback above"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			l := NewLoop(Script(tt.input), &out, plainMessages{}, WithTarget(250))

			sig, err := l.RunIteration()
			require.NoError(t, err)
			assert.Equal(t, Continue, sig)
			assert.Equal(t, AwaitingInput, l.State())
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestLoopMalformedInputIsSilent(t *testing.T) {
	for _, in := range []string{"abc", "", "-5", "99999", "  "} {
		t.Run(in, func(t *testing.T) {
			var out bytes.Buffer
			l := NewLoop(Script(in), &out, plainMessages{}, WithTarget(250))

			sig, err := l.RunIteration()
			require.NoError(t, err)
			assert.Equal(t, Continue, sig)
			assert.Equal(t, AwaitingInput, l.State())
			assert.Equal(t, "guess?\n", out.String())
			assert.Zero(t, l.Guesses())
		})
	}
}

func TestLoopInputClosed(t *testing.T) {
	var out bytes.Buffer
	l := NewLoop(Script("1"), &out, plainMessages{}, WithTarget(250))

	err := l.Run()
	assert.ErrorIs(t, err, ErrInputClosed)
	assert.Equal(t, AwaitingInput, l.State())
	assert.Equal(t, 1, l.Guesses())
}

func TestLoopAfterTerminated(t *testing.T) {
	reads := 0
	src := LineSourceFunc(func() (string, error) {
		reads++
		return "5", nil
	})
	var out bytes.Buffer
	l := NewLoop(src, &out, plainMessages{}, WithTarget(5))

	require.NoError(t, l.Run())
	written := out.Len()

	sig, err := l.RunIteration()
	require.NoError(t, err)
	assert.Equal(t, Done, sig)
	assert.Equal(t, 1, reads)
	assert.Equal(t, written, out.Len(), "no prompt after termination")
}

func TestLoopWithRand(t *testing.T) {
	var out bytes.Buffer
	l := NewLoop(Script("500"), &out, plainMessages{}, WithRand(fixedRand(499)))
	require.NoError(t, l.Run())
	assert.NotEmpty(t, l.ID())
}

func TestLoopDefaultRandStaysInRange(t *testing.T) {
	guesses := make([]string, 0, MaxTarget)
	for i := MinTarget; i <= MaxTarget; i++ {
		guesses = append(guesses, fmt.Sprint(i))
	}
	var out bytes.Buffer
	l := NewLoop(Script(guesses...), &out, plainMessages{})
	require.NoError(t, l.Run())
	assert.LessOrEqual(t, l.Guesses(), MaxTarget)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestLoopWriteFailure(t *testing.T) {
	l := NewLoop(Script("1"), failWriter{}, plainMessages{}, WithTarget(1))
	_, err := l.RunIteration()
	assert.ErrorContains(t, err, "write output")
}

// flakyWriter accepts the first ok writes, then fails.
type flakyWriter struct {
	ok  int
	buf bytes.Buffer
}

func (w *flakyWriter) Write(p []byte) (int, error) {
	if w.ok == 0 {
		return 0, errors.New("broken pipe")
	}
	w.ok--
	return w.buf.Write(p)
}

func TestLoopWriteFailureAfterGuess(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    int // writes that succeed: prompt, then echo
		sig   Signal
		state State
	}{
		{"echo fails on match", "7", 1, Done, Terminated},
		{"feedback fails on match", "7", 2, Done, Terminated},
		{"echo fails on miss", "3", 1, Continue, AwaitingInput},
		{"feedback fails on miss", "3", 2, Continue, AwaitingInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reads := 0
			src := LineSourceFunc(func() (string, error) {
				reads++
				return tt.input, nil
			})
			w := &flakyWriter{ok: tt.ok}
			l := NewLoop(src, w, plainMessages{}, WithTarget(7))

			sig, err := l.RunIteration()
			assert.ErrorContains(t, err, "write output")
			assert.Equal(t, tt.sig, sig)
			assert.Equal(t, tt.state, l.State())
			assert.Equal(t, 1, l.Guesses())

			if tt.state == Terminated {
				sig, err = l.RunIteration()
				require.NoError(t, err)
				assert.Equal(t, Done, sig)
				assert.Equal(t, 1, reads, "no read after a matched guess")
			}
		})
	}
}
