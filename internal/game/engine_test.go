package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always returns the same value, clamped to [0, n).
type fixedRand int

func (f fixedRand) IntN(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

func TestParseGuess(t *testing.T) {
	tests := []struct {
		in   string
		want uint16
		ok   bool
	}{
		{"42", 42, true},
		{"  42 \n", 42, true},
		{"\t7\r\n", 7, true},
		{"0", 0, true},
		{"65535", 65535, true},
		{"+9", 9, true},
		{"abc", 0, false},
		{"", 0, false},
		{"   ", 0, false},
		{"-5", 0, false},
		{"-0", 0, false},
		{"99999", 0, false},
		{"65536", 0, false},
		{"4 2", 0, false},
		{"1.5", 0, false},
		{"0x10", 0, false},
		{"1_000", 0, false},
		{"+", 0, false},
		{"++3", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGuess(tt.in)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrMalformedGuess)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare(t *testing.T) {
	assert.Equal(t, BelowTarget, Compare(17, 42))
	assert.Equal(t, AboveTarget, Compare(100, 42))
	assert.Equal(t, Matched, Compare(42, 42))
	assert.Equal(t, BelowTarget, Compare(0, 1))
	assert.Equal(t, AboveTarget, Compare(65535, 500))
}

func TestPickTargetBounds(t *testing.T) {
	assert.Equal(t, uint16(MinTarget), PickTarget(fixedRand(0)))
	assert.Equal(t, uint16(MaxTarget), PickTarget(fixedRand(1<<20)))
	assert.Equal(t, uint16(250), PickTarget(fixedRand(249)))
}

func TestNewRandomUsesInjectedRand(t *testing.T) {
	g := NewRandom(fixedRand(41))
	out, err := g.ApplyGuess("42")
	require.NoError(t, err)
	assert.Equal(t, Matched, out)
}

func TestApplyGuess(t *testing.T) {
	g := New(42)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "playing", g.State())

	_, ok := g.Last()
	assert.False(t, ok)

	out, err := g.ApplyGuess("17")
	require.NoError(t, err)
	assert.Equal(t, BelowTarget, out)

	_, err = g.ApplyGuess("abc")
	assert.ErrorIs(t, err, ErrMalformedGuess)
	assert.Len(t, g.Guesses, 1, "malformed input is not recorded")

	out, err = g.ApplyGuess("100")
	require.NoError(t, err)
	assert.Equal(t, AboveTarget, out)

	out, err = g.ApplyGuess("42")
	require.NoError(t, err)
	assert.Equal(t, Matched, out)
	assert.True(t, g.Finished)
	assert.Equal(t, "won", g.State())

	last, ok := g.Last()
	assert.True(t, ok)
	assert.Equal(t, uint16(42), last)
	assert.Equal(t, []uint16{17, 100, 42}, g.Guesses)

	_, err = g.ApplyGuess("42")
	assert.ErrorIs(t, err, ErrFinished)
}

func TestTargetIsStableAcrossGuesses(t *testing.T) {
	g := NewRandom(fixedRand(123))
	first, err := g.ApplyGuess("600")
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		out, err := g.ApplyGuess("600")
		require.NoError(t, err)
		assert.Equal(t, first, out)
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "awaiting_input", AwaitingInput.String())
	assert.Equal(t, "evaluating", Evaluating.String())
	assert.Equal(t, "terminated", Terminated.String())
	assert.Equal(t, "unknown", State(9).String())
}
