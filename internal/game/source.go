package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LineSource yields one line of input per call, without its terminator.
// It returns ErrInputClosed once no more lines are available.
type LineSource interface {
	ReadLine() (string, error)
}

// LineSourceFunc adapts a plain function to LineSource.
type LineSourceFunc func() (string, error)

// ReadLine implements LineSource.
func (f LineSourceFunc) ReadLine() (string, error) {
	return f()
}

type readerSource struct {
	r *bufio.Reader
}

// NewReaderSource reads newline-terminated lines from r (typically stdin).
func NewReaderSource(r io.Reader) LineSource {
	return &readerSource{r: bufio.NewReader(r)}
}

func (s *readerSource) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: %v", ErrInputClosed, err)
		}
		// Last line without a terminator still counts.
		if line == "" {
			return "", ErrInputClosed
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Script returns a LineSource that replays lines in order, then reports
// ErrInputClosed.
func Script(lines ...string) LineSource {
	i := 0
	return LineSourceFunc(func() (string, error) {
		if i >= len(lines) {
			return "", ErrInputClosed
		}
		i++
		return lines[i-1], nil
	})
}
