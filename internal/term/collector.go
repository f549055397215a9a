package term

import (
	"errors"
	"io"
	"strings"
)

// Sentinel ends multi-line input when it appears alone on a line. The
// match ignores case and surrounding whitespace, so "eof" and "  EOF "
// terminate a message just as well.
const Sentinel = "EOF"

// ErrInterrupted reports that the user pressed Ctrl+C at the input prompt.
var ErrInterrupted = errors.New("input interrupted")

// LineReader yields one line at a time, without the trailing newline.
type LineReader interface {
	ReadLine() (string, error)
}

// Collector assembles one user message from consecutive input lines.
type Collector struct {
	src LineReader
}

func NewCollector(src LineReader) *Collector {
	return &Collector{src: src}
}

// Collect reads lines until the sentinel and joins them with newlines. The
// sentinel line itself is never part of the message. End of input acts as
// the sentinel when lines have already been collected; with nothing
// collected it returns io.EOF so the caller can shut down instead of
// prompting forever on a closed pipe.
func (c *Collector) Collect() (string, error) {
	var lines []string
	for {
		line, err := c.src.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(lines) == 0 {
					return "", io.EOF
				}
				return strings.Join(lines, "\n"), nil
			}
			return "", err
		}
		if strings.EqualFold(strings.TrimSpace(line), Sentinel) {
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, line)
	}
}
