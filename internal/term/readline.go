package term

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
)

// ReadlineSource reads lines interactively with line editing and history.
type ReadlineSource struct {
	rl *readline.Instance
}

// NewReadlineSource opens the terminal in line-edit mode. History persists
// in ~/.coda_history when a home directory can be resolved.
func NewReadlineSource() (*ReadlineSource, error) {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".coda_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "> ",
		HistoryFile:       historyFile,
		HistorySearchFold: true,
		InterruptPrompt:   "^C",
		EOFPrompt:         Sentinel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize line editor: %w", err)
	}
	return &ReadlineSource{rl: rl}, nil
}

// ReadLine returns the next input line. Ctrl+C surfaces as ErrInterrupted;
// Ctrl+D passes io.EOF through to the collector.
func (s *ReadlineSource) ReadLine() (string, error) {
	line, err := s.rl.Readline()
	switch {
	case err == nil:
		return line, nil
	case errors.Is(err, readline.ErrInterrupt):
		return "", ErrInterrupted
	default:
		return "", err
	}
}

func (s *ReadlineSource) Close() error {
	return s.rl.Close()
}
