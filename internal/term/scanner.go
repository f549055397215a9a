package term

import (
	"bufio"
	"io"
)

// ScannerSource reads lines from a plain reader. It backs piped and
// redirected input, where line editing is unavailable.
type ScannerSource struct {
	sc *bufio.Scanner
}

func NewScannerSource(r io.Reader) *ScannerSource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &ScannerSource{sc: sc}
}

func (s *ScannerSource) ReadLine() (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
