package ai

import (
	"bufio"
	"io"
	"strings"
)

const maxSSELine = 1024 * 1024

// SSEReader yields the data payloads of a Server-Sent Events body.
type SSEReader struct {
	scanner *bufio.Scanner
}

func NewSSEReader(r io.Reader) *SSEReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxSSELine)
	return &SSEReader{scanner: s}
}

// Next returns the next data payload. It returns io.EOF at the end of the
// body or when the payload is the OpenAI "[DONE]" terminator.
func (r *SSEReader) Next() (string, error) {
	for r.scanner.Scan() {
		line := strings.TrimRight(r.scanner.Text(), "\r")

		// comments, event names and blank separators
		if line == "" || strings.HasPrefix(line, ":") || !strings.HasPrefix(line, "data:") {
			continue
		}

		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}
		if data == "[DONE]" {
			return "", io.EOF
		}
		return data, nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
