package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotInstalled is returned when the engine binary cannot be found.
var ErrNotInstalled = errors.New("yt-dlp was not found in PATH. Install it from https://github.com/yt-dlp/yt-dlp and try again")

// ErrNoOutput is returned when the engine exits successfully but the
// expected file is missing.
var ErrNoOutput = errors.New("engine produced no output file")

// InvocationError is returned when an engine subprocess fails.
type InvocationError struct {
	Locator string

	// ExitCode is the process exit code, -1 when the process did not exit
	// normally.
	ExitCode int

	// Timeout is set when the invocation ran past its deadline.
	Timeout bool

	// Diagnostic holds the last lines the engine wrote to stderr.
	Diagnostic string

	Original error
}

func (e *InvocationError) Error() string {
	var b strings.Builder
	switch {
	case e.Timeout:
		fmt.Fprintf(&b, "yt-dlp timed out on %s", e.Locator)
	case e.ExitCode >= 0:
		fmt.Fprintf(&b, "yt-dlp exited with code %d on %s", e.ExitCode, e.Locator)
	default:
		fmt.Fprintf(&b, "yt-dlp failed on %s", e.Locator)
		if e.Original != nil {
			fmt.Fprintf(&b, ": %v", e.Original)
		}
	}
	if e.Diagnostic != "" {
		b.WriteString(": ")
		b.WriteString(e.Diagnostic)
	}
	return b.String()
}

func (e *InvocationError) Unwrap() error {
	return e.Original
}

// diagnosticTail keeps the last few non-empty lines of engine output,
// which is where yt-dlp reports the actual error.
func diagnosticTail(output string) string {
	const maxLines = 3
	const maxLen = 400

	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}

	tail := strings.Join(lines, " | ")
	if len(tail) > maxLen {
		tail = "..." + strings.ToValidUTF8(tail[len(tail)-maxLen:], "")
	}
	return tail
}
