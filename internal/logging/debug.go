package logging

import (
	"fmt"
	"io"
	"os"
)

// output is where debug lines are written; stderr keeps them out of command output
var output io.Writer = os.Stderr

// forced is set by SetEnabled when verbose mode is requested by flag or config
var forced bool

// DebugEnabled returns true if debug mode is enabled via CLOCKIT_DEBUG or SetEnabled
func DebugEnabled() bool {
	return forced || os.Getenv("CLOCKIT_DEBUG") != ""
}

// SetEnabled turns debug output on regardless of the environment
func SetEnabled(enabled bool) {
	forced = enabled
}

// SetOutput redirects debug output and returns the previous writer
func SetOutput(w io.Writer) io.Writer {
	prev := output
	output = w
	return prev
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(output, "[debug] "+format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(output, append([]interface{}{"[debug]"}, args...)...)
	}
}
