package utils

import (
	"fmt"
	"os"
)

// Debug reports whether verbose framer tracing is enabled. It mirrors the
// teacher's utils.Debug(), gated by an environment variable rather than a
// build flag so it can be toggled without recompiling.
func Debug() bool {
	return os.Getenv("QUIC_GO_LOG_LEVEL") != "" || os.Getenv("QUICWIRE_DEBUG") != ""
}

// Debugf writes a formatted trace line to stderr when Debug() is enabled.
func Debugf(format string, args ...interface{}) {
	if !Debug() {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
