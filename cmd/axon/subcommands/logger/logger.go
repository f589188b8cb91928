package logger

import (
	"io"
	"log"
)

// Null returns a logger that discards everything. For tests.
func Null() *log.Logger {
	return log.New(io.Discard, "", log.LstdFlags)
}

// Default returns the process-wide standard logger.
func Default() *log.Logger {
	return log.Default()
}
