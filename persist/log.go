// Package persist provides the scheduler's file logger, adapted from
// Sia's persist.Logger: a thin wrapper around log.Logger that brackets a
// log file with STARTUP/SHUTDOWN markers so a truncated run is obvious
// from the file alone.
package persist

import (
	"log"
	"os"
	"time"

	"github.com/k4210/mtobjects/build"
)

// Logger wraps a standard library logger tied to an on-disk file.
type Logger struct {
	*log.Logger
	file *os.File
}

// NewLogger returns a logger that appends to (creating if necessary) the
// file at logFilename, writing a STARTUP line immediately.
func NewLogger(logFilename string) (*Logger, error) {
	file, err := os.OpenFile(logFilename, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0600)
	if err != nil {
		return nil, err
	}
	logger := log.New(file, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile|log.LUTC)
	logger.Println("STARTUP: scheduler logging has started at", time.Now().Format(time.RFC3339))
	return &Logger{logger, file}, nil
}

// Close writes a SHUTDOWN line and closes the underlying file.
func (l *Logger) Close() error {
	l.Println("SHUTDOWN: scheduler logging has terminated at", time.Now().Format(time.RFC3339))
	return l.file.Close()
}

// Critical logs v at critical severity and forwards to build.Critical so
// that DEBUG builds panic while standard builds keep running with the
// failure on record.
func (l *Logger) Critical(v ...interface{}) {
	l.Println(append([]interface{}{"CRITICAL:"}, v...)...)
	build.Critical(v...)
}
