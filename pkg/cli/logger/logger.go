// Package logger writes CLI diagnostics to a timestamped file under tmp/,
// since the TUI owns the terminal.
package logger

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	once    sync.Once
	out     io.Writer = io.Discard
	logger  *log.Logger
	logFile *os.File
)

func setup() {
	once.Do(func() {
		logger, out, logFile = openLog("tmp")
	})
}

// openLog opens a timestamped log file in dir. When that fails, plain log
// lines fall back to stderr and structured events are dropped so they never
// land on the terminal the TUI owns.
func openLog(dir string) (*log.Logger, io.Writer, *os.File) {
	fallback := log.New(os.Stderr, "[cli] ", log.LstdFlags|log.Lshortfile)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fallback, io.Discard, nil
	}

	logFileName := filepath.Join(dir, fmt.Sprintf("cli-%s.log", time.Now().Format("20060102-150405")))
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fallback, io.Discard, nil
	}

	return log.New(f, "[cli] ", log.LstdFlags|log.Lshortfile), f, f
}

// Log writes a log message
func Log(format string, v ...any) {
	setup()
	logger.Output(2, fmt.Sprintf(format, v...))
}

// LogError writes an error log message
func LogError(err error, format string, v ...any) {
	setup()
	msg := fmt.Sprintf(format, v...)
	logger.Output(2, fmt.Sprintf("ERROR: %s: %v", msg, err))
}

// Slog returns a structured logger writing to the same file, used for
// import run events.
func Slog() *slog.Logger {
	setup()
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})).
		With("component", "importer")
}

// CloseLog closes the log file
func CloseLog() {
	if logFile != nil {
		logFile.Close()
	}
}
