package pipeline

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// RunLog writes timestamped messages to the console and, for orchestrated
// runs, to a run-scoped log file. Step report output goes through here so a
// failed run leaves a complete trace on disk.
type RunLog struct {
	out  io.Writer
	file *os.File
}

// NewRunLog opens (appending) the given log file and tees output to stdout
func NewRunLog(path string) (*RunLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &RunLog{out: io.MultiWriter(os.Stdout, f), file: f}, nil
}

// ConsoleLog returns a logger that only writes to stdout, for the standalone
// step commands.
func ConsoleLog() *RunLog {
	return &RunLog{out: os.Stdout}
}

func (l *RunLog) logf(level, format string, args ...interface{}) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(l.out, "[%s] [%s] %s\n", ts, level, fmt.Sprintf(format, args...))
}

// Infof logs at INFO level
func (l *RunLog) Infof(format string, args ...interface{}) {
	l.logf("INFO", format, args...)
}

// Warnf logs at WARN level
func (l *RunLog) Warnf(format string, args ...interface{}) {
	l.logf("WARN", format, args...)
}

// Errorf logs at ERROR level
func (l *RunLog) Errorf(format string, args ...interface{}) {
	l.logf("ERROR", format, args...)
}

// Banner prints a centered section banner
func (l *RunLog) Banner(text string) {
	bar := strings.Repeat("=", 80)
	pad := (80 - len(text)) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(l.out, "\n%s\n%s%s\n%s\n\n", bar, strings.Repeat(" ", pad), text, bar)
}

// Close releases the underlying log file, if any
func (l *RunLog) Close() {
	if l.file != nil {
		l.file.Close()
	}
}

// Path returns the log file path, or "" for console-only loggers
func (l *RunLog) Path() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}
