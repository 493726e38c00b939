package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var logFile *os.File

// setupLogging applies --log-level and --log-file to the shared logger.
func setupLogging(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)

	if flagLogFile == "" {
		return nil
	}
	f, err := openLogFile(flagLogFile)
	if err != nil {
		return err
	}
	logFile = f
	logger.SetOutput(f)
	return nil
}

// interactiveLogger returns a logger that stays off the terminal while a
// full-screen program runs. Without --log-file it writes to ~/.blast/blast.log.
func interactiveLogger() *log.Logger {
	if logFile != nil {
		return logger
	}

	l := logger.With()
	home, err := os.UserHomeDir()
	if err != nil {
		l.SetOutput(io.Discard)
		return l
	}
	f, err := openLogFile(filepath.Join(home, ".blast", "blast.log"))
	if err != nil {
		l.SetOutput(io.Discard)
		return l
	}
	logFile = f
	l.SetOutput(f)
	return l
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

func closeLogFile() {
	if logFile != nil {
		logFile.Close()
	}
}
