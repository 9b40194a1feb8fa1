package simdeals

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/DetroitRed03/chatnil-engine/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init("text"); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "simdeals_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the simulated deal tool.
func ShowHelp() {
	os.Stdout.WriteString(`ChatNIL Deal Simulator
======================

A concurrent tool for exercising the deal scoring and matchmaking API
with synthetic traffic across all risk profiles.

Usage:
  go run cmd/simdeals/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -deals int
        Number of deal score requests to submit (default 1000)
  -jobs int
        Number of match jobs to submit (default 20)
  -pool int
        Candidate pool size per match job (default 100)
  -top int
        Number of top matches to fetch per agency (default 10)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for run output (default: simdeals_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Run with default settings
  go run cmd/simdeals/main.go

  # Heavier run against a remote instance
  go run cmd/simdeals/main.go -deals 50000 -workers 16 -url http://10.0.0.5:9080

  # Inspect individual match results
  go run cmd/simdeals/main.go -jobs 5 -pool 20 -verbose
`)
}
