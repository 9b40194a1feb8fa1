package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/DetroitRed03/chatnil-engine/internal/simdeals"
)

// Default configuration constants.
const (
	defaultNumDeals   = 1000
	defaultNumJobs    = 20
	defaultPoolSize   = 100
	defaultTopN       = 10
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numDeals = flag.Int("deals", defaultNumDeals, "Number of deal score requests to submit")
		numJobs  = flag.Int("jobs", defaultNumJobs, "Number of match jobs to submit")
		poolSize = flag.Int("pool", defaultPoolSize, "Candidate pool size per match job")
		topN     = flag.Int("top", defaultTopN, "Number of top matches to fetch per agency")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile  = flag.String("log", "", "Log file for run output (default: simdeals_TIMESTAMP.log)")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simdeals.ShowHelp()
		return
	}

	// Setup logging
	if err := simdeals.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create run configuration
	config := &simdeals.Config{
		BaseURL:  *baseURL,
		NumDeals: *numDeals,
		NumJobs:  *numJobs,
		PoolSize: *poolSize,
		TopN:     *topN,
		Workers:  *workers,
		Timeout:  *timeout,
		LogFile:  *logFile,
		Verbose:  *verbose,
	}

	// Run the simulation
	if err := simdeals.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Run failed: " + err.Error() + "\n")
		return
	}
}
