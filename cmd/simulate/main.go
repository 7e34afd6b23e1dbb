package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/visagelab/facesym/internal/simulate"
	"github.com/visagelab/facesym/pkg/logger"
)

// Default configuration constants.
const (
	defaultUsers      = 10
	defaultScans      = 3
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		users    = flag.Int("users", defaultUsers, "Number of simulated users")
		scans    = flag.Int("scans", defaultScans, "Scans submitted per user")
		workers  = flag.Int("workers", runtime.NumCPU(), "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		mockAddr = flag.String("mock", "", "Also serve a mock scoring provider on this address")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulate.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Optionally serve the mock scoring provider for offline runs. Point
	// the service's issuer_url and scoring_url at it.
	if *mockAddr != "" {
		provider := simulate.NewMockProvider(*mockAddr)
		go func() {
			if err := provider.Serve(ctx); err != nil {
				os.Stderr.WriteString("mock provider failed: " + err.Error() + "\n")
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = provider.Shutdown(shutdownCtx)
		}()
	}

	config := &simulate.Config{
		BaseURL: *baseURL,
		Users:   *users,
		Scans:   *scans,
		Workers: *workers,
		Timeout: *timeout,
		Verbose: *verbose,
	}

	if err := simulate.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		return
	}
}
