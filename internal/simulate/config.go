// Package simulate drives a running facesym instance end to end:
// synthetic scans in, recommendations and plans out, completion replay
// verified.
package simulate

import (
	"fmt"
	"time"
)

// Config controls a simulation run.
type Config struct {
	BaseURL string
	Users   int
	Scans   int
	Workers int
	Timeout time.Duration
	Verbose bool
}

// Stats aggregates the outcome of a simulation run.
type Stats struct {
	ScansSubmitted    int
	ScansSuccessful   int
	ScansFailed       int
	PlansGenerated    int
	RoutinesCompleted int
	ReplaysVerified   int

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// ShowHelp prints usage information for the simulate tool.
func ShowHelp() {
	fmt.Println(`facesym simulate - end-to-end exerciser

Submits synthetic landmark scans for a set of users, fetches their
recommendations, generates plans, and completes today's routine twice to
verify idempotent replay.

Usage:
  simulate [flags]

Flags:
  -url string       Base URL of the service (default "http://localhost:9080")
  -users int        Number of simulated users (default 10)
  -scans int        Scans submitted per user (default 3)
  -workers int      Concurrent workers (default NumCPU)
  -timeout duration HTTP request timeout (default 30s)
  -mock string      Also serve a mock scoring provider on this address
  -verbose          Enable verbose logging
  -help             Show help`)
}
