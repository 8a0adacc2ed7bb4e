// File: envgrove/config/timing.go
package config

import "time"

// Core timing constants for the reload watcher.
const (
	// File watching intervals (ordered by frequency)
	SpinWaitInterval    = 5 * time.Millisecond   // CPU-friendly busy-wait quantum
	MinPollInterval     = 20 * time.Millisecond  // Hard floor for file stat polling
	ShutdownTimeout     = 200 * time.Millisecond // Graceful watcher termination window
	DefaultDebounce     = 100 * time.Millisecond // File change coalescence period
	DefaultPollInterval = time.Second            // Standard file monitoring frequency
)
