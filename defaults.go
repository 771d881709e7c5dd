package pipefleet

import (
	"log/slog"
	"time"
)

// Default configuration values for RunBasic and RunPairs.
const (
	// DefaultMaxPairs is the largest number of pairs RunPairs accepts,
	// bounding one run to 2*DefaultMaxPairs worker processes.
	DefaultMaxPairs = 5

	// DefaultRecordsPerPair is how many integers each producer sends.
	DefaultRecordsPerPair = 5

	// DefaultProducerDelay is the base pause between two producer writes.
	DefaultProducerDelay = 100 * time.Millisecond

	// DefaultDelayJitter widens each producer pause by up to this fraction of
	// DefaultProducerDelay.
	DefaultDelayJitter = 0.5

	// DefaultLogLevel is the minimum level worker processes log at.
	DefaultLogLevel = slog.LevelInfo
)
