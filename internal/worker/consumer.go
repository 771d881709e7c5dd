package worker

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/giantswarm/pipefleet/internal/channel"
)

// Summary is what a Consumer observed before end-of-stream.
type Summary struct {
	PairID int
	Count  int
	Sum    int64
}

// Consume reads records from r until end-of-stream and returns their count
// and sum. Values are accepted in whatever order and range they arrive.
//
// A read error other than a clean end-of-stream is fatal: Consume returns it
// (matching channel.ErrTransfer) together with the partial summary, and does
// not read again. Consume does not close r.
func Consume(r io.Reader, pairID int, log *slog.Logger) (Summary, error) {
	if log == nil {
		log = slog.Default()
	}

	log = log.With("consumer_id", pairID)
	s := Summary{PairID: pairID}
	log.Info("consumer starting")
	for {
		v, err := channel.ReadRecord(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return s, fmt.Errorf("consumer: %w", err)
		}
		s.Count++
		s.Sum += int64(v)
		log.Info("consumer received", "value", v, "running_sum", s.Sum)
	}
	log.Info("consumer finished", "count", s.Count, "sum", s.Sum)
	return s, nil
}
