package worker

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/giantswarm/pipefleet/internal/channel"
)

// ProducerParams configures one Producer run.
type ProducerParams struct {
	// Start is the first value emitted.
	Start int32
	// Count is the number of consecutive values emitted.
	Count int
	// Delay is the base pause between two writes. Zero disables pausing.
	Delay time.Duration
	// Jitter widens each pause to a random value in [Delay, Delay*(1+Jitter)).
	Jitter float64
}

// Produce writes Count consecutive values starting at Start to w, one record
// per write, in increasing order.
//
// The first failed or short write ends the run: its error (matching
// channel.ErrTransfer) is returned and nothing more is written. Produce does
// not close w.
func Produce(w io.Writer, p ProducerParams, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}

	log.Info("producer starting", "start", p.Start, "count", p.Count)
	for i := range p.Count {
		if i > 0 {
			pause(p.Delay, p.Jitter)
		}

		v := p.Start + int32(i)
		if err := channel.WriteRecord(w, v); err != nil {
			return fmt.Errorf("producer: %w", err)
		}
		log.Info("producer sent", "value", v)
	}
	log.Info("producer finished", "sent", p.Count)
	return nil
}

// pause sleeps between two writes. wait.Jitter treats a non-positive factor
// as 1.0, so zero jitter is handled here as an exact sleep.
func pause(delay time.Duration, jitter float64) {
	if delay <= 0 {
		return
	}
	if jitter > 0 {
		delay = wait.Jitter(delay, jitter)
	}
	time.Sleep(delay)
}
