package core

import (
	"log/slog"
)

// Reap waits for every worker in the order given, which is spawn order, and
// reports each termination as it is observed.
//
// Waiting is strictly sequential: Reap may block on an early worker while a
// later one has already exited. The later one stays a zombie until its turn
// and is then collected without blocking. Reap never signals a worker.
func Reap(workers []*Worker, log *slog.Logger) *Report {
	if log == nil {
		log = Logger()
	}

	report := &Report{Results: make([]Result, 0, len(workers))}
	for _, w := range workers {
		outcome := w.child.Wait()
		report.Results = append(report.Results, Result{Worker: *w, Outcome: outcome})

		attrs := []any{
			"role", w.Role.String(),
			"pair", w.Pair,
			"pid", w.Pid,
			"outcome", outcome.String(),
		}
		if outcome.Success() {
			log.Info("worker reaped", attrs...)
		} else {
			log.Warn("worker reaped", attrs...)
		}
	}
	return report
}
