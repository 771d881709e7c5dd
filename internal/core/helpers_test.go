package core

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"testing"

	"github.com/giantswarm/pipefleet/internal/channel"
	"github.com/giantswarm/pipefleet/internal/process"
	"github.com/giantswarm/pipefleet/internal/worker"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// testFleetConfig returns a config that re-executes the test binary as
// workers without pausing between records.
func testFleetConfig(t *testing.T) FleetConfig {
	t.Helper()
	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("os.Executable: %v", err)
	}
	return FleetConfig{
		Executable:     exe,
		MaxPairs:       5,
		RecordsPerPair: 5,
		WorkerLogLevel: slog.LevelInfo,
	}
}

// outputRecorder captures the combined output of every worker separately,
// keyed by "role/pair".
type outputRecorder struct {
	mu   sync.Mutex
	bufs map[string]*bytes.Buffer
}

func newOutputRecorder() *outputRecorder {
	return &outputRecorder{bufs: make(map[string]*bytes.Buffer)}
}

// Output is an OutputFunc. The same buffer is used for stdout and stderr,
// so exec.Cmd serializes writes to it.
func (r *outputRecorder) Output(env worker.Env) (io.Writer, io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	buf := &bytes.Buffer{}
	r.bufs[fmt.Sprintf("%s/%d", env.Role, env.Pair)] = buf
	return buf, buf
}

// get returns the output of one worker. Only call it after the fleet that
// spawned the worker has returned.
func (r *outputRecorder) get(role worker.Role, pair int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	buf, ok := r.bufs[fmt.Sprintf("%s/%d", role, pair)]
	if !ok {
		return ""
	}
	return buf.String()
}

// finalSum returns the value of the sum attribute on the consumer's
// completion line, or "" if the consumer never logged one.
func finalSum(out string) string {
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if !strings.Contains(line, `msg="consumer finished"`) {
			continue
		}
		for _, field := range strings.Fields(line) {
			if v, ok := strings.CutPrefix(field, "sum="); ok {
				return v
			}
		}
	}
	return ""
}

// pipeRecorder wraps os.Pipe, remembers every descriptor it hands out and
// fails with failErr on call number failAt (1-based; 0 never fails).
type pipeRecorder struct {
	mu      sync.Mutex
	calls   int
	failAt  int
	failErr error
	files   []*os.File
}

func (p *pipeRecorder) Pipe() (*os.File, *os.File, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.calls == p.failAt {
		return nil, nil, p.failErr
	}
	r, w, err := os.Pipe()
	if err != nil {
		return nil, nil, err
	}
	p.files = append(p.files, r, w)
	return r, w, nil
}

// assertReleased fails the test if any pipe end created through p is still
// open in the test process.
func (p *pipeRecorder) assertReleased(t *testing.T) {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, f := range p.files {
		if err := f.Close(); !errors.Is(err, os.ErrClosed) {
			t.Errorf("channel end %s still open in coordinator (Close() = %v)", f.Name(), err)
		}
	}
}

var _ channel.PipeFunc = (&pipeRecorder{}).Pipe

// startRecorder counts start attempts and fails call number failAt (1-based;
// 0 never fails) with failErr without creating a process.
type startRecorder struct {
	mu      sync.Mutex
	calls   int
	failAt  int
	failErr error
}

func (s *startRecorder) Start(cmd *exec.Cmd) error {
	s.mu.Lock()
	s.calls++
	fail := s.calls == s.failAt
	s.mu.Unlock()
	if fail {
		return s.failErr
	}
	return cmd.Start()
}

func (s *startRecorder) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

var _ process.Starter = (&startRecorder{}).Start

// wantRoles checks the reported workers are in spawn order: producer then
// consumer for each pair, pairs ascending.
func wantRoles(t *testing.T, report *Report, pairs int) {
	t.Helper()
	if len(report.Results) != 2*pairs {
		t.Fatalf("report has %d results, want %d", len(report.Results), 2*pairs)
	}
	for i, res := range report.Results {
		wantRole := worker.RoleProducer
		if i%2 == 1 {
			wantRole = worker.RoleConsumer
		}
		if res.Worker.Role != wantRole || res.Worker.Pair != i/2 {
			t.Errorf("result %d is %s %d, want %s %d", i, res.Worker.Role, res.Worker.Pair, wantRole, i/2)
		}
	}
}
