package channel

import (
	"errors"
	"fmt"
	"os"

	"github.com/giantswarm/pipefleet/internal/sentinel"
)

// ErrResource is returned when the OS cannot allocate a pipe, typically
// because the process or system descriptor table is exhausted.
const ErrResource = sentinel.Error("channel resources exhausted")

// PipeFunc allocates the two ends of a kernel pipe. os.Pipe is the production
// implementation; tests substitute failing constructors.
type PipeFunc func() (r *os.File, w *os.File, err error)

// Channel is a unidirectional byte stream: bytes written to the write end are
// read, in order, from the read end.
//
// Channel is not safe for concurrent use. Each process owns its own copy of
// the handles and closes them independently.
type Channel struct {
	r *os.File
	w *os.File
}

// New creates a Channel backed by os.Pipe with both ends open in the calling
// process.
func New() (*Channel, error) {
	return NewWithPipe(os.Pipe)
}

// NewWithPipe creates a Channel using the given pipe constructor. A nil pipe
// falls back to os.Pipe. Failures are wrapped in ErrResource.
func NewWithPipe(pipe PipeFunc) (*Channel, error) {
	if pipe == nil {
		pipe = os.Pipe
	}
	r, w, err := pipe()
	if err != nil {
		return nil, fmt.Errorf("create pipe: %w: %w", ErrResource, err)
	}
	return &Channel{r: r, w: w}, nil
}

// ReadEnd returns the read end, or nil once CloseRead has been called.
func (c *Channel) ReadEnd() *os.File {
	return c.r
}

// WriteEnd returns the write end, or nil once CloseWrite has been called.
func (c *Channel) WriteEnd() *os.File {
	return c.w
}

// CloseRead releases the read end in the calling process. The handle is
// cleared so later calls are no-ops.
func (c *Channel) CloseRead() error {
	if c.r == nil {
		return nil
	}
	err := c.r.Close()
	c.r = nil
	if err != nil {
		return fmt.Errorf("close read end: %w", err)
	}
	return nil
}

// CloseWrite releases the write end in the calling process. The handle is
// cleared so later calls are no-ops.
//
// Readers see end-of-stream only when the last copy of the write end, in any
// process, has been closed.
func (c *Channel) CloseWrite() error {
	if c.w == nil {
		return nil
	}
	err := c.w.Close()
	c.w = nil
	if err != nil {
		return fmt.Errorf("close write end: %w", err)
	}
	return nil
}

// Close releases both ends. Both closes are attempted even if the first one
// fails.
func (c *Channel) Close() error {
	return errors.Join(c.CloseRead(), c.CloseWrite())
}
