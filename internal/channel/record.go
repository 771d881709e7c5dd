package channel

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/giantswarm/pipefleet/internal/sentinel"
)

// ErrTransfer is returned when a record cannot be moved across the channel
// whole: a short or failed write, a read error, or a stream that ends in the
// middle of a record.
const ErrTransfer = sentinel.Error("record transfer failed")

// RecordSize is the width in bytes of one record on the wire. It is below
// PIPE_BUF, so a single write of one record is atomic.
const RecordSize = 4

// WriteRecord writes v as one RecordSize-byte record in native byte order with
// a single Write call.
func WriteRecord(w io.Writer, v int32) error {
	var buf [RecordSize]byte
	binary.NativeEndian.PutUint32(buf[:], uint32(v))

	n, err := w.Write(buf[:])
	if err != nil {
		return fmt.Errorf("write record %d: %w: %w", v, ErrTransfer, err)
	}
	if n != RecordSize {
		return fmt.Errorf("write record %d: %w: wrote %d of %d bytes", v, ErrTransfer, n, RecordSize)
	}
	return nil
}

// ReadRecord reads exactly one record from r.
//
// It returns io.EOF, unwrapped, when the stream ends cleanly on a record
// boundary. A stream that ends after a partial record, or any other read
// error, is reported as ErrTransfer.
func ReadRecord(r io.Reader) (int32, error) {
	var buf [RecordSize]byte

	n, err := io.ReadFull(r, buf[:])
	switch {
	case err == nil:
		return int32(binary.NativeEndian.Uint32(buf[:])), nil
	case errors.Is(err, io.EOF) && n == 0:
		return 0, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		return 0, fmt.Errorf("read record: %w: stream ended after %d of %d bytes", ErrTransfer, n, RecordSize)
	default:
		return 0, fmt.Errorf("read record: %w: %w", ErrTransfer, err)
	}
}
