package tail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jclulow/junk-tempexporter/internal/ports"
)

const (
	// catchupWindow bounds how far back a fresh session starts in a file
	// that grew while nobody was tailing it.
	catchupWindow = 16 * 1024

	readChunk = 16 * 1024
)

// LineHandler receives each complete line with the terminator stripped. The
// slice is reused between calls and only valid for the duration of the call.
type LineHandler func(line []byte)

// session is one attempt at streaming one open file handle to completion. It
// ends cleanly (nil) when the file is rotated or truncated, and with an error
// on any open/read failure. The line accumulator never survives a session.
type session struct {
	id     string
	path   string
	poll   time.Duration
	clock  ports.Clock
	obs    ports.Observability
	handle LineHandler
}

func (s *session) run(ctx context.Context) error {
	f, err := os.Open(s.path)
	if err != nil {
		return &OpenError{Path: s.path, Err: err}
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return &OpenError{Path: s.path, Err: err}
	}
	ident, err := identityOf(fi)
	if err != nil {
		return &OpenError{Path: s.path, Err: err}
	}

	offset := initialOffset(fi.Size())
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return &ReadError{Path: s.path, Err: err}
	}

	s.obs.LogInfo("session_open",
		ports.Field{Key: "session", Value: s.id},
		ports.Field{Key: "path", Value: s.path},
		ports.Field{Key: "identity", Value: fmt.Sprintf("dev %x ino %x", ident.dev, ident.ino)},
		ports.Field{Key: "size", Value: fi.Size()},
		ports.Field{Key: "offset", Value: offset})

	var buf lineBuffer
	chunk := make([]byte, readChunk)
	for {
		n, err := f.Read(chunk)
		if n > 0 {
			offset += int64(n)
			buf.feed(chunk[:n], s.handle)
			s.obs.SetGauge("tempexporter_file_offset_bytes", float64(offset))
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return &ReadError{Path: s.path, Err: err}
		}

		// EOF: the logger should write more soon, but confirm the file
		// is still the one we opened before waiting on it.
		if checkRotation(s.path, ident, offset) == statusRotated {
			s.obs.IncCounter("tempexporter_rotations_total", 1)
			s.obs.LogInfo("session_rotated",
				ports.Field{Key: "session", Value: s.id},
				ports.Field{Key: "path", Value: s.path},
				ports.Field{Key: "offset", Value: offset})
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.clock.Sleep(s.poll)
	}
}

// initialOffset picks the first byte to consume for a file of the given
// length: within catchupWindow of the end for large files, the top otherwise.
func initialOffset(size int64) int64 {
	if size > catchupWindow {
		return size - catchupWindow
	}
	return 0
}
