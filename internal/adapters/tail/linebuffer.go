package tail

// lineBuffer reassembles newline-delimited lines from raw read chunks. The
// pending accumulator never contains a terminator and persists across EOF
// waits; a trailing unterminated line is withheld until its newline arrives.
type lineBuffer struct {
	pending []byte
}

// feed scans one chunk, invoking emit once per completed line with the
// terminator stripped. The emitted slice is reused and only valid for the
// duration of the callback.
func (b *lineBuffer) feed(chunk []byte, emit func(line []byte)) {
	for _, c := range chunk {
		if c == '\n' {
			emit(b.pending)
			b.pending = b.pending[:0]
		} else {
			b.pending = append(b.pending, c)
		}
	}
}
