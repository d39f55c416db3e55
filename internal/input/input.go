// Package input delivers raw key bytes from a reader without blocking the
// frame loop.
package input

import "io"

// Stream reads bytes from r on a background goroutine and hands them to the
// frame loop on demand.
type Stream struct {
	ch chan byte
}

// StartStream begins reading from r. The goroutine exits when r reaches EOF
// or errors (e.g. the SSH session closed).
func StartStream(r io.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 16)}
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				select {
				case s.ch <- buf[0]:
				default: // frame loop is behind, drop the key
				}
			}
			if err != nil {
				close(s.ch)
				return
			}
		}
	}()
	return s
}

// Poll returns the next pending byte, if any, without blocking. closed
// reports that the underlying reader is gone.
func (s *Stream) Poll() (b byte, ok bool, closed bool) {
	select {
	case b, ok = <-s.ch:
		if !ok {
			return 0, false, true
		}
		return b, true, false
	default:
		return 0, false, false
	}
}
