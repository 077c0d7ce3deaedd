package prompt

import (
	"bufio"
	"context"
	"io"
	"sync"
)

type lineResult struct {
	line string
	err  error
}

// lineReader hands out stdin lines one at a time while letting a caller give
// up on a blocked read when its context is cancelled.
type lineReader struct {
	src       io.Reader
	startOnce sync.Once
	closeOnce sync.Once
	lines     chan lineResult
	done      chan struct{}
	stopped   chan struct{}
}

func newLineReader(src io.Reader) *lineReader {
	return &lineReader{
		src:     src,
		lines:   make(chan lineResult),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (r *lineReader) start() {
	go func() {
		defer close(r.stopped)
		defer close(r.lines)
		scanner := bufio.NewScanner(r.src)
		for scanner.Scan() {
			if !r.send(lineResult{line: scanner.Text()}) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			r.send(lineResult{err: err})
		}
	}()
}

func (r *lineReader) send(res lineResult) bool {
	select {
	case r.lines <- res:
		return true
	case <-r.done:
		return false
	}
}

// ReadLine returns the next line without its terminator. io.EOF is returned
// once input is exhausted or the reader is closed.
func (r *lineReader) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	select {
	case <-r.done:
		return "", io.EOF
	default:
	}
	r.startOnce.Do(r.start)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-r.done:
		return "", io.EOF
	case res, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	}
}

// Close releases the scanner goroutine once it has a line to hand over. A
// read already blocked on src still finishes first.
func (r *lineReader) Close() {
	r.closeOnce.Do(func() { close(r.done) })
}
