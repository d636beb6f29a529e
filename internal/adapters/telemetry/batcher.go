// Package telemetry records build phases and packages as OpenTelemetry spans.
package telemetry

import (
	"bytes"
	"sync"

	"go.trai.ch/zerr"
)

// DefaultChunkSize is the number of output bytes collected into one span event.
const DefaultChunkSize = 4096

var errBatcherClosed = zerr.New("output batcher is closed")

// Batcher collects package output into chunks of about its size limit.
// A chunk ends at the last line boundary within the limit, or at the first one
// past it for a longer line. Only output without any newline is split at the
// limit. Close emits whatever is left.
type Batcher struct {
	size    int
	onChunk func(string)

	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

// NewBatcher returns a Batcher calling onChunk for every completed chunk.
// A non-positive size selects DefaultChunkSize.
func NewBatcher(size int, onChunk func(string)) *Batcher {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &Batcher{size: size, onChunk: onChunk}
}

// Write buffers p and emits chunks while the buffer is over the size limit.
func (b *Batcher) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, errBatcherClosed
	}

	b.buf.Write(p)
	for b.buf.Len() >= b.size {
		data := b.buf.Bytes()
		cut := chunkEnd(data, b.size)
		b.emit(string(data[:cut]))
		b.buf.Next(cut)
	}
	return len(p), nil
}

// Close emits whatever is left. Further writes fail.
func (b *Batcher) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	if b.buf.Len() > 0 {
		b.emit(b.buf.String())
		b.buf.Reset()
	}
	return nil
}

// chunkEnd returns the length of the next chunk. data holds at least size bytes.
func chunkEnd(data []byte, size int) int {
	if i := bytes.LastIndexByte(data[:size], '\n'); i >= 0 {
		return i + 1
	}
	if i := bytes.IndexByte(data[size:], '\n'); i >= 0 {
		return size + i + 1
	}
	return size
}

func (b *Batcher) emit(chunk string) {
	if b.onChunk != nil {
		b.onChunk(chunk)
	}
}
