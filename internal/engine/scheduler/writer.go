package scheduler

import (
	"bytes"
	"strings"

	"go.trai.ch/central/internal/core/ports"
)

// lineWriter splits a byte stream into lines and forwards each one to the renderer as soon
// as it is complete. A trailing partial line is forwarded on Close.
type lineWriter struct {
	pkg      string
	renderer ports.Renderer
	buf      []byte
}

func newLineWriter(pkg string, renderer ports.Renderer) *lineWriter {
	return &lineWriter{pkg: pkg, renderer: renderer}
}

func (w *lineWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *lineWriter) Close() error {
	if len(w.buf) > 0 {
		w.emit(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *lineWriter) emit(line []byte) {
	// PTYs may introduce \r. Remove it.
	w.renderer.OnPackageLog(w.pkg, strings.TrimSuffix(string(line), "\r"))
}
