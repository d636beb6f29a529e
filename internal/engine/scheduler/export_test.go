package scheduler

import (
	"time"

	"go.trai.ch/central/internal/core/ports"
)

// SetClock replaces the scheduler clock. This is exported for testing purposes only.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}

// NewLineWriter exposes the line splitter for white-box testing.
func NewLineWriter(pkg string, renderer ports.Renderer) interface {
	Write(p []byte) (int, error)
	Close() error
} {
	return newLineWriter(pkg, renderer)
}
