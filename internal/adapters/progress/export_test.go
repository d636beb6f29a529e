package progress

// Current returns the position and size of the running bar, or false when no bar runs.
func (r *Renderer) Current() (current, total int64, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bar == nil {
		return 0, 0, false
	}
	s := r.bar.State()
	return s.CurrentNum, s.Max, true
}

// SetTail overrides the number of kept output lines.
func (r *Renderer) SetTail(n int) {
	r.tail = n
}
