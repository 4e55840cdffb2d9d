package shell

// History is an ordered sequence of previously entered raw lines, newest
// last.
type History interface {
	// Add records a raw line.
	Add(line string)
	// Newest returns the most recent line, reporting false when the history
	// is empty.
	Newest() (string, bool)
	// Lines returns all lines, oldest first.
	Lines() []string
}

// MemoryHistory keeps history in memory, optionally capped to a limit.
type MemoryHistory struct {
	lines []string
	limit int
}

var _ History = (*MemoryHistory)(nil)

// NewMemoryHistory creates a history buffer. A limit of zero means
// unlimited.
func NewMemoryHistory(limit int) *MemoryHistory {
	return &MemoryHistory{limit: limit}
}

func (h *MemoryHistory) Add(line string) {
	h.lines = append(h.lines, line)
	if h.limit > 0 && len(h.lines) > h.limit {
		h.lines = h.lines[len(h.lines)-h.limit:]
	}
}

func (h *MemoryHistory) Newest() (string, bool) {
	if len(h.lines) == 0 {
		return "", false
	}
	return h.lines[len(h.lines)-1], true
}

func (h *MemoryHistory) Lines() []string {
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}
