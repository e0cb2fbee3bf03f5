package record

import (
	"sync"

	"bpnet/nn"
)

// History keeps every snapshot it receives, in order.
type History struct {
	mu        sync.Mutex
	snapshots []nn.Snapshot
}

func (h *History) Record(s nn.Snapshot) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snapshots = append(h.snapshots, s)
	return nil
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.snapshots)
}

// Last returns the most recent snapshot, if any.
func (h *History) Last() (nn.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.snapshots) == 0 {
		return nn.Snapshot{}, false
	}
	return h.snapshots[len(h.snapshots)-1], true
}

func (h *History) Snapshots() []nn.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]nn.Snapshot(nil), h.snapshots...)
}
