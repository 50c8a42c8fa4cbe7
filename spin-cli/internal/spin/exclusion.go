package spin

import (
	"slices"
	"sync"
)

// ExclusionSet holds the ids the next spin must not return. It is shared by
// the Recorder (writer) and the Sequencer (reader).
type ExclusionSet struct {
	mu  sync.Mutex
	ids map[int]struct{}
}

func NewExclusionSet() *ExclusionSet {
	return &ExclusionSet{ids: map[int]struct{}{}}
}

func (e *ExclusionSet) Add(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ids[id] = struct{}{}
}

func (e *ExclusionSet) Contains(id int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.ids[id]
	return ok
}

// IDs returns the excluded ids in ascending order.
func (e *ExclusionSet) IDs() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]int, 0, len(e.ids))
	for id := range e.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (e *ExclusionSet) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	clear(e.ids)
}
