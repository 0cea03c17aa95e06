// Package multitimer keeps an ordered list of countdowns that tick together
// but are started, paused, reset and removed one at a time.
package multitimer

// Presets are the durations, in minutes, offered for new entries.
var Presets = []int{1, 3, 5, 10, 15, 30}

// Registry owns the entries in creation order. Ids increase monotonically
// and are never reused, even after removal.
type Registry struct {
	entries []*Entry
	lastID  int64
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a stopped entry of the given length.
func (r *Registry) Add(minutes int) *Entry {
	minutes = max(minutes, 0)
	r.lastID++
	e := newEntry(r.lastID, minutes)
	r.entries = append(r.entries, e)
	return e
}

func (r *Registry) Get(id int64) *Entry {
	for _, e := range r.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Toggle flips the running state of id. Unknown ids are ignored.
func (r *Registry) Toggle(id int64) {
	e := r.Get(id)
	if e == nil {
		return
	}
	if e.session.Running() {
		e.session.Pause()
		return
	}
	e.session.Start()
}

// Reset restores id to its initial length, stopped.
func (r *Registry) Reset(id int64) {
	if e := r.Get(id); e != nil {
		e.session.Rewind()
	}
}

// Remove deletes id. Unknown ids are ignored.
func (r *Registry) Remove(id int64) {
	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// Entries returns the entries in creation order. The slice is a copy;
// the entries are shared.
func (r *Registry) Entries() []*Entry {
	return append([]*Entry(nil), r.entries...)
}

func (r *Registry) Len() int {
	return len(r.entries)
}

// AnyRunning reports whether the registry needs to be ticked at all.
func (r *Registry) AnyRunning() bool {
	for _, e := range r.entries {
		if e.session.Running() && e.session.Remaining() > 0 {
			return true
		}
	}
	return false
}

// Tick advances every running entry by one unit and returns the entries
// that expired on this tick. One entry expiring never affects another.
func (r *Registry) Tick() []*Entry {
	if !r.AnyRunning() {
		return nil
	}
	var expired []*Entry
	for _, e := range r.entries {
		if e.session.Tick() {
			expired = append(expired, e)
		}
	}
	return expired
}
