// Package store holds the UI-facing state containers: toasts, theme, session
// and cabinet profile. Each is an explicit handle passed through the
// composition root; mutations notify registered observers.
package store

import "sync"

// notifier implements observer registration shared by the stores.
// Callbacks run synchronously on the mutating goroutine.
type notifier struct {
	mu   sync.Mutex
	seq  int
	subs map[int]func()
}

// Subscribe registers fn to run after every mutation and returns its
// cancel function.
func (n *notifier) Subscribe(fn func()) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func())
	}
	id := n.seq
	n.seq++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *notifier) notify() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
