// Package notifier fans out dataset reload events to long-lived SSE streams.
package notifier

import "sync"

// Notifier broadcasts snapshot generations to every subscribed stream.
// Each reload bumps the generation; a listener that has not consumed the
// previous value only ever sees the newest one.
type Notifier struct {
	mu         sync.RWMutex
	listeners  map[chan uint64]struct{}
	generation uint64
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan uint64]struct{}),
	}
}

// Subscribe returns a channel that receives the generation of each new
// snapshot. The caller must call Unsubscribe when done.
func (n *Notifier) Subscribe() chan uint64 {
	ch := make(chan uint64, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan uint64) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast advances the generation and delivers it to all listeners
// without blocking. A stale pending value is replaced.
func (n *Notifier) Broadcast() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.generation++
	gen := n.generation
	for ch := range n.listeners {
		select {
		case <-ch:
		default:
		}
		ch <- gen
	}
	return gen
}

// Generation returns the number of broadcasts so far.
func (n *Notifier) Generation() uint64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.generation
}

// Len returns the number of active listeners.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
