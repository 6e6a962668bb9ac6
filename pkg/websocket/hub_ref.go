package websocket

import (
	"log"
	"runtime/debug"
	"sync/atomic"
	"time"
)

// HubRef points at the live Hub. Supervise swaps in a fresh hub after a
// panic without restarting the HTTP server; handlers call Get per connection.
type HubRef struct {
	v atomic.Pointer[Hub]

	// RestartDelay is the pause before a replacement hub starts.
	RestartDelay time.Duration
}

func NewHubRef(initial *Hub) *HubRef {
	r := &HubRef{RestartDelay: time.Second}
	r.v.Store(initial)
	return r
}

func (r *HubRef) Get() (*Hub, bool) {
	h := r.v.Load()
	return h, h != nil
}

// Replace installs h and stops the hub it replaces.
func (r *HubRef) Replace(h *Hub) {
	if old := r.v.Swap(h); old != nil && old != h {
		old.Stop()
	}
}

// Supervise runs the current hub and restarts it after a panic. It returns
// once a hub's Run exits normally, i.e. after Stop.
func (r *HubRef) Supervise() {
	for {
		h, ok := r.Get()
		if !ok {
			h = NewHub()
			r.Replace(h)
		}
		if !runRecovering(h) {
			return
		}
		// Replace stops the dead hub, turning its clients' hub calls into
		// no-ops; runRecovering has already hung up on them.
		r.Replace(NewHub())
		time.Sleep(r.RestartDelay)
	}
}

func runRecovering(h *Hub) (panicked bool) {
	defer func() {
		if rec := recover(); rec != nil {
			panicked = true
			log.Printf("hub.Run panic: %v\n%s", rec, debug.Stack())
			// Run is gone, so nothing else touches the rooms. Clients hang
			// up and reconnect to the replacement hub.
			h.dropAll()
		}
	}()
	h.Run()
	return false
}
