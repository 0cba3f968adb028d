package services

import (
	"sync"
	"time"
)

// DefaultJoinRequestTTL matches how long a join request waits for the
// moderator before expiring on its own.
const DefaultJoinRequestTTL = 2 * time.Minute

// Pending is one unresolved join request.
type Pending struct {
	RequesterID string
	RoomCode    string
	Name        string
	Expiry      time.Time

	timer *time.Timer
}

// Tracker holds pending join requests keyed by requester, independent of
// any room so requests can be cleared on disconnect or timeout without
// reaching into room state. At most one request per requester exists; a
// new one supersedes the old and restarts the clock.
//
// Every resolution path (approve, deny, expiry, disconnect, room gone,
// supersede) funnels through the same removal under the tracker lock, so
// a request can never be resolved twice: a timer that fires after its
// entry was already replaced or removed finds a different identity and
// does nothing.
type Tracker struct {
	mu       sync.Mutex
	pending  map[string]*Pending
	ttl      time.Duration
	onExpire func(Pending)
}

func NewTracker(ttl time.Duration) *Tracker {
	if ttl <= 0 {
		ttl = DefaultJoinRequestTTL
	}
	return &Tracker{
		pending: make(map[string]*Pending),
		ttl:     ttl,
	}
}

// TTL returns the expiry window applied to new requests.
func (t *Tracker) TTL() time.Duration {
	return t.ttl
}

// OnExpire registers the callback invoked when a request times out
// without moderator action.
func (t *Tracker) OnExpire(fn func(Pending)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onExpire = fn
}

// Put registers a pending request for requesterID, superseding and
// cancelling any prior one from the same requester.
func (t *Tracker) Put(requesterID, roomCode, name string) Pending {
	t.mu.Lock()
	defer t.mu.Unlock()

	if old, ok := t.pending[requesterID]; ok {
		old.timer.Stop()
		delete(t.pending, requesterID)
	}

	p := &Pending{
		RequesterID: requesterID,
		RoomCode:    roomCode,
		Name:        name,
		Expiry:      time.Now().Add(t.ttl),
	}
	p.timer = time.AfterFunc(t.ttl, func() { t.expire(requesterID, p) })
	t.pending[requesterID] = p
	return *p
}

func (t *Tracker) expire(requesterID string, p *Pending) {
	t.mu.Lock()
	current, ok := t.pending[requesterID]
	if !ok || current != p {
		// Already resolved or superseded; stale timer.
		t.mu.Unlock()
		return
	}
	delete(t.pending, requesterID)
	fn := t.onExpire
	t.mu.Unlock()

	if fn != nil {
		fn(*p)
	}
}

// Resolve removes and returns the pending request for requesterID. The
// second return is false when none exists (e.g. it already expired).
func (t *Tracker) Resolve(requesterID string) (Pending, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.pending[requesterID]
	if !ok {
		return Pending{}, false
	}
	p.timer.Stop()
	delete(t.pending, requesterID)
	return *p, true
}

// ResolveByRoom removes and returns every pending request aimed at
// roomCode, for when the room disappears.
func (t *Tracker) ResolveByRoom(roomCode string) []Pending {
	t.mu.Lock()
	defer t.mu.Unlock()

	var resolved []Pending
	for id, p := range t.pending {
		if p.RoomCode == roomCode {
			p.timer.Stop()
			delete(t.pending, id)
			resolved = append(resolved, *p)
		}
	}
	return resolved
}

// Len returns the number of unresolved requests.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}
