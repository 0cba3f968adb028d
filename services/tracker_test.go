package services

import (
	"testing"
	"time"
)

func TestTrackerExpiry(t *testing.T) {
	tr := NewTracker(20 * time.Millisecond)
	expired := make(chan Pending, 1)
	tr.OnExpire(func(p Pending) { expired <- p })

	tr.Put("bob", "R1", "bob")

	select {
	case p := <-expired:
		if p.RequesterID != "bob" || p.RoomCode != "R1" {
			t.Fatalf("expired wrong request: %+v", p)
		}
	case <-time.After(time.Second):
		t.Fatalf("expiry callback never fired")
	}
	if tr.Len() != 0 {
		t.Fatalf("expired request still tracked")
	}
}

func TestTrackerResolveCancelsTimer(t *testing.T) {
	tr := NewTracker(20 * time.Millisecond)
	expired := make(chan Pending, 1)
	tr.OnExpire(func(p Pending) { expired <- p })

	tr.Put("bob", "R1", "bob")
	p, ok := tr.Resolve("bob")
	if !ok || p.Name != "bob" {
		t.Fatalf("resolve = (%+v, %v), want the pending request", p, ok)
	}

	// Second resolution attempt finds nothing.
	if _, ok := tr.Resolve("bob"); ok {
		t.Fatalf("request resolved twice")
	}

	select {
	case <-expired:
		t.Fatalf("timer fired after the request was resolved")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestTrackerSupersede(t *testing.T) {
	tr := NewTracker(30 * time.Millisecond)
	expired := make(chan Pending, 2)
	tr.OnExpire(func(p Pending) { expired <- p })

	tr.Put("bob", "R1", "bob")
	tr.Put("bob", "R2", "bobby") // replaces and restarts the clock

	if tr.Len() != 1 {
		t.Fatalf("tracker holds %d requests for one requester, want 1", tr.Len())
	}

	p, ok := tr.Resolve("bob")
	if !ok || p.RoomCode != "R2" || p.Name != "bobby" {
		t.Fatalf("resolve = %+v, want the superseding request", p)
	}

	// Neither the cancelled original nor the resolved replacement may
	// ever reach the expiry callback.
	select {
	case p := <-expired:
		t.Fatalf("stale timer fired for %+v", p)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestTrackerResolveByRoom(t *testing.T) {
	tr := NewTracker(time.Minute)
	tr.Put("bob", "R1", "bob")
	tr.Put("carol", "R1", "carol")
	tr.Put("dave", "R2", "dave")

	resolved := tr.ResolveByRoom("R1")
	if len(resolved) != 2 {
		t.Fatalf("ResolveByRoom(R1) returned %d requests, want 2", len(resolved))
	}
	if tr.Len() != 1 {
		t.Fatalf("tracker holds %d requests, want 1 (dave)", tr.Len())
	}
	if _, ok := tr.Resolve("dave"); !ok {
		t.Fatalf("dave's request disappeared")
	}
}
