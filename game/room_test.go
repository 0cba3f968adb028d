package game

import (
	"errors"
	"testing"

	"github.com/bellapacxx/tambola-backend/models"
)

func newTestRoom() *Room {
	return NewRoom("R1", "alice", "Alice")
}

// drawAll draws every remaining number as the given moderator.
func drawAll(t *testing.T, r *Room, moderatorID string) {
	t.Helper()
	for {
		_, err := r.Draw(moderatorID)
		if errors.Is(err, models.ErrNumbersExhausted) {
			return
		}
		if err != nil {
			t.Fatalf("draw failed: %v", err)
		}
	}
}

func TestAdmit(t *testing.T) {
	r := newTestRoom()

	if err := r.Admit("bob", "bob"); err != nil {
		t.Fatalf("admit bob: %v", err)
	}
	if r.PlayerCount() != 2 {
		t.Fatalf("player count = %d, want 2", r.PlayerCount())
	}

	// Case-insensitive name collision.
	if err := r.Admit("carol", "BOB"); !errors.Is(err, models.ErrNameTaken) {
		t.Fatalf("admit BOB err = %v, want ErrNameTaken", err)
	}
	// Collision with the moderator's own name too.
	if err := r.Admit("carol", "alice"); !errors.Is(err, models.ErrNameTaken) {
		t.Fatalf("admit alice err = %v, want ErrNameTaken", err)
	}

	if err := r.Start("alice"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := r.Admit("carol", "Carol"); !errors.Is(err, models.ErrGameStarted) {
		t.Fatalf("admit after start err = %v, want ErrGameStarted", err)
	}
	if r.PlayerCount() != 2 {
		t.Fatalf("failed admits mutated the room: %d players", r.PlayerCount())
	}
}

func TestStart(t *testing.T) {
	r := newTestRoom()
	if err := r.Admit("bob", "bob"); err != nil {
		t.Fatalf("admit: %v", err)
	}

	if err := r.Start("bob"); !errors.Is(err, models.ErrNotModerator) {
		t.Fatalf("start by non-moderator err = %v, want ErrNotModerator", err)
	}
	if err := r.Start("alice"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := r.Start("alice"); !errors.Is(err, models.ErrGameStarted) {
		t.Fatalf("second start err = %v, want ErrGameStarted", err)
	}
}

func TestDraw(t *testing.T) {
	r := newTestRoom()

	if _, err := r.Draw("alice"); !errors.Is(err, models.ErrGameNotStarted) {
		t.Fatalf("draw in lobby err = %v, want ErrGameNotStarted", err)
	}
	if err := r.Start("alice"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := r.Draw("bob"); !errors.Is(err, models.ErrNotModerator) {
		t.Fatalf("draw by stranger err = %v, want ErrNotModerator", err)
	}

	seen := make(map[int]bool)
	for i := 0; i < 90; i++ {
		n, err := r.Draw("alice")
		if err != nil {
			t.Fatalf("draw %d: %v", i+1, err)
		}
		if n < 1 || n > 90 {
			t.Fatalf("drew %d, out of range", n)
		}
		if seen[n] {
			t.Fatalf("drew %d twice", n)
		}
		seen[n] = true
	}

	if _, err := r.Draw("alice"); !errors.Is(err, models.ErrNumbersExhausted) {
		t.Fatalf("91st draw err = %v, want ErrNumbersExhausted", err)
	}
	if got := len(r.DrawnNumbers()); got != 90 {
		t.Fatalf("drawn history length = %d, want 90", got)
	}
}

func TestMarkValidation(t *testing.T) {
	r := newTestRoom()
	if err := r.Start("alice"); err != nil {
		t.Fatalf("start: %v", err)
	}

	snap := r.Snapshot()
	alice := snap.Players[0]
	onCard := alice.Card.Numbers()[0]

	offCard := 0
	for n := 1; n <= 90; n++ {
		if !alice.Card.Contains(n) {
			offCard = n
			break
		}
	}

	if _, err := r.Mark("stranger", onCard); !errors.Is(err, models.ErrNotInRoom) {
		t.Fatalf("mark by stranger err = %v, want ErrNotInRoom", err)
	}
	if _, err := r.Mark("alice", offCard); !errors.Is(err, models.ErrNumberNotOnCard) {
		t.Fatalf("mark off-card err = %v, want ErrNumberNotOnCard", err)
	}
	// On the card but not drawn yet: cannot mark ahead of the draw.
	if _, err := r.Mark("alice", onCard); !errors.Is(err, models.ErrNumberNotCalled) {
		t.Fatalf("mark undrawn err = %v, want ErrNumberNotCalled", err)
	}
	if got := len(r.Snapshot().Players[0].MarkedNumbers); got != 0 {
		t.Fatalf("failed marks mutated state: %d marked", got)
	}
}

func TestMarkIdempotentAndPrizes(t *testing.T) {
	r := newTestRoom()
	if err := r.Admit("bob", "bob"); err != nil {
		t.Fatalf("admit: %v", err)
	}
	if err := r.Start("alice"); err != nil {
		t.Fatalf("start: %v", err)
	}
	drawAll(t, r, "alice")

	aliceCard := r.Snapshot().Players[0].Card
	first := aliceCard.Numbers()[0]

	changed, err := r.Mark("alice", first)
	if err != nil || !changed {
		t.Fatalf("first mark = (%v, %v), want (true, nil)", changed, err)
	}
	changed, err = r.Mark("alice", first)
	if err != nil || changed {
		t.Fatalf("repeat mark = (%v, %v), want (false, nil)", changed, err)
	}

	// Alice marks out her whole ticket and takes every prize.
	for _, n := range aliceCard.Numbers() {
		if _, err := r.Mark("alice", n); err != nil {
			t.Fatalf("mark %d: %v", n, err)
		}
	}

	snap := r.Snapshot()
	p := snap.Players[0]
	if p.CompletedRows != [3]bool{true, true, true} || !p.HasFullHouse {
		t.Fatalf("alice prizes = %v full=%v, want all complete", p.CompletedRows, p.HasFullHouse)
	}
	if p.Score != 100 {
		t.Fatalf("alice score = %d, want 100", p.Score)
	}
	for _, kind := range []string{PrizeFirstRow, PrizeSecondRow, PrizeThirdRow, PrizeFullHouse} {
		if w, ok := snap.Winners[kind]; !ok || w.PlayerID != "alice" {
			t.Fatalf("winner of %s = %+v, want alice", kind, snap.Winners[kind])
		}
	}

	// Bob finishes later; no prize is reassigned.
	bobCard := snap.Players[1].Card
	for _, n := range bobCard.Numbers() {
		if _, err := r.Mark("bob", n); err != nil {
			t.Fatalf("bob mark %d: %v", n, err)
		}
	}
	for kind, w := range r.Winners() {
		if w.PlayerID != "alice" {
			t.Fatalf("prize %s reassigned to %s", kind, w.PlayerID)
		}
	}
}

func TestRemoveAndModeratorMigration(t *testing.T) {
	r := newTestRoom()
	if err := r.Admit("bob", "bob"); err != nil {
		t.Fatalf("admit bob: %v", err)
	}
	if err := r.Admit("carol", "carol"); err != nil {
		t.Fatalf("admit carol: %v", err)
	}

	res := r.Remove("stranger")
	if res.Removed {
		t.Fatalf("removed a player who was never in the room")
	}

	// Moderator leaves: role migrates to the next player in join order.
	res = r.Remove("alice")
	if !res.Removed || res.NewModeratorID != "bob" || res.Empty {
		t.Fatalf("remove alice = %+v, want migration to bob", res)
	}
	if !r.IsModerator("bob") {
		t.Fatalf("bob did not become moderator")
	}

	// Non-moderator leaves: no migration.
	res = r.Remove("carol")
	if !res.Removed || res.NewModeratorID != "" || res.Empty {
		t.Fatalf("remove carol = %+v, want plain removal", res)
	}

	// Last player leaves: room must be deleted by the caller.
	res = r.Remove("bob")
	if !res.Removed || !res.Empty {
		t.Fatalf("remove bob = %+v, want empty room", res)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	r := newTestRoom()
	if err := r.Start("alice"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := r.Draw("alice"); err != nil {
		t.Fatalf("draw: %v", err)
	}

	snap := r.Snapshot()
	snap.DrawnNumbers[0] = -1
	snap.Winners["bogus"] = models.Winner{PlayerID: "x"}

	if r.DrawnNumbers()[0] == -1 {
		t.Fatalf("snapshot shares drawn slice with room")
	}
	if len(r.Winners()) != 0 {
		t.Fatalf("snapshot shares winners map with room")
	}
}
