package services

import (
	"strings"

	"github.com/bellapacxx/tambola-backend/game"
	"github.com/bellapacxx/tambola-backend/models"
	"github.com/bellapacxx/tambola-backend/utils/logger"
)

// Gateway turns connection intents into room, registry and tracker
// operations, one method per intent. It never touches room state
// directly; all mutation goes through Room's own transitions, and all
// output goes through the Emitter, so the whole state machine runs
// without a live transport in tests.
type Gateway struct {
	registry *Registry
	tracker  *Tracker
	emitter  Emitter
	history  *History
}

func NewGateway(registry *Registry, tracker *Tracker, emitter Emitter, history *History) *Gateway {
	g := &Gateway{
		registry: registry,
		tracker:  tracker,
		emitter:  emitter,
		history:  history,
	}
	tracker.OnExpire(g.handleExpiredRequest)
	return g
}

func normalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func (g *Gateway) fail(callerID string, err error) {
	g.emitter.ToClient(callerID, EventError, err.Error())
}

// handleExpiredRequest runs when a pending join request times out with no
// moderator decision.
func (g *Gateway) handleExpiredRequest(p Pending) {
	logger.Infof("[Tracker] join request from %s to room %s expired", p.RequesterID, p.RoomCode)
	g.emitter.ToClient(p.RequesterID, EventJoinDenied, "Join request expired")
}

// CreateRoom allocates a room with the caller as moderator and first
// player.
func (g *Gateway) CreateRoom(callerID, rawName string) {
	name, err := models.ValidateName(rawName)
	if err != nil {
		g.fail(callerID, err)
		return
	}

	room := g.registry.CreateRoom(callerID, name)
	g.emitter.JoinRoom(callerID, room.Code())

	snap := room.Snapshot()
	g.emitter.ToClient(callerID, EventRoomCreated, snap)
	g.emitter.ToRoom(room.Code(), EventRoomUpdate, snap)
	logger.Infof("[Room %s] created by %s (%s)", room.Code(), name, callerID)
}

// RequestJoin files a pending join request: the moderator is notified,
// the requester gets an expiry estimate, and nothing on the room changes
// until the moderator decides or the request times out.
func (g *Gateway) RequestJoin(callerID, rawCode, rawName string) {
	name, err := models.ValidateName(rawName)
	if err != nil {
		g.fail(callerID, err)
		return
	}
	code := normalizeCode(rawCode)

	room, ok := g.registry.Get(code)
	if !ok {
		g.fail(callerID, models.ErrRoomNotFound)
		return
	}
	if err := room.CanJoin(); err != nil {
		g.fail(callerID, err)
		return
	}
	if room.NameTaken(name) {
		g.fail(callerID, models.ErrNameTaken)
		return
	}

	pending := g.tracker.Put(callerID, code, name)

	g.emitter.ToClient(room.ModeratorID(), EventJoinRequest, joinRequestNotice{
		RequesterID: callerID,
		PlayerName:  name,
		RoomCode:    code,
	})
	g.emitter.ToClient(callerID, EventRequestPending, requestPendingNotice{
		RoomCode:    code,
		PlayerName:  name,
		ExpiresInMS: g.tracker.TTL().Milliseconds(),
	})
	logger.Infof("[Room %s] join request from %s (%s), expires %s", code, name, callerID, pending.Expiry.Format("15:04:05"))
}

// ApproveJoin resolves a pending request. Whatever the outcome, the
// pending entry is gone afterwards: approval, denial, a non-moderator
// caller and a vanished requester all cancel it.
func (g *Gateway) ApproveJoin(callerID, requesterID string, approved bool) {
	pending, ok := g.tracker.Resolve(requesterID)
	if !ok {
		g.fail(callerID, models.ErrNoPendingRequest)
		return
	}

	room, ok := g.registry.Get(pending.RoomCode)
	if !ok || !room.IsModerator(callerID) {
		// Stale or forged approval; the request was already consumed
		// above so it cannot be replayed.
		g.fail(callerID, models.ErrNotModerator)
		return
	}

	if !g.emitter.IsConnected(requesterID) {
		g.fail(callerID, models.ErrRequesterGone)
		return
	}

	if !approved {
		g.emitter.ToClient(requesterID, EventJoinDenied, "Host rejected your request")
		logger.Infof("[Room %s] join denied for %s", pending.RoomCode, requesterID)
		return
	}

	// Admit re-checks phase and name, closing the race where two
	// requesters picked the same name concurrently.
	if err := room.Admit(requesterID, pending.Name); err != nil {
		g.emitter.ToClient(requesterID, EventJoinDenied, err.Error())
		return
	}

	g.emitter.JoinRoom(requesterID, pending.RoomCode)
	snap := room.Snapshot()
	g.emitter.ToClient(requesterID, EventJoinApproved, snap)
	g.emitter.ToRoom(pending.RoomCode, EventRoomUpdate, snap)
	logger.Infof("[Room %s] %s (%s) admitted", pending.RoomCode, pending.Name, requesterID)
}

// StartGame moves a room into play. Moderator only.
func (g *Gateway) StartGame(callerID, rawCode string) {
	code := normalizeCode(rawCode)
	room, ok := g.registry.Get(code)
	if !ok {
		g.fail(callerID, models.ErrRoomNotFound)
		return
	}
	if err := room.Start(callerID); err != nil {
		g.fail(callerID, err)
		return
	}

	g.emitter.ToRoom(code, EventRoomUpdate, room.Snapshot())
	logger.Infof("[Room %s] game started", code)
}

// CallNumber draws the next number. Moderator only.
func (g *Gateway) CallNumber(callerID, rawCode string) {
	code := normalizeCode(rawCode)
	room, ok := g.registry.Get(code)
	if !ok {
		g.fail(callerID, models.ErrRoomNotFound)
		return
	}
	num, err := room.Draw(callerID)
	if err != nil {
		g.fail(callerID, err)
		return
	}

	g.emitter.ToRoom(code, EventRoomUpdate, room.Snapshot())
	logger.Infof("[Room %s] number %d called", code, num)
}

// MarkNumber marks a drawn number on the caller's own ticket. Marking a
// number twice is a silent no-op.
func (g *Gateway) MarkNumber(callerID, rawCode string, number int) {
	code := normalizeCode(rawCode)
	room, ok := g.registry.Get(code)
	if !ok {
		g.fail(callerID, models.ErrRoomNotFound)
		return
	}
	changed, err := room.Mark(callerID, number)
	if err != nil {
		g.fail(callerID, err)
		return
	}
	if !changed {
		return
	}

	g.emitter.ToRoom(code, EventRoomUpdate, room.Snapshot())
}

// LeaveRoom removes the caller from a room, migrating the moderator role
// or tearing the room down as needed.
func (g *Gateway) LeaveRoom(callerID, rawCode string) {
	code := normalizeCode(rawCode)
	room, ok := g.registry.Get(code)
	if !ok {
		return
	}

	res := room.Remove(callerID)
	if !res.Removed {
		return
	}
	g.emitter.LeaveRoom(callerID, code)

	// A leaving requester's own pending request dies with them.
	g.tracker.Resolve(callerID)

	g.settleDeparture(room, res)
}

// Disconnect performs the same cleanup as leave-room for every room the
// connection belonged to, plus pending-request cleanup.
func (g *Gateway) Disconnect(callerID string) {
	g.tracker.Resolve(callerID)

	for _, room := range g.registry.Rooms() {
		// When the moderator's connection dies, requests waiting on
		// their decision are cancelled rather than left dangling.
		if room.IsModerator(callerID) {
			g.denyPendingForRoom(room.Code(), "Host disconnected, request cancelled")
		}

		res := room.Remove(callerID)
		if !res.Removed {
			continue
		}
		g.emitter.LeaveRoom(callerID, room.Code())
		g.settleDeparture(room, res)
	}
}

// settleDeparture handles the aftermath of a removal: room teardown when
// empty, otherwise moderator promotion and a fresh snapshot.
func (g *Gateway) settleDeparture(room *game.Room, res game.RemoveResult) {
	code := room.Code()
	if res.Empty {
		g.denyPendingForRoom(code, "Room closed")
		g.registry.Delete(code)
		g.history.Record(room)
		logger.Infof("[Room %s] empty, deleted", code)
		return
	}

	if res.NewModeratorID != "" {
		// The promotion is signalled directly, not only via the
		// general snapshot.
		g.emitter.ToClient(res.NewModeratorID, EventHostPermission, nil)
		logger.Infof("[Room %s] moderator role migrated to %s", code, res.NewModeratorID)
	}
	g.emitter.ToRoom(code, EventRoomUpdate, room.Snapshot())
}

func (g *Gateway) denyPendingForRoom(code, reason string) {
	for _, p := range g.tracker.ResolveByRoom(code) {
		g.emitter.ToClient(p.RequesterID, EventJoinDenied, reason)
	}
}
