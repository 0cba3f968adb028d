package services

// Server-to-client event names.
const (
	EventConnected      = "connected"
	EventRoomCreated    = "room-created"
	EventRoomUpdate     = "room-update"
	EventJoinRequest    = "join-request"
	EventRequestPending = "request-pending"
	EventJoinApproved   = "join-approved"
	EventJoinDenied     = "join-denied"
	EventHostPermission = "host-permission"
	EventError          = "error-message"
)

// Client-to-server intent names, dispatched from the action field of an
// inbound message.
const (
	ActionCreateRoom  = "create-room"
	ActionRequestJoin = "request-join"
	ActionApproveJoin = "approve-join"
	ActionStartGame   = "start-game"
	ActionCallNumber  = "call-number"
	ActionMarkNumber  = "mark-number"
	ActionLeaveRoom   = "leave-room"
)

// Emitter is the outbound half of the transport: deliver an event to one
// connection or to every connection in a room group. The websocket hub is
// the production implementation; tests use a fake.
type Emitter interface {
	ToClient(clientID, event string, payload any)
	ToRoom(roomCode, event string, payload any)
	JoinRoom(clientID, roomCode string)
	LeaveRoom(clientID, roomCode string)
	IsConnected(clientID string) bool
}

// joinRequestNotice is sent to the moderator when someone asks to join.
type joinRequestNotice struct {
	RequesterID string `json:"requesterId"`
	PlayerName  string `json:"playerName"`
	RoomCode    string `json:"roomCode"`
}

// requestPendingNotice acknowledges the requester while they wait.
type requestPendingNotice struct {
	RoomCode    string `json:"roomCode"`
	PlayerName  string `json:"playerName"`
	ExpiresInMS int64  `json:"expiresInMs"`
}

// connectedNotice tells a fresh connection its server-assigned id.
type connectedNotice struct {
	ID string `json:"id"`
}
