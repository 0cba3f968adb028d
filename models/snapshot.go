package models

// Phase is the lifecycle state of a room.
type Phase string

const (
	PhaseLobby      Phase = "lobby"
	PhaseInProgress Phase = "in_progress"
	PhaseEnded      Phase = "ended"
)

// Winner records the first player to reach a prize.
type Winner struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

// PlayerSnapshot is the broadcast view of a player.
type PlayerSnapshot struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Card          Card    `json:"card"`
	MarkedNumbers []int   `json:"markedNumbers"`
	CompletedRows [3]bool `json:"completedRows"`
	HasFullHouse  bool    `json:"hasFullHouse"`
	Score         int     `json:"score"`
}

// RoomSnapshot is the full observable state of a room, sent to every
// connection in the room group after each state-changing operation.
type RoomSnapshot struct {
	ID            string            `json:"id"`
	Code          string            `json:"code"`
	ModeratorID   string            `json:"moderatorId"`
	Players       []PlayerSnapshot  `json:"players"`
	CurrentNumber *int              `json:"currentNumber"`
	DrawnNumbers  []int             `json:"drawnNumbers"`
	Phase         Phase             `json:"phase"`
	Winners       map[string]Winner `json:"winners"`
}
