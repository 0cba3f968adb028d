package game

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/bellapacxx/tambola-backend/models"
)

const maxNumber = 90

// Room is the authoritative state of one game session. Every transition
// happens under the room's own mutex, so operations on a given room are
// serialized regardless of which connection goroutine drives them.
type Room struct {
	mu sync.Mutex

	code        string
	moderatorID string
	players     []*models.Player // insertion order = join order
	drawn       []int
	current     int // 0 = nothing drawn yet
	phase       models.Phase
	winners     map[string]models.Winner
	startedAt   time.Time
	peakPlayers int
}

// NewRoom builds a lobby-phase room with the moderator as its first
// player, holding a freshly generated ticket.
func NewRoom(code, moderatorID, moderatorName string) *Room {
	r := &Room{
		code:        code,
		moderatorID: moderatorID,
		phase:       models.PhaseLobby,
		winners:     make(map[string]models.Winner),
	}
	r.players = append(r.players, newPlayer(moderatorID, moderatorName))
	r.peakPlayers = 1
	return r
}

func newPlayer(id, name string) *models.Player {
	return &models.Player{
		ID:     id,
		Name:   name,
		Card:   GenerateTicket(),
		Marked: make(map[int]bool),
	}
}

// Code returns the immutable room code.
func (r *Room) Code() string {
	return r.code
}

// ModeratorID returns the id of the current moderator.
func (r *Room) ModeratorID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moderatorID
}

// IsModerator reports whether id currently holds the moderator role.
func (r *Room) IsModerator(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moderatorID == id
}

// HasPlayer reports whether id is a member of the room.
func (r *Room) HasPlayer(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findPlayer(id) != nil
}

// PlayerCount returns the current number of players.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// CanJoin checks whether the room still accepts join requests.
func (r *Room) CanJoin() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != models.PhaseLobby {
		return models.ErrGameStarted
	}
	return nil
}

// NameTaken reports whether a current player already holds name,
// compared case-insensitively.
func (r *Room) NameTaken(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nameTaken(name)
}

func (r *Room) nameTaken(name string) bool {
	for _, p := range r.players {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

func (r *Room) findPlayer(id string) *models.Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Admit appends a new player with a fresh ticket. It re-validates the
// phase and the name so the caller does not have to close the window
// between request and approval itself.
func (r *Room) Admit(id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != models.PhaseLobby {
		return models.ErrGameStarted
	}
	if r.nameTaken(name) {
		return models.ErrNameTaken
	}

	r.players = append(r.players, newPlayer(id, name))
	if len(r.players) > r.peakPlayers {
		r.peakPlayers = len(r.players)
	}
	return nil
}

// Start moves the room from lobby to in_progress. Moderator only; a room
// may start with just the moderator present.
func (r *Room) Start(callerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.moderatorID != callerID {
		return models.ErrNotModerator
	}
	switch r.phase {
	case models.PhaseInProgress:
		return models.ErrGameStarted
	case models.PhaseEnded:
		return models.ErrGameEnded
	}

	r.phase = models.PhaseInProgress
	r.startedAt = time.Now()
	return nil
}

// Draw reveals one not-yet-drawn number 1..90, uniformly at random.
func (r *Room) Draw(callerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.moderatorID != callerID {
		return 0, models.ErrNotModerator
	}
	switch r.phase {
	case models.PhaseLobby:
		return 0, models.ErrGameNotStarted
	case models.PhaseEnded:
		return 0, models.ErrGameEnded
	}
	if len(r.drawn) >= maxNumber {
		return 0, models.ErrNumbersExhausted
	}

	seen := make(map[int]bool, len(r.drawn))
	for _, n := range r.drawn {
		seen[n] = true
	}
	remaining := make([]int, 0, maxNumber-len(r.drawn))
	for n := 1; n <= maxNumber; n++ {
		if !seen[n] {
			remaining = append(remaining, n)
		}
	}

	num := remaining[rand.Intn(len(remaining))]
	r.current = num
	r.drawn = append(r.drawn, num)
	return num, nil
}

// Mark records number on the caller's ticket. The number must be on the
// ticket and must already have been drawn. Marking an already marked
// number is a no-op; changed reports whether state actually moved.
func (r *Room) Mark(callerID string, number int) (changed bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player := r.findPlayer(callerID)
	if player == nil {
		return false, models.ErrNotInRoom
	}
	if !player.Card.Contains(number) {
		return false, models.ErrNumberNotOnCard
	}
	drawn := false
	for _, n := range r.drawn {
		if n == number {
			drawn = true
			break
		}
	}
	if !drawn {
		return false, models.ErrNumberNotCalled
	}
	if player.Marked[number] {
		return false, nil
	}

	player.Marked[number] = true
	r.refreshPrizes(player)
	return true, nil
}

// refreshPrizes recomputes a player's derived prize state and records
// them as winner of any prize nobody reached before.
func (r *Room) refreshPrizes(player *models.Player) {
	player.CompletedRows = RowsCompleted(player.Card, player.Marked)
	player.FullHouse = IsFullHouse(player.Card, player.Marked)
	player.Score = Score(player.CompletedRows, player.FullHouse)

	for row, done := range player.CompletedRows {
		if done {
			r.awardPrize(RowPrize(row), player)
		}
	}
	if player.FullHouse {
		r.awardPrize(PrizeFullHouse, player)
	}
}

func (r *Room) awardPrize(kind string, player *models.Player) {
	if _, taken := r.winners[kind]; taken {
		return
	}
	r.winners[kind] = models.Winner{PlayerID: player.ID, Name: player.Name}
}

// RemoveResult describes the outcome of removing a player.
type RemoveResult struct {
	Removed        bool
	NewModeratorID string // set when the moderator role migrated
	Empty          bool   // room has no players left and must be deleted
}

// Remove drops a player from the room. When the moderator leaves and
// players remain, the role migrates to the next player in join order.
func (r *Room) Remove(callerID string) RemoveResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res RemoveResult
	kept := r.players[:0]
	for _, p := range r.players {
		if p.ID == callerID {
			res.Removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !res.Removed {
		return res
	}
	r.players = kept

	if len(r.players) == 0 {
		res.Empty = true
		return res
	}
	if r.moderatorID == callerID {
		r.moderatorID = r.players[0].ID
		res.NewModeratorID = r.moderatorID
	}
	return res
}

// Started reports whether the room ever left the lobby.
func (r *Room) Started() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase != models.PhaseLobby
}

// StartedAt returns when the game started; zero if it never did.
func (r *Room) StartedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startedAt
}

// PeakPlayers returns the largest player count the room ever held.
func (r *Room) PeakPlayers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.peakPlayers
}

// DrawnNumbers returns a copy of the draw history.
func (r *Room) DrawnNumbers() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.drawn...)
}

// Winners returns a copy of the prize winners.
func (r *Room) Winners() map[string]models.Winner {
	r.mu.Lock()
	defer r.mu.Unlock()
	winners := make(map[string]models.Winner, len(r.winners))
	for k, v := range r.winners {
		winners[k] = v
	}
	return winners
}

// Snapshot builds the broadcast view of the room. Everything mutable is
// copied so the caller can serialize it without holding the room lock.
func (r *Room) Snapshot() *models.RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := &models.RoomSnapshot{
		ID:           r.code,
		Code:         r.code,
		ModeratorID:  r.moderatorID,
		Players:      make([]models.PlayerSnapshot, 0, len(r.players)),
		DrawnNumbers: append([]int(nil), r.drawn...),
		Phase:        r.phase,
		Winners:      make(map[string]models.Winner, len(r.winners)),
	}
	if r.current != 0 {
		current := r.current
		snap.CurrentNumber = &current
	}
	for k, v := range r.winners {
		snap.Winners[k] = v
	}
	for _, p := range r.players {
		snap.Players = append(snap.Players, models.PlayerSnapshot{
			ID:            p.ID,
			Name:          p.Name,
			Card:          *p.Card,
			MarkedNumbers: p.MarkedNumbers(),
			CompletedRows: p.CompletedRows,
			HasFullHouse:  p.FullHouse,
			Score:         p.Score,
		})
	}
	return snap
}
