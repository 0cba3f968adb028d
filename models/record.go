package models

import (
	"time"

	"gorm.io/datatypes"
)

// GameRecord is the persisted summary of a finished game, written when a
// room that reached in_progress is torn down. Live room state is never
// loaded back from these rows.
type GameRecord struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	RoomCode    string         `gorm:"index" json:"roomCode"`
	PlayerCount int            `json:"playerCount"`
	NumbersJSON datatypes.JSON `json:"numbersDrawn"`
	WinnersJSON datatypes.JSON `json:"winners"`
	StartedAt   time.Time      `json:"startedAt"`
	EndedAt     time.Time      `json:"endedAt"`
	CreatedAt   time.Time      `json:"createdAt"`
}
