package services

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bellapacxx/tambola-backend/game"
	"github.com/bellapacxx/tambola-backend/models"
	"github.com/bellapacxx/tambola-backend/utils/logger"
)

// History writes a summary row for every game that actually started, when
// its room is torn down. Rooms themselves stay in process memory; nothing
// is ever read back from these rows into live state.
type History struct {
	db *gorm.DB
}

// NewHistory returns nil when no database is configured; a nil History is
// safe to use and records nothing.
func NewHistory(db *gorm.DB) *History {
	if db == nil {
		return nil
	}
	return &History{db: db}
}

// Record persists the outcome of a finished game. Rooms that never left
// the lobby are not worth a row.
func (h *History) Record(room *game.Room) {
	if h == nil {
		return
	}
	if !room.Started() {
		return
	}

	numbers, err := json.Marshal(room.DrawnNumbers())
	if err != nil {
		logger.Errorf("[History] marshal numbers for room %s: %v", room.Code(), err)
		return
	}
	winners, err := json.Marshal(room.Winners())
	if err != nil {
		logger.Errorf("[History] marshal winners for room %s: %v", room.Code(), err)
		return
	}

	record := models.GameRecord{
		RoomCode:    room.Code(),
		PlayerCount: room.PeakPlayers(),
		NumbersJSON: datatypes.JSON(numbers),
		WinnersJSON: datatypes.JSON(winners),
		StartedAt:   room.StartedAt(),
		EndedAt:     time.Now(),
	}
	if err := h.db.Create(&record).Error; err != nil {
		logger.Errorf("[History] failed to save record for room %s: %v", room.Code(), err)
		return
	}
	logger.Infof("[History] recorded game %s (%d players, %d numbers)", room.Code(), record.PlayerCount, len(room.DrawnNumbers()))
}

// Recent returns the latest game records, newest first.
func (h *History) Recent(limit int) ([]models.GameRecord, error) {
	if h == nil {
		return nil, gorm.ErrInvalidDB
	}
	var records []models.GameRecord
	err := h.db.Order("created_at DESC").Limit(limit).Find(&records).Error
	return records, err
}
