package models

import "errors"

// Common errors reported back to the intent caller. None of these are fatal;
// a failed intent leaves room state untouched.
var (
	ErrInvalidName      = errors.New("invalid player name")
	ErrRoomNotFound     = errors.New("room not found")
	ErrNameTaken        = errors.New("a player with this name already exists")
	ErrGameStarted      = errors.New("game already started")
	ErrGameNotStarted   = errors.New("game not started")
	ErrGameEnded        = errors.New("game already ended")
	ErrNotModerator     = errors.New("only the host can perform this action")
	ErrNotInRoom        = errors.New("player not in room")
	ErrNumbersExhausted = errors.New("all numbers exhausted")
	ErrNumberNotOnCard  = errors.New("number not on your ticket")
	ErrNumberNotCalled  = errors.New("number has not been called yet")
	ErrNoPendingRequest = errors.New("no pending join request")
	ErrRequesterGone    = errors.New("requester not connected")
)
