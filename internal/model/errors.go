package model

import "errors"

// Common errors used across the application
var (
	// Engine errors
	ErrInvalidConfig = errors.New("invalid engine configuration")

	// Session errors
	ErrNoGameInProgress = errors.New("no game in progress")
	ErrSessionStarted   = errors.New("session already started")
	ErrUnknownCommand   = errors.New("unknown command")

	// Score errors
	ErrScoreNotFound     = errors.New("score not found")
	ErrInvalidPlayerName = errors.New("invalid player name")

	// Front-end errors
	ErrInvalidKeymap = errors.New("invalid keymap")
)
