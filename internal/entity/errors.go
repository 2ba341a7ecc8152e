package entity

import "errors"

var (
	// Backend errors
	ErrBackendUnreachable = errors.New("activities backend unreachable")
	ErrActivityNotFound   = errors.New("activity not found")

	// Session errors
	ErrSessionNotFound = errors.New("board session not found")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)
