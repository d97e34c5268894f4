package games

import "errors"

var (
	// ErrInvalidInput means the request is missing or has malformed fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotConfigured means the remote library integration is unavailable.
	ErrNotConfigured = errors.New("steam integration is not configured")
	// ErrGameNotFound means the game does not exist or belongs to another user.
	ErrGameNotFound = errors.New("game not found")
	// ErrDuplicateGame means the user already has this catalog title.
	ErrDuplicateGame = errors.New("game already exists")
)
