package domain

import "errors"

var (
	// ErrGameNotFound is returned when a game session is unknown or already removed.
	ErrGameNotFound = errors.New("game not found")
	// ErrQuestionNotFound indicates the question content could not be loaded.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrUnknownMode is returned for a game mode with no scoring configuration.
	ErrUnknownMode = errors.New("unknown game mode")
	// ErrGameFinished is returned when acting on a game that already ended.
	ErrGameFinished = errors.New("game already finished")
	// ErrEmptyQuestion indicates a question without any answer candidates.
	ErrEmptyQuestion = errors.New("question has no answers")
)
