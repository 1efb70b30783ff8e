package domain

import "errors"

var (
	// ErrSessionNotFound is returned when no session exists for a join code.
	ErrSessionNotFound = errors.New("session not found")
	// ErrPackNotFound indicates the question pack could not be loaded.
	ErrPackNotFound = errors.New("question pack not found")
	// ErrPlayerNotFound is returned when a player id is not in the roster.
	ErrPlayerNotFound = errors.New("player not found in session")
	// ErrRoundNotFound indicates a round index outside the loaded rounds.
	ErrRoundNotFound = errors.New("round not found")
	// ErrQuestionNotFound indicates a question index outside the round.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrAnswerCountMismatch is returned when a submission does not carry
	// exactly one answer per question.
	ErrAnswerCountMismatch = errors.New("answer count does not match question count")
	// ErrWrongPhase rejects an operation the current phase does not allow.
	ErrWrongPhase = errors.New("operation not allowed in current phase")
	// ErrPreconditionFailed rejects starting a game without rounds or
	// players, or starting it twice.
	ErrPreconditionFailed = errors.New("session is not ready to start")
	// ErrDuplicatePlayer rejects a join that reuses an id or display name.
	ErrDuplicatePlayer = errors.New("player id or name already taken")
)
