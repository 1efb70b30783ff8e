package game

import (
	"context"

	"pub-trivia-service/internal/domain"
)

// SessionRegistry abstracts how live sessions are tracked and how join codes
// are allocated (in-memory, Redis-backed, etc).
type SessionRegistry interface {
	Create(host domain.Host) (*Session, error)
	Get(code string) (*Session, bool)
	DeleteIfEmpty(code string)
}

// PackRepository loads question packs (from cache/backing store).
type PackRepository interface {
	GetPack(ctx context.Context, packID string) (domain.Pack, error)
}

// TriviaService contains the room-level use cases. Each mutating call
// resolves the session by join code and delegates to it; the session's own
// lock serializes the core.
type TriviaService struct {
	rooms SessionRegistry
	packs PackRepository
}

func NewTriviaService(rooms SessionRegistry, packs PackRepository) *TriviaService {
	return &TriviaService{rooms: rooms, packs: packs}
}

// CreateRoom loads a pack, allocates a session with a fresh join code, and
// seeds it with the pack's rounds.
func (s *TriviaService) CreateRoom(ctx context.Context, packID string, host domain.Host) (*Session, error) {
	pack, err := s.packs.GetPack(ctx, packID)
	if err != nil {
		return nil, err
	}
	session, err := s.rooms.Create(host)
	if err != nil {
		return nil, err
	}
	if err := session.SetRounds(pack.Rounds); err != nil {
		return nil, err
	}
	return session, nil
}

// Join adds a player to a room and returns the standings they join into.
func (s *TriviaService) Join(code, playerID, name string) (domain.Scoreboard, error) {
	session, ok := s.rooms.Get(code)
	if !ok {
		return domain.Scoreboard{}, domain.ErrSessionNotFound
	}
	if err := session.AddPlayer(playerID, name); err != nil {
		return domain.Scoreboard{}, err
	}
	return session.Scoreboard(), nil
}

// Leave removes a player and drops the room once the last player is gone.
func (s *TriviaService) Leave(code, playerID string) {
	session, ok := s.rooms.Get(code)
	if !ok {
		return
	}
	session.RemovePlayer(playerID)
	if session.IsEmpty() {
		s.rooms.DeleteIfEmpty(code)
	}
}

// Submit records a player's answers for a round.
func (s *TriviaService) Submit(code, playerID string, roundIndex int, answers []string) error {
	session, ok := s.rooms.Get(code)
	if !ok {
		return domain.ErrSessionNotFound
	}
	return session.RecordAnswers(playerID, roundIndex, answers)
}

// StartGame begins the first round.
func (s *TriviaService) StartGame(code string) (domain.StateSnapshot, error) {
	session, ok := s.rooms.Get(code)
	if !ok {
		return domain.StateSnapshot{}, domain.ErrSessionNotFound
	}
	if err := session.StartGame(); err != nil {
		return domain.StateSnapshot{}, err
	}
	return session.State(), nil
}

// StartGrading closes answering and builds the grading backlog.
func (s *TriviaService) StartGrading(code string) (domain.Progress, error) {
	session, ok := s.rooms.Get(code)
	if !ok {
		return domain.Progress{}, domain.ErrSessionNotFound
	}
	if err := session.StartGrading(); err != nil {
		return domain.Progress{}, err
	}
	return session.Progress(), nil
}

// NextGradeItem peeks at the answer awaiting a verdict.
func (s *TriviaService) NextGradeItem(code string) (domain.GradeItem, bool, error) {
	session, ok := s.rooms.Get(code)
	if !ok {
		return domain.GradeItem{}, false, domain.ErrSessionNotFound
	}
	item, more := session.NextGradeItem()
	return item, more, nil
}

// RecordVerdict applies one verdict and returns the resulting progress,
// whose phase-visible effect (between-rounds on the last item) callers can
// observe through State.
func (s *TriviaService) RecordVerdict(code string, roundIndex, questionIndex int, playerID string, correct bool) (domain.Progress, error) {
	session, ok := s.rooms.Get(code)
	if !ok {
		return domain.Progress{}, domain.ErrSessionNotFound
	}
	if err := session.RecordVerdict(roundIndex, questionIndex, playerID, correct); err != nil {
		return domain.Progress{}, err
	}
	return session.Progress(), nil
}

// AdvanceRound moves past between-rounds. more is false once the game is
// finished.
func (s *TriviaService) AdvanceRound(code string) (more bool, state domain.StateSnapshot, err error) {
	session, ok := s.rooms.Get(code)
	if !ok {
		return false, domain.StateSnapshot{}, domain.ErrSessionNotFound
	}
	more, err = session.AdvanceRound()
	if err != nil {
		return false, domain.StateSnapshot{}, err
	}
	return more, session.State(), nil
}

// Scoreboard returns the current standings for a room.
func (s *TriviaService) Scoreboard(code string) (domain.Scoreboard, error) {
	session, ok := s.rooms.Get(code)
	if !ok {
		return domain.Scoreboard{}, domain.ErrSessionNotFound
	}
	return session.Scoreboard(), nil
}

// CurrentRound returns the player-facing round view.
func (s *TriviaService) CurrentRound(code, playerID string) (domain.RoundView, error) {
	session, ok := s.rooms.Get(code)
	if !ok {
		return domain.RoundView{}, domain.ErrSessionNotFound
	}
	return session.CurrentRound(playerID)
}

// Progress reports grading progress for a room.
func (s *TriviaService) Progress(code string) (domain.Progress, error) {
	session, ok := s.rooms.Get(code)
	if !ok {
		return domain.Progress{}, domain.ErrSessionNotFound
	}
	return session.Progress(), nil
}

// State returns the phase and round position for a room.
func (s *TriviaService) State(code string) (domain.StateSnapshot, error) {
	session, ok := s.rooms.Get(code)
	if !ok {
		return domain.StateSnapshot{}, domain.ErrSessionNotFound
	}
	return session.State(), nil
}
