package game

import (
	"sort"
	"sync"

	"pub-trivia-service/internal/domain"
)

// Session is one live trivia game: a roster, a fixed list of rounds, and the
// phase machine that moves the game through answering, grading, and scoring.
//
// Exported methods take the session mutex; that mutex is the per-session
// mutual exclusion the ledgers rely on, so the hosting layer gets a
// serialized core for free as long as it goes through these methods.
type Session struct {
	code string
	host domain.Host

	mu           sync.Mutex
	players      []*domain.Player // join order; scoreboard ties break on it
	rounds       []domain.Round
	phase        domain.Phase
	started      bool
	currentRound int

	subs   *submissionLedger
	queue  *gradingQueue
	scores *scoreLedger
}

// NewSession creates an empty session in the lobby phase.
func NewSession(code string, host domain.Host) *Session {
	return &Session{
		code:   code,
		host:   host,
		phase:  domain.PhaseLobby,
		subs:   newSubmissionLedger(),
		queue:  newGradingQueue(),
		scores: newScoreLedger(),
	}
}

// Code returns the join code players use to find this session.
func (s *Session) Code() string {
	return s.code
}

// Host returns the moderator identity.
func (s *Session) Host() domain.Host {
	return s.host
}

// SetRounds assigns the game content wholesale. Only allowed before the game
// has started.
func (s *Session) SetRounds(rounds []domain.Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return domain.ErrWrongPhase
	}
	s.rounds = rounds
	return nil
}

// AddPlayer registers a player. Both id and display name must be unused:
// names are what other players see, so a name collision is as much a
// duplicate as an id collision.
func (s *Session) AddPlayer(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.players {
		if p.ID == id || p.Name == name {
			return domain.ErrDuplicatePlayer
		}
	}
	s.players = append(s.players, &domain.Player{ID: id, Name: name})
	return nil
}

// RemovePlayer drops a player from the roster and reports whether they were
// present. Any points staged for them simply never commit.
func (s *Session) RemovePlayer(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.players {
		if p.ID == id {
			s.players = append(s.players[:i], s.players[i+1:]...)
			return true
		}
	}
	return false
}

// GetPlayer returns a copy of the player record.
func (s *Session) GetPlayer(id string) (domain.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.findPlayerLocked(id); p != nil {
		return *p, true
	}
	return domain.Player{}, false
}

// IsEmpty reports whether the roster is empty.
func (s *Session) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players) == 0
}

// StartGame moves lobby -> answering for the first round. It needs at least
// one round and one player, and a session only starts once.
func (s *Session) StartGame() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || len(s.rounds) == 0 || len(s.players) == 0 {
		return domain.ErrPreconditionFailed
	}
	s.started = true
	s.currentRound = 0
	s.resetRoundLocked(0)
	s.phase = domain.PhaseAnswering
	return nil
}

// StartGrading closes the answering phase and materializes the grading queue
// from the current submissions. If nobody submitted there is nothing to
// grade: the round commits empty and the session lands in between-rounds
// straight away.
func (s *Session) StartGrading() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseAnswering {
		return domain.ErrWrongPhase
	}
	round := s.rounds[s.currentRound]
	s.queue.build(s.currentRound, len(round.Questions), s.subs)
	s.phase = domain.PhaseGrading
	if s.queue.done() {
		s.finishRoundLocked(s.currentRound)
	}
	return nil
}

// AdvanceRound moves between-rounds -> answering for the next round, or to
// finished when no rounds remain. The returned bool reports whether another
// round started.
func (s *Session) AdvanceRound() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseBetweenRounds {
		return false, domain.ErrWrongPhase
	}
	if s.currentRound+1 >= len(s.rounds) {
		s.phase = domain.PhaseFinished
		return false, nil
	}
	s.currentRound++
	s.resetRoundLocked(s.currentRound)
	s.phase = domain.PhaseAnswering
	return true, nil
}

// RecordAnswers stores a player's answer set for a round, one answer per
// question. Validation happens before any write, so a failed call leaves the
// ledger untouched. Overwriting an earlier submission is allowed.
func (s *Session) RecordAnswers(playerID string, roundIndex int, answers []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findPlayerLocked(playerID) == nil {
		return domain.ErrPlayerNotFound
	}
	if roundIndex < 0 || roundIndex >= len(s.rounds) {
		return domain.ErrRoundNotFound
	}
	if len(answers) != len(s.rounds[roundIndex].Questions) {
		return domain.ErrAnswerCountMismatch
	}
	s.subs.record(roundIndex, playerID, answers)
	return nil
}

// HasSubmitted reports whether a player has answers on record for a round.
func (s *Session) HasSubmitted(roundIndex int, playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subs.has(roundIndex, playerID)
}

// Counts returns (players submitted, roster size) for a round.
func (s *Session) Counts(roundIndex int) (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subs.count(roundIndex), len(s.players)
}

// AllSubmitted is true when every current player has submitted. An empty
// roster is never fully submitted.
func (s *Session) AllSubmitted(roundIndex int) bool {
	submitted, total := s.Counts(roundIndex)
	return total > 0 && submitted == total
}

// NextGradeItem peeks at the answer under the grading cursor, decorated for
// display. It does not advance the cursor; RecordVerdict does. ok is false
// when grading is complete or the queue is empty.
func (s *Session) NextGradeItem() (domain.GradeItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gradeItemLocked()
}

// RecordVerdict applies the moderator's call on one answer: correct stages
// the question's points, incorrect stages zero so the player still appears
// in the round results. The cursor advances one item per verdict regardless
// of the identifiers passed; the moderator is expected to grade the item
// NextGradeItem returned. When the last item is graded the round's scores
// commit and the session moves to between-rounds, in the same call.
func (s *Session) RecordVerdict(roundIndex, questionIndex int, playerID string, correct bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseGrading {
		return domain.ErrWrongPhase
	}
	if roundIndex < 0 || roundIndex >= len(s.rounds) {
		return domain.ErrRoundNotFound
	}
	round := s.rounds[roundIndex]
	if questionIndex < 0 || questionIndex >= len(round.Questions) {
		return domain.ErrQuestionNotFound
	}

	points := 0
	if correct {
		points = round.Questions[questionIndex].Points
	}
	s.scores.stage(roundIndex, playerID, points)

	if s.queue.advance() {
		s.finishRoundLocked(roundIndex)
	}
	return nil
}

// State returns the phase and round position.
func (s *Session) State() domain.StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.StateSnapshot{
		Phase:      s.phase,
		RoundIndex: s.currentRound,
		RoundCount: len(s.rounds),
	}
}

// Scoreboard returns the standings sorted by descending score. Ties keep
// join order, which the stable sort preserves.
func (s *Session) Scoreboard() domain.Scoreboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]domain.ScoreboardEntry, 0, len(s.players))
	for _, p := range s.players {
		entries = append(entries, domain.ScoreboardEntry{
			PlayerID: p.ID,
			Name:     p.Name,
			Score:    p.Score,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return domain.Scoreboard{Code: s.code, Entries: entries}
}

// CurrentRound returns the player-facing view of the active round: questions
// without reference answers, plus the caller's submission status and the
// room-wide counts.
func (s *Session) CurrentRound(playerID string) (domain.RoundView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.phase == domain.PhaseFinished {
		return domain.RoundView{}, domain.ErrWrongPhase
	}
	round := s.rounds[s.currentRound]
	questions := make([]domain.QuestionView, 0, len(round.Questions))
	for _, q := range round.Questions {
		questions = append(questions, domain.QuestionView{Text: q.Text, Points: q.Points})
	}
	return domain.RoundView{
		Index:          s.currentRound,
		Title:          round.Title,
		Questions:      questions,
		Submitted:      s.subs.has(s.currentRound, playerID),
		SubmittedCount: s.subs.count(s.currentRound),
		PlayerCount:    len(s.players),
	}, nil
}

// Progress reports grading progress: the current item when one remains, and
// the graded/total counters either way.
func (s *Session) Progress() domain.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	graded, total := s.queue.position()
	item, ok := s.gradeItemLocked()
	return domain.Progress{
		Done:   !ok,
		Item:   item,
		Graded: graded,
		Total:  total,
	}
}

func (s *Session) findPlayerLocked(id string) *domain.Player {
	for _, p := range s.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// resetRoundLocked clears the three ledgers for a round on entry.
func (s *Session) resetRoundLocked(roundIndex int) {
	s.subs.reset(roundIndex)
	s.queue.reset()
	s.scores.reset(roundIndex)
}

// finishRoundLocked commits the round's staged scores and leaves grading.
// The commit is at-most-once, so re-entry cannot double-count. Players
// removed from the roster since staging are skipped.
func (s *Session) finishRoundLocked(roundIndex int) {
	s.scores.commit(roundIndex, func(playerID string, points int) {
		if p := s.findPlayerLocked(playerID); p != nil {
			p.Score += points
		}
	})
	s.phase = domain.PhaseBetweenRounds
}

func (s *Session) gradeItemLocked() (domain.GradeItem, bool) {
	ref, ok := s.queue.head()
	if !ok {
		return domain.GradeItem{}, false
	}
	question := s.rounds[ref.roundIndex].Questions[ref.questionIndex]
	playerName := "(unknown player)"
	if p := s.findPlayerLocked(ref.playerID); p != nil {
		playerName = p.Name
	}
	playerAnswer := ""
	if answers := s.subs.answersFor(ref.roundIndex, ref.playerID); ref.questionIndex < len(answers) {
		playerAnswer = answers[ref.questionIndex]
	}
	graded, total := s.queue.position()
	return domain.GradeItem{
		RoundIndex:    ref.roundIndex,
		QuestionIndex: ref.questionIndex,
		PlayerID:      ref.playerID,
		QuestionText:  question.Text,
		Answer:        question.Answer,
		Points:        question.Points,
		PlayerName:    playerName,
		PlayerAnswer:  playerAnswer,
		Position:      graded + 1,
		Total:         total,
	}, true
}
