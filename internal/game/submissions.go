package game

// submissionLedger stores per-round answer sets keyed by player. It is pure
// storage: the Session validates player, round, and answer count before
// writing. Callers must hold the session lock.
//
// Go maps do not preserve insertion order, so the ledger tracks the order in
// which players first submitted explicitly; the grading queue depends on it.
type submissionLedger struct {
	// roundIndex -> playerID -> answers, one per question, positional.
	answers map[int]map[string][]string
	// roundIndex -> player ids in first-submission order.
	order map[int][]string
}

func newSubmissionLedger() *submissionLedger {
	return &submissionLedger{
		answers: make(map[int]map[string][]string),
		order:   make(map[int][]string),
	}
}

// record stores answers for (roundIndex, playerID). Last write wins; a
// resubmission keeps the player's original queue position.
func (l *submissionLedger) record(roundIndex int, playerID string, answers []string) {
	byPlayer, ok := l.answers[roundIndex]
	if !ok {
		byPlayer = make(map[string][]string)
		l.answers[roundIndex] = byPlayer
	}
	if _, seen := byPlayer[playerID]; !seen {
		l.order[roundIndex] = append(l.order[roundIndex], playerID)
	}
	byPlayer[playerID] = answers
}

func (l *submissionLedger) has(roundIndex int, playerID string) bool {
	_, ok := l.answers[roundIndex][playerID]
	return ok
}

// answersFor returns the stored answers, or nil if the player never submitted.
func (l *submissionLedger) answersFor(roundIndex int, playerID string) []string {
	return l.answers[roundIndex][playerID]
}

// submitters returns player ids in first-submission order.
func (l *submissionLedger) submitters(roundIndex int) []string {
	return l.order[roundIndex]
}

func (l *submissionLedger) count(roundIndex int) int {
	return len(l.answers[roundIndex])
}

// reset clears all submissions for a round, for round (re)entry.
func (l *submissionLedger) reset(roundIndex int) {
	delete(l.answers, roundIndex)
	delete(l.order, roundIndex)
}
