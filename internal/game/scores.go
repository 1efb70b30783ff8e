package game

// scoreLedger holds per-round point awards until grading for the round
// finishes, then commits them to cumulative player scores in one step, so the
// scoreboard jumps once per round instead of creeping during grading.
// Callers must hold the session lock.
type scoreLedger struct {
	// roundIndex -> playerID -> points staged for that round only.
	staged map[int]map[string]int
	// roundIndex -> whether staged points were applied. Monotone: once true,
	// the round's points are never applied again.
	committed map[int]bool
}

func newScoreLedger() *scoreLedger {
	return &scoreLedger{
		staged:    make(map[int]map[string]int),
		committed: make(map[int]bool),
	}
}

// stage adds points to a player's staged total for a round. A zero-point
// stage still creates the entry, so a fully-incorrect submitter shows up
// with 0 rather than being absent.
func (l *scoreLedger) stage(roundIndex int, playerID string, points int) {
	byPlayer, ok := l.staged[roundIndex]
	if !ok {
		byPlayer = make(map[string]int)
		l.staged[roundIndex] = byPlayer
	}
	byPlayer[playerID] += points
}

// commit applies the round's staged points through apply, at most once per
// round. Calling it again for a committed round is a no-op. This is the only
// path that mutates cumulative scores.
func (l *scoreLedger) commit(roundIndex int, apply func(playerID string, points int)) {
	if l.committed[roundIndex] {
		return
	}
	for playerID, points := range l.staged[roundIndex] {
		apply(playerID, points)
	}
	l.committed[roundIndex] = true
}

// reset clears staging for a round that has not been committed yet.
func (l *scoreLedger) reset(roundIndex int) {
	delete(l.staged, roundIndex)
	l.committed[roundIndex] = false
}
