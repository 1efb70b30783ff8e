package game

// gradeRef identifies one answer awaiting a verdict.
type gradeRef struct {
	roundIndex    int
	questionIndex int
	playerID      string
}

// gradingQueue is the ordered backlog of answers to grade for the active
// round. Once built the item list is immutable; only the cursor moves, and
// only forward. Callers must hold the session lock.
type gradingQueue struct {
	items  []gradeRef
	cursor int
}

func newGradingQueue() *gradingQueue {
	return &gradingQueue{}
}

// build materializes the queue from the submission ledger: one item per
// question per submitting player, grouped by player in first-submission
// order, questions in round order. Resets the cursor. Players who never
// submitted get no items and therefore score zero for the round by omission.
func (q *gradingQueue) build(roundIndex, questionCount int, subs *submissionLedger) {
	items := make([]gradeRef, 0, subs.count(roundIndex)*questionCount)
	for _, playerID := range subs.submitters(roundIndex) {
		for qi := 0; qi < questionCount; qi++ {
			items = append(items, gradeRef{
				roundIndex:    roundIndex,
				questionIndex: qi,
				playerID:      playerID,
			})
		}
	}
	q.items = items
	q.cursor = 0
}

// head peeks at the item under the cursor without advancing it.
func (q *gradingQueue) head() (gradeRef, bool) {
	if q.cursor >= len(q.items) {
		return gradeRef{}, false
	}
	return q.items[q.cursor], true
}

// advance moves the cursor one item forward and reports whether the queue is
// now drained.
func (q *gradingQueue) advance() bool {
	q.cursor++
	return q.cursor >= len(q.items)
}

func (q *gradingQueue) done() bool {
	return q.cursor >= len(q.items)
}

// position returns (items graded so far, total items).
func (q *gradingQueue) position() (int, int) {
	return q.cursor, len(q.items)
}

func (q *gradingQueue) reset() {
	q.items = nil
	q.cursor = 0
}
