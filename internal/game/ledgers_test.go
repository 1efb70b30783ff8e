package game

import "testing"

func TestSubmissionOrderSurvivesResubmission(t *testing.T) {
	subs := newSubmissionLedger()
	subs.record(0, "p1", []string{"a"})
	subs.record(0, "p2", []string{"b"})
	subs.record(0, "p1", []string{"c"}) // resubmit keeps original slot

	order := subs.submitters(0)
	if len(order) != 2 || order[0] != "p1" || order[1] != "p2" {
		t.Fatalf("unexpected submitter order: %v", order)
	}
	if got := subs.answersFor(0, "p1"); got[0] != "c" {
		t.Fatalf("resubmission should win, got %v", got)
	}
	if subs.count(0) != 2 {
		t.Fatalf("resubmission must not inflate counts: %d", subs.count(0))
	}
}

func TestGradingQueueGroupsBySubmitter(t *testing.T) {
	subs := newSubmissionLedger()
	subs.record(1, "p2", []string{"a", "b"})
	subs.record(1, "p1", []string{"c", "d"})

	q := newGradingQueue()
	q.build(1, 2, subs)

	want := []gradeRef{
		{1, 0, "p2"}, {1, 1, "p2"},
		{1, 0, "p1"}, {1, 1, "p1"},
	}
	for i, w := range want {
		ref, ok := q.head()
		if !ok {
			t.Fatalf("queue ended at %d", i)
		}
		if ref != w {
			t.Fatalf("item %d: got %+v want %+v", i, ref, w)
		}
		drained := q.advance()
		if drained != (i == len(want)-1) {
			t.Fatalf("drained=%v at item %d", drained, i)
		}
	}
}

func TestScoreLedgerCommitsAtMostOnce(t *testing.T) {
	scores := newScoreLedger()
	scores.stage(0, "p1", 10)
	scores.stage(0, "p1", 5)
	scores.stage(0, "p2", 0) // incorrect verdicts still create the entry

	totals := map[string]int{}
	apply := func(id string, pts int) { totals[id] += pts }

	scores.commit(0, apply)
	scores.commit(0, apply) // second commit must be a no-op

	if totals["p1"] != 15 {
		t.Fatalf("expected 15 for p1, got %d", totals["p1"])
	}
	if _, ok := totals["p2"]; !ok {
		t.Fatalf("expected zero entry for p2")
	}
}

func TestScoreLedgerResetReopensRound(t *testing.T) {
	scores := newScoreLedger()
	scores.stage(2, "p1", 10)
	scores.reset(2)

	total := 0
	scores.commit(2, func(string, int) { total++ })
	if total != 0 {
		t.Fatalf("reset round should commit nothing, applied %d entries", total)
	}
}
