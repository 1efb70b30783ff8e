package pack

import (
	"strings"
	"testing"
)

const samplePack = `General Knowledge
What is the capital of Australia?,Canberra,10
"Which planet, of all of them, has the most moons?",Saturn,15

History
In what year did the Berlin Wall fall?,1989,5
`

func TestParseCSV(t *testing.T) {
	rounds, err := ParseCSV(strings.NewReader(samplePack))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(rounds))
	}
	if rounds[0].Title != "General Knowledge" || len(rounds[0].Questions) != 2 {
		t.Fatalf("unexpected first round: %+v", rounds[0])
	}
	q := rounds[0].Questions[1]
	if q.Text != "Which planet, of all of them, has the most moons?" || q.Answer != "Saturn" || q.Points != 15 {
		t.Fatalf("quoted question parsed wrong: %+v", q)
	}
	if rounds[1].Questions[0].Points != 5 {
		t.Fatalf("unexpected second round: %+v", rounds[1])
	}
}

func TestParseCSVRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"question before header", "What?,Yes,5\n"},
		{"bad points", "Round 1\nWhat?,Yes,lots\n"},
		{"zero points", "Round 1\nWhat?,Yes,0\n"},
		{"empty round", "Round 1\nRound 2\nWhat?,Yes,5\n"},
		{"trailing empty round", "Round 1\nWhat?,Yes,5\nRound 2\n"},
		{"two columns", "Round 1\nWhat?,Yes\n"},
	}
	for _, tc := range cases {
		if _, err := ParseCSV(strings.NewReader(tc.input)); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}
