package game_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pub-trivia-service/internal/domain"
	"pub-trivia-service/internal/game"
	"pub-trivia-service/internal/infra/memory"
)

func newTestService() *game.TriviaService {
	rooms := memory.NewSessionStore()
	packs := memory.NewPackRepository(memory.NewStaticPackLoader(map[string]domain.Pack{
		"pack-1": {
			ID: "pack-1",
			Rounds: []domain.Round{
				{
					Title: "Starter",
					Questions: []domain.Question{
						{Text: "What is 2 + 2?", Answer: "4", Points: 10},
					},
				},
			},
		},
	}), 5*time.Minute)
	return game.NewTriviaService(rooms, packs)
}

func TestCreateRoomAndJoin(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	session, err := service.CreateRoom(ctx, "pack-1", domain.Host{ID: "h1", Name: "Quizmaster"})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if session.Code() == "" {
		t.Fatalf("expected a join code")
	}

	lb, err := service.Join(session.Code(), "p1", "Alice")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if len(lb.Entries) != 1 || lb.Entries[0].Name != "Alice" {
		t.Fatalf("unexpected scoreboard after join: %+v", lb.Entries)
	}

	if _, err := service.Join(session.Code(), "p2", "Alice"); !errors.Is(err, domain.ErrDuplicatePlayer) {
		t.Fatalf("expected ErrDuplicatePlayer, got %v", err)
	}
	if _, err := service.Join("ZZZZZ", "p3", "Carol"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestCreateRoomUnknownPack(t *testing.T) {
	service := newTestService()
	if _, err := service.CreateRoom(context.Background(), "nope", domain.Host{ID: "h1", Name: "Quizmaster"}); !errors.Is(err, domain.ErrPackNotFound) {
		t.Fatalf("expected ErrPackNotFound, got %v", err)
	}
}

func TestFullGameThroughService(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	session, err := service.CreateRoom(ctx, "pack-1", domain.Host{ID: "h1", Name: "Quizmaster"})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	code := session.Code()

	if _, err := service.Join(code, "p1", "Alice"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := service.StartGame(code); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := service.Submit(code, "p1", 0, []string{"4"}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	progress, err := service.StartGrading(code)
	if err != nil {
		t.Fatalf("start grading: %v", err)
	}
	if progress.Total != 1 || progress.Done {
		t.Fatalf("unexpected initial progress: %+v", progress)
	}

	item, more, err := service.NextGradeItem(code)
	if err != nil || !more {
		t.Fatalf("next item: more=%v err=%v", more, err)
	}
	if item.PlayerAnswer != "4" || item.Answer != "4" {
		t.Fatalf("unexpected item: %+v", item)
	}

	progress, err = service.RecordVerdict(code, item.RoundIndex, item.QuestionIndex, item.PlayerID, true)
	if err != nil {
		t.Fatalf("verdict: %v", err)
	}
	if !progress.Done {
		t.Fatalf("expected grading done, got %+v", progress)
	}

	lb, err := service.Scoreboard(code)
	if err != nil {
		t.Fatalf("scoreboard: %v", err)
	}
	if lb.Entries[0].Score != 10 {
		t.Fatalf("expected 10 points, got %+v", lb.Entries[0])
	}

	more2, state, err := service.AdvanceRound(code)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if more2 || state.Phase != domain.PhaseFinished {
		t.Fatalf("expected finished game, got more=%v state=%+v", more2, state)
	}
}

func TestLeaveDropsEmptyRoom(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	session, err := service.CreateRoom(ctx, "pack-1", domain.Host{ID: "h1", Name: "Quizmaster"})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	code := session.Code()
	if _, err := service.Join(code, "p1", "Alice"); err != nil {
		t.Fatalf("join: %v", err)
	}

	service.Leave(code, "p1")
	if _, err := service.State(code); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected room dropped, got %v", err)
	}
}
