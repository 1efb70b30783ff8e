package memory

import (
	"testing"

	"pub-trivia-service/internal/domain"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	session, err := store.Create(domain.Host{ID: "h1", Name: "Quizmaster"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(session.Code()) != codeLength {
		t.Fatalf("unexpected code %q", session.Code())
	}
	if _, ok := store.Get(session.Code()); !ok {
		t.Fatalf("expected session present")
	}

	other, err := store.Create(domain.Host{ID: "h2", Name: "Other"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if other.Code() == session.Code() {
		t.Fatalf("join codes must be distinct")
	}

	store.DeleteIfEmpty(session.Code())
	if _, ok := store.Get(session.Code()); ok {
		t.Fatalf("expected empty session removed")
	}
}

func TestSessionStoreKeepsOccupiedRooms(t *testing.T) {
	store := NewSessionStore()
	session, err := store.Create(domain.Host{ID: "h1", Name: "Quizmaster"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := session.AddPlayer("p1", "Alice"); err != nil {
		t.Fatalf("add player: %v", err)
	}

	store.DeleteIfEmpty(session.Code())
	if _, ok := store.Get(session.Code()); !ok {
		t.Fatalf("occupied session must survive DeleteIfEmpty")
	}
}
