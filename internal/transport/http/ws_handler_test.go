package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pub-trivia-service/internal/domain"
	"pub-trivia-service/internal/game"
	"pub-trivia-service/internal/infra/memory"
	"github.com/gorilla/websocket"
)

func TestWebSocketGameFlow(t *testing.T) {
	rooms := memory.NewSessionStore()
	packs := memory.NewPackRepository(memory.NewStaticPackLoader(samplePacks()), time.Minute)
	service := game.NewTriviaService(rooms, packs)
	wsHandler := NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	wsBase := "ws" + server.URL[len("http"):]

	host, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws?role=host&packId=pack-1&userId=h1&name=Quizmaster", nil)
	if err != nil {
		t.Fatalf("host dial: %v", err)
	}
	defer host.Close()

	_, created := readNext(host, t, "roomCreated")
	code, _ := created["code"].(string)
	if code == "" {
		t.Fatalf("expected join code, got %v", created)
	}

	player, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws?code="+code+"&userId=p1&name=Alice", nil)
	if err != nil {
		t.Fatalf("player dial: %v", err)
	}
	defer player.Close()
	readNext(player, t, "joined")

	writeMsg(host, t, "start", nil)
	readNext(host, t, "started")

	writeMsg(player, t, "submit", map[string]any{"roundIndex": 0, "answers": []string{"4"}})
	readNext(player, t, "submitted")

	writeMsg(host, t, "startGrading", nil)
	readNext(host, t, "grading")

	writeMsg(host, t, "next", nil)
	_, item := readNext(host, t, "gradeItem")
	if item["playerAnswer"] != "4" {
		t.Fatalf("unexpected grade item: %v", item)
	}

	writeMsg(host, t, "verdict", map[string]any{
		"roundIndex":    0,
		"questionIndex": 0,
		"playerId":      "p1",
		"correct":       true,
	})
	_, progress := readNext(host, t, "progress")
	if progress["done"] != true {
		t.Fatalf("expected grading done, got %v", progress)
	}
	_, standings := readNext(host, t, "roundComplete")
	entries, _ := standings["entries"].([]any)
	if len(entries) != 1 {
		t.Fatalf("expected one scoreboard entry, got %v", standings)
	}
	if entry, _ := entries[0].(map[string]any); entry["score"] != float64(10) {
		t.Fatalf("expected 10 points, got %v", entries[0])
	}

	writeMsg(host, t, "advance", nil)
	_, advanced := readNext(host, t, "advanced")
	if advanced["more"] != false {
		t.Fatalf("expected game over, got %v", advanced)
	}
}

func TestWebSocketRejectsPlayerModeration(t *testing.T) {
	rooms := memory.NewSessionStore()
	packs := memory.NewPackRepository(memory.NewStaticPackLoader(samplePacks()), time.Minute)
	service := game.NewTriviaService(rooms, packs)
	wsHandler := NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	wsBase := "ws" + server.URL[len("http"):]
	host, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws?role=host&packId=pack-1&userId=h1&name=Quizmaster", nil)
	if err != nil {
		t.Fatalf("host dial: %v", err)
	}
	defer host.Close()
	_, created := readNext(host, t, "roomCreated")
	code := created["code"].(string)

	player, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws?code="+code+"&userId=p1&name=Alice", nil)
	if err != nil {
		t.Fatalf("player dial: %v", err)
	}
	defer player.Close()
	readNext(player, t, "joined")

	writeMsg(player, t, "start", nil)
	readNext(player, t, "error")
}

func writeMsg(conn *websocket.Conn, t *testing.T, msgType string, payload any) {
	t.Helper()
	msg := map[string]any{"type": msgType}
	if payload != nil {
		msg["payload"] = payload
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s (%v)", expect, msg.Type, msg.Payload)
	}
	return msg.Type, msg.Payload
}

func samplePacks() map[string]domain.Pack {
	return map[string]domain.Pack{
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
	}
}
