package http

import (
	"encoding/json"
	"log"
	"net/http"

	"pub-trivia-service/internal/domain"
	"pub-trivia-service/internal/game"
	"github.com/gorilla/websocket"
)

// WSHandler exposes the trivia use cases over a websocket per client. The
// moderator and players share the endpoint; the role query parameter decides
// which messages a connection may send. All writes happen from the
// connection's read loop, so no writer goroutine is needed: the protocol is
// request/reply, shared state is polled.
type WSHandler struct {
	service  *game.TriviaService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *game.TriviaService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type submitPayload struct {
	RoundIndex int      `json:"roundIndex"`
	Answers    []string `json:"answers"`
}

type verdictPayload struct {
	RoundIndex    int    `json:"roundIndex"`
	QuestionIndex int    `json:"questionIndex"`
	PlayerID      string `json:"playerId"`
	Correct       bool   `json:"correct"`
}

type roomCreatedPayload struct {
	Code  string               `json:"code"`
	State domain.StateSnapshot `json:"state"`
}

type advancePayload struct {
	More  bool                 `json:"more"`
	State domain.StateSnapshot `json:"state"`
}

// ServeWS upgrades the request and runs the per-connection message loop.
// Hosts connect with role=host&packId=... and get a fresh room; players
// connect with code=... to join an existing one.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	displayName := r.URL.Query().Get("name")
	if userID == "" || displayName == "" {
		http.Error(w, "missing userId or name", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	isHost := r.URL.Query().Get("role") == "host"
	code := r.URL.Query().Get("code")

	if isHost {
		packID := r.URL.Query().Get("packId")
		if packID == "" {
			sendError(conn, "missing packId")
			return
		}
		session, err := h.service.CreateRoom(r.Context(), packID, domain.Host{ID: userID, Name: displayName})
		if err != nil {
			sendError(conn, err.Error())
			return
		}
		code = session.Code()
		send(conn, "roomCreated", roomCreatedPayload{Code: code, State: session.State()})
	} else {
		if code == "" {
			sendError(conn, "missing code")
			return
		}
		scoreboard, err := h.service.Join(code, userID, displayName)
		if err != nil {
			sendError(conn, err.Error())
			return
		}
		defer h.service.Leave(code, userID)
		send(conn, "joined", scoreboard)
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		h.handleMessage(conn, code, userID, isHost, inbound)
	}
}

func (h *WSHandler) handleMessage(conn *websocket.Conn, code, userID string, isHost bool, inbound inboundMessage) {
	switch inbound.Type {
	case "scoreboard":
		h.reply(conn, "scoreboard")(h.service.Scoreboard(code))
	case "state":
		h.reply(conn, "state")(h.service.State(code))
	case "round":
		h.reply(conn, "round")(h.service.CurrentRound(code, userID))
	case "submit":
		if isHost {
			sendError(conn, "the host does not submit answers")
			return
		}
		var payload submitPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			sendError(conn, "invalid submit payload")
			return
		}
		if err := h.service.Submit(code, userID, payload.RoundIndex, payload.Answers); err != nil {
			sendError(conn, err.Error())
			return
		}
		h.reply(conn, "submitted")(h.service.CurrentRound(code, userID))
	case "start":
		if !h.requireHost(conn, isHost) {
			return
		}
		h.reply(conn, "started")(h.service.StartGame(code))
	case "startGrading":
		if !h.requireHost(conn, isHost) {
			return
		}
		h.reply(conn, "grading")(h.service.StartGrading(code))
	case "next":
		if !h.requireHost(conn, isHost) {
			return
		}
		item, more, err := h.service.NextGradeItem(code)
		if err != nil {
			sendError(conn, err.Error())
			return
		}
		if !more {
			send(conn, "gradingDone", struct{}{})
			return
		}
		send(conn, "gradeItem", item)
	case "verdict":
		if !h.requireHost(conn, isHost) {
			return
		}
		var payload verdictPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			sendError(conn, "invalid verdict payload")
			return
		}
		progress, err := h.service.RecordVerdict(code, payload.RoundIndex, payload.QuestionIndex, payload.PlayerID, payload.Correct)
		if err != nil {
			sendError(conn, err.Error())
			return
		}
		send(conn, "progress", progress)
		if progress.Done {
			h.reply(conn, "roundComplete")(h.service.Scoreboard(code))
		}
	case "progress":
		if !h.requireHost(conn, isHost) {
			return
		}
		h.reply(conn, "progress")(h.service.Progress(code))
	case "advance":
		if !h.requireHost(conn, isHost) {
			return
		}
		more, state, err := h.service.AdvanceRound(code)
		if err != nil {
			sendError(conn, err.Error())
			return
		}
		send(conn, "advanced", advancePayload{More: more, State: state})
	default:
		sendError(conn, "unsupported message type")
	}
}

func (h *WSHandler) requireHost(conn *websocket.Conn, isHost bool) bool {
	if !isHost {
		sendError(conn, "host only")
	}
	return isHost
}

// reply collapses the (value, error) pattern of the service queries into a
// single websocket response.
func (h *WSHandler) reply(conn *websocket.Conn, msgType string) func(payload any, err error) {
	return func(payload any, err error) {
		if err != nil {
			sendError(conn, err.Error())
			return
		}
		send(conn, msgType, payload)
	}
}

func send[T any](conn *websocket.Conn, msgType string, payload T) {
	if err := conn.WriteJSON(outboundMessage[T]{Type: msgType, Payload: payload}); err != nil {
		log.Printf("ws write error: %v", err)
	}
}

func sendError(conn *websocket.Conn, message string) {
	send(conn, "error", errorPayload{Message: message})
}
