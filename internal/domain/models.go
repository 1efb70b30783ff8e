package domain

// Phase is the session-wide lifecycle state. One value per session, never per player.
type Phase string

const (
	PhaseLobby         Phase = "lobby"
	PhaseAnswering     Phase = "answering"
	PhaseGrading       Phase = "grading"
	PhaseBetweenRounds Phase = "between-rounds"
	PhaseFinished      Phase = "finished"
)

// Host is the moderator of a session. The host is not a player and never scores.
type Host struct {
	ID   string
	Name string
}

// Player represents a player (or team) and their running score.
// Score is mutated only when a round's staged scores commit.
type Player struct {
	ID    string
	Name  string
	Score int
}

// Question is a single free-text prompt. Answer is the reference answer shown
// to the moderator while grading; correctness is the moderator's call.
type Question struct {
	Text   string `json:"text"`
	Answer string `json:"answer"`
	Points int    `json:"points"`
}

// Round is an ordered set of questions graded and scored as one unit.
type Round struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Pack is the loadable content for a whole game: rounds in play order.
type Pack struct {
	ID     string  `json:"id"`
	Rounds []Round `json:"rounds"`
}

// GradeItem is one answer awaiting a verdict, decorated with everything the
// moderator needs to decide. Position is 1-based for progress display.
type GradeItem struct {
	RoundIndex    int    `json:"roundIndex"`
	QuestionIndex int    `json:"questionIndex"`
	PlayerID      string `json:"playerId"`
	QuestionText  string `json:"questionText"`
	Answer        string `json:"answer"`
	Points        int    `json:"points"`
	PlayerName    string `json:"playerName"`
	PlayerAnswer  string `json:"playerAnswer"`
	Position      int    `json:"position"`
	Total         int    `json:"total"`
}

// Progress reports how far grading has advanced for the active round.
type Progress struct {
	Done   bool      `json:"done"`
	Item   GradeItem `json:"item"`
	Graded int       `json:"graded"`
	Total  int       `json:"total"`
}

// ScoreboardEntry is a snapshot-friendly view of a player.
type ScoreboardEntry struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// Scoreboard is the ordered standings for a session, best score first.
type Scoreboard struct {
	Code    string            `json:"code"`
	Entries []ScoreboardEntry `json:"entries"`
}

// QuestionView is the player-facing shape of a question: no reference answer.
type QuestionView struct {
	Text   string `json:"text"`
	Points int    `json:"points"`
}

// RoundView is what players see during an answering phase, plus their own
// submission status and the room-wide completion counts.
type RoundView struct {
	Index          int            `json:"index"`
	Title          string         `json:"title"`
	Questions      []QuestionView `json:"questions"`
	Submitted      bool           `json:"submitted"`
	SubmittedCount int            `json:"submittedCount"`
	PlayerCount    int            `json:"playerCount"`
}

// StateSnapshot is the read-only view of where the session is.
type StateSnapshot struct {
	Phase      Phase `json:"phase"`
	RoundIndex int   `json:"roundIndex"`
	RoundCount int   `json:"roundCount"`
}
