package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionAutosave Action = "autosave"
	ActionSubmit   Action = "submit"
	ActionPing     Action = "ping"
)

// RequestPayload is the single client message shape. Fields beyond Action
// are populated per action.
type RequestPayload struct {
	Action Action `json:"action"`
	// Autosave: the question being answered and the raw answer. The answer
	// is kept as raw JSON because dual-answer questions send arrays.
	QID    string `json:"q_id,omitempty"`
	Answer string `json:"ans,omitempty"`
	// Submit: the shape-match list for GATB part 7.
	Matches []string `json:"matches,omitempty"`
	Part    int      `json:"part,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError  Event = "error"
	EventSaved  Event = "saved"
	EventGraded Event = "graded"
	EventPong   Event = "pong"
)

// SavedResponse acknowledges an autosaved answer.
type SavedResponse struct {
	Event  Event  `json:"event"`
	QID    string `json:"q_id"`
	Status string `json:"status"`
}

// GradedResponse carries the submission result back over the stream. Score
// is null for unscored test types.
type GradedResponse struct {
	Event  Event  `json:"event"`
	Status string `json:"status"`
	ID     string `json:"id"`
	Score  any    `json:"score"`
}

// PongResponse answers a ping with the server clock so clients can keep
// their test timers honest.
type PongResponse struct {
	Event      Event `json:"event"`
	ServerTime int64 `json:"server_time"`
}

// ErrorResponse reports a failed action.
type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}
