package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lakshaya-counselling/assessment-backend/internal/config"
	"github.com/lakshaya-counselling/assessment-backend/internal/middleware"
	"github.com/lakshaya-counselling/assessment-backend/internal/model"
	"github.com/lakshaya-counselling/assessment-backend/internal/scoring"
	"github.com/lakshaya-counselling/assessment-backend/internal/service"
	ws "github.com/lakshaya-counselling/assessment-backend/internal/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler handles the WebSocket test session stream: live answer autosave
// and in-stream submission.
type WSHandler struct {
	rdb               *redis.Client
	userService       *service.UserService
	submissionService *service.SubmissionService
	log               zerolog.Logger
	upgrader          websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(
	rdb *redis.Client,
	userService *service.UserService,
	submissionService *service.SubmissionService,
	log zerolog.Logger,
	allowedOrigins []string,
) *WSHandler {
	return &WSHandler{
		rdb:               rdb,
		userService:       userService,
		submissionService: submissionService,
		log:               log.With().Str("component", "ws_handler").Logger(),
		upgrader:          buildUpgrader(allowedOrigins),
	}
}

// TestSessionStream godoc
// WS /ws/v1/user/tests/:testType/stream
// Upgrades to WebSocket for real-time answer autosave and submission.
func (h *WSHandler) TestSessionStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	t := scoring.TestType(c.Param("testType"))
	if !t.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown test type"})
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}
	if !user.Access.Allows(t) {
		c.JSON(http.StatusForbidden, gin.H{"error": "test not assigned"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	answersKey := config.CacheKey.AnswerBufferKey(user.ID, string(t))

	// Record when the candidate first opened the test. SetNX so reconnects
	// keep the original start time for the timed parts.
	startKey := config.CacheKey.TestSessionStartKey(user.ID, string(t))
	if err := h.rdb.SetNX(c.Request.Context(), startKey, time.Now().UnixMilli(), 24*time.Hour).Err(); err != nil {
		h.log.Warn().Err(err).Msg("Failed to record session start")
	}

	wsLog := h.log.With().
		Int("user_id", user.ID).
		Str("test_type", string(t)).
		Logger()

	wsLog.Info().Msg("Candidate connected")

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionAutosave:
			h.handleAutosave(conn, answersKey, user.ID, t, &msg)
		case ws.ActionPing:
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong, ServerTime: time.Now().UnixMilli()})
		case ws.ActionSubmit:
			h.handleSubmit(conn, wsLog, answersKey, user, t, &msg)
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			ws.WriteError(conn, "unknown action: "+string(msg.Action))
		}
	}
}

// handleAutosave buffers a single answer in Redis and queues it for
// persistence.
func (h *WSHandler) handleAutosave(conn *websocket.Conn, answersKey string, userID int, t scoring.TestType, msg *ws.RequestPayload) {
	ctx := context.Background()

	if msg.QID == "" || msg.Answer == "" {
		ws.WriteError(conn, "q_id and ans are required")
		return
	}

	ans := normalizeAnswerJSON(msg.Answer)

	if err := h.rdb.HSet(ctx, answersKey, msg.QID, string(ans)).Err(); err != nil {
		h.log.Error().Err(err).Int("user_id", userID).Msg("Autosave Redis error")
		ws.WriteError(conn, "save failed")
		return
	}

	partial, _ := json.Marshal(map[string]json.RawMessage{msg.QID: ans})
	job, _ := json.Marshal(model.TestProgress{
		UserID:    userID,
		TestType:  t,
		Responses: partial,
	})
	h.rdb.RPush(ctx, config.WorkerKey.PersistProgressQueue, job)

	ws.WriteTyped(conn, ws.SavedResponse{Event: ws.EventSaved, QID: msg.QID, Status: "saved"})
}

// handleSubmit assembles the buffered answers, grades the test, and streams
// the result back.
func (h *WSHandler) handleSubmit(conn *websocket.Conn, wsLog zerolog.Logger, answersKey string, user *model.User, t scoring.TestType, msg *ws.RequestPayload) {
	ctx := context.Background()

	// Reload so the completion check sees the latest status, not the state
	// at connect time.
	user, err := h.userService.GetByID(ctx, user.ID)
	if err != nil {
		ws.WriteError(conn, "account not found")
		return
	}

	buffered, err := h.rdb.HGetAll(ctx, answersKey).Result()
	if err != nil {
		wsLog.Error().Err(err).Msg("Get buffered answers error")
		ws.WriteError(conn, "failed to read answers")
		return
	}

	responses := make(scoring.Responses, len(buffered))
	for qid, raw := range buffered {
		var ans scoring.Answer
		if err := json.Unmarshal(normalizeAnswerJSON(raw), &ans); err != nil {
			continue
		}
		responses[qid] = ans
	}

	req := &model.SubmitTestRequest{
		TestType:  string(t),
		Responses: responses,
		Matches:   msg.Matches,
		Part:      msg.Part,
	}

	result, err := h.submissionService.Submit(ctx, user, req)
	if err != nil {
		wsLog.Error().Err(err).Msg("Stream submit failed")
		ws.WriteError(conn, err.Error())
		return
	}

	h.rdb.Del(ctx, answersKey)

	wsLog.Info().Str("submission_id", result.ID.String()).Msg("Test submitted over stream")

	ws.WriteTyped(conn, ws.GradedResponse{
		Event:  ws.EventGraded,
		Status: "completed",
		ID:     result.ID.String(),
		Score:  result.Score,
	})
}

// normalizeAnswerJSON returns the answer as valid JSON: arrays and strings
// pass through, anything else is quoted as a JSON string.
func normalizeAnswerJSON(ans string) json.RawMessage {
	trimmed := strings.TrimSpace(ans)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '"') && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	quoted, _ := json.Marshal(ans)
	return quoted
}
