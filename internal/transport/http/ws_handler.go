package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"quiz-outcome-service/internal/app"
	"quiz-outcome-service/internal/domain"
)

// WSHandler drives a respondent through a quiz over a single WebSocket.
type WSHandler struct {
	service  *app.ResponseService
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.ResponseService, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		logger:  logger,
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

type emailPayload struct {
	Email string `json:"email"`
}

// ServeWS upgrades HTTP requests to websockets. Clients connect with quizId to start a
// new response or sessionId to resume one, then send "answer", "email" and "complete" messages.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	sessionID := r.URL.Query().Get("sessionId")
	if quizID == "" && sessionID == "" {
		http.Error(w, "missing quizId or sessionId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	progress, err := h.open(ctx, quizID, sessionID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	sessionID = progress.SessionID

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	// Single writer goroutine; gorilla connections do not support concurrent writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Debug("ws write error", zap.String("session_id", sessionID), zap.Error(err))
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "started", Payload: progress}

loop:
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		select {
		case send <- h.handle(ctx, sessionID, inbound):
		case <-writerDone:
			break loop
		}
	}

	close(send)
	<-writerDone
}

func (h *WSHandler) open(ctx context.Context, quizID, sessionID string) (domain.Progress, error) {
	if sessionID != "" {
		return h.service.Resume(ctx, sessionID)
	}
	return h.service.Start(ctx, quizID)
}

func (h *WSHandler) handle(ctx context.Context, sessionID string, inbound inboundMessage) outboundMessage[any] {
	switch inbound.Type {
	case "answer":
		var payload domain.AnswerSubmission
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errorMessage("invalid answer payload")
		}
		progress, err := h.service.Answer(ctx, sessionID, payload)
		if err != nil {
			return errorMessage(err.Error())
		}
		return outboundMessage[any]{Type: "progress", Payload: progress}
	case "email":
		var payload emailPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errorMessage("invalid email payload")
		}
		progress, err := h.service.SubmitEmail(ctx, sessionID, payload.Email)
		if err != nil {
			return errorMessage(err.Error())
		}
		return outboundMessage[any]{Type: "progress", Payload: progress}
	case "complete":
		res, err := h.service.Complete(ctx, sessionID)
		if err != nil {
			return errorMessage(err.Error())
		}
		return outboundMessage[any]{Type: "result", Payload: res}
	default:
		return errorMessage("unsupported message type")
	}
}

func errorMessage(msg string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg}}
}
