package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"quiz-outcome-service/internal/app"
	"quiz-outcome-service/internal/domain"
)

// body is the standard API response envelope.
type body struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type resolveRequest struct {
	Answers []domain.AnswerSubmission `json:"answers"`
}

// ResolveHandler resolves a complete answer set in one request.
type ResolveHandler struct {
	service *app.ResponseService
	logger  *zap.Logger
}

func NewResolveHandler(service *app.ResponseService, logger *zap.Logger) *ResolveHandler {
	return &ResolveHandler{service: service, logger: logger}
}

func (h *ResolveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, body{Error: "invalid request body"})
		return
	}

	res, err := h.service.Resolve(r.Context(), quizID, req.Answers)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("resolve quiz", zap.String("quiz_id", quizID), zap.Error(err))
		}
		writeJSON(w, status, body{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, body{Success: true, Data: res})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrQuizNotFound), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrOptionNotFound),
		errors.Is(err, domain.ErrInvalidAnswer),
		errors.Is(err, domain.ErrInvalidEmail):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionCompleted), errors.Is(err, domain.ErrEmailRequired):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
