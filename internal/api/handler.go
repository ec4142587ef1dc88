package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/remaimber-it/quizbank/internal/bank"
	"github.com/remaimber-it/quizbank/internal/domain/exam"
	"github.com/remaimber-it/quizbank/internal/domain/progress"
	"github.com/remaimber-it/quizbank/internal/domain/question"
	"github.com/remaimber-it/quizbank/internal/service"
	"github.com/remaimber-it/quizbank/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	store     store.Reader
	generator *service.ExamGenerator
	recorder  *service.ExamRecorder
	progress  *service.ProgressService
	history   *service.HistoryService
	loader    *bank.Loader
	attempts  *Attempts
	logger    *zap.Logger
}

// Deps lists what NewHandler wires together.
type Deps struct {
	Store     store.Reader
	Generator *service.ExamGenerator
	Recorder  *service.ExamRecorder
	Progress  *service.ProgressService
	History   *service.HistoryService
	Loader    *bank.Loader
	Attempts  *Attempts
	Logger    *zap.Logger
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		store:     d.Store,
		generator: d.Generator,
		recorder:  d.Recorder,
		progress:  d.Progress,
		history:   d.History,
		loader:    d.Loader,
		attempts:  d.Attempts,
		logger:    d.Logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads the request body into v. It writes a 400 and returns
// false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// pathID parses the named path value as a positive integer id.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// handleError maps service and store errors onto HTTP responses. Returns
// true if an error was handled (caller should return).
func (h *Handler) handleError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, exam.ErrInvalidCount),
		errors.Is(err, exam.ErrInvalidDistribution),
		errors.Is(err, exam.ErrInvalidSubmission),
		errors.Is(err, progress.ErrInvalidDelta),
		errors.Is(err, question.ErrInvalidLabel),
		errors.Is(err, bank.ErrInvalidCatalog),
		errors.Is(err, bank.ErrUnknownFormat):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrExamNotFound):
		respondError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, service.ErrQuestionMissing), errors.Is(err, store.ErrExamFinished):
		respondError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("request failed", zap.String("entity", entity), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
