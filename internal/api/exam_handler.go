package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/remaimber-it/quizbank/internal/domain/exam"
	"github.com/remaimber-it/quizbank/internal/domain/progress"
	"github.com/remaimber-it/quizbank/internal/domain/question"
	"github.com/remaimber-it/quizbank/internal/store"
)

// ── Request / Response types ────────────────────────────────────────────────

type GenerateExamRequest struct {
	Mode         string             `json:"mode,omitempty" example:"balanced"` // balanced (default) or random
	Count        *int               `json:"count,omitempty" example:"20"`
	Categories   []int64            `json:"categories,omitempty" example:"1,3"`
	Distribution *exam.Distribution `json:"distribution,omitempty"`
}

type GenerateExamResponse struct {
	Token             string                      `json:"token"`
	Mode              string                      `json:"mode"`
	TotalQuestions    int                         `json:"total_questions"`
	Questions         []question.Display          `json:"questions"`
	CategorySummary   map[int64]int               `json:"category_summary"`
	DifficultySummary map[question.Difficulty]int `json:"difficulty_summary"`
	TypeSummary       map[question.Type]int       `json:"type_summary"`
	ExpiresAt         time.Time                   `json:"expires_at"`
}

type SubmitExamRequest struct {
	Answers        map[int64]string `json:"answers"`
	ElapsedSeconds int              `json:"elapsed_seconds"`
}

// ScoreExamRequest submits an exam without a token, naming its questions.
type ScoreExamRequest struct {
	QuestionIDs    []int64          `json:"question_ids"`
	CategoryFilter []int64          `json:"category_filter,omitempty"`
	Answers        map[int64]string `json:"answers"`
	ElapsedSeconds int              `json:"elapsed_seconds"`
}

type QuestionResult struct {
	Number        int            `json:"number"`
	QuestionID    int64          `json:"question_id"`
	QuestionText  string         `json:"question_text"`
	CategoryID    int64          `json:"category_id"`
	UserAnswer    question.Label `json:"user_answer"`
	CorrectAnswer question.Label `json:"correct_answer"`
	IsCorrect     bool           `json:"is_correct"`
	Explanation   string         `json:"explanation,omitempty"`
}

type CategoryResult struct {
	CategoryID int64 `json:"category_id"`
	Answered   int   `json:"answered"`
	Correct    int   `json:"correct"`
}

type SubmitExamResponse struct {
	ExamID          int64            `json:"exam_id"`
	TotalQuestions  int              `json:"total_questions"`
	CorrectAnswers  int              `json:"correct_answers"`
	Score           float64          `json:"score"`
	ElapsedSeconds  int              `json:"elapsed_seconds"`
	TimePerQuestion int              `json:"time_per_question"`
	Results         []QuestionResult `json:"results"`
	Categories      []CategoryResult `json:"categories"`
}

type ExamResponse struct {
	ID             int64     `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers *int      `json:"correct_answers"`
	Score          *float64  `json:"score"`
	CategoryFilter []int64   `json:"category_filter"`
	ElapsedSeconds *int      `json:"elapsed_seconds"`
}

type AnswerResponse struct {
	QuestionResult
	Options          [5]string           `json:"options"`
	Difficulty       question.Difficulty `json:"difficulty"`
	TimeSpentSeconds int                 `json:"time_spent_seconds"`
}

type ExamDetailResponse struct {
	ExamResponse
	Answers []AnswerResponse `json:"answers"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// generateExam draws a new exam from the bank.
// @Summary      Generate an exam
// @Description  Draw questions from the bank, balanced by difficulty (default) or uniformly at random. The answers are withheld; the returned token submits the exam once before it expires.
// @Tags         Exams
// @Accept       json
// @Produce      json
// @Param        body  body      GenerateExamRequest  true  "Exam parameters; every field is optional"
// @Success      201   {object}  GenerateExamResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /exams [post]
func (h *Handler) generateExam(w http.ResponseWriter, r *http.Request) {
	var req GenerateExamRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ereq := exam.Request{Count: req.Count, Categories: req.Categories, Distribution: req.Distribution}
	var (
		questions []question.Question
		err       error
	)
	switch req.Mode {
	case "", "balanced":
		req.Mode = "balanced"
		questions, err = h.generator.Generate(r.Context(), ereq)
	case "random":
		questions, err = h.generator.GenerateRandom(r.Context(), ereq)
	default:
		respondError(w, http.StatusBadRequest, "mode must be balanced or random")
		return
	}
	if h.handleError(w, err, "exam") {
		return
	}

	ids := make([]int64, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	token, attempt := h.attempts.Put(ids, exam.NormalizeFilter(req.Categories))
	h.logger.Debug("exam generated",
		zap.String("mode", req.Mode),
		zap.Int("questions", len(questions)),
		zap.Int("pending_attempts", h.attempts.Len()),
	)

	respondJSON(w, http.StatusCreated, GenerateExamResponse{
		Token:             token,
		Mode:              req.Mode,
		TotalQuestions:    len(questions),
		Questions:         question.Redact(questions),
		CategorySummary:   question.CategorySummary(questions),
		DifficultySummary: question.DifficultySummary(questions),
		TypeSummary:       question.TypeSummary(questions),
		ExpiresAt:         attempt.ExpiresAt,
	})
}

// submitExam scores the exam generated under token.
// @Summary      Submit a generated exam
// @Description  Score the answers of a generated exam and record the result. A token is redeemable once; it stays valid when scoring fails.
// @Tags         Exams
// @Accept       json
// @Produce      json
// @Param        token  path      string             true  "Token returned by POST /exams"
// @Param        body   body      SubmitExamRequest  true  "Answers keyed by question id"
// @Success      200    {object}  SubmitExamResponse
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string  "unknown or expired token"
// @Failure      409    {object}  map[string]string  "a question was removed from the bank"
// @Failure      500    {object}  map[string]string
// @Router       /exams/{token}/submit [post]
func (h *Handler) submitExam(w http.ResponseWriter, r *http.Request) {
	var req SubmitExamRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token := r.PathValue("token")
	attempt, ok := h.attempts.Take(token)
	if !ok {
		respondError(w, http.StatusNotFound, "exam attempt not found or expired")
		return
	}

	out, err := h.score(r.Context(), exam.Submission{
		QuestionIDs:    attempt.QuestionIDs,
		CategoryFilter: attempt.CategoryFilter,
		Answers:        req.Answers,
		ElapsedSeconds: req.ElapsedSeconds,
	})
	if err != nil {
		h.attempts.Restore(token, attempt)
		h.handleError(w, err, "exam")
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// scoreExam scores an exam whose questions the client names.
// @Summary      Score an exam by question ids
// @Description  Score and record an exam without a token. Questions are scored in the order given.
// @Tags         Exams
// @Accept       json
// @Produce      json
// @Param        body  body      ScoreExamRequest  true  "Question ids and answers"
// @Success      200   {object}  SubmitExamResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string  "unknown question id"
// @Failure      500   {object}  map[string]string
// @Router       /exams/submit [post]
func (h *Handler) scoreExam(w http.ResponseWriter, r *http.Request) {
	var req ScoreExamRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	out, err := h.score(r.Context(), exam.Submission(req))
	if h.handleError(w, err, "exam") {
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) score(ctx context.Context, sub exam.Submission) (SubmitExamResponse, error) {
	out, err := h.recorder.Score(ctx, sub)
	if err != nil {
		return SubmitExamResponse{}, err
	}

	resp := SubmitExamResponse{
		ExamID:          out.ExamID,
		TotalQuestions:  out.Total,
		CorrectAnswers:  out.Correct,
		Score:           progress.Round2(out.Score),
		ElapsedSeconds:  out.ElapsedSeconds,
		TimePerQuestion: out.TimePerQuestion,
		Results:         make([]QuestionResult, len(out.Results)),
		Categories:      make([]CategoryResult, len(out.Categories)),
	}
	for i, res := range out.Results {
		resp.Results[i] = questionResult(i+1, res.Question, res.Submitted, res.IsCorrect)
	}
	for i, d := range out.Categories {
		resp.Categories[i] = CategoryResult{CategoryID: d.CategoryID, Answered: d.Answered, Correct: d.Correct}
	}
	return resp, nil
}

// listExams returns the exam history, newest first.
// @Summary      List exams
// @Tags         Exams
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of exams (defaults to the configured history limit)"
// @Success      200    {array}   ExamResponse
// @Failure      400    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /exams [get]
func (h *Handler) listExams(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	exams, err := h.history.Recent(r.Context(), limit)
	if h.handleError(w, err, "exams") {
		return
	}

	response := make([]ExamResponse, len(exams))
	for i, e := range exams {
		response[i] = examResponse(e)
	}
	respondJSON(w, http.StatusOK, response)
}

// getExam returns one exam with its answers.
// @Summary      Get an exam
// @Tags         Exams
// @Produce      json
// @Param        examID  path      int  true  "Exam ID"
// @Success      200     {object}  ExamDetailResponse
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /exams/{examID} [get]
func (h *Handler) getExam(w http.ResponseWriter, r *http.Request) {
	examID, ok := pathID(w, r, "examID")
	if !ok {
		return
	}

	detail, err := h.history.Detail(r.Context(), examID)
	if h.handleError(w, err, "exam") {
		return
	}

	resp := ExamDetailResponse{
		ExamResponse: examResponse(detail.Exam),
		Answers:      make([]AnswerResponse, len(detail.Answers)),
	}
	for i, a := range detail.Answers {
		resp.Answers[i] = answerResponse(i+1, a)
	}
	respondJSON(w, http.StatusOK, resp)
}

func questionResult(number int, q question.Question, submitted question.Label, correct bool) QuestionResult {
	return QuestionResult{
		Number:        number,
		QuestionID:    q.ID,
		QuestionText:  q.Text,
		CategoryID:    q.CategoryID,
		UserAnswer:    submitted,
		CorrectAnswer: q.Correct,
		IsCorrect:     correct,
		Explanation:   q.Explanation,
	}
}

func examResponse(e *exam.Exam) ExamResponse {
	filter := e.CategoryFilter
	if filter == nil {
		filter = []int64{}
	}
	return ExamResponse{
		ID:             e.ID,
		CreatedAt:      e.CreatedAt,
		TotalQuestions: e.TotalQuestions,
		CorrectAnswers: e.CorrectAnswers,
		Score:          e.Score,
		CategoryFilter: filter,
		ElapsedSeconds: e.ElapsedSeconds,
	}
}

func answerResponse(number int, a store.AnsweredQuestion) AnswerResponse {
	return AnswerResponse{
		QuestionResult:   questionResult(number, a.Question, a.Submitted, a.IsCorrect),
		Options:          a.Question.Options,
		Difficulty:       a.Question.Difficulty,
		TimeSpentSeconds: a.TimeSpentSeconds,
	}
}
