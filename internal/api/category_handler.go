package api

import (
	"net/http"
)

// ── Request / Response types ────────────────────────────────────────────────

type CategoryResponse struct {
	ID             int64  `json:"id" example:"1"`
	Name           string `json:"name" example:"Aggregation"`
	Description    string `json:"description,omitempty"`
	SessionNumber  int    `json:"session_number" example:"3"`
	TotalQuestions int    `json:"total_questions" example:"42"`
}

type RecordOutcomeRequest struct {
	Answered int `json:"answered" example:"10"`
	Correct  int `json:"correct" example:"7"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listCategories returns every category with its question count.
// @Summary      List categories
// @Description  Categories in session order, with the number of questions each holds.
// @Tags         Categories
// @Produce      json
// @Success      200  {array}   CategoryResponse
// @Failure      500  {object}  map[string]string
// @Router       /categories [get]
func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	categories, err := h.store.ListCategories(ctx)
	if h.handleError(w, err, "categories") {
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		n, err := h.store.CountQuestions(ctx, cat.ID)
		if h.handleError(w, err, "categories") {
			return
		}
		response[i] = CategoryResponse{
			ID:             cat.ID,
			Name:           cat.Name,
			Description:    cat.Description,
			SessionNumber:  cat.SessionNumber,
			TotalQuestions: n,
		}
	}
	respondJSON(w, http.StatusOK, response)
}

// listProgress returns the study progress of every category.
// @Summary      List study progress
// @Tags         Progress
// @Produce      json
// @Success      200  {array}   progress.Snapshot
// @Failure      500  {object}  map[string]string
// @Router       /progress [get]
func (h *Handler) listProgress(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.progress.SnapshotAll(r.Context())
	if h.handleError(w, err, "progress") {
		return
	}
	respondJSON(w, http.StatusOK, snapshots)
}

// getProgress returns the study progress of one category.
// @Summary      Get category progress
// @Tags         Progress
// @Produce      json
// @Param        categoryID  path      int  true  "Category ID"
// @Success      200         {object}  progress.Snapshot
// @Failure      400         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Failure      500         {object}  map[string]string
// @Router       /progress/{categoryID} [get]
func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	snap, err := h.progress.Snapshot(r.Context(), categoryID)
	if h.handleError(w, err, "category") {
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// recordOutcome adds a study outcome to a category.
// @Summary      Record a study outcome
// @Description  Add answered and correct counts to the category progress. Counts must be non-negative and correct may not exceed answered.
// @Tags         Progress
// @Accept       json
// @Produce      json
// @Param        categoryID  path      int                   true  "Category ID"
// @Param        body        body      RecordOutcomeRequest  true  "Outcome to add"
// @Success      200         {object}  progress.Snapshot
// @Failure      400         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Failure      500         {object}  map[string]string
// @Router       /progress/{categoryID} [post]
func (h *Handler) recordOutcome(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	var req RecordOutcomeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	err := h.progress.RecordCategoryOutcome(ctx, categoryID, req.Answered, req.Correct)
	if h.handleError(w, err, "category") {
		return
	}
	snap, err := h.progress.Snapshot(ctx, categoryID)
	if h.handleError(w, err, "category") {
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// getOverview returns the aggregate statistics.
// @Summary      Get overall statistics
// @Tags         Progress
// @Produce      json
// @Success      200  {object}  progress.Overview
// @Failure      500  {object}  map[string]string
// @Router       /stats [get]
func (h *Handler) getOverview(w http.ResponseWriter, r *http.Request) {
	o, err := h.progress.Overview(r.Context())
	if h.handleError(w, err, "stats") {
		return
	}
	respondJSON(w, http.StatusOK, o)
}
