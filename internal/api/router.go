package api

import (
	"net/http"
)

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Exams
	mux.HandleFunc("POST /exams", h.generateExam)
	mux.HandleFunc("POST /exams/submit", h.scoreExam)
	mux.HandleFunc("POST /exams/{token}/submit", h.submitExam)
	mux.HandleFunc("GET /exams", h.listExams)
	mux.HandleFunc("GET /exams/{examID}", h.getExam)

	// Categories and progress
	mux.HandleFunc("GET /categories", h.listCategories)
	mux.HandleFunc("GET /progress", h.listProgress)
	mux.HandleFunc("GET /progress/{categoryID}", h.getProgress)
	mux.HandleFunc("POST /progress/{categoryID}", h.recordOutcome)
	mux.HandleFunc("GET /stats", h.getOverview)

	// Catalog
	mux.HandleFunc("GET /export", h.exportAll)
	mux.HandleFunc("POST /import", h.importAll)
}
