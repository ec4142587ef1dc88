package api

import (
	"fmt"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/remaimber-it/quizbank/internal/bank"
)

const maxImportBytes = 10 << 20

// catalogFormat reads the format from ?format= first, then from the
// Content-Type header. JSON is the default.
func catalogFormat(r *http.Request) (bank.Format, error) {
	switch f := r.URL.Query().Get("format"); f {
	case "json":
		return bank.FormatJSON, nil
	case "yaml", "yml":
		return bank.FormatYAML, nil
	case "":
	default:
		return "", fmt.Errorf("%w: %q", bank.ErrUnknownFormat, f)
	}

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/yaml", "application/x-yaml", "text/yaml":
		return bank.FormatYAML, nil
	}
	return bank.FormatJSON, nil
}

// ── Handlers ────────────────────────────────────────────────────────────────

// exportAll writes the whole bank as a catalog.
// @Summary      Export the question bank
// @Description  Download every category and question as a JSON or YAML catalog.
// @Tags         Catalog
// @Produce      json
// @Produce      application/yaml
// @Param        format  query     string  false  "json (default) or yaml"  Enums(json, yaml)
// @Success      200     {object}  bank.Catalog
// @Failure      400     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /export [get]
func (h *Handler) exportAll(w http.ResponseWriter, r *http.Request) {
	format, err := catalogFormat(r)
	if h.handleError(w, err, "catalog") {
		return
	}

	catalog, err := h.loader.Export(r.Context())
	if h.handleError(w, err, "catalog") {
		return
	}

	contentType := "application/json"
	if format == bank.FormatYAML {
		contentType = "application/yaml"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=quizbank-export."+string(format))
	if err := bank.Encode(w, format, catalog); err != nil {
		h.logger.Error("failed to write export", zap.Error(err))
	}
}

// importAll loads a catalog into the bank.
// @Summary      Import a catalog
// @Description  Load a JSON or YAML catalog. Categories are matched by name and questions already present in their category are skipped. Nothing is written when the catalog is invalid.
// @Tags         Catalog
// @Accept       json
// @Accept       application/yaml
// @Produce      json
// @Param        format  query     string        false  "json or yaml; defaults to the Content-Type"  Enums(json, yaml)
// @Param        body    body      bank.Catalog  true   "Catalog to import"
// @Success      201     {object}  bank.Summary
// @Failure      400     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /import [post]
func (h *Handler) importAll(w http.ResponseWriter, r *http.Request) {
	format, err := catalogFormat(r)
	if h.handleError(w, err, "catalog") {
		return
	}

	catalog, err := bank.Decode(http.MaxBytesReader(w, r.Body, maxImportBytes), format)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.loader.Import(r.Context(), catalog)
	if h.handleError(w, err, "catalog") {
		return
	}

	respondJSON(w, http.StatusCreated, summary)
}
