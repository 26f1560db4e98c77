package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"gdict/internal/config"
	"gdict/internal/domain"
	"gdict/internal/logger"
	"gdict/internal/service"

	"github.com/gorilla/mux"
)

// maxBodyBytes bounds request bodies; grammar texts are the largest payload
const maxBodyBytes = 1 << 20

// DictionaryService interface for the proxy operations
type DictionaryService interface {
	Lookup(ctx context.Context, word string) (json.RawMessage, error)
	DailyWord(ctx context.Context) json.RawMessage
	Grammar(ctx context.Context, text string) (json.RawMessage, error)
	Generate(ctx context.Context, prompt string) (string, error)
}

// Handler holds the HTTP handlers
type Handler struct {
	dictionary DictionaryService
	config     *config.Config
	logger     *logger.Logger
}

// NewHandler creates a new handler
func NewHandler(dictionary DictionaryService, cfg *config.Config, log *logger.Logger) *Handler {
	log.Info("Handler initialized successfully")
	return &Handler{
		dictionary: dictionary,
		config:     cfg,
		logger:     log,
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/lookup", h.LookupHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/daily-word", h.DailyWordHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/grammar", h.GrammarHandler).Methods(http.MethodPost)
	if h.config.EnableGenerate {
		router.HandleFunc("/api/generate", h.GenerateHandler).Methods(http.MethodPost)
	}

	router.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)
	router.HandleFunc("/", h.RootHandler).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(h.NotFoundHandler)
	router.MethodNotAllowedHandler = http.HandlerFunc(h.MethodNotAllowedHandler)
}

// LookupHandler returns the dictionary entry for a word
func (h *Handler) LookupHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.LookupRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.logger.Info("Processing lookup request: word='%s'", req.Word)

	entry, err := h.dictionary.Lookup(r.Context(), req.Word)
	if err != nil {
		h.writeServiceError(w, "lookup", err)
		return
	}

	h.writeRaw(w, http.StatusOK, entry)
}

// DailyWordHandler returns the word of the day; it always answers 200
func (h *Handler) DailyWordHandler(w http.ResponseWriter, r *http.Request) {
	h.writeRaw(w, http.StatusOK, h.dictionary.DailyWord(r.Context()))
}

// GrammarHandler returns the writing analysis of a text
func (h *Handler) GrammarHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.GrammarRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.logger.Info("Processing grammar request (%d chars)", len(req.Text))

	analysis, err := h.dictionary.Grammar(r.Context(), req.Text)
	if err != nil {
		h.writeServiceError(w, "grammar", err)
		return
	}

	h.writeRaw(w, http.StatusOK, analysis)
}

// GenerateHandler runs a free-form prompt
func (h *Handler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateRequest
	if !h.decode(w, r, &req) {
		return
	}

	text, err := h.dictionary.Generate(r.Context(), req.Prompt)
	if err != nil {
		h.writeServiceError(w, "generate", err)
		return
	}

	h.writeJSON(w, http.StatusOK, domain.GenerateResponse{Text: text})
}

// RootHandler answers plain-text liveness probes
func (h *Handler) RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, "Gdict API is running"); err != nil {
		h.logger.Error("Failed to write response: %v", err)
	}
}

// HealthHandler reports the configured generation provider
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"provider": h.config.GenAI.Provider,
	})
}

// NotFoundHandler handles 404 errors
func (h *Handler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("404 for path '%s'", r.URL.Path)
	h.writeError(w, http.StatusNotFound, "Not found")
}

// MethodNotAllowedHandler handles 405 errors
func (h *Handler) MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// decode reads a JSON body into dst and writes a 400 on failure
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("Invalid JSON body on %s: %v", r.URL.Path, err)
		h.writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	var invalid service.InvalidRequestError
	if errors.As(err, &invalid) {
		h.logger.Warn("Rejected %s request: %v", op, err)
		h.writeError(w, http.StatusBadRequest, invalid.Message)
		return
	}

	h.logger.Error("Error in %s: %v", op, err)
	h.writeError(w, http.StatusInternalServerError, err.Error())
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, domain.ErrorResponse{Error: message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("Failed to encode response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.writeRaw(w, status, data)
}

func (h *Handler) writeRaw(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("Failed to write response: %v", err)
	}
}
