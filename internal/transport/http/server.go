package http

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"festival-quiz/internal/domain"
	"festival-quiz/internal/festival"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 4 << 10

// NewRouter exposes the festival service over the quiz HTTP contract.
func NewRouter(service *festival.Service) http.Handler {
	h := &handler{service: service}
	ws := NewWSHandler(service)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/theme/current", h.currentTheme)
		r.Post("/theme/save", h.saveTheme)
		r.Post("/quiz/submit", h.submit)
		r.Get("/quiz/ranking", h.ranking)
		r.Post("/quiz/reset", h.reset)
		r.Get("/quiz/questions", h.questions)
	})
	r.Get("/ws/ranking", ws.ServeWS)
	return r
}

type handler struct {
	service *festival.Service
}

func (h *handler) currentTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.service.CurrentTheme(r.Context())
	if err != nil {
		log.Printf("theme read failed: %v", err)
		writeText(w, http.StatusInternalServerError, "theme unavailable")
		return
	}
	writeText(w, http.StatusOK, theme)
}

func (h *handler) saveTheme(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.service.SaveTheme(r.Context(), body); err != nil {
		writeError(w, err)
		return
	}
	writeText(w, http.StatusOK, "OK")
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	entry, err := h.service.Submit(r.Context(), body)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Printf("score submitted: %s=%d", entry.Name, entry.Score)
	writeText(w, http.StatusOK, "OK")
}

func (h *handler) ranking(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Ranking(r.Context()))
}

func (h *handler) reset(w http.ResponseWriter, r *http.Request) {
	h.service.Reset(r.Context())
	log.Printf("ranking reset")
	writeText(w, http.StatusOK, "OK")
}

func (h *handler) questions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.service.Questions(r.Context(), r.URL.Query().Get("set"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeText(w, http.StatusRequestEntityTooLarge, "body too large")
		return "", false
	}
	return string(data), true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeText(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrQuestionSetNotFound):
		writeText(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("request failed: %v", err)
		writeText(w, http.StatusInternalServerError, "internal error")
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.Copy(w, strings.NewReader(body))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}
