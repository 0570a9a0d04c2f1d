package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type SessionRequest struct {
	SessionID string `json:"session_id"`
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"ok": true, "message": h.svc.Greeting()})
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, greeting, err := h.svc.StartSession(r.Context())
	if err != nil {
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"session_id": id, "message": greeting})
}

func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	reply, err := h.svc.Chat(r.Context(), req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "Unknown session", http.StatusNotFound)
			return
		}
		http.Error(w, "Processing failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, ChatResponse{Reply: reply})
}

func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.svc.Reset(r.Context(), req.SessionID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "Unknown session", http.StatusNotFound)
			return
		}
		http.Error(w, "Reset failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

func (h *Handler) HandleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	transcript, err := h.svc.Transcript(r.Context(), sessionID)
	if err != nil {
		http.Error(w, "Failed to load transcript", http.StatusInternalServerError)
		return
	}
	if transcript == nil {
		transcript = []Message{}
	}
	writeJSON(w, transcript)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.Root)
	r.Post("/session", h.CreateSession)
	r.Post("/chat", h.HandleChat)
	r.Post("/reset", h.HandleReset)
	r.Get("/session/{sessionID}/transcript", h.HandleTranscript)
}
