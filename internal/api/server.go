// Package api exposes the bot's HTTP surface: the message webhook the
// platform POSTs to, the integration descriptor it fetches, and liveness.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"taskbot/internal/domain"
)

type MessageHandler interface {
	Handle(ctx context.Context, message, channelID string) domain.Reply
}

type Server struct {
	dispatcher MessageHandler
	descriptor Descriptor
}

func NewServer(dispatcher MessageHandler, publicURL string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)

	s := &Server{dispatcher: dispatcher, descriptor: NewDescriptor(publicURL)}

	r.Get("/health", s.health)
	r.Get("/integration.json", s.integrationJSON)
	r.Post("/format-message", s.formatMessage)

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) integrationJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.descriptor)
}

func (s *Server) formatMessage(w http.ResponseWriter, r *http.Request) {
	var req domain.InboundMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	channelID := req.ChannelID()
	if channelID == "" {
		http.Error(w, "channelID setting is required", 400)
		return
	}

	reply := s.dispatcher.Handle(r.Context(), req.Message, channelID)
	writeJSON(w, http.StatusOK, reply)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
