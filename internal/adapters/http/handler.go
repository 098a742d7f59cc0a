// Package httpadapter serves webhook-mode transport: Telegram pushes
// updates to us instead of being long-polled. The same Bot dispatcher
// handles both delivery modes.
package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/osalazar/pobot/internal/adapters/telegram"
)

type Server struct {
	bot *telegram.Bot
}

func NewServer(bot *telegram.Bot) http.Handler {
	s := &Server{bot: bot}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(withRequestID)

	r.Get("/healthz", s.handleHealth)
	r.Post("/telegram/webhook", s.handleWebhook)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleWebhook decodes one Bot API update and dispatches it. Telegram
// retries on non-2xx, so malformed bodies get a 400 once and everything
// else is acknowledged even when the dialogue reply fails; the dispatcher
// already logged what went wrong.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var upd telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		badRequest(w, "invalid update body")
		return
	}

	s.bot.HandleUpdate(r.Context(), upd)
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}
