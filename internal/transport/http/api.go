package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"cerises-quiz/internal/app"
	"cerises-quiz/internal/domain"
)

// APIHandler serves read-only JSON endpoints.
type APIHandler struct {
	service *app.GameService
}

func NewAPIHandler(service *app.GameService) *APIHandler {
	return &APIHandler{service: service}
}

// NewRouter mounts the websocket and JSON endpoints.
func NewRouter(ws *WSHandler, api *APIHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", ws.ServeWS)
	mux.HandleFunc("/leaderboard", api.Leaderboard)
	mux.HandleFunc("/balance", api.Balance)
	return mux
}

// Leaderboard handles GET /leaderboard?mode=top10&limit=10.
func (h *APIHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	mode := r.URL.Query().Get("mode")
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	lb, err := h.service.Leaderboard(r.Context(), mode, limit)
	if errors.Is(err, domain.ErrUnknownMode) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("leaderboard %s: %v", mode, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, lb)
}

type balanceResponse struct {
	PlayerID string `json:"playerId"`
	Balance  int    `json:"balance"`
}

// Balance handles GET /balance?playerId=u1.
func (h *APIHandler) Balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		http.Error(w, "missing playerId", http.StatusBadRequest)
		return
	}
	balance, err := h.service.Balance(r.Context(), playerID)
	if err != nil {
		log.Printf("balance %s: %v", playerID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, balanceResponse{PlayerID: playerID, Balance: balance})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}
