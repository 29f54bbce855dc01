package http

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"cerises-quiz/internal/app"
	"cerises-quiz/internal/domain"
	"github.com/gorilla/websocket"
)

// BalanceFeed delivers balance updates for a single player.
type BalanceFeed interface {
	Subscribe(playerID string) (<-chan domain.BalanceChanged, func())
}

type WSHandler struct {
	service  *app.GameService
	balances BalanceFeed
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService, balances BalanceFeed) *WSHandler {
	return &WSHandler{
		service:  service,
		balances: balances,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	QuestionID string `json:"questionId"`
	Mode       string `json:"mode"`
}

type answerPayload struct {
	Text string `json:"text"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the game use cases.
// A connection plays at most one game at a time; starting a new one abandons the previous.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")
	displayName := r.URL.Query().Get("name")
	if playerID == "" || displayName == "" {
		http.Error(w, "missing playerId or name", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	var forwarders sync.WaitGroup

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	if h.balances != nil {
		balances, cancelBalances := h.balances.Subscribe(playerID)
		defer cancelBalances()
		forwarders.Add(1)
		go func() {
			defer forwarders.Done()
			forward(balances, closeSignals, send, func(ev domain.BalanceChanged) (outboundMessage[any], bool) {
				return outboundMessage[any]{Type: "balance", Payload: ev}, true
			})
		}()
	}

	var gameID string
	var cancelGame func()
	stopGame := func() {
		if gameID == "" {
			return
		}
		cancelGame()
		h.service.Abandon(ctx, gameID)
		gameID = ""
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.QuestionID == "" {
				send <- errorMessage("invalid start payload")
				continue
			}
			stopGame()
			snap, err := h.service.Start(ctx, app.StartRequest{
				PlayerID:    playerID,
				DisplayName: displayName,
				QuestionID:  payload.QuestionID,
				Mode:        payload.Mode,
			})
			if err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			events, cancel, err := h.service.Subscribe(ctx, snap.GameID)
			if err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			gameID, cancelGame = snap.GameID, cancel
			send <- outboundMessage[any]{Type: "started", Payload: snap}

			forwarders.Add(1)
			go func() {
				defer forwarders.Done()
				forward(events, closeSignals, send, gameEventMessage)
			}()
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid answer payload")
				continue
			}
			if gameID == "" {
				send <- errorMessage(domain.ErrGameNotFound.Error())
				continue
			}
			res, err := h.service.Submit(ctx, gameID, payload.Text)
			if err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			send <- outboundMessage[any]{Type: "answerResult", Payload: res}
		case "abandon":
			stopGame()
		default:
			send <- errorMessage("unsupported message type")
		}
	}

	stopGame()
	close(closeSignals)
	forwarders.Wait()
	close(send)
	<-writerDone
}

// gameEventMessage maps game events to outbound messages. Answer events are
// skipped because the submitter already gets an answerResult.
func gameEventMessage(ev app.GameEvent) (outboundMessage[any], bool) {
	switch ev.Type {
	case app.EventTick:
		return outboundMessage[any]{Type: "tick", Payload: ev.State}, true
	case app.EventFinished:
		return outboundMessage[any]{Type: "finished", Payload: ev}, true
	default:
		return outboundMessage[any]{}, false
	}
}

func forward[T any](in <-chan T, done <-chan struct{}, send chan<- outboundMessage[any], convert func(T) (outboundMessage[any], bool)) {
	for {
		select {
		case item, ok := <-in:
			if !ok {
				return
			}
			msg, ok := convert(item)
			if !ok {
				continue
			}
			select {
			case send <- msg:
			case <-done:
				return
			}
		case <-done:
			return
		}
	}
}

func errorMessage(msg string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg}}
}
