package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cerises-quiz/internal/app"
	"cerises-quiz/internal/infra/memory"
	"cerises-quiz/internal/scoring"
	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) (*httptest.Server, *app.GameService) {
	t.Helper()
	questions := memory.NewQuestionRepository(memory.NewStaticQuestionLoader(memory.SampleQuestions()), time.Minute)
	broker := memory.NewBroker()
	service := app.NewGameService(memory.NewGameStore(), questions, memory.NewResultStore(), memory.NewWallet(), broker,
		scoring.DefaultModes(), app.WithTickInterval(0))

	server := httptest.NewServer(NewRouter(NewWSHandler(service, broker), NewAPIHandler(service)))
	t.Cleanup(server.Close)
	return server, service
}

func TestWebSocketGameFlow(t *testing.T) {
	server, _ := newTestServer(t)

	u := "ws" + server.URL[len("http"):] + "/ws?playerId=u1&name=Alice"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	start := map[string]any{
		"type":    "start",
		"payload": map[string]any{"questionId": "career-zidane"},
	}
	if err := conn.WriteJSON(start); err != nil {
		t.Fatalf("write start: %v", err)
	}
	_, payload := readNext(conn, t, "started")
	if payload["mode"] != "career" {
		t.Fatalf("expected career mode, got %v", payload["mode"])
	}

	wrong := map[string]any{"type": "answer", "payload": map[string]any{"text": "Platini"}}
	if err := conn.WriteJSON(wrong); err != nil {
		t.Fatalf("write answer: %v", err)
	}
	_, payload = readNext(conn, t, "answerResult")
	if payload["outcome"] != "incorrect" {
		t.Fatalf("expected incorrect, got %v", payload["outcome"])
	}

	right := map[string]any{"type": "answer", "payload": map[string]any{"text": "Zinédine Zidane"}}
	if err := conn.WriteJSON(right); err != nil {
		t.Fatalf("write answer: %v", err)
	}

	seen := map[string]map[string]any{}
	for i := 0; i < 3; i++ {
		typ, p := readNext(conn, t, "")
		seen[typ] = p
	}
	for _, typ := range []string{"answerResult", "finished", "balance"} {
		if _, ok := seen[typ]; !ok {
			t.Fatalf("expected %s message, got %v", typ, seen)
		}
	}
	if seen["answerResult"]["outcome"] != "correct" {
		t.Fatalf("expected correct outcome, got %v", seen["answerResult"])
	}
	// 50 pool, minus nothing, plus 15 capped time bonus.
	if seen["balance"]["balance"] != float64(65) {
		t.Fatalf("expected balance 65, got %v", seen["balance"])
	}
}

func TestWebSocketRejectsMissingParams(t *testing.T) {
	server, _ := newTestServer(t)
	resp, err := http.Get(server.URL + "/ws?playerId=u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestWebSocketUnknownQuestion(t *testing.T) {
	server, _ := newTestServer(t)
	u := "ws" + server.URL[len("http"):] + "/ws?playerId=u1&name=Alice"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]any{"type": "start", "payload": map[string]any{"questionId": "nope"}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, payload := readNext(conn, t, "error")
	if payload["message"] != "question not found" {
		t.Fatalf("unexpected error %v", payload)
	}
}

func TestLeaderboardAndBalanceEndpoints(t *testing.T) {
	server, _ := newTestServer(t)

	u := "ws" + server.URL[len("http"):] + "/ws?playerId=u7&name=Zizou"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	_ = conn.WriteJSON(map[string]any{"type": "start", "payload": map[string]any{"questionId": "career-zidane"}})
	readNext(conn, t, "started")
	_ = conn.WriteJSON(map[string]any{"type": "answer", "payload": map[string]any{"text": "zinedine zidane"}})
	for i := 0; i < 3; i++ {
		readNext(conn, t, "")
	}
	conn.Close()

	resp, err := http.Get(server.URL + "/leaderboard?mode=career&limit=5")
	if err != nil {
		t.Fatalf("get leaderboard: %v", err)
	}
	defer resp.Body.Close()
	var lb struct {
		Mode    string `json:"mode"`
		Entries []struct {
			PlayerID string `json:"playerId"`
			Score    int    `json:"score"`
		} `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&lb); err != nil {
		t.Fatalf("decode leaderboard: %v", err)
	}
	if len(lb.Entries) != 1 || lb.Entries[0].PlayerID != "u7" || lb.Entries[0].Score != 20 {
		t.Fatalf("unexpected leaderboard %+v", lb)
	}

	bal, err := http.Get(server.URL + "/balance?playerId=u7")
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	defer bal.Body.Close()
	var body balanceResponse
	if err := json.NewDecoder(bal.Body).Decode(&body); err != nil {
		t.Fatalf("decode balance: %v", err)
	}
	if body.Balance != 65 {
		t.Fatalf("expected 65 cerises, got %d", body.Balance)
	}

	missing, err := http.Get(server.URL + "/leaderboard?mode=penalties")
	if err != nil {
		t.Fatalf("get leaderboard: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown mode, got %d", missing.StatusCode)
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Type, msg.Payload
}
