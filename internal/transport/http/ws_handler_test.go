package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"quiz-outcome-service/internal/app"
	"quiz-outcome-service/internal/domain"
	"quiz-outcome-service/internal/infra/memory"
	"quiz-outcome-service/internal/quizdoc"
)

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func TestWebSocketResponseFlow(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService(), nil))
	defer server.Close()

	conn := dial(t, server, "quizId=skincare")
	defer conn.Close()

	var progress domain.Progress
	readInto(t, conn, "started", &progress)
	if progress.SessionID == "" || progress.Total != 3 {
		t.Fatalf("unexpected start progress %+v", progress)
	}

	sendMessage(t, conn, "answer", domain.AnswerSubmission{QuestionID: "q-skin", OptionIDs: []string{"tight"}})
	readInto(t, conn, "progress", &progress)
	if progress.Step != 1 {
		t.Fatalf("expected step 1, got %+v", progress)
	}

	sendMessage(t, conn, "answer", domain.AnswerSubmission{QuestionID: "q-skin", OptionIDs: []string{"nope"}})
	var errPayload errorPayload
	readInto(t, conn, "error", &errPayload)
	if !strings.Contains(errPayload.Message, "option not found") {
		t.Fatalf("unexpected error message %q", errPayload.Message)
	}

	sendMessage(t, conn, "complete", nil)
	readInto(t, conn, "error", &errPayload)
	if !strings.Contains(errPayload.Message, "email required") {
		t.Fatalf("expected email step before results, got %q", errPayload.Message)
	}

	sendMessage(t, conn, "email", emailPayload{Email: "nope"})
	readInto(t, conn, "error", &errPayload)
	sendMessage(t, conn, "email", emailPayload{Email: "ana@example.com"})
	readInto(t, conn, "progress", &progress)
	if progress.EmailRequired {
		t.Fatalf("expected email step cleared, got %+v", progress)
	}

	sendMessage(t, conn, "complete", nil)
	var res domain.Resolution
	readInto(t, conn, "result", &res)
	if res.Winner == nil || res.Winner.ID != "dry" {
		t.Fatalf("expected dry winner, got %+v", res.Winner)
	}
	if len(res.Products) == 0 || res.Products[0].Title != "Barrier Cream" {
		t.Fatalf("unexpected products %+v", res.Products)
	}

	sendMessage(t, conn, "dance", nil)
	readInto(t, conn, "error", &errPayload)
}

func TestWebSocketResume(t *testing.T) {
	service := newTestService()
	server := httptest.NewServer(NewRouter(service, nil))
	defer server.Close()

	first := dial(t, server, "quizId=skincare")
	var progress domain.Progress
	readInto(t, first, "started", &progress)
	sendMessage(t, first, "answer", domain.AnswerSubmission{QuestionID: "q-skin", OptionIDs: []string{"shiny"}})
	readInto(t, first, "progress", &progress)
	first.Close()

	second := dial(t, server, "sessionId="+progress.SessionID)
	defer second.Close()
	var resumed domain.Progress
	readInto(t, second, "started", &resumed)
	if resumed.SessionID != progress.SessionID || resumed.Answered != 1 {
		t.Fatalf("expected resumed session with one answer, got %+v", resumed)
	}
}

func TestWebSocketRequiresQuizOrSession(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService(), nil))
	defer server.Close()

	resp, err := http.Get(server.URL + "/ws")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestResolveEndpoint(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService(), nil))
	defer server.Close()

	cases := []struct {
		name   string
		quiz   string
		body   string
		status int
		winner string
	}{
		{"resolved", "skincare", `{"answers":[{"questionId":"q-skin","optionIds":["shiny"]}]}`, http.StatusOK, "oily"},
		{"bad option", "skincare", `{"answers":[{"questionId":"q-skin","optionIds":["x"]}]}`, http.StatusBadRequest, ""},
		{"bad body", "skincare", `{`, http.StatusBadRequest, ""},
		{"unknown quiz", "other", `{"answers":[]}`, http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		resp, err := http.Post(server.URL+"/quizzes/"+tc.quiz+"/resolve", "application/json", bytes.NewBufferString(tc.body))
		if err != nil {
			t.Fatalf("%s: post: %v", tc.name, err)
		}
		var out struct {
			Success bool              `json:"success"`
			Data    domain.Resolution `json:"data"`
			Error   string            `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&out)
		resp.Body.Close()

		if resp.StatusCode != tc.status {
			t.Fatalf("%s: expected %d, got %d (%s)", tc.name, tc.status, resp.StatusCode, out.Error)
		}
		if tc.winner != "" && (out.Data.Winner == nil || out.Data.Winner.ID != tc.winner) {
			t.Fatalf("%s: expected winner %s, got %+v", tc.name, tc.winner, out.Data.Winner)
		}
	}
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter(newTestService(), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected healthz response %d %q", rec.Code, rec.Body.String())
	}
}

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws?" + query
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func sendMessage(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": typ, "payload": payload}); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readInto(t *testing.T, conn *websocket.Conn, expect string, out any) {
	t.Helper()
	var msg wsMessage
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if msg.Type != expect {
		t.Fatalf("expected type %s, got %s (%s)", expect, msg.Type, msg.Payload)
	}
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		t.Fatalf("decode %s payload: %v", expect, err)
	}
}

func newTestService() *app.ResponseService {
	store := memory.NewSessionStore(time.Hour)
	quizRepo := memory.NewQuizRepository(memory.NewStaticQuizLoader(map[string]domain.Quiz{
		"skincare": quizdoc.Sample(),
	}), time.Minute)
	return app.NewResponseService(store, quizRepo, nil, nil)
}
