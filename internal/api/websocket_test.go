package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/isdelr/fittrack-be/internal/auth"
	"github.com/isdelr/fittrack-be/internal/models"
	"github.com/isdelr/fittrack-be/internal/services"
	"github.com/isdelr/fittrack-be/internal/testutil"
	"github.com/isdelr/fittrack-be/internal/websocket"
)

type liveServer struct {
	*httptest.Server
	token string
}

func newLiveServer(t *testing.T) *liveServer {
	t.Helper()
	db := testutil.OpenInMemoryDB(t)
	tokens := auth.NewManager(testutil.JWTSecret, 30*time.Minute)

	hub := websocket.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	events := services.NewEventService(db, hub)
	workouts := services.NewWorkoutService(db, events)
	exercises := services.NewExerciseService(db)

	router := NewRouter(Dependencies{
		Tokens:           tokens,
		Hub:              hub,
		DB:               db,
		AllowedOrigins:   []string{"http://localhost:5173"},
		Users:            services.NewUserService(db, auth.NewPasswordHasher(4)),
		Workouts:         workouts,
		Exercises:        exercises,
		WorkoutExercises: services.NewWorkoutExerciseService(db, workouts, exercises, events),
		Statistics:       services.NewStatisticService(db),
		Events:           events,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	id := testutil.InsertUser(t, db, "a@x.com")
	return &liveServer{Server: srv, token: testutil.Token(t, tokens, id, "a@x.com")}
}

func (s *liveServer) wsURL(token string) string {
	u := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws"
	if token != "" {
		u += "?token=" + token
	}
	return u
}

func (s *liveServer) dial(t *testing.T, header http.Header) *gws.Conn {
	t.Helper()
	conn, resp, err := gws.DefaultDialer.Dial(s.wsURL(s.token), header)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		t.Fatalf("dial: %v (status %d)", err, status)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *gws.Conn) websocket.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg websocket.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func errorText(t *testing.T, msg websocket.Message) string {
	t.Helper()
	if msg.Action != "error" {
		t.Fatalf("action = %q, want error", msg.Action)
	}
	payload, ok := msg.Payload.(map[string]interface{})
	if !ok {
		t.Fatalf("payload = %#v", msg.Payload)
	}
	text, _ := payload["message"].(string)
	return text
}

func TestWebSocket_PingAndErrors(t *testing.T) {
	s := newLiveServer(t)
	conn := s.dial(t, nil)

	if err := conn.WriteJSON(websocket.Message{Action: "ping"}); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	if msg := readMessage(t, conn); msg.Action != "pong" {
		t.Fatalf("action = %q, want pong", msg.Action)
	}

	if err := conn.WriteJSON(websocket.Message{Action: "dance"}); err != nil {
		t.Fatalf("write unknown action: %v", err)
	}
	if text := errorText(t, readMessage(t, conn)); text != "Unknown action: dance" {
		t.Fatalf("error text = %q", text)
	}

	if err := conn.WriteMessage(gws.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	if text := errorText(t, readMessage(t, conn)); text != "Invalid message" {
		t.Fatalf("error text = %q", text)
	}
}

func TestWebSocket_RejectsUnauthenticatedAndForeignOrigins(t *testing.T) {
	s := newLiveServer(t)

	cases := []struct {
		name   string
		token  string
		header http.Header
		want   int
	}{
		{"no token", "", nil, http.StatusUnauthorized},
		{"bad token", "garbage", nil, http.StatusUnauthorized},
		{"foreign origin", s.token, http.Header{"Origin": {"http://evil.example"}}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conn, resp, err := gws.DefaultDialer.Dial(s.wsURL(tc.token), tc.header)
			if err == nil {
				conn.Close()
				t.Fatal("expected the handshake to fail")
			}
			if resp == nil || resp.StatusCode != tc.want {
				t.Fatalf("response = %v, want status %d", resp, tc.want)
			}
		})
	}

	conn := s.dial(t, http.Header{"Origin": {"http://localhost:5173"}})
	conn.WriteJSON(websocket.Message{Action: "ping"})
	if msg := readMessage(t, conn); msg.Action != "pong" {
		t.Fatalf("action = %q, want pong", msg.Action)
	}
}

func TestWebSocket_ReceivesOwnEvents(t *testing.T) {
	s := newLiveServer(t)
	conn := s.dial(t, nil)

	// A pong means the client is registered with the hub.
	conn.WriteJSON(websocket.Message{Action: "ping"})
	if msg := readMessage(t, conn); msg.Action != "pong" {
		t.Fatalf("action = %q, want pong", msg.Action)
	}

	req, _ := http.NewRequest(http.MethodPost, s.URL+"/workouts", strings.NewReader(`{"date":"2024-01-08","duration":30}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("create workout: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("create workout status = %d", resp.StatusCode)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame struct {
		Action  string       `json:"action"`
		Payload models.Event `json:"payload"`
	}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if frame.Action != "event" || frame.Payload.Type != models.EventWorkoutCreate {
		t.Fatalf("unexpected frame: %+v", frame)
	}
	if frame.Payload.ID == "" || frame.Payload.Message == "" {
		t.Fatalf("event payload incomplete: %+v", frame.Payload)
	}
}
