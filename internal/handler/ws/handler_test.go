package ws

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chasingbytes/resume/backend/internal/model/chat"
	"github.com/chasingbytes/resume/backend/internal/service/assistant"
	chatservice "github.com/chasingbytes/resume/backend/internal/service/chat"
	"github.com/chasingbytes/resume/backend/internal/testutil"
)

type reply struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
	Data      struct {
		chat.Entry
		Entries []chat.Entry `json:"entries"`
		Status  int          `json:"status"`
		Message string       `json:"message"`
	} `json:"data"`
}

func dial(t *testing.T, stub *testutil.StubCompleter) (*websocket.Conn, string) {
	t.Helper()

	chatSvc := chatservice.NewService("persona", stub, assistant.Options{}, time.Hour)
	session, err := chatSvc.CreateSession(context.Background())
	require.NoError(t, err)

	r := chi.NewRouter()
	New(chatSvc).RegisterRoutes(r)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/" + session.ID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn, session.ID
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg any) reply {
	t.Helper()

	require.NoError(t, conn.WriteJSON(msg))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var out reply
	require.NoError(t, conn.ReadJSON(&out))
	return out
}

func TestAskAndTranscript(t *testing.T) {
	conn, sessionID := dial(t, testutil.NewStubCompleter("first", "second"))

	out := roundTrip(t, conn, map[string]any{"type": "ask", "data": map[string]string{"question": "A?"}})
	assert.Equal(t, "entry", out.Type)
	assert.Equal(t, sessionID, out.SessionID)
	assert.Equal(t, "A?", out.Data.Question)
	assert.Equal(t, "first", out.Data.Answer)

	out = roundTrip(t, conn, map[string]any{"type": "ask", "data": map[string]string{"question": "B?"}})
	assert.Equal(t, "second", out.Data.Answer)

	out = roundTrip(t, conn, map[string]any{"type": "transcript"})
	assert.Equal(t, "transcript", out.Type)
	require.Len(t, out.Data.Entries, 2)
	assert.Equal(t, "B?", out.Data.Entries[0].Question)
	assert.Equal(t, "A?", out.Data.Entries[1].Question)
}

func TestAskErrorsAreReported(t *testing.T) {
	stub := testutil.NewStubCompleter()
	stub.Err = errors.New("upstream unavailable")
	conn, _ := dial(t, stub)

	out := roundTrip(t, conn, map[string]any{"type": "ask", "data": map[string]string{"question": "A?"}})
	assert.Equal(t, "error", out.Type)
	assert.Equal(t, http.StatusBadGateway, out.Data.Status)

	out = roundTrip(t, conn, map[string]any{"type": "ask", "data": map[string]string{"question": " "}})
	assert.Equal(t, http.StatusBadRequest, out.Data.Status)

	out = roundTrip(t, conn, map[string]any{"type": "ask"})
	assert.Equal(t, http.StatusBadRequest, out.Data.Status)

	out = roundTrip(t, conn, map[string]any{"type": "audio"})
	assert.Equal(t, "error", out.Type)
	assert.Contains(t, out.Data.Message, "unsupported message type")

	out = roundTrip(t, conn, map[string]any{"type": "transcript"})
	assert.Empty(t, out.Data.Entries)
}

func TestUnknownSessionRejected(t *testing.T) {
	chatSvc := chatservice.NewService("persona", testutil.NewStubCompleter(), assistant.Options{}, time.Hour)
	r := chi.NewRouter()
	New(chatSvc).RegisterRoutes(r)
	server := httptest.NewServer(r)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
