package stream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chasingbytes/resume/backend/internal/service/assistant"
	chatservice "github.com/chasingbytes/resume/backend/internal/service/chat"
	"github.com/chasingbytes/resume/backend/internal/testutil"
)

func setup(t *testing.T, stub *testutil.StubCompleter) (*chi.Mux, *chatservice.Service, *Handler, string) {
	t.Helper()

	chatSvc := chatservice.NewService("persona", stub, assistant.Options{}, time.Hour)
	session, err := chatSvc.CreateSession(context.Background())
	require.NoError(t, err)

	handler := New(chatSvc)
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, chatSvc, handler, session.ID
}

func streamRequest(sessionID, message string) *http.Request {
	return httptest.NewRequest(http.MethodGet, "/stream/"+sessionID+"?message="+url.QueryEscape(message), nil)
}

func TestStreamDeliversEntry(t *testing.T) {
	r, chatSvc, _, sessionID := setup(t, testutil.NewStubCompleter("Python, SQL, machine learning."))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, streamRequest(sessionID, "What are your top skills?"))

	body := resp.Body.String()
	assert.Equal(t, "text/event-stream", resp.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(body, "event: start\n"))
	assert.Contains(t, body, "event: message\n")
	assert.Contains(t, body, `"answer":"Python, SQL, machine learning."`)
	assert.True(t, strings.HasSuffix(body, "event: end\ndata: {\"sessionId\":\""+sessionID+"\",\"finished\":true}\n\n"))

	entries, err := chatSvc.LoadTranscript(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStreamSendsHeartbeatsWhileAwaiting(t *testing.T) {
	stub := testutil.NewStubCompleter("eventually")
	stub.Block = make(chan struct{})
	r, _, handler, sessionID := setup(t, stub)
	handler.heartbeat = 10 * time.Millisecond

	go func() {
		time.Sleep(60 * time.Millisecond)
		close(stub.Block)
	}()

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, streamRequest(sessionID, "A?"))

	body := resp.Body.String()
	assert.Contains(t, body, "event: status\n")
	assert.Contains(t, body, "event: message\n")
}

func TestStreamReportsCompletionError(t *testing.T) {
	stub := testutil.NewStubCompleter()
	stub.Err = errors.New("invalid api key")
	r, chatSvc, _, sessionID := setup(t, stub)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, streamRequest(sessionID, "A?"))

	body := resp.Body.String()
	assert.Contains(t, body, "event: error\n")
	assert.Contains(t, body, `"status":502`)
	assert.NotContains(t, body, "event: message")

	entries, err := chatSvc.LoadTranscript(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStreamValidatesRequest(t *testing.T) {
	stub := testutil.NewStubCompleter("unused")
	r, _, _, sessionID := setup(t, stub)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, streamRequest(sessionID, "  "))
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, streamRequest("missing", "A?"))
	assert.Equal(t, http.StatusNotFound, resp.Code)

	assert.Empty(t, stub.Calls())
}
