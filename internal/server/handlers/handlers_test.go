package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/chatbix/internal/crypto"
	"github.com/iudanet/chatbix/internal/server/chat"
	"github.com/iudanet/chatbix/internal/server/presence"
	"github.com/iudanet/chatbix/internal/server/session"
	"github.com/iudanet/chatbix/internal/server/storage/sqlite"
	"github.com/iudanet/chatbix/pkg/api"
)

// setupTestLogger создает logger для тестов
func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	svc      *chat.Service
	auth     *AuthHandler
	messages *MessageHandler
	health   *HealthHandler
	store    *sqlite.Storage
}

// setupTestEnv собирает настоящий chat.Service поверх in-memory SQLite
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := setupTestLogger()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	hasher := crypto.NewPasswordHasher(crypto.Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 16, SaltLen: 8})
	svc := chat.NewService(logger, store, store, hasher, session.New(),
		presence.NewTracker(logger, presence.DefaultExpiration))

	return &testEnv{
		svc:      svc,
		store:    store,
		auth:     NewAuthHandler(logger, svc),
		messages: NewMessageHandler(logger, svc),
		health:   NewHealthHandler(logger, svc, "test"),
	}
}

func doRequest(t *testing.T, h http.HandlerFunc, method, target, body string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	h(w, req)

	resp := w.Result()
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func register(t *testing.T, env *testEnv, username string) string {
	t.Helper()
	resp, body := doRequest(t, env.auth.Register, http.MethodPost, "/api/register",
		`{"username":"`+username+`","password":"password1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	return body["auth_key"].(string)
}

func TestAuthHandler_RegisterLoginLogout(t *testing.T) {
	env := setupTestEnv(t)

	authKey := register(t, env, "alice")
	assert.Len(t, authKey, 16)

	resp, body := doRequest(t, env.auth.Login, http.MethodPost, "/api/login",
		`{"username":"alice","password":"password1"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, authKey, body["auth_key"])

	resp, _ = doRequest(t, env.auth.Logout, http.MethodPost, "/api/logout",
		`{"username":"alice","auth_key":"`+authKey+`"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doRequest(t, env.auth.Logout, http.MethodPost, "/api/logout",
		`{"username":"alice","auth_key":"`+authKey+`"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "not logged in", body["error"])
}

func TestAuthHandler_Errors(t *testing.T) {
	env := setupTestEnv(t)
	register(t, env, "alice")

	tests := []struct {
		handler    func(h *testEnv) http.HandlerFunc
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "register duplicate",
			handler:    func(e *testEnv) http.HandlerFunc { return e.auth.Register },
			body:       `{"username":"alice","password":"password2"}`,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "register short password",
			handler:    func(e *testEnv) http.HandlerFunc { return e.auth.Register },
			body:       `{"username":"bob","password":"123"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "register invalid json",
			handler:    func(e *testEnv) http.HandlerFunc { return e.auth.Register },
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "login wrong password",
			handler:    func(e *testEnv) http.HandlerFunc { return e.auth.Login },
			body:       `{"username":"alice","password":"wrongpass"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "login unknown user",
			handler:    func(e *testEnv) http.HandlerFunc { return e.auth.Login },
			body:       `{"username":"nobody","password":"password1"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "logout wrong key",
			handler:    func(e *testEnv) http.HandlerFunc { return e.auth.Logout },
			body:       `{"username":"alice","auth_key":"wrong"}`,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, tt.handler(env), http.MethodPost, "/api/x", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "error", body["status"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestMessageHandler_PostAndGet(t *testing.T) {
	env := setupTestEnv(t)
	authKey := register(t, env, "alice")

	resp, body := doRequest(t, env.messages.NewMessage, http.MethodPost, "/api/new_message",
		`{"author":"guest","content":"anonymous hello","tags":1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	resp, body = doRequest(t, env.messages.NewMessage, http.MethodPost, "/api/new_message",
		`{"author":"alice","content":"signed hello","channel":"dev","color":"#fff","auth_key":"`+authKey+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	devID := body["id"].(float64)

	resp, body = doRequest(t, env.messages.NewMessage, http.MethodPost, "/api/new_message",
		`{"author":"alice","content":"forged","auth_key":"wrongwrongwrong1"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, body)

	// канал по умолчанию: только анонимное сообщение, бит logged_in сброшен
	resp, body = doRequest(t, env.messages.GetMessages, http.MethodGet, "/api/get_messages", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	msgs := body["messages"].([]any)
	require.Len(t, msgs, 1)
	first := msgs[0].(map[string]any)
	assert.Equal(t, "guest", first["author"])
	assert.Equal(t, float64(0), first["tags"])
	assert.Nil(t, first["channel"])
	assert.IsType(t, float64(0), first["timestamp"])

	resp, body = doRequest(t, env.messages.GetMessages, http.MethodGet, "/api/get_messages?channels=dev&no_default_channel", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	msgs = body["messages"].([]any)
	require.Len(t, msgs, 1)
	dev := msgs[0].(map[string]any)
	assert.Equal(t, devID, dev["id"])
	assert.Equal(t, float64(1), dev["tags"], "logged_in bit set by the server")
	assert.Equal(t, "#fff", dev["color"])

	resp, body = doRequest(t, env.messages.GetMessages, http.MethodGet, "/api/get_messages?channel=dev&message_id="+formatID(devID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["messages"])
	assert.Contains(t, body, "messages", "empty list is still present")
}

func TestMessageHandler_GetMessages_Malformed(t *testing.T) {
	env := setupTestEnv(t)

	for _, q := range []string{"message_id=abc", "timestamp=yesterday", "timestamp=1&timestamp_end=x", "last=0", "last=1001"} {
		t.Run(q, func(t *testing.T) {
			resp, body := doRequest(t, env.messages.GetMessages, http.MethodGet, "/api/get_messages?"+q, "")
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "error", body["status"])
		})
	}
}

func TestMessageHandler_Heartbeat(t *testing.T) {
	env := setupTestEnv(t)
	authKey := register(t, env, "alice")

	resp, body := doRequest(t, env.messages.Heartbeat, http.MethodGet,
		"/api/heartbeat?username=alice&auth_key="+authKey+"&active=false", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := body["users_connected"].([]any)
	require.Len(t, users, 1)
	alice := users[0].(map[string]any)
	assert.Equal(t, "alice", alice["username"])
	assert.Equal(t, true, alice["logged_in"])
	assert.Contains(t, alice, "last_active")
	assert.Contains(t, alice, "last_answer")
	assert.Contains(t, body, "messages")

	// неверный ключ не приводит к ошибке
	resp, body = doRequest(t, env.messages.Heartbeat, http.MethodGet,
		"/api/heartbeat?username=alice&auth_key=bad", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	alice = body["users_connected"].([]any)[0].(map[string]any)
	assert.Equal(t, false, alice["logged_in"])

	resp, _ = doRequest(t, env.messages.Heartbeat, http.MethodGet, "/api/heartbeat?message_id=x", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMessageHandler_DeleteMessage(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	aliceKey := register(t, env, "alice")
	register(t, env, "root")
	require.NoError(t, env.svc.PromoteAdmins(ctx, []string{"root"}))
	require.NoError(t, env.svc.Logout("root", mustLogin(t, env, "root")))
	rootKey := mustLogin(t, env, "root")

	_, body := doRequest(t, env.messages.NewMessage, http.MethodPost, "/api/new_message",
		`{"author":"guest","content":"spam"}`)
	id := formatID(body["id"].(float64))

	resp, _ := doRequest(t, env.messages.DeleteMessage, http.MethodPost, "/api/admin/delete_message",
		`{"username":"alice","auth_key":"`+aliceKey+`","message_id":`+id+`}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doRequest(t, env.messages.DeleteMessage, http.MethodPost, "/api/admin/delete_message",
		`{"username":"root","auth_key":"`+rootKey+`","message_id":`+id+`}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, env.messages.DeleteMessage, http.MethodPost, "/api/admin/delete_message",
		`{"username":"root","auth_key":"`+rootKey+`","message_id":`+id+`}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMessageHandler_Search(t *testing.T) {
	env := setupTestEnv(t)

	for _, content := range []string{"deploy finished", "lunch time", "deploy deploy"} {
		resp, _ := doRequest(t, env.messages.NewMessage, http.MethodPost, "/api/new_message",
			`{"username":"guest","content":"`+content+`"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body := doRequest(t, env.messages.Search, http.MethodGet, "/api/search?q=deploy&limit=5", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	results := body["results"].([]any)
	require.Len(t, results, 2)
	assert.Equal(t, "deploy deploy", results[0].(map[string]any)["content"])

	resp, _ = doRequest(t, env.messages.Search, http.MethodGet, "/api/search?q=", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, env.messages.Search, http.MethodGet, "/api/search?q=deploy&limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthHandler_Health(t *testing.T) {
	env := setupTestEnv(t)

	resp, body := doRequest(t, env.health.Health, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["database"])
	assert.Equal(t, "test", body["version"])

	require.NoError(t, env.store.Close())

	resp, body = doRequest(t, env.health.Health, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "unavailable", body["database"])
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{chat.ErrInvalidCredentials, http.StatusUnauthorized},
		{chat.ErrInvalidAuthKey, http.StatusUnauthorized},
		{chat.ErrNotLoggedIn, http.StatusUnauthorized},
		{chat.ErrForbidden, http.StatusForbidden},
		{chat.ErrUsernameInUse, http.StatusConflict},
		{chat.ErrMalformedInput, http.StatusBadRequest},
		{chat.ErrMessageNotFound, http.StatusNotFound},
		{chat.ErrDatabaseBusy, http.StatusServiceUnavailable},
		{io.EOF, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestParseActive(t *testing.T) {
	assert.True(t, parseActive("", false))
	assert.True(t, parseActive("true", true))
	assert.True(t, parseActive("", true))
	assert.False(t, parseActive("false", true))
	assert.False(t, parseActive("FALSE", true))
	assert.False(t, parseActive("0", true))
}

func TestNotFound(t *testing.T) {
	resp, body := doRequest(t, NotFound(setupTestLogger()), http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, api.StatusError, body["status"])
}

func mustLogin(t *testing.T, env *testEnv, username string) string {
	t.Helper()
	resp, body := doRequest(t, env.auth.Login, http.MethodPost, "/api/login",
		`{"username":"`+username+`","password":"password1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	return body["auth_key"].(string)
}

func formatID(id float64) string {
	b, _ := json.Marshal(int64(id))
	return string(b)
}
