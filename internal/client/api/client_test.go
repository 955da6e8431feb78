package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/chatbix/pkg/api"
)

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	assert.Equal(t, "http://localhost:8080", client.BaseURL())
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestClient_Register(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.CredentialsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)
		assert.Equal(t, "password1", req.Password)

		writeJSON(t, w, http.StatusOK, api.Envelope{Status: api.StatusSuccess, AuthKey: "AbCdEfGhIjKlMnOp"})
	}))
	defer server.Close()

	key, err := NewClient(server.URL).Register(context.Background(), "alice", "password1")
	require.NoError(t, err)
	assert.Equal(t, "AbCdEfGhIjKlMnOp", key)
}

func TestClient_Login_Error(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		wantMsg    string
		status     int
		wantUnauth bool
	}{
		{
			name:       "invalid credentials",
			status:     http.StatusUnauthorized,
			body:       api.ErrorResponse{Status: api.StatusError, Error: "invalid credentials"},
			wantMsg:    "invalid credentials",
			wantUnauth: true,
		},
		{
			name:    "rate limited",
			status:  http.StatusTooManyRequests,
			body:    api.ErrorResponse{Status: api.StatusError, Error: "rate limit exceeded"},
			wantMsg: "rate limit exceeded",
		},
		{
			name:    "plain text body",
			status:  http.StatusBadGateway,
			body:    "bad gateway",
			wantMsg: "bad gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, tt.body)
			}))
			defer server.Close()

			_, err := NewClient(server.URL).Login(context.Background(), "alice", "wrong")
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Contains(t, apiErr.Message, tt.wantMsg)
			assert.Equal(t, tt.wantUnauth, IsUnauthorized(err))
		})
	}
}

func TestClient_Logout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/logout", r.URL.Path)

		var req api.LogoutRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, api.LogoutRequest{Username: "alice", AuthKey: "key"}, req)

		writeJSON(t, w, http.StatusOK, api.Envelope{Status: api.StatusSuccess})
	}))
	defer server.Close()

	require.NoError(t, NewClient(server.URL).Logout(context.Background(), "alice", "key"))
}

func TestClient_SendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/new_message", r.URL.Path)

		var req api.NewMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Author)
		assert.Equal(t, "hello", req.Content)
		require.NotNil(t, req.Channel)
		assert.Equal(t, "dev", *req.Channel)

		writeJSON(t, w, http.StatusOK, api.Envelope{Status: api.StatusSuccess, ID: 7})
	}))
	defer server.Close()

	channel := "dev"
	id, err := NewClient(server.URL).SendMessage(context.Background(), api.NewMessageRequest{
		Author:  "alice",
		Content: "hello",
		Channel: &channel,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestClient_GetMessages_Query(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  map[string]string
	}{
		{name: "default", query: Query{}, want: map[string]string{}},
		{
			name:  "cursor with channels",
			query: Query{AfterID: 12, Channels: []string{"dev", "ops"}, NoDefaultChannel: true},
			want:  map[string]string{"message_id": "12", "channels": "dev,ops", "no_default_channel": ""},
		},
		{name: "last", query: Query{Last: 20}, want: map[string]string{"last": "20"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/get_messages", r.URL.Path)
				q := r.URL.Query()
				assert.Len(t, q, len(tt.want))
				for k, v := range tt.want {
					assert.True(t, q.Has(k), k)
					assert.Equal(t, v, q.Get(k), k)
				}
				writeJSON(t, w, http.StatusOK, api.Envelope{
					Status:   api.StatusSuccess,
					Messages: []api.Message{{ID: 13, Author: "bob", Content: "hi", Timestamp: 1714564800}},
				})
			}))
			defer server.Close()

			msgs, err := NewClient(server.URL).GetMessages(context.Background(), tt.query)
			require.NoError(t, err)
			require.Len(t, msgs, 1)
			assert.Equal(t, int64(13), msgs[0].ID)
		})
	}
}

func TestClient_Heartbeat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/heartbeat", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "alice", q.Get("username"))
		assert.Equal(t, "key", q.Get("auth_key"))
		assert.Equal(t, "false", q.Get("active"))
		assert.Equal(t, "5", q.Get("message_id"))

		writeJSON(t, w, http.StatusOK, api.Envelope{
			Status:         api.StatusSuccess,
			Messages:       []api.Message{},
			UsersConnected: []api.ConnectedUser{{Username: "alice", LoggedIn: true}},
		})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Heartbeat(context.Background(), "alice", "key", false, Query{AfterID: 5})
	require.NoError(t, err)
	assert.Empty(t, resp.Messages)
	require.Len(t, resp.UsersConnected, 1)
	assert.True(t, resp.UsersConnected[0].LoggedIn)
}

func TestClient_DeleteMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/delete_message", r.URL.Path)

		var req api.DeleteMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Username != "root" {
			writeJSON(t, w, http.StatusForbidden, api.ErrorResponse{Status: api.StatusError, Error: "forbidden"})
			return
		}
		writeJSON(t, w, http.StatusOK, api.Envelope{Status: api.StatusSuccess})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	require.NoError(t, client.DeleteMessage(context.Background(), "root", "key", 3))

	err := client.DeleteMessage(context.Background(), "alice", "key", 3)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "deploy now", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		writeJSON(t, w, http.StatusOK, api.Envelope{
			Status:  api.StatusSuccess,
			Results: []api.SearchHit{{ID: 1, Content: "deploy now", Rank: 1.5}},
		})
	}))
	defer server.Close()

	hits, err := NewClient(server.URL).Search(context.Background(), "deploy now", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.InDelta(t, 1.5, hits[0].Rank, 1e-9)
}

func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, api.HealthResponse{Status: "ok", Database: "ok", Version: "1.0.0"})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", resp.Version)
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(server.URL).GetMessages(ctx, Query{})
	assert.ErrorIs(t, err, context.Canceled)
}
