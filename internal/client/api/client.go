package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/chatbix/pkg/api"
)

// Error is a non-2xx answer of the server
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the server
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Query selects messages, it maps onto the get_messages / heartbeat parameters.
// Zero value means the server default (last 150 messages of every channel).
type Query struct {
	Channels         []string
	NoDefaultChannel bool
	// AfterID > 0 выбирает сообщения с id > AfterID, имеет приоритет над остальным
	AfterID int64
	Last    int
}

func (q Query) values() url.Values {
	v := url.Values{}
	if len(q.Channels) > 0 {
		v.Set("channels", strings.Join(q.Channels, ","))
	}
	if q.NoDefaultChannel {
		v.Set("no_default_channel", "")
	}
	if q.AfterID > 0 {
		v.Set("message_id", strconv.FormatInt(q.AfterID, 10))
	}
	if q.Last > 0 {
		v.Set("last", strconv.Itoa(q.Last))
	}
	return v
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BaseURL returns the server address the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Register регистрирует нового пользователя и возвращает auth_key
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	var resp api.Envelope
	req := api.CredentialsRequest{Username: username, Password: password}
	if err := c.doRequest(ctx, http.MethodPost, "/api/register", req, &resp); err != nil {
		return "", fmt.Errorf("register request failed: %w", err)
	}
	return resp.AuthKey, nil
}

// Login выполняет аутентификацию пользователя и возвращает auth_key
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp api.Envelope
	req := api.CredentialsRequest{Username: username, Password: password}
	if err := c.doRequest(ctx, http.MethodPost, "/api/login", req, &resp); err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	return resp.AuthKey, nil
}

// Logout завершает сессию на сервере
func (c *Client) Logout(ctx context.Context, username, authKey string) error {
	req := api.LogoutRequest{Username: username, AuthKey: authKey}
	if err := c.doRequest(ctx, http.MethodPost, "/api/logout", req, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// SendMessage публикует сообщение и возвращает его id
func (c *Client) SendMessage(ctx context.Context, req api.NewMessageRequest) (int64, error) {
	var resp api.Envelope
	if err := c.doRequest(ctx, http.MethodPost, "/api/new_message", req, &resp); err != nil {
		return 0, fmt.Errorf("new message request failed: %w", err)
	}
	return resp.ID, nil
}

// GetMessages читает сообщения без обновления присутствия
func (c *Client) GetMessages(ctx context.Context, q Query) ([]api.Message, error) {
	var resp api.Envelope
	if err := c.doRequest(ctx, http.MethodGet, "/api/get_messages?"+q.values().Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("get messages request failed: %w", err)
	}
	return resp.Messages, nil
}

// Heartbeat отмечает присутствие пользователя и возвращает новые сообщения
// и список подключенных. Пустой username читает сообщения без присутствия.
func (c *Client) Heartbeat(ctx context.Context, username, authKey string, active bool, q Query) (*api.Envelope, error) {
	v := q.values()
	if username != "" {
		v.Set("username", username)
	}
	if authKey != "" {
		v.Set("auth_key", authKey)
	}
	if !active {
		v.Set("active", "false")
	}

	var resp api.Envelope
	if err := c.doRequest(ctx, http.MethodGet, "/api/heartbeat?"+v.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("heartbeat request failed: %w", err)
	}
	return &resp, nil
}

// DeleteMessage удаляет сообщение, требуется admin сессия
func (c *Client) DeleteMessage(ctx context.Context, username, authKey string, id int64) error {
	req := api.DeleteMessageRequest{Username: username, AuthKey: authKey, MessageID: id}
	if err := c.doRequest(ctx, http.MethodPost, "/api/admin/delete_message", req, nil); err != nil {
		return fmt.Errorf("delete message request failed: %w", err)
	}
	return nil
}

// Search выполняет полнотекстовый поиск
func (c *Client) Search(ctx context.Context, query string, limit int) ([]api.SearchHit, error) {
	v := url.Values{}
	v.Set("q", query)
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}

	var resp api.Envelope
	if err := c.doRequest(ctx, http.MethodGet, "/api/search?"+v.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	return resp.Results, nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return &Error{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &Error{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
