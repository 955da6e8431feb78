// Package api holds the JSON wire types shared by the server and the client.
package api

// StatusSuccess and StatusError are the values of the envelope status field
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the success response of every /api endpoint.
// Nil lists are omitted, empty ones are sent as [].
type Envelope struct {
	Status         string          `json:"status"`
	AuthKey        string          `json:"auth_key,omitempty"`
	Messages       []Message       `json:"messages,omitzero"`
	UsersConnected []ConnectedUser `json:"users_connected,omitzero"`
	Results        []SearchHit     `json:"results,omitzero"`
	ID             int64           `json:"id,omitempty"`
}

// Message is a stored message on the wire. Timestamp is Unix seconds.
type Message struct {
	Color     *string `json:"color"`
	Channel   *string `json:"channel"`
	Author    string  `json:"author"`
	Content   string  `json:"content"`
	ID        int64   `json:"id"`
	Timestamp int64   `json:"timestamp"`
	Tags      int32   `json:"tags"`
}

// NewMessageRequest is the body of POST /api/new_message.
// Username is accepted as an alias of Author.
type NewMessageRequest struct {
	Tags     *int32  `json:"tags,omitempty"`
	Color    *string `json:"color,omitempty"`
	Channel  *string `json:"channel,omitempty"`
	AuthKey  *string `json:"auth_key,omitempty"`
	Author   string  `json:"author"`
	Username string  `json:"username,omitempty"`
	Content  string  `json:"content"`
}

// DeleteMessageRequest is the body of POST /api/admin/delete_message
type DeleteMessageRequest struct {
	Username  string `json:"username"`
	AuthKey   string `json:"auth_key"`
	MessageID int64  `json:"message_id"`
}

// ConnectedUser is one presence entry. Times are Unix seconds.
type ConnectedUser struct {
	Username   string `json:"username"`
	LastActive int64  `json:"last_active"`
	LastAnswer int64  `json:"last_answer"`
	LoggedIn   bool   `json:"logged_in"`
}

// SearchHit is one full-text search result
type SearchHit struct {
	Author    string  `json:"author"`
	Content   string  `json:"content"`
	ID        int64   `json:"id"`
	Timestamp int64   `json:"timestamp"`
	Rank      float64 `json:"rank"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version,omitempty"`
	Database string `json:"database"`
}
