package handlers

import (
	"github.com/iudanet/chatbix/internal/models"
	"github.com/iudanet/chatbix/internal/server/presence"
	"github.com/iudanet/chatbix/pkg/api"
)

// newMessageFromRequest: username принимается как синоним author
func newMessageFromRequest(r *api.NewMessageRequest) *models.NewMessage {
	author := r.Author
	if author == "" {
		author = r.Username
	}
	return &models.NewMessage{
		Username: author,
		Content:  r.Content,
		Tags:     r.Tags,
		Color:    r.Color,
		Channel:  r.Channel,
		AuthKey:  r.AuthKey,
	}
}

func fromMessage(m *models.Message) api.Message {
	return api.Message{
		ID:        m.ID,
		Author:    m.Author,
		Timestamp: m.Timestamp.Unix(),
		Content:   m.Content,
		Tags:      int32(m.Tags),
		Color:     m.Color,
		Channel:   m.Channel,
	}
}

// fromMessages never returns nil, an empty selection is sent as []
func fromMessages(msgs []*models.Message) []api.Message {
	out := make([]api.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, fromMessage(m))
	}
	return out
}

func fromConnectedUsers(users []presence.ConnectedUser) []api.ConnectedUser {
	out := make([]api.ConnectedUser, 0, len(users))
	for _, u := range users {
		out = append(out, api.ConnectedUser{
			Username:   u.Username,
			LoggedIn:   u.LoggedIn,
			LastActive: u.LastActive.Unix(),
			LastAnswer: u.LastAnswer.Unix(),
		})
	}
	return out
}

func fromSearchHits(hits []*models.SearchHit) []api.SearchHit {
	out := make([]api.SearchHit, 0, len(hits))
	for _, h := range hits {
		out = append(out, api.SearchHit{
			ID:        h.ID,
			Author:    h.Author,
			Content:   h.Content,
			Timestamp: h.Timestamp.Unix(),
			Rank:      h.Rank,
		})
	}
	return out
}
