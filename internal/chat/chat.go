// Package chat is a thin pass-through to the external realtime collaborator.
// It maps the collaborator's message envelope onto ChatMessage and holds no
// business logic of its own.
package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/creatorstack/storefront/internal/domain"
)

// HistoryLimit is how much recent history a joining view requests.
const HistoryLimit = 50

// ChannelName is the shared community channel.
const ChannelName = "community-chat"

// Envelope is the realtime collaborator's wire shape. It belongs to the
// collaborator and is consumed as opaque JSON.
type Envelope struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	UserID    string                 `json:"userId"`
	Timestamp int64                  `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// Presence is one member currently subscribed to the channel.
type Presence struct {
	UserID   string                 `json:"userId"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Channel is the realtime collaborator surface consumed by this system.
type Channel interface {
	Subscribe(userID string, metadata map[string]interface{}) error
	OnMessage(fn func(Envelope))
	OnPresence(fn func([]Presence))
	GetMessages(limit int) ([]Envelope, error)
	Publish(msgType string, data map[string]interface{}, userID string, metadata map[string]interface{}) error
	Unsubscribe(userID string) error
}

// Service adapts the channel for the chat view.
type Service struct {
	channel Channel
}

func New(ch Channel) *Service {
	return &Service{channel: ch}
}

// Attach wires the inbound callbacks without subscribing anyone.
func (s *Service) Attach(onMessage func(domain.ChatMessage), onUsers func([]domain.Identity)) {
	s.channel.OnMessage(func(env Envelope) {
		if env.Type != "chat" {
			return
		}
		onMessage(MessageFromEnvelope(env))
	})
	s.channel.OnPresence(func(members []Presence) {
		users := make([]domain.Identity, 0, len(members))
		for _, m := range members {
			users = append(users, domain.Identity{
				ID:          m.UserID,
				Email:       cast.ToString(m.Metadata["email"]),
				DisplayName: displayName(m.Metadata, cast.ToString(m.Metadata["email"])),
			})
		}
		onUsers(users)
	})
}

// Enter announces who on the channel.
func (s *Service) Enter(who domain.Identity) error {
	if err := s.channel.Subscribe(who.ID, memberMetadata(who)); err != nil {
		return fmt.Errorf("subscribe chat channel: %w", err)
	}
	return nil
}

// Leave de-announces who. Every Enter must be paired with a Leave so the
// channel's presence reflects departures.
func (s *Service) Leave(who domain.Identity) {
	if err := s.channel.Unsubscribe(who.ID); err != nil {
		zap.L().Warn("chat leave failed", zap.String("userId", who.ID), zap.Error(err))
	}
}

// Join wires who's callbacks and subscribes them. The returned leave func
// unsubscribes; callers must invoke it on unmount.
func (s *Service) Join(who domain.Identity, onMessage func(domain.ChatMessage), onUsers func([]domain.Identity)) (leave func(), err error) {
	s.Attach(onMessage, onUsers)
	if err := s.Enter(who); err != nil {
		return nil, err
	}
	return func() { s.Leave(who) }, nil
}

// History returns the channel's recent chat messages, oldest first.
func (s *Service) History() ([]domain.ChatMessage, error) {
	envs, err := s.channel.GetMessages(HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	msgs := make([]domain.ChatMessage, 0, len(envs))
	for _, env := range envs {
		msgs = append(msgs, MessageFromEnvelope(env))
	}
	return msgs, nil
}

// Send publishes text to the channel on behalf of who. Blank messages are
// dropped.
func (s *Service) Send(who domain.Identity, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	data := map[string]interface{}{
		"text":      text,
		"timestamp": time.Now().UnixMilli(),
	}
	if err := s.channel.Publish("chat", data, who.ID, memberMetadata(who)); err != nil {
		return fmt.Errorf("publish chat message: %w", err)
	}
	return nil
}

// MessageFromEnvelope maps the collaborator's envelope fields to ChatMessage.
func MessageFromEnvelope(env Envelope) domain.ChatMessage {
	return domain.ChatMessage{
		ID:        env.ID,
		UserID:    env.UserID,
		UserName:  displayName(env.Metadata, cast.ToString(env.Metadata["email"])),
		Message:   cast.ToString(env.Data["text"]),
		Timestamp: env.Timestamp,
	}
}

// displayName falls back from the metadata display name to the email
// local-part, then to Anonymous, the way the original view labels senders.
func displayName(metadata map[string]interface{}, email string) string {
	if name := cast.ToString(metadata["displayName"]); name != "" {
		return name
	}
	if email != "" {
		return strings.SplitN(email, "@", 2)[0]
	}
	return "Anonymous"
}

func memberMetadata(who domain.Identity) map[string]interface{} {
	name := who.DisplayName
	if name == "" && who.Email != "" {
		name = strings.SplitN(who.Email, "@", 2)[0]
	}
	return map[string]interface{}{
		"displayName": name,
		"email":       who.Email,
	}
}
