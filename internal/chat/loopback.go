package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// LoopbackChannel is an in-process Channel: publishes are delivered straight
// back to the registered callbacks and a bounded history is retained. It
// stands in for the managed realtime service in development and tests; the
// Channel interface stays the collaborator boundary.
type LoopbackChannel struct {
	mu         sync.Mutex
	history    []Envelope
	members    map[string]Presence
	onMessage  func(Envelope)
	onPresence func([]Presence)
}

var _ Channel = (*LoopbackChannel)(nil)

const loopbackHistoryMax = 500

func NewLoopbackChannel() *LoopbackChannel {
	return &LoopbackChannel{members: make(map[string]Presence)}
}

func (c *LoopbackChannel) Subscribe(userID string, metadata map[string]interface{}) error {
	c.mu.Lock()
	c.members[userID] = Presence{UserID: userID, Metadata: metadata}
	fn := c.onPresence
	members := c.memberListLocked()
	c.mu.Unlock()

	if fn != nil {
		fn(members)
	}
	return nil
}

func (c *LoopbackChannel) OnMessage(fn func(Envelope)) {
	c.mu.Lock()
	c.onMessage = fn
	c.mu.Unlock()
}

func (c *LoopbackChannel) OnPresence(fn func([]Presence)) {
	c.mu.Lock()
	c.onPresence = fn
	c.mu.Unlock()
}

func (c *LoopbackChannel) GetMessages(limit int) ([]Envelope, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	start := 0
	if limit > 0 && len(c.history) > limit {
		start = len(c.history) - limit
	}
	out := make([]Envelope, len(c.history)-start)
	copy(out, c.history[start:])
	return out, nil
}

func (c *LoopbackChannel) Publish(msgType string, data map[string]interface{}, userID string, metadata map[string]interface{}) error {
	env := Envelope{
		ID:        uuid.NewString(),
		Type:      msgType,
		UserID:    userID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
		Metadata:  metadata,
	}

	c.mu.Lock()
	c.history = append(c.history, env)
	if len(c.history) > loopbackHistoryMax {
		c.history = c.history[len(c.history)-loopbackHistoryMax:]
	}
	fn := c.onMessage
	c.mu.Unlock()

	if fn != nil {
		fn(env)
	}
	return nil
}

// Unsubscribe removes the member and reports the shrunk presence list. The
// message and presence callbacks belong to the channel, not to one member, so
// they stay attached.
func (c *LoopbackChannel) Unsubscribe(userID string) error {
	c.mu.Lock()
	_, present := c.members[userID]
	delete(c.members, userID)
	fn := c.onPresence
	members := c.memberListLocked()
	c.mu.Unlock()

	if present && fn != nil {
		fn(members)
	}
	return nil
}

func (c *LoopbackChannel) memberListLocked() []Presence {
	out := make([]Presence, 0, len(c.members))
	for _, m := range c.members {
		out = append(out, m)
	}
	return out
}
