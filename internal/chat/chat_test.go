package chat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorstack/storefront/internal/chat"
	"github.com/creatorstack/storefront/internal/domain"
)

func TestMessageFromEnvelope(t *testing.T) {
	t.Run("MapsEnvelopeFields", func(t *testing.T) {
		msg := chat.MessageFromEnvelope(chat.Envelope{
			ID:        "m1",
			Type:      "chat",
			UserID:    "u1",
			Timestamp: 1700000000000,
			Data:      map[string]interface{}{"text": "hello creators"},
			Metadata:  map[string]interface{}{"displayName": "Ada", "email": "ada@example.test"},
		})
		assert.Equal(t, domain.ChatMessage{
			ID:        "m1",
			UserID:    "u1",
			UserName:  "Ada",
			Message:   "hello creators",
			Timestamp: 1700000000000,
		}, msg)
	})

	t.Run("FallsBackToEmailLocalPart", func(t *testing.T) {
		msg := chat.MessageFromEnvelope(chat.Envelope{
			Metadata: map[string]interface{}{"email": "grace@example.test"},
		})
		assert.Equal(t, "grace", msg.UserName)
	})

	t.Run("FallsBackToAnonymous", func(t *testing.T) {
		msg := chat.MessageFromEnvelope(chat.Envelope{})
		assert.Equal(t, "Anonymous", msg.UserName)
	})
}

func TestLoopbackChannel(t *testing.T) {
	t.Run("DeliversPublishesToSubscriber", func(t *testing.T) {
		ch := chat.NewLoopbackChannel()
		var got []chat.Envelope
		ch.OnMessage(func(env chat.Envelope) { got = append(got, env) })

		require.NoError(t, ch.Publish("chat", map[string]interface{}{"text": "hi"}, "u1", nil))
		require.Len(t, got, 1)
		assert.Equal(t, "chat", got[0].Type)
		assert.Equal(t, "u1", got[0].UserID)
		assert.NotEmpty(t, got[0].ID)
		assert.NotZero(t, got[0].Timestamp)
	})

	t.Run("HistoryHonorsLimit", func(t *testing.T) {
		ch := chat.NewLoopbackChannel()
		for i := 0; i < 5; i++ {
			require.NoError(t, ch.Publish("chat", map[string]interface{}{"text": "m"}, "u1", nil))
		}
		got, err := ch.GetMessages(3)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("SubscribeReportsPresence", func(t *testing.T) {
		ch := chat.NewLoopbackChannel()
		var members []chat.Presence
		ch.OnPresence(func(ms []chat.Presence) { members = ms })

		require.NoError(t, ch.Subscribe("u1", map[string]interface{}{"displayName": "Ada"}))
		require.Len(t, members, 1)
		assert.Equal(t, "u1", members[0].UserID)
	})

	t.Run("UnsubscribeRemovesOnlyThatMember", func(t *testing.T) {
		ch := chat.NewLoopbackChannel()
		var members []chat.Presence
		ch.OnPresence(func(ms []chat.Presence) { members = ms })

		require.NoError(t, ch.Subscribe("u1", nil))
		require.NoError(t, ch.Subscribe("u2", nil))
		require.Len(t, members, 2)

		require.NoError(t, ch.Unsubscribe("u1"))
		require.Len(t, members, 1)
		assert.Equal(t, "u2", members[0].UserID)
	})

	t.Run("UnsubscribeKeepsCallbacksAttached", func(t *testing.T) {
		ch := chat.NewLoopbackChannel()
		var got []chat.Envelope
		ch.OnMessage(func(env chat.Envelope) { got = append(got, env) })

		require.NoError(t, ch.Subscribe("u1", nil))
		require.NoError(t, ch.Unsubscribe("u1"))
		require.NoError(t, ch.Publish("chat", map[string]interface{}{"text": "still here"}, "u2", nil))
		assert.Len(t, got, 1)
	})
}

func TestService(t *testing.T) {
	ada := domain.Identity{ID: "u1", Email: "ada@example.test", DisplayName: "Ada"}

	t.Run("JoinSendReceive", func(t *testing.T) {
		svc := chat.New(chat.NewLoopbackChannel())

		var msgs []domain.ChatMessage
		var users []domain.Identity
		leave, err := svc.Join(ada,
			func(m domain.ChatMessage) { msgs = append(msgs, m) },
			func(us []domain.Identity) { users = us },
		)
		require.NoError(t, err)
		defer leave()

		require.Len(t, users, 1, "joining announces presence")
		assert.Equal(t, "Ada", users[0].DisplayName)

		require.NoError(t, svc.Send(ada, "  shipping my course today  "))
		require.Len(t, msgs, 1)
		assert.Equal(t, "shipping my course today", msgs[0].Message)
		assert.Equal(t, "Ada", msgs[0].UserName)
	})

	t.Run("LeaveShrinksPresence", func(t *testing.T) {
		grace := domain.Identity{ID: "u2", Email: "grace@example.test"}
		svc := chat.New(chat.NewLoopbackChannel())

		var users []domain.Identity
		leave, err := svc.Join(ada, func(domain.ChatMessage) {}, func(us []domain.Identity) { users = us })
		require.NoError(t, err)
		require.NoError(t, svc.Enter(grace))
		require.Len(t, users, 2)

		leave()
		require.Len(t, users, 1, "leaving must de-announce the member")
		assert.Equal(t, "u2", users[0].ID)
	})

	t.Run("BlankMessagesAreDropped", func(t *testing.T) {
		ch := chat.NewLoopbackChannel()
		svc := chat.New(ch)
		require.NoError(t, svc.Send(ada, "   "))
		history, err := ch.GetMessages(10)
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("HistoryMapsToMessages", func(t *testing.T) {
		ch := chat.NewLoopbackChannel()
		svc := chat.New(ch)
		require.NoError(t, svc.Send(ada, "one"))
		require.NoError(t, svc.Send(ada, "two"))

		history, err := svc.History()
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "one", history[0].Message)
		assert.Equal(t, "two", history[1].Message)
	})

	t.Run("NonChatEnvelopesAreIgnored", func(t *testing.T) {
		ch := chat.NewLoopbackChannel()
		svc := chat.New(ch)

		var msgs []domain.ChatMessage
		_, err := svc.Join(ada, func(m domain.ChatMessage) { msgs = append(msgs, m) }, func([]domain.Identity) {})
		require.NoError(t, err)

		require.NoError(t, ch.Publish("system", map[string]interface{}{"text": "ignored"}, "u1", nil))
		assert.Empty(t, msgs)
	})
}
