// Package eventbus is the in-process notification fabric that keeps the
// storefront, dashboard, and upload flow consistent: mutations publish a topic
// and every mounted view re-queries in response.
package eventbus

import (
	"sort"
	"sync"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"
)

// Topics used across the system. Handlers treat the detail payload as opaque;
// it is carried for forward compatibility only.
const (
	TopicProductCreated = "product.created"
	TopicProductDeleted = "product.deleted"
)

// Handler receives the detail value passed to Publish.
type Handler func(detail interface{})

type topicSubs struct {
	handlers map[int]Handler
	// fanout is the single function registered with the underlying bus for
	// this topic. EventBus matches handlers by code pointer on Unsubscribe,
	// so each topic keeps exactly one distinct registered function.
	fanout func(interface{})
}

// Bus delivers published events to all current subscribers of a topic,
// synchronously and in subscription order, before Publish returns.
type Bus struct {
	bus EventBus.Bus

	mu     sync.Mutex
	topics map[string]*topicSubs
	nextID int
}

func New() *Bus {
	return &Bus{
		bus:    EventBus.New(),
		topics: make(map[string]*topicSubs),
	}
}

// Publish invokes every handler subscribed to topic with detail.
func (b *Bus) Publish(topic string, detail interface{}) {
	b.bus.Publish(topic, detail)
}

// Subscribe registers h for topic and returns its unsubscribe handle. Views
// subscribe on mount and must call the handle on unmount; the handle removes
// only h, never a sibling subscription on the same topic.
func (b *Bus) Subscribe(topic string, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.topics[topic]
	if !ok {
		subs = &topicSubs{handlers: make(map[int]Handler)}
		subs.fanout = func(detail interface{}) { b.dispatch(topic, detail) }
		if err := b.bus.Subscribe(topic, subs.fanout); err != nil {
			zap.L().Error("event bus subscribe failed", zap.String("topic", topic), zap.Error(err))
			return func() {}
		}
		b.topics[topic] = subs
	}

	id := b.nextID
	b.nextID++
	subs.handlers[id] = h

	return func() { b.remove(topic, id) }
}

func (b *Bus) remove(topic string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.topics[topic]
	if !ok {
		return
	}
	delete(subs.handlers, id)
	if len(subs.handlers) > 0 {
		return
	}
	delete(b.topics, topic)
	if err := b.bus.Unsubscribe(topic, subs.fanout); err != nil {
		zap.L().Warn("event bus unsubscribe failed", zap.String("topic", topic), zap.Error(err))
	}
}

// dispatch runs on the publisher's goroutine. Handler ids are monotonic, so
// ascending id order is subscription order.
func (b *Bus) dispatch(topic string, detail interface{}) {
	b.mu.Lock()
	subs, ok := b.topics[topic]
	if !ok {
		b.mu.Unlock()
		return
	}
	ids := make([]int, 0, len(subs.handlers))
	for id := range subs.handlers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	ordered := make([]Handler, 0, len(ids))
	for _, id := range ids {
		ordered = append(ordered, subs.handlers[id])
	}
	b.mu.Unlock()

	for _, h := range ordered {
		h(detail)
	}
}
