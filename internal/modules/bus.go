package modules

import (
	"sync"

	"doneUI/internal/logger"

	"go.uber.org/zap"
)

const messagePrefix = "modulesjs_message_"

// Message is delivered to every subscriber of its topic.
type Message struct {
	Theme       string
	Source      string
	Destination string
	Payload     any
}

type Handler func(Message)

// Topic builds the routing key for a theme and optional sender/receiver ids.
// With only a destination the key carries a double underscore so it can not
// collide with a source-only key.
func Topic(theme, source, destination string) string {
	switch {
	case source == "" && destination == "":
		return messagePrefix + theme
	case source == "":
		return messagePrefix + theme + "__" + destination
	case destination == "":
		return messagePrefix + theme + "_" + source
	default:
		return messagePrefix + theme + "_" + source + "_" + destination
	}
}

type subscription struct {
	id      int
	handler Handler
}

// Bus is an in-process publish/subscribe hub. Handlers run synchronously on
// the publishing goroutine, in subscription order.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string][]subscription
	nextID int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscribe registers h for the topic and returns a function that removes it.
func (b *Bus) Subscribe(theme, source, destination string, h Handler) func() {
	topic := Topic(theme, source, destination)

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: h})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		list := b.subs[topic]
		for i, s := range list {
			if s.id == id {
				b.subs[topic] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(b.subs[topic]) == 0 {
			delete(b.subs, topic)
		}
	}
}

// Publish delivers msg and returns the number of handlers that received it.
func (b *Bus) Publish(msg Message) int {
	topic := Topic(msg.Theme, msg.Source, msg.Destination)

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[topic]))
	for _, s := range b.subs[topic] {
		handlers = append(handlers, s.handler)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(msg)
	}

	if len(handlers) == 0 {
		logger.Debug("Modules: сообщение без подписчиков", zap.String("topic", topic))
	}
	return len(handlers)
}
