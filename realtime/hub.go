// Package realtime fans out change events to live subscribers over websockets.
package realtime

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
)

const defaultBuffer = 16

const OrdersTopic = "orders"

func NotificationsTopic(userID string) string { return "notifications:" + userID }
func WishlistTopic(userID string) string      { return "wishlist:" + userID }
func ReviewsTopic(productID uint) string {
	return "reviews:" + strconv.FormatUint(uint64(productID), 10)
}

type subscriber struct {
	ch   chan []byte
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.ch) })
}

// Hub is an in-process topic broker. The zero value is not usable; call NewHub.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*subscriber]struct{}
	buffer int
}

func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[*subscriber]struct{}), buffer: defaultBuffer}
}

// Subscribe registers interest in topic. The returned func unsubscribes and closes the channel.
func (h *Hub) Subscribe(topic string) (<-chan []byte, func()) {
	sub := &subscriber{ch: make(chan []byte, h.buffer)}

	h.mu.Lock()
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*subscriber]struct{})
	}
	h.topics[topic][sub] = struct{}{}
	h.mu.Unlock()

	return sub.ch, func() {
		h.mu.Lock()
		if subs, ok := h.topics[topic]; ok {
			delete(subs, sub)
			if len(subs) == 0 {
				delete(h.topics, topic)
			}
		}
		h.mu.Unlock()
		sub.close()
	}
}

// Publish encodes v as JSON and delivers it to every subscriber of topic.
// Subscribers whose buffer is full miss the message. It returns how many received it.
func (h *Hub) Publish(topic string, v interface{}) int {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("realtime: encode event", "topic", topic, "err", err)
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for sub := range h.topics[topic] {
		select {
		case sub.ch <- data:
			delivered++
		default:
			slog.Warn("realtime: subscriber too slow, dropping event", "topic", topic)
		}
	}
	return delivered
}

func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}
