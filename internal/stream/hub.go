package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans ride completions out to websocket clients watching a route. A
// client that uploaded new parameters gets the fresh result pushed instead
// of polling. Redis pub/sub carries broadcasts between instances; with Redis
// configured, local watchers are reached through the same subscription, so a
// message is delivered exactly once per watcher.
type Hub struct {
	redis    *redis.Client
	watchers map[string]map[*Watcher]struct{}
	mu       sync.RWMutex
}

// Watcher is one connected client subscribed to a single route.
type Watcher struct {
	RouteID string
	Send    chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:    redisClient,
		watchers: map[string]map[*Watcher]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(routeID string) *Watcher {
	w := &Watcher{
		RouteID: routeID,
		Send:    make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.watchers[routeID] == nil {
		h.watchers[routeID] = map[*Watcher]struct{}{}
	}
	h.watchers[routeID][w] = struct{}{}
	return w
}

func (h *Hub) Unregister(w *Watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if routeWatchers, ok := h.watchers[w.RouteID]; ok {
		delete(routeWatchers, w)
		if len(routeWatchers) == 0 {
			delete(h.watchers, w.RouteID)
		}
	}
	close(w.Send)
}

// Broadcast sends payload to every watcher of routeID on every instance.
// Without Redis it delivers to local watchers directly; with Redis it
// publishes once and delivery happens through the subscription, local
// watchers included. A failed publish falls back to local delivery.
func (h *Hub) Broadcast(routeID string, payload []byte) {
	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(routeID), payload).Err()
		if err == nil {
			return
		}
		log.Printf("redis publish error: %v", err)
	}
	h.deliver(routeID, payload)
}

// deliver pushes payload to local watchers. Sends happen under the read
// lock so Unregister cannot close a channel mid-send; slow watchers are
// skipped rather than blocked on.
func (h *Hub) deliver(routeID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for w := range h.watchers[routeID] {
		select {
		case w.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "rides:*:completed")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.deliver(routeIDFromChannel(msg.Channel), []byte(msg.Payload))
	}
}

func redisChannel(routeID string) string {
	return "rides:" + routeID + ":completed"
}

func routeIDFromChannel(ch string) string {
	// rides:{route}:completed
	const prefix = "rides:"
	const suffix = ":completed"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
