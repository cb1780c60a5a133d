package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Topics responders can subscribe to.
const (
	TopicReports     = "reports"
	TopicEmergencies = "emergencies"
)

type Client struct {
	id     string
	topics map[string]bool
	ch     chan string
	done   chan struct{}
}

// Hub fans risk reports and emergency alerts out to connected dashboards.
type Hub struct {
	mu        sync.RWMutex
	clients   map[string]*Client
	topics    map[string]map[string]bool // topic -> clientID set
	heartbeat time.Duration
	retryMs   int
}

func NewHub(heartbeat time.Duration) *Hub {
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	return &Hub{
		clients:   make(map[string]*Client),
		topics:    make(map[string]map[string]bool),
		heartbeat: heartbeat,
		retryMs:   5000,
	}
}

func (h *Hub) AddClient(id string) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	c := &Client{id: id, topics: make(map[string]bool), ch: make(chan string, 64), done: make(chan struct{})}
	h.clients[id] = c
	return c
}

func (h *Hub) RemoveClient(id string) {
	h.mu.Lock()
	if c, ok := h.clients[id]; ok {
		close(c.done)
		for t := range c.topics {
			delete(h.topics[t], id)
		}
		delete(h.clients, id)
	}
	h.mu.Unlock()
}

func (h *Hub) Subscribe(id, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[id]
	if !ok {
		return
	}
	c.topics[topic] = true
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[string]bool)
	}
	h.topics[topic][id] = true
}

// Publish marshals payload and delivers it to every subscriber of the topic.
// A slow client's full buffer drops the event rather than blocking the hub.
func (h *Hub) Publish(topic, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	msg := fmt.Sprintf("event: %s\ndata: %s\n\n", event, data)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id := range h.topics[topic] {
		c, ok := h.clients[id]
		if !ok {
			continue
		}
		select {
		case c.ch <- msg:
		default:
		}
	}
}

// Stream is the gin handler holding a responder's SSE connection open.
func (h *Hub) Stream(c *gin.Context, clientID string, topics ...string) {
	client := h.AddClient(clientID)
	defer h.RemoveClient(clientID)
	for _, t := range topics {
		h.Subscribe(clientID, t)
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.WriteString(fmt.Sprintf("retry: %d\n\n", h.retryMs))
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client.ch:
			if !ok {
				return false
			}
			_, _ = io.WriteString(w, msg)
			return true
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			return true
		case <-client.done:
			return false
		case <-c.Request.Context().Done():
			return false
		}
	})
}
