package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"legal-intake-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const redisChannel = "intake_transcript_events"

// Hub fans live transcript frames out to the viewers of each case. Clients
// are grouped per case id; Redis relays frames across instances.
type Hub struct {
	// Registered clients map: CaseID -> list of clients (multi-tab)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.CaseID] = append(h.clients[client.CaseID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Transcript viewer registered", map[string]interface{}{"case_id": client.CaseID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.CaseID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.CaseID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.CaseID]) == 0 {
					delete(h.clients, client.CaseID)
					h.logger.Info("Hub", "Last transcript viewer left", map[string]interface{}{"case_id": client.CaseID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastTranscript pushes one transcript frame to every viewer of the
// case, locally and through Redis for other instances.
func (h *Hub) BroadcastTranscript(caseID string, frame interface{}) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "transcript",
		"data": frame,
	})
	if err != nil {
		h.logger.Warn("Hub", "Failed to serialize transcript frame", map[string]interface{}{
			"case_id": caseID,
			"error":   err.Error(),
		})
		return
	}

	h.deliverLocal(caseID, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"case_id": caseID,
			"message": json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), redisChannel, payload)
	}
}

func (h *Hub) deliverLocal(caseID string, data []byte) {
	h.mu.RLock()
	clients := append([]*Client(nil), h.clients[caseID]...)
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Viewer buffer full, dropping connection", map[string]interface{}{"case_id": caseID})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			CaseID  string          `json:"case_id"`
			Message json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}
		h.deliverLocal(payload.CaseID, payload.Message)
	}
}
