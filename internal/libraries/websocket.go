package libraries

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// EventType names the push events the sync service broadcasts after a persist.
// Receivers treat payloads as advisory and repull the full snapshot instead of
// applying them.
type EventType string

const (
	EventPing          EventType = "ping"
	EventPong          EventType = "pong"
	EventError         EventType = "error"
	EventNewMessage    EventType = "newMessage"
	EventDeleteMessage EventType = "deleteMessage"
	EventUpdateMessage EventType = "updateMessage"
	EventNewFolder     EventType = "newFolder"
	EventDeleteFolder  EventType = "deleteFolder"
)

// Event is the wire envelope for every websocket message.
type Event struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
	once sync.Once
}

// Hub fans events out to every connected client, the originator included.
// Delivery is best-effort: no acks, no ordering, a disconnected client simply
// misses events until it reconnects and repulls.
type Hub struct {
	Clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan []byte
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan []byte),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client.ID] = client
		case client := <-h.Unregister:
			if _, exists := h.Clients[client.ID]; exists {
				delete(h.Clients, client.ID)
				client.once.Do(func() {
					close(client.Send)
				})
			}
		case message := <-h.Broadcast:
			for _, client := range h.Clients {
				client.Send <- message
			}
		}
	}
}

// Broadcaster is what the handlers need from the hub; tests substitute a
// recording fake.
type Broadcaster interface {
	BroadcastEvent(eventType EventType, data interface{})
}

// BroadcastEvent marshals the typed event envelope and fans it out.
func (h *Hub) BroadcastEvent(eventType EventType, data interface{}) {
	event := Event{Type: eventType, Data: data}
	bytes, err := json.Marshal(event)
	if err != nil {
		log.Println("failed to marshal event:", err)
		return
	}
	h.Broadcast <- bytes
}

func (h *Hub) SendMessage(client *Client, message []byte) {
	client.Send <- message
}

func sendEvent(hub *Hub, client *Client, event Event) {
	bytes, err := json.Marshal(event)
	if err != nil {
		log.Println("failed to marshal event:", err)
		return
	}
	hub.SendMessage(client, bytes)
}

// WebSocketHandler registers each connection with the hub and keeps it alive.
// Clients only ever send pings; the board itself changes over HTTP.
func WebSocketHandler(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			ID:   uuid.NewString(),
			Conn: conn,
			Send: make(chan []byte, 256),
		}

		hub.Register <- client

		// Write loop
		go func() {
			defer func() {
				hub.Unregister <- client
				conn.Close()
			}()
			for msg := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					log.Println("write error:", err)
					return
				}
			}
		}()

		// Read loop
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}

			var event Event
			if err := json.Unmarshal(msg, &event); err != nil {
				sendEvent(hub, client, Event{Type: EventError, Data: "invalid JSON"})
				continue
			}

			if event.Type == EventPing {
				sendEvent(hub, client, Event{Type: EventPong})
			} else {
				sendEvent(hub, client, Event{Type: EventError, Data: "unsupported event type"})
			}
		}

		hub.Unregister <- client
		conn.Close()
	})
}
