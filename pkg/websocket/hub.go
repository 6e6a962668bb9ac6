package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Hub manages websocket clients and room-based broadcasts. Each table is a
// room, so every window watching a table sees the same frames.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	join       chan joinReq
	broadcast  chan Broadcast
	roomSize   chan roomSizeReq

	quit     chan struct{}
	stopOnce sync.Once

	rooms map[string]map[*Client]bool
}

type joinReq struct {
	Client *Client
	Room   string
}

type roomSizeReq struct {
	Room  string
	Reply chan int
}

type Broadcast struct {
	Room    string
	Type    string
	Payload any
}

// Envelope is the wire shape of every outbound message.
type Envelope struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
}

func Encode(typ string, payload any) ([]byte, error) {
	return json.Marshal(Envelope{
		Type:      typ,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan joinReq),
		broadcast:  make(chan Broadcast, 256),
		roomSize:   make(chan roomSizeReq),
		quit:       make(chan struct{}),
		rooms:      map[string]map[*Client]bool{},
	}
}

// Run owns the room map until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.quit:
			h.dropAll()
			return
		case c := <-h.register:
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = map[*Client]bool{}
			}
			h.rooms[c.Room][c] = true
		case c := <-h.unregister:
			h.removeClient(c)
		case jr := <-h.join:
			h.moveClientToRoom(jr.Client, jr.Room)
		case b := <-h.broadcast:
			h.broadcastToRoom(b.Room, b.Type, b.Payload)
		case req := <-h.roomSize:
			req.Reply <- len(h.rooms[req.Room])
		}
	}
}

// Stop ends Run. Later Register/Join/Broadcast calls become no-ops.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.quit:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.quit:
	}
}

func (h *Hub) Join(c *Client, room string) {
	select {
	case h.join <- joinReq{Client: c, Room: room}:
	case <-h.quit:
	}
}

func (h *Hub) Broadcast(room, typ string, payload any) {
	select {
	case h.broadcast <- Broadcast{Room: room, Type: typ, Payload: payload}:
	case <-h.quit:
	}
}

// RoomSize reports how many clients are in room, or 0 once the hub stopped.
func (h *Hub) RoomSize(room string) int {
	reply := make(chan int, 1)
	select {
	case h.roomSize <- roomSizeReq{Room: room, Reply: reply}:
		return <-reply
	case <-h.quit:
		return 0
	}
}

// dropAll closes every client's send channel so its write pump hangs up.
// Only the goroutine that ran Run may call it.
func (h *Hub) dropAll() {
	for room, clients := range h.rooms {
		for c := range clients {
			c.closeSend()
		}
		delete(h.rooms, room)
	}
}

func (h *Hub) removeClient(c *Client) {
	if c == nil {
		return
	}
	if c.Room != "" && h.rooms[c.Room] != nil {
		delete(h.rooms[c.Room], c)
		if len(h.rooms[c.Room]) == 0 {
			delete(h.rooms, c.Room)
		}
	}
	c.closeSend()
}

func (h *Hub) moveClientToRoom(c *Client, room string) {
	if c == nil || room == "" {
		return
	}
	// Remove from previous room.
	if c.Room != "" && h.rooms[c.Room] != nil {
		delete(h.rooms[c.Room], c)
		if len(h.rooms[c.Room]) == 0 {
			delete(h.rooms, c.Room)
		}
	}
	c.Room = room
	if h.rooms[room] == nil {
		h.rooms[room] = map[*Client]bool{}
	}
	h.rooms[room][c] = true
}

func (h *Hub) broadcastToRoom(room, typ string, payload any) {
	clients := h.rooms[room]
	if len(clients) == 0 {
		return
	}

	data, err := Encode(typ, payload)
	if err != nil {
		log.Printf("ws broadcast marshal error: room=%s type=%s err=%v", room, typ, err)
		return
	}

	for c := range clients {
		if !c.TrySend(data) {
			// Backpressure / dead client.
			h.removeClient(c)
		}
	}
}
