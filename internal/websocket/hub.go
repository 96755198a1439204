package websocket

import "github.com/rs/zerolog/log"

type userMessage struct {
	userID  int64
	message []byte
}

type clientMessage struct {
	client  *Client
	message []byte
}

// Hub maintains the set of active clients and routes messages to the
// connections of the user they belong to. All client bookkeeping happens
// on the Run goroutine.
type Hub struct {
	// Registered clients, grouped by user.
	subscriptions map[int64]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	publish    chan userMessage
	direct     chan clientMessage
	done       chan struct{}
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		subscriptions: make(map[int64]map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		publish:       make(chan userMessage, 64),
		direct:        make(chan clientMessage, 16),
		done:          make(chan struct{}),
	}
}

// Run starts the Hub's message processing loop. It returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for _, subs := range h.subscriptions {
				for client := range subs {
					close(client.Send)
				}
			}
			h.subscriptions = make(map[int64]map[*Client]bool)
			return
		case client := <-h.register:
			if h.subscriptions[client.UserID] == nil {
				h.subscriptions[client.UserID] = make(map[*Client]bool)
			}
			h.subscriptions[client.UserID][client] = true
			log.Info().Int64("user_id", client.UserID).Int("user_clients", len(h.subscriptions[client.UserID])).Msg("Client connected")
		case client := <-h.unregister:
			if h.has(client) {
				h.drop(client)
				log.Info().Int64("user_id", client.UserID).Msg("Client disconnected")
			}
		case msg := <-h.publish:
			for client := range h.subscriptions[msg.userID] {
				h.deliver(client, msg.message)
			}
		case msg := <-h.direct:
			if h.has(msg.client) {
				h.deliver(msg.client, msg.message)
			}
		}
	}
}

// Stop ends Run and closes every client's send channel.
func (h *Hub) Stop() {
	close(h.done)
}

// Register adds client to the hub.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.Send)
	}
}

// Unregister removes client from the hub. Unknown clients are ignored.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// PublishToUser queues message for every connection of userID.
// Messages published after Stop are discarded.
func (h *Hub) PublishToUser(userID int64, message []byte) {
	select {
	case h.publish <- userMessage{userID: userID, message: message}:
	case <-h.done:
	}
}

func (h *Hub) sendTo(client *Client, message []byte) {
	select {
	case h.direct <- clientMessage{client: client, message: message}:
	case <-h.done:
	}
}

func (h *Hub) has(client *Client) bool {
	return h.subscriptions[client.UserID][client]
}

// deliver never blocks the hub: a client whose buffer is full is dropped.
func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		log.Warn().Int64("user_id", client.UserID).Msg("Dropping slow websocket client")
		h.drop(client)
	}
}

func (h *Hub) drop(client *Client) {
	subs := h.subscriptions[client.UserID]
	delete(subs, client)
	if len(subs) == 0 {
		delete(h.subscriptions, client.UserID)
	}
	close(client.Send)
}
