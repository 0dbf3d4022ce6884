package websocket

import "github.com/rs/zerolog/log"

// publishBuffer bounds messages waiting for the hub loop.
const publishBuffer = 256

type publication struct {
	sessionID string
	message   []byte
}

// Hub maintains the set of active clients and routes messages to the
// clients of one session.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Messages addressed to one session.
	publish chan publication

	// A map of session IDs to the set of clients connected for it.
	subscriptions map[string]map[*Client]bool

	done chan struct{}
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		publish:       make(chan publication, publishBuffer),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
		done:          make(chan struct{}),
	}
}

// Run starts the Hub's message processing loop. All map access happens here.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for client := range h.clients {
				close(client.Send)
			}
			h.clients = make(map[*Client]bool)
			h.subscriptions = make(map[string]map[*Client]bool)
			return
		case client := <-h.Register:
			h.clients[client] = true
			h.addSubscription(client, client.SessionID)
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case p := <-h.publish:
			for client := range h.subscriptions[p.sessionID] {
				select {
				case client.Send <- p.message:
				default:
					h.drop(client)
				}
			}
		}
	}
}

// Stop ends the Run loop and closes every client's send channel.
func (h *Hub) Stop() {
	close(h.done)
}

// BroadcastTo queues a message for all clients of a session. It never blocks;
// when the queue is full the message is dropped.
func (h *Hub) BroadcastTo(sessionID string, message []byte) {
	select {
	case h.publish <- publication{sessionID: sessionID, message: message}:
	default:
		log.Warn().Str("session_id", sessionID).Msg("Hub publish queue full, dropping message")
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.Send)
	h.removeSubscription(client)
}

func (h *Hub) addSubscription(client *Client, sessionID string) {
	if h.subscriptions[sessionID] == nil {
		h.subscriptions[sessionID] = make(map[*Client]bool)
	}
	h.subscriptions[sessionID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	if subs, ok := h.subscriptions[client.SessionID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, client.SessionID)
		}
	}
}

// Attach registers a client unless the hub has stopped.
func (h *Hub) Attach(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Detach unregisters a client. It is a no-op once the hub has stopped.
func (h *Hub) Detach(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}
