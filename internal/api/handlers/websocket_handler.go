package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/isdelr/mindmate-be/internal/services"
	ws "github.com/isdelr/mindmate-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler handles upgrading HTTP connections to WebSocket connections.
type WebSocketHandler struct {
	hub      *ws.Hub
	sessions services.SessionServiceProvider
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub, sessions services.SessionServiceProvider) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, sessions: sessions}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (consider tightening this in production).
		return true
	},
}

// Serve handles the WebSocket connection request. The connection receives the
// session's state and activity events as they happen.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	session, err := h.sessions.GetSession(id)
	if err != nil {
		writeError(w, err, "")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn, id)
	if !h.hub.Attach(client) {
		conn.Close()
		return
	}
	h.reply(client, ws.NewStateMessage(session.State))

	go client.WritePump()
	go func() {
		client.ReadPump(h.handleIncomingWSMessage)
		// Detaching closes Send, which stops the write pump.
		h.hub.Detach(client)
	}()
}

// handleIncomingWSMessage processes messages received from a websocket client.
func (h *WebSocketHandler) handleIncomingWSMessage(client *ws.Client, message []byte) {
	var msg ws.Message
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Error().Err(err).Bytes("message", message).Msg("Error decoding websocket message")
		h.reply(client, ws.NewErrorMessage("Invalid message"))
		return
	}

	switch msg.Action {
	case "get_state":
		session, err := h.sessions.GetSession(client.SessionID)
		if err != nil {
			h.reply(client, ws.NewErrorMessage(err.Error()))
			return
		}
		h.reply(client, ws.NewStateMessage(session.State))

	default:
		log.Warn().Str("action", msg.Action).Msg("Unknown websocket action received")
		h.reply(client, ws.NewErrorMessage("Unknown action: "+msg.Action))
	}
}

// reply goes through the hub so it never races with a closed Send channel.
// Every connection of the session gets the message.
func (h *WebSocketHandler) reply(client *ws.Client, message []byte) {
	h.hub.BroadcastTo(client.SessionID, message)
}
