package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSDetails records what a connected client asked to watch. An empty
// Entity means every event.
type WSDetails struct {
	Entity string
}

const (
	EventCreated  = "created"
	EventUpdated  = "updated"
	EventDeleted  = "deleted"
	EventImported = "imported"

	EntityPlayer     = "player"
	EntityTeam       = "team"
	EntityAuction    = "auction"
	EntityAuctionLog = "auction_log"
)

// Event is the change notification fanned out after every successful
// mutation so dashboard views can refresh without polling.
type Event struct {
	Type   string      `json:"type"`
	Entity string      `json:"entity"`
	Data   interface{} `json:"data,omitempty"`
}

// handleWebSocket upgrades the connection and parks it in the client map.
// The feed is one-way; incoming frames are drained until the client hangs
// up. An optional ?entity= query param narrows the feed to one entity.
func (app *App) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	entity := r.URL.Query().Get("entity")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "Could not open websocket connection", http.StatusBadRequest)
		return
	}

	// defer the connection close and remove the client from the list
	defer func() {
		conn.Close()
		app.ClientsM.Lock()
		delete(app.WS, conn)
		app.ClientsM.Unlock()
	}()

	app.ClientsM.Lock()
	app.WS[conn] = WSDetails{Entity: entity}
	app.ClientsM.Unlock()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

// Broadcast sends event to every connected client watching its entity.
// Connections that fail the write are closed and dropped.
func (app *App) Broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("could not marshal event")
		return
	}

	app.ClientsM.Lock()
	defer app.ClientsM.Unlock()
	for conn, details := range app.WS {
		if details.Entity != "" && details.Entity != event.Entity {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(app.WS, conn)
		}
	}
}
