package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dialWS(t *testing.T, app *App, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// The handshake returns before the handler registers the client.
	require.Eventually(t, func() bool {
		app.ClientsM.Lock()
		defer app.ClientsM.Unlock()
		return len(app.WS) > 0
	}, time.Second, 10*time.Millisecond)

	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	return event
}

func TestWebSocketReceivesMutationEvents(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.R)
	defer srv.Close()

	token := loginAdmin(t, app)
	conn := dialWS(t, app, srv, "")

	player := createPlayer(t, app, token, "Jos Buttler", "Wicket-keeper", 5000, "")

	event := readEvent(t, conn)
	require.Equal(t, EventCreated, event.Type)
	require.Equal(t, EntityPlayer, event.Entity)

	rec := doRequest(t, app, http.MethodDelete, "/api/players/"+player.PlayerID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	event = readEvent(t, conn)
	require.Equal(t, EventDeleted, event.Type)
	require.Equal(t, EntityPlayer, event.Entity)
}

func TestWebSocketEntityFilter(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.R)
	defer srv.Close()

	token := loginAdmin(t, app)
	conn := dialWS(t, app, srv, "?entity=team")

	// Filtered out: the first frame the client sees must be the team event.
	createPlayer(t, app, token, "Ignored", "Batsman", 1000, "")
	createTeam(t, app, token, "Lions", 8000)

	event := readEvent(t, conn)
	require.Equal(t, EventCreated, event.Type)
	require.Equal(t, EntityTeam, event.Entity)
}

func TestWebSocketDropsClosedClients(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.R)
	defer srv.Close()

	conn := dialWS(t, app, srv, "")
	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		app.ClientsM.Lock()
		defer app.ClientsM.Unlock()
		return len(app.WS) == 0
	}, time.Second, 10*time.Millisecond)

	// Broadcasting with no clients is a no-op.
	app.Broadcast(Event{Type: EventCreated, Entity: EntityPlayer})
}
