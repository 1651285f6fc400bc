package main

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nilami/api-server/internals/imports"
	"github.com/nilami/api-server/internals/players"
	"github.com/nilami/api-server/pkg/datastore"
)

func (app *App) GetPlayers(w http.ResponseWriter, r *http.Request) {
	filters := players.ListFilters{
		Status: r.URL.Query().Get("status"),
		Role:   r.URL.Query().Get("role"),
		Pool:   r.URL.Query().Get("pool"),
	}

	list, err := players.New(app.Store).ListPlayers(r.Context(), filters)
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: list})
}

func (app *App) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	player, err := players.New(app.Store).GetPlayer(r.Context(), playerID)
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: player})
}

func (app *App) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var body players.CreatePlayerRequestBody
	if err := getBody(r, &body); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	player, err := players.New(app.Store).CreatePlayer(r.Context(), body)
	if err != nil {
		sendError(w, err)
		return
	}

	app.Broadcast(Event{Type: EventCreated, Entity: EntityPlayer, Data: player})
	sendResponse(w, httpResp{Status: http.StatusCreated, Data: player})
}

func (app *App) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	var patch datastore.PlayerPatch
	if err := getBody(r, &patch); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	player, err := players.New(app.Store).UpdatePlayer(r.Context(), playerID, patch)
	if err != nil {
		sendError(w, err)
		return
	}

	app.Broadcast(Event{Type: EventUpdated, Entity: EntityPlayer, Data: player})
	sendResponse(w, httpResp{Status: http.StatusOK, Data: player})
}

func (app *App) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	deleted, err := players.New(app.Store).DeletePlayer(r.Context(), playerID)
	if err != nil {
		sendError(w, err)
		return
	}
	if !deleted {
		sendResponse(w, httpResp{Status: http.StatusNotFound, IsError: true, Error: "player " + playerID + " not found"})
		return
	}

	app.Broadcast(Event{Type: EventDeleted, Entity: EntityPlayer, Data: map[string]string{"player_id": playerID}})
	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Player deleted successfully"}})
}

// ImportPlayers takes a multipart upload under the "file" field and loads
// the roster sheet it carries. Row failures are reported per row; the rest
// of the sheet still imports.
func (app *App) ImportPlayers(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: ErrCouldNotReadBody.Error()})
		return
	}

	result, err := imports.New(app.Store).ImportRoster(r.Context(), header.Filename, data)
	if err != nil {
		sendError(w, err)
		return
	}

	if result.Imported > 0 {
		app.Broadcast(Event{Type: EventImported, Entity: EntityPlayer, Data: map[string]interface{}{"imported": result.Imported}})
	}
	sendResponse(w, httpResp{Status: http.StatusCreated, Data: result})
}
