package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nilami/api-server/internals/teams"
	"github.com/nilami/api-server/pkg/datastore"
)

func (app *App) GetTeams(w http.ResponseWriter, r *http.Request) {
	list, err := teams.New(app.Store).ListTeams(r.Context())
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: list})
}

func (app *App) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	team, err := teams.New(app.Store).GetTeam(r.Context(), teamID)
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: team})
}

func (app *App) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var body teams.CreateTeamRequestBody
	if err := getBody(r, &body); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	team, err := teams.New(app.Store).CreateTeam(r.Context(), body)
	if err != nil {
		sendError(w, err)
		return
	}

	app.Broadcast(Event{Type: EventCreated, Entity: EntityTeam, Data: team})
	sendResponse(w, httpResp{Status: http.StatusCreated, Data: team})
}

// UpdateTeam reads the patch strictly: the derived statistics are not
// writable, so a body naming them is rejected instead of silently ignored.
func (app *App) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	var patch datastore.TeamPatch
	if err := getBodyStrict(r, &patch); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	team, err := teams.New(app.Store).UpdateTeam(r.Context(), teamID, patch)
	if err != nil {
		sendError(w, err)
		return
	}

	app.Broadcast(Event{Type: EventUpdated, Entity: EntityTeam, Data: team})
	sendResponse(w, httpResp{Status: http.StatusOK, Data: team})
}

func (app *App) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	deleted, err := teams.New(app.Store).DeleteTeam(r.Context(), teamID)
	if err != nil {
		sendError(w, err)
		return
	}
	if !deleted {
		sendResponse(w, httpResp{Status: http.StatusNotFound, IsError: true, Error: "team " + teamID + " not found"})
		return
	}

	app.Broadcast(Event{Type: EventDeleted, Entity: EntityTeam, Data: map[string]string{"team_id": teamID}})
	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Team deleted successfully"}})
}
