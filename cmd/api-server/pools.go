package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nilami/api-server/internals/pools"
)

func (app *App) GetPools(w http.ResponseWriter, r *http.Request) {
	list, err := pools.New(app.Store).ListPools(r.Context())
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: list})
}

func (app *App) GetPoolPlayers(w http.ResponseWriter, r *http.Request) {
	poolName := chi.URLParam(r, "poolName")

	list, err := pools.New(app.Store).PlayersByPool(r.Context(), poolName)
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: list})
}
