package main

import (
	"net/http"

	"github.com/nilami/api-server/internals/dashboard"
)

func (app *App) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := dashboard.New(app.Store).GetStats(r.Context())
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: stats})
}
