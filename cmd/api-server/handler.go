package main

import (
	"net/http"
)

func (app *App) initHandlers() {
	app.R.Get("/ws", app.handleWebSocket)

	app.R.Post("/auth/login", app.Login)
	app.R.Post("/auth/logout", app.Middleware(http.HandlerFunc(app.Logout)))

	app.R.Get("/api/players", app.GetPlayers)
	app.R.Post("/api/players", app.Middleware(http.HandlerFunc(app.CreatePlayer)))
	app.R.Post("/api/players/import", app.Middleware(http.HandlerFunc(app.ImportPlayers)))
	app.R.Get("/api/players/{playerID}", app.GetPlayer)
	app.R.Put("/api/players/{playerID}", app.Middleware(http.HandlerFunc(app.UpdatePlayer)))
	app.R.Delete("/api/players/{playerID}", app.Middleware(http.HandlerFunc(app.DeletePlayer)))

	app.R.Get("/api/teams", app.GetTeams)
	app.R.Post("/api/teams", app.Middleware(http.HandlerFunc(app.CreateTeam)))
	app.R.Get("/api/teams/{teamID}", app.GetTeam)
	app.R.Put("/api/teams/{teamID}", app.Middleware(http.HandlerFunc(app.UpdateTeam)))
	app.R.Delete("/api/teams/{teamID}", app.Middleware(http.HandlerFunc(app.DeleteTeam)))

	app.R.Get("/api/auctions", app.GetAuctions)
	app.R.Post("/api/auctions", app.Middleware(http.HandlerFunc(app.CreateAuction)))
	app.R.Get("/api/auctions/active", app.GetActiveAuction)
	app.R.Get("/api/auctions/{auctionID}", app.GetAuction)
	app.R.Put("/api/auctions/{auctionID}", app.Middleware(http.HandlerFunc(app.UpdateAuction)))
	app.R.Delete("/api/auctions/{auctionID}", app.Middleware(http.HandlerFunc(app.DeleteAuction)))

	app.R.Get("/api/auction-logs", app.GetAuctionLogs)
	app.R.Post("/api/auction-logs", app.Middleware(http.HandlerFunc(app.RecordAuctionSale)))

	app.R.Get("/api/dashboard/stats", app.GetDashboardStats)
	app.R.Get("/api/pools", app.GetPools)
	app.R.Get("/api/pools/{poolName}/players", app.GetPoolPlayers)
	app.R.Get("/api/export/results", app.ExportResults)

	app.R.Handle("/metrics", app.Metrics.Handler())
	app.R.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("I am Healthy"))
	})
}
