package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nilami/api-server/internals/auctions"
	"github.com/nilami/api-server/pkg/datastore"
)

func (app *App) GetAuctions(w http.ResponseWriter, r *http.Request) {
	list, err := auctions.New(app.Store).ListAuctions(r.Context())
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: list})
}

func (app *App) GetActiveAuction(w http.ResponseWriter, r *http.Request) {
	auction, err := auctions.New(app.Store).GetActiveAuction(r.Context())
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: auction})
}

func (app *App) GetAuction(w http.ResponseWriter, r *http.Request) {
	auctionID := chi.URLParam(r, "auctionID")

	auction, err := auctions.New(app.Store).GetAuction(r.Context(), auctionID)
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: auction})
}

func (app *App) CreateAuction(w http.ResponseWriter, r *http.Request) {
	var body auctions.CreateAuctionRequestBody
	if err := getBody(r, &body); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	auction, err := auctions.New(app.Store).CreateAuction(r.Context(), body)
	if err != nil {
		sendError(w, err)
		return
	}

	app.Broadcast(Event{Type: EventCreated, Entity: EntityAuction, Data: auction})
	sendResponse(w, httpResp{Status: http.StatusCreated, Data: auction})
}

func (app *App) UpdateAuction(w http.ResponseWriter, r *http.Request) {
	auctionID := chi.URLParam(r, "auctionID")

	var patch datastore.AuctionPatch
	if err := getBody(r, &patch); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	auction, err := auctions.New(app.Store).UpdateAuction(r.Context(), auctionID, patch)
	if err != nil {
		sendError(w, err)
		return
	}

	app.Broadcast(Event{Type: EventUpdated, Entity: EntityAuction, Data: auction})
	sendResponse(w, httpResp{Status: http.StatusOK, Data: auction})
}

func (app *App) DeleteAuction(w http.ResponseWriter, r *http.Request) {
	auctionID := chi.URLParam(r, "auctionID")

	deleted, err := auctions.New(app.Store).DeleteAuction(r.Context(), auctionID)
	if err != nil {
		sendError(w, err)
		return
	}
	if !deleted {
		sendResponse(w, httpResp{Status: http.StatusNotFound, IsError: true, Error: "auction " + auctionID + " not found"})
		return
	}

	app.Broadcast(Event{Type: EventDeleted, Entity: EntityAuction, Data: map[string]string{"auction_id": auctionID}})
	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Auction deleted successfully"}})
}

func (app *App) GetAuctionLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := auctions.New(app.Store).ListAuctionLogs(r.Context())
	if err != nil {
		sendError(w, err)
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: logs})
}

func (app *App) RecordAuctionSale(w http.ResponseWriter, r *http.Request) {
	var body auctions.CreateAuctionLogRequestBody
	if err := getBody(r, &body); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	saleLog, err := auctions.New(app.Store).RecordSale(r.Context(), body)
	if err != nil {
		sendError(w, err)
		return
	}

	app.Broadcast(Event{Type: EventCreated, Entity: EntityAuctionLog, Data: saleLog})
	sendResponse(w, httpResp{Status: http.StatusCreated, Data: saleLog})
}
