package main

import (
	"net/http"

	"github.com/nilami/api-server/internals/results"
)

// ExportResults streams the auction results sheet. The default is CSV;
// ?format=xlsx switches to a workbook. These bypass the JSON envelope
// since the response is a file download.
func (app *App) ExportResults(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")

	svc := results.New(app.Store)
	switch format {
	case "", "csv":
		data, err := svc.ExportCSV(r.Context())
		if err != nil {
			sendError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="auction_results.csv"`)
		w.Write(data)
	case "xlsx":
		data, err := svc.ExportXLSX(r.Context())
		if err != nil {
			sendError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="auction_results.xlsx"`)
		w.Write(data)
	default:
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "unsupported format " + format})
	}
}
