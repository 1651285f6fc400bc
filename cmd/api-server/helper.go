package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/nilami/api-server/pkg/datastore"
	"github.com/nilami/api-server/pkg/validation"
)

var (
	ErrCouldNotParseBody = errors.New("could not parse request body")
	ErrCouldNotReadBody  = errors.New("could not read request body")
)

type httpResp struct {
	Status  int         `json:"status"`
	IsError bool        `json:"is_error"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func getBody(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return ErrCouldNotReadBody
	}
	err = json.Unmarshal(body, v)
	if err != nil {
		return ErrCouldNotParseBody
	}
	return nil
}

// getBodyStrict rejects bodies carrying fields v does not declare. Used
// where accepting extras would silently drop caller intent, like a team
// update trying to write the derived statistics.
func getBodyStrict(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return ErrCouldNotParseBody
	}
	return nil
}

func sendResponse(rw http.ResponseWriter, resp httpResp) {
	out, err := json.Marshal(resp)
	if err != nil {
		resp.Status = http.StatusInternalServerError
		out = []byte(`{"status": 500, "is_error": true, "error": "could not marshal response"}`)
	}
	rw.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.WriteHeader(resp.Status)
	rw.Write(out)
}

// sendError maps service errors onto the wire: invalid input is 400, a
// missing record is 404, anything else is 500.
func sendError(rw http.ResponseWriter, err error) {
	var ve *validation.Error
	switch {
	case errors.As(err, &ve):
		sendResponse(rw, httpResp{Status: http.StatusBadRequest, IsError: true, Error: ve.Error()})
	case errors.Is(err, datastore.ErrNotFound):
		sendResponse(rw, httpResp{Status: http.StatusNotFound, IsError: true, Error: err.Error()})
	default:
		sendResponse(rw, httpResp{Status: http.StatusInternalServerError, IsError: true, Error: err.Error()})
	}
}
