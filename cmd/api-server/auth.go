package main

import (
	"errors"
	"net/http"

	"github.com/nilami/api-server/internals/auth"
)

func (app *App) Login(w http.ResponseWriter, r *http.Request) {
	var loginDetails auth.LoginRequestBody
	err := getBody(r, &loginDetails)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	token, err := app.Auth.Login(loginDetails)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, auth.ErrInvalidCredentials) {
			status = http.StatusUnauthorized
		}
		sendResponse(w, httpResp{Status: status, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"token": token, "message": "Logged in successfully"}})
}

func (app *App) Logout(w http.ResponseWriter, r *http.Request) {
	userName := r.Context().Value("user_name").(string)
	token := r.Context().Value("token").(string)

	if err := app.Auth.Logout(userName, token); err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Logged out successfully"}})
}
