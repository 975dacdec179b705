package api

import (
	"log/slog"
	"net/http"

	"github.com/mgracar/pinventory/internal/auth"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	SessionSecret string
	PINHash       string
}

type loginRequest struct {
	PIN string `json:"pin"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.PIN == "" || !auth.CheckPIN(h.PINHash, req.PIN) {
		slog.Warn("API login failed", "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid PIN")
		return
	}

	token, _, err := auth.GenerateSessionToken(h.SessionSecret)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	jsonResponse(w, http.StatusOK, loginResponse{Token: token})
}
