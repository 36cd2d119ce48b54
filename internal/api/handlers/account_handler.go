package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/nurdn/binarytalk-be/internal/apperr"
	"github.com/nurdn/binarytalk-be/internal/auth"
	"github.com/nurdn/binarytalk-be/internal/models"
	"github.com/nurdn/binarytalk-be/internal/services"
)

// AccountHandler handles HTTP requests for account management.
type AccountHandler struct {
	service services.AccountServiceProvider
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service services.AccountServiceProvider) *AccountHandler {
	return &AccountHandler{service: service}
}

// Register handles new account registration.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.BadRequest("Invalid request body"))
		return
	}

	account, err := h.service.Register(req)
	if err != nil {
		log.Warn().Err(err).Str("username", req.Username).Msg("Failed to register account")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.RegisterResponse{Account: account})
}

// Login handles credential authentication and token issuance.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.BadRequest("Invalid request body"))
		return
	}

	token, err := h.service.Login(req)
	if err != nil {
		log.Warn().Err(err).Str("username", req.Username).Msg("Failed authentication attempt")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{Token: token})
}

// Current returns the authenticated account.
func (h *AccountHandler) Current(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve account from context")
		writeError(w, apperr.Unauthorized("Unauthorized"))
		return
	}

	writeJSON(w, http.StatusOK, models.GetResponse{Account: account})
}

// Update handles partial profile updates for the authenticated account.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		writeError(w, apperr.Unauthorized("Unauthorized"))
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.BadRequest("Invalid request body"))
		return
	}
	req.Username = account.Username

	updated, err := h.service.UpdateProfile(req)
	if err != nil {
		log.Warn().Err(err).Str("username", account.Username).Msg("Failed to update profile")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.UpdateProfileResponse{Account: updated})
}

// Password handles changing the authenticated account's password.
func (h *AccountHandler) Password(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		writeError(w, apperr.Unauthorized("Unauthorized"))
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.BadRequest("Invalid request body"))
		return
	}
	req.Username = account.Username

	updated, err := h.service.ChangePassword(req)
	if err != nil {
		log.Warn().Err(err).Str("username", account.Username).Msg("Failed to change password")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChangePasswordResponse{Account: updated})
}

// Remove handles the permanent deletion of the authenticated account.
func (h *AccountHandler) Remove(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		writeError(w, apperr.Unauthorized("Unauthorized"))
		return
	}

	if err := h.service.Delete(account.Username); err != nil {
		log.Error().Err(err).Str("username", account.Username).Msg("Failed to delete account")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}
