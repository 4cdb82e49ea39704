package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/camden-git/biorhythmbackend/models"
	"github.com/camden-git/biorhythmbackend/repository"
)

// SetupHandler bootstraps the very first admin account. Once any user
// exists, the setup endpoints refuse further registrations.
type SetupHandler struct {
	UserRepo repository.UserRepositoryInterface
}

func NewSetupHandler(userRepo repository.UserRepositoryInterface) *SetupHandler {
	return &SetupHandler{UserRepo: userRepo}
}

type FirstAdminPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GetStatus reports whether initial setup is still required.
func (h *SetupHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	count, err := h.UserRepo.Count()
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to check setup status")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"setup_required": count == 0})
}

// CreateFirstAdmin creates the initial admin user while no users exist.
func (h *SetupHandler) CreateFirstAdmin(w http.ResponseWriter, r *http.Request) {
	count, err := h.UserRepo.Count()
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to check setup status")
		return
	}
	if count > 0 {
		WriteAPIError(w, http.StatusForbidden, "setup_complete", "Setup has already been completed")
		return
	}

	var payload FirstAdminPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}
	if strings.TrimSpace(payload.Username) == "" || len(payload.Password) < 8 {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Username is required and password must be at least 8 characters")
		return
	}

	user := &models.User{Username: payload.Username}
	if err := user.SetPassword(payload.Password); err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to hash password")
		return
	}
	if err := h.UserRepo.Create(user); err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to create admin user")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}
