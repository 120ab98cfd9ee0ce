package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nurhusenm/Devtracker/logging"
	"github.com/nurhusenm/Devtracker/services"
)

type AuthHandler struct {
	Service *services.UserService
}

func NewAuthHandler(service *services.UserService) *AuthHandler {
	return &AuthHandler{Service: service}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	if err := h.Service.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			writeMessage(w, http.StatusBadRequest, "User already exists")
			return
		}
		logging.Logger.Errorf("Register failed: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Error registering user")
		return
	}

	writeMessage(w, http.StatusCreated, "User created successfully")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	token, userID, err := h.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// One generic message for unknown email and wrong password alike.
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeMessage(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		logging.Logger.Errorf("Login failed: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Error logging in")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, UserID: userID})
}
