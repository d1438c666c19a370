package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/eventorbit/server/internal/api/respond"
	"github.com/eventorbit/server/internal/domain/accounts"
	"github.com/eventorbit/server/internal/metrics"
)

// AccountsHandler serves registration and login for both roles. The same
// handler backs the admin and user routes, parameterized by role.
type AccountsHandler struct {
	service *accounts.Service
	env     string
}

func NewAccountsHandler(service *accounts.Service, env string) *AccountsHandler {
	return &AccountsHandler{service: service, env: env}
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	RememberMe      bool   `json:"rememberMe"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Accepted for client compatibility; token lifetimes are fixed server-side.
	RememberMe bool `json:"rememberMe"`
}

type jwtPayload struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

type authResponse struct {
	Message   string     `json:"message"`
	JWT       jwtPayload `json:"jwt"`
	LastLogin *string    `json:"last_login"`
	Email     string     `json:"email"`
	Redirect  string     `json:"redirect"`
}

func redirectFor(role accounts.Role) string {
	if role == accounts.RoleAdmin {
		return "/create-event"
	}
	return "/events"
}

func registerMessage(role accounts.Role) string {
	if role == accounts.RoleAdmin {
		return "Admin registered successfully"
	}
	return "User registered successfully"
}

// Register returns the registration handler for the given role.
func (h *AccountsHandler) Register(role accounts.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, r, http.StatusBadRequest, "Invalid JSON format in request body", err)
			return
		}

		result, err := h.service.Register(r.Context(), accounts.RegisterParams{
			Name:            req.Name,
			Email:           req.Email,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
			Role:            role,
		})
		if err != nil {
			h.writeRegisterError(w, r, err)
			return
		}

		respond.JSON(w, http.StatusCreated, authResponse{
			Message:   registerMessage(role),
			JWT:       jwtPayload{Refresh: result.Tokens.Refresh, Access: result.Tokens.Access},
			LastLogin: nil,
			Email:     result.Account.Email,
			Redirect:  redirectFor(role),
		})
	}
}

// Login returns the login handler for the given role.
func (h *AccountsHandler) Login(role accounts.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, r, http.StatusBadRequest, "Invalid JSON format in request body", err)
			return
		}

		result, err := h.service.Login(r.Context(), accounts.LoginParams{
			Email:    req.Email,
			Password: req.Password,
			Role:     role,
		})
		if err != nil {
			h.writeLoginError(w, r, role, err)
			return
		}

		var lastLogin *string
		if result.LastLogin != nil {
			formatted := result.LastLogin.Format(time.RFC3339)
			lastLogin = &formatted
		}

		respond.JSON(w, http.StatusOK, authResponse{
			Message:   "Logged in successfully",
			JWT:       jwtPayload{Refresh: result.Tokens.Refresh, Access: result.Tokens.Access},
			LastLogin: lastLogin,
			Email:     result.Account.Email,
			Redirect:  redirectFor(role),
		})
	}
}

func (h *AccountsHandler) writeRegisterError(w http.ResponseWriter, r *http.Request, err error) {
	var validation accounts.ValidationError
	if errors.As(err, &validation) {
		respond.Error(w, r, http.StatusBadRequest, validation.Message, err)
		return
	}
	respond.Internal(w, r, err, h.env)
}

func (h *AccountsHandler) writeLoginError(w http.ResponseWriter, r *http.Request, role accounts.Role, err error) {
	var validation accounts.ValidationError
	if errors.As(err, &validation) {
		respond.Error(w, r, http.StatusBadRequest, validation.Message, err)
		return
	}

	var unknownEmail accounts.UnknownEmailError
	if errors.As(err, &unknownEmail) {
		message := fmt.Sprintf("Invalid email. No account found with email: %s", unknownEmail.Email)
		respond.Error(w, r, http.StatusUnauthorized, message, err)
		return
	}

	var invalidPassword accounts.InvalidPasswordError
	if errors.As(err, &invalidPassword) {
		metrics.LoginFailuresTotal.WithLabelValues(string(role)).Inc()
		message := fmt.Sprintf("Invalid password. %d attempts remaining before account deactivation", invalidPassword.Remaining)
		respond.Error(w, r, http.StatusUnauthorized, message, err)
		return
	}

	switch {
	case errors.Is(err, accounts.ErrAccountLocked):
		respond.Error(w, r, http.StatusForbidden,
			"Account has been deactivated due to too many failed login attempts. Contact the administrator.", err)
	case errors.Is(err, accounts.ErrAccountNowLocked):
		metrics.LoginFailuresTotal.WithLabelValues(string(role)).Inc()
		metrics.AccountLockoutsTotal.WithLabelValues(string(role)).Inc()
		respond.Error(w, r, http.StatusForbidden,
			"Account has been deactivated due to too many failed attempts. Contact the administrator.", err)
	case errors.Is(err, accounts.ErrAccountInactive):
		respond.Error(w, r, http.StatusForbidden, "Account is inactive. Contact the administrator.", err)
	case errors.Is(err, accounts.ErrInvalidRecord):
		message := "Invalid user data"
		if role == accounts.RoleAdmin {
			message = "Invalid admin data"
		}
		respond.Error(w, r, http.StatusInternalServerError, message, err)
	default:
		respond.Internal(w, r, err, h.env)
	}
}
