// Copyright (c) 2026 SmoothStack. All rights reserved.
// Author: vincent.owuor@smoothstack.dev

/*
Package auth provides the HTTP delivery layer for user identity management.

It implements the gateway for the credential lifecycle: account creation,
login, and the public account directory.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Issues stateless JWT access tokens.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/owuorvin/task-management-backend/internal/platform/middleware"
	requestutil "github.com/owuorvin/task-management-backend/internal/platform/request"
	"github.com/owuorvin/task-management-backend/internal/platform/respond"
	"github.com/owuorvin/task-management-backend/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the user lifecycle entry points
// (Registration, Login, Directory listing).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Authenticates and returns a JWT.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	return router
}

// UserRoutes returns a [chi.Router] for the authenticated account directory.
//
// # Endpoints
//   - GET / : Lists every registered account (public projections).
func (handler *Handler) UserRoutes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", handler.listUsers)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Description: Validates input, checks for identity conflicts, persists a new
user profile, and issues the first session token for the account.

Request:
  - Body: registerRequest (Username, Email, Password)

Response:
  - 201: AuthResponse: Access token and created user profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Username or Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, UsernameMinLength).
		MaxLen(FieldUsername, input.Username, UsernameMaxLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		"access_token": session.Token,
		"token_type":   "Bearer",
		"expires_in":   int64(session.ExpiresIn / time.Second),
		FieldUser:      session.User,
	})
}

/*
Login authenticates a user and issues a stateless session token.

POST /api/v1/auth/login

Description: Verifies credentials by email and returns a signed JWT access
token together with the public account profile.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: AuthResponse: Access token and User profile
  - 401: ErrUnauthorized: Invalid credentials
  - 429: ErrRateLimited: Attempt throttle exceeded
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"access_token": session.Token,
		"token_type":   "Bearer",
		"expires_in":   int64(session.ExpiresIn / time.Second),
		FieldUser:      session.User,
	})
}

/*
ListUsers returns the public account directory.

GET /api/v1/users

Description: Lists every registered account as a credential-free projection.
Requires an authenticated caller; any role may read the directory.

Response:
  - 200: []UserView: Public account profiles
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.authService.ListUsers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, users)
}
