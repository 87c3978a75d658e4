// Copyright (c) 2026 SmoothStack. All rights reserved.
// Author: vincent.owuor@smoothstack.dev

/*
Package auth implements the core identity and access management system.

It handles user registration, secure password hashing, and stateless session
issuance via signed JWT access tokens.

Architecture:

  - Service: Orchestrates business logic (Register, Login, ListUsers).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Attempts).
  - Security: PBKDF2-SHA256 password hashing and HMAC-signed JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/owuorvin/task-management-backend/internal/platform/apperr"
	"github.com/owuorvin/task-management-backend/internal/platform/ctxutil"
	"github.com/owuorvin/task-management-backend/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - email: The email of the account.
	//   - role: The role of the account.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID int64, username, email, role string) (string, error)

	// ExpiresIn reports the lifetime of freshly issued access tokens.
	ExpiresIn() time.Duration
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository    UserRepository
	attemptRepository AttemptRepository
	tokenProvider     TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	attemptRepo AttemptRepository,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		userRepository:    userRepo,
		attemptRepository: attemptRepo,
		tokenProvider:     tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrollment of a new member, handling the combined uniqueness
probe and password hashing before the account is written.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *AuthResponse: Session credentials for the freshly created account
  - err: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*AuthResponse, error) {

	// Probe email and username uniqueness in a single lookup. A hit on either
	// column is a business rejection with a client-safe Conflict err.
	existing, err := service.userRepository.FindByEmailOrUsername(context, input.Email, input.Username)
	if err == nil {
		if existing.Email == input.Email {
			return nil, apperr.Conflict("Email is already registered")
		}
		return nil, apperr.Conflict("Username is already taken")
	}

	// Anything other than "no match" is a real storage problem
	if !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("auth_service_uniqueness_probe_failed: %w", err)
	}

	// Prevent storing plain-text passwords
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Every self-registered account starts as
	// a regular member; promotions happen elsewhere.
	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
	}

	// Persist the user to the database. The UNIQUE constraints close the race
	// between the probe and the insert, surfacing as a Conflict from the repo.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	// A fresh account is immediately usable: the response carries the same
	// session credentials a subsequent login would produce.
	token, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &AuthResponse{
		Token:     token,
		ExpiresIn: service.tokenProvider.ExpiresIn(),
		User:      user.View(),
	}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResponse represents a successfully established stateless session.
type AuthResponse struct {
	Token     string
	ExpiresIn time.Duration
	User      *UserView
}

/*
Login validates user credentials and issues a signed access token.

Description: Verifies identity by email, performs constant-time password
comparison, and enforces the per-email attempt throttle. Unknown email and
wrong password produce the exact same response to prevent enumeration.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *AuthResponse: Transport-ready session credentials
  - err: Unauthorized, RateLimited, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthResponse, error) {

	// Count this attempt against the per-email throttle window. Redis being
	// unavailable must never lock users out, so throttle errors fail open.
	attempts, err := service.attemptRepository.Increment(context, input.Email, LoginThrottleWindow)
	if err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "login_throttle_unavailable", "error", err)
	} else if attempts > MaxLoginAttempts {
		return nil, apperr.RateLimited(int(LoginThrottleWindow / time.Second))
	}

	// Look up the account by email only
	user, err := service.userRepository.FindByEmail(context, input.Email)

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	// Verify the password hash using a constant-time comparison. The failure
	// message is identical to the unknown-email case above.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	// Generate the stateless access token
	token, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Clear the attempt counter now that the credentials checked out
	if err := service.attemptRepository.Reset(context, input.Email); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "login_throttle_reset_failed", "error", err)
	}

	return &AuthResponse{
		Token:     token,
		ExpiresIn: service.tokenProvider.ExpiresIn(),
		User:      user.View(),
	}, nil
}

// # Directory

/*
ListUsers returns the public projection of every registered account.

Description: The directory intentionally strips credential material; only
the [UserView] fields ever leave this layer.

Parameters:
  - context: context.Context

Returns:
  - []*UserView: Public account projections ordered by ID
  - err: Storage failures
*/
func (service *Service) ListUsers(context context.Context) ([]*UserView, error) {
	users, err := service.userRepository.ListAll(context)
	if err != nil {
		return nil, fmt.Errorf("auth_service_list_users_failed: %w", err)
	}

	views := make([]*UserView, 0, len(users))
	for _, user := range users {
		views = append(views, user.View())
	}

	return views, nil
}

// # Task Directory Support

/*
FindUser resolves a single account by ID.

Description: Used by other domains (e.g. task assignment) to confirm that a
referenced user actually exists.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *User: Hydrated entity
  - err: apperr.NotFound or storage failures
*/
func (service *Service) FindUser(context context.Context, id int64) (*User, error) {
	return service.userRepository.FindByID(context, id)
}
