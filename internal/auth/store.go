// Copyright (c) 2026 SmoothStack. All rights reserved.
// Author: vincent.owuor@smoothstack.dev

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByEmailOrUsername returns the first account matching either field.

		Description: A single round-trip uniqueness probe used during
		registration. Matching is by exact equality on each column.

		Parameters:
		  - context: context.Context
		  - email: string
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmailOrUsername(context context.Context, email, username string) (*User, error)

	/*
		Create persists a brand-new user account and assigns its ID.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		ListAll returns every registered account ordered by ID.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*User: Hydrated entities
		  - error: Database retrieval failures
	*/
	ListAll(context context.Context) ([]*User, error)
}

// # Volatile Data Access

// AttemptRepository defines the contract for tracking failed login attempts.
type AttemptRepository interface {

	/*
		Increment bumps the failed-attempt counter for a key and returns
		the new count. The TTL is applied when the counter is first created.

		Parameters:
		  - context: context.Context
		  - key: string
		  - ttl: time.Duration

		Returns:
		  - int64: Counter value after the increment
		  - error: Storage failures
	*/
	Increment(context context.Context, key string, ttl time.Duration) (int64, error)

	/*
		Reset clears the failed-attempt counter for a key.

		Parameters:
		  - context: context.Context
		  - key: string

		Returns:
		  - error: Deletion failures
	*/
	Reset(context context.Context, key string) error
}
