// Copyright (c) 2026 SmoothStack. All rights reserved.
// Author: vincent.owuor@smoothstack.dev

package auth

import "time"

// # Authentication Constraints

const (
	// MaxLoginAttempts is the number of failed logins allowed per email
	// within the throttle window before further attempts are rejected.
	MaxLoginAttempts = 10

	// LoginThrottleWindow is the duration a failed-attempt counter lives in
	// Redis. The counter is cleared early on a successful login.
	LoginThrottleWindow = 15 * time.Minute

	// UsernameMinLength is the shortest accepted username.
	UsernameMinLength = 3

	// UsernameMaxLength is the longest accepted username.
	UsernameMaxLength = 50

	// PasswordMinLength is the shortest accepted password.
	PasswordMinLength = 8
)
