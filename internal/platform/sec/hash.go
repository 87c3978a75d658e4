// Copyright (c) 2026 SmoothStack. All rights reserved.
// Author: vincent.owuor@smoothstack.dev

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// # Password Hashing Parameters

const (
	// saltSize is the length of the random salt in bytes.
	saltSize = 16

	// keySize is the length of the derived key in bytes.
	keySize = 32

	// iterations is the PBKDF2 round count. This is a floor, not a ceiling:
	// raising it invalidates no stored hash because the parameters are fixed
	// for the whole blob format, but any future change must keep old blobs
	// readable or trigger a migration of all stored hashes.
	iterations = 10000
)

// HashPassword derives a storable representation of a plain-text password.
//
// # Format
//
// The output is base64(salt || derivedKey): a 16-byte random salt followed
// by a 32-byte PBKDF2-SHA256 key. The blob is opaque to every other layer
// and self-describing for verification.
//
// The only failure mode is an unavailable secure randomness source.
func HashPassword(plainTextPassword string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("sec: secure random source unavailable: %w", err)
	}

	derivedKey := pbkdf2.Key([]byte(plainTextPassword), salt, iterations, keySize, sha256.New)

	blob := make([]byte, 0, saltSize+keySize)
	blob = append(blob, salt...)
	blob = append(blob, derivedKey...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// CheckPasswordHash compares a plain-text password with its stored blob.
//
// It fails closed: malformed, truncated, or undecodable blobs return false
// exactly like a wrong password, so callers never learn whether the record
// was corrupt or the candidate was wrong.
//
// The derived-key comparison is constant-time to avoid timing side channels.
func CheckPasswordHash(plainTextPassword, encodedHash string) bool {
	blob, err := base64.StdEncoding.DecodeString(encodedHash)
	if err != nil {
		return false
	}

	if len(blob) != saltSize+keySize {
		return false
	}

	salt := blob[:saltSize]
	storedKey := blob[saltSize:]

	computedKey := pbkdf2.Key([]byte(plainTextPassword), salt, iterations, keySize, sha256.New)

	return subtle.ConstantTimeCompare(storedKey, computedKey) == 1
}
