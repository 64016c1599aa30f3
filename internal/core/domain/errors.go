package domain

import "errors"

// Domain rule violations. Services return these (optionally wrapped); the
// HTTP layer maps each to a status code and message.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrGameNotFound    = errors.New("game not found")
	ErrRequestNotFound = errors.New("friend request not found")

	ErrUserExists = errors.New("username or phone number already taken")
	ErrGameExists = errors.New("game name already taken")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAccountLocked      = errors.New("account is locked")
	ErrForbidden          = errors.New("access forbidden")

	ErrSelfReference    = errors.New("cannot target yourself")
	ErrAlreadyConnected = errors.New("already friends or request pending")
	ErrNotFriends       = errors.New("recipient is not a friend")

	ErrInvalidAmount       = errors.New("amount must be a positive integer")
	ErrInsufficientBalance = errors.New("insufficient turn balance")

	ErrLastAdmin = errors.New("at least one admin account must remain")

	ErrDisplayNameLocked = errors.New("display name can only be changed once every 30 days")
	ErrInvalidOTP        = errors.New("verification code is invalid or expired")
)
