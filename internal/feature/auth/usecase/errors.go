// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateIdentity is returned when the username or email is already taken.
	ErrDuplicateIdentity = errors.New("username or email already exists")

	// ErrAccountNotFound is returned by Login when no account uses the email.
	ErrAccountNotFound = errors.New("no account with this email")

	// ErrInvalidCredentials is returned by Login when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInactiveAccount is returned by Login for a deactivated account.
	ErrInactiveAccount = errors.New("account is inactive")

	// ErrWrongPassword is returned by ChangePassword when the old password does not match.
	ErrWrongPassword = errors.New("old password is not correct")

	// ErrPasswordTooLong is returned when a new password exceeds MaxPasswordBytes.
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)
