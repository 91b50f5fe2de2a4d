package model

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNumberTaken is returned when a contact number is already registered.
	ErrNumberTaken = errors.New("number already registered")

	// ErrEmailTaken is returned when an account with the email already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidNumber is returned when a contact number is empty or contains
	// non-digit characters.
	ErrInvalidNumber = errors.New("invalid contact number")

	// ErrInvalidInput is returned when a required field is blank or malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials is returned when email/password verification fails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrBusy is returned when another operation for the same session is
	// already in flight.
	ErrBusy = errors.New("operation already in progress")

	// ErrUpload is returned when a blob upload fails.
	ErrUpload = errors.New("upload failed")
)
