package domain

import "errors"

// ErrUnknownMachine is returned when a machine kind is not registered.
var ErrUnknownMachine = errors.New("unknown machine")

// ErrUnknownRole is returned when a role name cannot be resolved.
var ErrUnknownRole = errors.New("unknown role")

// ErrInvalidBinding is returned when a button, key or modifier cannot be parsed.
var ErrInvalidBinding = errors.New("invalid binding")

// ErrInvalidEvent is returned when an event cannot be decoded or lacks required fields.
var ErrInvalidEvent = errors.New("invalid event")

// ErrSessionNotFound is returned when a session ID cannot be found.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExists is returned when creating a session whose ID is taken.
var ErrSessionExists = errors.New("session already exists")
