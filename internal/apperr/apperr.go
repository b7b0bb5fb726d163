// Package apperr holds the typed business-rule failures returned by the
// booking core. None of them are transient; callers surface them as-is.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound              Kind = "not_found"
	KindInvalidWindow         Kind = "invalid_window"
	KindAvailabilityViolation Kind = "availability_violation"
	KindResourceConflict      Kind = "resource_conflict"
	KindCapacityExceeded      Kind = "capacity_exceeded"
	KindDuplicateRegistration Kind = "duplicate_registration"
	KindOwnershipViolation    Kind = "ownership_violation"
)

// Resource is the shared resource two commitments collide on.
type Resource string

const (
	ResourceRoom    Resource = "room"
	ResourceTrainer Resource = "trainer"
	ResourceMember  Resource = "member"
)

// Entity is the type of the already persisted commitment.
type Entity string

const (
	EntityPrivateSession Entity = "private_session"
	EntityClass          Entity = "class"
	EntityAvailability   Entity = "availability_window"
)

// Sentinels for errors.Is matching on kind only.
var (
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrInvalidWindow         = &Error{Kind: KindInvalidWindow}
	ErrAvailabilityViolation = &Error{Kind: KindAvailabilityViolation}
	ErrResourceConflict      = &Error{Kind: KindResourceConflict}
	ErrCapacityExceeded      = &Error{Kind: KindCapacityExceeded}
	ErrDuplicateRegistration = &Error{Kind: KindDuplicateRegistration}
	ErrOwnershipViolation    = &Error{Kind: KindOwnershipViolation}
)

type Error struct {
	Kind    Kind
	Message string

	// Set for KindResourceConflict only.
	Resource   Resource
	Entity     Entity
	ConflictID int
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works
// regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Code is the stable machine-readable identifier of the failure.
func (e *Error) Code() string {
	if e.Kind == KindResourceConflict && e.Resource != "" {
		return ConflictCode(e.Resource, e.Entity)
	}
	return string(e.Kind)
}

// ConflictCode names one of the ordered conflict checks, e.g. "room_class_conflict".
func ConflictCode(r Resource, en Entity) string {
	suffix := "session"
	switch en {
	case EntityClass:
		suffix = "class"
	case EntityAvailability:
		suffix = "availability"
	}
	return fmt.Sprintf("%s_%s_conflict", r, suffix)
}

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func InvalidWindow(msg string) *Error {
	return &Error{Kind: KindInvalidWindow, Message: msg}
}

func AvailabilityViolation(msg string) *Error {
	return &Error{Kind: KindAvailabilityViolation, Message: msg}
}

func Conflict(r Resource, en Entity, conflictID int) *Error {
	var msg string
	switch en {
	case EntityClass:
		msg = fmt.Sprintf("%s is already committed to class %d in that time", r, conflictID)
	default:
		msg = fmt.Sprintf("%s is already booked for private session %d in that time", r, conflictID)
	}
	return &Error{
		Kind:       KindResourceConflict,
		Message:    msg,
		Resource:   r,
		Entity:     en,
		ConflictID: conflictID,
	}
}

// AvailabilityOverlap reports that a trainer availability window touches or
// overlaps window conflictID on the same weekday.
func AvailabilityOverlap(conflictID int) *Error {
	return &Error{
		Kind:       KindResourceConflict,
		Message:    fmt.Sprintf("availability window overlaps existing window %d", conflictID),
		Resource:   ResourceTrainer,
		Entity:     EntityAvailability,
		ConflictID: conflictID,
	}
}

func CapacityExceeded(msg string) *Error {
	return &Error{Kind: KindCapacityExceeded, Message: msg}
}

func DuplicateRegistration(msg string) *Error {
	return &Error{Kind: KindDuplicateRegistration, Message: msg}
}

func OwnershipViolation(msg string) *Error {
	return &Error{Kind: KindOwnershipViolation, Message: msg}
}

// As extracts the *Error from err, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, or "" when err is not a business failure.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return ""
}
