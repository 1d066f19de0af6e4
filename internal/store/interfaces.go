// Package store provides access to the bot's records in Firebase
// Realtime Database. The Store interface enables dependency inversion
// and facilitates testing by decoupling handlers from the concrete
// Firebase-backed implementation.
package store

import (
	"context"
)

// Store defines the record operations used by the bot.
//
// All records are addressed by the sender identifier (a phone-number-like
// string) except classes, which are keyed by (department, course code).
type Store interface {
	// Student retrieves the student record, or nil if absent.
	Student(ctx context.Context, id string) (*Student, error)

	// SetStudent overwrites the student record wholesale.
	SetStudent(ctx context.Context, id string, student *Student) error

	// IsAdmin reports whether admins/{id} holds the boolean true sentinel.
	// Any other value, including truthy strings, does not grant admin.
	IsAdmin(ctx context.Context, id string) (bool, error)

	// Classes retrieves all class records for a department, keyed by
	// course code. Entries that do not decode as records are skipped.
	// Returns an empty map when the department has no classes.
	Classes(ctx context.Context, department string) (map[string]ClassRecord, error)

	// SetClass overwrites the class record wholesale (full replace, not merge).
	SetClass(ctx context.Context, department, courseCode string, record *ClassRecord) error

	// Introduced reports whether a welcome message was already sent.
	Introduced(ctx context.Context, id string) (bool, error)

	// SetIntroduced marks the sender as welcomed.
	SetIntroduced(ctx context.Context, id string) error
}

// Ensure Client implements the Store interface at compile time.
var _ Store = (*Client)(nil)
