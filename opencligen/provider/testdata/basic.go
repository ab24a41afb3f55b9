// Package testdata holds declarations loaded by the source provider
// tests.
package testdata

import "time"

// User is an account holder visible to other users.
type User struct {
	// ID identifies the user.
	ID int64 `json:"id" opencli:"min=1"`

	Name string `json:"name" opencli:"minlen=1"`

	Email *string `json:"email,omitempty" opencli:"format=email"`

	CreatedAt time.Time `json:"created_at"`

	Avatar []byte `json:"avatar,omitempty"`

	Tags []string `json:"tags"`

	Metadata map[string]string `json:"metadata,omitempty"`

	Manager *User `json:"manager,omitempty" opencli:"norecurse"`

	Internal string `json:"-"`

	password string
}

// Status is the lifecycle state of a user.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusDeleted   Status = "deleted"
)

// Token is an opaque credential string.
type Token string

// Legacy is an old user shape kept for wire compatibility.
//
// Deprecated: use User.
type Legacy struct {
	ID string `json:"id"`
}
