package testdata

// Audited carries mutation timestamps shared by several types.
type Audited struct {
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Project is a named collection of work items.
type Project struct {
	Audited

	Name string `json:"name"`

	Status Status `json:"status"`

	Limits struct {
		MaxMembers int `json:"max_members"`
	} `json:"limits"`
}

// Page is one page of a listing.
type Page[T any] struct {
	Items []T    `json:"items"`
	Next  string `json:"next,omitempty"`
}

// UserPage is the page shape returned by user listings.
type UserPage struct {
	Page Page[User] `json:"page"`
}
