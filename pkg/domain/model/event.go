package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

// IdentityEvent is a webhook notification from the identity provider
type IdentityEvent struct {
	Type string           `json:"type"`
	Data IdentityUserData `json:"data"`
}

const (
	IdentityEventUserCreated = "user.created"
	IdentityEventUserUpdated = "user.updated"
)

// IsUserSync reports whether the event carries a user to upsert
func (x *IdentityEvent) IsUserSync() bool {
	return x.Type == IdentityEventUserCreated || x.Type == IdentityEventUserUpdated
}

type IdentityUserData struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ImageURL        string `json:"image_url"`
	ProfileImageURL string `json:"profile_image_url"`
	EmailAddresses  []struct {
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
}

// ToUser converts the event payload into a user record. Timestamps are left to the directory.
func (x *IdentityUserData) ToUser() (*User, error) {
	if x.ID == "" {
		return nil, goerr.Wrap(types.ErrValidationFailed, "user ID is empty in identity event")
	}

	user := &User{
		ID:        types.UserID(x.ID),
		Username:  types.Username(x.Username),
		FirstName: x.FirstName,
		LastName:  x.LastName,
		AvatarURL: x.ImageURL,
	}
	if user.Username == "" {
		user.Username = FallbackUsername(user.ID)
	}
	if user.AvatarURL == "" {
		user.AvatarURL = x.ProfileImageURL
	}
	if len(x.EmailAddresses) > 0 {
		user.Email = x.EmailAddresses[0].EmailAddress
	}

	return user, nil
}

// CommitEvent is the analytics record exported for each accepted commit
type CommitEvent struct {
	CommitHash   types.CommitHash   `bigquery:"commit_hash" json:"commit_hash"`
	ParentHash   types.CommitHash   `bigquery:"parent_hash" json:"parent_hash"`
	TreeHash     types.ContentHash  `bigquery:"tree_hash" json:"tree_hash"`
	RepositoryID types.RepositoryID `bigquery:"repository_id" json:"repository_id"`
	Owner        types.Username     `bigquery:"owner" json:"owner"`
	Repository   string             `bigquery:"repository" json:"repository"`
	AuthorID     types.UserID       `bigquery:"author_id" json:"author_id"`
	AuthorName   string             `bigquery:"author_name" json:"author_name"`
	Message      string             `bigquery:"message" json:"message"`
	ChangedFiles int                `bigquery:"changed_files" json:"changed_files"`
	Timestamp    time.Time          `bigquery:"timestamp" json:"timestamp"`
}

// InsertID deduplicates retried exports of the same commit
func (x *CommitEvent) InsertID() string {
	return x.RepositoryID.String() + ":" + x.CommitHash.String()
}
