package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

// User is a platform user mirrored from the identity provider
type User struct {
	ID          types.UserID   `json:"id" firestore:"id"`
	Username    types.Username `json:"username" firestore:"username"`
	Email       string         `json:"email" firestore:"email"`
	FirstName   string         `json:"firstName,omitempty" firestore:"first_name"`
	LastName    string         `json:"lastName,omitempty" firestore:"last_name"`
	DisplayName string         `json:"displayName,omitempty" firestore:"display_name"`
	AvatarURL   string         `json:"avatarUrl,omitempty" firestore:"avatar_url"`
	CreatedAt   time.Time      `json:"createdAt" firestore:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" firestore:"updated_at"`
}

// Identity is the authenticated caller supplied by the identity provider gateway
type Identity struct {
	ID       types.UserID
	Username types.Username
}

func (x Identity) IsZero() bool {
	return x.ID == ""
}

// FallbackUsername builds a temporary username for users who did not pick one
func FallbackUsername(id types.UserID) types.Username {
	s := string(id)
	if len(s) > 8 {
		s = s[len(s)-8:]
	}
	return types.Username("user_" + s)
}

const maxDisplayNameLength = 100

type UpdateDisplayNameInput struct {
	Caller      Identity
	DisplayName string
}

func (x *UpdateDisplayNameInput) Validate() error {
	if x.Caller.IsZero() {
		return goerr.Wrap(types.ErrUnauthenticated, "caller identity is required")
	}
	if len([]rune(x.DisplayName)) > maxDisplayNameLength {
		return goerr.Wrap(types.ErrValidationFailed, "display name is too long",
			goerr.V("length", len([]rune(x.DisplayName))),
			goerr.V("max", maxDisplayNameLength),
		)
	}
	return nil
}
