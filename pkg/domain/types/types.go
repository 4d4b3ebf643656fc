package types

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"regexp"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type (
	// UserID is the user identifier issued by the external identity provider.
	UserID       string
	Username     string
	RepositoryID string
	CommitHash   string
	ContentHash  string
	Visibility   string
	RequestID    string

	GoogleProjectID string
	BQDatasetID     string
	BQTableID       string
)

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (x UserID) String() string       { return string(x) }
func (x Username) String() string     { return string(x) }
func (x RepositoryID) String() string { return string(x) }
func (x CommitHash) String() string   { return string(x) }
func (x ContentHash) String() string  { return string(x) }
func (x RequestID) String() string    { return string(x) }

func (x GoogleProjectID) String() string { return string(x) }
func (x BQDatasetID) String() string     { return string(x) }
func (x BQTableID) String() string       { return string(x) }

func NewRepositoryID() RepositoryID {
	return RepositoryID(uuid.NewString())
}

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

var ptnRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// ParseRequestID accepts a request ID issued by an upstream proxy
func ParseRequestID(s string) (RequestID, bool) {
	if !ptnRequestID.MatchString(s) {
		return "", false
	}
	return RequestID(s), true
}

func (x Visibility) Validate() error {
	switch x {
	case VisibilityPublic, VisibilityPrivate:
		return nil
	default:
		return goerr.Wrap(ErrValidationFailed, "invalid visibility", goerr.V("visibility", x))
	}
}

var ptnHash = regexp.MustCompile(`^[0-9a-f]{64}$`)

// HashContent returns the content address of data.
func HashContent(data []byte) ContentHash {
	sum := sha256.Sum256(data)
	return ContentHash(hex.EncodeToString(sum[:]))
}

func (x ContentHash) Validate() error {
	if !ptnHash.MatchString(string(x)) {
		return goerr.Wrap(ErrValidationFailed, "invalid content hash", goerr.V("hash", x))
	}
	return nil
}

func (x CommitHash) Validate() error {
	if !ptnHash.MatchString(string(x)) {
		return goerr.Wrap(ErrValidationFailed, "invalid commit hash", goerr.V("hash", x))
	}
	return nil
}

// WebhookSecret is the signing secret of identity provider webhooks.
type WebhookSecret string

func (x WebhookSecret) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x WebhookSecret) String() string {
	return "***********"
}

// PostgresDSN may carry a password.
type PostgresDSN string

func (x PostgresDSN) LogValue() slog.Value {
	if x == "" {
		return slog.StringValue("")
	}
	return slog.StringValue("***********")
}

type RedisPassword string

func (x RedisPassword) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x RedisPassword) String() string {
	return "***********"
}
