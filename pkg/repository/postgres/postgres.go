package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"

	"github.com/lib/pq"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/interfaces"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Repository is a PostgreSQL backed Directory and CommitRepository
type Repository struct {
	db *sql.DB
}

var (
	_ interfaces.Directory        = (*Repository)(nil)
	_ interfaces.CommitRepository = (*Repository)(nil)
)

// New connects to PostgreSQL. Schema is not touched; run Migrate for that.
func New(ctx context.Context, dsn types.PostgresDSN) (*Repository, error) {
	db, err := sql.Open("postgres", string(dsn))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open postgres connection")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to ping postgres")
	}

	return NewWithDB(db), nil
}

func NewWithDB(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Close() error {
	if err := r.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close postgres connection")
	}
	return nil
}

// Migrate applies all pending schema migrations
func (r *Repository) Migrate() error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return goerr.Wrap(err, "failed to set goose dialect")
	}
	if err := goose.Up(r.db, "migrations"); err != nil {
		return goerr.Wrap(err, "failed to apply migrations")
	}
	return nil
}

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
