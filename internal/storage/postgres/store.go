// Package postgres implements the repositories on PostgreSQL.
package postgres

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/victornm/solarium/internal/errors"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

type Store struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// DSN builds a connection URL for the given scheme, "postgres" for pgx and "pgx5" for migrations.
func DSN(scheme, addr, user, pass, name string) string {
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(user, pass),
		Host:     addr,
		Path:     "/" + name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Connect opens a pool and checks that the database answers.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	db, err := pgxpool.NewWithConfig(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("new pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return db, nil
}

// convert maps driver errors to service errors. what names the missing row in NotFound messages.
func convert(err error, what string, args ...any) error {
	if err == nil {
		return nil
	}

	if stderrors.Is(err, pgx.ErrNoRows) {
		return errors.New(errors.CodeNotFound,
			errors.WithMessagef(what+" not found", args...),
			errors.WithCause(err),
		)
	}

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return errors.New(errors.CodeAlreadyExists, errors.WithCause(err))
		case codeForeignKeyViolation:
			return errors.New(errors.CodeNotFound,
				errors.WithMessagef("quiz not found"),
				errors.WithCause(err),
			)
		}
	}

	return err
}

// mustAffect turns an update or delete that touched no row into NotFound.
func mustAffect(tag pgconn.CommandTag, err error, what string, args ...any) error {
	if err != nil {
		return convert(err, what, args...)
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound(what+" not found", args...)
	}
	return nil
}
