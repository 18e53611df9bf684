package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/minicrushers/minitracker/internal/platform/logging"
	"github.com/minicrushers/minitracker/internal/usecase"
)

// Store owns the sqlx handle and hands out table-backed repositories.
type Store struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func Connect(ctx context.Context, url string, logger *logging.Logger) (*Store, error) {
	db, err := otelsqlx.Open("postgres", url, otelsql.WithDBSystem("postgresql"))
	if err != nil {
		return nil, errors.Wrap(usecase.ErrStoreConnectivity, err.Error())
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(usecase.ErrStoreConnectivity, err.Error())
	}

	logger.InfoContext(ctx, "connected to postgres")

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}

func (s *Store) Results() *ResultRepository {
	return &ResultRepository{db: s.db, logger: s.logger}
}

func (s *Store) Standings() *StandingRepository {
	return &StandingRepository{db: s.db, logger: s.logger}
}
