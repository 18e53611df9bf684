package mongodb

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/minicrushers/minitracker/internal/platform/logging"
	"github.com/minicrushers/minitracker/internal/usecase"
)

const (
	timesCollection   = "times"
	winnersCollection = "winners"
)

// Store owns the mongo client and hands out collection-backed repositories.
type Store struct {
	client   *mongo.Client
	database *mongo.Database
	logger   *logging.Logger
}

func Connect(ctx context.Context, uri, database string, logger *logging.Logger) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(usecase.ErrStoreConnectivity, err.Error())
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(usecase.ErrStoreConnectivity, err.Error())
	}

	logger.InfoContext(ctx, "connected to mongodb", "database", database)

	return &Store{
		client:   client,
		database: client.Database(database),
		logger:   logger,
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Results() *ResultRepository {
	return &ResultRepository{collection: s.database.Collection(timesCollection), logger: s.logger}
}

func (s *Store) Standings() *StandingRepository {
	return &StandingRepository{collection: s.database.Collection(winnersCollection), logger: s.logger}
}
