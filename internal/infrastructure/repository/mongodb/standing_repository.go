package mongodb

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/minicrushers/minitracker/internal/domain/standing"
	"github.com/minicrushers/minitracker/internal/platform/logging"
	"github.com/minicrushers/minitracker/internal/usecase"
)

type standingDocument struct {
	Username  string `bson:"username"`
	Wins      int    `bson:"wins"`
	WinStreak int    `bson:"win_streak"`
}

// StandingRepository keeps one document per player in the winners collection.
type StandingRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

func (r *StandingRepository) RecordWin(ctx context.Context, username string) error {
	if username == "" {
		return errors.Wrap(usecase.ErrInvalidInput, "empty winner username")
	}

	filter := bson.M{"username": username}
	update := bson.M{"$inc": bson.M{"wins": 1, "win_streak": 1}}
	if _, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return errors.Wrapf(usecase.ErrStoreOperation, "record win username=%s collection=%s: %v", username, winnersCollection, err)
	}

	reset := bson.M{"$set": bson.M{"win_streak": 0}}
	if _, err := r.collection.UpdateMany(ctx, bson.M{"username": bson.M{"$ne": username}}, reset); err != nil {
		return errors.Wrapf(usecase.ErrStoreOperation, "reset streaks collection=%s: %v", winnersCollection, err)
	}
	return nil
}

func (r *StandingRepository) List(ctx context.Context) ([]standing.Record, error) {
	sort := bson.D{{Key: "wins", Value: -1}, {Key: "username", Value: 1}}
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, errors.Wrapf(usecase.ErrStoreOperation, "list collection=%s: %v", winnersCollection, err)
	}
	defer cursor.Close(ctx)

	var records []standing.Record
	for cursor.Next(ctx) {
		var doc standingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrapf(usecase.ErrStoreOperation, "decode collection=%s: %v", winnersCollection, err)
		}
		records = append(records, standing.Record{
			Username:  doc.Username,
			Wins:      doc.Wins,
			WinStreak: doc.WinStreak,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrapf(usecase.ErrStoreOperation, "cursor collection=%s: %v", winnersCollection, err)
	}
	return records, nil
}
