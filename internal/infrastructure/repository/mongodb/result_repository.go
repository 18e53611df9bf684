package mongodb

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/minicrushers/minitracker/internal/domain/result"
	"github.com/minicrushers/minitracker/internal/platform/logging"
	"github.com/minicrushers/minitracker/internal/usecase"
)

type resultDocument struct {
	Date    string         `bson:"date"`
	Weekday int            `bson:"weekday"`
	Entries map[string]int `bson:"entries"`
}

func (d resultDocument) toDomain() (result.DailyResult, error) {
	date, err := time.ParseInLocation(result.DateLayout, d.Date, time.UTC)
	if err != nil {
		return result.DailyResult{}, errors.Wrapf(usecase.ErrStoreOperation, "malformed stored date %q: %v", d.Date, err)
	}
	return result.DailyResult{Date: date, Weekday: d.Weekday, Entries: result.Entries(d.Entries)}, nil
}

func toDocument(day result.DailyResult) resultDocument {
	return resultDocument{
		Date:    day.Date.Format(result.DateLayout),
		Weekday: day.Weekday,
		Entries: day.Entries,
	}
}

// ResultRepository persists one document per puzzle day in the times collection.
type ResultRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

func (r *ResultRepository) GetByDate(ctx context.Context, date time.Time) (result.DailyResult, bool, error) {
	key := result.Normalize(date).Format(result.DateLayout)

	var doc resultDocument
	err := r.collection.FindOne(ctx, bson.M{"date": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return result.DailyResult{}, false, nil
	}
	if err != nil {
		return result.DailyResult{}, false, errors.Wrapf(usecase.ErrStoreOperation, "find date=%s collection=%s: %v", key, timesCollection, err)
	}

	day, err := doc.toDomain()
	if err != nil {
		return result.DailyResult{}, false, err
	}
	return day, true, nil
}

func (r *ResultRepository) Upsert(ctx context.Context, day result.DailyResult) (result.DailyResult, result.ChangeSet, error) {
	if err := day.Validate(); err != nil {
		return result.DailyResult{}, nil, err
	}

	existing, found, err := r.GetByDate(ctx, day.Date)
	if err != nil {
		return result.DailyResult{}, nil, err
	}

	key := day.Date.Format(result.DateLayout)

	if !found {
		if _, err := r.collection.InsertOne(ctx, toDocument(day)); err != nil {
			return result.DailyResult{}, nil, errors.Wrapf(usecase.ErrStoreOperation, "insert date=%s collection=%s: %v", key, timesCollection, err)
		}
		return day, result.Diff(nil, day.Entries), nil
	}

	if existing.Entries.Equal(day.Entries) {
		return existing, result.ChangeSet{}, nil
	}

	update := bson.M{"$set": bson.M{"weekday": day.Weekday, "entries": day.Entries}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"date": key}, update); err != nil {
		return result.DailyResult{}, nil, errors.Wrapf(usecase.ErrStoreOperation, "update date=%s collection=%s: %v", key, timesCollection, err)
	}
	return day, result.Diff(existing.Entries, day.Entries), nil
}

func (r *ResultRepository) ListHistory(ctx context.Context) ([]result.DailyResult, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, errors.Wrapf(usecase.ErrStoreOperation, "list collection=%s: %v", timesCollection, err)
	}
	defer cursor.Close(ctx)

	var history []result.DailyResult
	for cursor.Next(ctx) {
		var doc resultDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrapf(usecase.ErrStoreOperation, "decode collection=%s: %v", timesCollection, err)
		}
		day, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		history = append(history, day)
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrapf(usecase.ErrStoreOperation, "cursor collection=%s: %v", timesCollection, err)
	}
	return history, nil
}
