package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrUserNotFound is returned when an update matched no user document.
var ErrUserNotFound = errors.New("user not found")

type Storage struct {
	client *mongo.Client
	users  *mongo.Collection
}

func New(ctx context.Context, uri, database, collection string) (*Storage, error) {
	const op = "storage.mongodb.New"

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s failed to connect: %w", op, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("%s failed to ping: %w", op, err)
	}

	return &Storage{
		client: client,
		users:  client.Database(database).Collection(collection),
	}, nil
}

// SetBlocked flips settings.hasBlocked on the user document matching the
// telegram id. The update is a partial $set, never a document replace, so
// the primary bot's own fields are left untouched.
func (s *Storage) SetBlocked(ctx context.Context, userID int64, blocked bool) error {
	const op = "storage.mongodb.SetBlocked"

	res, err := s.users.UpdateOne(ctx,
		bson.M{"telegramId": userID},
		bson.M{"$set": bson.M{"settings.hasBlocked": blocked}},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	return nil
}

func (s *Storage) Close(ctx context.Context) error {
	const op = "storage.mongodb.Close"

	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
