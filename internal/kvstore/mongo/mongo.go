// Package mongo provides a kvstore backend on a MongoDB collection, for
// setups where the ledger record should live off the local machine.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

type record struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// New connects to MongoDB and pings it before returning the store.
func New(ctx context.Context, uri, dbName, collName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	return &Store{
		client:     client,
		collection: client.Database(dbName).Collection(collName),
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Load(ctx context.Context, key string) (string, bool, error) {
	var rec record
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load key %s: %w", key, err)
	}
	return rec.Value, true, nil
}

func (s *Store) Save(ctx context.Context, key, value string) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": key}, record{Key: key, Value: value}, opts)
	if err != nil {
		return fmt.Errorf("save key %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return fmt.Errorf("remove key %s: %w", key, err)
	}
	return nil
}
