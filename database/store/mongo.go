package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	databaseName   = "slotbook"
	collectionName = "scheduler_state"
	documentID     = "scheduler"

	connectTimeout = 10 * time.Second
)

// ConnectMongo dials MongoDB at the given URI and verifies the connection.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// MongoStore keeps the entire scheduler document in a single MongoDB
// document with a fixed id, replaced wholesale on every write.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore returns a store backed by the given client.
func NewMongoStore(client *mongo.Client) *MongoStore {
	return &MongoStore{
		coll: client.Database(databaseName).Collection(collectionName),
	}
}

func (s *MongoStore) Fetch(ctx context.Context) (*models.Document, error) {
	var doc models.Document
	err := s.coll.FindOne(ctx, bson.M{"_id": documentID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scheduler document: %w", err)
	}
	doc.EnsureMaps()
	return &doc, nil
}

func (s *MongoStore) Write(ctx context.Context, doc *models.Document) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": documentID}, doc, opts); err != nil {
		return fmt.Errorf("failed to write scheduler document: %w", err)
	}
	return nil
}
