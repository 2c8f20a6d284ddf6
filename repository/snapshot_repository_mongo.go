package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"debt-tracker/domain"
)

const snapshotsCollection = "snapshots"

type snapshotDocument struct {
	Key       string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoSnapshotRepository keeps one document per snapshot key.
type MongoSnapshotRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	now        func() time.Time
}

func NewMongoSnapshotRepository(collection *mongo.Collection) *MongoSnapshotRepository {
	return &MongoSnapshotRepository{
		collection: collection,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// OpenMongo connects to uri and uses the snapshots collection of database.
func OpenMongo(ctx context.Context, uri, database string) (*MongoSnapshotRepository, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(20 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	repo := NewMongoSnapshotRepository(client.Database(database).Collection(snapshotsCollection))
	repo.client = client
	return repo, nil
}

func (r *MongoSnapshotRepository) Save(ctx context.Context, key string, backup domain.Backup) error {
	payload, err := json.Marshal(backup)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	doc := snapshotDocument{Key: key, Payload: string(payload), UpdatedAt: r.now()}
	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}

func (r *MongoSnapshotRepository) Load(ctx context.Context, key string) (domain.Backup, error) {
	var doc snapshotDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Backup{}, ErrSnapshotNotFound
	}
	if err != nil {
		return domain.Backup{}, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	return decodeSnapshot([]byte(doc.Payload))
}

func (r *MongoSnapshotRepository) Delete(ctx context.Context, key string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return fmt.Errorf("delete snapshot %q: %w", key, err)
	}
	if res.DeletedCount == 0 {
		return ErrSnapshotNotFound
	}
	return nil
}

func (r *MongoSnapshotRepository) Close() error {
	if r.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}
