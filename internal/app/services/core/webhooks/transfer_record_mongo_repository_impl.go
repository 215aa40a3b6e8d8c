package webhooks

import (
	"context"
	"studiobook-service/internal/app/contracts"
	"studiobook-service/internal/app/models"
	"studiobook-service/internal/pkg/constvars"
	"studiobook-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TransferRecordMongoRepository struct {
	Collection *mongo.Collection
}

func NewTransferRecordMongoRepository(db *mongo.Client, dbName string) (contracts.TransferRecordRepository, error) {
	collection := db.Database(dbName).Collection(constvars.MongoCollectionTransferRecords)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "stripe_transfer_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}

	return &TransferRecordMongoRepository{Collection: collection}, nil
}

func (r *TransferRecordMongoRepository) InsertIdempotent(ctx context.Context, record *models.TransferRecord) (bool, error) {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	_, err := r.Collection.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, exceptions.ErrMongoDBInsertDocument(err)
	}
	return true, nil
}
