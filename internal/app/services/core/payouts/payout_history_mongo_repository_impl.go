package payouts

import (
	"context"
	"studiobook-service/internal/app/contracts"
	"studiobook-service/internal/app/models"
	"studiobook-service/internal/pkg/constvars"
	"studiobook-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PayoutHistoryMongoRepository struct {
	Collection *mongo.Collection
}

func NewPayoutHistoryMongoRepository(db *mongo.Client, dbName string) contracts.PayoutHistoryRepository {
	return &PayoutHistoryMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPayoutHistory),
	}
}

func (r *PayoutHistoryMongoRepository) Insert(ctx context.Context, record *models.PayoutHistory) (string, error) {
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Collection.InsertOne(ctx, record)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return record.ID, nil
}

func (r *PayoutHistoryMongoRepository) FindByPayeeID(ctx context.Context, payeeID string, page, pageSize int) ([]models.PayoutHistory, int, error) {
	filter := bson.M{"payee_id": payeeID}

	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	if page < 1 {
		page = 1
	}
	findOptions := options.Find().
		SetSort(bson.M{"payout_date": -1}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var records []models.PayoutHistory
	if err := cursor.All(ctx, &records); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return records, int(total), nil
}
