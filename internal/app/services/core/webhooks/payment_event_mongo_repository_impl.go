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

type PaymentEventMongoRepository struct {
	Collection *mongo.Collection
}

// NewPaymentEventMongoRepository ensures the unique index on event_id that
// makes InsertIdempotent safe against concurrent redelivery.
func NewPaymentEventMongoRepository(db *mongo.Client, dbName string) (contracts.PaymentEventRepository, error) {
	collection := db.Database(dbName).Collection(constvars.MongoCollectionPaymentEvents)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "event_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}

	return &PaymentEventMongoRepository{Collection: collection}, nil
}

func (r *PaymentEventMongoRepository) InsertIdempotent(ctx context.Context, event *models.PaymentEvent) (bool, error) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	_, err := r.Collection.InsertOne(ctx, event)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, exceptions.ErrMongoDBInsertDocument(err)
	}
	return true, nil
}

// MarkStatusByChargeID stamps a charge-level follow-up (refund, dispute) on
// the event row holding that charge. Matching nothing is fine: the charge may
// predate this service.
func (r *PaymentEventMongoRepository) MarkStatusByChargeID(ctx context.Context, chargeID, status string) error {
	_, err := r.Collection.UpdateOne(ctx,
		bson.M{"stripe_charge_id": chargeID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
