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

type BankPayoutMongoRepository struct {
	Collection *mongo.Collection
}

func NewBankPayoutMongoRepository(db *mongo.Client, dbName string) contracts.BankPayoutRepository {
	return &BankPayoutMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionBankPayouts),
	}
}

// Upsert keeps one row per stripe payout id. payout.paid after payout.failed
// (or the reverse) just refreshes the status on the same row.
func (r *BankPayoutMongoRepository) Upsert(ctx context.Context, payout *models.BankPayout) error {
	filter := bson.M{"stripe_payout_id": payout.PayoutID}
	update := bson.M{
		"$set": bson.M{
			"amount":          payout.Amount,
			"currency":        payout.Currency,
			"status":          payout.Status,
			"arrival_date":    payout.ArrivalDate,
			"failure_code":    payout.FailureCode,
			"failure_message": payout.FailureMessage,
			"updated_at":      time.Now().UTC(),
		},
	}

	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
