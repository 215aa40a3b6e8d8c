package accounts

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

type StripeAccountMongoRepository struct {
	Collection *mongo.Collection
}

func NewStripeAccountMongoRepository(db *mongo.Client, dbName string) contracts.StripeAccountRepository {
	return &StripeAccountMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionStripeAccounts),
	}
}

func (r *StripeAccountMongoRepository) Upsert(ctx context.Context, status *models.StripeAccountStatus) error {
	filter := bson.M{"stripe_account_id": status.AccountID}
	set := bson.M{
		"business_name":        status.BusinessName,
		"charges_enabled":      status.ChargesEnabled,
		"payouts_enabled":      status.PayoutsEnabled,
		"details_submitted":    status.DetailsSubmitted,
		"requirements_pending": status.RequirementsPending,
		"disabled_reason":      status.DisabledReason,
		"is_active":            status.IsActive,
		"updated_at":           time.Now().UTC(),
	}
	// The payee link is set once at onboarding; webhook refreshes carry no
	// payee id and must not blank it.
	if status.PayeeID != "" {
		set["payee_id"] = status.PayeeID
	}

	_, err := r.Collection.UpdateOne(ctx, filter, bson.M{"$set": set}, options.Update().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *StripeAccountMongoRepository) Deactivate(ctx context.Context, accountID string) error {
	filter := bson.M{"stripe_account_id": accountID}
	update := bson.M{
		"$set": bson.M{
			"is_active":       false,
			"charges_enabled": false,
			"payouts_enabled": false,
			"updated_at":      time.Now().UTC(),
		},
	}

	_, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *StripeAccountMongoRepository) FindByAccountID(ctx context.Context, accountID string) (*models.StripeAccountStatus, error) {
	var status models.StripeAccountStatus
	err := r.Collection.FindOne(ctx, bson.M{"stripe_account_id": accountID}).Decode(&status)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &status, nil
}

// FindByPayeeIDs returns only active accounts, keyed by payee id, so the
// aggregator can resolve destinations in one query per batch.
func (r *StripeAccountMongoRepository) FindByPayeeIDs(ctx context.Context, payeeIDs []string) (map[string]models.StripeAccountStatus, error) {
	filter := bson.M{
		"payee_id":  bson.M{"$in": payeeIDs},
		"is_active": true,
	}

	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var statuses []models.StripeAccountStatus
	if err := cursor.All(ctx, &statuses); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	out := make(map[string]models.StripeAccountStatus, len(statuses))
	for _, status := range statuses {
		out[status.PayeeID] = status
	}
	return out, nil
}
