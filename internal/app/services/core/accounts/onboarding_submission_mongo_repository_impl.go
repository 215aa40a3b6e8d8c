package accounts

import (
	"context"
	"studiobook-service/internal/app/contracts"
	"studiobook-service/internal/app/models"
	"studiobook-service/internal/pkg/constvars"
	"studiobook-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OnboardingSubmissionMongoRepository struct {
	Collection *mongo.Collection
}

func NewOnboardingSubmissionMongoRepository(db *mongo.Client, dbName string) contracts.OnboardingSubmissionRepository {
	return &OnboardingSubmissionMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionOnboardingSubmissions),
	}
}

func (r *OnboardingSubmissionMongoRepository) Insert(ctx context.Context, submission *models.OnboardingSubmission) (string, error) {
	if submission.ID == "" {
		submission.ID = primitive.NewObjectID().Hex()
	}
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now().UTC()
	}
	submission.UpdatedAt = submission.SubmittedAt

	_, err := r.Collection.InsertOne(ctx, submission)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return submission.ID, nil
}

func (r *OnboardingSubmissionMongoRepository) SetStripeOnboardingComplete(ctx context.Context, accountID string, complete bool) error {
	filter := bson.M{"stripe_account_id": accountID}
	update := bson.M{
		"$set": bson.M{
			"stripe_onboarding_complete": complete,
			"updated_at":                 time.Now().UTC(),
		},
	}

	_, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *OnboardingSubmissionMongoRepository) FindByAccountID(ctx context.Context, accountID string) (*models.OnboardingSubmission, error) {
	var submission models.OnboardingSubmission
	err := r.Collection.FindOne(ctx, bson.M{"stripe_account_id": accountID}).Decode(&submission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &submission, nil
}
