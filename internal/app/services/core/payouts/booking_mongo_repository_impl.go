package payouts

import (
	"context"
	"studiobook-service/internal/app/contracts"
	"studiobook-service/internal/app/models"
	"studiobook-service/internal/pkg/constvars"
	"studiobook-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type BookingMongoRepository struct {
	Collection *mongo.Collection
}

func NewBookingMongoRepository(db *mongo.Client, dbName string) contracts.BookingRepository {
	return &BookingMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionBookings),
	}
}

func (r *BookingMongoRepository) FindEligibleForPayout(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"status":        models.BookingCompleted,
		"payout_status": models.PayoutPending,
		"created_at":    bson.M{"$lte": cutoff},
	}

	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return bookings, nil
}

func (r *BookingMongoRepository) MarkPayoutCompleted(ctx context.Context, bookingIDs []string) error {
	filter := bson.M{"_id": bson.M{"$in": bookingIDs}}
	update := bson.M{
		"$set": bson.M{
			"payout_status": models.PayoutCompleted,
			"updated_at":    time.Now(),
		},
	}

	_, err := r.Collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *BookingMongoRepository) ConfirmPayment(ctx context.Context, bookingID, paymentMethod string, amountPaid float64) error {
	// Conditional on pending so a replayed event cannot move the booking back.
	filter := bson.M{
		"_id":    bookingID,
		"status": models.BookingPending,
	}
	update := bson.M{
		"$set": bson.M{
			"status":         models.BookingConfirmed,
			"payment_method": paymentMethod,
			"amount_paid":    amountPaid,
			"updated_at":     time.Now(),
		},
	}

	_, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *BookingMongoRepository) FailPayment(ctx context.Context, bookingID string) error {
	filter := bson.M{
		"_id":    bookingID,
		"status": models.BookingPending,
	}
	update := bson.M{
		"$set": bson.M{
			"status":     models.BookingPaymentFailed,
			"updated_at": time.Now(),
		},
	}

	_, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
