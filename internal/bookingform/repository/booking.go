package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingformerrors "assetbook/internal/bookingform/errors"
	"assetbook/pkg/config"
	"assetbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookingReader looks up the stored state the form needs: status, flags and
// custodian. Bookings are written by the owning system, never here.
type BookingReader interface {
	FindByID(ctx context.Context, id string) (*model.Booking, error)
}

type mongoBookingReader struct {
	collection  *mongo.Collection
	readTimeout time.Duration
}

func NewMongoBookingReader(cfg *config.Config) BookingReader {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingReader{
		collection:  db.Collection(cfg.BookingsCollection),
		readTimeout: cfg.ReadTimeout,
	}
}

// withTimeout caps ctx at timeout without extending an earlier deadline.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

// idFilter matches both ObjectID and plain string keys, since bookings
// imported from other systems keep their original ids.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{oid, id}}}
	}
	return bson.M{"_id": id}
}

var bookingProjection = bson.M{
	"name":        1,
	"description": 1,
	"custodian":   1,
	"start_date":  1,
	"end_date":    1,
	"status":      1,
	"asset_ids":   1,
	"flags":       1,
}

func (r *mongoBookingReader) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", bookingformerrors.ErrNotFound)
	}

	ctx, cancel := withTimeout(ctx, r.readTimeout)
	defer cancel()

	var booking model.Booking
	err := r.collection.FindOne(ctx, idFilter(id), options.FindOne().SetProjection(bookingProjection)).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", bookingformerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}
