package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const BookingsColName = "bookings"

// Booking terms are copied at creation time and never recomputed against
// the Place's current price.
type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Place     primitive.ObjectID `bson:"place" json:"place"`
	Owner     string             `bson:"owner" json:"owner"`
	Client    string             `bson:"client" json:"client" validate:"required"`
	CheckIn   string             `bson:"check_in" json:"check_in" validate:"required"` // YYYY-MM-DD
	CheckOut  string             `bson:"check_out" json:"check_out" validate:"required"`
	Guests    int                `bson:"guests" json:"guests" validate:"required,gt=0"`
	Nights    int                `bson:"nights" json:"nights" validate:"required,gt=0"`
	Price     float64            `bson:"price" json:"price" validate:"required,gt=0"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// PlaceSummary is the slice of Place fields joined into my-bookings rows.
type PlaceSummary struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	Owner   string             `bson:"owner" json:"owner"`
	Title   string             `bson:"title" json:"title"`
	Address string             `bson:"address" json:"address"`
	Photos  []string           `bson:"photos" json:"photos"`
}

type BookingWithPlace struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Place     PlaceSummary       `bson:"place_doc" json:"place"`
	Client    string             `bson:"client" json:"client"`
	CheckIn   string             `bson:"check_in" json:"check_in"`
	CheckOut  string             `bson:"check_out" json:"check_out"`
	Guests    int                `bson:"guests" json:"guests"`
	Nights    int                `bson:"nights" json:"nights"`
	Price     float64            `bson:"price" json:"price"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

type BookingsRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetBookingByID(ctx context.Context, id primitive.ObjectID) (*Booking, error)
	ListBookingsByClient(ctx context.Context, client string) ([]*BookingWithPlace, error)
	DeleteBooking(ctx context.Context, id primitive.ObjectID) (*Booking, error)
	DeleteBookingsByPlace(ctx context.Context, placeID primitive.ObjectID) (int64, error)
}

func (mdb *MongodbRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, BookingsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	booking.CreatedAt = time.Now()
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}

	if _, err := col.InsertOne(ctx, booking); err != nil {
		return nil, fmt.Errorf("error inserting booking: %v", err)
	}

	return booking, nil
}

func (mdb *MongodbRepo) GetBookingByID(ctx context.Context, id primitive.ObjectID) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, BookingsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var booking Booking
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding booking: %v", err)
	}

	return &booking, nil
}

func (mdb *MongodbRepo) ListBookingsByClient(ctx context.Context, client string) ([]*BookingWithPlace, error) {
	col, err := mdb.GetCollection(ctx, BookingsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "client", Value: client}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: PlacesColName},
			{Key: "localField", Value: "place"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "place_doc"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$place_doc"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating bookings: %v", err)
	}
	defer cursor.Close(ctx)

	bookings := []*BookingWithPlace{}
	for cursor.Next(ctx) {
		var booking BookingWithPlace
		if err := cursor.Decode(&booking); err != nil {
			return nil, fmt.Errorf("error decoding booking: %v", err)
		}
		bookings = append(bookings, &booking)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return bookings, nil
}

func (mdb *MongodbRepo) DeleteBooking(ctx context.Context, id primitive.ObjectID) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, BookingsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var deleted Booking
	if err := col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error deleting booking: %v", err)
	}

	return &deleted, nil
}

func (mdb *MongodbRepo) DeleteBookingsByPlace(ctx context.Context, placeID primitive.ObjectID) (int64, error) {
	col, err := mdb.GetCollection(ctx, BookingsColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.DeleteMany(ctx, bson.M{"place": placeID})
	if err != nil {
		return 0, fmt.Errorf("error deleting bookings for place: %v", err)
	}
	return res.DeletedCount, nil
}

func (mdb *MongodbRepo) EnsureBookingIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ctx, BookingsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "client", Value: 1}},
			Options: options.Index().SetName("client_idx"),
		},
		{
			Keys:    bson.D{{Key: "place", Value: 1}},
			Options: options.Index().SetName("place_idx"),
		},
	}

	if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("error creating booking indexes: %v", err)
	}
	return nil
}
