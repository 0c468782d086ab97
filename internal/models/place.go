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

const PlacesColName = "places"

type Place struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner       string             `bson:"owner" json:"owner" validate:"required"`
	Title       string             `bson:"title" json:"title" validate:"required"`
	Address     string             `bson:"address" json:"address" validate:"required"`
	Photos      []string           `bson:"photos" json:"photos"`
	Description string             `bson:"description" json:"description"`
	Perks       []string           `bson:"perks" json:"perks"`
	ExtraInfo   string             `bson:"extra_info" json:"extra_info"`
	CheckIn     string             `bson:"check_in" json:"check_in"` // HH:MM (24h)
	CheckOut    string             `bson:"check_out" json:"check_out"`
	MaxGuests   int                `bson:"max_guests" json:"max_guests" validate:"required,gt=0"`
	Price       float64            `bson:"price" json:"price" validate:"required,gt=0"`
	CreatedAt   time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt   time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// PlacePatch carries a partial update; nil fields are left untouched.
// Owner is deliberately absent, ownership never changes after creation.
type PlacePatch struct {
	Title       *string   `json:"title"`
	Address     *string   `json:"address"`
	Photos      *[]string `json:"photos"`
	Description *string   `json:"description"`
	Perks       *[]string `json:"perks"`
	ExtraInfo   *string   `json:"extra_info"`
	CheckIn     *string   `json:"check_in"`
	CheckOut    *string   `json:"check_out"`
	MaxGuests   *int      `json:"max_guests"`
	Price       *float64  `json:"price"`
}

// SetFields returns the bson document for a $set update.
func (p PlacePatch) SetFields() bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Address != nil {
		set["address"] = *p.Address
	}
	if p.Photos != nil {
		set["photos"] = *p.Photos
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Perks != nil {
		set["perks"] = *p.Perks
	}
	if p.ExtraInfo != nil {
		set["extra_info"] = *p.ExtraInfo
	}
	if p.CheckIn != nil {
		set["check_in"] = *p.CheckIn
	}
	if p.CheckOut != nil {
		set["check_out"] = *p.CheckOut
	}
	if p.MaxGuests != nil {
		set["max_guests"] = *p.MaxGuests
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	return set
}

type PlacesRepo interface {
	CreatePlace(ctx context.Context, place *Place) (*Place, error)
	GetPlaceByID(ctx context.Context, id primitive.ObjectID) (*Place, error)
	ListPlaces(ctx context.Context) ([]*Place, error)
	ListPlacesByOwner(ctx context.Context, owner string) ([]*Place, error)
	ExistsByAddress(ctx context.Context, address string) (bool, error)
	UpdatePlace(ctx context.Context, id primitive.ObjectID, patch PlacePatch) (*Place, error)
	DeletePlace(ctx context.Context, id primitive.ObjectID) (*Place, error)
}

func (mdb *MongodbRepo) CreatePlace(ctx context.Context, place *Place) (*Place, error) {
	col, err := mdb.GetCollection(ctx, PlacesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	now := time.Now()
	place.CreatedAt = now
	place.UpdatedAt = now
	if place.ID.IsZero() {
		place.ID = primitive.NewObjectID()
	}

	if _, err := col.InsertOne(ctx, place); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateAddress
		}
		return nil, fmt.Errorf("error inserting place: %v", err)
	}

	return place, nil
}

func (mdb *MongodbRepo) GetPlaceByID(ctx context.Context, id primitive.ObjectID) (*Place, error) {
	col, err := mdb.GetCollection(ctx, PlacesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var place Place
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&place); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding place: %v", err)
	}

	return &place, nil
}

func (mdb *MongodbRepo) ListPlaces(ctx context.Context) ([]*Place, error) {
	return mdb.findPlaces(ctx, bson.M{})
}

func (mdb *MongodbRepo) ListPlacesByOwner(ctx context.Context, owner string) ([]*Place, error) {
	return mdb.findPlaces(ctx, bson.M{"owner": owner})
}

func (mdb *MongodbRepo) findPlaces(ctx context.Context, filter bson.M) ([]*Place, error) {
	col, err := mdb.GetCollection(ctx, PlacesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding places: %v", err)
	}
	defer cursor.Close(ctx)

	// Zero matches is a valid result, not a failure.
	places := []*Place{}
	for cursor.Next(ctx) {
		var place Place
		if err := cursor.Decode(&place); err != nil {
			return nil, fmt.Errorf("error decoding place: %v", err)
		}
		places = append(places, &place)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return places, nil
}

func (mdb *MongodbRepo) ExistsByAddress(ctx context.Context, address string) (bool, error) {
	col, err := mdb.GetCollection(ctx, PlacesColName)
	if err != nil {
		return false, fmt.Errorf("error getting collection: %v", err)
	}

	count, err := col.CountDocuments(ctx, bson.M{"address": address}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error counting places: %v", err)
	}
	return count > 0, nil
}

func (mdb *MongodbRepo) UpdatePlace(ctx context.Context, id primitive.ObjectID, patch PlacePatch) (*Place, error) {
	col, err := mdb.GetCollection(ctx, PlacesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	set := patch.SetFields()
	set["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Place
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error updating place: %v", err)
	}

	return &updated, nil
}

func (mdb *MongodbRepo) DeletePlace(ctx context.Context, id primitive.ObjectID) (*Place, error) {
	col, err := mdb.GetCollection(ctx, PlacesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var deleted Place
	if err := col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error deleting place: %v", err)
	}

	return &deleted, nil
}

// EnsurePlaceIndexes creates the unique address index backing the
// duplicate-address guard, plus the owner index my-places queries hit.
func (mdb *MongodbRepo) EnsurePlaceIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ctx, PlacesColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "address", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("address_unique"),
		},
		{
			Keys:    bson.D{{Key: "owner", Value: 1}},
			Options: options.Index().SetName("owner_idx"),
		},
	}

	if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("error creating place indexes: %v", err)
	}
	return nil
}
