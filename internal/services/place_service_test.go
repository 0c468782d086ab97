package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/staynest/api/internal/models"
)

func newPlaceService() (*PlaceService, *fakePlacesRepo, *fakeBookingsRepo, *fakePhotoDeleter) {
	places := newFakePlacesRepo()
	bookings := newFakeBookingsRepo(places)
	photos := &fakePhotoDeleter{failOn: map[string]bool{}}
	return NewPlaceService(places, bookings, photos), places, bookings, photos
}

func validPlace(address string) *models.Place {
	return &models.Place{
		Title:     "Oak Street Cottage",
		Address:   address,
		MaxGuests: 4,
		Price:     100,
	}
}

func TestAddPlace(t *testing.T) {
	ps, places, _, _ := newPlaceService()
	ctx := context.Background()

	created, err := ps.AddPlace(ctx, "U1", validPlace("12 Oak St"))
	require.NoError(t, err)
	assert.Equal(t, "U1", created.Owner)
	assert.False(t, created.ID.IsZero())
	assert.Len(t, places.places, 1)
}

func TestAddPlaceDuplicateAddress(t *testing.T) {
	ps, places, _, _ := newPlaceService()
	ctx := context.Background()

	_, err := ps.AddPlace(ctx, "U1", validPlace("12 Oak St"))
	require.NoError(t, err)

	_, err = ps.AddPlace(ctx, "U2", validPlace("12 Oak St"))
	require.ErrorIs(t, err, models.ErrDuplicateAddress)
	assert.Len(t, places.places, 1, "a rejected duplicate must not create a document")
}

func TestAddPlaceRejectsInvalidFields(t *testing.T) {
	ps, _, _, _ := newPlaceService()

	place := validPlace("12 Oak St")
	place.Price = 0
	_, err := ps.AddPlace(context.Background(), "U1", place)
	require.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestUpdatePlaceOwnership(t *testing.T) {
	ps, _, _, _ := newPlaceService()
	ctx := context.Background()

	created, err := ps.AddPlace(ctx, "U1", validPlace("12 Oak St"))
	require.NoError(t, err)

	title := "Renamed"
	_, err = ps.UpdatePlace(ctx, created.ID, "U2", models.PlacePatch{Title: &title})
	require.ErrorIs(t, err, models.ErrForbidden, "a requester who is not the stored owner must be rejected")

	updated, err := ps.UpdatePlace(ctx, created.ID, "U1", models.PlacePatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "12 Oak St", updated.Address, "untouched fields survive a partial update")
}

func TestUpdatePlaceNotFound(t *testing.T) {
	ps, _, _, _ := newPlaceService()

	title := "Renamed"
	_, err := ps.UpdatePlace(context.Background(), primitive.NewObjectID(), "U1", models.PlacePatch{Title: &title})
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeletePlace(t *testing.T) {
	ps, places, bookings, photos := newPlaceService()
	ctx := context.Background()

	place := validPlace("12 Oak St")
	place.Photos = []string{"a.jpg", "b.jpg"}
	created, err := ps.AddPlace(ctx, "U1", place)
	require.NoError(t, err)

	_, err = bookings.CreateBooking(ctx, &models.Booking{Place: created.ID, Client: "U2"})
	require.NoError(t, err)

	deleted, failed, err := ps.DeletePlace(ctx, created.ID, "U1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Empty(t, failed)
	assert.Empty(t, places.places)
	assert.Empty(t, bookings.bookings, "bookings of a deleted place are cascade-deleted")
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, photos.deleted)
}

func TestDeletePlaceForbidden(t *testing.T) {
	ps, places, _, photos := newPlaceService()
	ctx := context.Background()

	created, err := ps.AddPlace(ctx, "U1", validPlace("12 Oak St"))
	require.NoError(t, err)

	_, _, err = ps.DeletePlace(ctx, created.ID, "U2")
	require.ErrorIs(t, err, models.ErrForbidden)
	assert.Len(t, places.places, 1)
	assert.Empty(t, photos.deleted)
}

func TestDeletePlaceReportsFailedFiles(t *testing.T) {
	ps, _, _, photos := newPlaceService()
	ctx := context.Background()

	place := validPlace("12 Oak St")
	place.Photos = []string{"a.jpg", "b.jpg", "c.jpg"}
	created, err := ps.AddPlace(ctx, "U1", place)
	require.NoError(t, err)

	photos.failOn["b.jpg"] = true

	deleted, failed, err := ps.DeletePlace(ctx, created.ID, "U1")
	require.NoError(t, err, "a failing photo file does not roll the document deletion back")
	assert.NotNil(t, deleted)
	assert.Len(t, failed, 1)
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, photos.deleted, "one failure must not abort the remaining deletions")
}

func TestMyPlacesEmptyIsSuccess(t *testing.T) {
	ps, _, _, _ := newPlaceService()

	places, err := ps.MyPlaces(context.Background(), "U1")
	require.NoError(t, err, "zero matching documents is a valid result, not a failure")
	assert.NotNil(t, places)
	assert.Empty(t, places)
}

func TestGetPlaceByIDNotFound(t *testing.T) {
	ps, _, _, _ := newPlaceService()

	_, err := ps.GetPlaceByID(context.Background(), primitive.NewObjectID())
	require.ErrorIs(t, err, models.ErrNotFound)
}
