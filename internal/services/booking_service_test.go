package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/staynest/api/internal/models"
)

func newBookingService() (*BookingService, *fakePlacesRepo, *fakeBookingsRepo) {
	places := newFakePlacesRepo()
	bookings := newFakeBookingsRepo(places)
	return NewBookingService(bookings, places), places, bookings
}

func seedPlace(t *testing.T, places *fakePlacesRepo, owner string) *models.Place {
	t.Helper()
	place := validPlace("12 Oak St")
	place.Owner = owner
	created, err := places.CreatePlace(context.Background(), place)
	require.NoError(t, err)
	return created
}

func terms(placeID primitive.ObjectID) *models.Booking {
	return &models.Booking{
		Place:    placeID,
		CheckIn:  "2026-09-10",
		CheckOut: "2026-09-13",
		Guests:   2,
		Nights:   3,
		Price:    300,
	}
}

func TestBook(t *testing.T) {
	bs, places, bookings := newBookingService()
	place := seedPlace(t, places, "U1")

	created, err := bs.Book(context.Background(), "U2", terms(place.ID))
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, "U2", created.Client)
	assert.Equal(t, "U1", created.Owner, "owner is stamped from the stored place")
	assert.Len(t, bookings.bookings, 1)
}

func TestBookOwnPlaceForbidden(t *testing.T) {
	bs, places, bookings := newBookingService()
	place := seedPlace(t, places, "U1")

	_, err := bs.Book(context.Background(), "U1", terms(place.ID))
	require.ErrorIs(t, err, models.ErrSelfBooking)
	assert.Empty(t, bookings.bookings)
}

func TestBookMissingPlace(t *testing.T) {
	bs, _, bookings := newBookingService()

	_, err := bs.Book(context.Background(), "U2", terms(primitive.NewObjectID()))
	require.ErrorIs(t, err, models.ErrNotFound)
	assert.Empty(t, bookings.bookings)
}

func TestBookRejectsInvalidTerms(t *testing.T) {
	bs, places, _ := newBookingService()
	place := seedPlace(t, places, "U1")

	booking := terms(place.ID)
	booking.Nights = 0
	_, err := bs.Book(context.Background(), "U2", booking)
	require.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestCancelBooking(t *testing.T) {
	bs, places, bookings := newBookingService()
	place := seedPlace(t, places, "U1")

	created, err := bs.Book(context.Background(), "U2", terms(place.ID))
	require.NoError(t, err)

	_, err = bs.CancelBooking(context.Background(), created.ID, "U3")
	require.ErrorIs(t, err, models.ErrForbidden, "only the booking client may cancel")
	assert.Len(t, bookings.bookings, 1)

	cancelled, err := bs.CancelBooking(context.Background(), created.ID, "U2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, cancelled.ID)
	assert.Empty(t, bookings.bookings)
}

func TestCancelBookingNotFound(t *testing.T) {
	bs, _, _ := newBookingService()

	_, err := bs.CancelBooking(context.Background(), primitive.NewObjectID(), "U2")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestMyBookingsEmptyIsSuccess(t *testing.T) {
	bs, _, _ := newBookingService()

	bookings, err := bs.MyBookings(context.Background(), "U2")
	require.NoError(t, err)
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
}

func TestMyBookingsJoinsPlace(t *testing.T) {
	bs, places, _ := newBookingService()
	place := seedPlace(t, places, "U1")

	_, err := bs.Book(context.Background(), "U2", terms(place.ID))
	require.NoError(t, err)

	rows, err := bs.MyBookings(context.Background(), "U2")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, place.ID, rows[0].Place.ID)
	assert.Equal(t, "U1", rows[0].Place.Owner)
	assert.Equal(t, "12 Oak St", rows[0].Place.Address)
}
