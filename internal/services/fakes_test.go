package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/staynest/api/internal/models"
)

// In-memory repo fakes backing the service tests.

type fakePlacesRepo struct {
	places map[primitive.ObjectID]*models.Place
}

func newFakePlacesRepo() *fakePlacesRepo {
	return &fakePlacesRepo{places: make(map[primitive.ObjectID]*models.Place)}
}

func (f *fakePlacesRepo) CreatePlace(_ context.Context, place *models.Place) (*models.Place, error) {
	if place.ID.IsZero() {
		place.ID = primitive.NewObjectID()
	}
	cp := *place
	f.places[place.ID] = &cp
	return place, nil
}

func (f *fakePlacesRepo) GetPlaceByID(_ context.Context, id primitive.ObjectID) (*models.Place, error) {
	place, ok := f.places[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *place
	return &cp, nil
}

func (f *fakePlacesRepo) ListPlaces(_ context.Context) ([]*models.Place, error) {
	out := []*models.Place{}
	for _, p := range f.places {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakePlacesRepo) ListPlacesByOwner(_ context.Context, owner string) ([]*models.Place, error) {
	out := []*models.Place{}
	for _, p := range f.places {
		if p.Owner == owner {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePlacesRepo) ExistsByAddress(_ context.Context, address string) (bool, error) {
	for _, p := range f.places {
		if p.Address == address {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePlacesRepo) UpdatePlace(_ context.Context, id primitive.ObjectID, patch models.PlacePatch) (*models.Place, error) {
	place, ok := f.places[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if patch.Title != nil {
		place.Title = *patch.Title
	}
	if patch.Address != nil {
		place.Address = *patch.Address
	}
	if patch.Photos != nil {
		place.Photos = *patch.Photos
	}
	if patch.Description != nil {
		place.Description = *patch.Description
	}
	if patch.Perks != nil {
		place.Perks = *patch.Perks
	}
	if patch.ExtraInfo != nil {
		place.ExtraInfo = *patch.ExtraInfo
	}
	if patch.CheckIn != nil {
		place.CheckIn = *patch.CheckIn
	}
	if patch.CheckOut != nil {
		place.CheckOut = *patch.CheckOut
	}
	if patch.MaxGuests != nil {
		place.MaxGuests = *patch.MaxGuests
	}
	if patch.Price != nil {
		place.Price = *patch.Price
	}
	cp := *place
	return &cp, nil
}

func (f *fakePlacesRepo) DeletePlace(_ context.Context, id primitive.ObjectID) (*models.Place, error) {
	place, ok := f.places[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	delete(f.places, id)
	return place, nil
}

type fakeBookingsRepo struct {
	bookings map[primitive.ObjectID]*models.Booking
	places   *fakePlacesRepo
}

func newFakeBookingsRepo(places *fakePlacesRepo) *fakeBookingsRepo {
	return &fakeBookingsRepo{
		bookings: make(map[primitive.ObjectID]*models.Booking),
		places:   places,
	}
}

func (f *fakeBookingsRepo) CreateBooking(_ context.Context, booking *models.Booking) (*models.Booking, error) {
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	cp := *booking
	f.bookings[booking.ID] = &cp
	return booking, nil
}

func (f *fakeBookingsRepo) GetBookingByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *booking
	return &cp, nil
}

func (f *fakeBookingsRepo) ListBookingsByClient(_ context.Context, client string) ([]*models.BookingWithPlace, error) {
	out := []*models.BookingWithPlace{}
	for _, b := range f.bookings {
		if b.Client != client {
			continue
		}
		row := &models.BookingWithPlace{
			ID:       b.ID,
			Client:   b.Client,
			CheckIn:  b.CheckIn,
			CheckOut: b.CheckOut,
			Guests:   b.Guests,
			Nights:   b.Nights,
			Price:    b.Price,
		}
		if place, ok := f.places.places[b.Place]; ok {
			row.Place = models.PlaceSummary{
				ID:      place.ID,
				Owner:   place.Owner,
				Title:   place.Title,
				Address: place.Address,
				Photos:  place.Photos,
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeBookingsRepo) DeleteBooking(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	delete(f.bookings, id)
	return booking, nil
}

func (f *fakeBookingsRepo) DeleteBookingsByPlace(_ context.Context, placeID primitive.ObjectID) (int64, error) {
	var n int64
	for id, b := range f.bookings {
		if b.Place == placeID {
			delete(f.bookings, id)
			n++
		}
	}
	return n, nil
}

type fakePhotoDeleter struct {
	deleted []string
	failOn  map[string]bool
}

func (f *fakePhotoDeleter) DeletePhotos(names []string) []string {
	var failed []string
	for _, name := range names {
		f.deleted = append(f.deleted, name)
		if f.failOn[name] {
			failed = append(failed, fmt.Sprintf("%s: permission denied", name))
		}
	}
	return failed
}
