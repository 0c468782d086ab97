package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/staynest/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService struct {
	bookingsRepo models.BookingsRepo
	placesRepo   models.PlacesRepo
}

func NewBookingService(bookingsRepo models.BookingsRepo, placesRepo models.PlacesRepo) *BookingService {
	return &BookingService{
		bookingsRepo: bookingsRepo,
		placesRepo:   placesRepo,
	}
}

// Book looks the Place up first and stamps the owner from the stored
// document, so the self-booking check holds against the real owner no
// matter what the request body claimed.
func (bs *BookingService) Book(ctx context.Context, client string, booking *models.Booking) (*models.Booking, error) {
	if strings.TrimSpace(client) == "" {
		return nil, fmt.Errorf("%w: missing client ID", models.ErrInvalidInput)
	}

	place, err := bs.placesRepo.GetPlaceByID(ctx, booking.Place)
	if err != nil {
		return nil, err
	}
	if place.Owner == client {
		return nil, models.ErrSelfBooking
	}

	booking.Owner = place.Owner
	booking.Client = client

	if err := models.Validate.Struct(booking); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	return bs.bookingsRepo.CreateBooking(ctx, booking)
}

func (bs *BookingService) CancelBooking(ctx context.Context, id primitive.ObjectID, requester string) (*models.Booking, error) {
	booking, err := bs.bookingsRepo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Client != requester {
		return nil, models.ErrForbidden
	}

	return bs.bookingsRepo.DeleteBooking(ctx, id)
}

func (bs *BookingService) MyBookings(ctx context.Context, client string) ([]*models.BookingWithPlace, error) {
	if strings.TrimSpace(client) == "" {
		return nil, fmt.Errorf("%w: missing client ID", models.ErrInvalidInput)
	}
	return bs.bookingsRepo.ListBookingsByClient(ctx, client)
}
