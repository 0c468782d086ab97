package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/staynest/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PhotoDeleter is the slice of the media pipeline place deletion needs.
type PhotoDeleter interface {
	DeletePhotos(names []string) []string
}

type PlaceService struct {
	placesRepo   models.PlacesRepo
	bookingsRepo models.BookingsRepo
	photos       PhotoDeleter
}

func NewPlaceService(placesRepo models.PlacesRepo, bookingsRepo models.BookingsRepo, photos PhotoDeleter) *PlaceService {
	return &PlaceService{
		placesRepo:   placesRepo,
		bookingsRepo: bookingsRepo,
		photos:       photos,
	}
}

func (ps *PlaceService) AddPlace(ctx context.Context, owner string, place *models.Place) (*models.Place, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, fmt.Errorf("%w: missing owner ID", models.ErrInvalidInput)
	}
	place.Owner = owner

	if err := models.Validate.Struct(place); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	exists, err := ps.placesRepo.ExistsByAddress(ctx, place.Address)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrDuplicateAddress
	}

	return ps.placesRepo.CreatePlace(ctx, place)
}

func (ps *PlaceService) UpdatePlace(ctx context.Context, id primitive.ObjectID, requester string, patch models.PlacePatch) (*models.Place, error) {
	place, err := ps.placesRepo.GetPlaceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if place.Owner != requester {
		return nil, models.ErrForbidden
	}

	return ps.placesRepo.UpdatePlace(ctx, id, patch)
}

// DeletePlace removes the document, cascades to its bookings and then
// best-effort deletes the photo files. File failures are reported without
// rolling back the already-completed document deletion.
func (ps *PlaceService) DeletePlace(ctx context.Context, id primitive.ObjectID, requester string) (*models.Place, []string, error) {
	place, err := ps.placesRepo.GetPlaceByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if place.Owner != requester {
		return nil, nil, models.ErrForbidden
	}

	deleted, err := ps.placesRepo.DeletePlace(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if _, err := ps.bookingsRepo.DeleteBookingsByPlace(ctx, id); err != nil {
		return deleted, nil, fmt.Errorf("place deleted but bookings cleanup failed: %v", err)
	}

	failedFiles := ps.photos.DeletePhotos(deleted.Photos)
	return deleted, failedFiles, nil
}

func (ps *PlaceService) MyPlaces(ctx context.Context, owner string) ([]*models.Place, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, fmt.Errorf("%w: missing owner ID", models.ErrInvalidInput)
	}
	return ps.placesRepo.ListPlacesByOwner(ctx, owner)
}

func (ps *PlaceService) GetPlaceByID(ctx context.Context, id primitive.ObjectID) (*models.Place, error) {
	return ps.placesRepo.GetPlaceByID(ctx, id)
}

func (ps *PlaceService) ListPlaces(ctx context.Context) ([]*models.Place, error) {
	return ps.placesRepo.ListPlaces(ctx)
}
