package container

import (
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staynest/api/internal/config"
	"github.com/staynest/api/internal/media"
	"github.com/staynest/api/internal/models"
	"github.com/staynest/api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger         *slog.Logger
	Config         *config.Config
	MongoDBClient  *mongo.Client
	MediaStore     *media.Store
	PlaceService   *services.PlaceService
	BookingService *services.BookingService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	mongoDBClient *mongo.Client,
) *Container {
	// Initialize repositories
	repo := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBName)
	mediaStore := media.NewStore(cfg.UploadTempDir, cfg.UploadPhotoDir, media.UUIDNamer{})
	placeService := services.NewPlaceService(repo, repo, mediaStore)
	bookingService := services.NewBookingService(repo, repo)

	return &Container{
		Logger:         logger,
		Config:         cfg,
		MongoDBClient:  mongoDBClient,
		MediaStore:     mediaStore,
		PlaceService:   placeService,
		BookingService: bookingService,
	}
}
