package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/staynest/api/internal/helpers"
	"github.com/staynest/api/internal/models"
	"github.com/staynest/api/internal/services"
)

type bookRequest struct {
	Place    string  `json:"place" binding:"required"`
	CheckIn  string  `json:"check_in" binding:"required"`
	CheckOut string  `json:"check_out" binding:"required"`
	Guests   int     `json:"guests" binding:"required"`
	Nights   int     `json:"nights" binding:"required"`
	Price    float64 `json:"price" binding:"required"`
}

func BookPlace(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userClaims, exists := c.Get("user")
		if !exists {
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("unauthorized"))
			return
		}
		claims, ok := userClaims.(*helpers.CustomClaims)
		if !ok {
			c.JSON(http.StatusInternalServerError, helpers.ErrorResponse("invalid user claims"))
			return
		}

		var req bookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		placeID, err := primitive.ObjectIDFromHex(helpers.StringTrim(req.Place))
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid place ID format"))
			return
		}

		booking := &models.Booking{
			Place:    placeID,
			CheckIn:  req.CheckIn,
			CheckOut: req.CheckOut,
			Guests:   req.Guests,
			Nights:   req.Nights,
			Price:    req.Price,
		}

		created, err := bs.Book(c.Request.Context(), claims.UserID(), booking)
		if err != nil {
			c.JSON(helpers.StatusForError(err), helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": created.ID.Hex()})
	}
}

func CancelBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userClaims, exists := c.Get("user")
		if !exists {
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("unauthorized"))
			return
		}
		claims, ok := userClaims.(*helpers.CustomClaims)
		if !ok {
			c.JSON(http.StatusInternalServerError, helpers.ErrorResponse("invalid user claims"))
			return
		}

		bookingID, err := primitive.ObjectIDFromHex(helpers.StringTrim(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid booking ID format"))
			return
		}

		cancelled, err := bs.CancelBooking(c.Request.Context(), bookingID, claims.UserID())
		if err != nil {
			c.JSON(helpers.StatusForError(err), helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":   "Booking cancelled successfully",
			"cancelled": cancelled,
		})
	}
}

func MyBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userClaims, exists := c.Get("user")
		if !exists {
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("unauthorized"))
			return
		}
		claims, ok := userClaims.(*helpers.CustomClaims)
		if !ok {
			c.JSON(http.StatusInternalServerError, helpers.ErrorResponse("invalid user claims"))
			return
		}

		bookings, err := bs.MyBookings(c.Request.Context(), claims.UserID())
		if err != nil {
			c.JSON(helpers.StatusForError(err), helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, bookings)
	}
}
