package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/staynest/api/internal/helpers"
	"github.com/staynest/api/internal/models"
	"github.com/staynest/api/internal/services"
)

func AddPlace(ps *services.PlaceService) gin.HandlerFunc {
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

		var place models.Place
		if err := c.ShouldBindJSON(&place); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		created, err := ps.AddPlace(c.Request.Context(), claims.UserID(), &place)
		if err != nil {
			c.JSON(helpers.StatusForError(err), helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":       created.ID.Hex(),
			"owner_id": created.Owner,
			"message":  "success",
		})
	}
}

func UpdatePlace(ps *services.PlaceService) gin.HandlerFunc {
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

		placeID, err := primitive.ObjectIDFromHex(helpers.StringTrim(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid place ID format"))
			return
		}

		var patch models.PlacePatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		updated, err := ps.UpdatePlace(c.Request.Context(), placeID, claims.UserID(), patch)
		if err != nil {
			c.JSON(helpers.StatusForError(err), helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func DeletePlace(ps *services.PlaceService) gin.HandlerFunc {
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

		placeID, err := primitive.ObjectIDFromHex(helpers.StringTrim(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid place ID format"))
			return
		}

		deleted, failedFiles, err := ps.DeletePlace(c.Request.Context(), placeID, claims.UserID())
		if err != nil {
			if deleted != nil {
				// The document is gone; the cascade failed. Surface it,
				// nothing gets rolled back.
				c.Error(err)
				c.JSON(http.StatusInternalServerError, helpers.ErrorResponse(err.Error()))
				return
			}
			c.JSON(helpers.StatusForError(err), helpers.ErrorResponse(err.Error()))
			return
		}

		resp := gin.H{
			"message": "Accommodation deleted successfully",
			"deleted": deleted,
		}
		if len(failedFiles) > 0 {
			c.Error(fmt.Errorf("failed to delete photo files: %v", failedFiles))
			resp["file_errors"] = failedFiles
		}

		c.JSON(http.StatusOK, resp)
	}
}

func MyPlaces(ps *services.PlaceService) gin.HandlerFunc {
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

		places, err := ps.MyPlaces(c.Request.Context(), claims.UserID())
		if err != nil {
			c.JSON(helpers.StatusForError(err), helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, places)
	}
}

func GetPlaceByID(ps *services.PlaceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		placeID, err := primitive.ObjectIDFromHex(helpers.StringTrim(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid place ID format"))
			return
		}

		place, err := ps.GetPlaceByID(c.Request.Context(), placeID)
		if err != nil {
			c.JSON(helpers.StatusForError(err), helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, place)
	}
}

func ListPlaces(ps *services.PlaceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		places, err := ps.ListPlaces(c.Request.Context())
		if err != nil {
			c.JSON(helpers.StatusForError(err), helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, places)
	}
}
