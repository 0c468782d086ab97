package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/staynest/api/internal/helpers"
	"github.com/staynest/api/internal/media"
)

func UploadByLink(m *media.Store) gin.HandlerFunc {
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

		var req struct {
			Link string `json:"link" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		fileName, err := m.UploadByLink(c.Request.Context(), req.Link, claims.DisplayName())
		if err != nil {
			// On this path an undecodable download gets the same 404 as
			// an unreachable link.
			status := helpers.StatusForError(err)
			var compErr *media.CompressionError
			if errors.As(err, &compErr) {
				status = http.StatusNotFound
			}
			c.JSON(status, helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, gin.H{"fileName": fileName})
	}
}

func UploadFromDevice(m *media.Store) gin.HandlerFunc {
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

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		fileNames, err := m.UploadFromDevice(c.Request.Context(), form.File["photos"], claims.DisplayName())
		if err != nil {
			if batchErr := media.IsBatchError(err); batchErr != nil && len(fileNames) > 0 {
				// Partial success: report the names that made it and log
				// the rest.
				c.Error(batchErr)
				c.JSON(http.StatusOK, gin.H{"fileNames": fileNames})
				return
			}
			c.JSON(helpers.StatusForError(err), helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, gin.H{"fileNames": fileNames})
	}
}
