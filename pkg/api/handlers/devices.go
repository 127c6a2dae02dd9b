package handlers

import (
	"errors"
	"net/http"

	"devicehub-go/pkg/db"
	"devicehub-go/pkg/models"
	"devicehub-go/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// deviceError maps service and storage errors onto a status and {"error"} body.
func deviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, db.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidDevice):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func deviceID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid device ID"})
		return uuid.Nil, false
	}
	return id, true
}

// ListDevices lists all devices for the authenticated user
func ListDevices(service *services.DeviceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uuid.UUID)

		devices, err := service.ListDevices(c.Request.Context(), userID)
		if err != nil {
			deviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, devices)
	}
}

// CreateDevice stores a device; this is the endpoint the importer submits
// scraped payloads to.
func CreateDevice(service *services.DeviceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uuid.UUID)

		var deviceCreate models.DeviceCreate
		if err := c.ShouldBindJSON(&deviceCreate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		device, err := service.CreateDevice(c.Request.Context(), userID, deviceCreate)
		if err != nil {
			deviceError(c, err)
			return
		}

		c.JSON(http.StatusCreated, device)
	}
}

// GetDevice retrieves a single device
func GetDevice(service *services.DeviceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uuid.UUID)
		id, ok := deviceID(c)
		if !ok {
			return
		}

		device, err := service.GetDevice(c.Request.Context(), id, userID)
		if err != nil {
			deviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, device)
	}
}

// DeleteDevice deletes a device
func DeleteDevice(service *services.DeviceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uuid.UUID)
		id, ok := deviceID(c)
		if !ok {
			return
		}

		if err := service.DeleteDevice(c.Request.Context(), id, userID); err != nil {
			deviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "device deleted"})
	}
}
