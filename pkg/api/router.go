package api

import (
	"devicehub-go/pkg/api/handlers"
	"devicehub-go/pkg/api/middleware"
	"devicehub-go/pkg/services"

	"github.com/gin-gonic/gin"
)

// Store is the persistence behind the catalog API; *db.DB implements it.
type Store interface {
	middleware.UserLookup
	handlers.UserCreator
	services.DeviceStore
}

// NewRouter builds the catalog API.
func NewRouter(store Store) *gin.Engine {
	router := gin.New()

	deviceService := services.NewDeviceService(store)

	// Middleware
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())

	// Health check
	router.GET("/health", handlers.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		devices := v1.Group("/devices")
		devices.Use(middleware.RequireAuth(store))
		{
			devices.GET("", handlers.ListDevices(deviceService))
			devices.POST("", handlers.CreateDevice(deviceService))
			devices.GET("/:id", handlers.GetDevice(deviceService))
			devices.DELETE("/:id", handlers.DeleteDevice(deviceService))
		}

		users := v1.Group("/users")
		{
			users.POST("", handlers.CreateUser(store))
			users.GET("/me", middleware.RequireAuth(store), handlers.GetCurrentUser)
		}
	}

	return router
}

// NewScraperRouter builds the scraper service.
func NewScraperRouter(fetcher handlers.PageFetcher) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.HealthCheck)

	scrape := router.Group("/scrape")
	{
		scrape.POST("", handlers.ScrapeDevice(fetcher))
		scrape.POST("/links", handlers.ScrapeLinks(fetcher))
	}

	return router
}
