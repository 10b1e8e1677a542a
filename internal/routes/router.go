// safemap/internal/routes/router.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/waseok/safemap/internal/handlers"
	"github.com/waseok/safemap/internal/middleware"
)

// SetupRoutes registers every endpoint of the service.
func SetupRoutes(r *gin.Engine) {
	// --- Public routes ---
	// Class registry, the join flow and all read endpoints are open:
	// the PIN is the only shared secret and reads are class-scoped.
	classes := r.Group("/classes")
	{
		classes.GET("", handlers.ListClassesHandler)
		classes.POST("", handlers.CreateClassHandler)
		classes.GET("/:id/pins/export", handlers.ExportClassPinsHandler)
	}

	r.POST("/student/join", handlers.StudentJoinHandler)

	r.GET("/pins", handlers.ListPinsHandler)
	r.GET("/pins/:id", handlers.GetPinHandler)
	r.GET("/solutions", handlers.ListSolutionsHandler)
	r.GET("/feedback", handlers.GetFeedbackHandler)
	r.POST("/feedback", handlers.UpsertFeedbackHandler)
	r.POST("/upload", handlers.UploadFileHandler)

	r.GET("/geocode", handlers.GeocodeHandler)
	r.GET("/geocode/reverse", handlers.ReverseGeocodeHandler)

	// --- Session-protected routes ---
	// Mutations by students carry their identity in the session token.
	sessionRequired := r.Group("/")
	sessionRequired.Use(middleware.SessionMiddleware())
	{
		sessionRequired.POST("/pins", handlers.CreatePinHandler)
		sessionRequired.POST("/solutions", handlers.CreateSolutionHandler)
	}
}
