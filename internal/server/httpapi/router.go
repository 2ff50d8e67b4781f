// Package httpapi exposes the guest store's JSON contract over gin.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/plannly/guestsync/internal/logging"
	"github.com/plannly/guestsync/internal/server/shared/db"
)

// SetupRouter builds the gin engine serving the store API. Every /api
// route sits behind the token middleware.
func SetupRouter(rm db.RepositoryManager, secret []byte, log logging.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	h := NewHandler(rm, log)

	api := router.Group("/api")
	api.Use(TokenMiddleware(secret))
	{
		api.GET("/guests", h.ListGuests)
		api.POST("/guests", h.CreateGuest)
		api.PUT("/guests/:id", h.UpdateGuest)
		api.DELETE("/guests/:id", h.DeleteGuest)
		api.DELETE("/guests/delete-all", h.DeleteAllGuests)
		api.POST("/guests/cleanup-duplicates", h.CleanupDuplicates)

		api.GET("/accounts/:id", h.GetAccount)
		api.POST("/accounts", h.CreateAccount)
		api.PUT("/accounts/:id", h.UpdateAccount)
	}

	return router
}
