package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mergington/activities-board/internal/transport/middleware"
)

func InitRoutes(boardHandler *BoardHandler, templatesGlob string) *gin.Engine {

	router := gin.New()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30))

	router.Static("/static", "./web/static")
	router.LoadHTMLGlob(templatesGlob)

	// Board routes
	router.GET("/", boardHandler.ShowBoard)
	router.GET("/reload", boardHandler.ReloadBoard)
	router.POST("/signup", boardHandler.SubmitSignup)
	router.POST("/activities/:name/unregister", boardHandler.Unregister)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	return router
}
