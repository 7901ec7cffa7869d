package routes

import (
	"os"

	"content-calendar-backend/config"
	"content-calendar-backend/controllers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Social Media Calendar API is running!"})
	})

	api := r.Group("/api")
	{
		content := api.Group("/content")
		{
			content.POST("", controllers.CreateContent)
			content.GET("", controllers.GetContent)
			content.GET("/by-date", controllers.GetContentByDate)
			content.PUT("/:id", controllers.UpdateContent)
			content.DELETE("/:id", controllers.DeleteContent)
		}
	}

	return r
}
