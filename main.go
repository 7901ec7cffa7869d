package main

import (
	"fmt"
	"log"
	"os"

	"content-calendar-backend/config"
	"content-calendar-backend/models"
	"content-calendar-backend/routes"
	"content-calendar-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Content{},
		&models.ReminderLog{},
	)
}

func main() {
	emailService := services.NewEmailService()
	reminderService := services.NewReminderService(config.DB, emailService)
	reminderService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
