package main

import (
	"flag"
	"log"
	"net/http"
	"strconv"

	"worksheethub/config"
	"worksheethub/db"
	"worksheethub/routes"
	"worksheethub/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "./config/config.yml", "path to the yaml config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	services.InitWorksheetService(cfg)

	// The preference store is optional; generation works without it.
	if cfg.Database.URI != "" {
		if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		log.Println("Connected to MongoDB")
	} else {
		log.Println("No database URI configured; preference routes disabled")
	}

	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}
	if len(cfg.Server.AllowedOrigins) == 1 && cfg.Server.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	}
	router.Use(cors.New(corsConfig))

	// Pre-flight negotiation for cross-origin callers.
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Wrong-method requests get an explicit 405 instead of gin's 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	router.POST("/api/generate", routes.GenerateWorksheetRouteHandler)
	router.POST("/api/worksheets/render", routes.RenderWorksheetRouteHandler)
	router.POST("/api/prompt", routes.BuildPromptRouteHandler)
	router.GET("/api/preferences/:clientId", routes.GetPreferenceRouteHandler)
	router.PUT("/api/preferences/:clientId", routes.SavePreferenceRouteHandler)

	return router
}
