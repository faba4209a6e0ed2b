package main

import (
	"log"
	"time"

	"worksheet-gateway/internal/client"
	"worksheet-gateway/internal/config"
	"worksheet-gateway/internal/db"
	"worksheet-gateway/internal/event"
	"worksheet-gateway/internal/handlers"
	"worksheet-gateway/internal/orchestrator"
	"worksheet-gateway/internal/repository"
	"worksheet-gateway/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if cfg.RabbitURI != "" && cfg.RabbitExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitURI, cfg.RabbitExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, worksheet events will not be published")
	}

	// Worksheet engine client and per-session orchestration
	engine := client.New(cfg.EngineURL, cfg.EngineTimeout)
	sessions := orchestrator.NewManager(engine)
	worksheetHandler := handlers.NewWorksheetHandler(sessions)
	log.Printf("Worksheet engine at %s", cfg.EngineURL)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", handlers.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", handlers.SessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	worksheets := r.Group("/api/worksheets")
	{
		worksheets.POST("/generate", func(c *gin.Context) {
			worksheetHandler.Generate(c)
			if publisher != nil {
				publisher.Publish("worksheet.generated", gin.H{
					"session_id": c.Writer.Header().Get(handlers.SessionHeader),
					"timestamp":  time.Now(),
				})
			}
		})
		worksheets.POST("/upload", func(c *gin.Context) {
			worksheetHandler.Upload(c)
			if publisher != nil {
				publisher.Publish("worksheet.uploaded", gin.H{
					"session_id": c.Writer.Header().Get(handlers.SessionHeader),
					"timestamp":  time.Now(),
				})
			}
		})
		worksheets.POST("/assemble", func(c *gin.Context) {
			worksheetHandler.Assemble(c)
			if publisher != nil {
				publisher.Publish("worksheet.assembled", gin.H{
					"session_id": c.Writer.Header().Get(handlers.SessionHeader),
					"timestamp":  time.Now(),
				})
			}
		})
		worksheets.POST("/evaluate", worksheetHandler.Evaluate)
		worksheets.POST("/export/:kind", func(c *gin.Context) {
			worksheetHandler.Export(c)
			if publisher != nil {
				publisher.Publish("worksheet.exported", gin.H{
					"session_id": c.Writer.Header().Get(handlers.SessionHeader),
					"kind":       c.Param("kind"),
					"timestamp":  time.Now(),
				})
			}
		})
		worksheets.GET("/state", worksheetHandler.State)
	}

	// Worksheet library needs mongo; the rest of the gateway does not.
	if cfg.MongoURI != "" {
		db.InitMongo(cfg.MongoURI)
		database := db.Client.Database("worksheet_gateway")

		worksheetRepo := repository.NewWorksheetRepository(database)
		libraryService := service.NewLibraryService(worksheetRepo)
		libraryHandler := handlers.NewLibraryHandler(libraryService, sessions)

		library := r.Group("/api/library")
		{
			library.POST("/", func(c *gin.Context) {
				libraryHandler.SaveWorksheet(c)
				if publisher != nil {
					publisher.Publish("worksheet.saved", gin.H{
						"session_id": c.Writer.Header().Get(handlers.SessionHeader),
						"timestamp":  time.Now(),
					})
				}
			})
			library.GET("/", libraryHandler.ListWorksheets)
			library.GET("/:id", libraryHandler.GetWorksheet)
			library.DELETE("/:id", libraryHandler.DeleteWorksheet)
		}
	} else {
		log.Println("MONGO_URI not set, worksheet library routes disabled")
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.String(200, "ok")
	})

	r.Run(":" + cfg.Port)
}
