/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/tieubaoca/docqa-be/config"
	"github.com/tieubaoca/docqa-be/database"
	"github.com/tieubaoca/docqa-be/handler"
	"github.com/tieubaoca/docqa-be/repository"
	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/storage"
)

// startServerCmd represents the startServer command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the document Q&A server",
	Long:  `Starts the HTTP server that handles document uploads and queries`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		mongoClient, err := database.NewMongoClient(context.Background(), cfg.MongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		mongoDb := mongoClient.Database(cfg.MongoDatabase)

		documentRepo := repository.NewDocumentRepo(mongoDb.Collection("documents"))

		localStorage, err := storage.NewLocalStorage(cfg.StorageDir)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}

		aiService, err := newCompletionService(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize AI service: %v", err)
		}

		tasks := service.NewTaskRunner()
		pdfService := service.NewPDFService()
		resolver := service.NewContentResolver(localStorage, documentRepo, pdfService, tasks)
		filter := service.NewRelevanceFilter(aiService, cfg.FastModel, cfg.Query)
		queryService := service.NewQueryService(
			documentRepo,
			resolver,
			filter,
			aiService,
			cfg.Model,
			cfg.Query,
			tasks,
		)
		wsService := service.NewWebSocketService(queryService)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		queryHandler := handler.NewQueryHandler(queryService)
		uploadHandler := handler.NewUploadHandler(localStorage, documentRepo)
		documentHandler := handler.NewDocumentHandler(documentRepo, localStorage)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		router.GET("/health", gin.WrapH(wsService.Health()))
		router.GET("/ws/query", func(c *gin.Context) {
			wsService.HandleQuery(c.Writer, c.Request)
		})

		apiV1 := router.Group("/api/v1")
		{
			apiV1.POST("/documents/query", queryHandler.HandleQuery)
			apiV1.POST("/documents/upload", uploadHandler.HandleUpload)
			apiV1.GET("/documents", documentHandler.HandleListDocuments)
			apiV1.DELETE("/documents/:id", documentHandler.HandleDeleteDocument)
		}

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

// newCompletionService picks the completion backend by configuration.
func newCompletionService(cfg *config.Config) (service.CompletionService, error) {
	if cfg.AIProvider == "gemini" {
		return service.NewGeminiService(context.Background(), cfg.GeminiAPIKey)
	}
	return service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey), nil
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
