/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tieubaoca/docqa-be/config"
	"github.com/tieubaoca/docqa-be/database"
	"github.com/tieubaoca/docqa-be/repository"
	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/storage"
	"github.com/tieubaoca/docqa-be/types"
)

// uploadDocumentCmd represents the uploadDocument command
var uploadDocumentCmd = &cobra.Command{
	Use:   "upload-document",
	Short: "Upload a single PDF document from disk",
	Long: `Reads a PDF file, stores its bytes, extracts its text and creates a
document record. Useful for seeding the collection without going
through the HTTP upload endpoint.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		filePath, _ := cmd.Flags().GetString("file")
		title, _ := cmd.Flags().GetString("title")

		if filePath == "" {
			log.Fatal("The --file flag is required")
		}

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		mongoClient, err := database.NewMongoClient(context.Background(), cfg.MongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		documentRepo := repository.NewDocumentRepo(
			mongoClient.Database(cfg.MongoDatabase).Collection("documents"))

		localStorage, err := storage.NewLocalStorage(cfg.StorageDir)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}

		if err := uploadDocument(filePath, title, localStorage, documentRepo); err != nil {
			log.Fatalf("Failed to upload document: %v", err)
		}
	},
}

func uploadDocument(filePath string, title string, store storage.Storage, repo repository.DocumentRepo) error {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext != ".pdf" {
		return fmt.Errorf("unsupported file type: %s", ext)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if title == "" {
		title = service.GetFileNameWithoutExt(filePath)
	}

	id := uuid.NewString()
	path := fmt.Sprintf("documents/%s%s", id, ext)
	storedPath, err := store.Upload(context.Background(), path, data)
	if err != nil {
		return err
	}

	// Extract eagerly so the first query does not pay the cost.
	pdfService := service.NewPDFService()
	content := pdfService.ExtractText(data)
	if strings.TrimSpace(content) == "" {
		content = service.PlaceholderContent
	}

	doc := &types.Document{
		ID:       id,
		Title:    title,
		FilePath: storedPath,
		Content:  content,
	}
	if err := repo.CreateDocument(context.Background(), doc); err != nil {
		return err
	}
	fmt.Println("Uploaded document", id, "-", title)
	return nil
}

func init() {
	rootCmd.AddCommand(uploadDocumentCmd)

	uploadDocumentCmd.Flags().StringP("file", "f", "", "Path to the PDF file to upload")
	uploadDocumentCmd.Flags().StringP("title", "t", "", "Document title (defaults to the file name)")
	uploadDocumentCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
