/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/docqa-be/config"
	"github.com/tieubaoca/docqa-be/database"
	"github.com/tieubaoca/docqa-be/repository"
	"github.com/tieubaoca/docqa-be/storage"
)

// batchUploadDocumentCmd represents the batchUploadDocument command
var batchUploadDocumentCmd = &cobra.Command{
	Use:   "batch-upload-document",
	Short: "Upload every PDF in a directory",
	Long: `Walks a directory and uploads every PDF file in it, storing bytes,
extracting text and creating one document record per file.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		directory, _ := cmd.Flags().GetString("directory")

		if directory == "" {
			log.Fatal("The --directory flag is required")
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

		files, err := os.ReadDir(directory)
		if err != nil {
			log.Fatalf("Failed to read directory: %v", err)
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			if strings.ToLower(filepath.Ext(file.Name())) != ".pdf" {
				continue
			}
			filePath := filepath.Join(directory, file.Name())
			if err := uploadDocument(filePath, "", localStorage, documentRepo); err != nil {
				log.Printf("Failed to upload document %s: %v", filePath, err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(batchUploadDocumentCmd)

	batchUploadDocumentCmd.Flags().String("directory", "", "Path to the directory to upload")
	batchUploadDocumentCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
