// Command models prints the Gemini models the configured key can use for
// content generation.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/01moynul/ytgenius-golang/internal/ai"
	"github.com/01moynul/ytgenius-golang/internal/config"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.GeminiAPIKey == "" {
		log.Fatal(config.ErrMissingGeminiKey)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.AITimeout+5*time.Second)
	defer cancel()

	aiService, err := ai.NewAIService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Failed to initialize AI Service: %v", err)
	}
	defer aiService.Close()

	names, err := aiService.ListContentModels(ctx)
	if err != nil {
		log.Fatalf("Failed to list models: %v", err)
	}

	fmt.Println("Models supporting generateContent:")
	for _, name := range names {
		marker := " "
		if name == "models/"+cfg.GeminiModel {
			marker = "*"
		}
		fmt.Printf(" %s %s\n", marker, name)
	}
}
