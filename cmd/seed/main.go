package main

import (
	"context"
	"flag"
	"log"

	"huddleup-faq-be/internal/config"
	"huddleup-faq-be/internal/pkg/logger"
	"huddleup-faq-be/internal/repository/unitofwork"
	"huddleup-faq-be/internal/service"
	"huddleup-faq-be/pkg/database"
	"huddleup-faq-be/pkg/embedding"
)

func main() {
	file := flag.String("file", "cmd/seed/data/knowledge.yaml", "YAML file with faqs and documents")
	skipEmbed := flag.Bool("skip-embed", false, "only insert rows, leave embeddings for later")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	data, err := loadSeedFile(*file)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)
	seeder := &knowledgeSeeder{uowFactory: uowFactory}

	if !*skipEmbed {
		provider, err := embedding.NewProvider(ctx, embedding.Params{
			Provider:   cfg.Ai.EmbeddingProvider,
			Model:      cfg.Ai.EmbeddingModel,
			BaseURL:    cfg.Ai.EmbeddingBaseURL,
			APIKey:     cfg.Ai.EmbeddingAPIKey,
			Dimensions: cfg.Ai.EmbeddingDimensions,
		})
		if err != nil {
			log.Fatalf("Error: embedding provider: %v (use -skip-embed to seed rows only)", err)
		}
		// jobs are handled inline, the consumer never subscribes
		seeder.embedder = service.NewConsumerService(nil, cfg.App.EmbedTopic, uowFactory, provider, logger.NewConsoleLogger())
	}

	log.Printf("Seeding knowledge base from %s...", *file)
	summary, err := seeder.Seed(ctx, data)
	if err != nil {
		log.Fatalf("Error: seeding failed: %v", err)
	}

	log.Printf("FAQs: %d created, %d skipped", summary.FaqsCreated, summary.FaqsSkipped)
	log.Printf("Documents: %d created, %d skipped, %d chunks", summary.DocumentsCreated, summary.DocumentsSkipped, summary.Chunks)
	log.Printf("Embeddings: %d stored, %d failed", summary.Embedded, summary.EmbedFailures)
	log.Println("✅ Knowledge base seeding completed!")
}
