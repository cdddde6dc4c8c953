package main

import (
	"context"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/namhkse/recomending-system/internal/config"
	"github.com/namhkse/recomending-system/internal/repository/implementation"
	"github.com/namhkse/recomending-system/pkg/catalog"
	"github.com/namhkse/recomending-system/pkg/database"
	"github.com/namhkse/recomending-system/pkg/embedding"
)

// Seeds the product catalog into Postgres with embeddings generated
// inline, so the API serves it immediately on next start.
func main() {
	cfg := config.Load()

	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set (seeding targets Postgres)")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}

	var provider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	case "hash":
		provider = embedding.NewHashProvider(cfg.Ai.EmbeddingDimension)
	default:
		provider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	repo := implementation.NewProductRepository(db)
	ctx := context.Background()

	products := catalog.Sample()
	color.Cyan("Seeding %d products (%s embeddings)...", len(products), cfg.Ai.EmbeddingProvider)

	if err := repo.DeleteAll(ctx); err != nil {
		log.Fatalf("Error: Failed to clear products table: %v", err)
	}

	failed := 0
	for i := range products {
		p := &products[i]
		res, err := provider.Generate(ctx, p.EmbedText(), embedding.TaskRetrievalDocument)
		if err != nil {
			color.Red("  ✗ %s: embedding failed: %v", p.Name, err)
			failed++
			continue
		}
		p.Embedding = res.Embedding.Values

		if err := repo.Upsert(ctx, p); err != nil {
			color.Red("  ✗ %s: insert failed: %v", p.Name, err)
			failed++
			continue
		}
		color.Green("  ✓ %s ($%.0f, %s)", p.Name, p.Price, p.Category)
	}

	if failed > 0 {
		color.Yellow("Done with %d failure(s)", failed)
		os.Exit(1)
	}
	color.Cyan("Done. %d products seeded.", len(products))
}
