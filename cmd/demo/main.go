package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/namhkse/recomending-system/pkg/catalog"
	"github.com/namhkse/recomending-system/pkg/embedding"
	"github.com/namhkse/recomending-system/pkg/index"
	"github.com/namhkse/recomending-system/pkg/recsys/extract"
	"github.com/namhkse/recomending-system/pkg/recsys/pipeline"
	"github.com/namhkse/recomending-system/pkg/recsys/response"
	"github.com/namhkse/recomending-system/pkg/recsys/state"
)

// Interactive console demo. Runs entirely offline: in-memory index,
// deterministic hash embeddings, template replies.
func main() {
	logger := log.New(io.Discard, "", 0)
	ctx := context.Background()

	provider := embedding.NewHashProvider(256)
	products := catalog.Sample()
	for i := range products {
		res, err := provider.Generate(ctx, products[i].EmbedText(), embedding.TaskRetrievalDocument)
		if err != nil {
			log.Fatalf("embed catalog: %v", err)
		}
		products[i].Embedding = res.Embedding.Values
	}

	backend := index.NewMemoryBackend()
	if err := backend.Replace(ctx, products); err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	engine := pipeline.New(
		extract.NewExtractor(extract.NewVocabulary(products), logger),
		state.NewManager(state.DefaultMaxTurns, logger),
		index.New(backend, index.DefaultPoolRetries, logger),
		provider,
		pipeline.DefaultConfig(),
		logger,
	)
	generator := response.NewGenerator(nil, logger)
	session := state.NewSession(uuid.NewString())

	color.Cyan("Product finder demo. %d products loaded.", len(products))
	color.Cyan("Tell me what you need (e.g. \"a phone under $1200 for photography\"). Ctrl-D to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		utterance := strings.TrimSpace(scanner.Text())
		if utterance == "" {
			continue
		}

		res, err := engine.Turn(ctx, session, utterance)
		if err != nil {
			color.Red("error: %v", err)
			continue
		}

		fmt.Println(generator.Narrate(ctx, utterance, res))
		for _, item := range res.Items {
			color.Green("  %-28s $%-7.0f score %.2f", item.Product.Name, item.Product.Price, item.Combined)
		}
		fmt.Println()
	}
}
