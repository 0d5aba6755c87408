// Command models lists the Gemini models that support content generation for
// the configured API key.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/llm/gemini"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/setup/logger"
)

func main() {
	_ = godotenv.Load()
	log := logger.NewConsole(os.Getenv("LOG_LEVEL"))

	ctx := context.Background()
	client, err := gemini.NewClient(ctx, os.Getenv("GOOGLE_API_KEY"), "")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	names, err := client.ListGenerativeModels(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list models")
	}

	for _, name := range names {
		fmt.Println(name)
	}
}
