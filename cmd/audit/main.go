// Command audit runs one audit from the command line and prints the result
// as JSON on stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/setup"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/setup/logger"
)

func main() {
	chatPath := flag.String("chat", "", "path to the chat transcript JSON")
	contextPath := flag.String("context", "", "path to the context dump JSON")
	flag.Parse()

	_ = godotenv.Load()
	cfg := setup.LoadConfig()
	log := logger.NewConsole(cfg.LogLevel)

	if *chatPath == "" || *contextPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	chat, err := os.ReadFile(*chatPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *chatPath).Msg("Failed to read chat file")
	}
	contextDump, err := os.ReadFile(*contextPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *contextPath).Msg("Failed to read context file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := setup.Wire(ctx, cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	result, err := deps.Executor.Execute(ctx, chat, contextDump)
	if err != nil {
		log.Fatal().Err(err).Msg("Audit failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatal().Err(err).Msg("Failed to write result")
	}
}
