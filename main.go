package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/abhishekkumawat-47/bajaj-chatbot/api"
	"github.com/abhishekkumawat-47/bajaj-chatbot/chat"
	"github.com/abhishekkumawat-47/bajaj-chatbot/config"
	"github.com/abhishekkumawat-47/bajaj-chatbot/database"
	"github.com/abhishekkumawat-47/bajaj-chatbot/docstore"
	"github.com/abhishekkumawat-47/bajaj-chatbot/llm"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	switch os.Args[1] {
	case "serve":
		serveCmd(cfg, logger, os.Args[2:])
	case "ask":
		askCmd(cfg, logger, os.Args[2:])
	case "docs":
		docsCmd(cfg, logger, os.Args[2:])
	default:
		logger.Printf("unknown command: %s", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func serveCmd(cfg config.Config, logger *log.Logger, args []string) {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := flags.String("addr", cfg.ListenAddr, "address for the HTTP API to listen on")
	docsDir := flags.String("docs", cfg.DocsDir, "path to the reference documents directory")
	if err := flags.Parse(args); err != nil {
		logger.Fatalf("parse serve flags: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loader := docstore.NewLoader(*docsDir, cfg.DocExtensions)

	llmClient, err := llm.NewClient(cfg)
	if err != nil {
		logger.Fatalf("llm setup: %v", err)
	}

	svc := chat.NewService(loader, llmClient, logger)

	var transcripts api.TranscriptRecorder
	if cfg.PostgresDSN != "" {
		pool, err := database.NewPostgresPool(ctx, cfg.PostgresDSN)
		if err != nil {
			logger.Fatalf("postgres connection: %v", err)
		}
		defer pool.Close()

		if err := database.EnsureTranscriptSchema(ctx, pool); err != nil {
			logger.Fatalf("ensure transcript schema: %v", err)
		}
		transcripts = database.NewTranscriptStore(pool)
		logger.Println("chat transcript log enabled")
	}

	logger.Printf("answering questions from %s using the %s provider", *docsDir, cfg.Provider)

	server := api.New(svc, loader, transcripts, cfg.Provider, logger)
	if err := server.Start(ctx, *addr); err != nil {
		logger.Fatalf("serve failed: %v", err)
	}
}

func askCmd(cfg config.Config, logger *log.Logger, args []string) {
	flags := flag.NewFlagSet("ask", flag.ExitOnError)
	question := flags.String("question", "", "question to ask about the reference documents")
	docsDir := flags.String("docs", cfg.DocsDir, "path to the reference documents directory")
	if err := flags.Parse(args); err != nil {
		logger.Fatalf("parse ask flags: %v", err)
	}

	if strings.TrimSpace(*question) == "" {
		fmt.Print("Enter your question: ")
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			*question = scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			logger.Fatalf("read question: %v", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loader := docstore.NewLoader(*docsDir, cfg.DocExtensions)

	llmClient, err := llm.NewClient(cfg)
	if err != nil {
		logger.Fatalf("llm setup: %v", err)
	}

	svc := chat.NewService(loader, llmClient, logger)

	resp, err := svc.Answer(ctx, *question)
	if err != nil {
		logger.Fatalf("ask failed: %v", err)
	}

	fmt.Println(resp.Reply)
}

func docsCmd(cfg config.Config, logger *log.Logger, args []string) {
	flags := flag.NewFlagSet("docs", flag.ExitOnError)
	docsDir := flags.String("docs", cfg.DocsDir, "path to the reference documents directory")
	if err := flags.Parse(args); err != nil {
		logger.Fatalf("parse docs flags: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loader := docstore.NewLoader(*docsDir, cfg.DocExtensions)
	names, err := loader.Names(ctx)
	if err != nil {
		logger.Fatalf("list documents: %v", err)
	}

	if len(names) == 0 {
		fmt.Printf("no reference documents in %s\n", *docsDir)
		return
	}
	for _, name := range names {
		fmt.Println(name)
	}
}

func printUsage() {
	fmt.Println("Usage: bajaj-chatbot <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  serve    Run the chat HTTP API")
	fmt.Println("  ask      Answer a single question from the command line")
	fmt.Println("  docs     List the reference documents the loader can see")
}
