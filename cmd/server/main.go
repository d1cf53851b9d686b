package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/NikhilCode12/jira-team-bot/config"
	"github.com/NikhilCode12/jira-team-bot/internal/adapter/rest"
	"github.com/NikhilCode12/jira-team-bot/internal/core"
	"github.com/NikhilCode12/jira-team-bot/internal/jira"
	"github.com/NikhilCode12/jira-team-bot/internal/llm"
)

func main() {
	// 1. Init Config
	config.Init()

	// 2. Init Logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// 3. Init Upstream Clients
	jiraClient := jira.NewClient(config.AppConfig.Jira)
	summarizer := llm.NewGroqProvider(config.AppConfig.LLM)

	// 4. Init Workflow
	workflow := core.NewWorkflow(jiraClient, summarizer, logger,
		config.AppConfig.Jira.Project, config.AppConfig.Chat)

	// 5. Init REST Adapter (serves the form, the chat webhook and the
	// lookup proxies)
	port := config.AppConfig.Server.Port
	restAdapter := rest.NewAdapter(port, workflow, jiraClient,
		config.AppConfig.Jira.Project, logger)

	go func() {
		if err := restAdapter.Start(context.Background()); err != nil {
			log.Fatalf("REST Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")
}
