package main

import (
	"context"
	"fmt"

	"github.com/NikhilCode12/jira-team-bot/config"
	"github.com/NikhilCode12/jira-team-bot/internal/jira"
	"github.com/NikhilCode12/jira-team-bot/internal/llm"
)

// Checks every upstream the service depends on, so credentials can be
// validated before exposing the form.
func main() {
	fmt.Println("🔍 Starting Upstream Health Check...")
	fmt.Println("----------------------------------------")

	config.Init()
	ctx := context.Background()

	jiraClient := jira.NewClient(config.AppConfig.Jira)
	project := config.AppConfig.Jira.Project

	// 1. Jira reads
	if components, err := jiraClient.GetComponents(ctx, project); err != nil {
		fmt.Printf("❌ Jira components (%s): %v\n", project, err)
	} else {
		fmt.Printf("✅ Jira components (%s): %d found\n", project, len(components))
	}

	if priorities, err := jiraClient.GetPriorities(ctx); err != nil {
		fmt.Printf("❌ Jira priorities: %v\n", err)
	} else {
		fmt.Printf("✅ Jira priorities: %d found\n", len(priorities))
	}

	if users, err := jiraClient.GetAssignableUsers(ctx, project, ""); err != nil {
		fmt.Printf("❌ Jira assignable users: %v\n", err)
	} else {
		fmt.Printf("✅ Jira assignable users: %d found\n", len(users))
	}

	// 2. Default chat component resolution
	componentID, err := jiraClient.ResolveDefaultComponent(ctx, project,
		[]string{config.AppConfig.Chat.DefaultComponentName, "RA FE", "RA-FE"},
		config.AppConfig.Chat.DefaultComponentID)
	if err != nil {
		fmt.Printf("❌ Default chat component: %v\n", err)
	} else if componentID == "" {
		fmt.Println("❌ Default chat component: none resolvable (chat flow will fail)")
	} else {
		fmt.Printf("✅ Default chat component: id %s\n", componentID)
	}

	// 3. Summarizer, both modes
	summarizer := llm.NewGroqProvider(config.AppConfig.LLM)
	const sample = "Login button on the dashboard does nothing after the last deploy."

	if summary, err := summarizer.Summarize(ctx, sample); err != nil {
		fmt.Printf("❌ Groq summary: %v\n", err)
	} else {
		fmt.Printf("✅ Groq summary: %q\n", summary)
	}

	if summary, description, err := summarizer.SummarizeWithDescription(ctx, sample); err != nil {
		fmt.Printf("❌ Groq summary+description: %v\n", err)
	} else {
		fmt.Printf("✅ Groq summary+description: %q (%d chars of description)\n", summary, len(description))
	}

	fmt.Println("----------------------------------------")
	fmt.Println("Done.")
}
