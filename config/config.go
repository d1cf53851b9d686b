package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:",squash"`
	Jira   JiraConfig   `mapstructure:",squash"`
	Chat   ChatConfig   `mapstructure:",squash"`
	LLM    LLMConfig    `mapstructure:",squash"`
}

type ServerConfig struct {
	Port string `mapstructure:"PORT"`
}

type JiraConfig struct {
	BaseURL  string `mapstructure:"JIRA_BASE_URL"`
	Email    string `mapstructure:"JIRA_EMAIL"`
	APIToken string `mapstructure:"JIRA_API_TOKEN"`
	Project  string `mapstructure:"JIRA_PROJECT"`

	// Epic Link field id (e.g. customfield_10014). Empty means the epic link
	// is not written on create.
	EpicFieldID string `mapstructure:"JIRA_EPIC_FIELD_ID"`

	IssueType string
	Label     string
	EpicLink  string

	// Custom field ids for the Bug screen.
	CFEnvironment         string
	CFCustomerReportedBug string
	CFCustomerName        string
	CFModule              string
}

type ChatConfig struct {
	// Component used when a chat message carries no component hint.
	DefaultComponentName string `mapstructure:"DEFAULT_CHAT_COMPONENT_NAME"`
	// Component id fallback when the name lookup fails (e.g. "12345").
	DefaultComponentID string `mapstructure:"DEFAULT_CHAT_COMPONENT_ID"`
	DefaultAssignee    string `mapstructure:"DEFAULT_CHAT_ASSIGNEE"`
}

type LLMConfig struct {
	APIKey    string `mapstructure:"GROQ_API_KEY"`
	APIURL    string `mapstructure:"GROQ_API_URL"`
	ModelName string `mapstructure:"GROQ_MODEL"` // e.g. "llama-3.1-8b-instant"
}

var AppConfig *Config

func Init() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, relying on environment variables: %v", err)
	}

	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct: %v", err)
	}

	// Set default values if needed
	if AppConfig.Server.Port == "" {
		AppConfig.Server.Port = "8080"
	}
	AppConfig.Jira.BaseURL = strings.TrimRight(AppConfig.Jira.BaseURL, "/")
	if AppConfig.Jira.Project == "" {
		AppConfig.Jira.Project = "ZRA"
	}
	AppConfig.Jira.EpicFieldID = strings.TrimSpace(AppConfig.Jira.EpicFieldID)

	// Only project and credentials come from the environment; the rest of the
	// Bug screen is fixed for this workflow.
	AppConfig.Jira.IssueType = "Bug"
	AppConfig.Jira.Label = "BetaConnect"
	AppConfig.Jira.EpicLink = "ZRA-51"
	AppConfig.Jira.CFEnvironment = "customfield_14669"
	AppConfig.Jira.CFCustomerReportedBug = "customfield_15855"
	AppConfig.Jira.CFCustomerName = "customfield_15856"
	AppConfig.Jira.CFModule = "customfield_14720"

	if AppConfig.Chat.DefaultComponentName == "" {
		AppConfig.Chat.DefaultComponentName = "RA_FE"
	}
	AppConfig.Chat.DefaultComponentID = strings.TrimSpace(AppConfig.Chat.DefaultComponentID)
	if AppConfig.Chat.DefaultAssignee == "" {
		AppConfig.Chat.DefaultAssignee = "Aeras Alvi"
	}

	if AppConfig.LLM.APIURL == "" {
		AppConfig.LLM.APIURL = "https://api.groq.com"
	}
	if AppConfig.LLM.ModelName == "" {
		AppConfig.LLM.ModelName = "llama-3.1-8b-instant"
	}
}
