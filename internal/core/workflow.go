// Package core sequences the feedback flows: extract, summarize, resolve
// tracker ids, create the issue, attach screenshots.
package core

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/NikhilCode12/jira-team-bot/config"
	"github.com/NikhilCode12/jira-team-bot/internal/chat"
	"github.com/NikhilCode12/jira-team-bot/internal/model"
)

// Tracker is the slice of the issue tracker the flows need.
type Tracker interface {
	CreateIssue(ctx context.Context, fields model.IssueFields) (*model.IssueResult, error)
	AddAttachments(ctx context.Context, issueKey string, files []model.Attachment) error
	ResolveUserAccountID(ctx context.Context, projectKey, displayName string) (string, error)
	ResolvePriorityID(ctx context.Context, name string) (string, error)
	ResolveDefaultComponent(ctx context.Context, projectKey string, preferredNames []string, fallbackID string) (string, error)
}

// Summarizer produces the one-line issue title.
type Summarizer interface {
	Summarize(ctx context.Context, feedback string) (string, error)
}

type Workflow struct {
	Tracker    Tracker
	Summarizer Summarizer
	Logger     *zap.Logger

	Project string
	Chat    config.ChatConfig
}

func NewWorkflow(tracker Tracker, summarizer Summarizer, logger *zap.Logger, project string, chatCfg config.ChatConfig) *Workflow {
	return &Workflow{
		Tracker:    tracker,
		Summarizer: summarizer,
		Logger:     logger,
		Project:    project,
		Chat:       chatCfg,
	}
}

// CreateFromForm handles a manual form submission: the feedback text becomes
// the description verbatim and all metadata is caller-supplied.
func (w *Workflow) CreateFromForm(ctx context.Context, sub model.FormSubmission) (*model.IssueResult, error) {
	feedback := strings.TrimSpace(sub.Feedback)
	if feedback == "" {
		return nil, &model.ValidationError{Reason: "Feedback is required"}
	}

	summary, err := w.Summarizer.Summarize(ctx, feedback)
	if err != nil {
		return nil, err
	}

	result, err := w.Tracker.CreateIssue(ctx, model.IssueFields{
		Summary:             summary,
		Description:         feedback,
		Sprint:              sub.Sprint,
		ComponentID:         sub.ComponentID,
		PriorityID:          sub.PriorityID,
		AssigneeAccountID:   sub.AssigneeAccountID,
		Environment:         sub.Environment,
		Module:              sub.Module,
		CustomerReportedBug: sub.CustomerReportedBug,
		CustomerName:        sub.CustomerName,
	})
	if err != nil {
		return nil, err
	}
	w.Logger.Info("Issue created from form", zap.String("key", result.Key))

	w.attachBestEffort(ctx, result.Key, sub.Screenshots)
	return result, nil
}

// CreateFromChat handles a chat-triggered submission: fields are extracted
// from the message, the cleaned message becomes the description, and a
// default component is mandatory.
func (w *Workflow) CreateFromChat(ctx context.Context, sub model.ChatSubmission) (*model.ChatResult, error) {
	if !sub.SkipTriggerCheck && !chat.HasTrigger(sub.Message) {
		return nil, &model.ValidationError{
			Reason: "Message must contain #ZProdBug or #TeamsJIRABugBot. Use skip_trigger_check=true to test without trigger.",
		}
	}

	customerName := strings.TrimSpace(sub.CustomerName)
	if customerName == "" {
		customerName = chat.ExtractCustomerName(sub.Message)
	}

	assigneeName := chat.ExtractAssignee(sub.Message, w.Chat.DefaultAssignee)
	assigneeAccountID, err := w.Tracker.ResolveUserAccountID(ctx, w.Project, assigneeName)
	if err != nil {
		return nil, err
	}
	// No matching user just means the issue goes out unassigned.

	priorityName := chat.ExtractPriority(sub.Message)
	var priorityID string
	if priorityName != "" {
		priorityID, err = w.Tracker.ResolvePriorityID(ctx, priorityName)
		if err != nil {
			return nil, err
		}
	}

	cleaned := chat.CleanMessage(sub.Message)

	summary, err := w.Summarizer.Summarize(ctx, cleaned)
	if err != nil {
		return nil, err
	}

	componentID, err := w.Tracker.ResolveDefaultComponent(ctx, w.Project,
		[]string{w.Chat.DefaultComponentName, "RA FE", "RA-FE"},
		w.Chat.DefaultComponentID)
	if err != nil {
		return nil, err
	}
	if componentID == "" {
		return nil, &model.ConfigurationError{
			Reason: "Project requires a component. Set DEFAULT_CHAT_COMPONENT_ID in .env to your " +
				w.Chat.DefaultComponentName + " component id, or add a component to the project.",
		}
	}

	if customerName == "" {
		customerName = "NA"
	}

	result, err := w.Tracker.CreateIssue(ctx, model.IssueFields{
		Summary:           summary,
		Description:       cleaned,
		ComponentID:       componentID,
		PriorityID:        priorityID,
		AssigneeAccountID: assigneeAccountID,
		CustomerName:      customerName,
	})
	if err != nil {
		return nil, err
	}
	w.Logger.Info("Issue created from chat",
		zap.String("key", result.Key),
		zap.String("assignee", assigneeName),
		zap.String("priority", priorityName))

	w.attachBestEffort(ctx, result.Key, sub.Screenshots)

	return &model.ChatResult{
		Key:          result.Key,
		URL:          result.URL,
		CustomerName: customerName,
		Assignee:     assigneeName,
		Priority:     priorityName,
	}, nil
}

// attachBestEffort uploads screenshots without failing the request: the
// issue already exists, losing an attachment is acceptable. At most 4 files
// are sent and files without content are skipped.
func (w *Workflow) attachBestEffort(ctx context.Context, issueKey string, screenshots []model.Attachment) {
	if len(screenshots) > 4 {
		screenshots = screenshots[:4]
	}
	var files []model.Attachment
	for _, f := range screenshots {
		if f.Filename == "" || len(f.Content) == 0 {
			continue
		}
		if f.ContentType == "" {
			f.ContentType = "application/octet-stream"
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return
	}
	if err := w.Tracker.AddAttachments(ctx, issueKey, files); err != nil {
		w.Logger.Warn("Attachment upload failed",
			zap.String("key", issueKey),
			zap.Error(err))
	}
}
