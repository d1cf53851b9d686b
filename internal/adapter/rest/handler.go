package rest

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NikhilCode12/jira-team-bot/internal/core"
	"github.com/NikhilCode12/jira-team-bot/internal/model"
)

// TrackerReader is the read-only slice of the tracker the proxy endpoints use.
type TrackerReader interface {
	GetComponents(ctx context.Context, projectKey string) ([]model.Component, error)
	GetPriorities(ctx context.Context) ([]model.Priority, error)
	GetAssignableUsers(ctx context.Context, projectKey, query string) ([]model.User, error)
}

type Adapter struct {
	Workflow *core.Workflow
	Reader   TrackerReader
	Logger   *zap.Logger
	Port     string
	Project  string
}

func NewAdapter(port string, workflow *core.Workflow, reader TrackerReader, project string, logger *zap.Logger) *Adapter {
	return &Adapter{
		Workflow: workflow,
		Reader:   reader,
		Logger:   logger,
		Port:     port,
		Project:  project,
	}
}

func (a *Adapter) Start(ctx context.Context) error {
	r := a.Router()
	a.Logger.Info("Starting REST API server", zap.String("port", a.Port))
	return r.Run(":" + a.Port)
}

func (a *Adapter) Router() *gin.Engine {
	r := gin.Default()

	r.POST("/create-jira", a.handleCreateJira)
	r.POST("/create-jira-from-chat", a.handleCreateJiraFromChat)
	r.GET("/api/components", a.handleComponents)
	r.GET("/api/priorities", a.handlePriorities)
	r.GET("/api/assignable-users", a.handleAssignableUsers)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func (a *Adapter) handleCreateJira(c *gin.Context) {
	sub := model.FormSubmission{
		Feedback:            c.PostForm("feedback"),
		Sprint:              c.PostForm("sprint"),
		ComponentID:         c.PostForm("component_id"),
		PriorityID:          c.PostForm("priority_id"),
		AssigneeAccountID:   c.PostForm("assignee_account_id"),
		Environment:         c.PostForm("environment"),
		Module:              c.PostForm("module"),
		CustomerReportedBug: c.PostForm("customer_reported_bug"),
		CustomerName:        c.PostForm("customer_name"),
		Screenshots:         a.screenshots(c),
	}

	result, err := a.Workflow.CreateFromForm(c.Request.Context(), sub)
	if err != nil {
		a.fail(c, err, http.StatusUnprocessableEntity)
		return
	}
	c.JSON(http.StatusOK, result)
}

type chatRequest struct {
	Message      string      `json:"message"`
	CustomerName string      `json:"customer_name"`
	SkipTrigger  interface{} `json:"skip_trigger_check"`
}

func (a *Adapter) handleCreateJiraFromChat(c *gin.Context) {
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(c.ContentType(), ";")[0]))

	var sub model.ChatSubmission
	if contentType == "application/json" {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
			return
		}
		sub = model.ChatSubmission{
			Message:          strings.TrimSpace(req.Message),
			CustomerName:     req.CustomerName,
			SkipTriggerCheck: parseSkipTrigger(req.SkipTrigger),
		}
	} else {
		sub = model.ChatSubmission{
			Message:          strings.TrimSpace(c.PostForm("message")),
			CustomerName:     c.PostForm("customer_name"),
			SkipTriggerCheck: parseSkipTrigger(c.PostForm("skip_trigger_check")),
			Screenshots:      a.screenshots(c),
		}
	}

	if sub.Message == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "message is required"})
		return
	}

	result, err := a.Workflow.CreateFromChat(c.Request.Context(), sub)
	if err != nil {
		// The trigger gate is the caller's contract violation, reported as a
		// plain 400 rather than 422.
		a.fail(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (a *Adapter) handleComponents(c *gin.Context) {
	components, err := a.Reader.GetComponents(c.Request.Context(), a.Project)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, components)
}

func (a *Adapter) handlePriorities(c *gin.Context) {
	priorities, err := a.Reader.GetPriorities(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, priorities)
}

func (a *Adapter) handleAssignableUsers(c *gin.Context) {
	users, err := a.Reader.GetAssignableUsers(c.Request.Context(), a.Project, c.Query("query"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// fail maps workflow errors to HTTP statuses. validationStatus is the status
// for ValidationError, which differs between the two flows.
func (a *Adapter) fail(c *gin.Context, err error, validationStatus int) {
	var validation *model.ValidationError
	var configuration *model.ConfigurationError

	switch {
	case errors.As(err, &validation):
		c.JSON(validationStatus, gin.H{"detail": validation.Reason})
	case errors.As(err, &configuration):
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": configuration.Reason})
	default:
		a.Logger.Error("Workflow failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
	}
}

// screenshots reads up to 4 uploaded files into memory. Accepts both
// "screenshots" and "screenshots[]" field names.
func (a *Adapter) screenshots(c *gin.Context) []model.Attachment {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	files := form.File["screenshots"]
	if len(files) == 0 {
		files = form.File["screenshots[]"]
	}
	if len(files) > 4 {
		files = files[:4]
	}

	var attachments []model.Attachment
	for _, fh := range files {
		if fh.Filename == "" {
			continue
		}
		content, err := readFile(fh)
		if err != nil || len(content) == 0 {
			continue
		}
		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}
		attachments = append(attachments, model.Attachment{
			Filename:    fh.Filename,
			Content:     content,
			ContentType: ct,
		})
	}
	return attachments
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func parseSkipTrigger(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64: // JSON numbers decode as float64
		return v == 1
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "on", "yes":
			return true
		}
	}
	return false
}
