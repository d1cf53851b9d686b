// Package jira is a minimal client for the Jira Cloud REST API, covering
// only the operations the feedback workflow needs.
package jira

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/NikhilCode12/jira-team-bot/config"
	"github.com/NikhilCode12/jira-team-bot/internal/model"
)

const (
	readTimeout   = 15 * time.Second
	createTimeout = 30 * time.Second
	attachTimeout = 60 * time.Second
)

type Client struct {
	client *resty.Client
	config config.JiraConfig
}

func NewClient(cfg config.JiraConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetBasicAuth(cfg.Email, cfg.APIToken).
		SetHeader("Accept", "application/json")

	return &Client{
		client: client,
		config: cfg,
	}
}

// GetComponents fetches the components of a project.
func (c *Client) GetComponents(ctx context.Context, projectKey string) ([]model.Component, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var components []model.Component
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&components).
		Get("/rest/api/3/project/" + projectKey + "/components")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, upstreamError(resp)
	}
	return components, nil
}

// GetPriorities fetches all priorities.
func (c *Client) GetPriorities(ctx context.Context) ([]model.Priority, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var priorities []model.Priority
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&priorities).
		Get("/rest/api/3/priority")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, upstreamError(resp)
	}
	return priorities, nil
}

// GetAssignableUsers searches users assignable to the project.
func (c *Client) GetAssignableUsers(ctx context.Context, projectKey, query string) ([]model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	params := map[string]string{
		"project":    projectKey,
		"maxResults": "50",
	}
	if q := strings.TrimSpace(query); q != "" {
		params["query"] = q
	}

	var users []model.User
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&users).
		Get("/rest/api/3/user/assignable/search")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, upstreamError(resp)
	}
	return users, nil
}

// ResolveComponentID returns the id of the component with the given name
// (case-insensitive), or "" if the project has no such component.
func (c *Client) ResolveComponentID(ctx context.Context, projectKey, name string) (string, error) {
	components, err := c.GetComponents(ctx, projectKey)
	if err != nil {
		return "", err
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for _, comp := range components {
		if strings.ToLower(strings.TrimSpace(comp.Name)) == want {
			return comp.ID, nil
		}
	}
	return "", nil
}

// ResolveUserAccountID finds a user's account id by display name. The match
// is a case-insensitive substring, first hit wins. "" when nobody matches.
func (c *Client) ResolveUserAccountID(ctx context.Context, projectKey, displayName string) (string, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return "", nil
	}
	users, err := c.GetAssignableUsers(ctx, projectKey, displayName)
	if err != nil {
		return "", err
	}
	want := strings.ToLower(displayName)
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.DisplayName), want) {
			return u.AccountID, nil
		}
	}
	return "", nil
}

// ResolvePriorityID finds a priority id by name (case-insensitive equality).
func (c *Client) ResolvePriorityID(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	priorities, err := c.GetPriorities(ctx)
	if err != nil {
		return "", err
	}
	want := strings.ToLower(name)
	for _, p := range priorities {
		if strings.ToLower(p.Name) == want {
			return p.ID, nil
		}
	}
	return "", nil
}

// ResolveDefaultComponent picks the component for chat-created issues: each
// preferred name in order, then the configured fallback id, then the first
// component the project returns. "" only when all three come up empty.
func (c *Client) ResolveDefaultComponent(ctx context.Context, projectKey string, preferredNames []string, fallbackID string) (string, error) {
	for _, name := range preferredNames {
		if strings.TrimSpace(name) == "" {
			continue
		}
		id, err := c.ResolveComponentID(ctx, projectKey, name)
		if err != nil {
			return "", err
		}
		if id != "" {
			return id, nil
		}
	}
	if id := strings.TrimSpace(fallbackID); id != "" {
		return id, nil
	}
	components, err := c.GetComponents(ctx, projectKey)
	if err != nil {
		return "", err
	}
	if len(components) > 0 && components[0].ID != "" {
		return components[0].ID, nil
	}
	return "", nil
}
