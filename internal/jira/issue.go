package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/NikhilCode12/jira-team-bot/internal/model"
)

// descriptionToADF converts plain text into an Atlassian Document Format
// document, one paragraph per line. Blank lines become empty paragraphs so
// vertical spacing survives.
func descriptionToADF(text string) map[string]interface{} {
	content := []map[string]interface{}{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			content = append(content, map[string]interface{}{
				"type":    "paragraph",
				"content": []map[string]interface{}{},
			})
			continue
		}
		content = append(content, map[string]interface{}{
			"type": "paragraph",
			"content": []map[string]interface{}{
				{"type": "text", "text": line},
			},
		})
	}
	if len(content) == 0 {
		fallback := text
		if fallback == "" {
			fallback = "—"
		}
		content = []map[string]interface{}{{
			"type": "paragraph",
			"content": []map[string]interface{}{
				{"type": "text", "text": fallback},
			},
		}}
	}
	return map[string]interface{}{"type": "doc", "version": 1, "content": content}
}

// sanitizeSummary collapses the summary to a single line of at most 255
// characters. Jira rejects newlines in summaries. The cap counts runes so
// multibyte text is never cut mid-character.
func sanitizeSummary(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if runes := []rune(s); len(runes) > 255 {
		s = string(runes[:255])
	}
	if s == "" {
		return "Bug"
	}
	return s
}

// CreateIssue creates a Bug with the workflow's fixed labels, issue type and
// custom fields. Optional fields left empty get the screen defaults
// (Production / Super Admin / No / NA). Returns the issue key and browse URL.
func (c *Client) CreateIssue(ctx context.Context, f model.IssueFields) (*model.IssueResult, error) {
	envVal := strings.TrimSpace(f.Environment)
	if envVal == "" {
		envVal = "Production"
	}
	modVal := strings.TrimSpace(f.Module)
	if modVal == "" {
		modVal = "Super Admin"
	}
	crbVal := f.CustomerReportedBug
	if crbVal == "" {
		crbVal = "No"
	}
	crbVal = capitalize(crbVal)
	cnameVal := strings.TrimSpace(f.CustomerName)
	if cnameVal == "" {
		cnameVal = "NA"
	}

	fields := map[string]interface{}{
		"project":     map[string]string{"key": c.config.Project},
		"summary":     sanitizeSummary(f.Summary),
		"description": descriptionToADF(f.Description),
		"issuetype":   map[string]string{"name": c.config.IssueType},
		"labels":      []string{c.config.Label, "ZProdBug"},

		c.config.CFEnvironment:         map[string]string{"value": envVal},
		c.config.CFCustomerReportedBug: map[string]string{"value": crbVal},
		c.config.CFCustomerName:        cnameVal,
		c.config.CFModule:              map[string]string{"value": modVal},
	}
	if f.ComponentID != "" {
		fields["components"] = []map[string]string{{"id": f.ComponentID}}
	}
	if f.PriorityID != "" {
		fields["priority"] = map[string]string{"id": f.PriorityID}
	}
	if id := strings.TrimSpace(f.AssigneeAccountID); id != "" {
		fields["assignee"] = map[string]string{"accountId": id}
	}
	if c.config.EpicFieldID != "" {
		fields[c.config.EpicFieldID] = c.config.EpicLink
	}

	ctx, cancel := context.WithTimeout(ctx, createTimeout)
	defer cancel()

	var created struct {
		Key string `json:"key"`
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{"fields": fields}).
		SetResult(&created).
		Post("/rest/api/3/issue")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, upstreamError(resp)
	}

	return &model.IssueResult{
		Key: created.Key,
		URL: c.config.BaseURL + "/browse/" + created.Key,
	}, nil
}

// AddAttachments uploads files to an issue as one multipart request. At most
// 4 files are sent; an empty list is a no-op.
func (c *Client) AddAttachments(ctx context.Context, issueKey string, files []model.Attachment) error {
	if len(files) == 0 {
		return nil
	}
	if len(files) > 4 {
		files = files[:4]
	}

	req := c.client.R().
		SetHeader("X-Atlassian-Token", "no-check")
	for _, f := range files {
		req.SetMultipartFields(&resty.MultipartField{
			Param:       "file",
			FileName:    f.Filename,
			ContentType: f.ContentType,
			Reader:      bytes.NewReader(f.Content),
		})
	}

	ctx, cancel := context.WithTimeout(ctx, attachTimeout)
	defer cancel()

	resp, err := req.
		SetContext(ctx).
		Post("/rest/api/3/issue/" + issueKey + "/attachments")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return upstreamError(resp)
	}
	return nil
}

// upstreamError extracts the most useful detail from a Jira error response:
// joined errorMessages, then the errors map, then the raw body.
func upstreamError(resp *resty.Response) error {
	detail := detailFromBody(resp.Body())
	if detail == "" {
		detail = resp.Status()
	}
	return &model.UpstreamError{
		Service:    "jira",
		StatusCode: resp.StatusCode(),
		Detail:     detail,
	}
}

func detailFromBody(body []byte) string {
	var parsed struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if len(parsed.ErrorMessages) > 0 {
			return strings.Join(parsed.ErrorMessages, "; ")
		}
		if len(parsed.Errors) > 0 {
			return fmt.Sprintf("%v", parsed.Errors)
		}
	}
	return strings.TrimSpace(string(body))
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
