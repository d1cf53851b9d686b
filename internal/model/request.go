package model

// Attachment is one screenshot to upload after issue creation.
type Attachment struct {
	Filename    string
	Content     []byte
	ContentType string
}

// FormSubmission carries the manual feedback form. Feedback is used verbatim
// as the issue description; everything else is optional metadata passed
// through to the tracker as-is.
type FormSubmission struct {
	Feedback            string
	Sprint              string
	ComponentID         string
	PriorityID          string
	AssigneeAccountID   string
	Environment         string
	Module              string
	CustomerReportedBug string
	CustomerName        string
	Screenshots         []Attachment
}

// ChatSubmission carries a raw chat message (e.g. forwarded from Teams).
type ChatSubmission struct {
	Message string
	// CustomerName overrides extraction when non-empty.
	CustomerName     string
	SkipTriggerCheck bool
	Screenshots      []Attachment
}

// IssueResult is what the tracker returns after creation.
type IssueResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ChatResult is the chat flow's result: the created issue plus the fields
// that were extracted from the message.
type ChatResult struct {
	Key          string `json:"key"`
	URL          string `json:"url"`
	CustomerName string `json:"customer_name"`
	Assignee     string `json:"assignee"`
	Priority     string `json:"priority"`
}

// IssueFields is the semantic field set for issue creation. Empty optional
// fields get tracker-side defaults (see jira.Client.CreateIssue).
type IssueFields struct {
	Summary             string
	Description         string
	Sprint              string
	ComponentID         string
	PriorityID          string
	AssigneeAccountID   string
	Environment         string
	Module              string
	CustomerReportedBug string
	CustomerName        string
}

// Component is a tracker component {id, name}.
type Component struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Priority is a tracker priority {id, name}.
type Priority struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is an assignable tracker user.
type User struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}
