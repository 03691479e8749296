package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/blockedby/applio/internal/errs"
	"github.com/blockedby/applio/internal/models"
)

const applicationsPath = "/job-applications"

func appPath(id string, suffix ...string) string {
	p := applicationsPath + "/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// CreateFromLink asks the remote store to extract a record from a job URL.
func (c *Client) CreateFromLink(ctx context.Context, payload models.FromLinkPayload) (*models.JobApplication, error) {
	res, err := c.do(ctx, request{
		op:     "create from link",
		method: http.MethodPost,
		path:   applicationsPath + "/from-link",
		body:   payload,
	})
	if err != nil {
		return nil, err
	}
	return decodeApplication("create from link", res)
}

// CreateManual creates a record from explicit fields.
func (c *Client) CreateManual(ctx context.Context, payload models.ManualPayload) (*models.JobApplication, error) {
	res, err := c.do(ctx, request{
		op:     "create application",
		method: http.MethodPost,
		path:   applicationsPath,
		body:   payload,
	})
	if err != nil {
		return nil, err
	}
	return decodeApplication("create application", res)
}

// ListApplications returns the signed-in user's records.
// An empty status returns every record.
func (c *Client) ListApplications(ctx context.Context, status string) ([]models.JobApplication, error) {
	path := applicationsPath + "/my-applications"
	if status != "" {
		path += "?" + url.Values{"status": {status}}.Encode()
	}
	res, err := c.do(ctx, request{
		op:     "list applications",
		method: http.MethodGet,
		path:   path,
	})
	if err != nil {
		return nil, err
	}
	var apps []models.JobApplication
	if err := decode("list applications", res, &apps); err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []models.JobApplication{}
	}
	return apps, nil
}

// Summary holds per-status counts computed by the remote store.
type Summary struct {
	Total    int                   `json:"total"`
	ByStatus map[models.Status]int `json:"byStatus"`
}

// GetSummary fetches the dashboard counts.
func (c *Client) GetSummary(ctx context.Context) (*Summary, error) {
	res, err := c.do(ctx, request{
		op:     "fetch summary",
		method: http.MethodGet,
		path:   applicationsPath + "/my-applications/summary",
	})
	if err != nil {
		return nil, err
	}
	var s Summary
	if err := decode("fetch summary", res, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetApplication fetches one record.
func (c *Client) GetApplication(ctx context.Context, id string) (*models.JobApplication, error) {
	res, err := c.do(ctx, request{
		op:     "fetch application",
		method: http.MethodGet,
		path:   appPath(id),
	})
	if err != nil {
		return nil, err
	}
	return decodeApplication("fetch application", res)
}

// UpdateStatus patches the status and returns the updated record.
func (c *Client) UpdateStatus(ctx context.Context, id string, status models.Status) (*models.JobApplication, error) {
	res, err := c.do(ctx, request{
		op:     "update status",
		method: http.MethodPatch,
		path:   appPath(id, "status"),
		body:   map[string]models.Status{"status": status},
	})
	if err != nil {
		return nil, err
	}
	app, err := decodeApplication("update status", res)
	if err != nil {
		return nil, err
	}
	if !app.Status.IsValid() {
		return nil, &errs.ProtocolError{Op: "update status", Status: res.status, Reason: fmt.Sprintf("response has unknown status %q", string(app.Status))}
	}
	return app, nil
}

// DeleteApplication removes a record and returns the server's message.
func (c *Client) DeleteApplication(ctx context.Context, id string) (string, error) {
	res, err := c.do(ctx, request{
		op:     "delete application",
		method: http.MethodDelete,
		path:   appPath(id),
	})
	if err != nil {
		return "", err
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := decode("delete application", res, &body); err != nil {
		return "", err
	}
	return body.Message, nil
}

// AddNote appends a note and returns the updated record.
func (c *Client) AddNote(ctx context.Context, id, text string) (*models.JobApplication, error) {
	return c.noteCall(ctx, "add note", http.MethodPost, appPath(id, "notes"), map[string]string{"text": text})
}

// UpdateNote replaces a note's text and returns the updated record.
func (c *Client) UpdateNote(ctx context.Context, id, noteID, text string) (*models.JobApplication, error) {
	return c.noteCall(ctx, "update note", http.MethodPatch, appPath(id, "notes", url.PathEscape(noteID)), map[string]string{"text": text})
}

// DeleteNote removes a note and returns the updated record.
func (c *Client) DeleteNote(ctx context.Context, id, noteID string) (*models.JobApplication, error) {
	return c.noteCall(ctx, "delete note", http.MethodDelete, appPath(id, "notes", url.PathEscape(noteID)), nil)
}

func (c *Client) noteCall(ctx context.Context, op, method, path string, body any) (*models.JobApplication, error) {
	res, err := c.do(ctx, request{op: op, method: method, path: path, body: body})
	if err != nil {
		return nil, err
	}
	return decodeApplication(op, res)
}

// decodeApplication decodes a single record and rejects bodies that do not
// identify one.
func decodeApplication(op string, res *response) (*models.JobApplication, error) {
	var app models.JobApplication
	if err := decode(op, res, &app); err != nil {
		return nil, err
	}
	if app.ID == "" {
		return nil, &errs.ProtocolError{Op: op, Status: res.status, Reason: "response has no record id"}
	}
	return &app, nil
}
