package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/blockedby/applio/internal/errs"
	"github.com/blockedby/applio/internal/models"
)

// CoverLetterResult is the response of a cover letter generation.
type CoverLetterResult struct {
	CoverLetter string                 `json:"coverLetter"`
	Job         *models.JobApplication `json:"job,omitempty"`
}

// GenerateCoverLetter asks the remote store to write a new cover letter.
func (c *Client) GenerateCoverLetter(ctx context.Context, id string) (*CoverLetterResult, error) {
	const op = "generate cover letter"
	res, err := c.do(ctx, request{
		op:           op,
		method:       http.MethodPost,
		path:         appPath(id, "cover-letter"),
		authRequired: true,
	})
	if err != nil {
		return nil, err
	}
	var env struct {
		CoverLetter json.RawMessage        `json:"coverLetter"`
		Job         *models.JobApplication `json:"job"`
	}
	if err := decode(op, res, &env); err != nil {
		return nil, err
	}
	text, err := coverLetterText(op, res, env.CoverLetter)
	if err != nil {
		return nil, err
	}
	return &CoverLetterResult{CoverLetter: text, Job: env.Job}, nil
}

// UpdateCoverLetter persists the cover letter text and returns the updated record.
func (c *Client) UpdateCoverLetter(ctx context.Context, id, text string) (*models.JobApplication, error) {
	const op = "save cover letter"
	res, err := c.do(ctx, request{
		op:     op,
		method: http.MethodPatch,
		path:   appPath(id, "cover-letter"),
		body:   map[string]string{"coverLetter": text},
	})
	if err != nil {
		return nil, err
	}
	app, err := decodeApplication(op, res)
	if err != nil {
		return nil, err
	}
	var env struct {
		CoverLetter json.RawMessage `json:"coverLetter"`
	}
	if err := decode(op, res, &env); err != nil {
		return nil, err
	}
	if _, err := coverLetterText(op, res, env.CoverLetter); err != nil {
		return nil, err
	}
	return app, nil
}

// coverLetterText requires raw to be a JSON string.
func coverLetterText(op string, res *response, raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", &errs.ProtocolError{Op: op, Status: res.status, Reason: "response has no coverLetter"}
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", &errs.ProtocolError{Op: op, Status: res.status, Reason: "coverLetter is not a string"}
	}
	return text, nil
}

// GenerateAiCv asks the remote store for a CV tailored to the record.
func (c *Client) GenerateAiCv(ctx context.Context, id string) (*models.AiCvData, error) {
	const op = "generate cv"
	res, err := c.do(ctx, request{
		op:           op,
		method:       http.MethodPost,
		path:         appPath(id, "ai-cv"),
		authRequired: true,
	})
	if err != nil {
		return nil, err
	}
	return decodeCvData(op, res)
}

// UpdateAiCv persists the CV document and returns the stored version.
func (c *Client) UpdateAiCv(ctx context.Context, id string, cv *models.AiCvData) (*models.AiCvData, error) {
	const op = "save cv"
	res, err := c.do(ctx, request{
		op:     op,
		method: http.MethodPut,
		path:   appPath(id, "ai-cv"),
		body:   map[string]*models.AiCvData{"cvData": cv},
	})
	if err != nil {
		return nil, err
	}
	return decodeCvData(op, res)
}

// DownloadAiCvPdf fetches the rendered PDF of the persisted CV.
func (c *Client) DownloadAiCvPdf(ctx context.Context, id string) ([]byte, error) {
	res, err := c.do(ctx, request{
		op:     "download cv pdf",
		method: http.MethodGet,
		path:   appPath(id, "ai-cv", "pdf"),
		binary: "application/pdf",
	})
	if err != nil {
		return nil, err
	}
	return res.body, nil
}

// decodeCvData validates and decodes a {cvData} envelope.
func decodeCvData(op string, res *response) (*models.AiCvData, error) {
	var env struct {
		CvData json.RawMessage `json:"cvData"`
	}
	if err := decode(op, res, &env); err != nil {
		return nil, err
	}
	if len(env.CvData) == 0 || string(env.CvData) == "null" {
		return nil, &errs.ProtocolError{Op: op, Status: res.status, Reason: "response has no cvData"}
	}
	if err := validateCvData(env.CvData); err != nil {
		return nil, &errs.ProtocolError{Op: op, Status: res.status, Reason: err.Error()}
	}
	var cv models.AiCvData
	if err := json.Unmarshal(env.CvData, &cv); err != nil {
		return nil, &errs.ProtocolError{Op: op, Status: res.status, Reason: "unexpected response shape: " + err.Error()}
	}
	return &cv, nil
}
