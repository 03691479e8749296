package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blockedby/applio/internal/editor"
	"github.com/blockedby/applio/internal/errs"
	"github.com/blockedby/applio/internal/events"
	"github.com/blockedby/applio/internal/inflight"
	"github.com/blockedby/applio/internal/models"
)

// PDFFileName is the name of the downloaded CV.
const PDFFileName = "applio-ai-cv.pdf"

// NoCvDataMessage is surfaced when saving before anything was generated.
const NoCvDataMessage = "No CV data to save."

// AiCvRemote is the part of the gateway used for tailored CVs.
type AiCvRemote interface {
	GenerateAiCv(ctx context.Context, id string) (*models.AiCvData, error)
	UpdateAiCv(ctx context.Context, id string, cv *models.AiCvData) (*models.AiCvData, error)
	DownloadAiCvPdf(ctx context.Context, id string) ([]byte, error)
}

// Downloader materializes a downloaded file and returns where it went.
type Downloader interface {
	Save(name string, data []byte) (string, error)
}

// DirDownloader writes downloads into Dir.
type DirDownloader struct {
	Dir string
}

// Save implements Downloader.
func (d DirDownloader) Save(name string, data []byte) (string, error) {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

type aiCvBackend struct {
	remote AiCvRemote
}

func (b aiCvBackend) Generate(ctx context.Context, id string) (*models.AiCvData, error) {
	return b.remote.GenerateAiCv(ctx, id)
}

func (b aiCvBackend) Save(ctx context.Context, id string, cv *models.AiCvData) (*models.AiCvData, error) {
	return b.remote.UpdateAiCv(ctx, id, cv)
}

// AiCv is the pipeline for a record's tailored CV.
type AiCv struct {
	*Pipeline[*models.AiCvData]

	remote     AiCvRemote
	downloader Downloader
	exporting  inflight.Guard
}

// NewAiCv creates the CV pipeline for app.
func NewAiCv(remote AiCvRemote, records Records, downloader Downloader, app *models.JobApplication) *AiCv {
	def := Definition[*models.AiCvData]{
		Kind:    KindAiCv,
		Backend: aiCvBackend{remote: remote},
		Records: records,
		Clone:   (*models.AiCvData).Clone,
		Apply:   func(a *models.JobApplication, cv *models.AiCvData) { a.AiCvData = cv },
		Validate: func(cv *models.AiCvData, present bool) error {
			if !present || cv == nil {
				return errs.Validation("cvData", NoCvDataMessage)
			}
			return nil
		},
		GeneratedEvent: events.CvGenerated,
		SavedEvent:     events.CvSaved,
	}
	return &AiCv{
		Pipeline:   New(def, app.ID, app.AiCvData, app.AiCvData != nil),
		remote:     remote,
		downloader: downloader,
	}
}

// Data returns a copy of the local CV, or nil before generation.
func (c *AiCv) Data() *models.AiCvData {
	v, _ := c.Value()
	return v
}

// Apply runs local edits against the CV draft.
func (c *AiCv) Apply(edits ...editor.CVEdit) error {
	if _, ok := c.Value(); !ok {
		return errs.Validation("cvData", "Generate a CV before editing it.")
	}
	c.Edit(func(cv **models.AiCvData) {
		if *cv == nil {
			*cv = &models.AiCvData{}
		}
		for _, e := range edits {
			e(*cv)
		}
	})
	return nil
}

// Exporting reports whether a PDF export is in flight.
func (c *AiCv) Exporting() bool { return c.exporting.Busy("export") }

// ExportPDF downloads the rendering of the persisted CV (unsaved local edits
// are not included) and hands it to the downloader. In-memory state is not
// touched; on failure nothing is written.
func (c *AiCv) ExportPDF(ctx context.Context) (string, error) {
	release, err := c.exporting.Acquire("export")
	if err != nil {
		return "", err
	}
	defer release()

	data, err := c.remote.DownloadAiCvPdf(ctx, c.recordID)
	if err != nil {
		c.log.Error().Err(err).Str("op", "export").Msg("failed to download cv pdf")
		c.setErr(err)
		return "", fmt.Errorf("download cv pdf: %w", err)
	}

	path, err := c.downloader.Save(PDFFileName, data)
	if err != nil {
		c.log.Error().Err(err).Str("op", "export").Msg("failed to save cv pdf")
		c.setErr(err)
		return "", err
	}

	c.emit(ctx, events.CvExported)
	c.log.Info().Str("path", path).Msg("cv pdf exported")
	return path, nil
}
