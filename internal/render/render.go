// Package render turns a tailored CV into a PDF document.
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/blockedby/applio/internal/logger"
	"github.com/blockedby/applio/internal/models"
)

// DefaultTimeout bounds one headless Chrome rendering.
const DefaultTimeout = 30 * time.Second

//go:embed templates/cv.html
var templateFS embed.FS

var cvTemplate = template.Must(template.New("cv.html").
	Funcs(template.FuncMap{"join": func(items []string) string { return strings.Join(items, ", ") }}).
	ParseFS(templateFS, "templates/cv.html"))

// Renderer produces PDF bytes for a CV.
type Renderer interface {
	Render(ctx context.Context, cv *models.AiCvData) ([]byte, error)
}

type skillRow struct {
	Category string
	Items    string
}

type view struct {
	*models.AiCvData
	SkillRows []skillRow
}

// HTML renders cv with the embedded template.
func HTML(cv *models.AiCvData) (string, error) {
	if cv == nil {
		cv = &models.AiCvData{}
	}
	v := view{AiCvData: cv}
	for _, cat := range cv.Skills.SkillCategories() {
		v.SkillRows = append(v.SkillRows, skillRow{Category: cat, Items: strings.Join(cv.Skills[cat], ", ")})
	}

	var buf bytes.Buffer
	if err := cvTemplate.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// ChromeRenderer prints the HTML CV through headless Chrome.
type ChromeRenderer struct {
	timeout time.Duration
	log     *logger.Logger
}

// NewChromeRenderer creates a renderer with DefaultTimeout.
func NewChromeRenderer() *ChromeRenderer {
	return &ChromeRenderer{
		timeout: DefaultTimeout,
		log:     logger.Get().Component("render"),
	}
}

// Render implements Renderer.
func (r *ChromeRenderer) Render(ctx context.Context, cv *models.AiCvData) ([]byte, error) {
	html, err := HTML(cv)
	if err != nil {
		r.log.Error().Err(err).Msg("failed to render cv html")
		return nil, fmt.Errorf("render HTML: %w", err)
	}

	pdf, err := r.htmlToPDF(ctx, html)
	if err != nil {
		r.log.Error().Err(err).Msg("failed to convert cv to pdf")
		return nil, fmt.Errorf("HTML to PDF: %w", err)
	}

	r.log.Debug().Int("bytes", len(pdf)).Msg("cv pdf rendered")
	return pdf, nil
}

func (r *ChromeRenderer) htmlToPDF(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cctx, cancel := chromedp.NewExecAllocator(ctx,
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	defer cancel()

	cctx, cancel = chromedp.NewContext(cctx)
	defer cancel()

	var pdfBuf []byte
	if err := chromedp.Run(cctx,
		chromedp.Navigate("data:text/html;charset=utf-8,"+url.PathEscape(html)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			return err
		}),
	); err != nil {
		return nil, fmt.Errorf("chromedp run: %w", err)
	}

	return pdfBuf, nil
}

// Placeholder emits a minimal valid one-page PDF naming the candidate.
// Used when Chrome is unavailable.
type Placeholder struct{}

// Render implements Renderer.
func (Placeholder) Render(_ context.Context, cv *models.AiCvData) ([]byte, error) {
	title := "CV"
	if cv != nil && cv.FullName != "" {
		title = cv.FullName
	}
	return minimalPDF(title), nil
}

func minimalPDF(text string) []byte {
	text = strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`).Replace(text)
	stream := fmt.Sprintf("BT /F1 18 Tf 72 720 Td (%s) Tj ET", text)

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}
