package devserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/blockedby/applio/internal/models"
)

// PDFFileName is the attachment name of the rendered CV.
const PDFFileName = "applio-ai-cv.pdf"

// generationProfile returns the user's profile or an empty one.
func (s *Server) generationProfile(user string) *models.UserProfile {
	if p, ok := s.data.profile(user); ok {
		return p
	}
	return &models.UserProfile{}
}

// POST /job-applications/{id}/cover-letter
func (s *Server) generateCoverLetter(w http.ResponseWriter, r *http.Request) {
	user, id := userFrom(r), chi.URLParam(r, "id")

	app, err := s.data.get(user, id)
	if err != nil {
		s.fail(w, err)
		return
	}

	letter, err := s.gen.CoverLetter(r.Context(), app, s.generationProfile(user))
	if err != nil {
		s.log.Error().Err(err).Str("record_id", id).Msg("cover letter generation failed")
		writeError(w, http.StatusBadGateway, "Failed to generate cover letter")
		return
	}

	app, err = s.data.update(user, id, func(a *models.JobApplication) error {
		a.CoverLetter = letter
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"coverLetter": letter, "job": app})
}

// PATCH /job-applications/{id}/cover-letter
func (s *Server) saveCoverLetter(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CoverLetter string `json:"coverLetter"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(body.CoverLetter) == "" {
		writeError(w, http.StatusBadRequest, "Cover letter is required")
		return
	}

	app, err := s.data.update(userFrom(r), chi.URLParam(r, "id"), func(a *models.JobApplication) error {
		a.CoverLetter = body.CoverLetter
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// POST /job-applications/{id}/ai-cv
func (s *Server) generateAiCv(w http.ResponseWriter, r *http.Request) {
	user, id := userFrom(r), chi.URLParam(r, "id")

	app, err := s.data.get(user, id)
	if err != nil {
		s.fail(w, err)
		return
	}

	cv, err := s.gen.AiCv(r.Context(), app, s.generationProfile(user))
	if err != nil {
		s.log.Error().Err(err).Str("record_id", id).Msg("cv generation failed")
		writeError(w, http.StatusBadGateway, "Failed to generate CV")
		return
	}

	if _, err := s.data.update(user, id, func(a *models.JobApplication) error {
		a.AiCvData = cv.Clone()
		return nil
	}); err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cvData": cv})
}

// PUT /job-applications/{id}/ai-cv
func (s *Server) saveAiCv(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CvData *models.AiCvData `json:"cvData"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.CvData == nil {
		writeError(w, http.StatusBadRequest, "cvData is required")
		return
	}

	app, err := s.data.update(userFrom(r), chi.URLParam(r, "id"), func(a *models.JobApplication) error {
		a.AiCvData = body.CvData.Clone()
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cvData": app.AiCvData})
}

// GET /job-applications/{id}/ai-cv/pdf
func (s *Server) downloadAiCvPdf(w http.ResponseWriter, r *http.Request) {
	app, err := s.data.get(userFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	if app.AiCvData == nil {
		writeError(w, http.StatusNotFound, "No AI CV generated yet")
		return
	}

	pdf, err := s.renderer.Render(r.Context(), app.AiCvData)
	if err != nil {
		s.log.Error().Err(err).Str("record_id", app.ID).Msg("pdf rendering failed")
		writeError(w, http.StatusInternalServerError, "Failed to render PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+PDFFileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
