package devserver

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/blockedby/applio/internal/models"
)

// httpError carries a status through memStore.update callbacks.
type httpError struct {
	status int
	msg    string
}

func (e *httpError) Error() string { return e.msg }

// fail writes err, mapping known failures to their status.
func (s *Server) fail(w http.ResponseWriter, err error) {
	var he *httpError
	switch {
	case errors.As(err, &he):
		writeError(w, he.status, he.msg)
	case errors.Is(err, errNoApplication):
		writeError(w, http.StatusNotFound, "Job application not found")
	default:
		s.log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// statusOrDefault parses an optional status; empty means Idea.
func statusOrDefault(raw models.Status) (models.Status, error) {
	if strings.TrimSpace(string(raw)) == "" {
		return models.DefaultStatus, nil
	}
	st, ok := models.ParseStatus(string(raw))
	if !ok {
		return "", &httpError{http.StatusBadRequest, "Invalid status"}
	}
	return st, nil
}

// POST /job-applications/from-link
func (s *Server) createFromLink(w http.ResponseWriter, r *http.Request) {
	var body models.FromLinkPayload
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := url.Parse(strings.TrimSpace(body.JobURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		writeError(w, http.StatusBadRequest, "A valid job URL is required")
		return
	}

	status, err := statusOrDefault(body.Status)
	if err != nil {
		s.fail(w, err)
		return
	}

	app := s.data.create(userFrom(r), &models.JobApplication{
		JobURL:      u.String(),
		CompanyName: companyFromHost(u.Hostname()),
		Source:      models.SourceLink,
		Status:      status,
	})
	writeJSON(w, http.StatusCreated, app)
}

// companyFromHost guesses a company name from the posting host.
func companyFromHost(host string) string {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	parts := strings.Split(host, ".")
	if len(parts) >= 2 {
		host = parts[len(parts)-2]
	}
	if host == "" {
		return ""
	}
	return strings.ToUpper(host[:1]) + host[1:]
}

// POST /job-applications
func (s *Server) createManual(w http.ResponseWriter, r *http.Request) {
	var body models.ManualPayload
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status, err := statusOrDefault(body.Status)
	if err != nil {
		s.fail(w, err)
		return
	}
	source := body.Source
	if source == "" {
		source = models.SourceManual
	}

	app := s.data.create(userFrom(r), &models.JobApplication{
		JobTitle:         body.JobTitle,
		CompanyName:      body.CompanyName,
		Location:         body.Location,
		EmploymentType:   body.EmploymentType,
		SalaryInfo:       body.SalaryInfo,
		SeniorityLevel:   body.SeniorityLevel,
		Summary:          body.Summary,
		Responsibilities: nonNil(body.Responsibilities),
		Requirements:     nonNil(body.Requirements),
		NiceToHave:       nonNil(body.NiceToHave),
		PerksAndBenefits: nonNil(body.PerksAndBenefits),
		Status:           status,
		Source:           source,
	})
	writeJSON(w, http.StatusCreated, app)
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

// GET /job-applications/my-applications?status=
func (s *Server) listApplications(w http.ResponseWriter, r *http.Request) {
	var filter models.Status
	if raw := r.URL.Query().Get("status"); raw != "" && raw != models.StatusAll {
		st, ok := models.ParseStatus(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		filter = st
	}

	writeJSON(w, http.StatusOK, s.data.list(userFrom(r), filter))
}

// GET /job-applications/my-applications/summary
func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	apps := s.data.list(userFrom(r), "")

	byStatus := make(map[models.Status]int)
	for _, st := range models.Statuses() {
		byStatus[st] = 0
	}
	for _, a := range apps {
		byStatus[a.DisplayStatus()]++
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":    len(apps),
		"byStatus": byStatus,
	})
}

// GET /job-applications/{id}
func (s *Server) getApplication(w http.ResponseWriter, r *http.Request) {
	app, err := s.data.get(userFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// DELETE /job-applications/{id}
func (s *Server) deleteApplication(w http.ResponseWriter, r *http.Request) {
	if err := s.data.remove(userFrom(r), chi.URLParam(r, "id")); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Job application deleted"})
}

// PATCH /job-applications/{id}/status
func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	st, ok := models.ParseStatus(body.Status)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	app, err := s.data.update(userFrom(r), chi.URLParam(r, "id"), func(a *models.JobApplication) error {
		a.Status = st
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

type noteBody struct {
	Text string `json:"text"`
}

func (s *Server) noteText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body noteBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return "", false
	}
	text := strings.TrimSpace(body.Text)
	if text == "" {
		writeError(w, http.StatusBadRequest, "Note text is required")
		return "", false
	}
	return text, true
}

var errNoNote = &httpError{http.StatusNotFound, "Note not found"}

// POST /job-applications/{id}/notes
func (s *Server) addNote(w http.ResponseWriter, r *http.Request) {
	text, ok := s.noteText(w, r)
	if !ok {
		return
	}

	app, err := s.data.update(userFrom(r), chi.URLParam(r, "id"), func(a *models.JobApplication) error {
		a.Notes = append(a.Notes, models.Note{ID: uuid.NewString(), Text: text, CreatedAt: s.data.now()})
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

// PATCH /job-applications/{id}/notes/{noteID}
func (s *Server) updateNote(w http.ResponseWriter, r *http.Request) {
	text, ok := s.noteText(w, r)
	if !ok {
		return
	}
	noteID := chi.URLParam(r, "noteID")

	app, err := s.data.update(userFrom(r), chi.URLParam(r, "id"), func(a *models.JobApplication) error {
		for i := range a.Notes {
			if a.Notes[i].ID == noteID {
				a.Notes[i].Text = text
				return nil
			}
		}
		return errNoNote
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// DELETE /job-applications/{id}/notes/{noteID}
func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) {
	noteID := chi.URLParam(r, "noteID")

	app, err := s.data.update(userFrom(r), chi.URLParam(r, "id"), func(a *models.JobApplication) error {
		for i := range a.Notes {
			if a.Notes[i].ID == noteID {
				a.Notes = append(a.Notes[:i], a.Notes[i+1:]...)
				return nil
			}
		}
		return errNoNote
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}
