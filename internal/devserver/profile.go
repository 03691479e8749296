package devserver

import (
	"io"
	"net/http"

	"github.com/blockedby/applio/internal/models"
)

// maxCVBytes caps uploaded CV files.
const maxCVBytes = 5 << 20

// GET /profile/my-profile
func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := s.data.profile(userFrom(r))
	if !ok {
		writeProfileError(w, http.StatusNotFound, "Profile not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// POST /profile/my-profile
func (s *Server) saveProfile(w http.ResponseWriter, r *http.Request) {
	var p models.UserProfile
	if err := decodeBody(r, &p); err != nil {
		writeProfileError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if p.YearsOfExperience != nil && *p.YearsOfExperience < 0 {
		writeProfileError(w, http.StatusBadRequest, "Years of experience cannot be negative")
		return
	}

	writeJSON(w, http.StatusOK, s.data.saveProfile(userFrom(r), &p))
}

// POST /profile/my-profile/cv (multipart, field "cv")
// The extracted profile is returned, not stored.
func (s *Server) uploadCV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCVBytes)
	file, _, err := r.FormFile("cv")
	if err != nil {
		writeProfileError(w, http.StatusBadRequest, "No CV file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeProfileError(w, http.StatusBadRequest, "Could not read CV file")
		return
	}

	p, err := s.gen.ProfileFromCV(r.Context(), string(data))
	if err != nil {
		s.log.Error().Err(err).Msg("cv extraction failed")
		writeProfileError(w, http.StatusBadGateway, "Failed to extract profile from CV")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
