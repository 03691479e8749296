package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/blockedby/applio/internal/models"
)

const profilePath = "/profile/my-profile"

// GetProfile returns the user's profile. A missing profile is a NotFoundError.
func (c *Client) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	const op = "load profile"
	res, err := c.do(ctx, request{
		op:       op,
		method:   http.MethodGet,
		path:     profilePath,
		notFound: "profile",
		errKey:   errKeyProfile,
	})
	if err != nil {
		return nil, err
	}
	var p models.UserProfile
	if err := decode(op, res, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProfile creates or replaces the user's profile.
func (c *Client) SaveProfile(ctx context.Context, p *models.UserProfile) (*models.UserProfile, error) {
	const op = "save profile"
	res, err := c.do(ctx, request{
		op:     op,
		method: http.MethodPost,
		path:   profilePath,
		body:   p,
		errKey: errKeyProfile,
	})
	if err != nil {
		return nil, err
	}
	var out models.UserProfile
	if err := decode(op, res, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadCV sends a CV file (multipart field "cv") and returns the profile
// extracted from it.
func (c *Client) UploadCV(ctx context.Context, filename string, r io.Reader) (*models.UserProfile, error) {
	const op = "upload cv"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("cv", filename)
	if err != nil {
		return nil, fmt.Errorf("%s: create form file: %w", op, err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("%s: copy file: %w", op, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%s: close multipart: %w", op, err)
	}

	res, err := c.do(ctx, request{
		op:           op,
		method:       http.MethodPost,
		path:         profilePath + "/cv",
		rawBody:      &buf,
		contentType:  mw.FormDataContentType(),
		authRequired: true,
		errKey:       errKeyProfile,
	})
	if err != nil {
		return nil, err
	}
	var p models.UserProfile
	if err := decode(op, res, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
