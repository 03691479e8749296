package devserver_test

import (
	"context"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockedby/applio/internal/collection"
	"github.com/blockedby/applio/internal/devserver"
	"github.com/blockedby/applio/internal/editor"
	"github.com/blockedby/applio/internal/errs"
	"github.com/blockedby/applio/internal/events"
	"github.com/blockedby/applio/internal/gateway"
	"github.com/blockedby/applio/internal/models"
	"github.com/blockedby/applio/internal/pipeline"
	"github.com/blockedby/applio/internal/profile"
	"github.com/blockedby/applio/internal/session"
	"github.com/blockedby/applio/internal/status"
	"github.com/blockedby/applio/internal/store"
)

type stack struct {
	session *session.Provider
	client  *gateway.Client
	store   *store.Store
	events  *events.Recorder
}

func newStack(t *testing.T) *stack {
	t.Helper()
	srv := httptest.NewServer(devserver.New(devserver.Options{
		Tokens: map[string]string{"dev-token": "dev-user"},
	}).Handler())
	t.Cleanup(srv.Close)

	sess := session.New()
	sess.Start("dev-token", &session.User{ID: "dev-user", Username: "dev"})

	client := gateway.New(srv.URL, sess)
	rec := &events.Recorder{}
	st := store.New(client)
	st.SetPublisher(rec)

	return &stack{session: sess, client: client, store: st, events: rec}
}

func (s *stack) createAndLoad(t *testing.T, form store.ManualForm) *models.JobApplication {
	t.Helper()
	ctx := context.Background()
	created, err := s.store.CreateManual(ctx, form)
	require.NoError(t, err)
	app, err := s.store.Load(ctx, created.ID)
	require.NoError(t, err)
	return app
}

func TestE2E_ManualCreateWithDefaults(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	app := s.createAndLoad(t, store.ManualForm{
		Requirements: "Go\n\n  SQL  \n",
	})

	assert.Equal(t, models.UntitledRole, app.JobTitle)
	assert.Equal(t, models.UnknownCompany, app.CompanyName)
	assert.Equal(t, models.StatusIdea, app.Status)
	assert.Equal(t, models.SourceManual, app.Source)
	assert.Equal(t, []string{"Go", "SQL"}, app.Requirements)

	require.NoError(t, s.store.Refresh(ctx, ""))
	view := collection.Project(collection.FromStore(s.store.Collection()), "untitled", models.StatusAll)
	assert.Equal(t, collection.PhaseReady, view.Phase)
	require.Len(t, view.Records, 1)
	assert.Equal(t, app.ID, view.Records[0].ID)

	view = collection.Project(collection.FromStore(s.store.Collection()), "", string(models.StatusOffer))
	assert.Equal(t, collection.PhaseEmpty, view.Phase)
}

func TestE2E_CreateFromLink(t *testing.T) {
	s := newStack(t)

	res, err := s.store.CreateFromLink(context.Background(), "https://jobs.example.com/42", "")
	require.NoError(t, err)
	assert.False(t, res.OpenManual)
	assert.Equal(t, models.SourceLink, res.Record.Source)
	assert.Equal(t, models.StatusIdea, res.Record.Status)
}

func TestE2E_NotesLifecycle(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	s.createAndLoad(t, store.ManualForm{JobTitle: "Backend"})

	_, err := s.store.AddNote(ctx, "first")
	require.NoError(t, err)
	app, err := s.store.AddNote(ctx, "second")
	require.NoError(t, err)

	shown := app.NotesNewestFirst()
	require.Len(t, shown, 2)
	assert.Equal(t, "second", shown[0].Text)
	assert.Equal(t, "first", shown[1].Text)

	app, err = s.store.UpdateNote(ctx, shown[1].ID, "first, edited")
	require.NoError(t, err)
	assert.Equal(t, "first, edited", app.Notes[0].Text)

	app, err = s.store.DeleteNote(ctx, shown[0].ID)
	require.NoError(t, err)
	require.Len(t, app.Notes, 1)
	assert.Equal(t, "first, edited", s.store.Current().Notes[0].Text)

	_, err = s.store.AddNote(ctx, "   ")
	assert.True(t, errs.IsValidation(err))
}

func TestE2E_StatusChange(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	app := s.createAndLoad(t, store.ManualForm{JobTitle: "Backend"})

	m := status.New(s.client, s.store)
	res, err := m.SetStatus(ctx, models.StatusTechTest)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, models.StatusTechTest, s.store.Current().Status)

	res, err = m.SetStatus(ctx, models.StatusTechTest)
	require.NoError(t, err)
	assert.False(t, res.Changed)

	remote, err := s.client.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusTechTest, remote.Status)
	assert.Equal(t, "Tech Test", remote.Status.Label())
}

func TestE2E_CoverLetterGenerateEditSaveRegenerate(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	app := s.createAndLoad(t, store.ManualForm{JobTitle: "Backend Engineer", CompanyName: "Acme"})

	cl := pipeline.NewCoverLetter(s.client, s.store, app)
	require.NoError(t, cl.Generate(ctx))
	generated := cl.Text()
	assert.Contains(t, generated, "Backend Engineer")
	assert.Equal(t, generated, s.store.Current().CoverLetter)

	cl.SetText("My own words")
	require.NoError(t, cl.Save(ctx))
	stored, err := s.client.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "My own words", stored.CoverLetter)

	require.NoError(t, cl.Generate(ctx))
	assert.Equal(t, generated, cl.Text(), "regenerate replaces the edited text")

	cl.SetText("  ")
	assert.True(t, errs.IsValidation(cl.Save(ctx)))
}

func TestE2E_AiCvIndependentOfProfile(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	prof := profile.New(s.client)
	_, err := prof.Load(ctx)
	require.NoError(t, err)
	assert.False(t, prof.Exists())

	prof.Apply(
		editor.SetProfileField(models.FieldFullName, "Ada"),
		editor.SetProfileField(models.FieldHeadline, "Backend engineer"),
		editor.SetPrimarySkills("Go, SQL"),
		editor.AddProfileExperience(),
		editor.UpdateProfileExperience(0, models.FieldCompany, "Initech"),
	)
	_, err = prof.Save(ctx)
	require.NoError(t, err)
	assert.True(t, prof.Exists())

	app := s.createAndLoad(t, store.ManualForm{JobTitle: "Backend Engineer", Requirements: "Go"})
	cv := pipeline.NewAiCv(s.client, s.store, pipeline.DirDownloader{Dir: t.TempDir()}, app)

	require.Error(t, cv.Apply(editor.SetCVScalar(models.FieldHeadline, "x")))

	require.NoError(t, cv.Generate(ctx))
	require.NoError(t, cv.Apply(
		editor.SetCVScalar(models.FieldHeadline, "Platform engineer"),
		editor.UpdateExperience(0, models.FieldCompany, "Globex"),
	))
	require.NoError(t, cv.Save(ctx))

	assert.Equal(t, "Platform engineer", s.store.Current().AiCvData.Headline)

	saved, err := s.client.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Backend engineer", saved.Headline)
	assert.Equal(t, "Initech", saved.Experience[0].Company)

	path, err := cv.ExportPDF(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, pipeline.PDFFileName))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestE2E_UseCVMergesIntoDraft(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	prof := profile.New(s.client)
	_, err := prof.Load(ctx)
	require.NoError(t, err)
	prof.Apply(editor.SetProfileField(models.FieldSummary, "Kept summary"))

	merged, err := prof.UseCV(ctx, "cv.txt", strings.NewReader("Grace Hopper\nRear admiral\nSkills: COBOL\n"))
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", merged.FullName)
	assert.Equal(t, "Kept summary", merged.Summary)
	assert.Equal(t, []string{"COBOL"}, merged.PrimarySkills)
}

func TestE2E_SignedOutGenerateFailsBeforeNetwork(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	app := s.createAndLoad(t, store.ManualForm{JobTitle: "Backend"})

	s.session.End()
	cl := pipeline.NewCoverLetter(s.client, s.store, app)
	err := cl.Generate(ctx)
	require.Error(t, err)
	assert.True(t, errs.IsAuth(err))
	assert.Contains(t, err.Error(), gateway.MissingTokenReason)
	assert.Equal(t, pipeline.StateFailed, cl.State())

	_, err = s.client.ListApplications(ctx, "")
	assert.True(t, errs.IsAuth(err), "unprotected calls are rejected by the server")
}

func TestE2E_Delete(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	app := s.createAndLoad(t, store.ManualForm{JobTitle: "Backend"})

	toast, err := s.store.Delete(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DeletedToastText, toast)
	assert.Nil(t, s.store.Current())

	_, err = s.client.GetApplication(ctx, app.ID)
	require.Error(t, err)
	assert.True(t, errs.IsRemote(err))
	assert.Equal(t, "Job application not found", errs.UserMessage(err, "fallback"))

	assert.Contains(t, s.events.Types(), events.ApplicationDeleted)
}

func TestE2E_SingleNoteAddThenDelete(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	s.createAndLoad(t, store.ManualForm{JobTitle: "Backend"})

	app, err := s.store.AddNote(ctx, "Follow up Monday")
	require.NoError(t, err)
	require.Len(t, app.Notes, 1)
	assert.Equal(t, "Follow up Monday", app.NotesNewestFirst()[0].Text)

	app, err = s.store.DeleteNote(ctx, app.Notes[0].ID)
	require.NoError(t, err)
	assert.Len(t, app.Notes, 0)
	assert.Len(t, s.store.Current().Notes, 0)
}
