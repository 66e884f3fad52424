package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fadilmartias/resume-matcher/internal/domain/fiber/handler"
	"github.com/fadilmartias/resume-matcher/internal/matcher"
	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/fadilmartias/resume-matcher/internal/repository"
	"github.com/fadilmartias/resume-matcher/internal/service"
	"github.com/fadilmartias/resume-matcher/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func (s *userStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Email]; ok {
		return repository.ErrDuplicate
	}
	s.users[u.Email] = u
	return nil
}

func (s *userStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

type resumeStore struct {
	mu    sync.Mutex
	items []*model.Resume
}

func (s *resumeStore) Create(_ context.Context, r *model.Resume) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = uuid.New()
	s.items = append(s.items, r)
	return nil
}

func (s *resumeStore) FindByID(_ context.Context, id uuid.UUID) (*model.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.items {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *resumeStore) FindLatestByOwner(_ context.Context, owner string) (*model.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].OwnerEmail == owner {
			return s.items[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *resumeStore) List(_ context.Context, f repository.ResumeFilter) ([]model.Resume, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Resume
	for _, r := range s.items {
		if f.OwnerEmail == "" || r.OwnerEmail == f.OwnerEmail {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

type jobStore struct {
	mu   sync.Mutex
	jobs []model.Job
}

func (s *jobStore) ReplaceAll(_ context.Context, jobs []model.Job) (uuid.UUID, error) {
	batch := uuid.New()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = nil
	for i, j := range jobs {
		j.ID, j.BatchID, j.Position = uuid.New(), batch, i
		s.jobs = append(s.jobs, j)
	}
	return batch, nil
}

func (s *jobStore) FindAll(context.Context) ([]model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Job(nil), s.jobs...), nil
}

func (s *jobStore) List(ctx context.Context, limit, offset int) ([]model.Job, int64, error) {
	jobs, _ := s.FindAll(ctx)
	total := int64(len(jobs))
	if offset >= len(jobs) {
		return []model.Job{}, total, nil
	}
	return jobs[offset:min(offset+limit, len(jobs))], total, nil
}

type staticSource struct{ jobs []model.Job }

func (s staticSource) Fetch(context.Context, string) ([]model.Job, error) {
	return s.jobs, nil
}

type plainText struct{}

// ExtractText treats the upload as UTF-8 text; "%PDF-broken" is unreadable.
func (plainText) ExtractText(data []byte) (string, error) {
	if string(data) == "%PDF-broken" {
		return "", matcher.ErrUnreadableDocument
	}
	return string(data), nil
}

// sharedWords scores by the fraction of words shared with the first text.
type sharedWords struct{}

func (sharedWords) Embed(_ context.Context, texts []string) ([][]float32, error) {
	vocab := map[string]int{}
	for _, t := range texts {
		for _, w := range strings.Fields(strings.ToLower(t)) {
			if _, ok := vocab[w]; !ok {
				vocab[w] = len(vocab)
			}
		}
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v := make([]float32, len(vocab)+1)
		v[len(vocab)] = 0.01
		for _, w := range strings.Fields(strings.ToLower(t)) {
			v[vocab[w]]++
		}
		out[i] = v
	}
	return out, nil
}

type testServer struct {
	app    *fiber.App
	tokens *service.TokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	tokens := service.NewTokenService("test-secret", time.Hour)
	resumeUC := usecase.NewResumeUsecase(&resumeStore{}, plainText{}, matcher.NewExtractor(nil, matcher.NewVocabulary([]string{"python", "sql"}), nil))
	jobs := &jobStore{}
	source := staticSource{jobs: []model.Job{
		{Title: "B", Company: "Studio", Description: "Graphic design role"},
		{Title: "A", Company: "Acme", Description: "Python backend role"},
	}}

	app := fiber.New()
	handler.Handlers{
		Auth:           handler.NewAuthHandler(usecase.NewAuthUsecase(&userStore{users: map[string]*model.User{}}, tokens, []string{"admin@example.com"})),
		Resume:         handler.NewResumeHandler(resumeUC),
		Job:            handler.NewJobHandler(usecase.NewJobUsecase(jobs, source, "software engineer")),
		Recommendation: handler.NewRecommendationHandler(usecase.NewRecommendationUsecase(resumeUC, jobs, matcher.NewScorer(sharedWords{}), nil)),
		Tokens:         tokens,
		UploadsPerMin:  100,
	}.RegisterRoutes(app)
	return &testServer{app: app, tokens: tokens}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, req *http.Request, token string) (int, envelope) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return resp.StatusCode, env
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/resumes", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	creds := `{"email":"` + email + `","password":"correct horse"}`
	code, _ := s.do(t, jsonRequest(http.MethodPost, "/register", creds), "")
	require.Equal(t, fiber.StatusCreated, code)

	code, env := s.do(t, jsonRequest(http.MethodPost, "/login", creds), "")
	require.Equal(t, fiber.StatusOK, code)
	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tok))
	assert.Equal(t, "bearer", tok.TokenType)
	return tok.AccessToken
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "jane@example.com")

	code, env := s.do(t, jsonRequest(http.MethodPost, "/register", `{"email":"jane@example.com","password":"another pass"}`), "")
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "email_taken", env.Kind)

	code, _ = s.do(t, jsonRequest(http.MethodPost, "/register", `{"email":"","password":""}`), "")
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = s.do(t, jsonRequest(http.MethodPost, "/login", `{"email":"jane@example.com","password":"wrong password"}`), "")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/resumes", nil), "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestResumeUploadValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "jane@example.com")

	code, _ := s.do(t, uploadRequest(t, "cv.docx", "Jane Doe"), token)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, env := s.do(t, uploadRequest(t, "cv.pdf", "%PDF-broken"), token)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, "unreadable_document", env.Kind)

	req := httptest.NewRequest(http.MethodPost, "/resumes", nil)
	code, _ = s.do(t, req, token)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestRecommendationFlow(t *testing.T) {
	s := newTestServer(t)
	user := s.login(t, "jane@example.com")
	admin := s.login(t, "admin@example.com")

	code, env := s.do(t, uploadRequest(t, "Jane.pdf", "Jane Doe\njane@example.com\nPython backend engineer, SQL"), user)
	require.Equal(t, fiber.StatusCreated, code)
	var resume struct {
		ID     uuid.UUID `json:"id"`
		Email  *string   `json:"email"`
		Skills []string  `json:"skills"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resume))
	require.NotNil(t, resume.Email)
	assert.Equal(t, "jane@example.com", *resume.Email)
	assert.Equal(t, []string{"python", "sql"}, resume.Skills)

	code, env = s.do(t, httptest.NewRequest(http.MethodGet, "/recommendations", nil), user)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "no_jobs_available", env.Kind)

	code, _ = s.do(t, httptest.NewRequest(http.MethodPost, "/jobs/refresh", nil), user)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = s.do(t, jsonRequest(http.MethodPost, "/jobs/refresh", `{"query":"python"}`), admin)
	require.Equal(t, fiber.StatusOK, code)

	code, env = s.do(t, httptest.NewRequest(http.MethodGet, "/recommendations?resume_id="+resume.ID.String(), nil), user)
	require.Equal(t, fiber.StatusOK, code)
	var recs []struct {
		Title string  `json:"title"`
		Score float64 `json:"score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &recs))
	require.Len(t, recs, 2)
	assert.Equal(t, "A", recs[0].Title)
	assert.Greater(t, recs[0].Score, recs[1].Score)

	// another user cannot see or rank against Jane's resume
	other := s.login(t, "bob@example.com")
	code, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/resumes/"+resume.ID.String(), nil), other)
	assert.Equal(t, fiber.StatusNotFound, code)
	code, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/recommendations?resume_id="+resume.ID.String(), nil), other)
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/resumes/"+resume.ID.String(), nil), admin)
	assert.Equal(t, fiber.StatusOK, code)
}
