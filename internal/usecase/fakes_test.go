package usecase_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/fadilmartias/resume-matcher/internal/matcher"
	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/fadilmartias/resume-matcher/internal/repository"
	"github.com/google/uuid"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]*model.User{}}
}

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return repository.ErrDuplicate
	}
	u.ID = uuid.New()
	m.users[u.Email] = u
	return nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

type stubTokens struct{}

func (stubTokens) Generate(email, role string) (string, error) {
	return "token:" + email + ":" + role, nil
}

type memResumes struct {
	mu         sync.Mutex
	items      []*model.Resume
	lastFilter repository.ResumeFilter
}

func (m *memResumes) Create(_ context.Context, r *model.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = uuid.New()
	m.items = append(m.items, r)
	return nil
}

func (m *memResumes) FindByID(_ context.Context, id uuid.UUID) (*model.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.items {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memResumes) FindLatestByOwner(_ context.Context, owner string) (*model.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].OwnerEmail == owner {
			return m.items[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memResumes) List(_ context.Context, f repository.ResumeFilter) ([]model.Resume, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = f
	var out []model.Resume
	for _, r := range m.items {
		if f.OwnerEmail != "" && r.OwnerEmail != f.OwnerEmail {
			continue
		}
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

type memJobs struct {
	mu       sync.Mutex
	jobs     []model.Job
	replaced int
}

func (m *memJobs) ReplaceAll(_ context.Context, jobs []model.Job) (uuid.UUID, error) {
	batch := uuid.New()
	next := make([]model.Job, len(jobs))
	for i, j := range jobs {
		j.ID = uuid.New()
		j.BatchID = batch
		j.Position = i
		next[i] = j
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = next
	m.replaced++
	return batch, nil
}

func (m *memJobs) FindAll(context.Context) ([]model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Job(nil), m.jobs...), nil
}

func (m *memJobs) List(_ context.Context, limit, offset int) ([]model.Job, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := int64(len(m.jobs))
	if offset >= len(m.jobs) {
		return []model.Job{}, total, nil
	}
	end := min(offset+limit, len(m.jobs))
	return append([]model.Job(nil), m.jobs[offset:end]...), total, nil
}

type stubSource struct {
	jobs  []model.Job
	err   error
	query string
}

func (s *stubSource) Fetch(_ context.Context, query string) ([]model.Job, error) {
	s.query = query
	return s.jobs, s.err
}

type stubText struct {
	text string
	err  error
}

func (s stubText) ExtractText([]byte) (string, error) {
	return s.text, s.err
}

type stubTagger struct {
	entities []matcher.Entity
}

func (s stubTagger) Tag(context.Context, string) ([]matcher.Entity, error) {
	return s.entities, nil
}

// wordCounts embeds texts as word counts over the vocabulary of the batch.
type wordCounts struct {
	calls int
	fail  bool
}

func (w *wordCounts) Embed(_ context.Context, texts []string) ([][]float32, error) {
	w.calls++
	if w.fail {
		return nil, errors.New("model not loaded")
	}
	words := map[string]bool{}
	for _, t := range texts {
		for _, f := range strings.Fields(strings.ToLower(t)) {
			words[f] = true
		}
	}
	keys := make([]string, 0, len(words))
	for k := range words {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		index[k] = i
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v := make([]float32, len(keys)+1)
		v[len(keys)] = 0.01
		for _, f := range strings.Fields(strings.ToLower(t)) {
			v[index[f]]++
		}
		out[i] = v
	}
	return out, nil
}

type memCache struct {
	entries map[string]any
	hits    int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]any{}}
}

func (c *memCache) Get(_ context.Context, key string, dest any) bool {
	v, ok := c.entries[key]
	if !ok {
		return false
	}
	c.hits++
	*(dest.(*[]matcher.Ranked[model.Job])) = v.([]matcher.Ranked[model.Job])
	return true
}

func (c *memCache) Set(_ context.Context, key string, value any) {
	c.entries[key] = value
}
