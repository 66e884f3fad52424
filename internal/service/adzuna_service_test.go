package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fadilmartias/resume-matcher/internal/matcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdzuna(url string, pages int) *AdzunaService {
	s := NewAdzunaService()
	s.AppID = "id"
	s.AppKey = "key"
	s.Country = "gb"
	s.BaseURL = url
	s.MaxPages = pages
	return s
}

func TestAdzunaService_Fetch(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "/gb/search/1", r.URL.Path)
		assert.Equal(t, "golang developer", r.URL.Query().Get("what"))
		assert.Equal(t, "id", r.URL.Query().Get("app_id"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[
			{"id":"101","title":" Go Engineer ","description":"Build APIs in Go","company":{"display_name":"Acme"},"location":{"display_name":"London"},"redirect_url":"https://adzuna.example/101"},
			{"id":"102","title":"Platform Engineer","description":"Kubernetes","company":{"display_name":"Initech"},"location":{"display_name":"Leeds"}}
		]}`)
	}))
	defer srv.Close()

	jobs, err := newTestAdzuna(srv.URL, 3).Fetch(context.Background(), "golang developer")
	require.NoError(t, err)

	// a short page ends paging
	assert.Equal(t, int32(1), requests.Load())
	require.Len(t, jobs, 2)
	assert.Equal(t, "Go Engineer", jobs[0].Title)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, "London", jobs[0].Location)
	assert.Equal(t, "https://adzuna.example/101", jobs[0].ExternalID)
	assert.Equal(t, "102", jobs[1].ExternalID)
}

func TestAdzunaService_FetchFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
		"invalid json": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html>maintenance</html>")
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			jobs, err := newTestAdzuna(srv.URL, 1).Fetch(context.Background(), "go")
			assert.ErrorIs(t, err, matcher.ErrJobSourceUnavailable)
			assert.Nil(t, jobs)
		})
	}
}

func TestAdzunaService_MissingCredentials(t *testing.T) {
	s := newTestAdzuna("http://127.0.0.1:1", 1)
	s.AppKey = ""

	_, err := s.Fetch(context.Background(), "go")
	assert.ErrorIs(t, err, matcher.ErrJobSourceUnavailable)
}
