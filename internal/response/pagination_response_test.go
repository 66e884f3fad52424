package response_test

import (
	"testing"

	"github.com/fadilmartias/resume-matcher/internal/response"
	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := response.NewPagination(2, 10, 10, 25)

	assert.Equal(t, int64(3), p.TotalPages)
	assert.Equal(t, 11, p.From)
	assert.Equal(t, 20, p.To)
	assert.True(t, p.HasMore)
}

func TestNewPagination_LastAndEmptyPages(t *testing.T) {
	last := response.NewPagination(3, 10, 5, 25)
	assert.False(t, last.HasMore)
	assert.Equal(t, 25, last.To)

	empty := response.NewPagination(1, 10, 0, 0)
	assert.Zero(t, empty.From)
	assert.Zero(t, empty.TotalPages)
	assert.False(t, empty.HasMore)
}
