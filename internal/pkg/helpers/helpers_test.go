package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateOffsetLimit(t *testing.T) {
	p := CalculateOffsetLimit(3, 20)
	assert.Equal(t, uint64(40), p.Offset)
	assert.Equal(t, 20, p.Limit)

	p = CalculateOffsetLimit(0, 500)
	assert.Equal(t, uint64(0), p.Offset)
	assert.Equal(t, DefaultPageSize, p.Limit)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(25, 2, 10)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, int64(25), info.TotalItems)

	info = NewPaginationInfo(25, 9, 10)
	assert.Equal(t, 3, info.CurrentPage)

	info = NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, info.TotalPages)
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query    string
		wantPage int
		wantSize int
	}{
		{"", 1, DefaultPageSize},
		{"?page=4&size=25", 4, 25},
		{"?page=-1&size=1000", 1, DefaultPageSize},
		{"?page=abc&size=x", 1, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/items"+tt.query, nil)

			page, size := ParsePaginationParams(c)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}

func TestNullIfBlank(t *testing.T) {
	assert.Nil(t, NullIfBlank(nil))

	blank := "   "
	assert.Nil(t, NullIfBlank(&blank))

	padded := "  math  "
	got := NullIfBlank(&padded)
	require.NotNil(t, got)
	assert.Equal(t, "math", *got)
}

func TestParseOptionalID(t *testing.T) {
	id, ok := ParseOptionalID("")
	assert.True(t, ok)
	assert.Nil(t, id)

	id, ok = ParseOptionalID("12")
	assert.True(t, ok)
	require.NotNil(t, id)
	assert.Equal(t, int64(12), *id)

	_, ok = ParseOptionalID("0")
	assert.False(t, ok)
	_, ok = ParseOptionalID("x")
	assert.False(t, ok)
}
