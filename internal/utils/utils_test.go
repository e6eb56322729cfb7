package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "", 1, DefaultPageSize},
		{"explicit", "?page=3&per_page=25", 3, 25},
		{"garbage", "?page=abc&per_page=xyz", 1, DefaultPageSize},
		{"negative", "?page=-4&per_page=-1", 1, DefaultPageSize},
		{"page size too large", "?per_page=500", 1, DefaultPageSize},
		{"huge page is capped", "?page=1000000000000000000", MaxPage, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/"+tt.query, nil)

			page, pageSize := GetPaginationParams(c)

			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}
