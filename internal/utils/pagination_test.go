package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		total      int64
		page       int
		limit      int
		totalPages int
	}{
		{15, 2, 10, 2},
		{0, 1, 10, 0},
		{10, 1, 10, 1},
		{11, 1, 10, 2},
		{101, 1, 100, 2},
	}
	for _, tc := range cases {
		p := NewPagination(tc.total, PageParams{Page: tc.page, Limit: tc.limit})
		assert.Equal(t, tc.totalPages, p.TotalPages, "%+v", tc)
		assert.Equal(t, tc.total, p.Total)
	}
}

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, PageParams{Page: 1, Limit: 10}, NormalizePage(0, 0, 10))
	assert.Equal(t, PageParams{Page: 3, Limit: 25}, NormalizePage(3, 25, 10))
	assert.Equal(t, PageParams{Page: 1, Limit: MaxPageLimit}, NormalizePage(-4, 5000, 10))
	assert.Equal(t, 10, PageParams{Page: 2, Limit: 10}.Offset())
}

func TestParsePageParams(t *testing.T) {
	app := fiber.New()
	var got PageParams
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParsePageParams(c, 20)
		return PaginatedResponse(c, []int{}, NewPagination(0, got))
	})

	for query, want := range map[string]PageParams{
		"":                  {Page: 1, Limit: 20},
		"?page=2&limit=10":  {Page: 2, Limit: 10},
		"?page=abc&limit=x": {Page: 1, Limit: 20},
		"?limit=1000":       {Page: 1, Limit: MaxPageLimit},
	} {
		resp, err := app.Test(httptest.NewRequest("GET", "/"+query, nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, want, got, query)
	}
}
