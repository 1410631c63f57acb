package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// MaxPageLimit caps the page size a client may request.
const MaxPageLimit = 100

// Pagination describes one page of a list result.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// PageParams are the requested page and page size.
type PageParams struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePageParams reads ?page= and ?limit=, falling back to page 1 and
// defaultLimit for missing or non-positive values.
func ParsePageParams(c *fiber.Ctx, defaultLimit int) PageParams {
	return NormalizePage(atoiOr(c.Query("page"), 1), atoiOr(c.Query("limit"), defaultLimit), defaultLimit)
}

// NormalizePage clamps page and limit into valid ranges.
func NormalizePage(page, limit, defaultLimit int) PageParams {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return PageParams{Page: page, Limit: limit}
}

// NewPagination computes totalPages = ceil(total/limit).
func NewPagination(total int64, p PageParams) Pagination {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return Pagination{Total: total, Page: p.Page, Limit: p.Limit, TotalPages: totalPages}
}

func atoiOr(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
