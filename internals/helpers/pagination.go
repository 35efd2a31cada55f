package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 25
	MaxPerPage     = 200
)

type PaginationParams struct {
	Page    int
	PerPage int
}

// ParsePagination membaca ?page= dan ?per_page= (alias ?limit=) dengan batas aman.
func ParsePagination(c *fiber.Ctx) PaginationParams {
	page := atoiDefault(c.Query("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	perRaw := strings.TrimSpace(c.Query("per_page"))
	if perRaw == "" {
		perRaw = strings.TrimSpace(c.Query("limit"))
	}
	per := DefaultPerPage
	if n, err := strconv.Atoi(perRaw); err == nil && n > 0 {
		per = n
	}
	if per > MaxPerPage {
		per = MaxPerPage
	}

	return PaginationParams{Page: page, PerPage: per}
}

func (p PaginationParams) Limit() int  { return p.PerPage }
func (p PaginationParams) Offset() int { return (p.Page - 1) * p.PerPage }

// BuildMeta untuk response list
func BuildMeta(p PaginationParams, total int64) fiber.Map {
	return fiber.Map{
		"page":     p.Page,
		"per_page": p.PerPage,
		"total":    total,
	}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
