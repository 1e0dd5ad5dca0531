package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds validated page and limit query values.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Parse reads page and limit from the query string, clamping limit to
// MaxLimit and falling back to defaults on junk input.
func Parse(c *gin.Context) Params {
	return New(atoi(c.Query("page"), DefaultPage), atoi(c.Query("limit"), DefaultLimit))
}

// New clamps raw page and limit values.
func New(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// Limit parses a bare limit query value such as the leaderboard size.
func Limit(c *gin.Context, key string, def int) int {
	return New(1, atoi(c.Query(key), def)).Limit
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
