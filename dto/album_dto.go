package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateOnly = "2006-01-02"

// AlbumRequest is the body of both POST /albums and PUT /albums/:id. Replace
// requires every field again, so one shape serves both.
type AlbumRequest struct {
	Title       string   `json:"title" binding:"required"`
	ReleaseDate string   `json:"releaseDate"`
	Artist      string   `json:"artist" binding:"required"`
	Ranking     *Ranking `json:"ranking" binding:"required"`
}

// Ranking decodes from a JSON number or a numeric string; HTML form inputs
// post the latter. An empty string is rejected like any other non-number.
type Ranking int

func (r *Ranking) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if s, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(s)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid ranking %s: expected an integer", b)
	}
	*r = Ranking(n)
	return nil
}

// RankingValue returns nil when ranking was omitted or null.
func (r *AlbumRequest) RankingValue() *int {
	if r.Ranking == nil {
		return nil
	}
	v := int(*r.Ranking)
	return &v
}

// ParsedReleaseDate returns the zero time when the field was omitted.
func (r *AlbumRequest) ParsedReleaseDate() (time.Time, error) {
	raw := strings.TrimSpace(r.ReleaseDate)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateOnly, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid releaseDate %q: expected YYYY-MM-DD or RFC 3339", raw)
	}
	return t.UTC(), nil
}

type ErrorResponse struct {
	Error string `json:"Error"`
}

type SuccessResponse struct {
	Success string `json:"Success"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
