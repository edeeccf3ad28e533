package request

import (
	"fmt"
	"net/http"
	"strconv"
)

// ScoreQuery holds the query parameters of the leaderboard endpoint
type ScoreQuery struct {
	// Limit is zero when the parameter is absent
	Limit int
}

// ParseScoreQuery reads ?limit=N. A present but non-integer limit is an
// error; range clamping is left to the score service.
func ParseScoreQuery(r *http.Request) (ScoreQuery, error) {
	var q ScoreQuery
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return q, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return q, fmt.Errorf("limit must be an integer, got %q", raw)
	}
	q.Limit = limit
	return q, nil
}
