package request

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScoreQuery(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		limit   int
		wantErr bool
	}{
		{"absent", "/scores", 0, false},
		{"empty", "/scores?limit=", 0, false},
		{"value", "/scores?limit=25", 25, false},
		{"negative passes through", "/scores?limit=-3", -3, false},
		{"not a number", "/scores?limit=ten", 0, true},
		{"float", "/scores?limit=1.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseScoreQuery(httptest.NewRequest("GET", tt.target, nil))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.limit, q.Limit)
		})
	}
}
