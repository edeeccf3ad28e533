package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tetris-go/internal/api/request"
	"github.com/mcoot/tetris-go/internal/api/response"
	"github.com/mcoot/tetris-go/internal/model"
)

// ScoreReader is the read side of the score service
type ScoreReader interface {
	Get(ctx context.Context, id model.ScoreID) (*model.ScoreRecord, error)
	Top(ctx context.Context, limit int) ([]*model.ScoreRecord, error)
	Count(ctx context.Context) (int, error)
}

// ScoreHandler handles leaderboard endpoints
type ScoreHandler struct {
	scores ScoreReader
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scores ScoreReader) *ScoreHandler {
	return &ScoreHandler{scores: scores}
}

// List handles GET /api/v1/scores
func (h *ScoreHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := request.ParseScoreQuery(r)
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	records, err := h.scores.Top(r.Context(), q.Limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	total, err := h.scores.Count(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScoreListFromModel(records, total))
}

// Get handles GET /api/v1/scores/{id}
func (h *ScoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.ScoreID(mux.Vars(r)["id"])

	record, err := h.scores.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScoreFromModel(record))
}
