package api

import (
	"github.com/mcoot/tetris-go/internal/model"
	"github.com/mcoot/tetris-go/internal/services/tetris"
)

// noGame is the snapshot source of a server that never hosts a game
type noGame struct{}

func (noGame) CurrentSnapshot() (tetris.Snapshot, error) {
	return tetris.Snapshot{}, model.ErrNoGameInProgress
}
