// Package store persists diagrams by board id.
//
// The routing core never touches storage: hosts load a board's records,
// hand them to a manager, and save them back. [FileStore] keeps one JSON
// file per board; [MongoStore] keeps one document per board.
package store

import (
	"context"

	"github.com/matzehuels/tilewire/pkg/errors"
	"github.com/matzehuels/tilewire/pkg/graph"
)

// Store loads and saves diagrams keyed by board id.
//
// Load returns an error with code BOARD_NOT_FOUND for unknown boards.
// Delete of an unknown board is not an error.
type Store interface {
	Load(ctx context.Context, id string) (graph.Diagram, error)
	Save(ctx context.Context, id string, d graph.Diagram) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
	Close() error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeBoardNotFound, "board %q not found", id)
}

func checkID(id string) error {
	if err := errors.ValidateID(id); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "board id")
	}
	return nil
}
