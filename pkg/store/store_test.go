package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/tilewire/pkg/core/connection"
	"github.com/matzehuels/tilewire/pkg/core/connector"
	"github.com/matzehuels/tilewire/pkg/errors"
	"github.com/matzehuels/tilewire/pkg/graph"
)

func board() graph.Diagram {
	rec := connection.NewRecord("a", connector.Right, "b", connector.Left)
	return graph.Diagram{
		Nodes: []graph.Node{
			{ID: "a", Width: 100, Height: 100},
			{ID: "b", X: 300, Width: 100, Height: 100},
		},
		Connections: []connection.Record{rec},
	}
}

// exerciseStore runs the behavior every Store must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Load(ctx, "missing")
	assert.True(t, errors.Is(err, errors.ErrCodeBoardNotFound), "Load(missing) = %v", err)

	want := board()
	require.NoError(t, s.Save(ctx, "b1", want))
	require.NoError(t, s.Save(ctx, "b2", graph.Diagram{}))

	got, err := s.Load(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, want.Nodes, got.Nodes)
	require.Len(t, got.Connections, 1)
	assert.Equal(t, want.Connections[0], got.Connections[0])

	// Saving again replaces the board.
	want.Nodes[0].X = 42
	require.NoError(t, s.Save(ctx, "b1", want))
	got, err = s.Load(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 42.0, got.Nodes[0].X)

	ids, err := s.List(ctx)
	require.NoError(t, err)
	assert.Subset(t, ids, []string{"b1", "b2"})

	require.NoError(t, s.Delete(ctx, "b1"))
	require.NoError(t, s.Delete(ctx, "b1"))
	_, err = s.Load(ctx, "b1")
	assert.True(t, errors.Is(err, errors.ErrCodeBoardNotFound))

	assert.True(t, errors.Is(s.Save(ctx, "../etc", board()), errors.ErrCodeInvalidInput))

	invalid := board()
	invalid.Nodes = append(invalid.Nodes, invalid.Nodes[0])
	assert.Error(t, s.Save(ctx, "b3", invalid))

	require.NoError(t, s.Delete(ctx, "b2"))
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
}

func TestFileStoreListIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dir+"/notes.txt", []byte("x"), 0644))
	require.NoError(t, os.Mkdir(dir+"/sub.json", 0755))
	require.NoError(t, s.Save(context.Background(), "only", board()))

	ids, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, ids)
}

// TILEWIRE_MONGO_URI points the test at a live MongoDB.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("TILEWIRE_MONGO_URI")
	if uri == "" {
		t.Skip("TILEWIRE_MONGO_URI not set")
	}
	s, err := NewMongoStore(context.Background(), uri, "tilewire_test")
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
}
