package store

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/tilewire/pkg/errors"
	"github.com/matzehuels/tilewire/pkg/graph"
)

// FileStore keeps each board as <dir>/<id>.json.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) string { return filepath.Join(s.dir, id+".json") }

// Load reads a board.
func (s *FileStore) Load(ctx context.Context, id string) (graph.Diagram, error) {
	if err := checkID(id); err != nil {
		return graph.Diagram{}, err
	}
	d, err := graph.ReadDiagramFile(s.path(id))
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return graph.Diagram{}, notFound(id)
	}
	return d, err
}

// Save writes a board through a temporary file so readers never see a
// partial write.
func (s *FileStore) Save(ctx context.Context, id string, d graph.Diagram) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}
	data, err := graph.MarshalDiagram(d)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, id+".*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save board %q", id)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeStorage, err, "save board %q", id)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save board %q", id)
	}
	if err := os.Rename(tmp.Name(), s.path(id)); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save board %q", id)
	}
	return nil
}

// Delete removes a board.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete board %q", id)
	}
	return nil
}

// List returns the stored board ids in lexical order.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list boards")
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	slices.Sort(ids)
	return ids, nil
}

// Close does nothing for file store.
func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
