package mapping

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
)

// ErrNoTable is returned by LoadTable when no source produced any data.
var ErrNoTable = errors.New("mapping: no table could be loaded")

// Source yields the raw bytes of a mapping table.
type Source interface {
	Load(ctx context.Context) ([]byte, error)
	Path() string
}

// FileSource reads a table from the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource returns a source reading path.
func NewFileSource(path string) FileSource {
	return FileSource{path: strings.TrimSpace(path)}
}

func (f FileSource) Load(context.Context) ([]byte, error) {
	return os.ReadFile(f.path)
}

func (f FileSource) Path() string {
	return f.path
}

// EmbeddedSource yields the built-in table.
type EmbeddedSource struct{}

func (EmbeddedSource) Load(context.Context) ([]byte, error) {
	return DefaultJSON(), nil
}

func (EmbeddedSource) Path() string {
	return "embedded:mappings.json"
}

// LoadTable reads every source in order and merges the parsed tables: a
// record from a later source replaces records of the same name from earlier
// ones. Missing files are skipped so optional overrides can be listed
// unconditionally. The merged table is validated before it is returned.
func LoadTable(ctx context.Context, logger *slog.Logger, sources ...Source) (Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		merged Table
		loaded int
	)
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := src.Load(ctx)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("mapping source missing", "path", src.Path())
				continue
			}
			return nil, fmt.Errorf("mapping: load %s: %w", src.Path(), err)
		}
		table, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("mapping: parse %s: %w", src.Path(), err)
		}
		merged = merged.Merge(table)
		loaded++
		logger.Debug("mapping source loaded", "path", src.Path(), "records", len(table))
	}

	if loaded == 0 {
		return nil, ErrNoTable
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}
