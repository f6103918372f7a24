package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	osfs "github.com/hack-pad/hackpadfs/os"

	"github.com/kittclouds/moodreel/internal/logging"
	"github.com/kittclouds/moodreel/internal/metrics"
	"github.com/kittclouds/moodreel/internal/store"
	"github.com/kittclouds/moodreel/pkg/catalog"
	"github.com/kittclouds/moodreel/pkg/recommend"
	"github.com/kittclouds/moodreel/pkg/vector"
)

// hostPath maps an OS path onto the host filesystem as a hackpadfs path.
func hostPath(path string) (hackpadfs.FS, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", err
	}
	fsys := osfs.NewFS()
	name, err := fsys.FromOSPath(abs)
	if err != nil {
		return nil, "", err
	}
	return fsys, name, nil
}

func (a *app) loader() *recommend.Loader {
	path := a.cfg.Catalog.Path
	derive := a.cfg.Catalog.DeriveTrailers

	return recommend.NewLoader(func() (*catalog.Corpus, error) {
		start := time.Now()
		fsys, name, err := hostPath(path)
		if err != nil {
			return nil, &catalog.DataLoadError{Source: path, Err: err}
		}
		c, err := catalog.LoadFile(fsys, name, catalog.Options{DeriveTrailers: derive, Source: path})
		if err != nil {
			metrics.CatalogLoadErrors.Inc()
			return nil, err
		}
		logging.Info().
			Str("path", path).
			Int("movies", c.Len()).
			Dur("elapsed", time.Since(start)).
			Msg("catalog loaded")
		return c, nil
	})
}

// buildIndex loads the catalog eagerly; a load failure is fatal to the caller.
func (a *app) buildIndex() (*recommend.Loader, *recommend.Index, error) {
	l := a.loader()
	start := time.Now()
	idx, err := l.Get()
	if err != nil {
		return nil, nil, err
	}
	metrics.RecordCorpus(idx.Corpus().Len(), idx.Matrix().Dim())
	logging.Info().
		Int("terms", idx.Matrix().Dim()).
		Dur("elapsed", time.Since(start)).
		Msg("index built")
	return l, idx, nil
}

func (a *app) openHistory() (store.Storer, error) {
	switch a.cfg.History.Driver {
	case "sqlite":
		s, err := store.NewSQLiteStoreWithDSN(a.cfg.History.DSN)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		return s, nil
	default:
		return store.NewMemStore(), nil
	}
}

// similarIndex indexes the matrix rows, saving a snapshot when a path is
// configured.
func (a *app) similarIndex(idx *recommend.Index) (*vector.Store, error) {
	var (
		fsys hackpadfs.FS
		name = "similar.bin"
		err  error
	)
	if p := a.cfg.Similar.IndexPath; p != "" {
		fsys, name, err = hostPath(p)
	} else {
		fsys, err = mem.NewFS()
	}
	if err != nil {
		return nil, err
	}

	vs, err := vector.FromMatrix(fsys, name, idx.Matrix())
	if err != nil {
		return nil, fmt.Errorf("build similar index: %w", err)
	}
	if a.cfg.Similar.IndexPath != "" {
		if err := vs.Save(); err != nil {
			return nil, err
		}
	}
	logging.Debug().Int("vectors", vs.Size()).Msg("similar index ready")
	return vs, nil
}
