package cmd

import (
	"errors"
	"fmt"

	"github.com/jcdickinson/seedoc/internal/batch"
	"github.com/jcdickinson/seedoc/internal/cas"
	"github.com/jcdickinson/seedoc/internal/config"
	"github.com/jcdickinson/seedoc/internal/db"
	"github.com/jcdickinson/seedoc/internal/functions"
	"github.com/jcdickinson/seedoc/internal/markdown"
	"github.com/jcdickinson/seedoc/internal/paths"
	"github.com/jcdickinson/seedoc/internal/reflection"
	"github.com/jcdickinson/seedoc/internal/see"
)

var errNoProject = errors.New("no project indexed: run `seedoc index <dump>` or pass --project")

// workspace bundles what the rendering commands share.
type workspace struct {
	cfg      *config.Config
	project  *reflection.Project
	db       *db.DB // nil when --project is used
	rewriter *see.Rewriter
	markdown *markdown.Renderer
	batch    *batch.Renderer
}

// openWorkspace loads config and the project, either from --project or from
// the DuckDB index. The render cache is only used with the index, since a
// re-import is what invalidates it.
func openWorkspace() (*workspace, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	w := &workspace{cfg: cfg}
	if projectPath != "" {
		w.project, err = reflection.Load(projectPath)
		if err != nil {
			return nil, err
		}
	} else {
		w.db, err = db.New(config.DBPath())
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		last, err := w.db.LastImport()
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("reading import state: %w", err)
		}
		if last == nil {
			w.Close()
			return nil, errNoProject
		}
		w.project, err = w.db.LoadProject()
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("loading project: %w", err)
		}
	}

	registry := functions.Builtin()
	if cfg.Functions.File != "" {
		if err := registry.ReadFile(cfg.Functions.File); err != nil {
			w.Close()
			return nil, err
		}
	}

	resolver := see.NewResolver(registry, cfg.Links.FunctionDocsBase)
	w.rewriter = see.NewRewriter(resolver, paths.New(cfg.Links.BaseURL))
	w.markdown = markdown.NewRenderer(w.rewriter, markdown.Options{
		CodeLanguage:   cfg.Markdown.CodeLanguage,
		Highlight:      cfg.Markdown.Highlight,
		HighlightStyle: cfg.Markdown.HighlightStyle,
	})

	opts := batch.Options{Concurrency: cfg.Render.Concurrency}
	if cfg.Render.Cache && w.db != nil {
		opts.Store = cas.New(config.CASDir())
		opts.Index = w.db
		opts.Fingerprint = fingerprint(cfg, registry)
	}
	w.batch = batch.New(w.markdown, opts)

	return w, nil
}

// fingerprint covers every setting that changes rendered output, including
// the contents of the function registry.
func fingerprint(cfg *config.Config, registry *functions.Registry) string {
	return cas.Key(
		fmt.Sprintf("%+v", cfg.Links),
		fmt.Sprintf("%+v", cfg.Markdown),
		cas.Key(registry.Names()...),
	)
}

func (w *workspace) Close() {
	if w.db != nil {
		w.db.Close()
	}
}

// lookupClass returns the named class or an error naming it.
func (w *workspace) lookupClass(name string) (*reflection.Class, error) {
	if name == "" {
		return nil, errors.New("--class is required")
	}
	c, ok := w.project.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown class %s", name)
	}
	return c, nil
}
