package batch

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/jcdickinson/seedoc/internal/cas"
	"github.com/jcdickinson/seedoc/internal/markdown"
	"github.com/jcdickinson/seedoc/internal/paths"
	"github.com/jcdickinson/seedoc/internal/reflection"
	"github.com/jcdickinson/seedoc/internal/see"
)

// Index maps render cache keys to CAS content hashes. *db.DB implements it.
type Index interface {
	GetRenderCache(key string) (string, bool, error)
	PutRenderCache(key, contentHash string) error
}

type Options struct {
	Concurrency int

	// Store and Index enable the render cache. Both must be set.
	Store *cas.Store
	Index Index

	// Fingerprint is mixed into every cache key. It should change whenever
	// the output for the same input could change, e.g. when link or
	// Markdown settings differ.
	Fingerprint string
}

// Result is one rendered description.
type Result struct {
	Key    string `json:"key"` // `App\Foo` or `App\Foo::bar`
	Class  string `json:"class"`
	Method string `json:"method,omitempty"`
	Page   string `json:"page"`
	HTML   string `json:"html"`
	Cached bool   `json:"-"`
}

// Renderer renders descriptions in bulk through one shared markdown
// Renderer.
type Renderer struct {
	md    *markdown.Renderer
	opts  Options
	group singleflight.Group
}

func New(md *markdown.Renderer, opts Options) *Renderer {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &Renderer{md: md, opts: opts}
}

func (r *Renderer) caching() bool {
	return r.opts.Store != nil && r.opts.Index != nil
}

type job struct {
	class  *reflection.Class
	method string
	desc   string
}

func (j job) key() string {
	if j.method == "" {
		return j.class.Name()
	}
	return j.class.Name() + "::" + j.method
}

func jobsFor(c *reflection.Class) []job {
	var jobs []job
	if c.Description() != "" {
		jobs = append(jobs, job{class: c, desc: c.Description()})
	}
	for _, m := range c.Methods() {
		if m.Description() != "" {
			jobs = append(jobs, job{class: c, method: m.Name(), desc: m.Description()})
		}
	}
	return jobs
}

// RenderProject renders every non-empty class and method description in
// project, each on its class's page. Results are ordered by class name, then
// by method declaration order. The first failure cancels the remaining work.
func (r *Renderer) RenderProject(ctx context.Context, project *reflection.Project) ([]Result, error) {
	var jobs []job
	for _, c := range project.Classes() {
		jobs = append(jobs, jobsFor(c)...)
	}
	results, err := r.run(ctx, jobs)
	if err != nil {
		return nil, err
	}
	slog.Debug("rendered project", "descriptions", len(results))
	return results, nil
}

// RenderClass renders the description of c and of each of its methods.
func (r *Renderer) RenderClass(ctx context.Context, c *reflection.Class) ([]Result, error) {
	return r.run(ctx, jobsFor(c))
}

func (r *Renderer) run(ctx context.Context, jobs []job) ([]Result, error) {
	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)

	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			page := paths.ClassPage(j.class.Name())
			html, cached, err := r.Render(j.class, j.desc, page)
			if err != nil {
				return fmt.Errorf("rendering %s: %w", j.key(), err)
			}
			results[i] = Result{
				Key:    j.key(),
				Class:  j.class.Name(),
				Method: j.method,
				Page:   page,
				HTML:   html,
				Cached: cached,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Render renders a single description in the scope of class as it would
// appear on page. The second return value reports a cache hit.
func (r *Renderer) Render(class see.Class, desc, page string) (string, bool, error) {
	rctx := see.RenderContext{paths.PageKey: page}
	if !r.caching() || desc == "" {
		return r.md.Render(desc, class, rctx), false, nil
	}

	key := cas.Key(class.Name(), page, desc, r.opts.Fingerprint)
	hash, found, err := r.opts.Index.GetRenderCache(key)
	if err != nil {
		return "", false, fmt.Errorf("reading render cache: %w", err)
	}
	if found {
		html, err := r.opts.Store.Read(hash)
		if err == nil {
			return html, true, nil
		}
		slog.Warn("render cache entry unreadable, re-rendering", "hash", hash, "error", err)
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		html := r.md.Render(desc, class, rctx)
		hash, err := r.opts.Store.Write(html)
		if err != nil {
			return nil, fmt.Errorf("storing rendered html: %w", err)
		}
		if err := r.opts.Index.PutRenderCache(key, hash); err != nil {
			return nil, fmt.Errorf("updating render cache: %w", err)
		}
		return html, nil
	})
	if err != nil {
		return "", false, err
	}
	return v.(string), false, nil
}
