package asset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"toon-outline/internal/geometry"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/udhos/gwob"
)

// LoadJob asks for an OBJ (and optional MTL) to be decoded.
type LoadJob struct {
	OBJ   string
	MTL   string
	Scale float32
}

// LoadResult is delivered on the loader's result channel. Color is set when
// the model's first used material has a diffuse color.
type LoadResult struct {
	Job      LoadJob
	Geometry *geometry.Geometry
	Color    mgl32.Vec3
	HasColor bool
	Err      error
}

// Loader decodes models on a single background goroutine. Results are picked
// up by the render thread with Poll; nothing here touches GL.
type Loader struct {
	jobs    chan LoadJob
	results chan LoadResult
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	log     *slog.Logger
	opts    *gwob.ObjParserOptions
}

// NewLoader starts the loader goroutine.
func NewLoader(log *slog.Logger) *Loader {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loader{
		jobs:    make(chan LoadJob, 4),
		results: make(chan LoadResult, 4),
		ctx:     ctx,
		cancel:  cancel,
		log:     log.With("component", "asset"),
	}
	l.opts = &gwob.ObjParserOptions{Logger: func(msg string) {
		l.log.Debug("obj parser", "msg", strings.TrimSpace(msg))
	}}
	l.wg.Add(1)
	go l.worker()
	return l
}

// Submit queues a job. It returns false if the queue is full or the loader is
// shut down.
func (l *Loader) Submit(job LoadJob) bool {
	if l.ctx.Err() != nil {
		return false
	}
	select {
	case l.jobs <- job:
		return true
	default:
		return false
	}
}

// Poll returns a finished result without blocking.
func (l *Loader) Poll() (LoadResult, bool) {
	select {
	case r := <-l.results:
		return r, true
	default:
		return LoadResult{}, false
	}
}

// Shutdown stops the worker and waits for it to exit.
func (l *Loader) Shutdown() {
	l.cancel()
	l.wg.Wait()
}

func (l *Loader) worker() {
	defer l.wg.Done()
	for {
		select {
		case job := <-l.jobs:
			res := load(job, l.opts)
			if res.Err != nil {
				l.log.Warn("model load failed", "obj", job.OBJ, "err", res.Err)
			} else {
				l.log.Info("model loaded", "obj", job.OBJ,
					"vertices", res.Geometry.VertexCount(), "triangles", res.Geometry.IndexCount()/3)
			}
			select {
			case l.results <- res:
			case <-l.ctx.Done():
				return
			}
		case <-l.ctx.Done():
			return
		}
	}
}

// Load runs a job synchronously.
func Load(job LoadJob) LoadResult {
	return load(job, &gwob.ObjParserOptions{})
}

func load(job LoadJob, opts *gwob.ObjParserOptions) LoadResult {
	res := LoadResult{Job: job}

	o, err := gwob.NewObjFromFile(job.OBJ, opts)
	if err != nil {
		res.Err = fmt.Errorf("read obj %s: %w", job.OBJ, err)
		return res
	}
	g, err := ToGeometry(o)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", job.OBJ, err)
		return res
	}
	if job.Scale > 0 && job.Scale != 1 {
		g.Scale(job.Scale)
	}

	path, required := materialPath(filepath.Dir(job.OBJ), job.MTL, o.Mtllib)
	if path != "" {
		lib, err := gwob.ReadMaterialLibFromFile(path, opts)
		switch {
		case err == nil:
			res.Color, res.HasColor = Diffuse(o, lib)
		case required || !errors.Is(err, fs.ErrNotExist):
			res.Err = fmt.Errorf("read mtl %s: %w", path, err)
			return res
		}
	}
	res.Geometry = g
	return res
}

// materialPath picks the MTL to read. An explicit MTL that is a bare file name
// sits next to the OBJ; any other explicit path is used as given. Without one
// the OBJ's own mtllib is used, and a missing file there is not an error.
func materialPath(objDir, explicit, mtllib string) (path string, required bool) {
	switch {
	case explicit != "" && filepath.Base(explicit) == explicit:
		return filepath.Join(objDir, explicit), true
	case explicit != "":
		return explicit, true
	case mtllib != "":
		return filepath.Join(objDir, mtllib), false
	}
	return "", false
}
