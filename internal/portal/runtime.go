// Package portal is the application runtime of one page session: it owns
// the router, the document cache and the view state, and runs them on a
// single message loop.
package portal

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/hashportal/hashportal/internal/datacache"
	"github.com/hashportal/hashportal/internal/render"
	"github.com/hashportal/hashportal/internal/router"
	"github.com/hashportal/hashportal/internal/views"
)

// Display is where the runtime puts its output. All calls are made from
// the loop goroutine.
type Display interface {
	// Redirect rewrites the page fragment to path without triggering a
	// new navigation.
	Redirect(path string)
	// Activate marks the navigation item for path as the only active one.
	Activate(path string)
	// Show replaces the main content region.
	Show(path string, main template.HTML)
}

// Msg is an input of the message loop.
type Msg interface{ isMsg() }

// Navigate is a fragment change, including the initial page load.
type Navigate struct {
	Fragment string
}

// Control is a control activation in the current view.
type Control struct {
	Action views.Action
}

// loaded carries a finished fetch back onto the loop.
type loaded struct {
	gen  uint64
	path string
	data any
	err  error
}

func (Navigate) isMsg() {}
func (Control) isMsg()  {}
func (loaded) isMsg()   {}

// Options configures a runtime.
type Options struct {
	// ID identifies the session in logs.
	ID        string
	Home      string
	Documents views.Documents
	Tags      []string
	Cache     datacache.Options
	Markdown  bool
	Verbose   bool
}

// Runtime is one page session.
type Runtime struct {
	id      string
	verbose bool

	cache    *datacache.Cache
	renderer *render.Renderer
	state    *views.State
	router   *router.Router[views.View]
	display  Display

	inbox chan Msg
	done  chan struct{}

	// Loop-owned navigation state.
	gen    uint64
	cancel context.CancelFunc
	path   string
	view   views.View
	data   any
}

// New builds the runtime and everything it owns.
func New(opts Options, display Display) (*Runtime, error) {
	if display == nil {
		return nil, errors.New("portal: display is required")
	}
	cache, err := datacache.New(opts.Cache)
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}
	renderer, err := render.New(render.Options{Markdown: opts.Markdown})
	if err != nil {
		return nil, err
	}
	state := views.NewState(opts.Tags)
	rtr, err := router.New(opts.Home, views.Routes(cache, renderer, opts.Documents, state)...)
	if err != nil {
		return nil, fmt.Errorf("building router: %w", err)
	}
	return &Runtime{
		id:       opts.ID,
		verbose:  opts.Verbose,
		cache:    cache,
		renderer: renderer,
		state:    state,
		router:   rtr,
		display:  display,
		inbox:    make(chan Msg, 16),
		done:     make(chan struct{}),
	}, nil
}

// Nav returns the navigation items with the current active flag.
// Only safe before Run or from the Display callbacks.
func (rt *Runtime) Nav() []router.NavItem { return rt.router.Nav() }

// Cache exposes the session cache.
func (rt *Runtime) Cache() *datacache.Cache { return rt.cache }

// Send queues a message for the loop. It fails once the loop has stopped.
func (rt *Runtime) Send(ctx context.Context, msg Msg) error {
	select {
	case rt.inbox <- msg:
		return nil
	case <-rt.done:
		return errors.New("portal: runtime stopped")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes messages until ctx is cancelled.
func (rt *Runtime) Run(ctx context.Context) error {
	defer close(rt.done)
	defer rt.cancelLoad()

	rt.tracef("session started")
	for {
		select {
		case <-ctx.Done():
			rt.tracef("session ended")
			return ctx.Err()
		case msg := <-rt.inbox:
			rt.handle(ctx, msg)
		}
	}
}

func (rt *Runtime) handle(ctx context.Context, msg Msg) {
	switch m := msg.(type) {
	case Navigate:
		rt.navigate(ctx, m.Fragment)
	case Control:
		rt.control(m.Action)
	case loaded:
		rt.finish(m)
	}
}

// navigate runs one router transition. An unmapped path is rewritten to
// home and followed by a second, ordinary transition.
func (rt *Runtime) navigate(ctx context.Context, fragment string) {
	out := rt.router.Resolve(fragment)
	if out.Kind == router.Redirect {
		rt.tracef("redirect %q -> %s", fragment, out.Path)
		rt.display.Redirect(out.Path)
		out = rt.router.Resolve("#" + out.Path)
		if out.Kind != router.Render {
			log.Printf("portal[%s]: home %s is not routable", rt.id, out.Path)
			return
		}
	}

	rt.display.Activate(out.Path)

	// A newer navigation supersedes any load still in flight.
	rt.cancelLoad()
	rt.gen++
	gen := rt.gen
	rt.path, rt.view, rt.data = out.Path, out.View, nil

	loadCtx, cancel := context.WithCancel(ctx)
	rt.cancel = cancel
	view := out.View
	path := out.Path
	start := time.Now()
	go func() {
		data, err := view.Fetch(loadCtx)
		rt.tracef("fetched %s in %s", path, time.Since(start).Round(time.Millisecond))
		select {
		case rt.inbox <- loaded{gen: gen, path: path, data: data, err: err}:
		case <-rt.done:
		}
	}()
}

func (rt *Runtime) finish(m loaded) {
	if m.gen != rt.gen {
		rt.tracef("dropping stale load of %s", m.path)
		return
	}
	rt.cancelLoad()

	if m.err != nil {
		var loadErr *datacache.LoadError
		if errors.As(m.err, &loadErr) {
			log.Printf("portal[%s]: load failed: %s", rt.id, loadErr.Detail())
		} else {
			log.Printf("portal[%s]: load %s: %v", rt.id, m.path, m.err)
		}
		rt.display.Show(m.path, rt.renderer.Error(m.err.Error()))
		return
	}
	rt.data = m.data
	rt.show()
}

// control applies an action to the current view's state and re-renders it
// in place. The router is not involved.
func (rt *Runtime) control(a views.Action) {
	ctrl, ok := rt.view.(views.Controller)
	if !ok || !ctrl.Apply(a) {
		rt.tracef("ignoring %s on %s", a.Kind, rt.path)
		return
	}
	if rt.data == nil {
		// Still loading or failed; the next render picks the state up.
		return
	}
	rt.show()
}

func (rt *Runtime) show() {
	html, err := rt.view.Render(rt.data)
	if err != nil {
		log.Printf("portal[%s]: render %s: %v", rt.id, rt.path, err)
		html = rt.renderer.Error(err.Error())
	}
	rt.display.Show(rt.path, html)
}

func (rt *Runtime) cancelLoad() {
	if rt.cancel != nil {
		rt.cancel()
		rt.cancel = nil
	}
}

func (rt *Runtime) tracef(format string, args ...any) {
	if rt.verbose {
		log.Printf("portal[%s]: "+format, append([]any{rt.id}, args...)...)
	}
}
