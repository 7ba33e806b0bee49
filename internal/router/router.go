// Package router maps URL fragments to views. It knows nothing about how
// a view loads or renders; the runtime executes the outcome it returns.
package router

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultHome is the path used when the fragment is empty or unmapped.
const DefaultHome = "/home"

// Kind is the kind of a routing outcome.
type Kind int

const (
	// Render means the path is mapped and its view should be shown.
	Render Kind = iota
	// Redirect means the path is unmapped; the fragment must be rewritten
	// to Path and routing runs again.
	Redirect
)

func (k Kind) String() string {
	switch k {
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is the result of resolving a fragment.
type Outcome[V any] struct {
	Kind Kind
	Path string
	View V
}

// Route binds a path to a view and its navigation label.
type Route[V any] struct {
	Path  string
	Label string
	View  V
}

// NavItem is one navigation control as rendered by the shell.
type NavItem struct {
	Label string
	Path  string
	// Href is the fragment link for Path, e.g. "#/dailies".
	Href   string
	Active bool
}

// Router is a static path → view table with one active navigation item.
type Router[V any] struct {
	home   string
	order  []string
	labels map[string]string
	views  map[string]V

	current string
	active  string
}

// New builds a router. The home path must be one of the routes.
func New[V any](home string, routes ...Route[V]) (*Router[V], error) {
	if home == "" {
		home = DefaultHome
	}
	r := &Router[V]{
		home:   home,
		labels: make(map[string]string, len(routes)),
		views:  make(map[string]V, len(routes)),
	}
	for _, rt := range routes {
		if !strings.HasPrefix(rt.Path, "/") {
			return nil, fmt.Errorf("route path %q must start with /", rt.Path)
		}
		if _, dup := r.views[rt.Path]; dup {
			return nil, fmt.Errorf("duplicate route %q", rt.Path)
		}
		r.order = append(r.order, rt.Path)
		r.labels[rt.Path] = rt.Label
		r.views[rt.Path] = rt.View
	}
	if _, ok := r.views[home]; !ok {
		return nil, fmt.Errorf("home path %q is not a route", home)
	}
	return r, nil
}

// Home returns the fallback path.
func (r *Router[V]) Home() string { return r.home }

// PathFromFragment strips the leading '#' of a URL fragment and decodes
// percent-escapes, so "#%2Fdailies" and "#/dailies" are the same path. An
// empty fragment maps to home.
func PathFromFragment(fragment, home string) string {
	p := strings.TrimPrefix(fragment, "#")
	if decoded, err := url.PathUnescape(p); err == nil {
		p = decoded
	}
	if p == "" {
		return home
	}
	return p
}

// Resolve maps a fragment to an outcome and records the current path.
// A mapped path also becomes the single active navigation item; an
// unmapped one leaves navigation state untouched.
func (r *Router[V]) Resolve(fragment string) Outcome[V] {
	path := PathFromFragment(fragment, r.home)
	r.current = path

	view, ok := r.views[path]
	if !ok {
		return Outcome[V]{Kind: Redirect, Path: r.home}
	}
	r.active = path
	return Outcome[V]{Kind: Render, Path: path, View: view}
}

// Current returns the path of the last resolved fragment.
func (r *Router[V]) Current() string { return r.current }

// Active returns the path of the active navigation item.
func (r *Router[V]) Active() string { return r.active }

// View returns the view bound to path.
func (r *Router[V]) View(path string) (V, bool) {
	v, ok := r.views[path]
	return v, ok
}

// Nav returns the navigation items in declaration order. At most one is
// active, matched by exact path equality.
func (r *Router[V]) Nav() []NavItem {
	items := make([]NavItem, 0, len(r.order))
	for _, p := range r.order {
		items = append(items, NavItem{
			Label:  r.labels[p],
			Path:   p,
			Href:   "#" + p,
			Active: p == r.active,
		})
	}
	return items
}
