// Package views defines the routed screens of the portal. A view fetches
// its documents off the event loop and renders them, with its state, on the
// loop. Stateful views also accept control actions.
package views

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/hashportal/hashportal/internal/content"
	"github.com/hashportal/hashportal/internal/datacache"
	"github.com/hashportal/hashportal/internal/render"
	"github.com/hashportal/hashportal/internal/router"
	"github.com/hashportal/hashportal/internal/viewstate"
)

// View is one routed screen.
type View interface {
	// Fetch loads the data the view renders. It may block and must not
	// touch view state.
	Fetch(ctx context.Context) (any, error)
	// Render projects fetched data through the current view state.
	Render(data any) (template.HTML, error)
}

// Controller is implemented by views whose state reacts to controls.
type Controller interface {
	// Apply mutates view state and reports whether the action belonged to
	// this view.
	Apply(a Action) bool
}

// ActionKind names a control in the rendered markup.
type ActionKind string

const (
	FilterType  ActionKind = "filter-type"
	FilterTag   ActionKind = "filter-tag"
	Hide        ActionKind = "hide"
	ResetHidden ActionKind = "reset-hidden"
	ToggleOpen  ActionKind = "toggle-open"
)

// Action is a control activation carried back from the page.
type Action struct {
	Kind  ActionKind `json:"action"`
	Value string     `json:"value,omitempty"`
}

// ParseAction parses "kind" or "kind=value".
func ParseAction(s string) (Action, error) {
	kind, value, _ := strings.Cut(s, "=")
	a := Action{Kind: ActionKind(strings.TrimSpace(kind)), Value: value}
	switch a.Kind {
	case FilterType, FilterTag, Hide, ToggleOpen:
		if a.Value == "" {
			return Action{}, fmt.Errorf("action %q needs a value", a.Kind)
		}
	case ResetHidden:
	default:
		return Action{}, fmt.Errorf("unknown action %q", kind)
	}
	return a, nil
}

// Documents names the content document of each view.
type Documents struct {
	Links    string
	Training string
	Money    string
	Dailies  string
}

// State is the per-session state of the stateful views.
type State struct {
	Dailies  *viewstate.Dailies
	Training *viewstate.Training
}

// NewState returns fresh view state.
func NewState(tags []string) *State {
	return &State{
		Dailies:  viewstate.NewDailies(),
		Training: viewstate.NewTraining(tags),
	}
}

// Routes builds the four standard routes in navigation order.
func Routes(cache *datacache.Cache, r *render.Renderer, docs Documents, st *State) []router.Route[View] {
	return []router.Route[View]{
		{Path: "/home", Label: "Home", View: &Home{cache: cache, r: r, path: docs.Links}},
		{Path: "/training", Label: "育成", View: &Training{cache: cache, r: r, path: docs.Training, state: st.Training}},
		{Path: "/money", Label: "稼ぎ", View: &Articles{
			cache:  cache,
			r:      r,
			path:   docs.Money,
			header: render.Header{Title: "稼ぎ", Description: "金策・稼ぎ情報のまとめです。"},
		}},
		{Path: "/dailies", Label: "日課", View: &Dailies{cache: cache, r: r, path: docs.Dailies, state: st.Dailies}},
	}
}

func unexpected(view string, data any) error {
	return fmt.Errorf("%s: unexpected data %T", view, data)
}

// Home shows the category shortcuts and the link cards.
type Home struct {
	cache *datacache.Cache
	r     *render.Renderer
	path  string
}

var homeShortcuts = []render.Shortcut{
	{Title: "育成", Href: "#/training"},
	{Title: "稼ぎ", Href: "#/money"},
	{Title: "日課", Href: "#/dailies"},
	{Title: "装備", Href: "#/home", Note: "準備中"},
}

func (v *Home) Fetch(ctx context.Context) (any, error) {
	return datacache.Load[content.Link](ctx, v.cache, v.path)
}

func (v *Home) Render(data any) (template.HTML, error) {
	links, ok := data.(content.Document[content.Link])
	if !ok {
		return "", unexpected("home", data)
	}
	return v.r.Home(render.Header{Title: "Home", Description: "便利リンクとカテゴリ移動のハブです。"}, homeShortcuts, links)
}

// Articles is a read-only list of sectioned entries.
type Articles struct {
	cache  *datacache.Cache
	r      *render.Renderer
	path   string
	header render.Header
}

func (v *Articles) Fetch(ctx context.Context) (any, error) {
	return datacache.Load[content.Entry](ctx, v.cache, v.path)
}

func (v *Articles) Render(data any) (template.HTML, error) {
	doc, ok := data.(content.Document[content.Entry])
	if !ok {
		return "", unexpected("articles", data)
	}
	return v.r.Articles(v.header, doc)
}

// Dailies lists daily/weekly/monthly items with a type filter and
// per-session dismissal.
type Dailies struct {
	cache *datacache.Cache
	r     *render.Renderer
	path  string
	state *viewstate.Dailies
}

func (v *Dailies) Fetch(ctx context.Context) (any, error) {
	return datacache.Load[content.DailyItem](ctx, v.cache, v.path)
}

func (v *Dailies) Render(data any) (template.HTML, error) {
	doc, ok := data.(content.Document[content.DailyItem])
	if !ok {
		return "", unexpected("dailies", data)
	}
	return v.r.Dailies(render.Header{Title: "日課", Description: "daily / weekly / monthly を見やすく表示します。"}, doc, v.state)
}

func (v *Dailies) Apply(a Action) bool {
	switch a.Kind {
	case FilterType:
		v.state.ToggleType(content.DailyType(a.Value))
	case Hide:
		v.state.Hide(a.Value)
	case ResetHidden:
		v.state.ResetHidden()
	default:
		return false
	}
	return true
}

// Training lists training entries with a tag filter and remembered
// expand/collapse state.
type Training struct {
	cache *datacache.Cache
	r     *render.Renderer
	path  string
	state *viewstate.Training
}

func (v *Training) Fetch(ctx context.Context) (any, error) {
	return datacache.Load[content.Entry](ctx, v.cache, v.path)
}

func (v *Training) Render(data any) (template.HTML, error) {
	doc, ok := data.(content.Document[content.Entry])
	if !ok {
		return "", unexpected("training", data)
	}
	return v.r.Training(render.Header{Title: "育成", Description: "育成関連メモの置き場です。"}, doc, v.state)
}

func (v *Training) Apply(a Action) bool {
	switch a.Kind {
	case FilterTag:
		v.state.ToggleTag(a.Value)
	case ToggleOpen:
		v.state.ToggleOpen(a.Value)
	default:
		return false
	}
	return true
}
