// Package render turns documents and view state into HTML fragments for
// the main content region. Rendering is a pure projection: the same data and
// state always produce the same markup.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"

	"github.com/hashportal/hashportal/internal/content"
	"github.com/hashportal/hashportal/internal/viewstate"
)

// Header is the title block shown on top of every view.
type Header struct {
	Title       string
	Description string
}

// Shortcut is a category link on the home view.
type Shortcut struct {
	Title string
	Href  string
	Note  string
}

// Toggle is one filter control.
type Toggle struct {
	Value  string
	Label  string
	Active bool
}

type dailyCard struct {
	ID        string
	Title     string
	Note      string
	TypeClass string
	TypeLabel string
	Cooldown  string
}

// Options configures a Renderer.
type Options struct {
	// Markdown renders section content as markdown instead of plain text.
	Markdown bool
}

// Renderer holds the parsed view templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the view templates.
func New(opts Options) (*Renderer, error) {
	var md goldmark.Markdown
	if opts.Markdown {
		md = newMarkdown()
	}
	funcs := template.FuncMap{
		"content": func(text string) template.HTML { return sectionContent(md, text) },
	}
	tmpl, err := template.New("views").Funcs(funcs).Parse(viewTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing view templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// Home renders the shortcut block and the link cards.
func (r *Renderer) Home(h Header, shortcuts []Shortcut, links content.Document[content.Link]) (template.HTML, error) {
	return r.execute("home", struct {
		Header    Header
		Shortcuts []Shortcut
		Links     content.Document[content.Link]
	}{h, shortcuts, links})
}

// Articles renders a plain list of entries with their sections.
func (r *Renderer) Articles(h Header, entries content.Document[content.Entry]) (template.HTML, error) {
	return r.execute("articles", struct {
		Header  Header
		Entries content.Document[content.Entry]
	}{h, entries})
}

// Dailies renders the dailies projection for the current state.
func (r *Renderer) Dailies(h Header, doc content.Document[content.DailyItem], st *viewstate.Dailies) (template.HTML, error) {
	rows := st.Project(doc)
	cards := make([]dailyCard, len(rows))
	for i, row := range rows {
		card := dailyCard{
			ID:        row.ID,
			Title:     row.Item.Title,
			Note:      row.Item.Note,
			TypeClass: "unknown",
			TypeLabel: row.Item.Type.Label(),
		}
		if row.Item.Type.Valid() {
			card.TypeClass = string(row.Item.Type)
		}
		if row.Item.CooldownDays != 0 {
			card.Cooldown = content.FormatDays(row.Item.CooldownDays)
		}
		cards[i] = card
	}

	types := make([]Toggle, 0, len(st.Types.Vocabulary()))
	for _, t := range st.Types.Vocabulary() {
		types = append(types, Toggle{Value: string(t), Label: t.Label(), Active: st.Types.Active(t)})
	}

	return r.execute("dailies", struct {
		Header      Header
		Types       []Toggle
		HiddenCount int
		Visible     int
		Total       int
		Rows        []dailyCard
	}{h, types, st.HiddenCount(), len(cards), len(doc), cards})
}

// Training renders the training projection for the current state.
func (r *Renderer) Training(h Header, doc content.Document[content.Entry], st *viewstate.Training) (template.HTML, error) {
	rows := st.Project(doc)

	tags := make([]Toggle, 0, len(st.Tags.Vocabulary()))
	for _, t := range st.Tags.Vocabulary() {
		tags = append(tags, Toggle{Value: t, Label: t, Active: st.Tags.Active(t)})
	}

	return r.execute("training", struct {
		Header  Header
		Tags    []Toggle
		Visible int
		Total   int
		Rows    []viewstate.TrainingRow
	}{h, tags, len(rows), len(doc), rows})
}

// ErrorHeader is the fixed header of the error panel.
var ErrorHeader = Header{Title: "表示エラー", Description: "データの読み込みに失敗しました。"}

// Error renders the generic failure panel with an escaped message.
func (r *Renderer) Error(message string) template.HTML {
	out, err := r.execute("error", struct {
		Header  Header
		Message string
	}{ErrorHeader, message})
	if err != nil {
		return template.HTML(`<article class="card error-panel"><p>` + template.HTMLEscapeString(message) + `</p></article>`)
	}
	return out
}
