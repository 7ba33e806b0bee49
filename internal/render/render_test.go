package render

import (
	"strings"
	"testing"

	"github.com/hashportal/hashportal/internal/content"
	"github.com/hashportal/hashportal/internal/viewstate"
)

const evil = `<script>alert("x")</script>`

func newRenderer(t *testing.T, opts Options) *Renderer {
	t.Helper()
	r, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func assertEscaped(t *testing.T, out string) {
	t.Helper()
	if strings.Contains(out, "<script>") {
		t.Errorf("output contains raw <script>:\n%s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Errorf("output does not contain escaped title:\n%s", out)
	}
}

func TestEscapingInEveryView(t *testing.T) {
	r := newRenderer(t, Options{})
	h := Header{Title: "T", Description: "D"}

	t.Run("home", func(t *testing.T) {
		out, err := r.Home(h, nil, content.Document[content.Link]{{Title: evil, Description: evil, URL: "https://example.com"}})
		if err != nil {
			t.Fatal(err)
		}
		assertEscaped(t, string(out))
	})

	t.Run("articles", func(t *testing.T) {
		out, err := r.Articles(h, content.Document[content.Entry]{
			{Title: evil, Content: evil},
			{Title: "s", Sections: []content.Section{{Title: evil, Note: evil, Table: &content.Table{Columns: []string{evil}, Rows: [][]string{{evil}}}}}},
		})
		if err != nil {
			t.Fatal(err)
		}
		assertEscaped(t, string(out))
	})

	t.Run("dailies", func(t *testing.T) {
		out, err := r.Dailies(h, content.Document[content.DailyItem]{{Title: evil, Type: content.DailyType(evil), Note: evil}}, viewstate.NewDailies())
		if err != nil {
			t.Fatal(err)
		}
		assertEscaped(t, string(out))
		if !strings.Contains(string(out), `class="tag unknown"`) {
			t.Error("unknown type should map to the fixed unknown class")
		}
	})

	t.Run("training", func(t *testing.T) {
		st := viewstate.NewTraining([]string{"A"})
		doc := content.Document[content.Entry]{{Title: evil, Tags: []string{evil}, Sections: []content.Section{{Title: evil}}}}
		st.ToggleOpen(content.TrainingItemID(doc[0], 0))
		out, err := r.Training(h, doc, st)
		if err != nil {
			t.Fatal(err)
		}
		assertEscaped(t, string(out))
	})

	t.Run("error", func(t *testing.T) {
		assertEscaped(t, string(r.Error(evil)))
	})
}

func TestUnsafeLinkNeutralised(t *testing.T) {
	r := newRenderer(t, Options{})
	out, err := r.Home(Header{}, nil, content.Document[content.Link]{{Title: "bad", URL: "javascript:alert(1)"}})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "javascript:") {
		t.Errorf("javascript URL should be filtered:\n%s", out)
	}
}

func TestHomeShortcuts(t *testing.T) {
	r := newRenderer(t, Options{})
	out, err := r.Home(Header{Title: "Home"}, []Shortcut{
		{Title: "育成", Href: "#/training"},
		{Title: "装備", Href: "#/home", Note: "準備中"},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !strings.Contains(s, `<a href="#/training">育成</a>`) {
		t.Errorf("missing training shortcut:\n%s", s)
	}
	if !strings.Contains(s, "装備 (準備中)") {
		t.Errorf("missing shortcut note:\n%s", s)
	}
}

func TestOptionalFieldsOmitted(t *testing.T) {
	r := newRenderer(t, Options{})
	out, err := r.Dailies(Header{}, content.Document[content.DailyItem]{{Title: "B", Type: content.Weekly}}, viewstate.NewDailies())
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if strings.Contains(s, "cooldown") {
		t.Error("cooldown markup should be omitted when absent")
	}
	if strings.Contains(s, "data-reset-hidden") {
		t.Error("reset control should only render when something is hidden")
	}

	out, err = r.Articles(Header{}, content.Document[content.Entry]{{Title: "s", Sections: []content.Section{{Title: "only title"}}}})
	if err != nil {
		t.Fatal(err)
	}
	s = string(out)
	for _, absent := range []string{"section-note", "section-table", "section-content"} {
		if strings.Contains(s, absent) {
			t.Errorf("%s should be omitted:\n%s", absent, s)
		}
	}
}

func TestDailiesControls(t *testing.T) {
	r := newRenderer(t, Options{})
	st := viewstate.NewDailies()
	doc := content.Document[content.DailyItem]{
		{Title: "A", Type: content.Daily, CooldownDays: 1},
		{Title: "B", Type: content.Weekly},
	}
	st.ToggleType(content.Daily)
	st.Hide("weekly:1:B")

	out, err := r.Dailies(Header{}, doc, st)
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	for _, want := range []string{
		`data-filter-type="daily" aria-pressed="true"`,
		`data-filter-type="weekly" aria-pressed="false"`,
		`data-filter-type="monthly"`,
		`data-reset-hidden`,
		`data-hide="daily:0:A"`,
		`cooldown: 1日`,
		`1 / 2 件`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q in:\n%s", want, s)
		}
	}
}

func TestTrainingCollapsedHidesDetail(t *testing.T) {
	r := newRenderer(t, Options{})
	st := viewstate.NewTraining([]string{"A", "B"})
	doc := content.Document[content.Entry]{{Title: "X", Tags: []string{"A"}, Sections: []content.Section{{Title: "detail"}}}}

	out, err := r.Training(Header{}, doc, st)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "item-detail") {
		t.Error("collapsed item should not render its detail")
	}
	if !strings.Contains(string(out), `data-toggle-open="0:X" aria-expanded="false"`) {
		t.Errorf("missing toggle control:\n%s", out)
	}

	st.ToggleOpen("0:X")
	out, err = r.Training(Header{}, doc, st)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "item-detail") || !strings.Contains(string(out), "detail</h4>") {
		t.Errorf("open item should render its sections:\n%s", out)
	}
}

func TestMarkdownContent(t *testing.T) {
	r := newRenderer(t, Options{Markdown: true})
	out, err := r.Articles(Header{}, content.Document[content.Entry]{{Title: "md", Content: "**bold** <script>x</script>"}})
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !strings.Contains(s, "<strong>bold</strong>") {
		t.Errorf("expected markdown emphasis:\n%s", s)
	}
	if strings.Contains(s, "<script>") {
		t.Errorf("raw HTML must be dropped:\n%s", s)
	}
}
