package contentcheck

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashportal/hashportal/internal/progress"
	"github.com/hashportal/hashportal/internal/views"
)

var testDocs = views.Documents{
	Links:    "./data/links.json",
	Training: "./data/training.json",
	Money:    "./data/money.json",
	Dailies:  "./data/dailies.json",
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func validTree() map[string]string {
	return map[string]string{
		"index.html":         "<html></html>",
		"data/links.json":    `[{"title":"Wiki","url":"https://example.com"}]`,
		"data/training.json": `[{"title":"Combat","tags":["combat"],"sections":[]}]`,
		"data/money.json":    `[{"title":"Route","content":"farm"}]`,
		"data/dailies.json":  `[{"title":"A","type":"daily","cooldownDays":1}]`,
	}
}

func TestDiscover_IncludeFilter(t *testing.T) {
	dir := writeTree(t, validTree())

	files, err := Discover(dir, []string{"**/*.json"})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(files) != 4 {
		t.Fatalf("expected 4 json files, got %d", len(files))
	}
	for _, f := range files {
		if !strings.HasSuffix(f.RelPath, ".json") {
			t.Errorf("include filter let through %s", f.RelPath)
		}
		if len(f.ContentHash) != 64 {
			t.Errorf("ContentHash for %s has length %d", f.RelPath, len(f.ContentHash))
		}
	}
}

func TestDiscover_SkipsGitDir(t *testing.T) {
	tree := validTree()
	tree[".git/config.json"] = "[]"
	dir := writeTree(t, tree)

	files, err := Discover(dir, nil)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	for _, f := range files {
		if strings.HasPrefix(f.RelPath, ".git/") {
			t.Errorf("should skip .git, got %s", f.RelPath)
		}
	}
}

func TestDiscover_MissingRoot(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope"), nil); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestMatchesInclude(t *testing.T) {
	tests := []struct {
		path     string
		patterns []string
		want     bool
	}{
		{"data/links.json", nil, true},
		{"data/links.json", []string{"**/*.json"}, true},
		{"links.json", []string{"*.json"}, true},
		{"data/nested/x.json", []string{"data/**"}, true},
		{"index.html", []string{"**/*.json"}, false},
	}
	for _, tt := range tests {
		if got := MatchesInclude(tt.path, tt.patterns); got != tt.want {
			t.Errorf("MatchesInclude(%q, %v) = %v, want %v", tt.path, tt.patterns, got, tt.want)
		}
	}
}

func TestRun_Valid(t *testing.T) {
	dir := writeTree(t, validTree())

	report, err := Run(t.Context(), Options{Root: dir, Include: []string{"**/*.json"}, Documents: testDocs})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !report.OK() {
		t.Fatalf("expected clean report, got %+v", report)
	}
	shapes := map[string]Shape{}
	for _, r := range report.Results {
		shapes[r.File.RelPath] = r.Shape
		if r.Items != 1 {
			t.Errorf("%s: %d items, want 1", r.File.RelPath, r.Items)
		}
	}
	if shapes["data/dailies.json"] != ShapeDailies || shapes["data/money.json"] != ShapeEntries || shapes["data/links.json"] != ShapeLinks {
		t.Errorf("unexpected shapes: %v", shapes)
	}
}

func TestRun_Failures(t *testing.T) {
	tree := validTree()
	tree["data/dailies.json"] = `{"title":"not an array"}`
	tree["data/extra.json"] = `[1, 2`
	delete(tree, "data/money.json")
	dir := writeTree(t, tree)

	report, err := Run(t.Context(), Options{Root: dir, Include: []string{"**/*.json"}, Documents: testDocs})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if report.Failed() != 3 {
		t.Errorf("Failed() = %d, want 3", report.Failed())
	}
	if len(report.Missing) != 1 || report.Missing[0] != "data/money.json" {
		t.Errorf("Missing = %v", report.Missing)
	}
}

func TestRun_ConfiguredDocumentOutsideInclude(t *testing.T) {
	dir := writeTree(t, validTree())

	report, err := Run(t.Context(), Options{Root: dir, Include: []string{"nothing/*"}, Documents: testDocs})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(report.Results) != 4 {
		t.Errorf("configured documents should always be checked, got %d results", len(report.Results))
	}
}

func TestRun_Warnings(t *testing.T) {
	tree := validTree()
	tree["data/dailies.json"] = `[{"title":"X","type":"yearly"}]`
	tree["data/links.json"] = `[{"title":"bad","url":"javascript:alert(1)"}]`
	dir := writeTree(t, tree)

	report, err := Run(t.Context(), Options{Root: dir, Include: []string{"**/*.json"}, Documents: testDocs})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !report.OK() {
		t.Fatal("warnings must not fail the check")
	}
	warned := map[string]bool{}
	for _, r := range report.Results {
		if len(r.Warnings) > 0 {
			warned[r.File.RelPath] = true
		}
	}
	if !warned["data/dailies.json"] || !warned["data/links.json"] {
		t.Errorf("expected warnings for dailies and links, got %v", warned)
	}
}

func TestRun_ReportsNotices(t *testing.T) {
	tree := validTree()
	tree["data/dailies.json"] = `[{"title":"X","type":"yearly"}]`
	tree["data/extra.json"] = `{}`
	delete(tree, "data/money.json")
	dir := writeTree(t, tree)

	var buf bytes.Buffer
	report, err := Run(t.Context(), Options{
		Root:      dir,
		Include:   []string{"**/*.json"},
		Documents: testDocs,
		Reporter:  &progress.CIReporter{Out: &buf},
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if report.Warnings() != 1 {
		t.Errorf("Warnings() = %d, want 1", report.Warnings())
	}
	out := buf.String()
	for _, want := range []string{
		"FAIL data/money.json: configured document not found",
		"FAIL data/extra.json (array)",
		"WARN data/dailies.json:",
		"Document check complete, 3 notices",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}
