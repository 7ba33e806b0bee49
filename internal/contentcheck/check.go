// Package contentcheck validates a portal's JSON documents before they are
// served: every matched file must be a JSON array, and the documents the
// views load must decode into their shapes.
package contentcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashportal/hashportal/internal/content"
	"github.com/hashportal/hashportal/internal/progress"
	"github.com/hashportal/hashportal/internal/views"
)

// Shape names what a document is decoded as.
type Shape string

const (
	ShapeArray   Shape = "array"
	ShapeLinks   Shape = "links"
	ShapeEntries Shape = "entries"
	ShapeDailies Shape = "dailies"
)

// Result is the outcome for one file.
type Result struct {
	File     File
	Shape    Shape
	Items    int
	Err      error
	Warnings []string
}

// Report collects the results of a check run.
type Report struct {
	Results []Result
	// Missing lists configured documents not found under the root.
	Missing []string
}

// Warnings counts warnings across all results.
func (r *Report) Warnings() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Warnings)
	}
	return n
}

// Failed counts files that did not decode plus missing documents.
func (r *Report) Failed() int {
	n := len(r.Missing)
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// OK reports whether the content is servable.
func (r *Report) OK() bool { return r.Failed() == 0 }

// Options configures Run.
type Options struct {
	Root      string
	Include   []string
	Documents views.Documents
	// Reporter receives progress; nil means no output.
	Reporter progress.Reporter
}

// Run discovers and checks every document under opts.Root.
func Run(ctx context.Context, opts Options) (*Report, error) {
	files, err := Discover(opts.Root, opts.Include)
	if err != nil {
		return nil, err
	}

	shapes := documentShapes(opts.Documents)
	report := &Report{}

	// Configured documents are checked even when the include globs miss them.
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		seen[f.RelPath] = true
	}
	for rel := range shapes {
		if seen[rel] {
			continue
		}
		p := filepath.Join(opts.Root, filepath.FromSlash(rel))
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			report.Missing = append(report.Missing, rel)
			continue
		}
		hash, err := hashFile(p)
		if err != nil {
			report.Missing = append(report.Missing, rel)
			continue
		}
		files = append(files, File{Path: p, RelPath: rel, Size: info.Size(), ContentHash: hash})
	}
	sort.Strings(report.Missing)
	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })

	rep := opts.Reporter
	if rep == nil {
		rep = progress.Nop{}
	}
	rep.Start(len(files))
	defer rep.Finish()

	for _, m := range report.Missing {
		rep.Notice("FAIL %s: configured document not found", m)
	}
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		shape, ok := shapes[f.RelPath]
		if !ok {
			shape = ShapeArray
		}
		res := checkFile(f, shape)
		if res.Err != nil {
			rep.Notice("FAIL %s (%s): %v", f.RelPath, shape, res.Err)
		}
		for _, w := range res.Warnings {
			rep.Notice("WARN %s: %s", f.RelPath, w)
		}
		report.Results = append(report.Results, res)
		rep.Update(i+1, f.RelPath)
	}
	return report, nil
}

// documentShapes maps each configured document, relative to the root, to
// its shape.
func documentShapes(docs views.Documents) map[string]Shape {
	shapes := make(map[string]Shape, 4)
	add := func(p string, s Shape) {
		if p == "" {
			return
		}
		shapes[strings.TrimPrefix(path.Clean(p), "/")] = s
	}
	add(docs.Links, ShapeLinks)
	add(docs.Training, ShapeEntries)
	add(docs.Money, ShapeEntries)
	add(docs.Dailies, ShapeDailies)
	return shapes
}

func checkFile(f File, shape Shape) Result {
	res := Result{File: f, Shape: shape}
	if f.Size > DefaultMaxFileSize {
		res.Err = fmt.Errorf("%d bytes exceeds the %d byte limit", f.Size, DefaultMaxFileSize)
		return res
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		res.Err = err
		return res
	}

	switch shape {
	case ShapeLinks:
		doc, err := content.Decode[content.Link](data)
		res.Items, res.Err = len(doc), err
		for i, l := range doc {
			if l.URL != "" && !strings.HasPrefix(l.URL, "http://") && !strings.HasPrefix(l.URL, "https://") {
				res.Warnings = append(res.Warnings, fmt.Sprintf("[%d] %q: url %q is not http(s) and will be neutralised", i, l.Title, l.URL))
			}
		}
	case ShapeEntries:
		doc, err := content.Decode[content.Entry](data)
		res.Items, res.Err = len(doc), err
		for i, e := range doc {
			if e.Title == "" {
				res.Warnings = append(res.Warnings, fmt.Sprintf("[%d] entry has no title", i))
			}
		}
	case ShapeDailies:
		doc, err := content.Decode[content.DailyItem](data)
		res.Items, res.Err = len(doc), err
		for i, d := range doc {
			if !d.Type.Valid() {
				res.Warnings = append(res.Warnings, fmt.Sprintf("[%d] %q: unknown type %q matches no filter", i, d.Title, d.Type))
			}
			if d.CooldownDays < 0 {
				res.Warnings = append(res.Warnings, fmt.Sprintf("[%d] %q: negative cooldownDays", i, d.Title))
			}
		}
	default:
		doc, err := content.Decode[json.RawMessage](data)
		res.Items, res.Err = len(doc), err
	}
	return res
}
