package server

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/hashportal/hashportal/internal/router"
)

//go:embed shell.html
var shellHTML string

var shellTemplate = template.Must(template.New("shell").Parse(shellHTML))

// renderShell renders the static page once; everything below the sidebar is
// filled in over the websocket.
func renderShell(title string, nav []router.NavItem) ([]byte, error) {
	var buf bytes.Buffer
	err := shellTemplate.Execute(&buf, struct {
		Title string
		Nav   []router.NavItem
	}{title, nav})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// serveShell serves the pre-rendered shell page.
func (s *Server) serveShell(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(s.shell)
}
