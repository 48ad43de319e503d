package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"join":       strings.Join,
	"pathEscape": url.PathEscape,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "Not scheduled"
		}
		return t.Format("Mon, 02 Jan 2006 15:04")
	},
	"percent": func(v int) string {
		return fmt.Sprintf("%d%%", v)
	},
}

// Templates parses every embedded page. Each file is addressable by its base
// name, e.g. "sessions.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
