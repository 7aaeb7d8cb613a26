// ABOUTME: HTML exporter for the alias collection using Go html/template
// ABOUTME: Renders a styled standalone page grouped by alias group

package porter

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"
	"time"
)

// ExportHTML renders every alias as a styled HTML document to w.
// Aliases are listed in store order with their command, description,
// tags, and group.
func (p *Porter) ExportHTML(w io.Writer) error {
	data := htmlData{
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
		Aliases:     p.store.ListAll(),
	}
	return htmlTmpl.Execute(w, data)
}

// ExportHTMLFile writes the HTML export to path.
func (p *Porter) ExportHTMLFile(path string) (string, error) {
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := p.ExportHTML(f); err != nil {
		return "", fmt.Errorf("rendering html export: %w", err)
	}
	return fmt.Sprintf("Exported %d aliases to %s", p.store.Len(), path), nil
}

type htmlData struct {
	GeneratedAt string
	Aliases     any
}

// groupLabel renders a group pointer for display.
func groupLabel(group *string) string {
	if group == nil || *group == "" {
		return "-"
	}
	return *group
}

// tagList joins tags for display.
func tagList(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}

var htmlFuncs = template.FuncMap{
	"groupLabel": groupLabel,
	"tagList":    tagList,
}

var htmlTmpl = template.Must(template.New("aliases").Funcs(htmlFuncs).Parse(htmlTemplate))

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>alix aliases</title>
<style>
  body { font-family: -apple-system, 'Segoe UI', sans-serif; background: #1e1e2e; color: #cdd6f4; margin: 2em auto; max-width: 60em; padding: 0 1em; }
  h1 { color: #89b4fa; font-size: 1.4em; }
  .meta { color: #6c7086; font-size: 0.85em; margin-bottom: 1.5em; }
  table { border-collapse: collapse; width: 100%; }
  th { text-align: left; color: #89b4fa; border-bottom: 1px solid #45475a; padding: 0.4em 0.8em; }
  td { padding: 0.4em 0.8em; border-bottom: 1px solid #313244; vertical-align: top; }
  code { background: #313244; padding: 0.1em 0.4em; border-radius: 3px; font-size: 0.9em; }
  .desc { color: #a6adc8; }
  .tags { color: #f9e2af; font-size: 0.85em; }
  .group { color: #94e2d5; font-size: 0.85em; }
</style>
</head>
<body>
<h1>alix aliases</h1>
<div class="meta">generated {{.GeneratedAt}}</div>
<table>
<tr><th>Name</th><th>Command</th><th>Description</th><th>Tags</th><th>Group</th></tr>
{{range .Aliases}}<tr>
<td><code>{{.Name}}</code></td>
<td><code>{{.Command}}</code></td>
<td class="desc">{{.Description}}</td>
<td class="tags">{{tagList .Tags}}</td>
<td class="group">{{groupLabel .Group}}</td>
</tr>
{{end}}</table>
</body>
</html>
`
