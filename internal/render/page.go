package render

import (
	"bytes"
	"fmt"
	"html/template"

	"gdict/internal/domain"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en"{{if .Dark}} class="dark"{{end}}>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - gdict</title>
    <style>
        :root { --p-accent-rgb: {{.AccentRGB}}; font-size: {{.Density}}; }
        body { font-family: system-ui, sans-serif; background: #f8fafc; color: #0f172a; margin: 0; }
        .dark body { background: #0f172a; color: #f1f5f9; }
        .card { max-width: 800px; margin: 2rem auto; padding: 2rem; border-radius: 24px;
                background: rgba(255,255,255,0.7); box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .dark .card { background: rgba(15,23,42,0.6); }
        .card h1 { color: rgb(var(--p-accent-rgb)); margin-top: 0; }
        .card h2 { font-size: 0.75rem; text-transform: uppercase; letter-spacing: 0.1em; opacity: 0.6; }
        .card table { border-collapse: collapse; }
        .card td, .card th { padding: 0.25rem 0.75rem; border: 1px solid rgba(var(--p-accent-rgb),0.2); }
        .card blockquote { border-left: 4px solid rgb(var(--p-accent-rgb)); margin: 0; padding-left: 1rem; }
        .status-perfect { color: #047857; }
        .status-critical { color: #b91c1c; }
        .status-minor { color: #b45309; }
    </style>
</head>
<body>
    <article class="card{{if .StatusClass}} status-{{.StatusClass}}{{end}}">
        {{.Content}}
    </article>
</body>
</html>
`))

// Page wraps a rendered result in a standalone HTML document styled with settings
func Page(result *Result, settings domain.AppSettings) ([]byte, error) {
	data := struct {
		Title       string
		Dark        bool
		AccentRGB   template.CSS
		Density     template.CSS
		StatusClass string
		Content     template.HTML
	}{
		Title:     result.Info.Title,
		Dark:      settings.Theme == domain.ThemeDark,
		AccentRGB: template.CSS(HexToRGB(settings.AccentColor)),
		Density:   template.CSS(settings.Sanitize().UIDensity),
		Content:   template.HTML(result.HTML),
	}
	if result.Info.Kind == "analysis" {
		data.StatusClass = getStringFromMeta(result.Info.Metadata, "class", string(StatusMinor))
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	return buf.Bytes(), nil
}
