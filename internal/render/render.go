// Package render turns dictionary entries and writing analyses into Markdown
// and HTML.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gdict/internal/domain"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts generated Markdown to HTML
type Renderer struct {
	markdown goldmark.Markdown
}

// Info is the front matter of a rendered document
type Info struct {
	Title    string                 `json:"title"`
	Kind     string                 `json:"kind"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Result contains the rendered HTML and its front matter
type Result struct {
	HTML     string `json:"html"`
	Markdown string `json:"markdown"`
	Info     Info   `json:"info"`
}

// NewRenderer creates a renderer with GitHub Flavored Markdown and front matter support
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			meta.Meta,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	return &Renderer{markdown: md}
}

// HTML converts a Markdown document with optional front matter
func (r *Renderer) HTML(source string) (*Result, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext()

	if err := r.markdown.Convert([]byte(source), &buf, parser.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	metaData := meta.Get(ctx)
	if metaData == nil {
		metaData = make(map[string]interface{})
	}

	return &Result{
		HTML:     buf.String(),
		Markdown: source,
		Info: Info{
			Title:    getStringFromMeta(metaData, "title", ""),
			Kind:     getStringFromMeta(metaData, "kind", ""),
			Metadata: metaData,
		},
	}, nil
}

// CardHTML renders the card of entry as HTML
func (r *Renderer) CardHTML(entry *domain.DictionaryEntry, settings domain.AppSettings) (*Result, error) {
	md, err := Card(entry, settings)
	if err != nil {
		return nil, err
	}
	return r.HTML(md)
}

// AnalysisHTML renders a writing analysis as HTML
func (r *Renderer) AnalysisHTML(analysis *domain.GrammarAnalysis) (*Result, error) {
	return r.HTML(Analysis(analysis))
}

func getStringFromMeta(meta map[string]interface{}, key, defaultValue string) string {
	if value, ok := meta[key]; ok {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return defaultValue
}

// frontMatter writes a YAML block; values are emitted as double-quoted scalars
func frontMatter(b *strings.Builder, pairs ...string) {
	b.WriteString("---\n")
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(b, "%s: %s\n", pairs[i], strconv.Quote(pairs[i+1]))
	}
	b.WriteString("---\n\n")
}

var markdownSpecial = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
	"<", `\<`, ">", `\>`, "|", `\|`, "~", `\~`, "#", `\#`,
)

// escape neutralises Markdown syntax in generated text
func escape(s string) string {
	return markdownSpecial.Replace(strings.TrimSpace(s))
}

// Status classifies a writing analysis for display
type Status string

const (
	StatusPerfect  Status = "perfect"
	StatusCritical Status = "critical"
	StatusMinor    Status = "minor"
)

// StatusClass derives the display class from a free-text status label
func StatusClass(label string) Status {
	s := strings.ToLower(label)
	switch {
	case strings.Contains(s, "mükemmel") || strings.Contains(s, "perfect"):
		return StatusPerfect
	case strings.Contains(s, "kritik") || strings.Contains(s, "critical"):
		return StatusCritical
	default:
		return StatusMinor
	}
}

// DefaultAccentRGB is used when the accent colour cannot be parsed
const DefaultAccentRGB = "99, 102, 241"

var hexRGB = regexp.MustCompile(`(?i)^#?([0-9a-f]{2})([0-9a-f]{2})([0-9a-f]{2})$`)

// HexToRGB converts "#RRGGBB" to "r, g, b"
func HexToRGB(hex string) string {
	m := hexRGB.FindStringSubmatch(hex)
	if m == nil {
		return DefaultAccentRGB
	}
	parts := make([]string, 3)
	for i := range parts {
		v, _ := strconv.ParseUint(m[i+1], 16, 8)
		parts[i] = strconv.FormatUint(v, 10)
	}
	return strings.Join(parts, ", ")
}
