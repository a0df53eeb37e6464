// Package render turns a diagnosis into the fixed-format text sent back to
// the user, and optionally into HTML.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"sukuyo/domain/mansion"
	"sukuyo/domain/tenmon"
	"sukuyo/models"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Fallbacks for catalog fields that are missing, e.g. for 牛宿.
const (
	NoInformation   = "情報なし"
	DefaultVocation = "多方面で活躍できる才能があります"
	DefaultCategory = "一般"
)

// View is the data every template sees. All strings are already defaulted.
type View struct {
	Name       string
	Birthdate  string
	Primary    mansion.Mansion
	Karma      mansion.Mansion
	Origin     mansion.Mansion
	Longitude  float64
	PhaseLabel string
	Kanagi     string
	Kotodama   string
	Core       tenmon.Reading

	Personality string
	Fortune     string
	Vocation    string
	Category    string
	StarShape   string
}

// Renderer executes the embedded templates
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates
func New() (*Renderer, error) {
	templates, err := template.New("").Option("missingkey=error").ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

// NewView flattens a diagnosis into template data
func NewView(d *models.Diagnosis) View {
	v := View{
		Name:        d.Name,
		Birthdate:   d.Birthdate,
		Primary:     d.Primary,
		Karma:       d.Karma,
		Origin:      d.Origin,
		Longitude:   d.Triple.Longitude,
		PhaseLabel:  d.Triple.Phase.Label(),
		Kanagi:      d.Kanagi,
		Kotodama:    d.Kotodama,
		Core:        d.Core,
		Personality: NoInformation,
		Fortune:     NoInformation,
		Vocation:    DefaultVocation,
		Category:    DefaultCategory,
		StarShape:   NoInformation,
	}
	if det := d.Detail; det != nil {
		v.Personality = firstNonEmpty(det.Personality, NoInformation)
		v.Fortune = firstNonEmpty(det.Fortune, NoInformation)
		v.Vocation = firstNonEmpty(det.Vocation, det.Traits, DefaultVocation)
		v.Category = firstNonEmpty(det.Category, DefaultCategory)
		v.StarShape = firstNonEmpty(det.StarShape, NoInformation)
	}
	return v
}

// Diagnosis renders the free diagnosis text
func (r *Renderer) Diagnosis(d *models.Diagnosis) (string, error) {
	return r.execute("free_diagnosis.tmpl", NewView(d))
}

// Preview renders the premium preview text
func (r *Renderer) Preview(d *models.Diagnosis) (string, error) {
	return r.execute("premium_preview.tmpl", NewView(d))
}

func (r *Renderer) execute(name string, data View) (string, error) {
	// render to a buffer so a failing template never produces partial output
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

// HTML converts rendered text to an HTML fragment. Every line break is kept
// and raw HTML in the input (e.g. from the user's name) is dropped.
func HTML(text string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.HardLineBreak)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.SkipHTML,
	})
	return string(markdown.ToHTML([]byte(text), p, renderer))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
