// Package templates renders the embedded notification email templates.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	domainerror "github.com/commitly/backend/internal/domain/error"
)

//go:embed *.html *.txt
var templateFS embed.FS

// Renderer holds one HTML and one text template per notification kind, named
// <kind>.html and <kind>.txt.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}

	text, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}

	return &Renderer{html: html, text: text}, nil
}

// Has reports whether both bodies exist for kind.
func (r *Renderer) Has(kind string) bool {
	return r.html.Lookup(kind+".html") != nil && r.text.Lookup(kind+".txt") != nil
}

// Render executes the templates for kind. A kind without templates yields a
// MAIL-030001 error, which the worker treats as permanent.
func (r *Renderer) Render(kind string, data any) (string, string, error) {
	if !r.Has(kind) {
		return "", "", domainerror.NewEmailError(domainerror.ErrCodeUnknownTemplate, kind, domainerror.ErrUnknownEmailTemplate)
	}

	var html, text bytes.Buffer
	if err := r.html.ExecuteTemplate(&html, kind+".html", data); err != nil {
		return "", "", fmt.Errorf("render %s.html: %w", kind, err)
	}
	if err := r.text.ExecuteTemplate(&text, kind+".txt", data); err != nil {
		return "", "", fmt.Errorf("render %s.txt: %w", kind, err)
	}

	return html.String(), text.String(), nil
}
