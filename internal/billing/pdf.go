package billing

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/invoice.html
var templateFS embed.FS

// Renderer converts HTML to PDF.
type Renderer interface {
	RenderHTML(ctx context.Context, html []byte) ([]byte, error)
}

// PDFExporter renders invoices through a Renderer.
type PDFExporter struct {
	renderer  Renderer
	templates *template.Template
}

// NewPDFExporter parses the invoice template.
func NewPDFExporter(renderer Renderer) (*PDFExporter, error) {
	funcs := template.FuncMap{
		"currency": FormatCurrency,
		"stamp": func(t time.Time) string {
			return t.Format("02/01/2006 15:04")
		},
	}
	tmpl, err := template.New("invoice.html").Funcs(funcs).ParseFS(templateFS, "templates/invoice.html")
	if err != nil {
		return nil, fmt.Errorf("billing: parse template: %w", err)
	}
	return &PDFExporter{renderer: renderer, templates: tmpl}, nil
}

// HTML renders the invoice page.
func (e *PDFExporter) HTML(inv Invoice) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, "invoice.html", inv); err != nil {
		return nil, fmt.Errorf("billing: render html: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF renders the invoice as a PDF document.
func (e *PDFExporter) PDF(ctx context.Context, inv Invoice) ([]byte, error) {
	html, err := e.HTML(inv)
	if err != nil {
		return nil, err
	}
	return e.renderer.RenderHTML(ctx, html)
}
