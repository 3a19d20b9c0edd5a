// Package renderer turns the tracker data into markdown documents.
//
// Every view is a text/template assembly stored next to the code, with
// optional partials named after it ("dashboard.md" uses
// "dashboard_accounts.md"...). Views are built from pre-formatted strings so
// that templates hold no logic beyond ranges and conditions.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
)

//go:embed *.md
var templates embed.FS

// renderTemplate renders a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

// cell escapes a user provided text for a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

func percent(p float64) string { return fmt.Sprintf("%.0f%%", p) }

// rangeLabel names standard periods by their identifier ("2024-01",
// "2024-Q1") and other ranges by their bounds.
func rangeLabel(r date.Range) string {
	if _, ok := r.Period(); ok {
		return r.Identifier()
	}
	return fmt.Sprintf("%s to %s", r.From, r.To)
}

// signed formats an amount with an explicit sign.
func signed(cur tracker.Currency, a tracker.Amount) string {
	if a.IsPositive() {
		return "+" + cur.Format(a)
	}
	return cur.Format(a)
}
