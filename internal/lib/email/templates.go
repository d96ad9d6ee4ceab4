package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/pkg/errors"
)

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateWelcome corresponds to templates/welcome.html
	TemplateWelcome Template = "welcome"

	// TemplateMentorAssigned corresponds to templates/mentor_assigned.html
	TemplateMentorAssigned Template = "mentor_assigned"
)

//go:embed templates/*.html
var templateFS embed.FS

// templates are parsed once at package init; a broken template fails the
// binary at start-up instead of on the first send.
var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Render executes the named template with data and returns the HTML body.
func Render(name Template, data map[string]string) (string, error) {
	tmpl := templates.Lookup(fmt.Sprintf("%s.html", name))
	if tmpl == nil {
		return "", errors.Errorf("unknown email template %s", name)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}
	return body.String(), nil
}
