// Package workflow renders the per-service CI/CD workflow document.
//
// The template is a GitHub Actions workflow parsed with text/template using
// [[ and ]] as delimiters, so the workflow's own ${{ ... }} expressions pass
// through untouched. Two fields are available:
//
//	[[ .Service ]]      service identifier used in paths, names and tags
//	[[ .DisplayName ]]  human label of the deploy step, defaults to .Service
//
// Rendering inserts values once and never re-scans them: a service name that
// happens to look like template syntax is emitted verbatim.
package workflow

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/arthur-debert/pipegen/pkg/errors"
	"github.com/arthur-debert/pipegen/pkg/logging"
	"github.com/arthur-debert/pipegen/pkg/types"
)

// FileSuffix is appended to the service name to form the output file name
const FileSuffix = "-ci-cd.yml"

const (
	leftDelim  = "[["
	rightDelim = "]]"
)

//go:embed templates/ci-cd.yml.tmpl
var defaultTemplate string

// Data holds the named fields available to the template
type Data struct {
	Service     string
	DisplayName string
}

// Template is a parsed workflow template
type Template struct {
	name   string
	source string
	tmpl   *template.Template
}

// FileName returns the output file name for a service
func FileName(service string) string {
	return service + FileSuffix
}

// Default returns the built-in workflow template
func Default() *Template {
	t, err := Parse("ci-cd.yml", defaultTemplate)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse parses template text
func Parse(name, text string) (*Template, error) {
	tmpl, err := template.New(name).
		Delims(leftDelim, rightDelim).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateParse, "failed to parse template %s", name)
	}
	return &Template{name: name, source: text, tmpl: tmpl}, nil
}

// Load reads and parses a template file. An empty path yields the built-in template.
func Load(fsys types.FS, path string) (*Template, error) {
	if path == "" {
		return Default(), nil
	}

	content, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read template %s", path).
			WithDetail("path", path)
	}

	logger := logging.GetLogger("workflow")
	logger.Debug().Str("path", path).Msg("Loaded custom template")
	return Parse(path, string(content))
}

// Name returns the template name, the file path for loaded templates
func (t *Template) Name() string {
	return t.name
}

// Source returns the raw template text
func (t *Template) Source() string {
	return t.source
}

// Render renders the template for a service, using its name as display name too
func (t *Template) Render(service string) (string, error) {
	return t.RenderData(Data{Service: service})
}

// RenderData renders the template with explicit field values.
// The result always ends with exactly one newline.
func (t *Template) RenderData(data Data) (string, error) {
	if data.Service == "" {
		return "", errors.New(errors.ErrInvalidInput, "service name must not be empty")
	}
	if data.DisplayName == "" {
		data.DisplayName = data.Service
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRender, "failed to render %s for %s", t.name, data.Service).
			WithDetail("service", data.Service)
	}

	return strings.TrimRight(buf.String(), "\n") + "\n", nil
}
