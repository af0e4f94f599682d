// Package render turns job specifications into artifacts using embedded
// template assets. Rendering does no I/O and is deterministic: identical
// specifications always produce identical bytes.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"text/template"

	"github.com/rios0rios0/jobforge/domain"
)

//go:embed templates/*.tmpl
var templateAssets embed.FS

// requiredParams lists, per template key, the parameters a specification
// must carry. A missing entry is a fatal configuration error, not a skip.
var requiredParams = map[string][]string{
	"batch-job":    {"name", "stem", "category"},
	"shell-script": {"name", "stem", "category"},
	"param-file":   {"name", "stem", "category", "chain"},
}

// optionalParams are defaulted to the empty string before rendering so
// templates can reference them without guards.
var optionalParams = []string{"label", "chain", "subfolder", "skeleton"}

// Renderer implements domain.TemplateRenderer over the bundled assets.
type Renderer struct {
	templates *template.Template
}

// New parses the bundled template assets once.
func New() (*Renderer, error) {
	parsed, err := template.New("jobforge").
		Option("missingkey=error").
		ParseFS(templateAssets, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse bundled templates: %w", err)
	}
	return &Renderer{templates: parsed}, nil
}

var _ domain.TemplateRenderer = (*Renderer)(nil)

// Render produces the artifact for one specification. The destination path
// is derived from the routing parameters: <category>/[subfolder/]<name>.
func (it *Renderer) Render(spec *domain.JobSpecification) (*domain.GeneratedArtifact, error) {
	required, known := requiredParams[spec.TemplateKey]
	if !known {
		return nil, &domain.TemplateError{
			TemplateKey: spec.TemplateKey,
			Reason:      "no such template",
		}
	}

	for _, key := range required {
		if spec.Parameters[key] == "" {
			return nil, &domain.TemplateError{
				TemplateKey: spec.TemplateKey,
				Reason:      fmt.Sprintf("required parameter %q is missing", key),
			}
		}
	}

	data := make(map[string]string, len(spec.Parameters)+len(optionalParams))
	for _, key := range optionalParams {
		data[key] = ""
	}
	for key, value := range spec.Parameters {
		data[key] = value
	}

	var content bytes.Buffer
	name := spec.TemplateKey + ".tmpl"
	if err := it.templates.ExecuteTemplate(&content, name, data); err != nil {
		return nil, &domain.TemplateError{
			TemplateKey: spec.TemplateKey,
			Reason:      fmt.Sprintf("execution failed: %v", err),
		}
	}

	return &domain.GeneratedArtifact{
		DestinationPath: destinationPath(data),
		Content:         content.Bytes(),
	}, nil
}

func destinationPath(data map[string]string) string {
	if data["subfolder"] != "" {
		return path.Join(data["category"], data["subfolder"], data["name"])
	}
	return path.Join(data["category"], data["name"])
}
