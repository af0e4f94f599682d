// Package catalog holds the static registry of known job names used by
// manual-mode generation. The registry ships as an embedded YAML asset,
// loaded once at process start and read-only afterwards.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/jobforge/domain"
)

//go:embed catalog.yaml
var bundledCatalog []byte

// Catalog implements domain.JobCatalog as an immutable name index.
type Catalog struct {
	entries map[string]domain.CatalogEntry
}

type catalogFile struct {
	Jobs []catalogJob `yaml:"jobs"`
}

type catalogJob struct {
	Name     string            `yaml:"name"`
	Template string            `yaml:"template"`
	Params   map[string]string `yaml:"params"`
}

// Load parses the bundled registry.
func Load() (*Catalog, error) {
	return parse(bundledCatalog)
}

func parse(src []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(src, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(file.Jobs) == 0 {
		return nil, fmt.Errorf("catalog is empty: at least one job must be registered")
	}

	entries := make(map[string]domain.CatalogEntry, len(file.Jobs))
	for i, job := range file.Jobs {
		if job.Name == "" {
			return nil, fmt.Errorf("jobs[%d].name is required", i)
		}
		if job.Template == "" {
			return nil, fmt.Errorf("jobs[%d].template is required (job %q)", i, job.Name)
		}

		name := strings.ToLower(job.Name)
		if _, dup := entries[name]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %q", name)
		}
		entries[name] = domain.CatalogEntry{
			Name:        name,
			TemplateKey: job.Template,
			Parameters:  job.Params,
		}
	}

	return &Catalog{entries: entries}, nil
}

var _ domain.JobCatalog = (*Catalog)(nil)

// Lookup resolves a job name into a specification. Names are matched
// case-insensitively, the way operators type them.
func (it *Catalog) Lookup(jobName string) (*domain.JobSpecification, error) {
	entry, ok := it.entries[strings.ToLower(jobName)]
	if !ok {
		return nil, &domain.UnknownJobError{JobName: jobName}
	}

	params := make(map[string]string, len(entry.Parameters)+2)
	for key, value := range entry.Parameters {
		params[key] = value
	}
	params["name"] = entry.Name
	params["stem"] = strings.TrimSuffix(entry.Name, extension(entry.Name))

	return &domain.JobSpecification{
		JobName:     entry.Name,
		TemplateKey: entry.TemplateKey,
		Parameters:  params,
	}, nil
}

// Entries returns all registered entries sorted by name.
func (it *Catalog) Entries() []domain.CatalogEntry {
	result := make([]domain.CatalogEntry, 0, len(it.entries))
	for _, entry := range it.entries {
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func extension(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx:]
	}
	return ""
}
