//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/jobforge/domain"
)

// JobSpecificationBuilder helps create test job specifications with a fluent interface.
type JobSpecificationBuilder struct {
	*testkit.BaseBuilder
	jobName     string
	templateKey string
	parameters  map[string]string
}

// NewJobSpecificationBuilder creates a new builder with sensible defaults.
func NewJobSpecificationBuilder() *JobSpecificationBuilder {
	return &JobSpecificationBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		jobName:     "jfm1aa10.bat",
		templateKey: "batch-job",
		parameters: map[string]string{
			"name":     "jfm1aa10.bat",
			"stem":     "jfm1aa10",
			"category": "job",
		},
	}
}

// WithJobName sets the job name and its derived name/stem parameters.
func (b *JobSpecificationBuilder) WithJobName(name string) *JobSpecificationBuilder {
	b.jobName = name
	b.parameters["name"] = name
	stem := name
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			stem = name[:i]
			break
		}
	}
	b.parameters["stem"] = stem
	return b
}

// WithTemplateKey sets the template key.
func (b *JobSpecificationBuilder) WithTemplateKey(key string) *JobSpecificationBuilder {
	b.templateKey = key
	return b
}

// WithParameter sets one template parameter.
func (b *JobSpecificationBuilder) WithParameter(key, value string) *JobSpecificationBuilder {
	b.parameters[key] = value
	return b
}

// Build creates the specification (satisfies testkit.Builder interface).
func (b *JobSpecificationBuilder) Build() interface{} {
	return b.BuildJobSpecification()
}

// BuildJobSpecification creates the specification with a concrete return type.
func (b *JobSpecificationBuilder) BuildJobSpecification() *domain.JobSpecification {
	params := make(map[string]string, len(b.parameters))
	for key, value := range b.parameters {
		params[key] = value
	}
	return &domain.JobSpecification{
		JobName:     b.jobName,
		TemplateKey: b.templateKey,
		Parameters:  params,
	}
}
