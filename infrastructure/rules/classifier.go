package rules

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/jobforge/domain"
)

// Classifier implements domain.ChangeClassifier over an ordered rule list.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier for the given rules. The slice is not
// copied; callers must not mutate it afterwards.
func NewClassifier(ruleList []Rule) *Classifier {
	return &Classifier{rules: ruleList}
}

var _ domain.ChangeClassifier = (*Classifier)(nil)

// Classify applies the rules to a repository-relative path, first match wins.
// Returns nil when no rule matches.
func (it *Classifier) Classify(filePath string) *domain.JobSpecification {
	normalized := strings.ToLower(strings.ReplaceAll(filePath, "\\", "/"))

	for _, rule := range it.rules {
		if !matchesAny(rule.Match, normalized) {
			continue
		}
		if matchesAny(rule.Exclude, normalized) {
			continue
		}

		spec := buildSpec(rule, normalized)
		logger.Debugf("Classified %s -> %s (rule %q)", filePath, rule.Template, rule.Name)
		return spec
	}

	logger.Debugf("Ignored %s (no matching rule)", filePath)
	return nil
}

// matchesAny reports whether the path matches at least one doublestar pattern.
// Invalid patterns never match; they are caught earlier by rule loading tests.
func matchesAny(patterns []string, filePath string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, filePath); err == nil && ok {
			return true
		}
	}
	return false
}

// buildSpec derives the job specification for a matched path. Static rule
// params come first and derived params win on conflict, so the extraction
// stays deterministic regardless of rule authoring.
func buildSpec(rule Rule, filePath string) *domain.JobSpecification {
	name := path.Base(filePath)
	stem := strings.TrimSuffix(name, path.Ext(name))

	params := make(map[string]string, len(rule.Params)+5)
	for key, value := range rule.Params {
		params[key] = value
	}
	sub := subfolder(filePath)

	params["name"] = name
	params["stem"] = stem
	params["category"] = rule.Category
	params["source_path"] = filePath
	params["chain"] = chain(stem, sub)
	if sub != "" {
		params["subfolder"] = sub
	}

	return &domain.JobSpecification{
		JobName:     name,
		TemplateKey: rule.Template,
		Parameters:  params,
	}
}

// chain derives the application chain a file belongs to. Parameter and
// environment files encode it in their own name ("fm1_appli" belongs to fm1,
// "init_var_fm4" to fm4); everything else inherits it from the first
// subfolder segment, falling back to the stem for flat paths.
func chain(stem, sub string) string {
	if idx := strings.Index(stem, "_appli"); idx > 0 {
		return stem[:idx]
	}
	if rest := strings.TrimPrefix(stem, "init_var_"); rest != stem && rest != "" {
		return rest
	}
	if sub != "" {
		if idx := strings.Index(sub, "/"); idx > 0 {
			return sub[:idx]
		}
		return sub
	}
	return stem
}

// subfolder extracts the intermediate segments of a path, dropping the
// leading tree folder and the file name: "job/jfm1aa/jfm1aa10.bat" yields
// "jfm1aa", "script/fm_kpi.cmd" yields "".
func subfolder(filePath string) string {
	segments := strings.FieldsFunc(filePath, func(r rune) bool { return r == '/' })
	if len(segments) <= 2 {
		return ""
	}
	return strings.Join(segments[1:len(segments)-1], "/")
}
