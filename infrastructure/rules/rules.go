// Package rules implements path classification as an ordered list of
// data-driven rules loaded from an embedded HCL asset. Rules are evaluated
// first-match-wins; a path matching no rule is ignored.
package rules

import (
	_ "embed"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

//go:embed rules.hcl
var bundledRules []byte

// Rule is one classification predicate: a set of glob patterns mapped to a
// template key and the destination category, plus optional static parameters.
type Rule struct {
	Name     string
	Match    []string
	Exclude  []string
	Template string
	Category string
	Params   map[string]string
}

type rulesFile struct {
	Rules []ruleBlock `hcl:"rule,block"`
}

type ruleBlock struct {
	Name     string         `hcl:"name,label"`
	Match    []string       `hcl:"match"`
	Exclude  []string       `hcl:"exclude,optional"`
	Template string         `hcl:"template"`
	Category string         `hcl:"category"`
	Params   hcl.Expression `hcl:"params,optional"`
}

// Load parses the bundled rule set. Called once at start-up; the result is
// treated as immutable afterwards.
func Load() ([]Rule, error) {
	return parse(bundledRules, "rules.hcl")
}

// parse decodes an HCL rule file into the ordered rule list.
func parse(src []byte, filename string) ([]Rule, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}

	var decoded rulesFile
	if decodeDiags := gohcl.DecodeBody(file.Body, nil, &decoded); decodeDiags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, decodeDiags)
	}

	result := make([]Rule, 0, len(decoded.Rules))
	for _, block := range decoded.Rules {
		params, err := decodeParams(block)
		if err != nil {
			return nil, err
		}

		if len(block.Match) == 0 {
			return nil, fmt.Errorf("rule %q: at least one match pattern is required", block.Name)
		}
		if block.Template == "" || block.Category == "" {
			return nil, fmt.Errorf("rule %q: template and category are required", block.Name)
		}

		result = append(result, Rule{
			Name:     block.Name,
			Match:    block.Match,
			Exclude:  block.Exclude,
			Template: block.Template,
			Category: block.Category,
			Params:   params,
		})
	}

	return result, nil
}

// decodeParams evaluates the optional params attribute into a string map.
func decodeParams(block ruleBlock) (map[string]string, error) {
	if block.Params == nil {
		return nil, nil
	}

	value, diags := block.Params.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("rule %q: invalid params: %w", block.Name, diags)
	}
	if value.IsNull() {
		return nil, nil
	}
	if !value.Type().IsObjectType() && !value.Type().IsMapType() {
		return nil, fmt.Errorf("rule %q: params must be a map of strings", block.Name)
	}

	params := make(map[string]string)
	for key, val := range value.AsValueMap() {
		if val.Type() != cty.String {
			return nil, fmt.Errorf("rule %q: param %q must be a string", block.Name, key)
		}
		params[key] = val.AsString()
	}
	return params, nil
}
