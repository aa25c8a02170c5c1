// Package differ provides semantic comparison of CloudFormation templates,
// used to preview what a deploy would change against a previously rendered
// template.
package differ

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"

	ruuvitag "github.com/siipimutteri/ruuvitag-aws-iot-monitoring"
)

// Result contains the difference between two templates.
type Result struct {
	Diff    ruuvitag.TemplateDiff
	Summary ruuvitag.DiffSummary
}

// Changed reports whether the templates differ at all.
func (r *Result) Changed() bool {
	return r.Summary.Total > 0
}

// Compare compares two CloudFormation templates, old against new.
func Compare(before, after *ruuvitag.Template) *Result {
	result := &Result{}

	for name, def := range after.Resources {
		if _, exists := before.Resources[name]; !exists {
			result.Diff.Added = append(result.Diff.Added, ruuvitag.DiffEntry{
				Resource: name,
				Type:     def.Type,
			})
		}
	}

	for name, def := range before.Resources {
		if _, exists := after.Resources[name]; !exists {
			result.Diff.Removed = append(result.Diff.Removed, ruuvitag.DiffEntry{
				Resource: name,
				Type:     def.Type,
			})
		}
	}

	for name, beforeDef := range before.Resources {
		afterDef, exists := after.Resources[name]
		if !exists {
			continue
		}
		changes := compareResources(beforeDef, afterDef)
		if len(changes) > 0 {
			result.Diff.Modified = append(result.Diff.Modified, ruuvitag.DiffEntry{
				Resource: name,
				Type:     beforeDef.Type,
				Changes:  changes,
			})
		}
	}

	sortEntries(result.Diff.Added)
	sortEntries(result.Diff.Removed)
	sortEntries(result.Diff.Modified)

	result.Summary = ruuvitag.DiffSummary{
		Added:    len(result.Diff.Added),
		Removed:  len(result.Diff.Removed),
		Modified: len(result.Diff.Modified),
	}
	result.Summary.Total = result.Summary.Added + result.Summary.Removed + result.Summary.Modified

	return result
}

// LoadTemplate loads a CloudFormation template from a JSON or YAML file. The
// result is normalized, so it compares cleanly regardless of the source
// format (yaml.v3 decodes whole numbers as int, encoding/json as float64).
func LoadTemplate(path string) (*ruuvitag.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var template ruuvitag.Template
	if err := json.Unmarshal(data, &template); err != nil {
		if err := yaml.Unmarshal(data, &template); err != nil {
			return nil, fmt.Errorf("parsing %s as JSON or YAML: %w", path, err)
		}
	}

	return Normalize(&template)
}

// Normalize round-trips a template through JSON so that in-memory values
// compare cleanly against templates parsed from disk (notably, all numbers
// become float64).
func Normalize(t *ruuvitag.Template) (*ruuvitag.Template, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var normalized ruuvitag.Template
	if err := json.Unmarshal(data, &normalized); err != nil {
		return nil, err
	}
	return &normalized, nil
}

func compareResources(before, after ruuvitag.ResourceDef) []string {
	var changes []string

	if before.Type != after.Type {
		changes = append(changes, fmt.Sprintf("Type changed: %s to %s", before.Type, after.Type))
	}

	changes = append(changes, compareProperties("", before.Properties, after.Properties)...)

	if !reflect.DeepEqual(before.DependsOn, after.DependsOn) {
		changes = append(changes, "DependsOn changed")
	}

	return changes
}

// compareProperties recursively reports added, removed, and modified keys.
func compareProperties(prefix string, before, after map[string]any) []string {
	var changes []string

	for key, afterVal := range after {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		beforeVal, exists := before[key]
		if !exists {
			changes = append(changes, fmt.Sprintf("%s added", path))
			continue
		}

		// Descend into nested maps so the report names the leaf that moved.
		beforeMap, beforeOK := beforeVal.(map[string]any)
		afterMap, afterOK := afterVal.(map[string]any)
		if beforeOK && afterOK {
			changes = append(changes, compareProperties(path, beforeMap, afterMap)...)
			continue
		}

		if !reflect.DeepEqual(beforeVal, afterVal) {
			changes = append(changes, fmt.Sprintf("%s modified", path))
		}
	}

	for key := range before {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if _, exists := after[key]; !exists {
			changes = append(changes, fmt.Sprintf("%s removed", path))
		}
	}

	sort.Strings(changes)
	return changes
}

func sortEntries(entries []ruuvitag.DiffEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Resource < entries[j].Resource
	})
}
