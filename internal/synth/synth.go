// Package synth renders a declared stack as a CloudFormation template.
//
// Dependency edges come from two places: the explicit DependsOn edges
// declared on each stack entry, and the implicit edges implied by Ref,
// Fn::GetAtt and Fn::Sub references inside serialized properties. Both
// kinds participate in ordering and cycle detection; only the explicit
// ones are emitted as DependsOn, since CloudFormation derives the rest
// from the intrinsics itself.
package synth

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	ruuvitag "github.com/siipimutteri/ruuvitag-aws-iot-monitoring"
	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/internal/serialize"
	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/stack"
)

const templateFormatVersion = "2010-09-09"

// Builder constructs CloudFormation templates from a declared stack.
type Builder struct {
	stack *stack.Stack

	// Populated lazily by serializeAll.
	props map[string]map[string]any
	deps  map[string][]string
}

// NewBuilder creates a template builder for the given stack.
func NewBuilder(st *stack.Stack) *Builder {
	return &Builder{stack: st}
}

// Build serializes every resource, checks the dependency graph, and
// returns the assembled template.
func (b *Builder) Build() (*ruuvitag.Template, error) {
	if err := b.serializeAll(); err != nil {
		return nil, err
	}
	if _, err := b.topologicalSort(); err != nil {
		return nil, err
	}

	template := &ruuvitag.Template{
		AWSTemplateFormatVersion: templateFormatVersion,
		Description:              b.stack.Description,
		Resources:                make(map[string]ruuvitag.ResourceDef),
	}

	for _, entry := range b.stack.Entries() {
		template.Resources[entry.Name] = ruuvitag.ResourceDef{
			Type:       entry.Resource.ResourceType(),
			Properties: b.props[entry.Name],
			DependsOn:  entry.DependsOn,
		}
	}

	return template, nil
}

// Order returns the logical names in dependency order: every resource
// appears after everything it depends on, explicitly or via intrinsics.
func (b *Builder) Order() ([]string, error) {
	if err := b.serializeAll(); err != nil {
		return nil, err
	}
	return b.topologicalSort()
}

// Dependencies returns the full edge set per resource, explicit DependsOn
// merged with references found in serialized properties, sorted and
// deduplicated. The graph generator renders these edges.
func (b *Builder) Dependencies() (map[string][]string, error) {
	if err := b.serializeAll(); err != nil {
		return nil, err
	}
	result := make(map[string][]string, len(b.deps))
	for name, deps := range b.deps {
		result[name] = append([]string(nil), deps...)
	}
	return result, nil
}

func (b *Builder) serializeAll() error {
	if b.props != nil {
		return nil
	}

	props := make(map[string]map[string]any)
	deps := make(map[string][]string)

	known := make(map[string]bool)
	for _, entry := range b.stack.Entries() {
		known[entry.Name] = true
	}

	for _, entry := range b.stack.Entries() {
		p, err := serialize.Properties(entry.Resource)
		if err != nil {
			return fmt.Errorf("serializing %s: %w", entry.Name, err)
		}
		props[entry.Name] = p

		edges := make(map[string]bool)
		for _, dep := range entry.DependsOn {
			if !known[dep] {
				return fmt.Errorf("%s depends on undeclared resource %s", entry.Name, dep)
			}
			edges[dep] = true
		}
		collectRefs(p, known, edges)
		delete(edges, entry.Name)

		var sorted []string
		for dep := range edges {
			sorted = append(sorted, dep)
		}
		sort.Strings(sorted)
		deps[entry.Name] = sorted
	}

	b.props = props
	b.deps = deps
	return nil
}

// subRefPattern matches ${Name} and ${Name.Attribute} substitutions that
// are not pseudo parameters.
var subRefPattern = regexp.MustCompile(`\$\{([A-Za-z0-9]+)(?:\.[A-Za-z0-9.]+)?\}`)

// collectRefs walks serialized properties and records every reference to
// a declared resource into edges.
func collectRefs(value any, known map[string]bool, edges map[string]bool) {
	switch v := value.(type) {
	case map[string]any:
		if ref, ok := v["Ref"].(string); ok && known[ref] {
			edges[ref] = true
		}
		if att, ok := v["Fn::GetAtt"]; ok {
			switch att := att.(type) {
			case []any:
				if len(att) > 0 {
					if name, ok := att[0].(string); ok && known[name] {
						edges[name] = true
					}
				}
			case string:
				name, _, _ := strings.Cut(att, ".")
				if known[name] {
					edges[name] = true
				}
			}
		}
		if sub, ok := v["Fn::Sub"]; ok {
			collectSubRefs(sub, known, edges)
		}
		for _, val := range v {
			collectRefs(val, known, edges)
		}
	case []any:
		for _, elem := range v {
			collectRefs(elem, known, edges)
		}
	}
}

func collectSubRefs(sub any, known map[string]bool, edges map[string]bool) {
	var template string
	switch sub := sub.(type) {
	case string:
		template = sub
	case []any:
		if len(sub) > 0 {
			template, _ = sub[0].(string)
		}
	}
	for _, match := range subRefPattern.FindAllStringSubmatch(template, -1) {
		if known[match[1]] {
			edges[match[1]] = true
		}
	}
}

// topologicalSort returns resources in dependency order using Kahn's
// algorithm, with queues kept sorted for deterministic output.
func (b *Builder) topologicalSort() ([]string, error) {
	graph := make(map[string][]string)
	inDegree := make(map[string]int)

	for name := range b.deps {
		graph[name] = nil
		inDegree[name] = 0
	}
	for name, deps := range b.deps {
		for _, dep := range deps {
			graph[dep] = append(graph[dep], name)
			inDegree[name]++
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	var result []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, neighbor := range graph[node] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
				sort.Strings(queue)
			}
		}
	}

	if len(result) != len(b.deps) {
		return nil, b.detectCycle()
	}

	return result, nil
}

// detectCycle finds a cycle in the dependency graph and reports its path.
func (b *Builder) detectCycle() error {
	visited := make(map[string]bool)
	path := make(map[string]bool)

	var cycle []string
	var findCycle func(node string) bool
	findCycle = func(node string) bool {
		visited[node] = true
		path[node] = true

		for _, dep := range b.deps[node] {
			if !visited[dep] {
				if findCycle(dep) {
					cycle = append([]string{node}, cycle...)
					return true
				}
			} else if path[dep] {
				cycle = append([]string{dep, node}, cycle...)
				return true
			}
		}

		path[node] = false
		return false
	}

	var names []string
	for name := range b.deps {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !visited[name] {
			if findCycle(name) {
				break
			}
		}
	}

	if len(cycle) > 0 {
		return fmt.Errorf("circular dependency detected: %s", strings.Join(cycle, " -> "))
	}
	return errors.New("circular dependency detected")
}

// ToJSON serializes the template to JSON.
func ToJSON(t *ruuvitag.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML.
func ToYAML(t *ruuvitag.Template) ([]byte, error) {
	return yaml.Marshal(t)
}
