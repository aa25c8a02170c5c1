// Package stack declares the RuuviTag monitoring stack: a fixed graph of
// managed-resource declarations produced as a pure function of four string
// inputs. The stack performs no runtime logic of its own; deployment means
// handing the synthesized graph to CloudFormation for reconciliation.
package stack

import (
	"fmt"

	ruuvitag "github.com/siipimutteri/ruuvitag-aws-iot-monitoring"
)

// Logical names of the declared resources.
const (
	SensorThing                 = "SensorThing"
	DeviceCredentials           = "DeviceCredentials"
	DeviceCredentialsSecret     = "DeviceCredentialsSecret"
	ThingCredentialsAttachment  = "ThingCredentialsAttachment"
	DevicePolicy                = "DevicePolicy"
	PolicyCredentialsAttachment = "PolicyCredentialsAttachment"
	RuleErrorLogs               = "RuleErrorLogs"
	RuleExecutionRole           = "RuleExecutionRole"
	SensorDataRule              = "SensorDataRule"
	MonitoringDashboard         = "MonitoringDashboard"
)

// Entry is one declared resource with its explicit ordering edges.
type Entry struct {
	// Name is the logical name, the CloudFormation logical ID.
	Name string

	// Resource is the declaration.
	Resource ruuvitag.Resource

	// DependsOn lists resources that must exist first. Edges are explicit
	// even where a Ref or GetAtt would let CloudFormation infer them, so
	// the graph carries its own ordering guarantees.
	DependsOn []string
}

// Stack is the declared resource graph, in declaration order.
type Stack struct {
	// Description describes the stack in the synthesized template.
	Description string

	entries []Entry
	index   map[string]int
}

func (s *Stack) add(name string, r ruuvitag.Resource, dependsOn ...string) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, dup := s.index[name]; dup {
		panic(fmt.Sprintf("stack: duplicate resource %q", name))
	}
	s.index[name] = len(s.entries)
	s.entries = append(s.entries, Entry{Name: name, Resource: r, DependsOn: dependsOn})
}

// Entries returns the declared resources in declaration order.
func (s *Stack) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Lookup returns the entry with the given logical name.
func (s *Stack) Lookup(name string) (Entry, bool) {
	i, ok := s.index[name]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Len returns the number of declared resources.
func (s *Stack) Len() int {
	return len(s.entries)
}
