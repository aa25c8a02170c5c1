package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack_LookupUnknown(t *testing.T) {
	s := mustStack(t)

	_, ok := s.Lookup("NoSuchResource")
	assert.False(t, ok)
}

func TestStack_EntriesIsACopy(t *testing.T) {
	s := mustStack(t)

	entries := s.Entries()
	require.NotEmpty(t, entries)
	entries[0].Name = "Mutated"

	fresh := s.Entries()
	assert.NotEqual(t, "Mutated", fresh[0].Name)
}

func TestStack_EntriesPreserveDeclarationOrder(t *testing.T) {
	s := mustStack(t)

	entries := s.Entries()
	require.Equal(t, s.Len(), len(entries))
	assert.Equal(t, SensorThing, entries[0].Name)
	assert.Equal(t, MonitoringDashboard, entries[len(entries)-1].Name)
}
