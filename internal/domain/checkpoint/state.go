// Package checkpoint holds the persisted progress of a provisioning run:
// the ordinal of the last completed step and the saved configuration values.
package checkpoint

import (
	"maps"
	"slices"
)

// VarProjectID is the saved variable holding the resolved project identifier.
const VarProjectID = "project_id"

// State is the durable record of progress.
type State struct {
	// DoneStep is the ordinal of the highest completed step; 0 means nothing done.
	DoneStep int
	// Variables holds saved configuration values by name.
	Variables map[string]string
}

// NewState returns the zero state.
func NewState() *State {
	return &State{Variables: make(map[string]string)}
}

// Reset clears progress and every saved variable.
func (s *State) Reset() {
	s.DoneStep = 0
	s.Variables = make(map[string]string)
}

// Complete records ordinal as the last completed step.
// The checkpoint never moves backwards.
func (s *State) Complete(ordinal int) {
	if ordinal > s.DoneStep {
		s.DoneStep = ordinal
	}
}

// IsDone reports whether the step with the given ordinal already completed.
func (s *State) IsDone(ordinal int) bool {
	return s.DoneStep >= ordinal
}

// Get returns a saved variable.
func (s *State) Get(name string) (string, bool) {
	v, ok := s.Variables[name]
	return v, ok
}

// Set stores a saved variable.
func (s *State) Set(name, value string) {
	if s.Variables == nil {
		s.Variables = make(map[string]string)
	}
	s.Variables[name] = value
}

// Names returns the saved variable names in sorted order.
func (s *State) Names() []string {
	return slices.Sorted(maps.Keys(s.Variables))
}
