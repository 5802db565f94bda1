// Package participant implements the domain layer for the gift-exchange
// roster: participant identities and their exclusion constraints.
//
// Names are case-sensitive identities. A participant's exclusion set lists
// the names that participant must never be assigned to give to. The Registry
// normalizes exclusion sets during construction: self-references and names
// not registered in the roster are dropped, so downstream consumers can
// assume every stored exclusion references a real participant.
package participant

import (
	"fmt"
	"strings"
)

// Entry is the raw participant record supplied by a loader, before
// validation and normalization.
type Entry struct {
	Name       string   `json:"name"`
	Exclusions []string `json:"exclusions"`
}

// DuplicateNameError indicates two entries share the same name.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate participant name: %q", e.Name)
}

// EmptyNameError indicates an entry with a blank or whitespace-only name.
type EmptyNameError struct {
	Index int // position of the offending entry
}

func (e *EmptyNameError) Error() string {
	return fmt.Sprintf("participant name at entry %d is empty", e.Index)
}

// Participant is a single member of the roster with their exclusion set.
// Immutable after construction.
type Participant struct {
	name       string
	exclusions map[string]struct{}
}

// Name returns the participant's identity.
func (p Participant) Name() string {
	return p.name
}

// Excludes reports whether the participant must not give to name.
func (p Participant) Excludes(name string) bool {
	_, ok := p.exclusions[name]
	return ok
}

// Exclusions returns the normalized exclusion names. The order is not
// significant; a fresh slice is returned on every call.
func (p Participant) Exclusions() []string {
	out := make([]string, 0, len(p.exclusions))
	for name := range p.exclusions {
		out = append(out, name)
	}
	return out
}

func isBlank(name string) bool {
	return strings.TrimSpace(name) == ""
}
