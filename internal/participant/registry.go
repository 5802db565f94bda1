package participant

// Registry holds the validated roster in load order. Order is significant:
// it fixes presentation order and pairs positionally with shuffled receiver
// candidates during solving.
type Registry struct {
	participants []Participant
	index        map[string]int
}

// NewRegistry validates and normalizes raw entries into a Registry.
//
// Validation: every name must be non-blank and unique (case-sensitive).
// Normalization: exclusion names that do not match a registered participant
// are dropped, as are self-references. The loader is expected to supply
// clean data already, but the registry does not trust it.
func NewRegistry(entries []Entry) (*Registry, error) {
	index := make(map[string]int, len(entries))
	for i, entry := range entries {
		if isBlank(entry.Name) {
			return nil, &EmptyNameError{Index: i}
		}
		if _, exists := index[entry.Name]; exists {
			return nil, &DuplicateNameError{Name: entry.Name}
		}
		index[entry.Name] = i
	}

	participants := make([]Participant, 0, len(entries))
	for _, entry := range entries {
		exclusions := make(map[string]struct{}, len(entry.Exclusions))
		for _, name := range entry.Exclusions {
			if name == entry.Name {
				continue
			}
			if _, known := index[name]; !known {
				continue
			}
			exclusions[name] = struct{}{}
		}
		participants = append(participants, Participant{
			name:       entry.Name,
			exclusions: exclusions,
		})
	}

	return &Registry{participants: participants, index: index}, nil
}

// Size returns the number of participants.
func (r *Registry) Size() int {
	return len(r.participants)
}

// Names returns all participant names in registry order.
// A fresh slice is returned on every call.
func (r *Registry) Names() []string {
	names := make([]string, len(r.participants))
	for i, p := range r.participants {
		names[i] = p.name
	}
	return names
}

// Participants returns the roster in registry order.
func (r *Registry) Participants() []Participant {
	out := make([]Participant, len(r.participants))
	copy(out, r.participants)
	return out
}

// Contains reports whether name is registered.
func (r *Registry) Contains(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Excludes reports whether giver must not give to receiver. Unknown giver
// names exclude nothing.
func (r *Registry) Excludes(giver, receiver string) bool {
	i, ok := r.index[giver]
	if !ok {
		return false
	}
	return r.participants[i].Excludes(receiver)
}
