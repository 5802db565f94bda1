// Package assignment defines the immutable result of a solve: the
// giver-to-receiver mapping plus metadata about how it was found.
package assignment

import (
	"errors"

	"github.com/google/uuid"
)

// Assignment construction errors.
var (
	ErrDuplicateGiver    = errors.New("assignment contains a duplicate giver")
	ErrDuplicateReceiver = errors.New("assignment contains a duplicate receiver")
)

// Pair is a single giver-to-receiver edge.
type Pair struct {
	Giver    string
	Receiver string
}

// Option configures an Assignment at construction time.
type Option func(*Assignment)

// WithSeed records the explicit seed the solve was run with.
func WithSeed(seed uint64) Option {
	return func(a *Assignment) {
		a.seed = seed
		a.seeded = true
	}
}

// Assignment is a complete, validated giver-to-receiver mapping in roster
// order. Immutable after construction; the solver discards every candidate
// that fails validation and only the winning mapping becomes an Assignment.
type Assignment struct {
	pairs     []Pair
	receivers map[string]string
	attempts  int
	seed      uint64
	seeded    bool
	runID     uuid.UUID
}

// New builds an Assignment from ordered pairs and the number of candidates
// the solver tried. The input slice is copied. Fails if any giver or
// receiver appears twice (the mapping would not be a bijection).
func New(pairs []Pair, attempts int, opts ...Option) (*Assignment, error) {
	receivers := make(map[string]string, len(pairs))
	seen := make(map[string]struct{}, len(pairs))
	for _, p := range pairs {
		if _, dup := receivers[p.Giver]; dup {
			return nil, ErrDuplicateGiver
		}
		if _, dup := seen[p.Receiver]; dup {
			return nil, ErrDuplicateReceiver
		}
		receivers[p.Giver] = p.Receiver
		seen[p.Receiver] = struct{}{}
	}

	a := &Assignment{
		pairs:     append([]Pair(nil), pairs...),
		receivers: receivers,
		attempts:  attempts,
		runID:     uuid.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Receiver returns the receiver assigned to giver.
func (a *Assignment) Receiver(giver string) (string, bool) {
	receiver, ok := a.receivers[giver]
	return receiver, ok
}

// Pairs returns the full mapping in roster order.
// A fresh slice is returned on every call.
func (a *Assignment) Pairs() []Pair {
	out := make([]Pair, len(a.pairs))
	copy(out, a.pairs)
	return out
}

// Len returns the number of pairs.
func (a *Assignment) Len() int {
	return len(a.pairs)
}

// Attempts returns how many candidate permutations the solver tried,
// including the winning one.
func (a *Assignment) Attempts() int {
	return a.attempts
}

// Seed returns the explicit seed the solve was run with, if one was given.
func (a *Assignment) Seed() (uint64, bool) {
	return a.seed, a.seeded
}

// RunID identifies this solve for log correlation and document metadata.
func (a *Assignment) RunID() uuid.UUID {
	return a.runID
}
