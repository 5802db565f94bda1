// Package solver implements the constrained derangement search: given a
// participant registry it produces a random giver-to-receiver bijection with
// no self-matches and no excluded pairs, or reports why none was produced.
//
// The search is rejection sampling: shuffle the receiver list, pair it
// positionally with the roster, and validate the whole candidate. Candidates
// that violate a constraint are discarded wholesale and regenerated. This is
// simpler than backtracking or constraint propagation and introduces no bias
// toward any repair heuristic, at the cost of needing an attempt bound. When
// the bound is exhausted, a maximum bipartite matching over the allowed
// graph decides whether the instance is provably infeasible or merely
// unlucky; the matching itself is never returned as an assignment.
package solver

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/apastel/secret-santa-generator/internal/assignment"
	"github.com/apastel/secret-santa-generator/internal/log"
	"github.com/apastel/secret-santa-generator/internal/participant"
)

// DefaultMaxAttempts bounds the rejection-sampling loop. Generous enough
// that feasible rosters with moderate exclusion density essentially never
// exhaust it.
const DefaultMaxAttempts = 10000

// ErrInsufficientParticipants indicates a roster too small to exchange
// gifts. A roster of zero or one admits no derangement at all.
var ErrInsufficientParticipants = errors.New("at least two participants are required")

// NoFeasibleReceiverError indicates the exclusion constraints admit no valid
// assignment. Name is a participant that cannot be matched to any receiver.
// Retrying cannot help; the roster data must change.
type NoFeasibleReceiverError struct {
	Name string
}

func (e *NoFeasibleReceiverError) Error() string {
	return fmt.Sprintf("no valid receiver exists for participant %q", e.Name)
}

// ExhaustedError indicates the random search hit its attempt bound without
// finding a valid assignment even though one exists. A fresh solve has
// independent randomness and may succeed; repeated exhaustion means the
// instance is near-infeasible or the bound is too low.
type ExhaustedError struct {
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no valid assignment found after %d attempts", e.Attempts)
}

// Option configures a Solver.
type Option func(*Solver)

// WithSeed makes the search deterministic: the same seed and the same
// registry order always yield the same assignment. Intended for
// reproducible tests; without it the solver seeds from crypto/rand so no
// participant can predict their recipient.
func WithSeed(seed uint64) Option {
	return func(s *Solver) {
		s.seed = seed
		s.seeded = true
		s.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithMaxAttempts overrides the rejection-sampling bound.
// Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(s *Solver) {
		if n >= 1 {
			s.maxAttempts = n
		}
	}
}

// Solver searches for a valid assignment. Each Solve call is independent
// and stateless aside from the shared randomness source; construct one
// solver per solve unless a seed is deliberately reused.
type Solver struct {
	maxAttempts int
	rng         *rand.Rand
	seed        uint64
	seeded      bool
}

// New creates a Solver with the given options.
func New(opts ...Option) *Solver {
	s := &Solver{maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(cryptoSeed(), cryptoSeed()))
	}
	return s
}

// Solve produces a valid assignment for the registry or one of
// ErrInsufficientParticipants, NoFeasibleReceiverError, or ExhaustedError.
// There are no partial results: the returned assignment satisfies the full
// bijection, no-self-match, and no-excluded-pair invariants, or it is nil.
func (s *Solver) Solve(reg *participant.Registry) (*assignment.Assignment, error) {
	if reg.Size() < 2 {
		return nil, ErrInsufficientParticipants
	}

	givers := reg.Names()
	if name, blocked := blockedGiver(reg, givers); blocked {
		log.Debug(log.CatSolver, "Structural pre-check failed", "participant", name)
		return nil, &NoFeasibleReceiverError{Name: name}
	}

	targets := reg.Names()
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		s.rng.Shuffle(len(targets), func(i, j int) {
			targets[i], targets[j] = targets[j], targets[i]
		})
		if !validCandidate(reg, givers, targets) {
			continue
		}

		pairs := make([]assignment.Pair, len(givers))
		for i, giver := range givers {
			pairs[i] = assignment.Pair{Giver: giver, Receiver: targets[i]}
		}
		var opts []assignment.Option
		if s.seeded {
			opts = append(opts, assignment.WithSeed(s.seed))
		}
		result, err := assignment.New(pairs, attempt, opts...)
		if err != nil {
			return nil, fmt.Errorf("building assignment: %w", err)
		}
		log.Debug(log.CatSolver, "Valid assignment found",
			"attempts", attempt, "participants", len(givers), "run_id", result.RunID())
		return result, nil
	}

	// The bound is spent. A perfect matching over the allowed graph tells
	// impossible apart from unlucky; its result is diagnostic only.
	if name, unmatched := unmatchableGiver(reg, givers); unmatched {
		log.Info(log.CatSolver, "Instance is infeasible", "participant", name)
		return nil, &NoFeasibleReceiverError{Name: name}
	}
	log.Warn(log.CatSolver, "Attempt bound exhausted on a feasible instance",
		"attempts", s.maxAttempts, "participants", len(givers))
	return nil, &ExhaustedError{Attempts: s.maxAttempts}
}

// Check reports whether the registry admits any valid assignment, without
// running the random search. It returns nil when a valid assignment exists,
// or ErrInsufficientParticipants / NoFeasibleReceiverError describing why
// none can.
func Check(reg *participant.Registry) error {
	if reg.Size() < 2 {
		return ErrInsufficientParticipants
	}
	names := reg.Names()
	if name, blocked := blockedGiver(reg, names); blocked {
		return &NoFeasibleReceiverError{Name: name}
	}
	if name, unmatched := unmatchableGiver(reg, names); unmatched {
		return &NoFeasibleReceiverError{Name: name}
	}
	return nil
}

// blockedGiver returns a participant whose allowed-receiver set is empty,
// i.e. whose exclusions cover every other participant.
func blockedGiver(reg *participant.Registry, names []string) (string, bool) {
	for _, giver := range names {
		allowed := false
		for _, target := range names {
			if target != giver && !reg.Excludes(giver, target) {
				allowed = true
				break
			}
		}
		if !allowed {
			return giver, true
		}
	}
	return "", false
}

// validCandidate checks a positional giver/target pairing against the
// no-self-match and no-excluded-pair constraints. The bijection invariant
// holds by construction since targets is a permutation of givers.
func validCandidate(reg *participant.Registry, givers, targets []string) bool {
	for i, giver := range givers {
		if giver == targets[i] {
			return false
		}
		if reg.Excludes(giver, targets[i]) {
			return false
		}
	}
	return true
}

func cryptoSeed() uint64 {
	var buf [8]byte
	// crypto/rand.Read does not fail on supported platforms.
	_, _ = crand.Read(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}
