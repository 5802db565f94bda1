package solver

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/apastel/secret-santa-generator/internal/assignment"
	"github.com/apastel/secret-santa-generator/internal/participant"
)

func mustRegistry(t require.TestingT, entries []participant.Entry) *participant.Registry {
	reg, err := participant.NewRegistry(entries)
	require.NoError(t, err)
	return reg
}

// assertValid checks the full set of assignment invariants: the mapping is a
// bijection over the roster, nobody gives to themselves, and no excluded
// pair appears.
func assertValid(t require.TestingT, reg *participant.Registry, a *assignment.Assignment) {
	pairs := a.Pairs()
	require.Equal(t, reg.Size(), len(pairs))

	givers := make(map[string]struct{}, len(pairs))
	receivers := make(map[string]struct{}, len(pairs))
	for _, pair := range pairs {
		require.True(t, reg.Contains(pair.Giver), "unknown giver %q", pair.Giver)
		require.True(t, reg.Contains(pair.Receiver), "unknown receiver %q", pair.Receiver)
		require.NotEqual(t, pair.Giver, pair.Receiver, "self-match for %q", pair.Giver)
		require.False(t, reg.Excludes(pair.Giver, pair.Receiver),
			"excluded pair %q -> %q", pair.Giver, pair.Receiver)
		givers[pair.Giver] = struct{}{}
		receivers[pair.Receiver] = struct{}{}
	}
	require.Len(t, givers, reg.Size())
	require.Len(t, receivers, reg.Size())
}

func TestSolve_InsufficientParticipants(t *testing.T) {
	tests := []struct {
		name    string
		entries []participant.Entry
	}{
		{"empty roster", nil},
		{"single participant", []participant.Entry{{Name: "Alice"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Solve(mustRegistry(t, tt.entries))
			assert.ErrorIs(t, err, ErrInsufficientParticipants)
		})
	}
}

func TestSolve_TwoParticipantsSwap(t *testing.T) {
	reg := mustRegistry(t, []participant.Entry{{Name: "Alice"}, {Name: "Bob"}})

	a, err := New().Solve(reg)
	require.NoError(t, err)
	assertValid(t, reg, a)

	receiver, ok := a.Receiver("Alice")
	require.True(t, ok)
	assert.Equal(t, "Bob", receiver)
}

func TestSolve_BlockedParticipantFailsFast(t *testing.T) {
	// A excludes everyone else, so no legal receiver exists for A at all.
	reg := mustRegistry(t, []participant.Entry{
		{Name: "A", Exclusions: []string{"B", "C"}},
		{Name: "B"},
		{Name: "C"},
	})

	_, err := New().Solve(reg)
	require.Error(t, err)

	var blocked *NoFeasibleReceiverError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, "A", blocked.Name)
}

func TestSolve_InfeasibleByMatching(t *testing.T) {
	// Every participant has at least one allowed receiver, but A and B both
	// need C, so no bijection exists. The pre-check passes and the search
	// exhausts; the matching diagnostic must report infeasibility rather
	// than exhaustion.
	reg := mustRegistry(t, []participant.Entry{
		{Name: "A", Exclusions: []string{"B"}},
		{Name: "B", Exclusions: []string{"A"}},
		{Name: "C"},
	})

	_, err := New(WithMaxAttempts(50)).Solve(reg)
	require.Error(t, err)

	var blocked *NoFeasibleReceiverError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, "B", blocked.Name)

	var exhausted *ExhaustedError
	assert.False(t, errors.As(err, &exhausted))
}

func TestSolve_MutualExclusionPairInLargerRoster(t *testing.T) {
	// Alice and Bob never gift each other in any returned assignment.
	reg := mustRegistry(t, []participant.Entry{
		{Name: "Alice", Exclusions: []string{"Bob"}},
		{Name: "Bob", Exclusions: []string{"Alice"}},
		{Name: "Charlie"},
		{Name: "Dana"},
	})

	for seed := uint64(0); seed < 25; seed++ {
		a, err := New(WithSeed(seed)).Solve(reg)
		require.NoError(t, err, "seed %d", seed)
		assertValid(t, reg, a)

		receiver, _ := a.Receiver("Alice")
		assert.NotEqual(t, "Bob", receiver, "seed %d", seed)
		receiver, _ = a.Receiver("Bob")
		assert.NotEqual(t, "Alice", receiver, "seed %d", seed)
	}
}

func TestSolve_Deterministic(t *testing.T) {
	entries := []participant.Entry{
		{Name: "Alice", Exclusions: []string{"Bob"}},
		{Name: "Bob"},
		{Name: "Charlie"},
		{Name: "Dana"},
		{Name: "Erin"},
	}

	first, err := New(WithSeed(42)).Solve(mustRegistry(t, entries))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := New(WithSeed(42)).Solve(mustRegistry(t, entries))
		require.NoError(t, err)
		assert.Equal(t, first.Pairs(), again.Pairs())
		assert.Equal(t, first.Attempts(), again.Attempts())
	}

	seed, seeded := first.Seed()
	assert.True(t, seeded)
	assert.Equal(t, uint64(42), seed)
}

func TestSolve_ExhaustsOnTinyBound(t *testing.T) {
	// A ring where each participant may only give to their right neighbor
	// has exactly one valid permutation out of 6!, so a single attempt per
	// seed almost always exhausts. At least one of these seeds must report
	// exhaustion rather than infeasibility.
	const n = 6
	entries := make([]participant.Entry, n)
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("p%d", i)
	}
	for i := range entries {
		var exclusions []string
		for j, name := range names {
			if j != i && j != (i+1)%n {
				exclusions = append(exclusions, name)
			}
		}
		entries[i] = participant.Entry{Name: names[i], Exclusions: exclusions}
	}

	sawExhausted := false
	for seed := uint64(0); seed < 10 && !sawExhausted; seed++ {
		a, err := New(WithSeed(seed), WithMaxAttempts(1)).Solve(mustRegistry(t, entries))
		if err == nil {
			// The single attempt happened to hit the unique solution.
			assertValid(t, mustRegistry(t, entries), a)
			continue
		}
		var exhausted *ExhaustedError
		require.ErrorAs(t, err, &exhausted, "seed %d", seed)
		assert.Equal(t, 1, exhausted.Attempts)
		sawExhausted = true
	}
	assert.True(t, sawExhausted)

	// The same instance solves fine with the default bound.
	a, err := New(WithSeed(7)).Solve(mustRegistry(t, entries))
	require.NoError(t, err)
	assertValid(t, mustRegistry(t, entries), a)
}

func TestSolve_WithMaxAttemptsIgnoresInvalid(t *testing.T) {
	s := New(WithMaxAttempts(0))
	assert.Equal(t, DefaultMaxAttempts, s.maxAttempts)

	s = New(WithMaxAttempts(-3))
	assert.Equal(t, DefaultMaxAttempts, s.maxAttempts)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		entries []participant.Entry
		wantErr string
	}{
		{
			name:    "too small",
			entries: []participant.Entry{{Name: "Alice"}},
			wantErr: "at least two participants",
		},
		{
			name: "feasible",
			entries: []participant.Entry{
				{Name: "Alice", Exclusions: []string{"Bob"}},
				{Name: "Bob"},
				{Name: "Charlie"},
			},
		},
		{
			name: "blocked participant",
			entries: []participant.Entry{
				{Name: "A", Exclusions: []string{"B", "C"}},
				{Name: "B"},
				{Name: "C"},
			},
			wantErr: `no valid receiver exists for participant "A"`,
		},
		{
			name: "no perfect matching",
			entries: []participant.Entry{
				{Name: "A", Exclusions: []string{"B"}},
				{Name: "B", Exclusions: []string{"A"}},
				{Name: "C"},
			},
			wantErr: `no valid receiver exists for participant "B"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(mustRegistry(t, tt.entries))
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSolve_RandomRosters(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 12).Draw(t, "n")
		names := make([]string, n)
		for i := range names {
			names[i] = fmt.Sprintf("p%02d", i)
		}

		// Each participant excludes at most n-2 others, so every allowed
		// set stays non-empty; the instance may still be globally
		// infeasible, which must surface as a structured error.
		entries := make([]participant.Entry, n)
		for i := range entries {
			others := make([]string, 0, n-1)
			for j, name := range names {
				if j != i {
					others = append(others, name)
				}
			}
			count := rapid.IntRange(0, n-2).Draw(t, fmt.Sprintf("exclusions-%d", i))
			exclusions := make([]string, 0, count)
			for k := 0; k < count; k++ {
				exclusions = append(exclusions,
					rapid.SampledFrom(others[:n-2]).Draw(t, fmt.Sprintf("excl-%d-%d", i, k)))
			}
			entries[i] = participant.Entry{Name: names[i], Exclusions: exclusions}
		}

		reg := mustRegistry(t, entries)
		seed := rapid.Uint64().Draw(t, "seed")

		a, err := New(WithSeed(seed)).Solve(reg)
		if err != nil {
			var blocked *NoFeasibleReceiverError
			var exhausted *ExhaustedError
			if !errors.As(err, &blocked) && !errors.As(err, &exhausted) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			return
		}
		assertValid(t, reg, a)
	})
}
