package solver

import "github.com/apastel/secret-santa-generator/internal/participant"

// unmatchableGiver decides feasibility exactly via Kuhn's maximum bipartite
// matching over the allowed giver-to-receiver graph. It returns the first
// giver (in roster order) for which no augmenting path exists; if every
// giver can be matched, a perfect matching exists and the instance is
// feasible.
func unmatchableGiver(reg *participant.Registry, names []string) (string, bool) {
	n := len(names)
	allowed := make([][]int, n)
	for i, giver := range names {
		for j, target := range names {
			if i == j || reg.Excludes(giver, target) {
				continue
			}
			allowed[i] = append(allowed[i], j)
		}
	}

	// matchedTo[j] is the giver currently matched to receiver j, or -1.
	matchedTo := make([]int, n)
	for j := range matchedTo {
		matchedTo[j] = -1
	}

	var augment func(u int, visited []bool) bool
	augment = func(u int, visited []bool) bool {
		for _, v := range allowed[u] {
			if visited[v] {
				continue
			}
			visited[v] = true
			if matchedTo[v] == -1 || augment(matchedTo[v], visited) {
				matchedTo[v] = u
				return true
			}
		}
		return false
	}

	for u := range names {
		visited := make([]bool, n)
		if !augment(u, visited) {
			return names[u], true
		}
	}
	return "", false
}
