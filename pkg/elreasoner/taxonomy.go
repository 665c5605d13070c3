package elreasoner

import (
	"time"

	"github.com/gitrdm/elreasoner/internal/parallel"
)

// parallelReductionThreshold is the named-concept count (TOP and BOTTOM
// excluded) at or above which BuildTaxonomy fans per-concept reduction out across the bounded
// worker pool instead of running sequentially in the caller's
// goroutine. Below it, pool setup would cost more than it saves.
const parallelReductionThreshold = 64

// BuildTaxonomy reduces the saturated context table to each concept's
// direct named parents via naive transitive reduction. Concept ids 0
// and 1 (TOP, BOTTOM) are skipped on the input side and never appear as
// keys of the returned slice beyond occupying indices 0 and 1 as empty
// placeholders.
//
// Contexts must not be mutated concurrently with or after this call;
// BuildTaxonomy assumes saturation has already reached its fixed point.
func BuildTaxonomy(contexts []*Context) ([][]ConceptId, time.Duration) {
	return BuildTaxonomyWithWorkers(contexts, parallel.DefaultWorkers())
}

// BuildTaxonomyWithWorkers is BuildTaxonomy with an explicit bound on
// how many goroutines the reduction pool may use once the concept count
// crosses parallelReductionThreshold. A non-positive workers value
// falls back to parallel.DefaultWorkers().
func BuildTaxonomyWithWorkers(contexts []*Context, workers int) ([][]ConceptId, time.Duration) {
	start := time.Now()
	numConcepts := len(contexts)
	direct := make([][]ConceptId, numConcepts)

	compute := func(c int) {
		direct[c] = directParentsOf(contexts, ConceptId(c))
	}

	if numConcepts-reservedConcepts >= parallelReductionThreshold {
		parallel.RunWithWorkers(numConcepts-reservedConcepts, workers, func(i int) {
			compute(i + reservedConcepts)
		})
	} else {
		for c := reservedConcepts; c < numConcepts; c++ {
			compute(c)
		}
	}

	return direct, time.Since(start)
}

// directParentsOf computes the direct parents of a single concept: b is
// a direct parent of c iff b is a non-trivial super-concept of c and no
// other non-trivial super-concept of c lies strictly between c and b.
func directParentsOf(contexts []*Context, c ConceptId) []ConceptId {
	supers := contexts[c].superSet

	candidates := make([]ConceptId, 0, len(supers))
	hasTop := false
	for s := range supers {
		switch {
		case s == TOP:
			hasTop = true
		case s == BOTTOM:
			// unsatisfiable concepts do not receive BOTTOM as a parent
		case s == c:
		default:
			candidates = append(candidates, s)
		}
	}

	direct := make([]ConceptId, 0, 4)
outer:
	for _, b := range candidates {
		for _, s := range candidates {
			if s == b {
				continue
			}
			if contexts[s].HasSuper(b) {
				continue outer
			}
		}
		direct = append(direct, b)
	}

	if len(direct) == 0 && hasTop {
		direct = append(direct, TOP)
	}

	return direct
}
