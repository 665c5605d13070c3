package elreasoner

import "time"

// Stats reports classification statistics in the shape the driver
// surfaces on success.
type Stats struct {
	NumConcepts          int
	NumRoles             int
	InferredSubsumptions int
	SaturationElapsed    time.Duration
	TaxonomyElapsed      time.Duration
}

// Saturate computes the least fixed point of the ℰℒ completion rules
// (CR1-CR5) over store and returns one Context per concept in
// [0, numConcepts). It never returns an error: once an AxiomStore has
// been constructed successfully, saturation is sound and total by
// construction.
func Saturate(store *AxiomStore, numConcepts, numRoles int) ([]*Context, Stats) {
	start := time.Now()

	contexts := make([]*Context, numConcepts)
	for i := 0; i < numConcepts; i++ {
		contexts[i] = newContext(ConceptId(i), numRoles)
	}

	var facts factWorklist
	var links linkWorklist

	// Initialization: reflexivity and the TOP tautology.
	for i := 0; i < numConcepts; i++ {
		c := ConceptId(i)
		contexts[i].insertSuper(c)
		facts.push(factItem{concept: c, added: c})
		if c != TOP {
			contexts[i].insertSuper(TOP)
			facts.push(factItem{concept: c, added: TOP})
		}
	}

	for !facts.empty() || !links.empty() {
		for {
			item, ok := facts.pop()
			if !ok {
				break
			}
			applyFactRules(store, contexts, numRoles, &facts, &links, item.concept, item.added)
		}
		for {
			item, ok := links.pop()
			if !ok {
				break
			}
			applyLinkRules(store, contexts, &facts, item.source, item.role, item.target)
		}
	}

	stats := Stats{
		NumConcepts:       numConcepts,
		NumRoles:          numRoles,
		SaturationElapsed: time.Since(start),
	}
	stats.InferredSubsumptions = countInferredSubsumptions(contexts)
	return contexts, stats
}

// applyFactRules applies CR1, CR2, CR3, and the backward trigger of CR4
// to the newly derived fact "d ∈ super_set of c".
func applyFactRules(store *AxiomStore, contexts []*Context, numRoles int, facts *factWorklist, links *linkWorklist, c, d ConceptId) {
	cc := contexts[c]

	// CR1: told subsumption.
	for _, e := range store.SubsumersOf(d) {
		if cc.insertSuper(e) {
			facts.push(factItem{concept: c, added: e})
		}
	}

	// CR2: conjunction. Fires on whichever conjunct of a d1 ⊓ d2 ⊑ e
	// axiom is derived second, because conj_index is populated
	// symmetrically at store-construction time.
	for d2, results := range store.ConjunctsOf(d) {
		if !cc.HasSuper(d2) {
			continue
		}
		for _, e := range results {
			if cc.insertSuper(e) {
				facts.push(factItem{concept: c, added: e})
			}
		}
	}

	// CR3: existential introduction, forward.
	for _, rf := range store.ExistRightOf(d) {
		if addLink(contexts, c, rf.Role, rf.Fill) {
			links.push(linkItem{source: c, role: rf.Role, target: rf.Fill})
		}
	}

	// CR4, backward trigger: c just gained super-concept d. Any
	// predecessor s —r→ c combined with an axiom ∃r.d ⊑ e now applies
	// to s.
	for r := 0; r < numRoles; r++ {
		role := RoleId(r)
		if !store.HasExistLeftAxioms(role) {
			continue
		}
		preds := cc.Predecessors(role)
		if len(preds) == 0 {
			continue
		}
		sups := store.ExistLeftFor(role, d)
		if len(sups) == 0 {
			continue
		}
		for _, pred := range preds {
			pc := contexts[pred]
			for _, f := range sups {
				if pc.insertSuper(f) {
					facts.push(factItem{concept: pred, added: f})
				}
			}
		}
	}
}

// applyLinkRules applies the forward trigger of CR4 and CR5 to the
// newly created link c —r→ d.
func applyLinkRules(store *AxiomStore, contexts []*Context, facts *factWorklist, c ConceptId, r RoleId, d ConceptId) {
	cc := contexts[c]
	dc := contexts[d]

	// CR4, forward trigger: the link c —r→ d is new, so every current
	// super-concept of d that is the left-hand witness of a matching
	// ∃r.e ⊑ f axiom must propagate to c.
	if store.HasExistLeftAxioms(r) {
		for e := range dc.superSet {
			sups := store.ExistLeftFor(r, e)
			for _, f := range sups {
				if cc.insertSuper(f) {
					facts.push(factItem{concept: c, added: f})
				}
			}
		}
	}

	// CR5: ⊥ propagation. c ⊑ ∃r.⊥ implies c ⊑ ⊥.
	if dc.HasSuper(BOTTOM) {
		if cc.insertSuper(BOTTOM) {
			facts.push(factItem{concept: c, added: BOTTOM})
		}
	}
}

// countInferredSubsumptions sums |super_set of c| - 2 across all
// concepts, skipping the TOP and BOTTOM rows, the standard way to
// report how many non-trivial subsumptions saturation derived.
func countInferredSubsumptions(contexts []*Context) int {
	total := 0
	for _, c := range contexts {
		if c.ID() < reservedConcepts {
			continue
		}
		n := c.SuperSetSize() - reservedConcepts
		if n > 0 {
			total += n
		}
	}
	return total
}
