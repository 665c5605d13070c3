package elreasoner

import "testing"

// buildStore is a small test helper: build a store with a fixed concept
// count and no roles unless a test needs them.
func buildStore(t *testing.T, numConcepts, numRoles int) *AxiomStore {
	t.Helper()
	s, err := NewAxiomStore(numConcepts, numRoles)
	if err != nil {
		t.Fatalf("NewAxiomStore: %v", err)
	}
	return s
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("axiom construction failed: %v", err)
	}
}

// TestTrivialOntology is scenario 1: no axioms beyond TOP/BOTTOM/A.
func TestTrivialOntology(t *testing.T) {
	const A = ConceptId(2)
	store := buildStore(t, 3, 0)

	contexts, _ := Saturate(store, 3, 0)

	got := contexts[A].SuperSet()
	want := map[ConceptId]bool{A: true, TOP: true}
	if len(got) != len(want) {
		t.Fatalf("super_set(A) = %v, want exactly %v", got, want)
	}
	for _, id := range got {
		if !want[id] {
			t.Fatalf("unexpected member %d in super_set(A)", id)
		}
	}

	direct, _ := BuildTaxonomy(contexts)
	if len(direct[A]) != 1 || direct[A][0] != TOP {
		t.Fatalf("direct_parents[A] = %v, want [TOP]", direct[A])
	}
}

// TestChain is scenario 2: A ⊑ B, B ⊑ C.
func TestChain(t *testing.T) {
	const A, B, C = ConceptId(2), ConceptId(3), ConceptId(4)
	store := buildStore(t, 5, 0)
	mustAdd(t, store.AddSubsumption(A, B))
	mustAdd(t, store.AddSubsumption(B, C))

	contexts, _ := Saturate(store, 5, 0)

	for _, e := range []ConceptId{A, TOP, B, C} {
		if !contexts[A].HasSuper(e) {
			t.Fatalf("expected %d in super_set(A)", e)
		}
	}
	if n := contexts[A].SuperSetSize(); n != 4 {
		t.Fatalf("super_set(A) has %d members, want 4", n)
	}

	direct, _ := BuildTaxonomy(contexts)
	if len(direct[A]) != 1 || direct[A][0] != B {
		t.Fatalf("direct_parents[A] = %v, want [B]", direct[A])
	}
	if len(direct[B]) != 1 || direct[B][0] != C {
		t.Fatalf("direct_parents[B] = %v, want [C]", direct[B])
	}
}

// TestExistentialPropagation is scenario 3: A ⊑ ∃r.B, ∃r.B ⊑ C.
func TestExistentialPropagation(t *testing.T) {
	const A, B, C = ConceptId(2), ConceptId(3), ConceptId(4)
	const r = RoleId(0)
	store := buildStore(t, 5, 1)
	mustAdd(t, store.AddExistRight(A, r, B))
	mustAdd(t, store.AddExistLeft(r, B, C))

	contexts, _ := Saturate(store, 5, 1)

	if !contexts[A].HasSuper(C) {
		t.Fatalf("expected C in super_set(A)")
	}
	succ := contexts[A].Successors(r)
	if len(succ) != 1 || succ[0] != B {
		t.Fatalf("expected link A -r-> B, got successors %v", succ)
	}
	pred := contexts[B].Predecessors(r)
	if len(pred) != 1 || pred[0] != A {
		t.Fatalf("expected predecessor A on B, got %v", pred)
	}
}

// TestBottomViaExistential is scenario 4: A ⊑ ∃r.B, B ⊑ ⊥.
func TestBottomViaExistential(t *testing.T) {
	const A, B = ConceptId(2), ConceptId(3)
	const r = RoleId(0)
	store := buildStore(t, 4, 1)
	mustAdd(t, store.AddExistRight(A, r, B))
	mustAdd(t, store.AddSubsumption(B, BOTTOM))

	contexts, _ := Saturate(store, 4, 1)

	if !contexts[A].HasSuper(BOTTOM) {
		t.Fatalf("expected BOTTOM in super_set(A)")
	}
}

// TestConjunction is scenario 5: A ⊑ B, A ⊑ C, B ⊓ C ⊑ D.
func TestConjunction(t *testing.T) {
	const A, B, C, D = ConceptId(2), ConceptId(3), ConceptId(4), ConceptId(5)
	store := buildStore(t, 6, 0)
	mustAdd(t, store.AddSubsumption(A, B))
	mustAdd(t, store.AddSubsumption(A, C))
	mustAdd(t, store.AddConjunction(B, C, D))

	contexts, _ := Saturate(store, 6, 0)

	if !contexts[A].HasSuper(D) {
		t.Fatalf("expected D in super_set(A)")
	}
}

// TestDiamondWithRedundantParent is scenario 6: A ⊑ B, A ⊑ C, B ⊑ D, C ⊑ D.
func TestDiamondWithRedundantParent(t *testing.T) {
	const A, B, C, D = ConceptId(2), ConceptId(3), ConceptId(4), ConceptId(5)
	store := buildStore(t, 6, 0)
	mustAdd(t, store.AddSubsumption(A, B))
	mustAdd(t, store.AddSubsumption(A, C))
	mustAdd(t, store.AddSubsumption(B, D))
	mustAdd(t, store.AddSubsumption(C, D))

	contexts, _ := Saturate(store, 6, 0)
	direct, _ := BuildTaxonomy(contexts)

	got := map[ConceptId]bool{}
	for _, p := range direct[A] {
		got[p] = true
	}
	if !got[B] || !got[C] {
		t.Fatalf("direct_parents[A] = %v, want to contain B and C", direct[A])
	}
	if got[D] {
		t.Fatalf("direct_parents[A] = %v, D must not be direct", direct[A])
	}
	if len(direct[A]) != 2 {
		t.Fatalf("direct_parents[A] = %v, want exactly [B C] in some order", direct[A])
	}
}

// TestAbsorbedReflexiveAxiom covers the "d ⊑ d absorbed silently" edge case.
func TestAbsorbedReflexiveAxiom(t *testing.T) {
	const A = ConceptId(2)
	store := buildStore(t, 3, 0)
	mustAdd(t, store.AddSubsumption(A, A))

	contexts, _ := Saturate(store, 3, 0)
	if n := contexts[A].SuperSetSize(); n != 2 {
		t.Fatalf("super_set(A) has %d members, want 2 (A, TOP)", n)
	}
}

// TestConjunctIndexIsSymmetric ensures CR2 fires regardless of which
// conjunct of B ⊓ C ⊑ D is derived second.
func TestConjunctIndexIsSymmetric(t *testing.T) {
	const A, B, C, D = ConceptId(2), ConceptId(3), ConceptId(4), ConceptId(5)
	store := buildStore(t, 6, 0)
	// Reverse the order relative to TestConjunction: C first, then B.
	mustAdd(t, store.AddSubsumption(A, C))
	mustAdd(t, store.AddSubsumption(A, B))
	mustAdd(t, store.AddConjunction(B, C, D))

	contexts, _ := Saturate(store, 6, 0)
	if !contexts[A].HasSuper(D) {
		t.Fatalf("expected D in super_set(A) regardless of conjunct derivation order")
	}
}

func TestNewAxiomStoreRejectsTooFewConcepts(t *testing.T) {
	if _, err := NewAxiomStore(1, 0); err == nil {
		t.Fatal("expected error for numConcepts < 2")
	}
}

func TestAddSubsumptionRejectsOutOfRangeIds(t *testing.T) {
	store := buildStore(t, 3, 0)
	if err := store.AddSubsumption(0, 5); err == nil {
		t.Fatal("expected error for out-of-range sup id")
	}
}
